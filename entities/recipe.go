package entities

type Recipe struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	AuthorID    uint   `gorm:"not null;index" json:"author_id"`
	Name        string `gorm:"type:varchar(256);not null" json:"name"`
	Image       string `gorm:"type:varchar(512);not null" json:"image"` // object key in the image store
	Text        string `gorm:"type:text;not null" json:"text"`
	CookingTime int    `gorm:"not null;check:chk_recipes_cooking_time,cooking_time >= 1" json:"cooking_time"`

	Author      *User               `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Ingredients []*RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Timestamp
}

type RecipeIngredient struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	RecipeID     uint `gorm:"not null;uniqueIndex:idx_recipe_ingredients_pair" json:"recipe_id"`
	IngredientID uint `gorm:"not null;index;uniqueIndex:idx_recipe_ingredients_pair" json:"ingredient_id"`
	Amount       int  `gorm:"not null;check:chk_recipe_ingredients_amount,amount >= 1" json:"amount"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

package entities

type Ingredient struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"type:varchar(256);not null;index;uniqueIndex:idx_ingredients_name_unit" json:"name"`
	MeasurementUnit string `gorm:"type:varchar(32);not null;uniqueIndex:idx_ingredients_name_unit" json:"measurement_unit"`
}

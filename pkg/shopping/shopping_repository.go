package shopping

import (
	"context"

	"foodgram/entities"

	"gorm.io/gorm"
)

type (
	// CartIngredientRow is one recipe ingredient line of a recipe in a cart.
	CartIngredientRow struct {
		Name            string
		MeasurementUnit string
		Amount          int64
	}

	CartRecipeRow struct {
		Name   string
		Author string
	}

	ShoppingRepository interface {
		GetUser(ctx context.Context, userID uint) (*entities.User, error)
		GetCartIngredients(ctx context.Context, userID uint) ([]CartIngredientRow, error)
		GetCartRecipes(ctx context.Context, userID uint) ([]CartRecipeRow, error)
	}

	shoppingRepository struct {
		db *gorm.DB
	}
)

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

func (r *shoppingRepository) GetUser(ctx context.Context, userID uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetCartIngredients returns the ingredient lines of every carted recipe in
// cart insertion order, then line order within a recipe.
func (r *shoppingRepository) GetCartIngredients(ctx context.Context, userID uint) ([]CartIngredientRow, error) {
	var rows []CartIngredientRow
	if err := r.db.WithContext(ctx).
		Model(&entities.ShoppingCart{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, recipe_ingredients.amount AS amount").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = shopping_carts.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("shopping_carts.user_id = ?", userID).
		Order("shopping_carts.id asc").
		Order("recipe_ingredients.id asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *shoppingRepository) GetCartRecipes(ctx context.Context, userID uint) ([]CartRecipeRow, error) {
	var rows []CartRecipeRow
	if err := r.db.WithContext(ctx).
		Model(&entities.ShoppingCart{}).
		Select("recipes.name AS name, users.username AS author").
		Joins("JOIN recipes ON recipes.id = shopping_carts.recipe_id").
		Joins("JOIN users ON users.id = recipes.author_id").
		Where("shopping_carts.user_id = ?", userID).
		Order("recipes.created_at desc").
		Order("recipes.id desc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

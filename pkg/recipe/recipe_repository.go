package recipe

import (
	"context"

	"foodgram/domain"
	"foodgram/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient) error
		DeleteRecipe(ctx context.Context, id uint) error
		GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error)
		RecipeExists(ctx context.Context, id uint) (bool, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID uint, page, limit int) ([]*entities.Recipe, int64, error)
		GetExistingIngredientIDs(ctx context.Context, ids []uint) ([]uint, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		return insertIngredients(tx, recipe.ID, ingredients)
	})
}

// UpdateRecipe saves the recipe columns and replaces its whole ingredient set
// in one transaction.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).
			Select("name", "image", "text", "cooking_time", "updated_at").
			Updates(recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return insertIngredients(tx, recipe.ID, ingredients)
	})
}

func insertIngredients(tx *gorm.DB, recipeID uint, ingredients []*entities.RecipeIngredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	for _, ri := range ingredients {
		ri.ID = 0
		ri.RecipeID = recipeID
	}
	return tx.Omit(clause.Associations).Create(&ingredients).Error
}

// DeleteRecipe removes the recipe together with every row that references it.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&entities.RecipeIngredient{}, &entities.Favorite{}, &entities.ShoppingCart{}} {
			if err := tx.Where("recipe_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&entities.Recipe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.withDetails(r.db.WithContext(ctx)).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) RecipeExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID uint, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.filtered(ctx, filter, viewerID).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.withDetails(r.filtered(ctx, filter, viewerID)).
		Order("recipes.created_at desc").
		Order("recipes.id desc").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

// filtered applies the recipe filter. The favorite and cart restrictions
// need a viewer; for anonymous viewers they are ignored.
func (r *recipeRepository) filtered(ctx context.Context, filter domain.RecipeFilter, viewerID uint) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entities.Recipe{})
	if filter.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if viewerID != 0 && filter.FavoritedOnly {
		query = query.Where("recipes.id IN (?)",
			r.db.Model(&entities.Favorite{}).Select("recipe_id").Where("user_id = ?", viewerID))
	}
	if viewerID != 0 && filter.InCartOnly {
		query = query.Where("recipes.id IN (?)",
			r.db.Model(&entities.ShoppingCart{}).Select("recipe_id").Where("user_id = ?", viewerID))
	}
	return query
}

func (r *recipeRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.id asc") }).
		Preload("Ingredients.Ingredient")
}

func (r *recipeRepository) GetExistingIngredientIDs(ctx context.Context, ids []uint) ([]uint, error) {
	var existing []uint
	if len(ids) == 0 {
		return existing, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Ingredient{}).
		Where("id IN ?", ids).
		Pluck("id", &existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

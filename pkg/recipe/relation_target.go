package recipe

import (
	"context"

	"foodgram/domain"
	"foodgram/pkg/relation"
)

type recipeTarget struct {
	recipeService RecipeService
}

// NewRelationTarget exposes recipes to the favorite and shopping cart
// relations, which answer with the short recipe form.
func NewRelationTarget(recipeService RecipeService) relation.Target {
	return &recipeTarget{recipeService: recipeService}
}

func (t *recipeTarget) Exists(ctx context.Context, id uint) (bool, error) {
	return t.recipeService.RecipeExists(ctx, id)
}

func (t *recipeTarget) Represent(ctx context.Context, _, id uint, _ relation.RepresentOptions) (any, error) {
	return t.recipeService.GetRecipeShort(ctx, id)
}

func (t *recipeTarget) NotFound() error {
	return domain.ErrRecipeNotFound
}

package domain

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessAddFavorite     = "recipe added to favorites"
	MessageSuccessRemoveFavorite  = "recipe removed from favorites"
	MessageSuccessAddToCart       = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart  = "recipe removed from shopping cart"
	MessageSuccessGetShortLink    = "success get short link"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedToggleFavorite  = "failed to update favorites"
	MessageFailedToggleCart      = "failed to update shopping cart"
	MessageFailedGetShortLink    = "failed to get short link"
	MessageFailedResolveLink     = "failed to resolve short link"

	ErrRecipeNotFound = NewNotFoundError("recipe not found")
)

type (
	IngredientAmount struct {
		ID     uint `json:"id" validate:"required"`
		Amount int  `json:"amount" validate:"min=1"`
	}

	RecipeCreateRequest struct {
		Ingredients []IngredientAmount `json:"ingredients" validate:"required,min=1,dive"`
		Image       string             `json:"image" validate:"required"`
		Name        string             `json:"name" validate:"required,max=256"`
		Text        string             `json:"text" validate:"required"`
		CookingTime int                `json:"cooking_time" validate:"min=1"`
	}

	// RecipeUpdateRequest is a partial update, except that Ingredients must
	// always be supplied.
	RecipeUpdateRequest struct {
		Ingredients []IngredientAmount `json:"ingredients" validate:"omitempty,dive"`
		Image       *string            `json:"image"`
		Name        *string            `json:"name" validate:"omitnil,min=1,max=256"`
		Text        *string            `json:"text" validate:"omitnil,min=1"`
		CookingTime *int               `json:"cooking_time" validate:"omitnil,min=1"`
	}

	RecipeFilter struct {
		AuthorID      uint
		FavoritedOnly bool
		InCartOnly    bool
	}

	RecipeShort struct {
		ID          uint   `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}

	RecipeIngredientLine struct {
		ID              uint   `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	Recipe struct {
		ID               uint                   `json:"id"`
		Author           UserProfile            `json:"author"`
		Ingredients      []RecipeIngredientLine `json:"ingredients"`
		IsFavorited      bool                   `json:"is_favorited"`
		IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
		Name             string                 `json:"name"`
		Image            string                 `json:"image"`
		Text             string                 `json:"text"`
		CookingTime      int                    `json:"cooking_time"`
	}

	ShortLinkResponse struct {
		ShortLink string `json:"short-link"`
	}
)

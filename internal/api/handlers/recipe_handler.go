package handlers

import (
	"foodgram/domain"
	"foodgram/internal/api/presenters"
	"foodgram/internal/middleware"
	"foodgram/internal/utils"
	"foodgram/pkg/recipe"
	"foodgram/pkg/relation"
	"foodgram/pkg/shopping"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetRecipe(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
		AddToShoppingCart(c *fiber.Ctx) error
		RemoveFromShoppingCart(c *fiber.Ctx) error
		DownloadShoppingCart(c *fiber.Ctx) error
		GetShortLink(c *fiber.Ctx) error
		ResolveShortLink(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService   recipe.RecipeService
		relationService relation.RelationService
		shoppingService shopping.ShoppingService
		validator       *validator.Validate
	}
)

func NewRecipeHandler(
	recipeService recipe.RecipeService,
	relationService relation.RelationService,
	shoppingService shopping.ShoppingService,
	validator *validator.Validate,
) RecipeHandler {
	return &recipeHandler{
		recipeService:   recipeService,
		relationService: relationService,
		shoppingService: shoppingService,
		validator:       validator,
	}
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	viewerID := middleware.UserID(c)

	filter := domain.RecipeFilter{
		FavoritedOnly: queryFlag(c, "is_favorited"),
		InCartOnly:    queryFlag(c, "is_in_shopping_cart"),
	}
	if author := c.QueryInt("author", 0); author > 0 {
		filter.AuthorID = uint(author)
	}

	page, err := h.recipeService.GetRecipes(c.Context(), viewerID, filter, pagination(c))
	if err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.Paginated(c, page, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipe(c *fiber.Ctx) error {
	recipeID, err := pathID(c, domain.ErrRecipeNotFound)
	if err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedGetRecipeDetail, err)
	}

	res, err := h.recipeService.GetRecipe(c.Context(), middleware.UserID(c), recipeID)
	if err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedGetRecipeDetail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	var req domain.RecipeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := utils.ValidateStruct(h.validator, req); err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), middleware.UserID(c), req)
	if err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedCreateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	recipeID, err := pathID(c, domain.ErrRecipeNotFound)
	if err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedUpdateRecipe, err)
	}

	var req domain.RecipeUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := utils.ValidateStruct(h.validator, req); err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), middleware.UserID(c), recipeID, req)
	if err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedUpdateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	recipeID, err := pathID(c, domain.ErrRecipeNotFound)
	if err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedDeleteRecipe, err)
	}

	if err := h.recipeService.DeleteRecipe(c.Context(), middleware.UserID(c), recipeID); err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedDeleteRecipe, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *recipeHandler) AddFavorite(c *fiber.Ctx) error {
	return h.toggle(c, relation.KindFavorite, relation.Add, domain.MessageSuccessAddFavorite, domain.MessageFailedToggleFavorite)
}

func (h *recipeHandler) RemoveFavorite(c *fiber.Ctx) error {
	return h.toggle(c, relation.KindFavorite, relation.Remove, domain.MessageSuccessRemoveFavorite, domain.MessageFailedToggleFavorite)
}

func (h *recipeHandler) AddToShoppingCart(c *fiber.Ctx) error {
	return h.toggle(c, relation.KindShoppingCart, relation.Add, domain.MessageSuccessAddToCart, domain.MessageFailedToggleCart)
}

func (h *recipeHandler) RemoveFromShoppingCart(c *fiber.Ctx) error {
	return h.toggle(c, relation.KindShoppingCart, relation.Remove, domain.MessageSuccessRemoveFromCart, domain.MessageFailedToggleCart)
}

func (h *recipeHandler) toggle(c *fiber.Ctx, kind relation.Kind, direction relation.Direction, success, failed string) error {
	recipeID, err := pathID(c, domain.ErrRecipeNotFound)
	if err != nil {
		return presenters.ErrorFromDomain(c, failed, err)
	}

	res, err := h.relationService.Toggle(c.Context(), relation.Request{
		Kind:      kind,
		Direction: direction,
		ActorID:   middleware.UserID(c),
		TargetID:  recipeID,
	})
	if err != nil {
		return presenters.ErrorFromDomain(c, failed, err)
	}
	return respondToggle(c, direction, res, success)
}

func (h *recipeHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	list, err := h.shoppingService.Build(c.Context(), middleware.UserID(c))
	if err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedDownloadShoppingList, err)
	}

	c.Attachment(domain.ShoppingListFilename)
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.Status(fiber.StatusOK).SendString(h.shoppingService.Render(list))
}

func (h *recipeHandler) GetShortLink(c *fiber.Ctx) error {
	recipeID, err := pathID(c, domain.ErrRecipeNotFound)
	if err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedGetShortLink, err)
	}

	res, err := h.recipeService.ShortLink(c.Context(), recipeID)
	if err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedGetShortLink, err)
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *recipeHandler) ResolveShortLink(c *fiber.Ctx) error {
	path, err := h.recipeService.ResolveShortLink(c.Context(), c.Params("token"))
	if err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedResolveLink, err)
	}
	return c.Redirect(path, fiber.StatusFound)
}

// respondToggle answers an add with the created representation and a
// remove with an empty 204.
func respondToggle(c *fiber.Ctx, direction relation.Direction, res any, message string) error {
	if direction == relation.Remove {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, message)
}

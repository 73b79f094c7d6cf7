package handlers

import (
	"foodgram/domain"
	"foodgram/internal/api/presenters"
	"foodgram/internal/middleware"
	"foodgram/pkg/relation"
	"foodgram/pkg/user"

	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		Me(c *fiber.Ctx) error
		GetUser(c *fiber.Ctx) error
		GetSubscriptions(c *fiber.Ctx) error
		Subscribe(c *fiber.Ctx) error
		Unsubscribe(c *fiber.Ctx) error
	}

	userHandler struct {
		userService     user.UserService
		relationService relation.RelationService
	}
)

func NewUserHandler(userService user.UserService, relationService relation.RelationService) UserHandler {
	return &userHandler{
		userService:     userService,
		relationService: relationService,
	}
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	res, err := h.userService.GetProfile(c.Context(), userID, userID)
	if err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedGetUser, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUser)
}

func (h *userHandler) GetUser(c *fiber.Ctx) error {
	userID, err := pathID(c, domain.ErrUserNotFound)
	if err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedGetUser, err)
	}

	res, err := h.userService.GetProfile(c.Context(), middleware.UserID(c), userID)
	if err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedGetUser, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUser)
}

func (h *userHandler) GetSubscriptions(c *fiber.Ctx) error {
	page, err := h.userService.GetSubscriptions(c.Context(), middleware.UserID(c), pagination(c), recipesLimit(c))
	if err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedGetSubscriptions, err)
	}
	return presenters.Paginated(c, page, domain.MessageSuccessGetSubscriptions)
}

func (h *userHandler) Subscribe(c *fiber.Ctx) error {
	return h.toggle(c, relation.Add, domain.MessageSuccessSubscribe)
}

func (h *userHandler) Unsubscribe(c *fiber.Ctx) error {
	return h.toggle(c, relation.Remove, domain.MessageSuccessUnsubscribe)
}

func (h *userHandler) toggle(c *fiber.Ctx, direction relation.Direction, success string) error {
	authorID, err := pathID(c, domain.ErrUserNotFound)
	if err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedToggleSubscribe, err)
	}

	res, err := h.relationService.Toggle(c.Context(), relation.Request{
		Kind:         relation.KindFollow,
		Direction:    direction,
		ActorID:      middleware.UserID(c),
		TargetID:     authorID,
		RecipesLimit: recipesLimit(c),
	})
	if err != nil {
		return presenters.ErrorFromDomain(c, domain.MessageFailedToggleSubscribe, err)
	}
	return respondToggle(c, direction, res, success)
}

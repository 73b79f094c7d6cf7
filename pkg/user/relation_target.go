package user

import (
	"context"

	"foodgram/domain"
	"foodgram/pkg/relation"
)

type authorTarget struct {
	userService UserService
}

// NewRelationTarget exposes authors to the follow relation; a successful
// follow answers with the author's card.
func NewRelationTarget(userService UserService) relation.Target {
	return &authorTarget{userService: userService}
}

func (t *authorTarget) Exists(ctx context.Context, id uint) (bool, error) {
	return t.userService.UserExists(ctx, id)
}

func (t *authorTarget) Represent(ctx context.Context, viewerID, id uint, opts relation.RepresentOptions) (any, error) {
	return t.userService.BuildAuthorCard(ctx, id, viewerID, opts.RecipesLimit)
}

func (t *authorTarget) NotFound() error {
	return domain.ErrUserNotFound
}

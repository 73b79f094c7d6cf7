package recipe

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"foodgram/domain"
	"foodgram/internal/metrics"
)

// ShortLink issues the public short URL of an existing recipe.
func (s *recipeService) ShortLink(ctx context.Context, recipeID uint) (domain.ShortLinkResponse, error) {
	exists, err := s.recipeRepository.RecipeExists(ctx, recipeID)
	if err != nil {
		return domain.ShortLinkResponse{}, err
	}
	if !exists {
		return domain.ShortLinkResponse{}, domain.ErrRecipeNotFound
	}
	return domain.ShortLinkResponse{
		ShortLink: fmt.Sprintf("%s/s/%d/", strings.TrimRight(s.appURL, "/"), recipeID),
	}, nil
}

// ResolveShortLink maps a short-link token to the recipe detail path. The
// store is consulted on every call so deleted recipes stop resolving.
func (s *recipeService) ResolveShortLink(ctx context.Context, token string) (string, error) {
	path, err := s.resolve(ctx, token)
	metrics.ShortLinkResolutions.WithLabelValues(metrics.Outcome(err)).Inc()
	return path, err
}

func (s *recipeService) resolve(ctx context.Context, token string) (string, error) {
	id, err := strconv.ParseUint(token, 10, 64)
	if err != nil || id == 0 {
		return "", domain.ErrRecipeNotFound
	}

	exists, err := s.recipeRepository.RecipeExists(ctx, uint(id))
	if err != nil {
		return "", err
	}
	if !exists {
		return "", domain.ErrRecipeNotFound
	}
	return fmt.Sprintf("/api/recipes/%d/", id), nil
}

package user

import (
	"context"
	"errors"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/relation"

	"gorm.io/gorm"
)

type (
	UserService interface {
		GetProfile(ctx context.Context, viewerID, userID uint) (domain.UserProfile, error)
		BuildAuthorCard(ctx context.Context, authorID, viewerID uint, recipesLimit *int) (domain.AuthorCard, error)
		GetSubscriptions(ctx context.Context, viewerID uint, pagination domain.Pagination, recipesLimit *int) (domain.Page[domain.AuthorCard], error)
		UserExists(ctx context.Context, id uint) (bool, error)
	}

	userService struct {
		userRepository     UserRepository
		relationRepository relation.RelationRepository
		s3                 storage.AwsS3
		pageSize           int
	}
)

func NewUserService(userRepository UserRepository, relationRepository relation.RelationRepository, s3 storage.AwsS3, pageSize int) UserService {
	return &userService{
		userRepository:     userRepository,
		relationRepository: relationRepository,
		s3:                 s3,
		pageSize:           pageSize,
	}
}

// ToProfile maps a user onto its public profile for a given subscription state.
func ToProfile(u *entities.User, subscribed bool) domain.UserProfile {
	if u == nil {
		return domain.UserProfile{}
	}
	return domain.UserProfile{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Avatar:       u.Avatar,
		IsSubscribed: subscribed,
	}
}

func (s *userService) UserExists(ctx context.Context, id uint) (bool, error) {
	return s.userRepository.UserExists(ctx, id)
}

func (s *userService) GetProfile(ctx context.Context, viewerID, userID uint) (domain.UserProfile, error) {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserProfile{}, domain.ErrUserNotFound
		}
		return domain.UserProfile{}, err
	}

	subscribed, err := s.isSubscribed(ctx, viewerID, userID)
	if err != nil {
		return domain.UserProfile{}, err
	}
	return ToProfile(u, subscribed), nil
}

func (s *userService) BuildAuthorCard(ctx context.Context, authorID, viewerID uint, recipesLimit *int) (domain.AuthorCard, error) {
	u, err := s.userRepository.GetUserByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AuthorCard{}, domain.ErrUserNotFound
		}
		return domain.AuthorCard{}, err
	}

	subscribed, err := s.isSubscribed(ctx, viewerID, authorID)
	if err != nil {
		return domain.AuthorCard{}, err
	}

	counts, err := s.userRepository.CountAuthorRecipes(ctx, []uint{authorID})
	if err != nil {
		return domain.AuthorCard{}, err
	}

	return s.card(ctx, u, subscribed, counts[authorID], recipesLimit)
}

func (s *userService) GetSubscriptions(ctx context.Context, viewerID uint, pagination domain.Pagination, recipesLimit *int) (domain.Page[domain.AuthorCard], error) {
	if viewerID == 0 {
		return domain.Page[domain.AuthorCard]{}, domain.ErrTokenNotFound
	}
	pagination = pagination.Normalize(s.pageSize)

	authors, count, err := s.userRepository.GetFollowedAuthors(ctx, viewerID, pagination.Page, pagination.Limit)
	if err != nil {
		return domain.Page[domain.AuthorCard]{}, err
	}

	ids := make([]uint, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}
	counts, err := s.userRepository.CountAuthorRecipes(ctx, ids)
	if err != nil {
		return domain.Page[domain.AuthorCard]{}, err
	}

	cards := make([]domain.AuthorCard, 0, len(authors))
	for _, a := range authors {
		card, err := s.card(ctx, a, true, counts[a.ID], recipesLimit)
		if err != nil {
			return domain.Page[domain.AuthorCard]{}, err
		}
		cards = append(cards, card)
	}

	return domain.Page[domain.AuthorCard]{
		Count:   count,
		Page:    pagination.Page,
		Limit:   pagination.Limit,
		Results: cards,
	}, nil
}

func (s *userService) card(ctx context.Context, u *entities.User, subscribed bool, total int64, recipesLimit *int) (domain.AuthorCard, error) {
	recipes, err := s.userRepository.GetAuthorRecipes(ctx, u.ID, recipesLimit)
	if err != nil {
		return domain.AuthorCard{}, err
	}

	shorts := make([]domain.RecipeShort, 0, len(recipes))
	for _, r := range recipes {
		shorts = append(shorts, domain.RecipeShort{
			ID:          r.ID,
			Name:        r.Name,
			Image:       s.s3.GetPublicLinkKey(r.Image),
			CookingTime: r.CookingTime,
		})
	}

	return domain.AuthorCard{
		UserProfile:  ToProfile(u, subscribed),
		Recipes:      shorts,
		RecipesCount: total,
	}, nil
}

func (s *userService) isSubscribed(ctx context.Context, viewerID, authorID uint) (bool, error) {
	if viewerID == 0 || viewerID == authorID {
		return false, nil
	}
	return s.relationRepository.Exists(ctx, relation.KindFollow, viewerID, authorID)
}

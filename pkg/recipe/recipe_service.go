package recipe

import (
	"context"
	"errors"
	"fmt"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/relation"
	"foodgram/pkg/user"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const imageFolder = "recipes/images"

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, authorID uint, req domain.RecipeCreateRequest) (domain.Recipe, error)
		UpdateRecipe(ctx context.Context, actorID, recipeID uint, req domain.RecipeUpdateRequest) (domain.Recipe, error)
		DeleteRecipe(ctx context.Context, actorID, recipeID uint) error
		GetRecipe(ctx context.Context, viewerID, recipeID uint) (domain.Recipe, error)
		GetRecipes(ctx context.Context, viewerID uint, filter domain.RecipeFilter, pagination domain.Pagination) (domain.Page[domain.Recipe], error)
		GetRecipeShort(ctx context.Context, recipeID uint) (domain.RecipeShort, error)
		RecipeExists(ctx context.Context, recipeID uint) (bool, error)
		ShortLink(ctx context.Context, recipeID uint) (domain.ShortLinkResponse, error)
		ResolveShortLink(ctx context.Context, token string) (string, error)
	}

	recipeService struct {
		recipeRepository   RecipeRepository
		relationRepository relation.RelationRepository
		s3                 storage.AwsS3
		appURL             string
		pageSize           int
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	relationRepository relation.RelationRepository,
	s3 storage.AwsS3,
	appURL string,
	pageSize int,
) RecipeService {
	return &recipeService{
		recipeRepository:   recipeRepository,
		relationRepository: relationRepository,
		s3:                 s3,
		appURL:             appURL,
		pageSize:           pageSize,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, authorID uint, req domain.RecipeCreateRequest) (domain.Recipe, error) {
	if authorID == 0 {
		return domain.Recipe{}, domain.ErrTokenNotFound
	}

	ingredients, err := s.checkIngredients(ctx, req.Ingredients)
	if err != nil {
		return domain.Recipe{}, err
	}

	imageKey, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipe := &entities.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Image:       imageKey,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}
	if err := s.recipeRepository.CreateRecipe(ctx, recipe, ingredients); err != nil {
		s.removeImage(ctx, imageKey)
		return domain.Recipe{}, err
	}

	return s.GetRecipe(ctx, authorID, recipe.ID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, actorID, recipeID uint, req domain.RecipeUpdateRequest) (domain.Recipe, error) {
	if actorID == 0 {
		return domain.Recipe{}, domain.ErrTokenNotFound
	}

	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return domain.Recipe{}, err
	}
	if recipe.AuthorID != actorID {
		return domain.Recipe{}, domain.ErrNotAuthor
	}

	if req.Ingredients == nil {
		return domain.Recipe{}, domain.NewValidationError("ingredients", "this field is required")
	}
	ingredients, err := s.checkIngredients(ctx, req.Ingredients)
	if err != nil {
		return domain.Recipe{}, err
	}

	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Text != nil {
		recipe.Text = *req.Text
	}
	if req.CookingTime != nil {
		recipe.CookingTime = *req.CookingTime
	}

	oldImage, newImage := "", ""
	if req.Image != nil {
		if *req.Image == "" {
			return domain.Recipe{}, domain.NewValidationError("image", "this field may not be blank")
		}
		imageKey, err := s.uploadImage(ctx, *req.Image)
		if err != nil {
			return domain.Recipe{}, err
		}
		oldImage, newImage = recipe.Image, imageKey
		recipe.Image = imageKey
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, ingredients); err != nil {
		s.removeImage(ctx, newImage)
		return domain.Recipe{}, err
	}
	s.removeImage(ctx, oldImage)

	return s.GetRecipe(ctx, actorID, recipe.ID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, actorID, recipeID uint) error {
	if actorID == 0 {
		return domain.ErrTokenNotFound
	}

	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != actorID {
		return domain.ErrNotAuthor
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	s.removeImage(ctx, recipe.Image)
	return nil
}

func (s *recipeService) GetRecipe(ctx context.Context, viewerID, recipeID uint) (domain.Recipe, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return domain.Recipe{}, err
	}

	views, err := s.project(ctx, viewerID, []*entities.Recipe{recipe})
	if err != nil {
		return domain.Recipe{}, err
	}
	return views[0], nil
}

func (s *recipeService) GetRecipes(ctx context.Context, viewerID uint, filter domain.RecipeFilter, pagination domain.Pagination) (domain.Page[domain.Recipe], error) {
	pagination = pagination.Normalize(s.pageSize)

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, viewerID, pagination.Page, pagination.Limit)
	if err != nil {
		return domain.Page[domain.Recipe]{}, err
	}

	views, err := s.project(ctx, viewerID, recipes)
	if err != nil {
		return domain.Page[domain.Recipe]{}, err
	}

	return domain.Page[domain.Recipe]{
		Count:   count,
		Page:    pagination.Page,
		Limit:   pagination.Limit,
		Results: views,
	}, nil
}

func (s *recipeService) GetRecipeShort(ctx context.Context, recipeID uint) (domain.RecipeShort, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeShort{}, err
	}
	return domain.RecipeShort{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       s.s3.GetPublicLinkKey(recipe.Image),
		CookingTime: recipe.CookingTime,
	}, nil
}

func (s *recipeService) RecipeExists(ctx context.Context, recipeID uint) (bool, error) {
	return s.recipeRepository.RecipeExists(ctx, recipeID)
}

func (s *recipeService) getRecipe(ctx context.Context, recipeID uint) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

// project builds read views for viewerID. The favorite, cart and
// subscription flags are looked up per call and are all false for
// anonymous viewers.
func (s *recipeService) project(ctx context.Context, viewerID uint, recipes []*entities.Recipe) ([]domain.Recipe, error) {
	recipeIDs := make([]uint, 0, len(recipes))
	authorIDs := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		if r.AuthorID != viewerID {
			authorIDs = append(authorIDs, r.AuthorID)
		}
	}

	favorited, err := s.relationRepository.Related(ctx, relation.KindFavorite, viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}
	inCart, err := s.relationRepository.Related(ctx, relation.KindShoppingCart, viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.relationRepository.Related(ctx, relation.KindFollow, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		lines := make([]domain.RecipeIngredientLine, 0, len(r.Ingredients))
		for _, ri := range r.Ingredients {
			line := domain.RecipeIngredientLine{ID: ri.IngredientID, Amount: ri.Amount}
			if ri.Ingredient != nil {
				line.Name = ri.Ingredient.Name
				line.MeasurementUnit = ri.Ingredient.MeasurementUnit
			}
			lines = append(lines, line)
		}

		views = append(views, domain.Recipe{
			ID:               r.ID,
			Author:           user.ToProfile(r.Author, subscribed[r.AuthorID]),
			Ingredients:      lines,
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Name:             r.Name,
			Image:            s.s3.GetPublicLinkKey(r.Image),
			Text:             r.Text,
			CookingTime:      r.CookingTime,
		})
	}
	return views, nil
}

// checkIngredients rejects repeated or unknown ingredient ids and returns the
// rows to persist in request order.
func (s *recipeService) checkIngredients(ctx context.Context, items []domain.IngredientAmount) ([]*entities.RecipeIngredient, error) {
	if len(items) == 0 {
		return nil, domain.NewValidationError("ingredients", "must contain at least 1 item(s)")
	}

	seen := make(map[uint]struct{}, len(items))
	ids := make([]uint, 0, len(items))
	for i, item := range items {
		if item.Amount < 1 {
			return nil, domain.NewValidationError(fmt.Sprintf("ingredients[%d].amount", i), "must be greater than or equal to 1")
		}
		if _, dup := seen[item.ID]; dup {
			return nil, domain.NewValidationError("ingredients", fmt.Sprintf("ingredient %d is listed more than once", item.ID))
		}
		seen[item.ID] = struct{}{}
		ids = append(ids, item.ID)
	}

	existing, err := s.recipeRepository.GetExistingIngredientIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[uint]struct{}, len(existing))
	for _, id := range existing {
		found[id] = struct{}{}
	}

	rows := make([]*entities.RecipeIngredient, 0, len(items))
	for _, item := range items {
		if _, ok := found[item.ID]; !ok {
			return nil, domain.NewValidationError("ingredients", fmt.Sprintf("ingredient %d does not exist", item.ID))
		}
		rows = append(rows, &entities.RecipeIngredient{IngredientID: item.ID, Amount: item.Amount})
	}
	return rows, nil
}

func (s *recipeService) uploadImage(ctx context.Context, dataURI string) (string, error) {
	data, ext, err := storage.DecodeDataURI(dataURI)
	if err != nil {
		return "", domain.NewValidationError("image", err.Error())
	}

	key, err := s.s3.UploadFile(ctx, uuid.NewString()+ext, data, imageFolder, storage.AllowImage...)
	if err != nil {
		if errors.Is(err, storage.ErrFileTypeNotAllowed) {
			return "", domain.NewValidationError("image", err.Error())
		}
		return "", err
	}
	return key, nil
}

func (s *recipeService) removeImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, key); err != nil {
		log.Warnw("failed to remove recipe image", "key", key, "error", err)
	}
}

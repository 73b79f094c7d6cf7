package ingredient

import (
	"context"
	"errors"
	"strings"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, name string) ([]domain.Ingredient, error)
		GetIngredient(ctx context.Context, id uint) (domain.Ingredient, error)
		LoadIngredients(ctx context.Context, seeds []domain.IngredientSeed) (domain.IngredientLoadResult, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
		validator            *validator.Validate
	}
)

func NewIngredientService(ingredientRepository IngredientRepository, validator *validator.Validate) IngredientService {
	return &ingredientService{
		ingredientRepository: ingredientRepository,
		validator:            validator,
	}
}

func (s *ingredientService) GetIngredients(ctx context.Context, name string) ([]domain.Ingredient, error) {
	ingredients, err := s.ingredientRepository.GetIngredients(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}

	res := make([]domain.Ingredient, 0, len(ingredients))
	for _, i := range ingredients {
		res = append(res, toIngredient(i))
	}
	return res, nil
}

func (s *ingredientService) GetIngredient(ctx context.Context, id uint) (domain.Ingredient, error) {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Ingredient{}, domain.ErrIngredientNotFound
		}
		return domain.Ingredient{}, err
	}
	return toIngredient(ingredient), nil
}

// LoadIngredients validates every seed before inserting any of them.
// Pairs already in the catalogue, and repeats within seeds, are skipped.
func (s *ingredientService) LoadIngredients(ctx context.Context, seeds []domain.IngredientSeed) (domain.IngredientLoadResult, error) {
	type pair struct{ name, unit string }
	seen := make(map[pair]struct{}, len(seeds))
	rows := make([]*entities.Ingredient, 0, len(seeds))

	for _, seed := range seeds {
		seed.Name = strings.TrimSpace(seed.Name)
		seed.MeasurementUnit = strings.TrimSpace(seed.MeasurementUnit)
		if err := utils.ValidateStruct(s.validator, seed); err != nil {
			return domain.IngredientLoadResult{}, err
		}

		key := pair{seed.Name, seed.MeasurementUnit}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, &entities.Ingredient{Name: seed.Name, MeasurementUnit: seed.MeasurementUnit})
	}

	added, err := s.ingredientRepository.InsertIngredients(ctx, rows)
	if err != nil {
		return domain.IngredientLoadResult{}, err
	}
	return domain.IngredientLoadResult{
		Added:   int(added),
		Skipped: len(seeds) - int(added),
	}, nil
}

func toIngredient(i *entities.Ingredient) domain.Ingredient {
	return domain.Ingredient{
		ID:              i.ID,
		Name:            i.Name,
		MeasurementUnit: i.MeasurementUnit,
	}
}

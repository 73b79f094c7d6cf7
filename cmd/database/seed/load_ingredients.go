package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"foodgram/domain"
	"foodgram/internal/utils"
	"foodgram/pkg/ingredient"

	"gorm.io/gorm"
)

// LoadIngredientsFile loads a JSON array of {"name", "measurement_unit"}
// objects into the ingredient catalogue.
func LoadIngredientsFile(ctx context.Context, db *gorm.DB, path string) (domain.IngredientLoadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.IngredientLoadResult{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	return LoadIngredients(ctx, db, file)
}

func LoadIngredients(ctx context.Context, db *gorm.DB, r io.Reader) (domain.IngredientLoadResult, error) {
	var seeds []domain.IngredientSeed
	if err := json.NewDecoder(r).Decode(&seeds); err != nil {
		return domain.IngredientLoadResult{}, fmt.Errorf("decode ingredients: %w", err)
	}

	service := ingredient.NewIngredientService(ingredient.NewIngredientRepository(db), utils.NewValidator())
	return service.LoadIngredients(ctx, seeds)
}

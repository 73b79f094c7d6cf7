package ingredient_test

import (
	"context"
	"testing"

	"foodgram/domain"
	"foodgram/internal/testutil"
	"foodgram/internal/utils"
	"foodgram/pkg/ingredient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (ingredient.IngredientService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupDB(t)
	return ingredient.NewIngredientService(ingredient.NewIngredientRepository(db), utils.NewValidator()), db
}

func names(items []domain.Ingredient) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.Name)
	}
	return out
}

func TestGetIngredients_CaseInsensitivePrefix(t *testing.T) {
	svc, db := setup(t)
	testutil.CreateIngredient(t, db, "Salt", "g")
	testutil.CreateIngredient(t, db, "salmon", "g")
	testutil.CreateIngredient(t, db, "sugar", "g")
	testutil.CreateIngredient(t, db, "sea salt", "g")

	got, err := svc.GetIngredients(context.Background(), "sal")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Salt", "salmon"}, names(got))

	all, err := svc.GetIngredients(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestGetIngredients_EscapesWildcards(t *testing.T) {
	svc, db := setup(t)
	testutil.CreateIngredient(t, db, "50% cream", "ml")
	testutil.CreateIngredient(t, db, "500 grams", "g")

	got, err := svc.GetIngredients(context.Background(), "50%")
	require.NoError(t, err)
	assert.Equal(t, []string{"50% cream"}, names(got))
}

func TestGetIngredient(t *testing.T) {
	svc, db := setup(t)
	salt := testutil.CreateIngredient(t, db, "salt", "g")

	got, err := svc.GetIngredient(context.Background(), salt.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Ingredient{ID: salt.ID, Name: "salt", MeasurementUnit: "g"}, got)

	_, err = svc.GetIngredient(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

func TestLoadIngredients_SkipsExistingPairs(t *testing.T) {
	svc, db := setup(t)
	testutil.CreateIngredient(t, db, "salt", "g")

	res, err := svc.LoadIngredients(context.Background(), []domain.IngredientSeed{
		{Name: "salt", MeasurementUnit: "g"},
		{Name: "salt", MeasurementUnit: "tsp"},
		{Name: "pepper", MeasurementUnit: "g"},
		{Name: "pepper", MeasurementUnit: "g"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.IngredientLoadResult{Added: 2, Skipped: 2}, res)

	all, err := svc.GetIngredients(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLoadIngredients_RejectsBlankFields(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.LoadIngredients(context.Background(), []domain.IngredientSeed{{Name: " ", MeasurementUnit: "g"}})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

package utils

import (
	"errors"
	"testing"

	"foodgram/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestValidateStruct_ReportsJSONFieldPath(t *testing.T) {
	v := NewValidator()

	err := ValidateStruct(v, domain.RecipeCreateRequest{
		Ingredients: []domain.IngredientAmount{{ID: 1, Amount: 0}},
		Image:       "data:image/png;base64,AAAA",
		Name:        "Soup",
		Text:        "Boil.",
		CookingTime: 5,
	})
	require.Error(t, err)

	domainErr, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeValidation, domainErr.Code)
	assert.Equal(t, "ingredients[0].amount", domainErr.Field)
	assert.Equal(t, "must be greater than or equal to 1", domainErr.Message)
}

func TestValidateStruct_Required(t *testing.T) {
	err := ValidateStruct(NewValidator(), domain.IngredientSeed{MeasurementUnit: "g"})
	require.Error(t, err)

	domainErr, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "name", domainErr.Field)
	assert.Equal(t, "this field is required", domainErr.Message)
}

func TestValidateStruct_UpdateAllowsOmittedFields(t *testing.T) {
	assert.NoError(t, ValidateStruct(NewValidator(), domain.RecipeUpdateRequest{}))

	zero := 0
	assert.ErrorIs(t, ValidateStruct(NewValidator(), domain.RecipeUpdateRequest{CookingTime: &zero}), domain.ErrValidation)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: favorites.user_id, favorites.recipe_id")))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}

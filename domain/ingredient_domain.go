package domain

var (
	MessageSuccessGetIngredients = "success get ingredients"
	MessageSuccessGetIngredient  = "success get ingredient"

	MessageFailedGetIngredients = "failed to get ingredients"
	MessageFailedGetIngredient  = "failed to get ingredient"

	ErrIngredientNotFound = NewNotFoundError("ingredient not found")
)

type (
	Ingredient struct {
		ID              uint   `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}

	IngredientSeed struct {
		Name            string `json:"name" validate:"required,max=256"`
		MeasurementUnit string `json:"measurement_unit" validate:"required,max=32"`
	}

	IngredientLoadResult struct {
		Added   int
		Skipped int
	}
)

package domain

import "time"

var (
	MessageFailedDownloadShoppingList = "failed to build shopping list"

	ShoppingListFilename = "shopping_list.txt"
)

type (
	ShoppingListItem struct {
		Name            string
		MeasurementUnit string
		Amount          int64
	}

	ShoppingListRecipe struct {
		Name   string
		Author string
	}

	ShoppingList struct {
		Username    string
		GeneratedAt time.Time
		Items       []ShoppingListItem
		Recipes     []ShoppingListRecipe
	}
)

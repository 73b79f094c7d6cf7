package testutil

import (
	"fmt"
	"testing"
	"time"

	"foodgram/entities"

	"gorm.io/gorm"
)

// PNGDataURI is the smallest payload the image store sniffs as image/png.
const PNGDataURI = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUg=="

func CreateUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	t.Helper()
	u := &entities.User{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: username,
		LastName:  "Tester",
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func CreateIngredient(t *testing.T, db *gorm.DB, name, unit string) *entities.Ingredient {
	t.Helper()
	i := &entities.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(i).Error; err != nil {
		t.Fatalf("create ingredient %s: %v", name, err)
	}
	return i
}

// Amount pairs an ingredient with a quantity for CreateRecipe.
type Amount struct {
	Ingredient *entities.Ingredient
	Amount     int
}

// CreateRecipe stores a recipe whose created_at is offset by age from a fixed
// base time, so ordering in tests is deterministic: a larger age is older.
func CreateRecipe(t *testing.T, db *gorm.DB, author *entities.User, name string, age time.Duration, amounts ...Amount) *entities.Recipe {
	t.Helper()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r := &entities.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Image:       fmt.Sprintf("recipes/images/%s.png", name),
		Text:        "Mix and cook.",
		CookingTime: 10,
	}
	r.CreatedAt = base.Add(-age)
	if err := db.Omit("Author", "Ingredients").Create(r).Error; err != nil {
		t.Fatalf("create recipe %s: %v", name, err)
	}
	for _, a := range amounts {
		ri := &entities.RecipeIngredient{RecipeID: r.ID, IngredientID: a.Ingredient.ID, Amount: a.Amount}
		if err := db.Omit("Ingredient").Create(ri).Error; err != nil {
			t.Fatalf("create recipe ingredient: %v", err)
		}
	}
	return r
}

func AddFavorite(t *testing.T, db *gorm.DB, u *entities.User, r *entities.Recipe) {
	t.Helper()
	if err := db.Omit("User", "Recipe").Create(&entities.Favorite{UserID: u.ID, RecipeID: r.ID}).Error; err != nil {
		t.Fatalf("add favorite: %v", err)
	}
}

func AddToCart(t *testing.T, db *gorm.DB, u *entities.User, r *entities.Recipe) {
	t.Helper()
	if err := db.Omit("User", "Recipe").Create(&entities.ShoppingCart{UserID: u.ID, RecipeID: r.ID}).Error; err != nil {
		t.Fatalf("add to cart: %v", err)
	}
}

func AddFollow(t *testing.T, db *gorm.DB, follower, author *entities.User) {
	t.Helper()
	if err := db.Omit("User", "Author").Create(&entities.Follow{UserID: follower.ID, AuthorID: author.ID}).Error; err != nil {
		t.Fatalf("add follow: %v", err)
	}
}

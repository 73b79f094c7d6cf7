package shopping

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"foodgram/domain"
	"foodgram/internal/metrics"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

const timeLayout = "2006-01-02 15:04:05"

type (
	ShoppingService interface {
		Build(ctx context.Context, userID uint) (domain.ShoppingList, error)
		Render(list domain.ShoppingList) string
	}

	shoppingService struct {
		shoppingRepository ShoppingRepository
		now                func() time.Time
	}
)

func NewShoppingService(shoppingRepository ShoppingRepository, now func() time.Time) ShoppingService {
	if now == nil {
		now = time.Now
	}
	return &shoppingService{
		shoppingRepository: shoppingRepository,
		now:                now,
	}
}

func (s *shoppingService) Build(ctx context.Context, userID uint) (domain.ShoppingList, error) {
	list, err := s.build(ctx, userID)
	metrics.ShoppingLists.WithLabelValues(metrics.Outcome(err)).Inc()
	return list, err
}

func (s *shoppingService) build(ctx context.Context, userID uint) (domain.ShoppingList, error) {
	if userID == 0 {
		return domain.ShoppingList{}, domain.ErrTokenNotFound
	}

	user, err := s.shoppingRepository.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ShoppingList{}, domain.ErrUserNotFound
		}
		return domain.ShoppingList{}, err
	}

	rows, err := s.shoppingRepository.GetCartIngredients(ctx, userID)
	if err != nil {
		return domain.ShoppingList{}, err
	}
	recipeRows, err := s.shoppingRepository.GetCartRecipes(ctx, userID)
	if err != nil {
		return domain.ShoppingList{}, err
	}

	recipes := make([]domain.ShoppingListRecipe, 0, len(recipeRows))
	for _, r := range recipeRows {
		recipes = append(recipes, domain.ShoppingListRecipe{Name: r.Name, Author: r.Author})
	}

	return domain.ShoppingList{
		Username:    user.Username,
		GeneratedAt: s.now(),
		Items:       Aggregate(rows),
		Recipes:     recipes,
	}, nil
}

// Aggregate sums amounts per (name, unit) pair. Different units of the same
// ingredient stay separate lines. The result is sorted by name; equal names
// keep the order in which they first appeared.
func Aggregate(rows []CartIngredientRow) []domain.ShoppingListItem {
	type key struct{ name, unit string }
	index := make(map[key]int, len(rows))
	items := make([]domain.ShoppingListItem, 0, len(rows))

	for _, row := range rows {
		k := key{row.Name, row.MeasurementUnit}
		if i, ok := index[k]; ok {
			items[i].Amount += row.Amount
			continue
		}
		index[k] = len(items)
		items = append(items, domain.ShoppingListItem{
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Amount:          row.Amount,
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

func (s *shoppingService) Render(list domain.ShoppingList) string {
	title := cases.Title(language.Und)

	var b strings.Builder
	fmt.Fprintf(&b, "Shopping list for %s — %s\n", list.Username, list.GeneratedAt.Format(timeLayout))
	b.WriteString("Ingredients:\n")
	for i, item := range list.Items {
		fmt.Fprintf(&b, "%d. %s (%s) — %d\n", i+1, title.String(item.Name), item.MeasurementUnit, item.Amount)
	}
	b.WriteString("Recipes:\n")
	for _, r := range list.Recipes {
		fmt.Fprintf(&b, "%s — %s\n", r.Name, r.Author)
	}
	return b.String()
}

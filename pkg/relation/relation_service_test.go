package relation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/testutil"
	"foodgram/pkg/recipe"
	"foodgram/pkg/relation"
	"foodgram/pkg/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T) (relation.RelationService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupDB(t)
	s3 := testutil.NewFakeStorage()

	relationRepository := relation.NewRelationRepository(db)
	userService := user.NewUserService(user.NewUserRepository(db), relationRepository, s3, domain.DefaultPageSize)
	recipeService := recipe.NewRecipeService(recipe.NewRecipeRepository(db), relationRepository, s3, "http://localhost", domain.DefaultPageSize)

	return relation.NewRelationService(relationRepository, map[relation.Kind]relation.Target{
		relation.KindFavorite:     recipe.NewRelationTarget(recipeService),
		relation.KindShoppingCart: recipe.NewRelationTarget(recipeService),
		relation.KindFollow:       user.NewRelationTarget(userService),
	}), db
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestToggle_FavoriteAddReturnsShortRecipe(t *testing.T) {
	svc, db := newService(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	r := testutil.CreateRecipe(t, db, alice, "Pancakes", 0)

	res, err := svc.Toggle(context.Background(), relation.Request{
		Kind: relation.KindFavorite, Direction: relation.Add, ActorID: bob.ID, TargetID: r.ID,
	})
	require.NoError(t, err)

	short, ok := res.(domain.RecipeShort)
	require.True(t, ok)
	assert.Equal(t, r.ID, short.ID)
	assert.Equal(t, "Pancakes", short.Name)
	assert.Equal(t, 10, short.CookingTime)
	assert.Equal(t, "http://files.test/recipes/images/Pancakes.png", short.Image)
	assert.Equal(t, int64(1), count(t, db, &entities.Favorite{}))
}

func TestToggle_DuplicateAddIsRejected(t *testing.T) {
	for _, kind := range []relation.Kind{relation.KindFavorite, relation.KindShoppingCart} {
		t.Run(string(kind), func(t *testing.T) {
			svc, db := newService(t)
			alice := testutil.CreateUser(t, db, "alice")
			r := testutil.CreateRecipe(t, db, alice, "Soup", 0)
			req := relation.Request{Kind: kind, Direction: relation.Add, ActorID: alice.ID, TargetID: r.ID}

			_, err := svc.Toggle(context.Background(), req)
			require.NoError(t, err)

			_, err = svc.Toggle(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrDuplicateRelation)
		})
	}
}

func TestToggle_RemoveTwiceReportsMissingRelation(t *testing.T) {
	svc, db := newService(t)
	alice := testutil.CreateUser(t, db, "alice")
	r := testutil.CreateRecipe(t, db, alice, "Soup", 0)
	testutil.AddToCart(t, db, alice, r)

	req := relation.Request{Kind: relation.KindShoppingCart, Direction: relation.Remove, ActorID: alice.ID, TargetID: r.ID}

	res, err := svc.Toggle(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, int64(0), count(t, db, &entities.ShoppingCart{}))

	_, err = svc.Toggle(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrRelationNotFound)
}

func TestToggle_AddRemoveAddRestoresMembership(t *testing.T) {
	svc, db := newService(t)
	alice := testutil.CreateUser(t, db, "alice")
	r := testutil.CreateRecipe(t, db, alice, "Soup", 0)
	ctx := context.Background()

	for _, direction := range []relation.Direction{relation.Add, relation.Remove, relation.Add} {
		_, err := svc.Toggle(ctx, relation.Request{Kind: relation.KindFavorite, Direction: direction, ActorID: alice.ID, TargetID: r.ID})
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), count(t, db, &entities.Favorite{}))
}

func TestToggle_MissingTargetIsNotFound(t *testing.T) {
	svc, db := newService(t)
	alice := testutil.CreateUser(t, db, "alice")

	_, err := svc.Toggle(context.Background(), relation.Request{
		Kind: relation.KindFavorite, Direction: relation.Add, ActorID: alice.ID, TargetID: 999,
	})
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	_, err = svc.Toggle(context.Background(), relation.Request{
		Kind: relation.KindFollow, Direction: relation.Remove, ActorID: alice.ID, TargetID: 999,
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestToggle_SelfFollowIsForbidden(t *testing.T) {
	svc, db := newService(t)
	alice := testutil.CreateUser(t, db, "alice")

	_, err := svc.Toggle(context.Background(), relation.Request{
		Kind: relation.KindFollow, Direction: relation.Add, ActorID: alice.ID, TargetID: alice.ID,
	})
	assert.ErrorIs(t, err, domain.ErrSelfReferenceForbidden)
	assert.Equal(t, int64(0), count(t, db, &entities.Follow{}))
}

func TestToggle_FollowReturnsAuthorCard(t *testing.T) {
	svc, db := newService(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	for i, name := range []string{"A", "B", "C", "D", "E"} {
		testutil.CreateRecipe(t, db, bob, name, time.Duration(i)*time.Hour)
	}

	limit := 2
	res, err := svc.Toggle(context.Background(), relation.Request{
		Kind: relation.KindFollow, Direction: relation.Add, ActorID: alice.ID, TargetID: bob.ID, RecipesLimit: &limit,
	})
	require.NoError(t, err)

	card, ok := res.(domain.AuthorCard)
	require.True(t, ok)
	assert.Equal(t, bob.ID, card.ID)
	assert.True(t, card.IsSubscribed)
	assert.Equal(t, int64(5), card.RecipesCount)
	require.Len(t, card.Recipes, 2)
	assert.Equal(t, "A", card.Recipes[0].Name)
	assert.Equal(t, "B", card.Recipes[1].Name)
}

func TestToggle_AnonymousActorIsUnauthorized(t *testing.T) {
	svc, db := newService(t)
	alice := testutil.CreateUser(t, db, "alice")
	r := testutil.CreateRecipe(t, db, alice, "Soup", 0)

	_, err := svc.Toggle(context.Background(), relation.Request{
		Kind: relation.KindFavorite, Direction: relation.Add, TargetID: r.ID,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestToggle_ConcurrentAddsKeepOneRow(t *testing.T) {
	svc, db := newService(t)
	alice := testutil.CreateUser(t, db, "alice")
	r := testutil.CreateRecipe(t, db, alice, "Soup", 0)
	req := relation.Request{Kind: relation.KindFavorite, Direction: relation.Add, ActorID: alice.ID, TargetID: r.ID}

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Toggle(context.Background(), req)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrDuplicateRelation), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int64(1), count(t, db, &entities.Favorite{}))
}

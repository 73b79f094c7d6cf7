package config

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"foodgram/entities"
	"foodgram/internal/testutil"
	"foodgram/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type testApp struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestApp(t *testing.T) testApp {
	t.Helper()
	db := testutil.SetupDB(t)
	app := BuildApp(db, Options{
		Storage:   testutil.NewFakeStorage(),
		JWTSecret: testSecret,
		AppURL:    "http://example.com",
		PageSize:  6,
		Now:       func() time.Time { return time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC) },
	})
	return testApp{app: app, db: db}
}

func token(t *testing.T, u *entities.User) string {
	t.Helper()
	tok, err := jwt.NewJWTService(testSecret).GenerateTokenUser(u.ID)
	require.NoError(t, err)
	return tok
}

func (a testApp) do(t *testing.T, method, path, tok, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	res, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return res
}

func decode(t *testing.T, res *http.Response) map[string]any {
	t.Helper()
	defer res.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func id(v uint) string { return strconv.FormatUint(uint64(v), 10) }

func TestPing(t *testing.T) {
	a := newTestApp(t)
	res := a.do(t, http.MethodGet, "/api/ping", "", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestFavoriteToggleOverHTTP(t *testing.T) {
	a := newTestApp(t)
	alice := testutil.CreateUser(t, a.db, "alice")
	bob := testutil.CreateUser(t, a.db, "bob")
	r := testutil.CreateRecipe(t, a.db, alice, "Soup", 0)
	path := "/api/recipes/" + id(r.ID) + "/favorite/"

	res := a.do(t, http.MethodPost, path, "", "")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res = a.do(t, http.MethodPost, path, token(t, bob), "")
	require.Equal(t, http.StatusCreated, res.StatusCode)
	data := decode(t, res)["data"].(map[string]any)
	assert.Equal(t, "Soup", data["name"])

	res = a.do(t, http.MethodPost, path, token(t, bob), "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = a.do(t, http.MethodDelete, path, token(t, bob), "")
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	res = a.do(t, http.MethodDelete, path, token(t, bob), "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = a.do(t, http.MethodPost, "/api/recipes/999/favorite/", token(t, bob), "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestSubscribeOverHTTP(t *testing.T) {
	a := newTestApp(t)
	alice := testutil.CreateUser(t, a.db, "alice")
	bob := testutil.CreateUser(t, a.db, "bob")
	for i := 0; i < 3; i++ {
		testutil.CreateRecipe(t, a.db, bob, "r"+strconv.Itoa(i), time.Duration(i)*time.Hour)
	}

	res := a.do(t, http.MethodPost, "/api/users/"+id(alice.ID)+"/subscribe/", token(t, alice), "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = a.do(t, http.MethodPost, "/api/users/"+id(bob.ID)+"/subscribe/?recipes_limit=1", token(t, alice), "")
	require.Equal(t, http.StatusCreated, res.StatusCode)
	card := decode(t, res)["data"].(map[string]any)
	assert.Equal(t, true, card["is_subscribed"])
	assert.Equal(t, float64(3), card["recipes_count"])
	assert.Len(t, card["recipes"], 1)

	res = a.do(t, http.MethodGet, "/api/users/subscriptions/?recipes_limit=abc", token(t, alice), "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	page := decode(t, res)["data"].(map[string]any)
	assert.Equal(t, float64(1), page["count"])
	assert.Nil(t, page["next"])
	results := page["results"].([]any)
	require.Len(t, results, 1)
	assert.Len(t, results[0].(map[string]any)["recipes"], 3)

	res = a.do(t, http.MethodGet, "/api/users/"+id(bob.ID)+"/", token(t, alice), "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, true, decode(t, res)["data"].(map[string]any)["is_subscribed"])

	res = a.do(t, http.MethodGet, "/api/users/me/", token(t, alice), "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "alice", decode(t, res)["data"].(map[string]any)["username"])
}

func TestRecipeWriteOverHTTP(t *testing.T) {
	a := newTestApp(t)
	alice := testutil.CreateUser(t, a.db, "alice")
	bob := testutil.CreateUser(t, a.db, "bob")
	flour := testutil.CreateIngredient(t, a.db, "flour", "g")

	body := `{"ingredients":[{"id":` + id(flour.ID) + `,"amount":250}],"image":"` + testutil.PNGDataURI +
		`","name":"Bread","text":"Bake it.","cooking_time":40}`
	res := a.do(t, http.MethodPost, "/api/recipes/", token(t, alice), body)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	created := decode(t, res)["data"].(map[string]any)
	recipeID := strconv.FormatFloat(created["id"].(float64), 'f', 0, 64)

	res = a.do(t, http.MethodPost, "/api/recipes/", token(t, alice),
		`{"ingredients":[],"image":"`+testutil.PNGDataURI+`","name":"Empty","text":"x","cooking_time":0}`)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.NotEmpty(t, decode(t, res)["errors"])

	res = a.do(t, http.MethodPatch, "/api/recipes/"+recipeID+"/", token(t, bob), `{"name":"Mine"}`)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res = a.do(t, http.MethodPatch, "/api/recipes/"+recipeID+"/", token(t, alice), `{"name":"Rye"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = a.do(t, http.MethodPatch, "/api/recipes/"+recipeID+"/", token(t, alice),
		`{"name":"Rye","ingredients":[{"id":`+id(flour.ID)+`,"amount":300}]}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Rye", decode(t, res)["data"].(map[string]any)["name"])

	res = a.do(t, http.MethodGet, "/api/recipes/"+recipeID+"/", "", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res = a.do(t, http.MethodDelete, "/api/recipes/"+recipeID+"/", token(t, alice), "")
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	res = a.do(t, http.MethodGet, "/api/recipes/"+recipeID+"/", "", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestRecipeListOverHTTP(t *testing.T) {
	a := newTestApp(t)
	alice := testutil.CreateUser(t, a.db, "alice")
	for i := 0; i < 7; i++ {
		testutil.CreateRecipe(t, a.db, alice, "r"+strconv.Itoa(i), time.Duration(i)*time.Minute)
	}

	res := a.do(t, http.MethodGet, "/api/recipes/?author="+id(alice.ID), "", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	page := decode(t, res)["data"].(map[string]any)
	assert.Equal(t, float64(7), page["count"])
	assert.Len(t, page["results"], 6)
	assert.Nil(t, page["previous"])
	next, ok := page["next"].(string)
	require.True(t, ok)
	assert.Contains(t, next, "page=2")
	assert.Contains(t, next, "author="+id(alice.ID))

	res = a.do(t, http.MethodGet, "/api/recipes/?page=2", "", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	page = decode(t, res)["data"].(map[string]any)
	assert.Len(t, page["results"], 1)
	assert.Nil(t, page["next"])
	assert.NotNil(t, page["previous"])

	res = a.do(t, http.MethodGet, "/api/recipes/", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestShoppingCartDownloadOverHTTP(t *testing.T) {
	a := newTestApp(t)
	alice := testutil.CreateUser(t, a.db, "alice")
	flour := testutil.CreateIngredient(t, a.db, "flour", "g")
	r := testutil.CreateRecipe(t, a.db, alice, "Pancakes", 0, testutil.Amount{Ingredient: flour, Amount: 500})

	res := a.do(t, http.MethodPost, "/api/recipes/"+id(r.ID)+"/shopping_cart/", token(t, alice), "")
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res = a.do(t, http.MethodGet, "/api/recipes/download_shopping_cart/", token(t, alice), "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Disposition"), "shopping_list.txt")
	assert.Equal(t, "text/plain; charset=utf-8", res.Header.Get("Content-Type"))

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, "Shopping list for alice — 2024-05-17 09:30:00\n"+
		"Ingredients:\n"+
		"1. Flour (g) — 500\n"+
		"Recipes:\n"+
		"Pancakes — alice\n", string(body))

	res = a.do(t, http.MethodGet, "/api/recipes/download_shopping_cart/", "", "")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestShortLinkOverHTTP(t *testing.T) {
	a := newTestApp(t)
	alice := testutil.CreateUser(t, a.db, "alice")
	r := testutil.CreateRecipe(t, a.db, alice, "Soup", 0)

	res := a.do(t, http.MethodGet, "/api/recipes/"+id(r.ID)+"/get-link/", "", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "http://example.com/s/"+id(r.ID)+"/", decode(t, res)["short-link"])

	res = a.do(t, http.MethodGet, "/s/"+id(r.ID)+"/", "", "")
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/api/recipes/"+id(r.ID)+"/", res.Header.Get("Location"))

	res = a.do(t, http.MethodGet, "/s/999/", "", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestIngredientsOverHTTP(t *testing.T) {
	a := newTestApp(t)
	testutil.CreateIngredient(t, a.db, "Salt", "g")
	testutil.CreateIngredient(t, a.db, "sugar", "g")

	res := a.do(t, http.MethodGet, "/api/ingredients/?name=sal", "", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	items := decode(t, res)["data"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Salt", items[0].(map[string]any)["name"])

	res = a.do(t, http.MethodGet, "/api/ingredients/999/", "", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestApp(t)
	res := a.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}

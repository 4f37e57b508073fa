package recipe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartplates/internal/infrastructure/store"
	"smartplates/internal/pkg/common"
)

type fakeExternal struct {
	recipes []Recipe
	err     error
	queries []string
}

func (f *fakeExternal) SearchRecipes(_ context.Context, query string) ([]Recipe, error) {
	f.queries = append(f.queries, query)
	return f.recipes, f.err
}

type fakeGenerator struct {
	content string
	err     error
	prompt  string
}

func (f *fakeGenerator) GenerateResponse(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.content, f.err
}

func newTestService(external ExternalSource, generator Generator) *Service {
	s := NewService(store.NewMemoryStore(), nil, external, generator, nil)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	s.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return s
}

func mustCreate(t *testing.T, s *Service, owner, title string, ingredients ...string) *Recipe {
	t.Helper()
	r := &Recipe{Title: title}
	for _, name := range ingredients {
		r.Ingredients = append(r.Ingredients, Ingredient{Name: name, Amount: 1})
	}
	created, err := s.Create(context.Background(), owner, r)
	require.NoError(t, err)
	return created
}

func TestService_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestService(nil, nil)

	created := mustCreate(t, s, "u1", "  Tomato Soup ", "tomato")
	assert.True(t, common.IsUUID(created.ID))
	assert.Equal(t, "Tomato Soup", created.Title)
	assert.Equal(t, SourceUser, created.Source)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Ingredients, got.Ingredients)

	assert.ErrorIs(t, s.Delete(ctx, "u2", created.ID), common.ErrRecipeNotFound)
	require.NoError(t, s.Delete(ctx, "u1", created.ID))
	_, err = s.Get(ctx, created.ID)
	assert.ErrorIs(t, err, common.ErrRecipeNotFound)
}

func TestService_CreateValidation(t *testing.T) {
	s := newTestService(nil, nil)
	ctx := context.Background()

	_, err := s.Create(ctx, "u1", &Recipe{})
	assert.True(t, common.IsValidationError(err))
	_, err = s.Create(ctx, "u1", &Recipe{Title: "x", Ingredients: []Ingredient{{Name: " "}}})
	assert.True(t, common.IsValidationError(err))
	_, err = s.Create(ctx, "u1", &Recipe{Title: "x", Ingredients: []Ingredient{{Name: "salt", Amount: -1}}})
	assert.True(t, common.IsValidationError(err))
}

func TestService_ListIsOwnerScopedAndOrdered(t *testing.T) {
	s := newTestService(nil, nil)
	mustCreate(t, s, "u1", "First")
	mustCreate(t, s, "u2", "Other")
	mustCreate(t, s, "u1", "Second")

	list, err := s.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "First", list[0].Title)
	assert.Equal(t, "Second", list[1].Title)
}

func TestService_Search(t *testing.T) {
	s := newTestService(nil, nil)
	mustCreate(t, s, "u1", "Chicken Stir Fry", "chicken breast", "soy sauce")
	mustCreate(t, s, "u1", "Tomato Soup", "tomato")
	mustCreate(t, s, "u2", "Chicken Curry", "chicken")

	got, err := s.Search(context.Background(), "u1", "chiken", false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Chicken Stir Fry", got[0].Title)

	all, err := s.Search(context.Background(), "u1", "", true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestService_SearchIncludesExternal(t *testing.T) {
	ext := &fakeExternal{recipes: []Recipe{
		{ID: "spoonacular-1", ExternalID: "1", Title: "Tomato Soup", Source: SourceExternal},
		{ID: "spoonacular-2", ExternalID: "2", Title: "Roasted Tomato Pasta", Source: SourceExternal},
		{ID: "spoonacular-2", ExternalID: "2", Title: "Roasted Tomato Pasta", Source: SourceExternal},
	}}
	s := newTestService(ext, nil)
	mustCreate(t, s, "u1", "Tomato Soup", "tomato")

	got, err := s.Search(context.Background(), "u1", "tomato", true)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, SourceUser, got[0].Source)
	assert.Equal(t, "Roasted Tomato Pasta", got[1].Title)
	assert.Equal(t, []string{"tomato"}, ext.queries)

	_, err = s.Search(context.Background(), "u1", "tomato", false)
	require.NoError(t, err)
	assert.Len(t, ext.queries, 1)
}

func TestService_SearchExternalFailureFallsBack(t *testing.T) {
	ext := &fakeExternal{err: common.ErrUpstreamError}
	s := newTestService(ext, nil)
	mustCreate(t, s, "u1", "Tomato Soup", "tomato")

	got, err := s.Search(context.Background(), "u1", "soup", true)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestService_Generate(t *testing.T) {
	gen := &fakeGenerator{content: "Here you go:\n```json\n" +
		`{"title":"Garlic Pasta","summary":"Quick","servings":0,"ready_in_minutes":20,` +
		`"ingredients":[{"name":"pasta","amount":200,"unit":"g"},{"name":" ","amount":1,"unit":""},{"name":"garlic","amount":3,"unit":"clove"}],` +
		`"instructions":["Boil pasta.",""," Add garlic. "]}` + "\n```"}
	s := newTestService(nil, gen)

	r, err := s.Generate(context.Background(), "u1", []string{"pasta", " garlic ", ""}, Preferences{Cuisine: "Italian", Servings: 4})
	require.NoError(t, err)

	assert.Equal(t, "Garlic Pasta", r.Title)
	assert.Equal(t, SourceAI, r.Source)
	assert.Equal(t, 4, r.Servings)
	assert.Equal(t, []string{"Boil pasta.", "Add garlic."}, r.Instructions)
	assert.Equal(t, []Ingredient{{Name: "pasta", Amount: 200, Unit: "g"}, {Name: "garlic", Amount: 3, Unit: "clove"}}, r.Ingredients)
	assert.Equal(t, []string{"Italian"}, r.Tags)
	assert.Contains(t, gen.prompt, "pasta, garlic")
	assert.Contains(t, gen.prompt, "Cuisine: Italian.")

	stored, err := s.Get(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", stored.OwnerID)
}

func TestService_GenerateErrors(t *testing.T) {
	ctx := context.Background()

	_, err := newTestService(nil, nil).Generate(ctx, "u1", []string{"egg"}, Preferences{})
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)

	_, err = newTestService(nil, &fakeGenerator{}).Generate(ctx, "u1", []string{" "}, Preferences{})
	assert.True(t, common.IsValidationError(err))

	upstream := errors.New("boom")
	_, err = newTestService(nil, &fakeGenerator{err: upstream}).Generate(ctx, "u1", []string{"egg"}, Preferences{})
	assert.ErrorIs(t, err, upstream)

	_, err = newTestService(nil, &fakeGenerator{content: "sorry, no recipe"}).Generate(ctx, "u1", []string{"egg"}, Preferences{})
	assert.ErrorIs(t, err, common.ErrAIServiceError)

	_, err = newTestService(nil, &fakeGenerator{content: `{"title":"Empty","ingredients":[],"instructions":["x"]}`}).Generate(ctx, "u1", []string{"egg"}, Preferences{})
	assert.ErrorIs(t, err, common.ErrAIServiceError)
}

func TestParseGenerated_Defaults(t *testing.T) {
	r, err := parseGenerated(`{title:"", ingredients:[{name:"egg",amount:2}], instructions:["Fry."]}`, Preferences{})
	require.NoError(t, err)
	assert.Equal(t, "Untitled Recipe", r.Title)
	assert.Equal(t, defaultServings, r.Servings)
}

func TestRecipe_SearchIngredients(t *testing.T) {
	r := Recipe{Ingredients: []Ingredient{{Name: "onion", OriginalName: "1 large onion"}, {Name: "salt"}}}
	assert.Equal(t, []string{"onion", "1 large onion", "salt"}, r.SearchIngredients())
}

package grocery

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartplates/internal/core/ingredient"
	"smartplates/internal/core/mealplan"
	"smartplates/internal/core/recipe"
	"smartplates/internal/infrastructure/monitoring"
	"smartplates/internal/infrastructure/store"
	"smartplates/internal/pkg/common"
)

func ing(name string, amount float64, unit string) recipe.Ingredient {
	return recipe.Ingredient{Name: name, Amount: amount, Unit: unit}
}

func planWith(recipes ...*recipe.Recipe) *mealplan.MealPlan {
	plan := &mealplan.MealPlan{ID: "plan-1", Name: "test"}
	for i, r := range recipes {
		plan.Days[i%mealplan.DaysPerPlan].Dinner = append(plan.Days[i%mealplan.DaysPerPlan].Dinner,
			mealplan.MealSlot{RecipeID: r.ID, Recipe: r})
	}
	return plan
}

func itemByName(t *testing.T, list *List, displayName string) Item {
	t.Helper()
	for _, item := range list.Items {
		if item.DisplayName == displayName {
			return item
		}
	}
	require.Failf(t, "item not found", "%q", displayName)
	return Item{}
}

func displayNames(list *List) []string {
	names := make([]string, len(list.Items))
	for i, item := range list.Items {
		names[i] = item.DisplayName
	}
	return names
}

func TestGenerate_MergesSameUnit(t *testing.T) {
	plan := planWith(
		&recipe.Recipe{ID: "a", Ingredients: []recipe.Ingredient{ing("onion", 1, "pcs")}},
		&recipe.Recipe{ID: "b", Ingredients: []recipe.Ingredient{ing("onion", 2, "pcs")}},
	)

	list := Generate(plan, DefaultOptions())

	require.Len(t, list.Items, 1)
	item := list.Items[0]
	assert.Equal(t, "onion", item.Name)
	assert.Equal(t, "Onion", item.DisplayName)
	assert.Equal(t, 3.0, item.Quantity)
	assert.Equal(t, "pcs", item.Unit)
	assert.Equal(t, ingredient.CategoryProduce, item.Category)
	require.NotNil(t, item.EstimatedCost)
	assert.Equal(t, 1.5, *item.EstimatedCost)
	assert.Equal(t, 1, list.ItemsCount)
	assert.Equal(t, "plan-1", list.MealPlanID)
}

func TestGenerate_MergesAliases(t *testing.T) {
	plan := planWith(
		&recipe.Recipe{ID: "a", Ingredients: []recipe.Ingredient{ing("Yellow Onion", 1, "pcs"), ing("onions", 2, " pcs ")}},
	)
	list := Generate(plan, DefaultOptions())
	require.Len(t, list.Items, 1)
	assert.Equal(t, 3.0, list.Items[0].Quantity)
}

func TestGenerate_DifferentUnitsStaySeparate(t *testing.T) {
	plan := planWith(
		&recipe.Recipe{ID: "a", Ingredients: []recipe.Ingredient{ing("milk", 2, "cup"), ing("garlic", 2, "clove")}},
		&recipe.Recipe{ID: "b", Ingredients: []recipe.Ingredient{ing("milk", 500, "ml"), ing("Milk", 1, "cup")}},
	)
	list := Generate(plan, DefaultOptions())

	assert.Equal(t, []string{"Milk (cup)", "Garlic", "Milk (ml)"}, displayNames(list))
	assert.Equal(t, 3.0, itemByName(t, list, "Milk (cup)").Quantity)
	assert.Equal(t, 500.0, itemByName(t, list, "Milk (ml)").Quantity)

	seen := map[string]bool{}
	for _, name := range displayNames(list) {
		assert.False(t, seen[name], "duplicate display name %q", name)
		seen[name] = true
	}
}

func TestGenerate_ExcludeStaples(t *testing.T) {
	plan := planWith(&recipe.Recipe{ID: "a", Ingredients: []recipe.Ingredient{
		ing("salt", 1, "tsp"), ing("pepper", 0.5, "tsp"),
	}})

	opts := DefaultOptions()
	opts.ExcludeStaples = true
	list := Generate(plan, opts)
	assert.Empty(t, list.Items)
	assert.Equal(t, 0, list.ItemsCount)

	list = Generate(plan, DefaultOptions())
	assert.Len(t, list.Items, 2)
}

func TestGenerate_CategoryBucketsCoverAllItems(t *testing.T) {
	plan := planWith(
		&recipe.Recipe{ID: "a", Ingredients: []recipe.Ingredient{
			ing("onion", 1, "pcs"), ing("chicken", 500, "g"), ing("milk", 1, "cup"),
		}},
		&recipe.Recipe{ID: "b", Ingredients: []recipe.Ingredient{
			ing("dragon fruit", 1, "pcs"), ing("salt", 1, "tsp"), ing("carrot", 2, "pcs"),
		}},
	)
	list := Generate(plan, DefaultOptions())

	total := 0
	for category, items := range list.Categories {
		for _, item := range items {
			assert.Equal(t, category, item.Category)
		}
		total += len(items)
	}
	assert.Equal(t, len(list.Items), total)
	assert.Equal(t, []string{"Onion", "Carrot"}, namesOf(list.Categories[ingredient.CategoryProduce]))
	assert.Equal(t, []string{"Dragon Fruit"}, namesOf(list.Categories[ingredient.CategoryPantry]))
}

func namesOf(items []Item) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.DisplayName
	}
	return names
}

func TestGenerate_Unresolved(t *testing.T) {
	plan := planWith(&recipe.Recipe{ID: "a", Ingredients: []recipe.Ingredient{ing("  Dragon  Fruit", 1, "pcs")}})
	list := Generate(plan, DefaultOptions())

	require.Len(t, list.Items, 1)
	item := list.Items[0]
	assert.Equal(t, "dragon fruit", item.Name)
	assert.Equal(t, "Dragon Fruit", item.DisplayName)
	assert.Equal(t, ingredient.CategoryPantry, item.Category)
	assert.Nil(t, item.EstimatedCost)
	require.NotNil(t, list.TotalEstimatedCost)
	assert.Equal(t, 0.0, *list.TotalEstimatedCost)
}

func TestGenerate_DisplayNamesUnique(t *testing.T) {
	plan := planWith(&recipe.Recipe{ID: "a", Ingredients: []recipe.Ingredient{
		ing("onion", 1, "pcs"), ing("onion", 2, "cup"), ing("Onion (pcs)", 5, ""),
	}})
	list := Generate(plan, DefaultOptions())

	names := displayNames(list)
	require.Len(t, names, 3)
	assert.Equal(t, []string{"Onion (pcs)", "Onion (cup)"}, names[:2])

	seen := make(map[string]bool)
	for _, name := range names {
		assert.False(t, seen[name], "duplicate display name %q", name)
		seen[name] = true
	}

	for _, name := range names {
		require.NoError(t, list.SetItemPurchased(name, true))
		assert.True(t, itemByName(t, list, name).IsPurchased, name)
	}
	assert.Equal(t, 3, list.PurchasedCount())
}

func TestGenerate_OptionsOff(t *testing.T) {
	plan := planWith(&recipe.Recipe{ID: "a", Ingredients: []recipe.Ingredient{
		ing("onion", 1, "pcs"), ing("onions", 1, "pcs"),
	}})
	list := Generate(plan, Options{})

	assert.Nil(t, list.Categories)
	assert.Nil(t, list.TotalEstimatedCost)
	assert.Equal(t, []string{"Onion", "Onions"}, displayNames(list))
	for _, item := range list.Items {
		assert.Equal(t, "onion", item.Name)
		assert.Nil(t, item.EstimatedCost)
	}
}

func TestGenerate_WalkOrderAndSkipsEmptySlots(t *testing.T) {
	plan := &mealplan.MealPlan{ID: "p"}
	plan.Days[1].Breakfast = []mealplan.MealSlot{{RecipeID: "x", Recipe: &recipe.Recipe{Ingredients: []recipe.Ingredient{ing("egg", 2, "pcs")}}}}
	plan.Days[0].Snacks = []mealplan.MealSlot{{RecipeID: "y", Recipe: &recipe.Recipe{Ingredients: []recipe.Ingredient{ing("apple", 1, "pcs")}}}}
	plan.Days[0].Lunch = []mealplan.MealSlot{{RecipeID: "missing"}}
	plan.Days[0].Breakfast = []mealplan.MealSlot{{RecipeID: "z", Recipe: &recipe.Recipe{Ingredients: []recipe.Ingredient{ing("milk", 1, "cup")}}}}

	list := Generate(plan, DefaultOptions())
	assert.Equal(t, []string{"Milk", "Apple", "Egg"}, displayNames(list))
}

func TestGenerate_TotalEstimatedCost(t *testing.T) {
	plan := planWith(&recipe.Recipe{ID: "a", Ingredients: []recipe.Ingredient{
		ing("onion", 3, "pcs"), ing("carrot", 4, "pcs"),
	}})
	list := Generate(plan, DefaultOptions())
	require.NotNil(t, list.TotalEstimatedCost)
	assert.InDelta(t, 2.5, *list.TotalEstimatedCost, 1e-9)
}

func TestOptions_UnmarshalDefaults(t *testing.T) {
	var opts Options
	require.NoError(t, json.Unmarshal([]byte(`{"exclude_staples":true}`), &opts))
	assert.Equal(t, Options{IncludeEstimates: true, CategorizeItems: true, MergeSimilarItems: true, ExcludeStaples: true}, opts)

	require.NoError(t, json.Unmarshal([]byte(`{"categorize_items":false}`), &opts))
	assert.False(t, opts.CategorizeItems)
	assert.False(t, opts.ExcludeStaples)
}

func TestList_SetItemPurchased(t *testing.T) {
	plan := planWith(&recipe.Recipe{ID: "a", Ingredients: []recipe.Ingredient{
		ing("onion", 1, "pcs"), ing("carrot", 1, "pcs"), ing("milk", 1, "cup"),
	}})
	list := Generate(plan, DefaultOptions())

	require.NoError(t, list.SetItemPurchased("Onion", true))
	assert.True(t, itemByName(t, list, "Onion").IsPurchased)
	assert.False(t, itemByName(t, list, "Carrot").IsPurchased)
	assert.True(t, list.Categories[ingredient.CategoryProduce][0].IsPurchased)
	assert.False(t, list.Categories[ingredient.CategoryProduce][1].IsPurchased)

	assert.ErrorIs(t, list.SetItemPurchased("onion", true), common.ErrGroceryItemNotFound)
}

type fakeRecipes map[string]*recipe.Recipe

func (f fakeRecipes) Get(_ context.Context, id string) (*recipe.Recipe, error) {
	r, ok := f[id]
	if !ok {
		return nil, common.ErrRecipeNotFound
	}
	return r, nil
}

func newTestService(t *testing.T) (*Service, *mealplan.Service) {
	t.Helper()
	return newTestServiceWith(t, store.NewMemoryStore())
}

func newTestServiceWith(t *testing.T, st store.Store) (*Service, *mealplan.Service) {
	t.Helper()
	plans := mealplan.NewService(st)
	recipes := fakeRecipes{
		"soup":  {ID: "soup", Title: "Soup", Ingredients: []recipe.Ingredient{ing("onion", 1, "pcs"), ing("carrot", 2, "pcs"), ing("salt", 1, "tsp")}},
		"salad": {ID: "salad", Title: "Salad", Ingredients: []recipe.Ingredient{ing("onion", 2, "pcs"), ing("lettuce", 1, "head")}},
	}
	return NewService(st, plans, recipes, nil, monitoring.NewMetrics()), plans
}

func createPlan(t *testing.T, plans *mealplan.Service, owner string) *mealplan.MealPlan {
	t.Helper()
	plan := &mealplan.MealPlan{Name: "week"}
	plan.Days[0].Lunch = []mealplan.MealSlot{{RecipeID: "soup"}}
	plan.Days[1].Dinner = []mealplan.MealSlot{{RecipeID: "salad"}, {RecipeID: "gone"}}
	created, err := plans.Create(context.Background(), owner, plan)
	require.NoError(t, err)
	return created
}

func TestService_GenerateForMealPlan(t *testing.T) {
	ctx := context.Background()
	s, plans := newTestService(t)
	plan := createPlan(t, plans, "u1")

	list, err := s.GenerateForMealPlan(ctx, "u1", plan.ID, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, common.IsUUID(list.ID))
	assert.Equal(t, "u1", list.OwnerID)
	assert.Equal(t, plan.ID, list.MealPlanID)
	assert.Equal(t, []string{"Onion", "Carrot", "Salt", "Lettuce"}, displayNames(list))
	assert.Equal(t, 3.0, itemByName(t, list, "Onion").Quantity)

	got, err := s.Get(ctx, "u1", list.ID)
	require.NoError(t, err)
	assert.Equal(t, list.Items, got.Items)

	_, err = s.GenerateForMealPlan(ctx, "u1", "missing", DefaultOptions())
	assert.ErrorIs(t, err, common.ErrMealPlanNotFound)
	_, err = s.GenerateForMealPlan(ctx, "u2", plan.ID, DefaultOptions())
	assert.ErrorIs(t, err, common.ErrMealPlanNotFound)
}

func TestService_UpdateItemStatusRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, plans := newTestService(t)
	plan := createPlan(t, plans, "u1")

	list, err := s.GenerateForMealPlan(ctx, "u1", plan.ID, DefaultOptions())
	require.NoError(t, err)
	before := list.Items

	s.now = func() time.Time { return list.CreatedAt.Add(time.Minute) }
	_, err = s.UpdateItemStatus(ctx, "u1", list.ID, "Onion", true)
	require.NoError(t, err)

	got, err := s.Get(ctx, "u1", list.ID)
	require.NoError(t, err)
	for i, item := range got.Items {
		if item.DisplayName == "Onion" {
			assert.True(t, item.IsPurchased)
			continue
		}
		assert.Equal(t, before[i], item)
	}
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	_, err = s.UpdateItemStatus(ctx, "u1", list.ID, "Dragon Fruit", true)
	assert.ErrorIs(t, err, common.ErrGroceryItemNotFound)
	_, err = s.UpdateItemStatus(ctx, "u1", "missing", "Onion", true)
	assert.ErrorIs(t, err, common.ErrGroceryListNotFound)
	_, err = s.UpdateItemStatus(ctx, "u2", list.ID, "Onion", true)
	assert.ErrorIs(t, err, common.ErrGroceryListNotFound)
}

type countingRecipes struct {
	fakeRecipes
	calls map[string]int
}

func (c *countingRecipes) Get(ctx context.Context, id string) (*recipe.Recipe, error) {
	c.calls[id]++
	return c.fakeRecipes.Get(ctx, id)
}

func TestService_GenerateFetchesEachRecipeOnce(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	plans := mealplan.NewService(st)
	recipes := &countingRecipes{
		fakeRecipes: fakeRecipes{"soup": {ID: "soup", Ingredients: []recipe.Ingredient{ing("onion", 1, "pcs")}}},
		calls:       map[string]int{},
	}
	s := NewService(st, plans, recipes, nil, nil)

	plan := &mealplan.MealPlan{Name: "week"}
	for day := range plan.Days {
		plan.Days[day].Dinner = []mealplan.MealSlot{{RecipeID: "soup"}, {RecipeID: "gone"}}
	}
	created, err := plans.Create(ctx, "u1", plan)
	require.NoError(t, err)

	list, err := s.GenerateForMealPlan(ctx, "u1", created.ID, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, float64(mealplan.DaysPerPlan), itemByName(t, list, "Onion").Quantity)
	assert.Equal(t, map[string]int{"soup": 1, "gone": 1}, recipes.calls)
}

// slowStore 拉長讀取時間，讓並行的讀改寫交錯
type slowStore struct {
	store.Store
}

func (s slowStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	time.Sleep(5 * time.Millisecond)
	return s.Store.Get(ctx, collection, id)
}

func TestService_UpdateItemStatusConcurrent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	backends := map[string]store.Store{
		"memory": slowStore{store.NewMemoryStore()},
		"redis":  slowStore{store.NewRedisStore(client, "test")},
	}
	for name, st := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s, plans := newTestServiceWith(t, st)
			plan := createPlan(t, plans, "u1")

			list, err := s.GenerateForMealPlan(ctx, "u1", plan.ID, DefaultOptions())
			require.NoError(t, err)
			require.Len(t, list.Items, 4)

			var wg sync.WaitGroup
			for _, name := range displayNames(list) {
				wg.Add(1)
				go func(name string) {
					defer wg.Done()
					_, err := s.UpdateItemStatus(ctx, "u1", list.ID, name, true)
					assert.NoError(t, err)
				}(name)
			}
			wg.Wait()

			got, err := s.Get(ctx, "u1", list.ID)
			require.NoError(t, err)
			assert.Equal(t, 4, got.PurchasedCount())
		})
	}
}

func TestService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	s, plans := newTestService(t)
	plan := createPlan(t, plans, "u1")

	first, err := s.GenerateForMealPlan(ctx, "u1", plan.ID, DefaultOptions())
	require.NoError(t, err)
	s.now = func() time.Time { return first.CreatedAt.Add(time.Hour) }
	second, err := s.GenerateForMealPlan(ctx, "u1", plan.ID, Options{})
	require.NoError(t, err)

	lists, err := s.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, second.ID, lists[0].ID)

	others, err := s.ListByOwner(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, others)

	assert.ErrorIs(t, s.Delete(ctx, "u2", first.ID), common.ErrGroceryListNotFound)
	require.NoError(t, s.Delete(ctx, "u1", first.ID))
	_, err = s.Get(ctx, "u1", first.ID)
	assert.ErrorIs(t, err, common.ErrGroceryListNotFound)
}

func TestExport(t *testing.T) {
	plan := planWith(&recipe.Recipe{ID: "a", Ingredients: []recipe.Ingredient{
		ing("onion", 1.5, "pcs"), ing("milk", 2, "cup"), ing("dragon fruit", 1, ""),
	}})
	list := Generate(plan, DefaultOptions())
	require.NoError(t, list.SetItemPurchased("Milk", true))

	out, err := Export(list, FormatText)
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "Produce\n- [ ] Onion: 1.5 pcs (~$0.75)\n")
	assert.Contains(t, text, "- [x] Milk: 2 cup")
	assert.Contains(t, text, "- [ ] Dragon Fruit: 1\n")
	assert.Contains(t, text, "Items: 3 (purchased 1)")
	assert.Less(t, strings.Index(text, "Produce"), strings.Index(text, "Dairy & Eggs"))

	out, err = Export(list, FormatJSON)
	require.NoError(t, err)
	var decoded List
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, list.Items, decoded.Items)

	_, err = ParseFormat("pdf")
	assert.True(t, common.IsValidationError(err))
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)
}

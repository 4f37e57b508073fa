package grocery

import (
	"context"
	"errors"
	"sort"
	"time"

	"smartplates/internal/core/mealplan"
	"smartplates/internal/core/recipe"
	"smartplates/internal/infrastructure/monitoring"
	"smartplates/internal/infrastructure/store"
	"smartplates/internal/pkg/common"

	"go.uber.org/zap"
)

const collectionName = "grocery_lists"

// PlanSource 讀取餐點計畫
type PlanSource interface {
	Get(ctx context.Context, ownerID, id string) (*mealplan.MealPlan, error)
}

// RecipeSource 讀取食譜
type RecipeSource interface {
	Get(ctx context.Context, id string) (*recipe.Recipe, error)
}

// Service 採買清單服務
type Service struct {
	lists      *store.Collection[List]
	plans      PlanSource
	recipes    RecipeSource
	aggregator *Aggregator
	metrics    *monitoring.Metrics
	now        func() time.Time
}

// NewService 建立採買清單服務，metrics 可為 nil
func NewService(s store.Store, plans PlanSource, recipes RecipeSource, aggregator *Aggregator, metrics *monitoring.Metrics) *Service {
	if aggregator == nil {
		aggregator = defaultAggregator
	}
	return &Service{
		lists:      store.NewCollection[List](s, collectionName),
		plans:      plans,
		recipes:    recipes,
		aggregator: aggregator,
		metrics:    metrics,
		now:        time.Now,
	}
}

// GenerateForMealPlan 讀取計畫、填入食譜、彙整並儲存
func (s *Service) GenerateForMealPlan(ctx context.Context, ownerID, planID string, opts Options) (*List, error) {
	plan, err := s.plans.Get(ctx, ownerID, planID)
	if err != nil {
		return nil, err
	}

	if err := s.populate(ctx, plan); err != nil {
		return nil, err
	}

	list := s.aggregator.Generate(plan, opts)
	now := s.now().UTC()
	list.ID = common.GenerateUUID()
	list.OwnerID = ownerID
	list.CreatedAt = now
	list.UpdatedAt = now

	if err := s.lists.Put(ctx, list.ID, list); err != nil {
		return nil, err
	}

	s.metrics.ObserveGroceryList(list.ItemsCount)
	common.LogInfo("採買清單已產生",
		zap.String("list_id", list.ID),
		zap.String("meal_plan_id", planID),
		zap.Int("items", list.ItemsCount),
	)
	return list, nil
}

// populate 依 RecipeID 從食譜儲存填入食譜，每個食譜只讀取一次，找不到的食譜略過
func (s *Service) populate(ctx context.Context, plan *mealplan.MealPlan) error {
	found := make(map[string]*recipe.Recipe)
	for _, id := range plan.RecipeIDs() {
		r, err := s.recipes.Get(ctx, id)
		if err != nil {
			if !errors.Is(err, common.ErrRecipeNotFound) {
				return err
			}
			common.LogWarn("餐點計畫引用的食譜不存在",
				zap.String("meal_plan_id", plan.ID),
				zap.String("recipe_id", id),
			)
			continue
		}
		found[id] = r
	}

	plan.Each(func(_ int, _ mealplan.MealType, _ int, slot *mealplan.MealSlot) {
		if slot.Recipe == nil {
			slot.Recipe = found[slot.RecipeID]
		}
	})
	return nil
}

// Get 讀取清單，不存在或不屬於使用者時回傳 ErrGroceryListNotFound
func (s *Service) Get(ctx context.Context, ownerID, id string) (*List, error) {
	list, err := s.lists.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, common.ErrGroceryListNotFound
		}
		return nil, err
	}
	if list.OwnerID != ownerID {
		return nil, common.ErrGroceryListNotFound
	}
	return list, nil
}

// ListByOwner 使用者的所有清單，新到舊
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*List, error) {
	lists, err := s.lists.List(ctx, func(l *List) bool { return l.OwnerID == ownerID })
	if err != nil {
		return nil, err
	}
	sort.Slice(lists, func(i, j int) bool {
		if !lists[i].CreatedAt.Equal(lists[j].CreatedAt) {
			return lists[i].CreatedAt.After(lists[j].CreatedAt)
		}
		return lists[i].ID < lists[j].ID
	})
	return lists, nil
}

// UpdateItemStatus 切換單一項目的購買狀態並儲存
// 讀取與寫回在同一次原子更新內完成，同時切換不同項目不會互相覆蓋
func (s *Service) UpdateItemStatus(ctx context.Context, ownerID, listID, itemName string, isPurchased bool) (*List, error) {
	list, err := s.lists.Update(ctx, listID, func(list *List) error {
		if list.OwnerID != ownerID {
			return common.ErrGroceryListNotFound
		}
		if err := list.SetItemPurchased(itemName, isPurchased); err != nil {
			return err
		}
		list.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, common.ErrGroceryListNotFound
		}
		return nil, err
	}

	common.LogDebug("採買項目狀態已更新",
		zap.String("list_id", listID),
		zap.String("item", itemName),
		zap.Bool("is_purchased", isPurchased),
	)
	return list, nil
}

// Delete 刪除清單
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.lists.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.ErrGroceryListNotFound
		}
		return err
	}
	return nil
}

package mealplan

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"smartplates/internal/infrastructure/store"
	"smartplates/internal/pkg/common"

	"go.uber.org/zap"
)

const collectionName = "meal_plans"

// Service 餐點計畫服務
type Service struct {
	plans *store.Collection[MealPlan]
	now   func() time.Time
}

// NewService 建立餐點計畫服務
func NewService(s store.Store) *Service {
	return &Service{
		plans: store.NewCollection[MealPlan](s, collectionName),
		now:   time.Now,
	}
}

// Create 建立計畫，ID 與時間戳由服務產生
func (s *Service) Create(ctx context.Context, ownerID string, plan *MealPlan) (*MealPlan, error) {
	if err := validate(plan); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	plan.ID = common.GenerateUUID()
	plan.OwnerID = ownerID
	plan.Name = strings.TrimSpace(plan.Name)
	plan.WeekStart = weekStartOrToday(plan.WeekStart, now)
	plan.CreatedAt = now
	plan.UpdatedAt = now
	plan.stripRecipes()

	if err := s.plans.Put(ctx, plan.ID, plan); err != nil {
		return nil, err
	}

	common.LogInfo("餐點計畫已建立",
		zap.String("plan_id", plan.ID),
		zap.String("owner_id", ownerID),
	)
	return plan, nil
}

// Get 讀取計畫，不存在或不屬於使用者時回傳 ErrMealPlanNotFound
func (s *Service) Get(ctx context.Context, ownerID, id string) (*MealPlan, error) {
	plan, err := s.plans.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, common.ErrMealPlanNotFound
		}
		return nil, err
	}
	if plan.OwnerID != ownerID {
		return nil, common.ErrMealPlanNotFound
	}
	return plan, nil
}

// ListByOwner 使用者的所有計畫，依週起始日新到舊
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*MealPlan, error) {
	plans, err := s.plans.List(ctx, func(p *MealPlan) bool { return p.OwnerID == ownerID })
	if err != nil {
		return nil, err
	}
	sort.Slice(plans, func(i, j int) bool {
		if !plans[i].WeekStart.Equal(plans[j].WeekStart) {
			return plans[i].WeekStart.After(plans[j].WeekStart)
		}
		return plans[i].CreatedAt.Before(plans[j].CreatedAt)
	})
	return plans, nil
}

// Update 以新內容取代名稱、週起始日與每日餐點
func (s *Service) Update(ctx context.Context, ownerID, id string, update *MealPlan) (*MealPlan, error) {
	if err := validate(update); err != nil {
		return nil, err
	}

	plan, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	plan.Name = strings.TrimSpace(update.Name)
	if !update.WeekStart.IsZero() {
		plan.WeekStart = update.WeekStart
	}
	plan.Days = update.Days
	return s.save(ctx, plan)
}

// SetSlot 取代某一天某個餐別的所有餐點
func (s *Service) SetSlot(ctx context.Context, ownerID, id string, day int, meal MealType, slots []MealSlot) (*MealPlan, error) {
	if day < 0 || day >= DaysPerPlan {
		return nil, common.NewValidationError("day out of range")
	}
	if _, err := ParseMealType(string(meal)); err != nil {
		return nil, err
	}
	for _, slot := range slots {
		if err := validateSlot(slot); err != nil {
			return nil, err
		}
	}

	plan, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []MealSlot{}
	}
	plan.Days[day].SetMeals(meal, slots)
	return s.save(ctx, plan)
}

// Delete 刪除計畫
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.plans.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.ErrMealPlanNotFound
		}
		return err
	}
	common.LogInfo("餐點計畫已刪除", zap.String("plan_id", id))
	return nil
}

func (s *Service) save(ctx context.Context, plan *MealPlan) (*MealPlan, error) {
	plan.UpdatedAt = s.now().UTC()
	plan.stripRecipes()
	if err := s.plans.Put(ctx, plan.ID, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func validate(plan *MealPlan) error {
	if plan == nil || strings.TrimSpace(plan.Name) == "" {
		return common.NewValidationError("meal plan name is required")
	}
	var err error
	plan.Each(func(_ int, _ MealType, _ int, slot *MealSlot) {
		if err == nil {
			err = validateSlot(*slot)
		}
	})
	return err
}

func validateSlot(slot MealSlot) error {
	// 儲存時只保留引用，內嵌食譜也必須帶 ID
	if slot.RecipeID == "" && (slot.Recipe == nil || strings.TrimSpace(slot.Recipe.ID) == "") {
		return common.NewValidationError("meal slot requires a recipe_id")
	}
	if slot.Servings < 0 {
		return common.NewValidationError("servings must not be negative")
	}
	return nil
}

func weekStartOrToday(weekStart, now time.Time) time.Time {
	if weekStart.IsZero() {
		weekStart = now
	}
	y, m, d := weekStart.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, weekStart.Location())
}

package mealplan

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"smartplates/internal/core/recipe"
	"smartplates/internal/pkg/common"
)

// DaysPerPlan 一份餐點計畫的天數
const DaysPerPlan = 7

// MealType 餐別
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snacks    MealType = "snacks"
)

// MealTypes 彙整清單時的走訪順序
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snacks}

// ParseMealType 解析餐別，不分大小寫
func ParseMealType(s string) (MealType, error) {
	meal := MealType(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range MealTypes {
		if m == meal {
			return m, nil
		}
	}
	return "", common.NewValidationError(fmt.Sprintf("unknown meal type %q", s))
}

// ParseDay 解析 0-6 的日索引
func ParseDay(s string) (int, error) {
	day, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || day < 0 || day >= DaysPerPlan {
		return 0, common.NewValidationError(fmt.Sprintf("day must be between 0 and %d", DaysPerPlan-1))
	}
	return day, nil
}

// MealSlot 餐點格中的一道食譜
// Recipe 為彙整前由食譜儲存填入的完整食譜，不會被持久化
type MealSlot struct {
	RecipeID   string         `json:"recipe_id"`
	RecipeName string         `json:"recipe_name,omitempty"`
	Servings   int            `json:"servings,omitempty"`
	Notes      string         `json:"notes,omitempty"`
	Recipe     *recipe.Recipe `json:"recipe,omitempty"`
}

// Day 一天的四個餐別
type Day struct {
	Breakfast []MealSlot `json:"breakfast"`
	Lunch     []MealSlot `json:"lunch"`
	Dinner    []MealSlot `json:"dinner"`
	Snacks    []MealSlot `json:"snacks"`
}

// Meals 取得指定餐別
func (d *Day) Meals(meal MealType) []MealSlot {
	switch meal {
	case Breakfast:
		return d.Breakfast
	case Lunch:
		return d.Lunch
	case Dinner:
		return d.Dinner
	case Snacks:
		return d.Snacks
	}
	return nil
}

// SetMeals 取代指定餐別
func (d *Day) SetMeals(meal MealType, slots []MealSlot) {
	switch meal {
	case Breakfast:
		d.Breakfast = slots
	case Lunch:
		d.Lunch = slots
	case Dinner:
		d.Dinner = slots
	case Snacks:
		d.Snacks = slots
	}
}

// MealPlan 一週餐點計畫
type MealPlan struct {
	ID        string           `json:"id"`
	OwnerID   string           `json:"owner_id"`
	Name      string           `json:"name" binding:"required"`
	WeekStart time.Time        `json:"week_start"`
	Days      [DaysPerPlan]Day `json:"days"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Each 依 日 -> 早/午/晚/點心 順序走訪每個餐點格
func (p *MealPlan) Each(fn func(day int, meal MealType, index int, slot *MealSlot)) {
	for i := range p.Days {
		for _, meal := range MealTypes {
			slots := p.Days[i].Meals(meal)
			for j := range slots {
				fn(i, meal, j, &slots[j])
			}
		}
	}
}

// RecipeIDs 計畫中引用的食譜 ID，依首次出現排序且不重複
func (p *MealPlan) RecipeIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	p.Each(func(_ int, _ MealType, _ int, slot *MealSlot) {
		if slot.RecipeID == "" || seen[slot.RecipeID] {
			return
		}
		seen[slot.RecipeID] = true
		ids = append(ids, slot.RecipeID)
	})
	return ids
}

// stripRecipes 移除填入的食譜，只保留引用
func (p *MealPlan) stripRecipes() {
	p.Each(func(_ int, _ MealType, _ int, slot *MealSlot) {
		if slot.Recipe != nil && slot.RecipeID == "" {
			slot.RecipeID = slot.Recipe.ID
		}
		if slot.Recipe != nil && slot.RecipeName == "" {
			slot.RecipeName = slot.Recipe.Title
		}
		slot.Recipe = nil
	})
}

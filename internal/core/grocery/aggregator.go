package grocery

import (
	"fmt"
	"strings"

	"smartplates/internal/core/ingredient"
	"smartplates/internal/core/mealplan"
	"smartplates/internal/pkg/common"

	"go.uber.org/zap"
)

// Aggregator 將餐點計畫彙整為採買清單
type Aggregator struct {
	normalizer *ingredient.Normalizer
}

// NewAggregator 建立 Aggregator，normalizer 為 nil 時使用內建食材表
func NewAggregator(normalizer *ingredient.Normalizer) *Aggregator {
	if normalizer == nil {
		normalizer = ingredient.Default()
	}
	return &Aggregator{normalizer: normalizer}
}

var defaultAggregator = NewAggregator(nil)

// Generate 使用內建食材表彙整
func Generate(plan *mealplan.MealPlan, opts Options) *List {
	return defaultAggregator.Generate(plan, opts)
}

type line struct {
	group string
	unit  string
	res   ingredient.Resolution
	item  Item
}

// Generate 彙整計畫中所有已填入食譜的食材
// 同名且單位字面相同才合併，不同單位保留為不同行；輸出依首次出現排序
func (a *Aggregator) Generate(plan *mealplan.MealPlan, opts Options) *List {
	var lines []*line
	index := make(map[string]*line)
	unitsPerGroup := make(map[string]int)
	skippedStaples := 0

	plan.Each(func(_ int, _ mealplan.MealType, _ int, slot *mealplan.MealSlot) {
		if slot.Recipe == nil {
			return
		}
		for _, ing := range slot.Recipe.Ingredients {
			res := a.normalizer.Resolve(ing.Name)
			if res.Key == "" {
				continue
			}
			if opts.ExcludeStaples && res.IsStaple {
				skippedStaples++
				continue
			}

			group := res.Key
			if !opts.MergeSimilarItems {
				group = common.CollapseSpaces(strings.ToLower(ing.Name))
			}
			unit := strings.TrimSpace(ing.Unit)

			key := group + "\x00" + unit
			if l, ok := index[key]; ok {
				l.item.Quantity += ing.Amount
				continue
			}

			l := &line{
				group: group,
				unit:  unit,
				res:   res,
				item: Item{
					Name:     res.Name,
					Quantity: ing.Amount,
					Unit:     unit,
					Category: res.Category,
				},
			}
			index[key] = l
			lines = append(lines, l)
			unitsPerGroup[group]++
		}
	})

	list := &List{
		MealPlanID: plan.ID,
		Items:      make([]Item, 0, len(lines)),
		Options:    opts,
	}

	var total float64
	taken := make(map[string]bool, len(lines))
	for _, l := range lines {
		item := l.item
		item.DisplayName = displayName(l, unitsPerGroup[l.group] > 1, taken)

		if opts.IncludeEstimates && l.res.Info != nil && l.res.Info.EstimatedCostPerUnit != nil {
			cost := common.RoundMoney(item.Quantity * *l.res.Info.EstimatedCostPerUnit)
			item.EstimatedCost = &cost
			total += cost
		}
		list.Items = append(list.Items, item)
	}

	list.ItemsCount = len(list.Items)
	if opts.IncludeEstimates {
		total = common.RoundMoney(total)
		list.TotalEstimatedCost = &total
	}
	if opts.CategorizeItems {
		list.Categories = bucket(list.Items)
	}

	common.LogDebug("採買清單已彙整",
		zap.String("meal_plan_id", plan.ID),
		zap.Int("items", list.ItemsCount),
		zap.Int("skipped_staples", skippedStaples),
	)
	return list
}

// displayName 產生清單內唯一的顯示名稱
// 未辨識的原始名稱可能與其他行的「名稱 (單位)」相同，衝突時依序加上單位或序號
func displayName(l *line, multiUnit bool, taken map[string]bool) string {
	base := common.TitleCase(l.group)
	name := base
	if multiUnit && l.unit != "" {
		name = fmt.Sprintf("%s (%s)", base, l.unit)
	}
	if taken[name] && l.unit != "" {
		if alt := fmt.Sprintf("%s (%s)", base, l.unit); !taken[alt] {
			name = alt
		}
	}
	for n := 2; taken[name]; n++ {
		name = fmt.Sprintf("%s #%d", base, n)
	}
	taken[name] = true
	return name
}

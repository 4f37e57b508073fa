package grocery

import (
	"encoding/json"
	"time"

	"smartplates/internal/core/ingredient"
	"smartplates/internal/pkg/common"
)

// Item 彙整後的一行採買項目
type Item struct {
	Name          string              `json:"name"`
	DisplayName   string              `json:"display_name"`
	Quantity      float64             `json:"quantity"`
	Unit          string              `json:"unit"`
	Category      ingredient.Category `json:"category"`
	EstimatedCost *float64            `json:"estimated_cost,omitempty"`
	IsPurchased   bool                `json:"is_purchased"`
}

// List 採買清單
// Categories 只在啟用分類時存在，內容與 Items 同步
type List struct {
	ID                 string                         `json:"id,omitempty"`
	OwnerID            string                         `json:"owner_id,omitempty"`
	MealPlanID         string                         `json:"meal_plan_id,omitempty"`
	Items              []Item                         `json:"items"`
	Categories         map[ingredient.Category][]Item `json:"categories,omitempty"`
	ItemsCount         int                            `json:"items_count"`
	TotalEstimatedCost *float64                       `json:"total_estimated_cost,omitempty"`
	Options            Options                        `json:"options"`
	CreatedAt          time.Time                      `json:"created_at"`
	UpdatedAt          time.Time                      `json:"updated_at"`
}

// Options 彙整選項
type Options struct {
	IncludeEstimates  bool `json:"include_estimates"`
	CategorizeItems   bool `json:"categorize_items"`
	MergeSimilarItems bool `json:"merge_similar_items"`
	ExcludeStaples    bool `json:"exclude_staples"`
}

// DefaultOptions 預設：分類、合併、估價，保留常備品
func DefaultOptions() Options {
	return Options{
		IncludeEstimates:  true,
		CategorizeItems:   true,
		MergeSimilarItems: true,
		ExcludeStaples:    false,
	}
}

// UnmarshalJSON 未給的欄位沿用預設值
func (o *Options) UnmarshalJSON(data []byte) error {
	type plain Options
	p := plain(DefaultOptions())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = Options(p)
	return nil
}

// SetItemPurchased 以顯示名稱切換購買狀態，其他項目不受影響
func (l *List) SetItemPurchased(displayName string, purchased bool) error {
	idx := -1
	for i := range l.Items {
		if l.Items[i].DisplayName == displayName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return common.ErrGroceryItemNotFound
	}

	l.Items[idx].IsPurchased = purchased
	if l.Categories != nil {
		l.Categories = bucket(l.Items)
	}
	return nil
}

// PurchasedCount 已購買的項目數
func (l *List) PurchasedCount() int {
	n := 0
	for _, item := range l.Items {
		if item.IsPurchased {
			n++
		}
	}
	return n
}

// bucket 依分類分組，組內保持 Items 順序
func bucket(items []Item) map[ingredient.Category][]Item {
	categories := make(map[ingredient.Category][]Item)
	for _, item := range items {
		categories[item.Category] = append(categories[item.Category], item)
	}
	return categories
}

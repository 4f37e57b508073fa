package recipe

import (
	"time"
)

// Source 食譜來源
type Source string

const (
	SourceUser     Source = "user"
	SourceExternal Source = "external"
	SourceAI       Source = "ai"
)

// Ingredient 食譜中的一項食材，名稱為使用者或外部 API 提供的自由文字
type Ingredient struct {
	Name         string  `json:"name" binding:"required"`
	OriginalName string  `json:"original_name,omitempty"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"`
}

// Recipe 食譜
type Recipe struct {
	ID             string       `json:"id"`
	OwnerID        string       `json:"owner_id,omitempty"`
	Title          string       `json:"title"`
	Summary        string       `json:"summary,omitempty"`
	Ingredients    []Ingredient `json:"ingredients"`
	Instructions   []string     `json:"instructions,omitempty"`
	Servings       int          `json:"servings,omitempty"`
	ReadyInMinutes int          `json:"ready_in_minutes,omitempty"`
	ImageURL       string       `json:"image_url,omitempty"`
	SourceURL      string       `json:"source_url,omitempty"`
	Source         Source       `json:"source"`
	ExternalID     string       `json:"external_id,omitempty"`
	Tags           []string     `json:"tags,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// SearchTitle 搜尋用標題
func (r Recipe) SearchTitle() string {
	return r.Title
}

// SearchIngredients 搜尋用食材名稱，包含原始名稱
func (r Recipe) SearchIngredients() []string {
	names := make([]string, 0, len(r.Ingredients)*2)
	for _, ing := range r.Ingredients {
		names = append(names, ing.Name)
		if ing.OriginalName != "" {
			names = append(names, ing.OriginalName)
		}
	}
	return names
}

// Preferences AI 生成食譜時的偏好設定
type Preferences struct {
	Cuisine             string   `json:"cuisine,omitempty"`
	MealType            string   `json:"meal_type,omitempty"`
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
	Servings            int      `json:"servings,omitempty"`
	MaxMinutes          int      `json:"max_minutes,omitempty"`
}

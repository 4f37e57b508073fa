package recipe

import (
	"context"
	"fmt"
	"strings"

	"smartplates/internal/pkg/common"

	"go.uber.org/zap"
)

const defaultServings = 2

// generatedRecipe AI 回應的 JSON 結構
type generatedRecipe struct {
	Title          string   `json:"title"`
	Summary        string   `json:"summary"`
	Servings       int      `json:"servings"`
	ReadyInMinutes int      `json:"ready_in_minutes"`
	Tags           []string `json:"tags"`
	Ingredients    []struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
		Unit   string  `json:"unit"`
	} `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// Generate 依食材與偏好以 AI 生成食譜並儲存
func (s *Service) Generate(ctx context.Context, ownerID string, ingredients []string, prefs Preferences) (*Recipe, error) {
	if s.generator == nil {
		return nil, common.ErrServiceUnavailable.Wrap(fmt.Errorf("recipe generation is not configured"))
	}

	names := make([]string, 0, len(ingredients))
	for _, name := range ingredients {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, common.NewValidationError("at least one ingredient is required")
	}

	content, err := s.generator.GenerateResponse(ctx, buildPrompt(names, prefs))
	if err != nil {
		return nil, err
	}

	r, err := parseGenerated(content, prefs)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, ownerID, r)
}

func buildPrompt(ingredients []string, prefs Preferences) string {
	servings := prefs.Servings
	if servings <= 0 {
		servings = defaultServings
	}

	var b strings.Builder
	b.WriteString("Create one home-cooking recipe that uses these ingredients: ")
	b.WriteString(strings.Join(ingredients, ", "))
	b.WriteString(".\n")
	if prefs.Cuisine != "" {
		fmt.Fprintf(&b, "Cuisine: %s.\n", prefs.Cuisine)
	}
	if prefs.MealType != "" {
		fmt.Fprintf(&b, "Meal type: %s.\n", prefs.MealType)
	}
	if len(prefs.DietaryRestrictions) > 0 {
		fmt.Fprintf(&b, "Dietary restrictions: %s.\n", strings.Join(prefs.DietaryRestrictions, ", "))
	}
	if prefs.MaxMinutes > 0 {
		fmt.Fprintf(&b, "Total time at most %d minutes.\n", prefs.MaxMinutes)
	}
	fmt.Fprintf(&b, "Servings: %d.\n", servings)
	b.WriteString(`Use plain ingredient names (e.g. "onion", not "1 large onion, diced") and metric or common kitchen units.
Return only JSON in this shape:
{"title":"","summary":"","servings":2,"ready_in_minutes":30,"tags":[""],"ingredients":[{"name":"","amount":1,"unit":""}],"instructions":[""]}`)
	return b.String()
}

// parseGenerated 解析 AI 回應並補上預設值
func parseGenerated(content string, prefs Preferences) (*Recipe, error) {
	raw := common.ExtractJSONObject(content)
	common.LogDebug("AI 回應內容 (recipe/generate)",
		zap.Int("ai_response_length", len(raw)),
	)

	var g generatedRecipe
	if err := common.ParseJSON(raw, &g); err != nil {
		if err2 := common.ParseJSON(common.QuoteJSONKeys(raw), &g); err2 != nil {
			return nil, common.ErrAIServiceError.Wrap(fmt.Errorf("failed to parse AI response: %w", err))
		}
	}

	r := &Recipe{
		Title:          strings.TrimSpace(g.Title),
		Summary:        strings.TrimSpace(g.Summary),
		Servings:       g.Servings,
		ReadyInMinutes: g.ReadyInMinutes,
		Source:         SourceAI,
		Tags:           g.Tags,
	}

	if r.Title == "" {
		r.Title = "Untitled Recipe"
	}
	if r.Servings <= 0 {
		r.Servings = prefs.Servings
	}
	if r.Servings <= 0 {
		r.Servings = defaultServings
	}
	if prefs.Cuisine != "" && !containsFold(r.Tags, prefs.Cuisine) {
		r.Tags = append(r.Tags, prefs.Cuisine)
	}

	for _, ing := range g.Ingredients {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			continue
		}
		amount := ing.Amount
		if amount < 0 {
			amount = 0
		}
		r.Ingredients = append(r.Ingredients, Ingredient{Name: name, Amount: amount, Unit: strings.TrimSpace(ing.Unit)})
	}
	for _, step := range g.Instructions {
		if step = strings.TrimSpace(step); step != "" {
			r.Instructions = append(r.Instructions, step)
		}
	}

	if len(r.Ingredients) == 0 {
		return nil, common.ErrAIServiceError.Wrap(fmt.Errorf("generated recipe has no ingredients"))
	}
	if len(r.Instructions) == 0 {
		return nil, common.ErrAIServiceError.Wrap(fmt.Errorf("generated recipe has no instructions"))
	}
	return r, nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

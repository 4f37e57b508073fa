package recipe

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"smartplates/internal/core/search"
	"smartplates/internal/infrastructure/monitoring"
	"smartplates/internal/infrastructure/store"
	"smartplates/internal/pkg/common"

	"go.uber.org/zap"
)

const collectionName = "recipes"

// ExternalSource 外部食譜搜尋
type ExternalSource interface {
	SearchRecipes(ctx context.Context, query string) ([]Recipe, error)
}

// Generator AI 文字生成
type Generator interface {
	GenerateResponse(ctx context.Context, prompt string) (string, error)
}

// Service 食譜服務
type Service struct {
	recipes   *store.Collection[Recipe]
	matcher   *search.Matcher
	external  ExternalSource
	generator Generator
	metrics   *monitoring.Metrics
	now       func() time.Time
}

// NewService 建立食譜服務，external、generator 與 metrics 可為 nil
func NewService(s store.Store, matcher *search.Matcher, external ExternalSource, generator Generator, metrics *monitoring.Metrics) *Service {
	if matcher == nil {
		matcher = search.NewMatcher()
	}
	return &Service{
		recipes:   store.NewCollection[Recipe](s, collectionName),
		matcher:   matcher,
		external:  external,
		generator: generator,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Create 儲存使用者食譜
func (s *Service) Create(ctx context.Context, ownerID string, r *Recipe) (*Recipe, error) {
	if err := validate(r); err != nil {
		return nil, err
	}

	r.ID = common.GenerateUUID()
	r.OwnerID = ownerID
	r.Title = strings.TrimSpace(r.Title)
	if r.Source == "" {
		r.Source = SourceUser
	}
	r.CreatedAt = s.now().UTC()

	if err := s.recipes.Put(ctx, r.ID, r); err != nil {
		return nil, err
	}

	common.LogInfo("食譜已建立",
		zap.String("recipe_id", r.ID),
		zap.String("source", string(r.Source)),
	)
	return r, nil
}

// Get 依 ID 讀取食譜，食譜對所有使用者可見
func (s *Service) Get(ctx context.Context, id string) (*Recipe, error) {
	r, err := s.recipes.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, common.ErrRecipeNotFound
		}
		return nil, err
	}
	return r, nil
}

// List 使用者建立的食譜，依建立時間排序
func (s *Service) List(ctx context.Context, ownerID string) ([]Recipe, error) {
	items, err := s.recipes.List(ctx, func(r *Recipe) bool { return r.OwnerID == ownerID })
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})

	out := make([]Recipe, len(items))
	for i, r := range items {
		out[i] = *r
	}
	return out, nil
}

// Delete 刪除食譜，只有建立者可以刪除
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if r.OwnerID != ownerID {
		return common.ErrRecipeNotFound
	}
	if err := s.recipes.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.ErrRecipeNotFound
		}
		return err
	}
	return nil
}

// Search 在使用者的食譜中模糊搜尋
// includeExternal 時附加外部 API 結果，已存在的食譜不重複；外部失敗時只回傳本地結果
func (s *Service) Search(ctx context.Context, ownerID, query string, includeExternal bool) ([]Recipe, error) {
	candidates, err := s.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	results := search.Filter(s.matcher, candidates, query)
	s.metrics.RecordSearch(includeExternal)

	if !includeExternal || s.external == nil || strings.TrimSpace(query) == "" {
		return results, nil
	}

	external, err := s.external.SearchRecipes(ctx, query)
	if err != nil {
		common.LogWarn("外部食譜搜尋失敗，僅回傳本地結果",
			zap.String("query", query),
			zap.Error(err),
		)
		return results, nil
	}

	return mergeExternal(results, external), nil
}

func mergeExternal(local, external []Recipe) []Recipe {
	seenExternal := make(map[string]bool)
	seenTitle := make(map[string]bool)
	for _, r := range local {
		if r.ExternalID != "" {
			seenExternal[r.ExternalID] = true
		}
		seenTitle[strings.ToLower(strings.TrimSpace(r.Title))] = true
	}

	out := local
	for _, r := range external {
		title := strings.ToLower(strings.TrimSpace(r.Title))
		if (r.ExternalID != "" && seenExternal[r.ExternalID]) || seenTitle[title] {
			continue
		}
		if r.ExternalID != "" {
			seenExternal[r.ExternalID] = true
		}
		seenTitle[title] = true
		out = append(out, r)
	}
	return out
}

func validate(r *Recipe) error {
	if r == nil || strings.TrimSpace(r.Title) == "" {
		return common.NewValidationError("recipe title is required")
	}
	for _, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return common.NewValidationError("ingredient name is required")
		}
		if ing.Amount < 0 {
			return common.NewValidationError("ingredient amount must not be negative")
		}
	}
	if r.Servings < 0 {
		return common.NewValidationError("servings must not be negative")
	}
	return nil
}

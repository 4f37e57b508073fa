package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"smartplates/internal/pkg/common"

	"go.uber.org/zap"
)

// DefaultSimilarityThreshold 單字相似度門檻
const DefaultSimilarityThreshold = 0.7

const (
	minFuzzyQueryLen = 4 // 相似度比對的最短查詢長度
	minFuzzyWordLen  = 4 // 參與相似度比對的最短單字長度
	minContainLen    = 4 // 錯字表以子字串比對時的最短查詢長度
	prefixLen        = 3
)

// Tier 命中的比對層級
type Tier int

const (
	TierNone Tier = iota
	TierTitle
	TierIngredient
	TierMisspelling
	TierSimilarity
	TierPrefix
)

func (t Tier) String() string {
	switch t {
	case TierTitle:
		return "title"
	case TierIngredient:
		return "ingredient"
	case TierMisspelling:
		return "misspelling"
	case TierSimilarity:
		return "similarity"
	case TierPrefix:
		return "prefix"
	default:
		return "none"
	}
}

// Document 可被搜尋的項目
type Document interface {
	SearchTitle() string
	SearchIngredients() []string
}

// Matcher 分層模糊搜尋，建立後唯讀，可並行使用
type Matcher struct {
	threshold    float64
	misspellings []misspellingGroup
}

type misspellingGroup struct {
	terms []string // 第一個為標準詞
}

// Option Matcher 設定
type Option func(*Matcher)

// WithThreshold 設定相似度門檻
func WithThreshold(threshold float64) Option {
	return func(m *Matcher) {
		if threshold > 0 && threshold <= 1 {
			m.threshold = threshold
		}
	}
}

// WithMisspellings 替換錯字表
func WithMisspellings(dict map[string][]string) Option {
	return func(m *Matcher) {
		m.misspellings = buildGroups(dict)
	}
}

// NewMatcher 建立 Matcher
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		threshold:    DefaultSimilarityThreshold,
		misspellings: buildGroups(defaultMisspellings),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func buildGroups(dict map[string][]string) []misspellingGroup {
	keys := make([]string, 0, len(dict))
	for k := range dict {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]misspellingGroup, 0, len(keys))
	for _, k := range keys {
		terms := []string{strings.ToLower(k)}
		for _, v := range dict[k] {
			terms = append(terms, strings.ToLower(v))
		}
		groups = append(groups, misspellingGroup{terms: terms})
	}
	return groups
}

// Threshold 目前使用的相似度門檻
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

var defaultMatcher = NewMatcher()

// Search 使用預設 Matcher 搜尋
func Search[T Document](items []T, query string) []T {
	return Filter(defaultMatcher, items, query)
}

// Filter 回傳符合查詢的項目，保持輸入順序；空查詢回傳全部
func Filter[T Document](m *Matcher, items []T, query string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	result := make([]T, 0, len(items))
	if q == "" {
		return append(result, items...)
	}

	candidates := m.misspellingCandidates(q)
	for _, item := range items {
		tier := m.match(item, q, candidates)
		if tier == TierNone {
			continue
		}
		common.LogDebug("搜尋命中",
			zap.String("query", q),
			zap.String("title", item.SearchTitle()),
			zap.String("tier", tier.String()),
		)
		result = append(result, item)
	}
	return result
}

// Match 回傳項目命中的第一個層級
func (m *Matcher) Match(item Document, query string) Tier {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return TierTitle
	}
	return m.match(item, q, m.misspellingCandidates(q))
}

func (m *Matcher) match(item Document, q string, candidates []string) Tier {
	title := strings.ToLower(item.SearchTitle())
	rawIngredients := item.SearchIngredients()
	ingredients := make([]string, len(rawIngredients))
	for i, name := range rawIngredients {
		ingredients[i] = strings.ToLower(name)
	}

	// 1. 標題子字串
	if strings.Contains(title, q) {
		return TierTitle
	}

	// 2. 食材子字串
	for _, name := range ingredients {
		if strings.Contains(name, q) {
			return TierIngredient
		}
	}

	// 3. 錯字表
	for _, term := range candidates {
		if strings.Contains(title, term) {
			return TierMisspelling
		}
		for _, name := range ingredients {
			if strings.Contains(name, term) {
				return TierMisspelling
			}
		}
	}

	qLen := utf8.RuneCountInString(q)
	if qLen < prefixLen {
		return TierNone
	}

	words := splitWords(title)
	for _, name := range ingredients {
		words = append(words, splitWords(name)...)
	}

	// 4. 單字相似度
	if qLen >= minFuzzyQueryLen {
		for _, w := range words {
			if utf8.RuneCountInString(w) < minFuzzyWordLen {
				continue
			}
			if Similarity(q, w) >= m.threshold {
				return TierSimilarity
			}
		}
	}

	// 5. 部分/前綴比對
	if qLen == 3 || qLen == 4 {
		for _, w := range words {
			if strings.Contains(w, q) {
				return TierPrefix
			}
			if r := []rune(w); len(r) >= prefixLen && strings.Contains(q, string(r[:prefixLen])) {
				return TierPrefix
			}
		}
	}

	return TierNone
}

// misspellingCandidates 查詢命中錯字表時，回傳該組所有詞（標準詞與變體）
func (m *Matcher) misspellingCandidates(q string) []string {
	var candidates []string
	qLen := utf8.RuneCountInString(q)
	for _, g := range m.misspellings {
		if !groupMatches(g, q, qLen) {
			continue
		}
		candidates = append(candidates, g.terms...)
	}
	return candidates
}

func groupMatches(g misspellingGroup, q string, qLen int) bool {
	for _, term := range g.terms {
		if term == q {
			return true
		}
		if qLen >= minContainLen && utf8.RuneCountInString(term) >= minContainLen &&
			(strings.Contains(q, term) || strings.Contains(term, q)) {
			return true
		}
	}
	return false
}

// splitWords 以空白切字，並去除前後標點
func splitWords(s string) []string {
	fields := strings.Fields(s)
	words := fields[:0]
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

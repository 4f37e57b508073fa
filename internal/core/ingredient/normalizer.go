package ingredient

import (
	"strings"

	"smartplates/internal/pkg/common"
)

// Normalizer 將自由輸入的食材名稱對應到標準食材
// 建立後唯讀，可在多個 goroutine 間共用
type Normalizer struct {
	entries []Info
	byName  map[string]int
}

// NewNormalizer 以給定的食材表建立 Normalizer，表格內容會被複製
func NewNormalizer(entries []Info) *Normalizer {
	n := &Normalizer{
		entries: make([]Info, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}
	copy(n.entries, entries)
	for i := range n.entries {
		key := normalizeName(n.entries[i].Name)
		if _, dup := n.byName[key]; !dup {
			n.byName[key] = i
		}
	}
	return n
}

var defaultNormalizer = NewNormalizer(defaultDatabase)

// Default 回傳使用內建食材表的 Normalizer
func Default() *Normalizer {
	return defaultNormalizer
}

// FindIngredient 先比對標準名稱，再依序比對別名，找不到時回傳 nil
func (n *Normalizer) FindIngredient(rawName string) *Info {
	name := normalizeName(rawName)
	if name == "" {
		return nil
	}

	if i, ok := n.byName[name]; ok {
		return &n.entries[i]
	}

	for i := range n.entries {
		for _, alias := range n.entries[i].Aliases {
			if strings.EqualFold(strings.TrimSpace(alias), name) {
				return &n.entries[i]
			}
		}
	}

	return nil
}

// Resolve 解析食材名稱，無法辨識時歸入 DefaultCategory 且不視為常備品
func (n *Normalizer) Resolve(rawName string) Resolution {
	if info := n.FindIngredient(rawName); info != nil {
		return Resolution{
			Key:      normalizeName(info.Name),
			Name:     info.Name,
			Category: info.Category,
			IsStaple: info.IsStaple,
			Info:     info,
		}
	}

	key := normalizeName(rawName)
	return Resolution{
		Key:      key,
		Name:     key,
		Category: DefaultCategory,
	}
}

// FindIngredient 使用內建食材表查詢
func FindIngredient(rawName string) *Info {
	return defaultNormalizer.FindIngredient(rawName)
}

func normalizeName(s string) string {
	return strings.ToLower(common.CollapseSpaces(s))
}

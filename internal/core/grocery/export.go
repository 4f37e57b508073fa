package grocery

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"smartplates/internal/core/ingredient"
	"smartplates/internal/pkg/common"
)

// Format 匯出格式
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat 解析匯出格式，空字串視為 text
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", common.NewValidationError(fmt.Sprintf("unsupported export format %q", s))
}

// ContentType 對應的 HTTP Content-Type
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// Export 將清單輸出為指定格式
func Export(list *List, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(list, "", "  ")
	case FormatText:
		return []byte(exportText(list)), nil
	}
	return nil, common.NewValidationError(fmt.Sprintf("unsupported export format %q", format))
}

func exportText(list *List) string {
	var b strings.Builder
	b.WriteString("Grocery List\n")
	b.WriteString("============\n")

	if len(list.Items) == 0 {
		b.WriteString("\n(no items)\n")
		return b.String()
	}

	if list.Categories != nil {
		for _, category := range ingredient.Categories {
			items := list.Categories[category]
			if len(items) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n%s\n", category)
			for _, item := range items {
				writeItem(&b, item)
			}
		}
	} else {
		b.WriteString("\n")
		for _, item := range list.Items {
			writeItem(&b, item)
		}
	}

	fmt.Fprintf(&b, "\nItems: %d (purchased %d)\n", list.ItemsCount, list.PurchasedCount())
	if list.TotalEstimatedCost != nil {
		fmt.Fprintf(&b, "Estimated total: $%.2f\n", *list.TotalEstimatedCost)
	}
	return b.String()
}

func writeItem(b *strings.Builder, item Item) {
	mark := " "
	if item.IsPurchased {
		mark = "x"
	}
	fmt.Fprintf(b, "- [%s] %s: %s", mark, item.DisplayName, FormatQuantity(item.Quantity))
	if item.Unit != "" {
		fmt.Fprintf(b, " %s", item.Unit)
	}
	if item.EstimatedCost != nil {
		fmt.Fprintf(b, " (~$%.2f)", *item.EstimatedCost)
	}
	b.WriteString("\n")
}

// FormatQuantity 最多兩位小數，去除多餘的零
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(common.RoundMoney(q), 'f', -1, 64)
}

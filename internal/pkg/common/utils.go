package common

import (
	"math"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// IsUUID 檢查字串是否為合法 UUID
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// RoundMoney 四捨五入到小數點後兩位
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// CollapseSpaces 去除前後空白並合併連續空白
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TitleCase 將每個單字首字母轉大寫，其餘不變
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

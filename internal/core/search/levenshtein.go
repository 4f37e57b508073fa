package search

import "unicode/utf8"

// Levenshtein 計算編輯距離（插入、刪除、替換成本皆為 1）
// 使用完整的 (len(b)+1) x (len(a)+1) 矩陣，以 rune 為單位
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	matrix := make([][]int, len(rb)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(ra)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(ra); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(rb); i++ {
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				matrix[i][j] = matrix[i-1][j-1]
				continue
			}
			matrix[i][j] = 1 + min(
				matrix[i-1][j-1], // 替換
				matrix[i][j-1],   // 插入
				matrix[i-1][j],   // 刪除
			)
		}
	}

	return matrix[len(rb)][len(ra)]
}

// Similarity 正規化相似度 (maxLen - distance) / maxLen，兩個空字串視為 1
func Similarity(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1
	}
	return float64(maxLen-Levenshtein(a, b)) / float64(maxLen)
}

package contraction

import (
	"strings"
	"unicode/utf8"
)

// Stats 文本统计信息。
type Stats struct {
	Characters int `json:"characters"`
	Words      int `json:"words"`
}

// Count 统计 text 的字符数（按 rune 计）与以空白分隔的非空单词数。
func Count(text string) Stats {
	return Stats{
		Characters: utf8.RuneCountInString(text),
		Words:      len(strings.Fields(text)),
	}
}

package contraction

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"
)

var (
	// ErrEmptyKey 映射表中存在空 key。
	ErrEmptyKey = errors.New("contraction: empty key")
	// ErrEmptyExpansion 映射表中存在空展开结果。
	ErrEmptyExpansion = errors.New("contraction: empty expansion")
	// ErrKeyNotLowercase key 不是小写形式。
	ErrKeyNotLowercase = errors.New("contraction: key must be lowercase")
	// ErrKeyWhitespace key 中包含空白字符。
	ErrKeyWhitespace = errors.New("contraction: key must not contain whitespace")
)

// defaultEntries 默认映射表。
var defaultEntries = map[string]string{
	// 常见缩略
	"ain't":     "am not",
	"aren't":    "are not",
	"can't":     "cannot",
	"couldn't":  "could not",
	"didn't":    "did not",
	"doesn't":   "does not",
	"don't":     "do not",
	"hadn't":    "had not",
	"hasn't":    "has not",
	"haven't":   "have not",
	"he'd":      "he would",
	"he'll":     "he will",
	"he's":      "he is",
	"i'd":       "I would",
	"i'll":      "I will",
	"i'm":       "I am",
	"i've":      "I have",
	"isn't":     "is not",
	"it'd":      "it would",
	"it'll":     "it will",
	"it's":      "it is",
	"let's":     "let us",
	"shouldn't": "should not",
	"that's":    "that is",
	"there's":   "there is",
	"they'd":    "they would",
	"they'll":   "they will",
	"they're":   "they are",
	"they've":   "they have",
	"we'd":      "we would",
	"we'll":     "we will",
	"we're":     "we are",
	"we've":     "we have",
	"weren't":   "were not",
	"what's":    "what is",
	"where's":   "where is",
	"who's":     "who is",
	"won't":     "will not",
	"wouldn't":  "would not",
	"you'd":     "you would",
	"you'll":    "you will",
	"you're":    "you are",
	"you've":    "you have",

	// 其他缩略
	"ma'am":   "madam",
	"o'clock": "of the clock",
	"y'all":   "you all",
	"'cause":  "because",
	"'til":    "until",
	"'bout":   "about",
	"'round":  "around",
	"'fore":   "before",
	"'neath":  "beneath",
	"'gainst": "against",

	// 否定缩略
	"mustn't":      "must not",
	"needn't":      "need not",
	"oughtn't":     "ought not",
	"shan't":       "shall not",
	"wasn't":       "was not",
	"won't've":     "will not have",
	"wouldn't've":  "would not have",
	"shouldn't've": "should not have",
	"couldn't've":  "could not have",
	"mightn't":     "might not",
}

var defaultTable = Table{entries: defaultEntries}

// Table 缩略形式到完整形式的只读映射。
//
// 零值为空表。所有方法都不会修改接收者。
type Table struct {
	entries map[string]string
}

// Entry 映射表中的一项。
type Entry struct {
	Contraction string `json:"contraction"`
	Expansion   string `json:"expansion"`
}

// DefaultTable 返回内置的默认映射表。
func DefaultTable() Table {
	return defaultTable
}

// NewTable 校验并复制 entries，返回新的映射表。
func NewTable(entries map[string]string) (Table, error) {
	for key, expansion := range entries {
		if err := validateEntry(key, expansion); err != nil {
			return Table{}, err
		}
	}

	return Table{entries: maps.Clone(entries)}, nil
}

func validateEntry(key, expansion string) error {
	switch {
	case key == "":
		return ErrEmptyKey
	case strings.TrimSpace(expansion) == "":
		return fmt.Errorf("%w: %q", ErrEmptyExpansion, key)
	case strings.ToLower(key) != key:
		return fmt.Errorf("%w: %q", ErrKeyNotLowercase, key)
	case strings.IndexFunc(key, unicode.IsSpace) >= 0:
		return fmt.Errorf("%w: %q", ErrKeyWhitespace, key)
	}

	return nil
}

// Merge 返回 t 与 extra 合并后的新表，extra 中的同名 key 覆盖 t。
func (t Table) Merge(extra map[string]string) (Table, error) {
	if len(extra) == 0 {
		return t, nil
	}

	merged := make(map[string]string, len(t.entries)+len(extra))
	maps.Copy(merged, t.entries)
	for key, expansion := range extra {
		if err := validateEntry(key, expansion); err != nil {
			return Table{}, err
		}
		merged[key] = expansion
	}

	return Table{entries: merged}, nil
}

// Lookup 查找小写 key 对应的展开结果。
func (t Table) Lookup(key string) (string, bool) {
	expansion, ok := t.entries[key]
	return expansion, ok
}

// Len 返回映射表条目数。
func (t Table) Len() int {
	return len(t.entries)
}

// Keys 返回按字典序排列的全部 key。
func (t Table) Keys() []string {
	return slices.Sorted(maps.Keys(t.entries))
}

// Entries 返回按 key 字典序排列的全部条目。
func (t Table) Entries() []Entry {
	keys := t.Keys()
	out := make([]Entry, 0, len(keys))
	for _, key := range keys {
		out = append(out, Entry{Contraction: key, Expansion: t.entries[key]})
	}

	return out
}

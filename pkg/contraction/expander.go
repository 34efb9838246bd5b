package contraction

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

const (
	apostrophe            = "'"
	typographicApostrophe = "’"
)

// options 展开器选项。
type options struct {
	typographic bool // 是否同时匹配 U+2019 右单引号
}

// Option 展开器选项函数。
type Option func(*options)

// WithTypographicApostrophes 使匹配同时接受排版撇号 (’) 作为 "'" 的替代。
//
// 匹配到的片段在查表前会统一为 "'"，展开结果中不保留排版撇号。
func WithTypographicApostrophes() Option {
	return func(o *options) {
		o.typographic = true
	}
}

// Expander 基于映射表的缩略形式展开器。
type Expander struct {
	table   Table
	pattern *regexp.Regexp
	opts    options
}

// New 根据映射表构造展开器，匹配模式在此处一次性编译。
func New(table Table, opts ...Option) *Expander {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	return &Expander{
		table:   table,
		pattern: compilePattern(table.Keys(), o.typographic),
		opts:    o,
	}
}

var defaultExpander = sync.OnceValue(func() *Expander {
	return New(DefaultTable())
})

// Expand 使用默认映射表展开 text 中的缩略形式。
func Expand(text string) string {
	return defaultExpander().Expand(text)
}

// Table 返回展开器使用的映射表。
func (e *Expander) Table() Table {
	return e.table
}

// Expand 展开 text 中所有独立出现的缩略形式。
func (e *Expander) Expand(text string) string {
	out, _ := e.ExpandN(text)
	return out
}

// ExpandN 与 [Expander.Expand] 相同，并返回发生替换的次数。
func (e *Expander) ExpandN(text string) (string, int) {
	if text == "" || e.pattern == nil {
		return text, 0
	}

	n := 0
	out := e.pattern.ReplaceAllStringFunc(text, func(match string) string {
		key := strings.ToLower(match)
		if e.opts.typographic {
			key = strings.ReplaceAll(key, typographicApostrophe, apostrophe)
		}

		expansion, ok := e.table.Lookup(key)
		if !ok {
			// (?i) 的 Unicode 折叠可能匹配到表外写法，如 ſ (U+017F)
			return match
		}
		n++

		return matchCase(match, expansion)
	})

	return out, n
}

// matchCase 按 match 首字符的大小写调整 expansion 的首字母。
func matchCase(match, expansion string) string {
	first, _ := utf8.DecodeRuneInString(match)
	if !unicode.IsUpper(first) {
		return expansion
	}

	head, size := utf8.DecodeRuneInString(expansion)
	upper := unicode.ToUpper(head)
	if upper == head {
		return expansion
	}

	return string(upper) + expansion[size:]
}

// compilePattern 将 keys 编译为单条不区分大小写的交替模式。
//
// 分支按长度降序（同长按字典序）排列；每个分支两侧按首尾字符是否为单词字符
// 选用 \b 或 \B，以保证外侧为非单词字符或文本边界。
func compilePattern(keys []string, typographic bool) *regexp.Regexp {
	if len(keys) == 0 {
		return nil
	}

	ordered := slices.Clone(keys)
	slices.SortFunc(ordered, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	alternatives := make([]string, 0, len(ordered))
	for _, key := range ordered {
		quoted := regexp.QuoteMeta(key)
		if typographic {
			quoted = strings.ReplaceAll(quoted, apostrophe, "['’]")
		}
		alternatives = append(alternatives, edge(key[0])+quoted+edge(key[len(key)-1]))
	}

	return regexp.MustCompile(`(?i)(?:` + strings.Join(alternatives, "|") + `)`)
}

func edge(ch byte) string {
	if isWordChar(ch) {
		return `\b`
	}
	return `\B`
}

// isWordChar 与 RE2 中 \b 的单词字符定义一致。
func isWordChar(ch byte) bool {
	return ch == '_' || (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

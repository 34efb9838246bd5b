package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpandEnv 对配置字符串执行 Shell 风格的参数展开。
//
// 支持语法：
//   - ${VAR} - 变量替换，未设置时为空串
//   - ${VAR:-default} / ${VAR-default} - fallback（带冒号时空值视同未设置）
//   - ${VAR:?msg} / ${VAR?msg} - 必填校验，失败时返回 error
//   - $$ - 字面量 $
//
// 仅识别 ${...}，不解析 $VAR；无法识别的表达式保持原样。default 部分可嵌套展开。
func ExpandEnv(text string) (string, error) {
	if !strings.Contains(text, "$") {
		return text, nil
	}

	var buf strings.Builder
	buf.Grow(len(text))

	for i := 0; i < len(text); {
		if text[i] != '$' || i+1 >= len(text) {
			buf.WriteByte(text[i])
			i++
			continue
		}

		switch text[i+1] {
		case '$':
			buf.WriteByte('$')
			i += 2
			continue
		case '{':
		default:
			buf.WriteByte('$')
			i++
			continue
		}

		end := closingBrace(text, i+2)
		if end == -1 {
			buf.WriteString(text[i:])
			break
		}

		expanded, ok, err := expandParam(text[i+2 : end])
		if err != nil {
			return "", err
		}
		if ok {
			buf.WriteString(expanded)
		} else {
			buf.WriteString(text[i : end+1])
		}
		i = end + 1
	}

	return buf.String(), nil
}

// closingBrace 返回与 start 之前的 "${" 配对的 "}" 位置，考虑嵌套。
func closingBrace(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch {
		case text[i] == '$' && i+1 < len(text) && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}

	return -1
}

func expandParam(expr string) (string, bool, error) {
	name, op, word, ok := splitParam(expr)
	if !ok {
		return "", false, nil
	}

	val, isSet := os.LookupEnv(name)
	missing := !isSet || (strings.HasPrefix(op, ":") && val == "")

	switch op {
	case "":
		return val, true, nil
	case ":-", "-":
		if !missing {
			return val, true, nil
		}
		expanded, err := ExpandEnv(word)
		if err != nil {
			return "", false, err
		}
		return expanded, true, nil
	case ":?", "?":
		if !missing {
			return val, true, nil
		}
		if word == "" {
			return "", false, fmt.Errorf("config: %s: parameter null or not set", name)
		}
		return "", false, fmt.Errorf("config: %s: %s", name, word)
	}

	return "", false, nil
}

// splitParam 将 "NAME:-word" 拆分为变量名、操作符与 word。
func splitParam(expr string) (string, string, string, bool) {
	if expr == "" || !isNameStart(expr[0]) {
		return "", "", "", false
	}

	i := 1
	for i < len(expr) && (isNameStart(expr[i]) || (expr[i] >= '0' && expr[i] <= '9')) {
		i++
	}

	name, rest := expr[:i], expr[i:]
	switch {
	case rest == "":
		return name, "", "", true
	case strings.HasPrefix(rest, ":-"), strings.HasPrefix(rest, ":?"):
		return name, rest[:2], rest[2:], true
	case rest[0] == '-', rest[0] == '?':
		return name, rest[:1], rest[1:], true
	}

	return "", "", "", false
}

func isNameStart(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

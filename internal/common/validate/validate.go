package validate

import (
	"fmt"
	"strings"
	"time"
)

// Kind 字段类型
type Kind int

const (
	KindString Kind = iota // 字符串字段
	KindTime               // 时间字段
)

// Input 单个字段的输入值。KindString 取 Str，KindTime 取 Time。
// Present=false 表示调用方未提供该字段。
type Input struct {
	Str     string
	Time    time.Time
	Present bool
}

// String 构造字符串输入。
func String(s string) Input {
	return Input{Str: s, Present: true}
}

// TimeVal 构造时间输入（零值视为未提供）。
func TimeVal(t time.Time) Input {
	return Input{Time: t, Present: !t.IsZero()}
}

// Rule 单个字段的校验规则。
// 取代"声明式规则字符串"的做法：每个约束是一个类型化选项，
// 由 Apply 统一求值，不做反射。
type Rule struct {
	Field    string
	Kind     Kind
	Required bool
	MaxLen   int               // >0 时生效（仅 KindString）
	Future   bool              // 必须严格晚于当前时间（仅 KindTime）
	After    string            // 必须严格晚于另一个时间字段（仅 KindTime）
	Messages map[string]string // 约束名 -> 自定义文案（required/max/future/after）
}

func (r Rule) message(constraint, fallback string) string {
	if m, ok := r.Messages[constraint]; ok && m != "" {
		return m
	}
	return fallback
}

func (r Rule) missing(in Input) bool {
	if !in.Present {
		return true
	}
	switch r.Kind {
	case KindTime:
		return in.Time.IsZero()
	default:
		return strings.TrimSpace(in.Str) == ""
	}
}

// Apply 按规则表求值，返回 field -> message；全部通过时返回空 map。
// 每个字段只报告第一条违反的约束。
func Apply(rules []Rule, in map[string]Input, now time.Time) map[string]string {
	out := make(map[string]string)
	for _, r := range rules {
		v := in[r.Field]

		if r.missing(v) {
			if r.Required {
				out[r.Field] = r.message("required", fmt.Sprintf("%s is required.", r.Field))
			}
			// 可选字段缺省时跳过其余约束
			continue
		}

		switch r.Kind {
		case KindString:
			if r.MaxLen > 0 && len([]rune(v.Str)) > r.MaxLen {
				out[r.Field] = r.message("max", fmt.Sprintf("%s may not be greater than %d characters.", r.Field, r.MaxLen))
			}
		case KindTime:
			if r.Future && !v.Time.After(now) {
				out[r.Field] = r.message("future", fmt.Sprintf("%s must be in the future.", r.Field))
				continue
			}
			if r.After != "" {
				other := in[r.After]
				if other.Present && !other.Time.IsZero() && !v.Time.After(other.Time) {
					out[r.Field] = r.message("after", fmt.Sprintf("%s must be after %s.", r.Field, r.After))
				}
			}
		}
	}
	return out
}

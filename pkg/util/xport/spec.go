package xport

import (
	"fmt"
	"strings"
)

// Parse 将端口规格解析为升序、无重复的端口列表。
//
// 语法：
//
//	spec         := token (',' token)*
//	token        := ['!'] rangeOrValue
//	rangeOrValue := [NUMBER] '-' [NUMBER] | NUMBER
//
// 求值规则：
//   - 每个 token 先与端口域 [1, 65535] 求交；交集为空（如单独的 0、65536，
//     或完全落在域外的范围）时不贡献端口，也不报错
//   - 结果 = 所有非取反范围的并集 − 所有取反范围的并集，与 token 顺序无关
//   - token 两侧空白被忽略，空 token（如结尾逗号）被跳过
//
// 只有形状错误的 token（非数字、多余的 '-' 等）返回 [ErrSyntax]。
//
// 示例："-1,0-10,!2-5,!7,65530-,65536" → 1,6,8,9,10,65530..65535。
func Parse(spec string) ([]Port, error) {
	s, err := ParseSet(spec)
	if err != nil {
		return nil, err
	}
	return s.Ports(), nil
}

// ParseSet 与 [Parse] 相同，但返回 [*Set]。
func ParseSet(spec string) (*Set, error) {
	tokens, err := ParseTokens(spec)
	if err != nil {
		return nil, err
	}
	return Evaluate(tokens), nil
}

// ParseTokens 按逗号拆分并解析所有 token，跳过空 token。
func ParseTokens(spec string) ([]Token, error) {
	parts := strings.Split(spec, ",")
	tokens := make([]Token, 0, len(parts))
	for i, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		t, err := ParseToken(part)
		if err != nil {
			return nil, fmt.Errorf("token [%d]: %w", i, err)
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// Evaluate 对已解析的 token 做集合运算：先求包含集的并集，再减去排除集。
func Evaluate(tokens []Token) *Set {
	included := NewSet()
	excluded := NewSet()
	for _, t := range tokens {
		target := included
		if t.Negated {
			target = excluded
		}
		target.AddRange(t.Start, t.End)
	}
	included.Difference(excluded)
	return included
}

// Format 将端口列表格式化为紧凑的端口规格，是 [Parse] 的逆操作。
// 输入无需有序，重复值和 0 会被忽略。
func Format(ports []Port) string {
	s := NewSet()
	for _, p := range ports {
		s.AddRange(int(p), int(p))
	}
	return s.String()
}

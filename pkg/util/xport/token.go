package xport

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Token 是端口规格中的一个范围项。
// 省略的起点取 [MinPort]，省略的终点取 [MaxPort]；单值项 Start == End。
// Start/End 保留书写的原值，可能落在端口域之外，由 [Token.Clamp] 求交。
type Token struct {
	Negated bool
	Start   int
	End     int
}

// ParseToken 解析单个 token：['!'] ( [NUMBER] '-' [NUMBER] | NUMBER )。
// 起止颠倒的范围按空范围处理。超出 int 的数值饱和为 int 最大值。
func ParseToken(s string) (Token, error) {
	raw := s
	s = strings.TrimSpace(s)

	var t Token
	if rest, ok := strings.CutPrefix(s, "!"); ok {
		t.Negated = true
		s = strings.TrimSpace(rest)
	}
	if s == "" {
		return Token{}, fmt.Errorf("%w: empty range in token %q", ErrSyntax, raw)
	}

	lo, hi, isRange := strings.Cut(s, "-")
	if !isRange {
		n, err := parseNumber(s)
		if err != nil {
			return Token{}, fmt.Errorf("%w: token %q", err, raw)
		}
		t.Start, t.End = n, n
		return t, nil
	}

	t.Start, t.End = MinPort, MaxPort
	if lo = strings.TrimSpace(lo); lo != "" {
		n, err := parseNumber(lo)
		if err != nil {
			return Token{}, fmt.Errorf("%w: range start in token %q", err, raw)
		}
		t.Start = n
	}
	if hi = strings.TrimSpace(hi); hi != "" {
		n, err := parseNumber(hi)
		if err != nil {
			return Token{}, fmt.Errorf("%w: range end in token %q", err, raw)
		}
		t.End = n
	}
	return t, nil
}

// parseNumber 只接受十进制数字串，拒绝符号和其他字符。
func parseNumber(s string) (int, error) {
	if s == "" {
		return 0, ErrSyntax
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrSyntax
		}
	}
	n, err := strconv.ParseInt(s, 10, 0)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, ErrSyntax
	}
	// 溢出时 ParseInt 已返回 int 最大值，之后会被裁剪掉
	return int(n), nil
}

// Clamp 返回 token 与端口域 [MinPort, MaxPort] 的交集。
// 交集为空时 ok 为 false，该 token 不贡献任何端口。
func (t Token) Clamp() (lo, hi Port, ok bool) {
	start := max(t.Start, MinPort)
	end := min(t.End, MaxPort)
	if start > end {
		return 0, 0, false
	}
	return Port(start), Port(end), true
}

// String 返回 token 的规范书写形式。
func (t Token) String() string {
	var b strings.Builder
	if t.Negated {
		b.WriteByte('!')
	}
	b.WriteString(strconv.Itoa(t.Start))
	if t.End != t.Start {
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(t.End))
	}
	return b.String()
}

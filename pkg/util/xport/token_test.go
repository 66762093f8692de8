package xport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Token
	}{
		{name: "single", input: "80", want: Token{Start: 80, End: 80}},
		{name: "range", input: "1-1024", want: Token{Start: 1, End: 1024}},
		{name: "open start", input: "-1", want: Token{Start: 1, End: 1}},
		{name: "open end", input: "65530-", want: Token{Start: 65530, End: MaxPort}},
		{name: "bare dash", input: "-", want: Token{Start: MinPort, End: MaxPort}},
		{name: "negated", input: "!7", want: Token{Negated: true, Start: 7, End: 7}},
		{name: "negated range", input: "!2-5", want: Token{Negated: true, Start: 2, End: 5}},
		{name: "whitespace", input: "  ! 10 - 20 ", want: Token{Negated: true, Start: 10, End: 20}},
		{name: "zero", input: "0", want: Token{}},
		{name: "reversed kept", input: "20-10", want: Token{Start: 20, End: 10}},
		{name: "overflow saturates", input: "99999999999999999999", want: Token{Start: math.MaxInt, End: math.MaxInt}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseToken(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseToken_Syntax(t *testing.T) {
	for _, in := range []string{"", "!", "  ", "abc", "1-2-3", "+5", "1.5", "!!5", "0x10", "1,2", "--5"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseToken(in)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestToken_Clamp(t *testing.T) {
	tests := []struct {
		tok    Token
		lo, hi Port
		ok     bool
	}{
		{tok: Token{Start: 0, End: 10}, lo: 1, hi: 10, ok: true},
		{tok: Token{Start: 65530, End: 70000}, lo: 65530, hi: 65535, ok: true},
		{tok: Token{Start: 0, End: 0}},
		{tok: Token{Start: 65536, End: 65536}},
		{tok: Token{Start: 70000, End: 80000}},
		{tok: Token{Start: 20, End: 10}},
		{tok: Token{Start: MinPort, End: MaxPort}, lo: 1, hi: 65535, ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.tok.String(), func(t *testing.T) {
			lo, hi, ok := tt.tok.Clamp()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestToken_String(t *testing.T) {
	assert.Equal(t, "80", Token{Start: 80, End: 80}.String())
	assert.Equal(t, "!2-5", Token{Negated: true, Start: 2, End: 5}.String())
}

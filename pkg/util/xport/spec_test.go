package xport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func portRange(lo, hi Port) []Port {
	out := make([]Port, 0, int(hi-lo)+1)
	for p := int(lo); p <= int(hi); p++ {
		out = append(out, Port(p))
	}
	return out
}

func TestParse_ClampAndNegate(t *testing.T) {
	got, err := Parse("-1,0-10,!2-5,!7,65530-,65536")
	require.NoError(t, err)

	want := []Port{1, 6, 8, 9, 10}
	want = append(want, portRange(65530, 65535)...)
	assert.Equal(t, want, got)

	for _, p := range []Port{0, 2, 3, 4, 5, 7} {
		assert.NotContains(t, got, p)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []Port
	}{
		{name: "single", spec: "80", want: []Port{80}},
		{name: "list unsorted", spec: "443,22,80", want: []Port{22, 80, 443}},
		{name: "duplicates", spec: "22,22,20-23", want: []Port{20, 21, 22, 23}},
		{name: "negation order independent", spec: "!5,1-6", want: []Port{1, 2, 3, 4, 6}},
		{name: "only negation", spec: "!80", want: nil},
		{name: "empty", spec: "", want: nil},
		{name: "empty tokens skipped", spec: ",80,, 81 ,", want: []Port{80, 81}},
		{name: "lone zero", spec: "0", want: nil},
		{name: "above domain", spec: "65536,70000-80000", want: nil},
		{name: "reversed range", spec: "10-5", want: nil},
		{name: "overflow dropped", spec: "99999999999999999999,1", want: []Port{1}},
		{name: "negated open end", spec: "65530-,!65533-", want: []Port{65530, 65531, 65532}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_FullDomain(t *testing.T) {
	s, err := ParseSet("-")
	require.NoError(t, err)
	assert.Equal(t, MaxPort, s.Len())
	assert.True(t, s.Contains(MinPort))
	assert.True(t, s.Contains(MaxPort))
	assert.False(t, s.Contains(0))
}

func TestParse_Syntax(t *testing.T) {
	for _, spec := range []string{"abc", "80,http", "1-2-3", "!", "22,!"} {
		t.Run(spec, func(t *testing.T) {
			got, err := Parse(spec)
			assert.ErrorIs(t, err, ErrSyntax)
			assert.Nil(t, got)
		})
	}
}

func TestParse_SyntaxErrorNamesToken(t *testing.T) {
	_, err := Parse("80,http")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"http"`)
	assert.Contains(t, err.Error(), "token [1]")
}

func TestParseTokens(t *testing.T) {
	tokens, err := ParseTokens("1-10, ,!5")
	require.NoError(t, err)
	assert.Equal(t, []Token{
		{Start: 1, End: 10},
		{Negated: true, Start: 5, End: 5},
	}, tokens)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		ports []Port
		want  string
	}{
		{name: "nil", ports: nil, want: ""},
		{name: "single", ports: []Port{80}, want: "80"},
		{name: "run", ports: []Port{3, 1, 2}, want: "1-3"},
		{name: "mixed", ports: []Port{1, 6, 8, 9, 10, 22}, want: "1,6,8-10,22"},
		{name: "zero ignored", ports: []Port{0, 5, 5}, want: "5"},
		{name: "top", ports: []Port{65534, 65535}, want: "65534-65535"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.ports))
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	for _, spec := range []string{
		"-1,0-10,!2-5,!7,65530-,65536",
		"22,80,443,8000-8100,!8050",
		"1-65535,!1024-49151",
	} {
		t.Run(spec, func(t *testing.T) {
			ports, err := Parse(spec)
			require.NoError(t, err)
			again, err := Parse(Format(ports))
			require.NoError(t, err)
			assert.Equal(t, ports, again)
		})
	}
}

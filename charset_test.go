package img2ascii

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCharset(t *testing.T) {
	tests := []struct {
		arg  string
		want []rune
	}{
		{"space", []rune{' '}},
		{"x", []rune{'x'}},
		{"-", []rune{'-'}},
		{"a-e", []rune("abcde")},
		{"e-a", []rune("abcde")},
		{"0-9", DefaultCharset},
		{"---", []rune{'-'}},
		{" -#", []rune(" !\"#")},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := ParseCharset(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCharsetAll(t *testing.T) {
	all, err := ParseCharset(CharsetAll)
	require.NoError(t, err)
	require.Len(t, all, NumChars)
	assert.Equal(t, FirstChar, all[0])
	assert.Equal(t, LastChar, all[len(all)-1])
}

func TestParseCharsetErrors(t *testing.T) {
	for _, arg := range []string{"", "ab", "a-", "abc", "a-bc", "spaces"} {
		_, err := ParseCharset(arg)
		assert.ErrorIs(t, err, ErrBadCharset, "arg %q", arg)
	}
	for _, arg := range []string{"é", "a-é", "\t"} {
		_, err := ParseCharset(arg)
		assert.ErrorIs(t, err, ErrOutOfRange, "arg %q", arg)
	}
}

func TestFormatCharset(t *testing.T) {
	assert.Equal(t, "space ! a", FormatCharset([]rune(" !a")))
	assert.Equal(t, "", FormatCharset(nil))

	// Every formatted entry parses back to itself
	for _, c := range AllChars() {
		got, err := ParseCharset(FormatCharset([]rune{c}))
		require.NoError(t, err)
		assert.Equal(t, []rune{c}, got)
	}
}

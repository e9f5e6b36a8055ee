package img2ascii

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadCharset is returned by ParseCharset for arguments it cannot read.
var ErrBadCharset = errors.New("unrecognized character set")

// Keywords accepted by ParseCharset.
const (
	CharsetAll   = "all"
	CharsetSpace = "space"
)

// DefaultCharset is the palette used when none is given: the digits.
var DefaultCharset = []rune("0123456789")

// AllChars returns every supported character in ascending order.
func AllChars() []rune {
	chars := make([]rune, 0, NumChars)
	for c := FirstChar; c <= LastChar; c++ {
		chars = append(chars, c)
	}
	return chars
}

// ParseCharset reads one character-set argument:
//
//	all    every character from ' ' to '~'
//	space  the space character
//	a-f    an inclusive range; the ends may be given in either order
//	x      a single character
//
// A lone "-" is the minus character.
func ParseCharset(arg string) ([]rune, error) {
	switch arg {
	case CharsetAll:
		return AllChars(), nil
	case CharsetSpace:
		return []rune{' '}, nil
	}

	runes := []rune(arg)
	switch {
	case len(runes) == 1:
		if err := checkRange(runes[0]); err != nil {
			return nil, err
		}
		return runes, nil
	case len(runes) == 3 && runes[1] == '-':
		return charRange(runes[0], runes[2])
	}
	return nil, fmt.Errorf("%w: %q", ErrBadCharset, arg)
}

func charRange(a, b rune) ([]rune, error) {
	if a > b {
		a, b = b, a
	}
	if err := checkRange(a); err != nil {
		return nil, err
	}
	if err := checkRange(b); err != nil {
		return nil, err
	}
	chars := make([]rune, 0, b-a+1)
	for c := a; c <= b; c++ {
		chars = append(chars, c)
	}
	return chars, nil
}

// FormatCharset renders characters the way ParseCharset reads them back,
// separated by spaces.
func FormatCharset(chars []rune) string {
	var sb strings.Builder
	for i, c := range chars {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if c == ' ' {
			sb.WriteString(CharsetSpace)
			continue
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

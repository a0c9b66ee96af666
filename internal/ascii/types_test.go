package ascii

import (
	"testing"

	"github.com/pkg/errors"
)

func TestParseColorMode(t *testing.T) {
	for _, s := range []string{"light", "dark"} {
		mode, err := ParseColorMode(s)
		if err != nil || string(mode) != s {
			t.Errorf("ParseColorMode(%q) = %q, %v", s, mode, err)
		}
	}

	for _, s := range []string{"", "auto", "Dark"} {
		_, err := ParseColorMode(s)
		if !errors.Is(err, ErrUnknownColorMode) {
			t.Errorf("ParseColorMode(%q): expected ErrUnknownColorMode, got %v", s, err)
		}
	}
}

package diffengine

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseOptions parses a comma-separated diffopt string into Options.
// Recognized tokens are filler, icase, iwhite, and
// context:<digits>; any other token is an error. Unset boolean tokens
// default to false and Context defaults to 0.
func ParseOptions(s string) (Options, error) {
	var opts Options
	if strings.TrimSpace(s) == "" {
		return opts, nil
	}
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		switch {
		case tok == "filler":
			opts.Filler = true
		case tok == "icase":
			opts.ICase = true
		case tok == "iwhite":
			opts.IWhite = true
		case strings.HasPrefix(tok, "context:"):
			n, err := strconv.Atoi(strings.TrimPrefix(tok, "context:"))
			if err != nil || n < 0 {
				return Options{}, fmt.Errorf("diffengine: invalid context token %q", tok)
			}
			opts.Context = n
		default:
			return Options{}, fmt.Errorf("diffengine: unrecognized diffopt token %q", tok)
		}
	}
	return opts, nil
}

// ApplyOptionString parses s and installs it as the engine's options,
// marking the list stale if ICase or IWhite changed.
func (e *Engine) ApplyOptionString(s string) error {
	opts, err := ParseOptions(s)
	if err != nil {
		return err
	}
	e.SetOptions(opts)
	return nil
}

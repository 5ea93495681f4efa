package diffengine

import (
	"unicode"
	"unicode/utf8"
)

// linesEqual compares two logical lines under the engine's case- and
// whitespace-sensitivity flags.
func linesEqual(a, b string, opts Options) bool {
	if !opts.ICase && !opts.IWhite {
		return a == b
	}
	if opts.IWhite {
		return equalIgnoringWhitespace(a, b, opts.ICase)
	}
	// ICase only.
	return equalFold(a, b)
}

func equalFold(a, b string) bool {
	for {
		if a == "" || b == "" {
			return a == b
		}
		ra, sizeA := utf8.DecodeRuneInString(a)
		rb, sizeB := utf8.DecodeRuneInString(b)
		if foldRune(ra) != foldRune(rb) {
			return false
		}
		a = a[sizeA:]
		b = b[sizeB:]
	}
}

func foldRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r - 'A' + 'a'
	}
	if r < utf8.RuneSelf {
		return r
	}
	return unicode.ToLower(r)
}

// equalIgnoringWhitespace walks both strings simultaneously. Whenever both
// cursors sit on whitespace, it skips the maximal whitespace run on each
// side (collapsing any non-empty run to one logical separator) before
// resuming code-point comparison. Trailing whitespace on both ends is
// ignored because a whitespace run that reaches the end of either string is
// simply skipped like any other run.
func equalIgnoringWhitespace(a, b string, icase bool) bool {
	ai, bi := 0, 0
	for ai < len(a) && bi < len(b) {
		ra, sizeA := utf8.DecodeRuneInString(a[ai:])
		rb, sizeB := utf8.DecodeRuneInString(b[bi:])

		if isSpaceByte(a[ai]) && isSpaceByte(b[bi]) {
			ai = skipSpace(a, ai)
			bi = skipSpace(b, bi)
			continue
		}
		if isSpaceByte(a[ai]) || isSpaceByte(b[bi]) {
			// One side has whitespace where the other has content: only
			// acceptable if the whitespace run extends to end of string
			// (trailing whitespace is ignored on both ends).
			if isSpaceByte(a[ai]) {
				rest := skipSpace(a, ai)
				if rest == len(a) {
					ai = rest
					continue
				}
			}
			if isSpaceByte(b[bi]) {
				rest := skipSpace(b, bi)
				if rest == len(b) {
					bi = rest
					continue
				}
			}
			return false
		}

		fa, fb := ra, rb
		if icase {
			fa, fb = foldRune(ra), foldRune(rb)
		}
		if fa != fb {
			return false
		}
		ai += sizeA
		bi += sizeB
	}

	ai = skipSpace(a, ai)
	bi = skipSpace(b, bi)
	return ai == len(a) && bi == len(b)
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpaceByte(s[i]) {
		i++
	}
	return i
}

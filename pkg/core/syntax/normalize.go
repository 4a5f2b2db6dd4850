package syntax

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	prefixRe  = regexp.MustCompile(`(?i)^\s*t\s*\(\s*n\s*\)\s*=\s*`)
	spaceRe   = regexp.MustCompile(`\s+`)
	mulRunRe  = regexp.MustCompile(`\*(?:\s*\*)+`)
	glyphRepl = strings.NewReplacer("×", "*", "·", "*")
)

// Normalize rewrites user shorthand into the canonical form accepted by
// [Tokenize]. It never fails: sequences it does not understand are passed
// through and rejected later by the lexer or parser.
//
// The rewrites, in order:
//
//  1. strip a leading "t(n) =" (any case, any spacing)
//  2. n<digits> becomes n^<digits>
//  3. x between digits, or between a digit and n, becomes *
//  4. × and · become *
//  5. superscript digits and ⁿ become ^ followed by their ASCII form
//  6. a standalone number, a standalone n or ')' directly followed by a
//     letter or '(' gets an explicit *
//  7. whitespace runs collapse to one space, ends are trimmed
//  8. log<digits>( becomes log_<digits>( and ln( becomes log_e(
//  9. runs of * collapse to one
//
// Normalize is idempotent on every string it maps into the grammar.
func Normalize(raw string) string {
	s := prefixRe.ReplaceAllString(raw, "")
	s = caretBeforeDigits(s)
	s = timesSign(s)
	s = glyphRepl.Replace(s)
	s = foldSuperscripts(s)
	s = explicitMul(s)
	s = strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
	s = logShorthand(s)
	s = mulRunRe.ReplaceAllString(s, "*")
	return s
}

// identRune reports whether r continues an identifier, which keeps a
// following n or number from counting as standalone.
func identRune(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isDigitRune(r rune) bool {
	return r >= '0' && r <= '9'
}

// standaloneN reports whether rs[i] is an n that is not the tail of a
// longer identifier.
func standaloneN(rs []rune, i int) bool {
	return rs[i] == 'n' && (i == 0 || !identRune(rs[i-1]))
}

func caretBeforeDigits(s string) string {
	rs := []rune(s)
	var b strings.Builder
	for i, r := range rs {
		b.WriteRune(r)
		if standaloneN(rs, i) && i+1 < len(rs) && isDigitRune(rs[i+1]) {
			b.WriteByte('^')
		}
	}
	return b.String()
}

// timesSign treats an ASCII x as multiplication only when it sits between
// digit and digit, digit and n, or n and digit, spaces allowed.
func timesSign(s string) string {
	rs := []rune(s)
	out := make([]rune, len(rs))
	copy(out, rs)
	for i, r := range rs {
		if r != 'x' {
			continue
		}
		l := i - 1
		for l >= 0 && unicode.IsSpace(rs[l]) {
			l--
		}
		rt := i + 1
		for rt < len(rs) && unicode.IsSpace(rs[rt]) {
			rt++
		}
		if l < 0 || rt >= len(rs) {
			continue
		}
		leftDigit := isDigitRune(rs[l])
		leftN := standaloneN(rs, l)
		rightDigit := isDigitRune(rs[rt])
		rightN := rs[rt] == 'n' && (rt+1 >= len(rs) || !identRune(rs[rt+1]))
		if leftDigit && (rightDigit || rightN) || leftN && rightDigit {
			out[i] = '*'
		}
	}
	return string(out)
}

func isSuperscript(r rune) bool {
	switch r {
	case '⁰', '¹', '²', '³', '⁴', '⁵', '⁶', '⁷', '⁸', '⁹', 'ⁿ':
		return true
	}
	return false
}

// foldSuperscripts also re-applies the n<digits> rewrite, since a folded ⁿ
// can land directly in front of ASCII digits.
func foldSuperscripts(s string) string {
	if !strings.ContainsFunc(s, isSuperscript) {
		return s
	}
	rs := []rune(s)
	var b strings.Builder
	for i := 0; i < len(rs); {
		if !isSuperscript(rs[i]) {
			b.WriteRune(rs[i])
			i++
			continue
		}
		j := i
		for j < len(rs) && isSuperscript(rs[j]) {
			j++
		}
		if !strings.HasSuffix(strings.TrimRightFunc(b.String(), unicode.IsSpace), "^") {
			b.WriteByte('^')
		}
		b.WriteString(norm.NFKC.String(string(rs[i:j])))
		i = j
	}
	return caretBeforeDigits(b.String())
}

func explicitMul(s string) string {
	rs := []rune(s)
	var b strings.Builder
	for i, r := range rs {
		b.WriteRune(r)
		if i+1 >= len(rs) {
			break
		}
		next := rs[i+1]
		if !unicode.IsLetter(next) && next != '(' {
			continue
		}
		if r == ')' || standaloneN(rs, i) || standaloneNumberEnd(rs, i) {
			b.WriteByte('*')
		}
	}
	return b.String()
}

// standaloneNumberEnd reports whether rs[i] is the last rune of a numeric
// literal that does not hang off an identifier (log2, log_10, x1).
func standaloneNumberEnd(rs []rune, i int) bool {
	if !isDigitRune(rs[i]) && rs[i] != '.' {
		return false
	}
	j := i
	for j >= 0 && (isDigitRune(rs[j]) || rs[j] == '.') {
		j--
	}
	return j < 0 || !identRune(rs[j])
}

func logShorthand(s string) string {
	rs := []rune(s)
	var b strings.Builder
	for i := 0; i < len(rs); {
		if !unicode.IsLetter(rs[i]) || (i > 0 && (identRune(rs[i-1]) || isDigitRune(rs[i-1]))) {
			b.WriteRune(rs[i])
			i++
			continue
		}
		j := i
		for j < len(rs) && (unicode.IsLetter(rs[j]) || isDigitRune(rs[j]) || rs[j] == '_') {
			j++
		}
		word := string(rs[i:j])
		if j < len(rs) && rs[j] == '(' {
			switch {
			case word == "ln":
				word = "log_e"
			case len(word) > 3 && strings.HasPrefix(word, "log") && allDigits(word[3:]):
				word = "log_" + word[3:]
			}
		}
		b.WriteString(word)
		i = j
	}
	return b.String()
}

func allDigits(s string) bool {
	for _, r := range s {
		if !isDigitRune(r) {
			return false
		}
	}
	return s != ""
}

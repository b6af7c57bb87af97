// Package token implements the closed vocabulary of character-class and
// literal matchers used to anchor positions within input strings (spec
// section 4.1). Every Token, applied to a string, produces a sequence of
// non-overlapping, maximal, left-to-right matches in 1-based inclusive
// StringIndex coordinates: index 1 sits before the first byte, len(s)+1
// sits after the last.
package token

import "fmt"

// Kind is the tag of the closed Token union. Its declaration order is the
// fixed enum-discriminant order used to break ties when ranking candidates
// (spec section 9, "Iteration determinism").
type Kind int

const (
	ProperCase Kind = iota
	NotProperCase
	Caps
	NotCaps
	Lowercase
	NotLowercase
	Digits
	NotDigits
	Alphabets
	NotAlphabets
	Alphanumeric
	NotAlphanumeric
	Whitespace
	NotWhitespace
	Start
	End
	Literal
)

func (k Kind) String() string {
	switch k {
	case ProperCase:
		return "ProperCase"
	case NotProperCase:
		return "NotProperCase"
	case Caps:
		return "Caps"
	case NotCaps:
		return "NotCaps"
	case Lowercase:
		return "Lowercase"
	case NotLowercase:
		return "NotLowercase"
	case Digits:
		return "Digits"
	case NotDigits:
		return "NotDigits"
	case Alphabets:
		return "Alphabets"
	case NotAlphabets:
		return "NotAlphabets"
	case Alphanumeric:
		return "Alphanumeric"
	case NotAlphanumeric:
		return "NotAlphanumeric"
	case Whitespace:
		return "Whitespace"
	case NotWhitespace:
		return "NotWhitespace"
	case Start:
		return "Start"
	case End:
		return "End"
	case Literal:
		return "Literal"
	default:
		return "Unknown"
	}
}

// Token is a single element of the closed token vocabulary. Literal is only
// meaningful when Kind == Literal; every other Kind ignores it. Token is a
// plain comparable value so it can be used directly as (part of) a map key,
// which is how the IDG tags edges with the (Token, Occurrence) pairs that
// witness them.
type Token struct {
	Kind    Kind
	Literal string
}

func (t Token) String() string {
	if t.Kind == Literal {
		return fmt.Sprintf("Literal(%q)", t.Literal)
	}
	return t.Kind.String()
}

// NewLiteral returns the Literal token matching the exact string s.
func NewLiteral(s string) Token {
	return Token{Kind: Literal, Literal: s}
}

// Match is one match of a Token against a string, given in 1-based
// inclusive StringIndex coordinates: the matched substring is
// s[Left-1 : Right-1].
type Match struct {
	Left, Right int
}

// Occurrence is a signed, 1-based, nonzero index into a sequence of
// matches. Positive k selects the k-th match from the left; negative k
// selects the |k|-th match from the right.
type Occurrence int

// Resolve returns the match selected by occ out of matches, following the
// signed-occurrence convention. ok is false if occ is zero or out of range.
func Resolve(matches []Match, occ Occurrence) (Match, bool) {
	n := len(matches)
	if occ == 0 || n == 0 {
		return Match{}, false
	}
	if occ > 0 {
		idx := int(occ) - 1
		if idx >= n {
			return Match{}, false
		}
		return matches[idx], true
	}
	idx := n + int(occ)
	if idx < 0 {
		return Match{}, false
	}
	return matches[idx], true
}

// Count returns the number of matches, used by callers that need to map a
// positive occurrence to its mirrored negative one (spec section 4.2: every
// match is addressable both as +k and as -(count-k+1)).
func Count(matches []Match) int {
	return len(matches)
}

// Mirror returns the negative occurrence equivalent to the positive
// occurrence occ among count total matches.
func Mirror(occ Occurrence, count int) Occurrence {
	return -(Occurrence(count) - occ + 1)
}

// Classifier is a predicate over a single byte, used to define the
// character-class tokens. Classification is byte-level (ASCII): every
// concrete scenario in spec section 8 operates on ASCII input.
type Classifier func(b byte) bool

func isUpper(b byte) bool        { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool        { return b >= 'a' && b <= 'z' }
func isDigit(b byte) bool        { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool        { return isUpper(b) || isLower(b) }
func isAlphanumeric(b byte) bool { return isAlpha(b) || isDigit(b) }
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func not(c Classifier) Classifier {
	return func(b byte) bool { return !c(b) }
}

func classifierFor(k Kind) (Classifier, bool) {
	switch k {
	case Caps:
		return isUpper, true
	case NotCaps:
		return not(isUpper), true
	case Lowercase:
		return isLower, true
	case NotLowercase:
		return not(isLower), true
	case Digits:
		return isDigit, true
	case NotDigits:
		return not(isDigit), true
	case Alphabets:
		return isAlpha, true
	case NotAlphabets:
		return not(isAlpha), true
	case Alphanumeric:
		return isAlphanumeric, true
	case NotAlphanumeric:
		return not(isAlphanumeric), true
	case Whitespace:
		return isSpace, true
	case NotWhitespace:
		return not(isSpace), true
	}
	return nil, false
}

// properCaseRuns returns every match of a single word beginning with a
// capital letter followed by one or more lowercase letters (the
// "ProperCase" character class is a structural class, not a per-byte one).
func properCaseRuns(s string) []Match {
	var matches []Match
	i := 0
	for i < len(s) {
		if isUpper(s[i]) && i+1 < len(s) && isLower(s[i+1]) {
			start := i
			i++
			for i < len(s) && isLower(s[i]) {
				i++
			}
			matches = append(matches, Match{Left: start + 1, Right: i + 1})
			continue
		}
		i++
	}
	return matches
}

// notProperCaseRuns returns the maximal runs of bytes NOT covered by any
// ProperCase match, mirroring how the negative classes complement their
// positive counterpart over the whole string.
func notProperCaseRuns(s string) []Match {
	covered := make([]bool, len(s))
	for _, m := range properCaseRuns(s) {
		for i := m.Left - 1; i < m.Right-1; i++ {
			covered[i] = true
		}
	}
	return runsWhere(len(s), func(i int) bool { return !covered[i] })
}

func runsWhere(n int, pred func(i int) bool) []Match {
	var matches []Match
	i := 0
	for i < n {
		if pred(i) {
			start := i
			for i < n && pred(i) {
				i++
			}
			matches = append(matches, Match{Left: start + 1, Right: i + 1})
			continue
		}
		i++
	}
	return matches
}

// classRuns returns the maximal runs of bytes matching classifier c.
func classRuns(s string, c Classifier) []Match {
	return runsWhere(len(s), func(i int) bool { return c(s[i]) })
}

// literalMatches returns every non-overlapping, greedy left-to-right
// occurrence of lit in s.
func literalMatches(s, lit string) []Match {
	if lit == "" {
		return nil
	}
	var matches []Match
	offset := 0
	for offset <= len(s)-len(lit) {
		idx := indexFrom(s, lit, offset)
		if idx < 0 {
			break
		}
		matches = append(matches, Match{Left: idx + 1, Right: idx + len(lit) + 1})
		offset = idx + len(lit)
	}
	return matches
}

func indexFrom(s, sub string, from int) int {
	if from > len(s) {
		return -1
	}
	rel := indexOf(s[from:], sub)
	if rel < 0 {
		return -1
	}
	return from + rel
}

func indexOf(s, sub string) int {
	n, m := len(s), len(sub)
	if m == 0 {
		return 0
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == sub {
			return i
		}
	}
	return -1
}

// Matches returns all matches of t against s, in 1-based inclusive
// StringIndex coordinates, left-to-right, non-overlapping, maximal.
func Matches(t Token, s string) []Match {
	switch t.Kind {
	case Start:
		return []Match{{Left: 1, Right: 1}}
	case End:
		return []Match{{Left: len(s) + 1, Right: len(s) + 1}}
	case Literal:
		return literalMatches(s, t.Literal)
	case ProperCase:
		return properCaseRuns(s)
	case NotProperCase:
		return notProperCaseRuns(s)
	}
	if c, ok := classifierFor(t.Kind); ok {
		return classRuns(s, c)
	}
	return nil
}

// Vocabulary returns the fixed set of character-class tokens (everything
// except Literal, which is generated per-occurrence rather than carried as
// a constant member of the vocabulary) in their canonical order.
func Vocabulary() []Token {
	kinds := []Kind{
		ProperCase, NotProperCase, Caps, NotCaps, Lowercase, NotLowercase,
		Digits, NotDigits, Alphabets, NotAlphabets, Alphanumeric,
		NotAlphanumeric, Whitespace, NotWhitespace, Start, End,
	}
	toks := make([]Token, len(kinds))
	for i, k := range kinds {
		toks[i] = Token{Kind: k}
	}
	return toks
}

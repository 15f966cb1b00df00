// Package filter decides whether a token that the composer could not fully
// turn into syllables should still be shown as Hangul.
package filter

import (
	"strings"

	"github.com/samber/lo"

	"hanswap/internal/hangul"
)

// DefaultDenyList holds words that are never accepted when the converted
// token still shows loose jamo.
var DefaultDenyList = []string{"to", "spawn"}

type Filter struct {
	deny          []string
	checkOriginal bool
}

type Option func(*Filter)

// WithDenyList replaces the deny list. Matching is a case-sensitive
// substring test.
func WithDenyList(words []string) Option {
	return func(f *Filter) {
		f.deny = lo.Filter(words, func(w string, _ int) bool { return w != "" })
	}
}

// WithOriginalCheck also matches the deny list against the token as typed.
func WithOriginalCheck(enabled bool) Option {
	return func(f *Filter) { f.checkOriginal = enabled }
}

func New(opts ...Option) *Filter {
	f := &Filter{deny: append([]string(nil), DefaultDenyList...)}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// DenyList returns a copy of the configured deny list.
func (f *Filter) DenyList() []string {
	return append([]string(nil), f.deny...)
}

// Accept reports whether converted should replace original. Fully composed
// output is always accepted; output with loose jamo goes through the
// ordered rules of Residual.
func (f *Filter) Accept(original, converted string) bool {
	if !hangul.ContainsJamo(converted) {
		return true
	}
	if f.checkOriginal && f.denied(original) {
		return false
	}
	return f.Residual(converted)
}

// Residual applies the rules for output that still holds loose jamo, first
// match wins: a deny-listed substring rejects, a single repeated character
// accepts, a repeated two-character pattern accepts, anything else rejects.
func (f *Filter) Residual(s string) bool {
	if f.denied(s) {
		return false
	}
	runes := []rune(s)
	if repeatsSingle(runes) {
		return true
	}
	return repeatsPair(runes)
}

func (f *Filter) denied(s string) bool {
	return lo.SomeBy(f.deny, func(w string) bool { return strings.Contains(s, w) })
}

// repeatsSingle matches runs such as ㅋㅋㅋㅋ.
func repeatsSingle(runes []rune) bool {
	if len(runes) == 0 {
		return false
	}
	return lo.EveryBy(runes, func(r rune) bool { return r == runes[0] })
}

// repeatsPair matches alternations such as ㅇㅅㅇㅅㅇ. An odd tail must
// equal the first rune. Fewer than two runes never match.
func repeatsPair(runes []rune) bool {
	if len(runes) < 2 {
		return false
	}
	half := len(runes) / 2
	pairs := lo.Chunk(runes[:half*2], 2)
	first := pairs[0]
	same := lo.EveryBy(pairs, func(p []rune) bool { return p[0] == first[0] && p[1] == first[1] })
	if !same {
		return false
	}
	if len(runes)%2 == 1 {
		return runes[len(runes)-1] == runes[0]
	}
	return true
}

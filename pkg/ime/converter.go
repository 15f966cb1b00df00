// Package ime converts text typed on a QWERTY keyboard into the Hangul the
// same keys produce on the Korean two-set (dubeolsik) layout.
package ime

import (
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/width"

	"hanswap/internal/filter"
	"hanswap/internal/hangul"
)

// Converter is immutable once built and safe for concurrent use.
type Converter struct {
	filter     *filter.Filter
	filterOpts []filter.Option
	filtering  bool
	foldWidth  bool
}

type Option func(*Converter)

// WithDenyList replaces the words that block a partially composed token.
func WithDenyList(words []string) Option {
	return func(c *Converter) {
		c.filterOpts = append(c.filterOpts, filter.WithDenyList(words))
	}
}

// WithOriginalCheck also matches the deny list against the typed token.
func WithOriginalCheck(enabled bool) Option {
	return func(c *Converter) {
		c.filterOpts = append(c.filterOpts, filter.WithOriginalCheck(enabled))
	}
}

// WithFoldWidth maps full-width Latin letters to ASCII before conversion.
func WithFoldWidth(enabled bool) Option {
	return func(c *Converter) { c.foldWidth = enabled }
}

// WithFilter toggles the word filter. When disabled every token is
// replaced by the composer output.
func WithFilter(enabled bool) Option {
	return func(c *Converter) { c.filtering = enabled }
}

func New(opts ...Option) *Converter {
	c := &Converter{filtering: true}
	for _, opt := range opts {
		opt(c)
	}
	c.filter = filter.New(c.filterOpts...)
	return c
}

var defaultConverter = New()

// Convert runs the composer over a single token.
func Convert(token string) string {
	return defaultConverter.Convert(token)
}

// ConvertText converts space-separated text with the default settings.
func ConvertText(text string) string {
	return defaultConverter.ConvertText(text)
}

func (c *Converter) Convert(token string) string {
	if c.foldWidth {
		token = width.Narrow.String(token)
	}
	return hangul.Convert(token)
}

// ConvertWord converts one token and keeps it only if the filter accepts
// the result; otherwise the token is returned as typed.
func (c *Converter) ConvertWord(token string) string {
	converted := c.Convert(token)
	if !c.filtering || c.filter.Accept(token, converted) {
		return converted
	}
	return token
}

// ConvertText splits text on single spaces, converts each token and joins
// them back. Every token, including the last, is followed by one space.
// Empty tokens between spaces are kept; empty tokens at the end are
// dropped unless the text has no space at all.
func (c *Converter) ConvertText(text string) string {
	tokens := splitTokens(text)
	var b strings.Builder
	b.Grow(len(text)*3 + len(tokens))
	for _, token := range tokens {
		b.WriteString(c.ConvertWord(token))
		b.WriteByte(' ')
	}
	return b.String()
}

func splitTokens(text string) []string {
	tokens := strings.Split(text, " ")
	if len(tokens) == 1 {
		return tokens
	}
	return lo.DropRightWhile(tokens, func(t string) bool { return t == "" })
}

// DenyList reports the deny list in effect.
func (c *Converter) DenyList() []string {
	return c.filter.DenyList()
}

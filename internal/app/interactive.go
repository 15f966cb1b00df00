package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/eiannone/keyboard"

	"hanswap/internal/hangul"
	"hanswap/pkg/ime"
)

// KeySource yields one key press at a time.
type KeySource interface {
	GetKey() (rune, keyboard.Key, error)
}

// TerminalKeys reads keys from the controlling terminal in raw mode.
type TerminalKeys struct{}

func OpenTerminal() (*TerminalKeys, error) {
	if err := keyboard.Open(); err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	return &TerminalKeys{}, nil
}

func (*TerminalKeys) GetKey() (rune, keyboard.Key, error) {
	return keyboard.GetKey()
}

func (*TerminalKeys) Close() {
	keyboard.Close()
}

// Session is a one-line editor that shows the Hangul for what has been
// typed so far and prints the converted line on Enter.
type Session struct {
	keys KeySource
	out  io.Writer
	conv *ime.Converter
	comp *hangul.Composer
	line []rune
}

func NewSession(keys KeySource, conv *ime.Converter, out io.Writer) *Session {
	return &Session{keys: keys, out: out, conv: conv, comp: hangul.NewComposer()}
}

// Run handles keys until Esc, Ctrl+C, ctx cancellation or a read error.
// The terminal is in raw mode, so lines end in \r\n.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		char, key, err := s.keys.GetKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}

		switch key {
		case keyboard.KeyEsc, keyboard.KeyCtrlC, keyboard.KeyCtrlD:
			if len(s.line) > 0 {
				s.commit()
			}
			return nil
		case keyboard.KeyEnter:
			s.commit()
			continue
		case keyboard.KeySpace:
			s.line = append(s.line, ' ')
		case keyboard.KeyBackspace, keyboard.KeyBackspace2:
			if len(s.line) > 0 {
				s.line = s.line[:len(s.line)-1]
			}
		default:
			if key != 0 || char == 0 {
				continue
			}
			s.line = append(s.line, char)
		}
		if err := s.redraw(); err != nil {
			return err
		}
	}
}

// Preview renders finished words through the converter and the word being
// typed through the composer, so unfinished syllables show as they grow.
func (s *Session) Preview() string {
	text := string(s.line)
	cut := strings.LastIndexByte(text, ' ') + 1

	var b strings.Builder
	if cut > 0 {
		for _, word := range strings.Split(text[:cut-1], " ") {
			b.WriteString(s.conv.ConvertWord(word))
			b.WriteByte(' ')
		}
	}

	s.comp.Reset()
	for _, r := range text[cut:] {
		s.comp.Type(r)
	}
	b.WriteString(s.comp.Text())
	return b.String()
}

func (s *Session) redraw() error {
	_, err := fmt.Fprintf(s.out, "\r\033[K%s", s.Preview())
	return err
}

func (s *Session) commit() {
	fmt.Fprintf(s.out, "\r\033[K%s\r\n", s.conv.ConvertText(string(s.line)))
	s.line = s.line[:0]
}

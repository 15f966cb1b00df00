package types

import (
	"fmt"
	"strings"
)

// RunMode selects what the hanswap binary does after parsing flags.
type RunMode int

const (
	ModeConvert RunMode = iota
	ModeServe
	ModeInteractive
	ModeRemote
)

func (m RunMode) String() string {
	switch m {
	case ModeConvert:
		return "convert"
	case ModeServe:
		return "serve"
	case ModeInteractive:
		return "interactive"
	case ModeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// ParseRunMode accepts the names produced by String.
func ParseRunMode(s string) (RunMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "convert":
		return ModeConvert, nil
	case "serve", "server":
		return ModeServe, nil
	case "interactive":
		return ModeInteractive, nil
	case "remote":
		return ModeRemote, nil
	default:
		return ModeConvert, fmt.Errorf("unknown mode %q", s)
	}
}

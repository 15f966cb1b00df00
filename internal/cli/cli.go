package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/samber/lo"

	"hanswap/internal/types"
)

// EnvPrefix is prepended to every flag name to form its environment
// variable, so --log-level is also read from HANSWAP_LOG_LEVEL.
const EnvPrefix = "HANSWAP"

// ErrHelp is returned by Parse when -h or --help was given.
var ErrHelp = ff.ErrHelp

type Options struct {
	Mode          types.RunMode
	ConfigPath    string
	SocketPath    string
	LogLevel      string
	LogFormat     string
	Deny          []string
	NoFilter      bool
	FoldWidth     bool
	CheckOriginal bool
	Watch         bool
	Args          []string
}

type flagValues struct {
	config        *string
	socket        *string
	logLevel      *string
	logFormat     *string
	deny          *string
	serve         *bool
	interactive   *bool
	remote        *bool
	noFilter      *bool
	foldWidth     *bool
	checkOriginal *bool
	watch         *bool
}

func newFlagSet() (*ff.FlagSet, *flagValues) {
	fs := ff.NewFlagSet("hanswap")
	v := &flagValues{
		config:        fs.String('c', "config", "", "path to an INI or TOML config file"),
		socket:        fs.StringLong("socket", "", "unix socket for serve and remote modes"),
		logLevel:      fs.StringLong("log-level", "", "debug, info, warn or error"),
		logFormat:     fs.StringLong("log-format", "", "pretty or json"),
		deny:          fs.StringLong("deny", "", "comma-separated words that block partial conversions"),
		serve:         fs.Bool('s', "serve", "serve conversions on a unix socket"),
		interactive:   fs.Bool('i', "interactive", "convert keystrokes as they are typed"),
		remote:        fs.Bool('r', "remote", "ask a running server to convert"),
		noFilter:      fs.BoolLong("no-filter", "convert every token regardless of the word filter"),
		foldWidth:     fs.BoolLong("fold-width", "map full-width Latin letters to ASCII first"),
		checkOriginal: fs.BoolLong("check-original", "also match the deny list against the typed token"),
		watch:         fs.BoolLong("watch", "reload the config file when it changes (serve mode)"),
	}
	return fs, v
}

// Parse reads flags from args (without the program name) and from
// HANSWAP_* environment variables. Remaining arguments become Args.
func Parse(args []string) (Options, error) {
	fs, v := newFlagSet()
	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix(EnvPrefix)); err != nil {
		return Options{}, err
	}

	modes := lo.Filter([]types.RunMode{types.ModeServe, types.ModeInteractive, types.ModeRemote},
		func(m types.RunMode, _ int) bool {
			switch m {
			case types.ModeServe:
				return *v.serve
			case types.ModeInteractive:
				return *v.interactive
			default:
				return *v.remote
			}
		})
	if len(modes) > 1 {
		return Options{}, fmt.Errorf("conflicting modes: %s", strings.Join(lo.Map(modes, func(m types.RunMode, _ int) string { return m.String() }), ", "))
	}

	opts := Options{
		Mode:          types.ModeConvert,
		ConfigPath:    *v.config,
		SocketPath:    *v.socket,
		LogLevel:      *v.logLevel,
		LogFormat:     *v.logFormat,
		Deny:          splitList(*v.deny),
		NoFilter:      *v.noFilter,
		FoldWidth:     *v.foldWidth,
		CheckOriginal: *v.checkOriginal,
		Watch:         *v.watch,
		Args:          fs.GetArgs(),
	}
	if len(modes) == 1 {
		opts.Mode = modes[0]
	}
	if opts.Watch && opts.Mode != types.ModeServe {
		return Options{}, errors.New("--watch requires --serve")
	}
	if opts.Mode == types.ModeInteractive && len(opts.Args) > 0 {
		return Options{}, errors.New("--interactive takes no arguments")
	}
	return opts, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := lo.Map(strings.Split(value, ","), func(p string, _ int) string { return strings.TrimSpace(p) })
	return lo.Filter(parts, func(p string, _ int) bool { return p != "" })
}

func Usage() string {
	fs, _ := newFlagSet()
	return ffhelp.Flags(fs, "hanswap [flags] [text ...]\n\nConverts text typed with the keyboard in QWERTY mode into the Hangul the same keys spell on the two-set layout.\nWithout text arguments, lines are read from standard input.").String()
}

package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gerunddev/vimwiki/internal/config"
	"github.com/gerunddev/vimwiki/internal/logger"
	"github.com/gerunddev/vimwiki/styles"
	"github.com/mattn/go-isatty"
)

// options holds the flags shared by every command and the remaining
// positional arguments
type options struct {
	configPath string
	flags      map[string]bool
	values     map[string]string
	args       []string
}

// parseArgs splits args into known boolean flags, flags taking a value and
// positional arguments. A lone "-" is positional and means stdin.
func parseArgs(args []string, boolFlags []string, valueFlags []string) (*options, error) {
	o := &options{flags: map[string]bool{}, values: map[string]string{}}
	isBool := map[string]bool{}
	for _, f := range boolFlags {
		isBool[f] = true
	}
	takesValue := map[string]bool{"--config": true}
	for _, f := range valueFlags {
		takesValue[f] = true
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case isBool[arg]:
			o.flags[arg] = true
		case takesValue[arg]:
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s needs a value", arg)
			}
			i++
			if arg == "--config" {
				o.configPath = args[i]
			} else {
				o.values[arg] = args[i]
			}
		case len(arg) > 1 && arg[0] == '-':
			return nil, fmt.Errorf("unknown flag: %s", arg)
		default:
			o.args = append(o.args, arg)
		}
	}
	return o, nil
}

// loadConfig reads the file named by --config, or the default location
func (o *options) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFile(o.configPath)
	}
	return config.Load()
}

// newLogger logs to the configured file, or nowhere when it cannot be
// opened
func newLogger(cfg *config.Config) (*logger.Logger, func()) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogFile == "" {
		return logger.Discard(), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return logger.Discard(), func() {}
	}
	l, cleanup, err := logger.NewFileLogger(cfg.LogFile, level)
	if err != nil {
		return logger.Discard(), func() {}
	}
	return l, cleanup
}

// isTerminal reports whether f is attached to a terminal
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainOutputUnlessTerminal drops colors when stdout is not a terminal
func PlainOutputUnlessTerminal() {
	if !isTerminal(os.Stdout) {
		styles.Plain()
	}
}

// readSource reads a page, or stdin for "-"
func readSource(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// fail prints err and exits
func fail(err error) {
	fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+err.Error()))
	os.Exit(1)
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/rless/internal/app"
	"github.com/kk-code-lab/rless/internal/config"
	fsutil "github.com/kk-code-lab/rless/internal/fs"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func printHelp(w io.Writer) {
	fmt.Fprint(w, `rless - Terminal pager

USAGE:
    rless [OPTIONS] [FILE]
    command | rless [OPTIONS]

OPTIONS:
    -h, --help            Show this help message and exit
    -v, --version         Print the version and exit
        --dump-config     Print the effective configuration as TOML and exit

Configuration is read from $RLESS_CONFIG or the user config directory (rless/config.toml).
Press h inside the pager for key bindings.
`)
}

type options struct {
	path       string
	help       bool
	version    bool
	dumpConfig bool
}

func parseArgs(args []string) (options, error) {
	var opts options
	for i, arg := range args {
		switch {
		case arg == "-h" || arg == "--help":
			opts.help = true
		case arg == "-v" || arg == "--version":
			opts.version = true
		case arg == "--dump-config":
			opts.dumpConfig = true
		case arg == "--":
			rest := args[i+1:]
			if len(rest) > 1 || (len(rest) == 1 && opts.path != "") {
				return opts, errors.New("only one file can be paged at a time")
			}
			if len(rest) == 1 {
				opts.path = rest[0]
			}
			return opts, nil
		case strings.HasPrefix(arg, "-") && arg != "-":
			return opts, fmt.Errorf("unknown option %q", arg)
		default:
			if opts.path != "" {
				return opts, errors.New("only one file can be paged at a time")
			}
			opts.path = arg
		}
	}
	return opts, nil
}

func openInput(path string) (fsutil.Source, error) {
	if path == "" || path == "-" {
		return fsutil.OpenStdin(os.Stdin)
	}
	return fsutil.Open(path)
}

func main() {
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "rless: %v\n", err)
		printHelp(os.Stderr)
		os.Exit(2)
	}
	if opts.help {
		printHelp(os.Stdout)
		os.Exit(0)
	}
	if opts.version {
		fmt.Printf("rless %s\n", version)
		os.Exit(0)
	}

	// Without a config directory the defaults apply.
	cfgPath, _ := config.Path()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if opts.dumpConfig {
		if err := cfg.Encode(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	src, err := openInput(opts.path)
	if errors.Is(err, fsutil.ErrNoInput) {
		printHelp(os.Stderr)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "rless: %v\n", err)
		os.Exit(1)
	}

	editPath := opts.path
	if editPath == "-" {
		editPath = ""
	}
	app, err := apppkg.NewApplication(src, editPath, cfg)
	if err != nil {
		_ = src.Close()
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
}

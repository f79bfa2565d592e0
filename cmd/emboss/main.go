package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/ironsheep/emboss-gcode/internal/job"
	"github.com/ironsheep/emboss-gcode/internal/server"
	"github.com/ironsheep/emboss-gcode/internal/toolpath"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func usage(w io.Writer, global *GlobalCommand) {
	fmt.Fprintln(w, "emboss - emboss artwork onto a printed solid of revolution")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  emboss [options] cylinder [-r radius]")
	fmt.Fprintln(w, "  emboss [options] cone [--rtop radius] [--rbot radius]")
	fmt.Fprintln(w, "  emboss [options] globe [-r radius]")
	fmt.Fprintln(w, "  emboss [-c config] serve")
	fmt.Fprintln(w, "  emboss version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, global.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  EMBOSS_LOG_LEVEL=debug    Enable debug logging")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "serve runs an MCP server over stdin/stdout; -c sets its default profile.")
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "emboss %s\n", Version)
	fmt.Fprintf(w, "  Build time: %s\n", BuildTime)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
}

// newLogger logs to stderr; stdout carries G-code or MCP traffic.
func newLogger(w io.Writer, verbose int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose >= 2:
		level = slog.LevelDebug
	case verbose == 1:
		level = slog.LevelInfo
	}
	if os.Getenv("EMBOSS_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	global := NewGlobalCommand()
	global.SetOutput(stderr)
	global.Usage = func() { usage(stderr, global) }

	if err := global.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "emboss: %v\n", err)
		return 2
	}
	if global.Version {
		printVersion(stdout)
		return 0
	}

	log := newLogger(stderr, global.Verbose)
	toolpath.SetLogger(log)
	defer toolpath.SetLogger(nil)

	rest := global.Args()
	if len(rest) == 0 {
		usage(stderr, global)
		return 2
	}

	name := rest[0]
	switch name {
	case "version":
		printVersion(stdout)
		return 0
	case "help":
		usage(stdout, global)
		return 0
	case "serve":
		log.Info("emboss MCP server", "version", Version, "built", BuildTime, "commit", GitCommit)
		if err := server.New(global.Config, Version).Serve(stdin, stdout); err != nil {
			fmt.Fprintf(stderr, "emboss: %v\n", err)
			return 1
		}
		return 0
	}

	cmd, ok := shapeCommands()[name]
	if !ok {
		fmt.Fprintf(stderr, "emboss: unknown command %q\n", name)
		usage(stderr, global)
		return 2
	}
	if err := cmd.Parse(rest[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "emboss %s: %v\n", name, err)
		return 2
	}

	if global.Config == "" {
		fmt.Fprintln(stderr, "emboss: a machine profile is required (-c)")
		return 2
	}

	opts, err := global.Options(cmd.Shape())
	if err != nil {
		fmt.Fprintf(stderr, "emboss: %v\n", err)
		return 2
	}

	_, lines, err := job.Run(ctx, opts, nil, global.Output, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "emboss: %v\n", err)
		return 1
	}
	log.Info("program written", "shape", name, "lines", lines, "output", outputName(global.Output))
	return 0
}

func outputName(path string) string {
	if path == "" || path == "-" {
		return "stdout"
	}
	return path
}

// Command pngme hides, reveals and removes messages in PNG files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

const usage = `Usage: pngme [-log-level level] <command> [args...]

Commands:
  encode [-o out] [-compress] <file> <type> <message>   Hide a message
  decode <file> <type>                                  Print a hidden message
  remove [-backup suffix] <file> <type>                 Delete a message chunk
  print [-format text|yaml|json] <file>...              List chunks
  version                                               Show version information

Chunk types are 4 ASCII letters; "ruSt" is a good choice for messages.
The log level defaults to $PNGME_LOG_LEVEL, or warn.
`

// usageError marks bad command lines; they exit with status 2.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// app carries the output streams and settings shared by every command.
type app struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	styles styles
	errs   style
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func newApp(stdout, stderr io.Writer, level slog.Level) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
		styles: newStyles(stdout),
		errs:   newErrStyle(stderr),
	}
}

// run executes one command line and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pngme", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	defaultLevel := os.Getenv("PNGME_LOG_LEVEL")
	if defaultLevel == "" {
		defaultLevel = "warn"
	}
	logLevel := fs.String("log-level", defaultLevel, "log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(stderr, "pngme: invalid log level %q\n", *logLevel)
		return 2
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	a := newApp(stdout, stderr, level)

	var err error
	switch cmd, cmdArgs := rest[0], rest[1:]; cmd {
	case "encode":
		err = a.encode(cmdArgs)
	case "decode":
		err = a.decode(cmdArgs)
	case "remove":
		err = a.remove(cmdArgs)
	case "print":
		err = a.print(ctx, cmdArgs)
	case "version":
		err = a.version()
	case "help":
		fmt.Fprint(stdout, usage)
	default:
		err = usagef("unknown command %q", cmd)
	}

	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}

	fmt.Fprintln(stderr, a.errs.render("pngme: "+err.Error()))

	var ue *usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

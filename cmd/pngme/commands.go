package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/simonhull/pngme"
)

// parseFlags parses a subcommand's flags and checks its positional count.
func (a *app) parseFlags(fs *flag.FlagSet, args []string, minArgs, maxArgs int, synopsis string) ([]string, error) {
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: pngme %s\n", synopsis)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, usagef("%s: %v", fs.Name(), err)
	}

	rest := fs.Args()
	if len(rest) < minArgs || (maxArgs >= 0 && len(rest) > maxArgs) {
		return nil, usagef("usage: pngme %s", synopsis)
	}
	return rest, nil
}

func (a *app) open(path string) (*pngme.File, error) {
	return pngme.Open(path, pngme.WithLogger(a.logger))
}

func (a *app) encode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	output := fs.String("o", "", "write the result to this path instead of the input file")
	compress := fs.Bool("compress", false, "store the message as an LZ4 frame")

	rest, err := a.parseFlags(fs, args, 3, 3, "encode [-o out] [-compress] <file> <type> <message>")
	if err != nil {
		return err
	}
	path, tag, msg := rest[0], rest[1], rest[2]

	f, err := a.open(path)
	if err != nil {
		return err
	}
	for _, w := range f.Warnings {
		a.logger.Warn("input has structural issues", "path", path, "warning", w.String())
	}

	var opts []pngme.EncodeOption
	if *compress {
		opts = append(opts, pngme.WithCompression())
	}
	if err := f.Encode(tag, msg, opts...); err != nil {
		return err
	}

	dst := path
	if *output != "" {
		dst = *output
	}
	if err := f.SaveAs(dst); err != nil {
		return fmt.Errorf("save %s: %w", dst, err)
	}

	fmt.Fprintf(a.stdout, "Encoded %d byte message into %s chunk of %s\n", len(msg), tag, dst)
	return nil
}

func (a *app) decode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)

	rest, err := a.parseFlags(fs, args, 2, 2, "decode <file> <type>")
	if err != nil {
		return err
	}
	path, tag := rest[0], rest[1]

	f, err := a.open(path)
	if err != nil {
		return err
	}

	msg, err := f.Decode(tag)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, msg)
	return nil
}

func (a *app) remove(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	backup := fs.String("backup", "", "keep the original file with this suffix (e.g. .bak)")

	rest, err := a.parseFlags(fs, args, 2, 2, "remove [-backup suffix] <file> <type>")
	if err != nil {
		return err
	}
	path, tag := rest[0], rest[1]

	f, err := a.open(path)
	if err != nil {
		return err
	}

	removed, err := f.Remove(tag)
	if err != nil {
		return err
	}

	var opts []pngme.SaveOption
	if *backup != "" {
		opts = append(opts, pngme.WithBackup(*backup))
	}
	if err := f.Save(opts...); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	fmt.Fprintf(a.stdout, "Removed %s chunk (%d bytes) from %s\n", removed.Type(), removed.Length(), path)
	return nil
}

// fileReport is the structured form of one file in print output.
type fileReport struct {
	Path     string            `json:"path" yaml:"path"`
	Size     int64             `json:"size" yaml:"size"`
	Warnings []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Chunks   []pngme.ChunkInfo `json:"chunks" yaml:"chunks"`
}

func (a *app) print(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("print", flag.ContinueOnError)
	format := fs.String("format", "text", "output format: text, yaml or json")

	paths, err := a.parseFlags(fs, args, 1, -1, "print [-format text|yaml|json] <file>...")
	if err != nil {
		return err
	}
	switch *format {
	case "text", "yaml", "json":
	default:
		return usagef("print: unknown format %q", *format)
	}

	files, err := pngme.OpenMany(ctx, paths, pngme.WithLogger(a.logger))
	if err != nil {
		return err
	}

	reports := make([]fileReport, 0, len(files))
	for _, f := range files {
		r := fileReport{Path: f.Path, Size: f.Size, Chunks: f.Describe()}
		for _, w := range f.Warnings {
			r.Warnings = append(r.Warnings, w.String())
		}
		reports = append(reports, r)
	}

	switch *format {
	case "yaml":
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	default:
		for i, r := range reports {
			if i > 0 {
				fmt.Fprintln(a.stdout)
			}
			a.renderReport(r)
		}
		return nil
	}
}

func (a *app) version() error {
	info := pngme.GetVersionInfo()
	fmt.Fprintf(a.stdout, "%s %s\n", a.styles.title.render("pngme"), info.Version)
	fmt.Fprintln(a.stdout, a.styles.dim.render(fmt.Sprintf("commit %s, built %s, %s", info.GitCommit, info.BuildTime, info.GoVersion)))
	return nil
}

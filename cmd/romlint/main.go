package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jacoelho/romdict"
	metaerrors "github.com/jacoelho/romdict/errors"
	"github.com/jacoelho/romdict/internal/dump"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("romlint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dumpYAML := fs.Bool("dump", false, "print the finalized dictionary as YAML")
	verbose := fs.Bool("v", false, "log build diagnostics to stderr")
	cpuProfilePath := fs.String("cpuprofile", "", "write CPU profile to file")
	memProfilePath := fs.String("memprofile", "", "write memory profile to file")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s [options] <definitions.xml>\n\n", os.Args[0]),
			writeln(stderr, "Builds a report object model dictionary and reports definition errors."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		if err := writeln(stderr, "error: exactly one definition file argument is required"); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}
	defsPath := remaining[0]

	prof := profiles{cpuPath: *cpuProfilePath, memPath: *memProfilePath}
	if err := prof.start(); err != nil {
		_ = writef(stderr, "error starting profiles: %v\n", err)
		return 1
	}
	defer func() {
		if err := prof.stop(); err != nil {
			_ = writef(stderr, "error writing profiles: %v\n", err)
		}
	}()

	opts := romdict.NewLoadOptions()
	if *verbose {
		opts = opts.WithLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	dict, err := romdict.LoadFileWithOptions(defsPath, opts)
	if err != nil {
		if defs, ok := metaerrors.AsDefinitions(err); ok {
			for _, d := range defs {
				if writeErr := writeln(stderr, d.Error()); writeErr != nil {
					return 1
				}
			}
			if writeErr := writef(stderr, "%s has %d definition errors\n", defsPath, len(defs)); writeErr != nil {
				return 1
			}
			return 1
		}
		if writeErr := writef(stderr, "error loading definitions: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}

	if *dumpYAML {
		if err := dump.Write(stdout, dict); err != nil {
			_ = writef(stderr, "error writing dump: %v\n", err)
			return 1
		}
		return 0
	}

	c := dict.Counts()
	if err := writef(stdout, "%s ok: %d elements, %d structures, %d choice sets, %d classes\n",
		defsPath, c.Elements, c.Structures, c.ChoiceSets, c.Classes); err != nil {
		return 1
	}
	return 0
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}

// Command gosplice decomposes XML documents into translation artifacts and
// reassembles translated output.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/ZaguanLabs/gosplice"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = gosplice.Version
	commit    = gosplice.GitCommit
	buildDate = gosplice.BuildDate
)

const usageText = `Usage: gosplice [flags] <command> [arguments]

Commands:
  parse <source.xml>             Decompose a source document into artifacts
  integrate <translations.json>  Apply translated entries onto the skeleton
  merge <minimal.xml>            Reassemble a translated minimal document
  validate <source.xml> <target.xml>
                                 Check structural fidelity of a translation
  dummy <segments.json>          Write a marker-prefixed fake translation
  diff <old_segments.json> <new_segments.json>
                                 Compare two segment listings

Flags:
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("gosplice", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}

	// Flags
	configPath := fs.String("config", "", "TOML configuration file")
	sourceLang := fs.String("source-lang", "en-US", "Source language tag")
	targetLang := fs.String("target-lang", "de-DE", "Target language tag")
	sourceDir := fs.String("source-dir", "", "Directory for source documents")
	intermediateDir := fs.String("intermediate-dir", "", "Directory for skeleton, segments and mapping artifacts")
	targetDir := fs.String("target-dir", "", "Directory for integrated output")
	output := fs.String("output", "", "Output file (command-dependent default)")
	langAttrs := fs.Bool("lang-attrs", false, "Stamp xml:lang (and dir) on integrated output")
	showVersion := fs.Bool("version", false, "Show version")
	quiet := fs.Bool("quiet", false, "Suppress log output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", gosplice.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", buildDate)
		}
		return nil
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("a command is required")
	}
	command := fs.Arg(0)
	cmdArgs := fs.Args()[1:]

	cfg := gosplice.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = gosplice.LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	log := newLogger(stderr, *quiet)

	opts := []gosplice.Option{
		gosplice.WithLogger(log),
		gosplice.WithLanguages(*sourceLang, *targetLang),
		gosplice.WithSourceDir(*sourceDir),
		gosplice.WithIntermediateDir(*intermediateDir),
		gosplice.WithTargetDir(*targetDir),
	}
	if *langAttrs {
		opts = append(opts, gosplice.WithLanguageAttributes())
	}
	engine := gosplice.NewEngine(cfg, opts...)

	switch command {
	case "parse":
		return runParse(engine, cmdArgs, stdout)
	case "integrate":
		return runIntegrate(engine, cmdArgs, *output, stdout)
	case "merge":
		return runMerge(engine, cmdArgs, stdout)
	case "validate":
		return runValidate(engine, cmdArgs, stdout)
	case "dummy":
		return runDummy(engine, cmdArgs, *output, stdout)
	case "diff":
		return runDiff(engine, cmdArgs, stdout)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// newLogger builds a console logger when attached to a terminal and a JSON
// logger otherwise.
func newLogger(stderr io.Writer, quiet bool) zerolog.Logger {
	if quiet {
		return zerolog.Nop()
	}

	out := stderr
	if f, ok := stderr.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = zerolog.ConsoleWriter{Out: f}
	}
	return zerolog.New(out).With().Timestamp().Logger()
}

func runParse(engine *gosplice.Engine, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("parse requires exactly one source file")
	}

	res, err := engine.Parse(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Parsed %s\n", filepath.Base(args[0]))
	fmt.Fprintf(stdout, "  Segments:  %d\n", len(res.Segments))
	fmt.Fprintf(stdout, "  Skeleton:  %s\n", res.SkeletonPath)
	fmt.Fprintf(stdout, "  Segments:  %s\n", res.SegmentsPath)
	fmt.Fprintf(stdout, "  Minimal:   %s\n", res.MinimalPath)
	fmt.Fprintf(stdout, "  Mapping:   %s\n", res.MappingPath)
	if _, err := os.Stat(res.DNTPath); err == nil {
		fmt.Fprintf(stdout, "  DNT:       %s\n", res.DNTPath)
	}
	return nil
}

func runIntegrate(engine *gosplice.Engine, args []string, output string, stdout io.Writer) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("integrate requires a translations file and optionally a skeleton")
	}

	skeleton := ""
	if len(args) == 2 {
		skeleton = args[1]
	}

	path, err := engine.Integrate(args[0], skeleton, output)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Integrated document written to %s\n", path)
	return nil
}

func runMerge(engine *gosplice.Engine, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("merge requires exactly one minimal file")
	}

	path, report, err := engine.IntegrateMinimal(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Merged document written to %s\n", path)
	printReport(stdout, report)
	return nil
}

func runValidate(engine *gosplice.Engine, args []string, stdout io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("validate requires a source file and a target file")
	}

	report := engine.Validate(args[0], args[1])
	printReport(stdout, report)
	if !report.Passed {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func runDummy(engine *gosplice.Engine, args []string, output string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("dummy requires exactly one segments file")
	}

	if output == "" {
		name := filepath.Base(args[0])
		if i := strings.Index(name, "."); i >= 0 {
			name = name[:i]
		}
		output = fmt.Sprintf("%s.%s_translated.json", name, engine.TargetLang())
	}

	path, err := engine.DummyTranslation(args[0], output)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Dummy translation written to %s\n", path)
	return nil
}

func runDiff(engine *gosplice.Engine, args []string, stdout io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("diff requires two segments files")
	}

	oldSegs, err := readSegments(args[0], engine.SourceLang())
	if err != nil {
		return err
	}
	newSegs, err := readSegments(args[1], engine.SourceLang())
	if err != nil {
		return err
	}

	diff := gosplice.DiffSegmentsByID(oldSegs, newSegs)
	stats := diff.Stats()

	fmt.Fprintf(stdout, "Diff: %s vs %s\n\n", filepath.Base(args[0]), filepath.Base(args[1]))
	fmt.Fprintf(stdout, "Summary:\n")
	fmt.Fprintf(stdout, "  Unchanged: %d\n", stats.Unchanged)
	fmt.Fprintf(stdout, "  Added:     %d\n", stats.Added)
	fmt.Fprintf(stdout, "  Removed:   %d\n", stats.Removed)
	fmt.Fprintf(stdout, "  Modified:  %d\n", stats.Modified)

	if !diff.HasChanges() {
		fmt.Fprintf(stdout, "\nNo changes detected. All translations are up to date.\n")
		return nil
	}

	needs := diff.NeedsTranslation()
	fmt.Fprintf(stdout, "\nNeeds translation: %d segments\n", len(needs))

	for _, seg := range diff.Added {
		fmt.Fprintf(stdout, "  + %s %q\n", seg.ID, truncate(seg.Source, 50))
	}
	for _, m := range diff.Modified {
		fmt.Fprintf(stdout, "  ~ %s %q -> %q\n", m.New.ID, truncate(m.Old.Source, 30), truncate(m.New.Source, 30))
	}
	for _, seg := range diff.Removed {
		fmt.Fprintf(stdout, "  - %s %q\n", seg.ID, truncate(seg.Source, 50))
	}
	return nil
}

func readSegments(path, sourceLang string) ([]gosplice.Segment, error) {
	data, err := os.ReadFile(path) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return nil, fmt.Errorf("reading segments: %w", err)
	}
	segs, err := gosplice.DecodeSegments(data, sourceLang)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return segs, nil
}

func printReport(stdout io.Writer, report *gosplice.Report) {
	if report == nil {
		return
	}
	if report.Passed {
		fmt.Fprintf(stdout, "Validation passed\n")
	} else {
		fmt.Fprintf(stdout, "Validation failed\n")
	}
	for _, d := range report.Details {
		fmt.Fprintf(stdout, "  %s\n", d)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// This binary reads YAML from stdin or a file and writes it back through
// the emit serializer, so formatting options can be tried on real input.
// It can also list the serializer events, or decode the input into Go
// values and dump them through the representer.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gopkg.in/yaml.v3"

	"go.yaml.in/emit"
)

// version is the current version of the yaml-emit tool.
const version = "0.1.0"

// errShowOptions is returned by the option parser when the user asks for
// the option list.
var errShowOptions = errors.New("show options")

// stringSlice is a custom flag type for collecting multiple -o flags
type stringSlice []string

// String returns the string representation of the slice for [flag.Value] interface.
func (s *stringSlice) String() string {
	if s == nil {
		return ""
	}
	return fmt.Sprint(*s)
}

// Set appends a value to the slice for [flag.Value] interface.
func (s *stringSlice) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// optionSpec defines metadata for an option
type optionSpec struct {
	typ     string // "bool", "int", "string", "multi"
	handler func(value string) ([]emit.Option, error)
}

func boolOption(with func(...bool) emit.Option) optionSpec {
	return optionSpec{typ: "bool", handler: func(value string) ([]emit.Option, error) {
		return []emit.Option{with(value == "true")}, nil
	}}
}

func intOption(name string, with func(int) emit.Option) optionSpec {
	return optionSpec{typ: "int", handler: func(value string) ([]emit.Option, error) {
		var val int
		if _, err := fmt.Sscanf(value, "%d", &val); err != nil {
			return nil, fmt.Errorf("%s requires integer value", name)
		}
		return []emit.Option{with(val)}, nil
	}}
}

func styleOption(name string, with func(emit.Style) emit.Option) optionSpec {
	return optionSpec{typ: "string", handler: func(value string) ([]emit.Option, error) {
		switch value {
		case "any":
			return []emit.Option{with(emit.AnyStyle)}, nil
		case "block":
			return []emit.Option{with(emit.BlockStyle)}, nil
		case "flow":
			return []emit.Option{with(emit.FlowStyle)}, nil
		}
		return nil, fmt.Errorf("%s must be any, block, or flow", name)
	}}
}

// optionRegistry maps option names (including short aliases) to their specs
var optionRegistry = map[string]optionSpec{
	"indent": {typ: "int", handler: func(value string) ([]emit.Option, error) {
		var val int
		if _, err := fmt.Sscanf(value, "%d", &val); err != nil {
			return nil, fmt.Errorf("indent requires integer value (2-9)")
		}
		if val < 2 || val > 9 {
			return nil, fmt.Errorf("indent must be between 2 and 9")
		}
		return []emit.Option{emit.WithIndent(val)}, nil
	}},
	"line-width":     intOption("line-width", emit.WithLineWidth),
	"width":          intOption("width", emit.WithLineWidth),
	"unicode":        boolOption(emit.WithUnicode),
	"canonical":      boolOption(emit.WithCanonical),
	"explicit-start": boolOption(emit.WithExplicitStart),
	"explicit-end":   boolOption(emit.WithExplicitEnd),
	"sort-keys":      boolOption(emit.WithSortKeys),
	"sort":           boolOption(emit.WithSortKeys),
	"explicit": {typ: "multi", handler: func(value string) ([]emit.Option, error) {
		val := value == "true"
		return []emit.Option{emit.WithExplicitStart(val), emit.WithExplicitEnd(val)}, nil
	}},
	"line-break": {typ: "string", handler: func(value string) ([]emit.Option, error) {
		var lb emit.LineBreak
		switch value {
		case "ln":
			lb = emit.LineBreakLN
		case "cr":
			lb = emit.LineBreakCR
		case "crln":
			lb = emit.LineBreakCRLN
		default:
			return nil, fmt.Errorf("line-break must be ln, cr, or crln")
		}
		return []emit.Option{emit.WithLineBreak(lb)}, nil
	}},
	"version": {typ: "string", handler: func(value string) ([]emit.Option, error) {
		var major, minor int
		if _, err := fmt.Sscanf(value, "%d.%d", &major, &minor); err != nil {
			return nil, fmt.Errorf("version must look like 1.2")
		}
		return []emit.Option{emit.WithVersion(major, minor)}, nil
	}},
	"sequence-style": styleOption("sequence-style", emit.WithSequenceStyle),
	"seq-style":      styleOption("seq-style", emit.WithSequenceStyle),
	"mapping-style":  styleOption("mapping-style", emit.WithMappingStyle),
	"map-style":      styleOption("map-style", emit.WithMappingStyle),
	"number-format": {typ: "string", handler: func(value string) ([]emit.Option, error) {
		switch value {
		case "scientific":
			return []emit.Option{emit.WithNumberFormat(emit.ScientificFormat)}, nil
		case "decimal":
			return []emit.Option{emit.WithNumberFormat(emit.DecimalFormat)}, nil
		}
		return nil, fmt.Errorf("number-format must be scientific or decimal")
	}},
}

// parseOneOption parses a single option (name=value, name, or no-name)
func parseOneOption(s string) ([]emit.Option, error) {
	if s == "help" || s == "?" {
		return nil, errShowOptions
	}

	// Check for "no-" prefix for boolean false
	if name, found := strings.CutPrefix(s, "no-"); found {
		spec, ok := optionRegistry[name]
		if !ok {
			return nil, fmt.Errorf("unknown option: %s", name)
		}
		if spec.typ != "bool" && spec.typ != "multi" {
			return nil, fmt.Errorf("option %s is not boolean, cannot use no- prefix", name)
		}
		return spec.handler("false")
	}

	// Check for "name=value" format
	if name, value, found := strings.Cut(s, "="); found {
		spec, ok := optionRegistry[name]
		if !ok {
			return nil, fmt.Errorf("unknown option: %s", name)
		}
		if spec.typ == "bool" || spec.typ == "multi" {
			if value != "true" && value != "false" {
				return nil, fmt.Errorf("option %s requires true or false value", name)
			}
		}
		return spec.handler(value)
	}

	// Must be "name" alone (boolean true)
	spec, ok := optionRegistry[s]
	if !ok {
		return nil, fmt.Errorf("unknown option: %s", s)
	}
	if spec.typ != "bool" && spec.typ != "multi" {
		return nil, fmt.Errorf("option %s requires a value (use %s=value)", s, s)
	}
	return spec.handler("true")
}

// parseOptionFlags parses comma-separated options string into individual options
func parseOptionFlags(s string) ([]emit.Option, error) {
	var opts []emit.Option
	for _, part := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		opt, err := parseOneOption(trimmed)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt...)
	}
	return opts, nil
}

// buildOptions creates the option list from the config file and -o flags.
// Flags override the config file.
func buildOptions(configFile string, optionFlags []string) ([]emit.Option, error) {
	var opts []emit.Option

	if configFile != "" {
		configData, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		configOpts, err := emit.OptionsYAML(string(configData))
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		opts = append(opts, configOpts)
	}

	for _, optStr := range optionFlags {
		parsedOpts, err := parseOptionFlags(optStr)
		if err != nil {
			return nil, err
		}
		opts = append(opts, parsedOpts...)
	}

	// Catch bad values before any input is read.
	if _, err := emit.ApplyOptions(opts...); err != nil {
		return nil, err
	}
	return opts, nil
}

// newLogger returns a logfmt logger on w that lets warnings through, and
// debug records too when verbose is set.
func newLogger(w io.Writer, verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowWarn())
}

// readDocuments parses every document of r.
func readDocuments(r io.Reader) ([]*yaml.Node, error) {
	dec := yaml.NewDecoder(r)
	var docs []*yaml.Node
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}
}

// ProcessYAML re-emits every input document.
func ProcessYAML(w io.Writer, docs []*yaml.Node, keepFlow bool, opts []emit.Option) error {
	nodes, err := convertDocuments(docs, keepFlow)
	if err != nil {
		return err
	}
	s, err := emit.NewSerializerTo(w, opts...)
	if err != nil {
		return err
	}
	if err := s.Open(); err != nil {
		return err
	}
	for _, node := range nodes {
		if err := s.Serialize(node); err != nil {
			return err
		}
	}
	return s.Close()
}

// ProcessDump decodes every input document into Go values and dumps them
// through the representer.
func ProcessDump(w io.Writer, docs []*yaml.Node, opts []emit.Option) error {
	values := make([]any, 0, len(docs))
	for i, doc := range docs {
		var v any
		if err := doc.Decode(&v); err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		values = append(values, v)
	}
	out, err := emit.DumpAll(values, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// ProcessEvents lists the serializer events for every input document.
func ProcessEvents(w io.Writer, docs []*yaml.Node, keepFlow, long bool, opts []emit.Option) error {
	nodes, err := convertDocuments(docs, keepFlow)
	if err != nil {
		return err
	}
	return processEvents(w, nodes, long, opts)
}

func convertDocuments(docs []*yaml.Node, keepFlow bool) ([]*emit.Node, error) {
	c := newConverter(keepFlow)
	nodes := make([]*emit.Node, 0, len(docs))
	for i, doc := range docs {
		node, err := c.document(doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// run executes the tool and returns its exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(stderr)

	showHelp := flags.Bool("h", false, "Show this help information")
	yamlMode := flags.Bool("y", false, "YAML output (default)")
	dumpMode := flags.Bool("d", false, "Decode into Go values and dump")
	eventMode := flags.Bool("e", false, "Event output")
	longMode := flags.Bool("l", false, "Long (block) formatted event output")
	restyle := flags.Bool("r", false, "Drop flow styles from the input")
	verbose := flags.Bool("v", false, "Log serializer activity to stderr")
	configFile := flags.String("C", "", "Load options from YAML config file")

	var optionFlags stringSlice
	flags.Var(&optionFlags, "o", "Set option (name=value, name, no-name)")
	flags.Var(&optionFlags, "option", "Set option (name=value, name, no-name)")

	flags.BoolVar(showHelp, "help", false, "Show this help information")
	flags.BoolVar(yamlMode, "yaml", false, "YAML output (default)")
	flags.BoolVar(dumpMode, "dump", false, "Decode into Go values and dump")
	flags.BoolVar(eventMode, "event", false, "Event output")
	flags.BoolVar(longMode, "long", false, "Long (block) formatted event output")
	flags.BoolVar(restyle, "restyle", false, "Drop flow styles from the input")
	flags.BoolVar(verbose, "verbose", false, "Log serializer activity to stderr")
	flags.StringVar(configFile, "config", "", "Load options from YAML config file")

	if err := flags.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showHelp {
		printHelp(stdout)
		return 0
	}

	modes := 0
	for _, mode := range []bool{*yamlMode, *dumpMode, *eventMode} {
		if mode {
			modes++
		}
	}
	if modes > 1 {
		fmt.Fprintf(stderr, "Error: -y, -d and -e are mutually exclusive\n")
		return 1
	}

	opts, err := buildOptions(*configFile, optionFlags)
	if errors.Is(err, errShowOptions) {
		printAvailableOptions(stdout)
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		printAvailableOptions(stderr)
		return 1
	}
	logger := newLogger(stderr, *verbose)
	opts = append(opts, emit.WithLogger(logger))

	input := stdin
	switch rest := flags.Args(); {
	case len(rest) == 0 || len(rest) == 1 && rest[0] == "-":
	case len(rest) == 1:
		f, err := os.Open(rest[0])
		if err != nil {
			level.Error(logger).Log("msg", "failed to open file", "err", err)
			return 1
		}
		defer f.Close()
		input = f
	default:
		fmt.Fprintf(stderr, "Error: only one file argument supported\n")
		return 1
	}

	docs, err := readDocuments(input)
	if err != nil {
		level.Error(logger).Log("msg", "failed to parse input", "err", err)
		return 1
	}

	switch {
	case *dumpMode:
		err = ProcessDump(stdout, docs, opts)
	case *eventMode:
		err = ProcessEvents(stdout, docs, !*restyle, *longMode, opts)
	default:
		err = ProcessYAML(stdout, docs, !*restyle, opts)
	}
	if err != nil {
		level.Error(logger).Log("msg", "failed to write output", "err", err)
		return 1
	}
	return 0
}

// printAvailableOptions prints the list of available options for -o flag
func printAvailableOptions(w io.Writer) {
	fmt.Fprint(w, `Available options for -o/--option:

Formatting options:
  indent=NUM            Indentation spaces (2-9)
  line-width=NUM        Preferred line width, -1=unlimited (short: width)
  unicode               Allow non-ASCII in output
  canonical             Canonical YAML output format
  line-break=TYPE       Line ending: ln, cr, or crln
  explicit-start        Always emit '---' marker
  explicit-end          Always emit '...' marker
  explicit              Both explicit-start and explicit-end
  version=X.Y           Write a %YAML directive (1.1 or 1.2)
  sort-keys             Emit mapping keys in order (short: sort)
  sequence-style=STYLE  any, block or flow (short: seq-style)
  mapping-style=STYLE   any, block or flow (short: map-style)
  number-format=FORMAT  scientific or decimal, for -d

Boolean options: use 'name' for true, 'no-name' for false
Multiple options: comma-separated or repeat -o flag

Examples:
  yaml-emit -o indent=4,sort-keys
  yaml-emit -r -o seq-style=flow,width=120
  yaml-emit -d -o number-format=decimal
`)
}

// printHelp displays the help information for the program
func printHelp(w io.Writer) {
	fmt.Fprintf(w, `yaml-emit version %s

The 'yaml-emit' tool shows how the go.yaml.in/emit serializer renders YAML.
It reads YAML input text from stdin or a file and writes results to stdout.

Usage:
  yaml-emit [options] [file]

Output Mode Options:
  -y, --yaml       Re-emit the input documents (default)
  -d, --dump       Decode into Go values and dump them
  -e, --event      List the serializer events
  -l, --long       Block formatted event list

Formatting Options:
  -o, --option OPT Set option (use -o help to see all options)
                   Multiple: -o opt1,opt2 or -o opt1 -o opt2
                   Booleans: name (true) or no-name (false)
  -r, --restyle    Drop flow styles so the style options apply everywhere

Configuration:
  -C, --config     Load options from YAML config file

Other Options:
  -v, --verbose    Log serializer activity to stderr
  -h, --help       Show this help information

`, version)
}

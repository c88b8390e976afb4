// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Serializer configuration.
// Options is the formatting snapshot held by a Serializer; Option values
// are the functional setters used to build and update it.

package emit

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-kit/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"go.yaml.in/emit/internal/libyaml"
)

// UnlimitedWidth disables line folding when used as [Options.Width].
const UnlimitedWidth = -1

// Precision used when rendering floating point numbers.
const (
	// DoubleMaximumSignificantDigits bounds the digits written for a float64.
	DoubleMaximumSignificantDigits = 15
	// DoubleMinimumFractionDigits is the number of fraction digits always
	// written in decimal format, so 1.0 stays a float.
	DoubleMinimumFractionDigits = 1
	// FloatMaximumSignificantDigits bounds the digits written for a float32.
	FloatMaximumSignificantDigits = 7
)

// LineBreak selects the line break sequence written by the emitter.
type LineBreak int

const (
	LineBreakLN LineBreak = iota
	LineBreakCR
	LineBreakCRLN
)

func (b LineBreak) String() string {
	switch b {
	case LineBreakLN:
		return "ln"
	case LineBreakCR:
		return "cr"
	case LineBreakCRLN:
		return "crln"
	}
	return fmt.Sprintf("LineBreak(%d)", int(b))
}

func (b LineBreak) libyaml() libyaml.LineBreak {
	switch b {
	case LineBreakCR:
		return libyaml.CR_BREAK
	case LineBreakCRLN:
		return libyaml.CRLN_BREAK
	}
	return libyaml.LN_BREAK
}

// NumberFormat selects how floating point values are written by the
// representer.
type NumberFormat int

const (
	// ScientificFormat writes floats as mantissa and exponent, so one is
	// written as 1e+0.
	ScientificFormat NumberFormat = iota
	// DecimalFormat always writes floats in positional notation.
	DecimalFormat
)

func (f NumberFormat) String() string {
	switch f {
	case ScientificFormat:
		return "scientific"
	case DecimalFormat:
		return "decimal"
	}
	return fmt.Sprintf("NumberFormat(%d)", int(f))
}

// Version is the YAML version announced by a %YAML directive.
type Version struct {
	Major int
	Minor int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Options holds the formatting configuration of a [Serializer].
//
// The zero value is usable: two space indentation, 80 column lines, no
// document markers, insertion ordered keys and block collections.
type Options struct {
	// Canonical writes the canonical YAML form, every tag explicit.
	Canonical bool
	// Indent is the indentation increment, 2 to 9. Zero means 2.
	Indent int
	// Width is the preferred line width. Zero means 80 and
	// UnlimitedWidth disables folding.
	Width int
	// Unicode allows non-ASCII characters to be written unescaped.
	Unicode bool
	// LineBreak is the line break sequence.
	LineBreak LineBreak
	// ExplicitStart writes "---" before every document.
	ExplicitStart bool
	// ExplicitEnd writes "..." after every document.
	ExplicitEnd bool
	// Version, when set, is written as a %YAML directive before every
	// document.
	Version *Version
	// SortKeys emits mapping entries in ascending key order.
	SortKeys bool
	// SequenceStyle is used for sequences with AnyStyle.
	SequenceStyle Style
	// MappingStyle is used for mappings with AnyStyle.
	MappingStyle Style
	// NumberFormat selects how the representer writes floats.
	NumberFormat NumberFormat
	// Logger receives debug and warning records. Nil discards them.
	Logger log.Logger
}

// applyOptions pushes the sink related part of o to sink.
func applyOptions(sink EventSink, o *Options) {
	indent := o.Indent
	if indent == 0 {
		indent = 2
	}
	width := o.Width
	if width == 0 {
		width = 80
	}
	sink.SetCanonical(o.Canonical)
	sink.SetIndent(indent)
	sink.SetWidth(width)
	sink.SetUnicode(o.Unicode)
	sink.SetLineBreak(o.LineBreak.libyaml())
}

func (o *Options) logger() log.Logger {
	if o.Logger == nil {
		return log.NewNopLogger()
	}
	return o.Logger
}

func (o *Options) versionDirective() *libyaml.VersionDirective {
	if o.Version == nil {
		return nil
	}
	return libyaml.NewVersionDirective(o.Version.Major, o.Version.Minor)
}

// Option configures [Options].
type Option func(*Options) error

// WithCanonical enables canonical output.
// When called without arguments, defaults to true.
func WithCanonical(canonical ...bool) Option {
	return func(o *Options) error {
		o.Canonical = optionalBool(canonical)
		return nil
	}
}

// WithIndent sets the indentation increment.
//
// A negative indent value will result in an error.
// 0 can be used to reset the default indentation level.
func WithIndent(indent int) Option {
	return func(o *Options) error {
		if indent < 0 {
			return errors.New("yaml: cannot indent to a negative number of spaces")
		}
		o.Indent = indent
		return nil
	}
}

// WithLineWidth sets the preferred line width. Use [UnlimitedWidth] to
// never fold lines.
func WithLineWidth(width int) Option {
	return func(o *Options) error {
		o.Width = width
		return nil
	}
}

// WithUnicode allows non-ASCII characters in the output.
// When called without arguments, defaults to true.
func WithUnicode(unicode ...bool) Option {
	return func(o *Options) error {
		o.Unicode = optionalBool(unicode)
		return nil
	}
}

// WithLineBreak sets the line break sequence.
func WithLineBreak(lineBreak LineBreak) Option {
	return func(o *Options) error {
		switch lineBreak {
		case LineBreakLN, LineBreakCR, LineBreakCRLN:
		default:
			return errors.Errorf("yaml: invalid line break %d", int(lineBreak))
		}
		o.LineBreak = lineBreak
		return nil
	}
}

// WithExplicitStart writes a "---" marker before every document.
// When called without arguments, defaults to true.
func WithExplicitStart(explicit ...bool) Option {
	return func(o *Options) error {
		o.ExplicitStart = optionalBool(explicit)
		return nil
	}
}

// WithExplicitEnd writes a "..." marker after every document.
// When called without arguments, defaults to true.
func WithExplicitEnd(explicit ...bool) Option {
	return func(o *Options) error {
		o.ExplicitEnd = optionalBool(explicit)
		return nil
	}
}

// WithVersion announces the YAML version with a %YAML directive. The
// emitter accepts versions 1.1 and 1.2.
func WithVersion(major, minor int) Option {
	return func(o *Options) error {
		if major < 0 || minor < 0 || major > math.MaxInt8 || minor > math.MaxInt8 {
			return errors.Errorf("yaml: invalid version %d.%d", major, minor)
		}
		o.Version = &Version{Major: major, Minor: minor}
		return nil
	}
}

// WithSortKeys emits mapping entries in ascending key order.
// When called without arguments, defaults to true.
func WithSortKeys(sortKeys ...bool) Option {
	return func(o *Options) error {
		o.SortKeys = optionalBool(sortKeys)
		return nil
	}
}

// WithSequenceStyle sets the style used for sequences with [AnyStyle].
func WithSequenceStyle(style Style) Option {
	return func(o *Options) error {
		if err := checkCollectionStyle(style); err != nil {
			return err
		}
		o.SequenceStyle = style
		return nil
	}
}

// WithMappingStyle sets the style used for mappings with [AnyStyle].
func WithMappingStyle(style Style) Option {
	return func(o *Options) error {
		if err := checkCollectionStyle(style); err != nil {
			return err
		}
		o.MappingStyle = style
		return nil
	}
}

func checkCollectionStyle(style Style) error {
	switch style {
	case AnyStyle, BlockStyle, FlowStyle:
		return nil
	}
	return errors.Errorf("yaml: %s is not a collection style", style)
}

// WithNumberFormat selects how floats are written.
func WithNumberFormat(format NumberFormat) Option {
	return func(o *Options) error {
		switch format {
		case ScientificFormat, DecimalFormat:
		default:
			return errors.Errorf("yaml: invalid number format %d", int(format))
		}
		o.NumberFormat = format
		return nil
	}
}

// WithLogger sets the logger receiving serializer records.
func WithLogger(logger log.Logger) Option {
	return func(o *Options) error {
		o.Logger = logger
		return nil
	}
}

// withOptions replaces the whole configuration with o.
func withOptions(o Options) Option {
	return func(dst *Options) error {
		*dst = o
		return nil
	}
}

func optionalBool(values []bool) bool {
	if len(values) == 0 {
		return true
	}
	return values[0]
}

// CombineOptions combines multiple options into a single Option, applied
// in order.
//
// Example:
//
//	opts := emit.CombineOptions(emit.WithIndent(4), emit.WithSortKeys())
//	out, err := emit.Serialize(node, opts)
func CombineOptions(opts ...Option) Option {
	return func(o *Options) error {
		for _, opt := range opts {
			if opt == nil {
				continue
			}
			if err := opt(o); err != nil {
				return err
			}
		}
		return nil
	}
}

// ApplyOptions builds an Options value from the zero configuration.
func ApplyOptions(opts ...Option) (Options, error) {
	var o Options
	if err := CombineOptions(opts...)(&o); err != nil {
		return Options{}, err
	}
	return o, nil
}

// OptionsYAML parses a YAML string containing option settings and returns
// an Option that can be combined with other options using
// [CombineOptions].
//
// The YAML string can specify any of these fields:
// - canonical (bool)
// - indent (int)
// - line-width (int, -1 for unlimited)
// - unicode (bool)
// - line-break (string: ln, cr, crln)
// - explicit-start (bool)
// - explicit-end (bool)
// - version (string: "1.1" or "1.2")
// - sort-keys (bool)
// - sequence-style (string: any, block, flow)
// - mapping-style (string: any, block, flow)
// - number-format (string: scientific, decimal)
//
// Unknown fields are errors. Only fields specified in the YAML will
// override other options when combined.
//
// Example:
//
//	opt, err := emit.OptionsYAML(`
//	  indent: 4
//	  sort-keys: true
//	`)
func OptionsYAML(yamlStr string) (Option, error) {
	var cfg struct {
		Canonical     *bool   `yaml:"canonical"`
		Indent        *int    `yaml:"indent"`
		LineWidth     *int    `yaml:"line-width"`
		Unicode       *bool   `yaml:"unicode"`
		LineBreak     *string `yaml:"line-break"`
		ExplicitStart *bool   `yaml:"explicit-start"`
		ExplicitEnd   *bool   `yaml:"explicit-end"`
		Version       *string `yaml:"version"`
		SortKeys      *bool   `yaml:"sort-keys"`
		SequenceStyle *string `yaml:"sequence-style"`
		MappingStyle  *string `yaml:"mapping-style"`
		NumberFormat  *string `yaml:"number-format"`
	}
	dec := yaml.NewDecoder(strings.NewReader(yamlStr))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	var optList []Option
	if cfg.Canonical != nil {
		optList = append(optList, WithCanonical(*cfg.Canonical))
	}
	if cfg.Indent != nil {
		optList = append(optList, WithIndent(*cfg.Indent))
	}
	if cfg.LineWidth != nil {
		optList = append(optList, WithLineWidth(*cfg.LineWidth))
	}
	if cfg.Unicode != nil {
		optList = append(optList, WithUnicode(*cfg.Unicode))
	}
	if cfg.LineBreak != nil {
		switch *cfg.LineBreak {
		case "ln":
			optList = append(optList, WithLineBreak(LineBreakLN))
		case "cr":
			optList = append(optList, WithLineBreak(LineBreakCR))
		case "crln":
			optList = append(optList, WithLineBreak(LineBreakCRLN))
		default:
			return nil, errors.New("yaml: invalid line-break value (use ln, cr, or crln)")
		}
	}
	if cfg.ExplicitStart != nil {
		optList = append(optList, WithExplicitStart(*cfg.ExplicitStart))
	}
	if cfg.ExplicitEnd != nil {
		optList = append(optList, WithExplicitEnd(*cfg.ExplicitEnd))
	}
	if cfg.Version != nil {
		var major, minor int
		if _, err := fmt.Sscanf(*cfg.Version, "%d.%d", &major, &minor); err != nil {
			return nil, errors.Wrapf(err, "yaml: invalid version %q", *cfg.Version)
		}
		optList = append(optList, WithVersion(major, minor))
	}
	if cfg.SortKeys != nil {
		optList = append(optList, WithSortKeys(*cfg.SortKeys))
	}
	for _, field := range []struct {
		value *string
		with  func(Style) Option
	}{
		{cfg.SequenceStyle, WithSequenceStyle},
		{cfg.MappingStyle, WithMappingStyle},
	} {
		if field.value == nil {
			continue
		}
		switch *field.value {
		case "any":
			optList = append(optList, field.with(AnyStyle))
		case "block":
			optList = append(optList, field.with(BlockStyle))
		case "flow":
			optList = append(optList, field.with(FlowStyle))
		default:
			return nil, errors.Errorf("yaml: invalid collection style %q (use any, block, or flow)", *field.value)
		}
	}
	if cfg.NumberFormat != nil {
		switch *cfg.NumberFormat {
		case "scientific":
			optList = append(optList, WithNumberFormat(ScientificFormat))
		case "decimal":
			optList = append(optList, WithNumberFormat(DecimalFormat))
		default:
			return nil, errors.Errorf("yaml: invalid number-format value %q (use scientific or decimal)", *cfg.NumberFormat)
		}
	}

	return CombineOptions(optList...), nil
}

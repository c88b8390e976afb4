// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package emit_test

import (
	"strings"
	"testing"

	"go.yaml.in/emit"
	"go.yaml.in/emit/internal/testutil/assert"
)

func TestApplyOptionsDefaults(t *testing.T) {
	o, err := emit.ApplyOptions()
	assert.NoError(t, err)
	assert.Equal(t, false, o.Canonical)
	assert.Equal(t, 0, o.Indent)
	assert.Equal(t, 0, o.Width)
	assert.Equal(t, emit.LineBreakLN, o.LineBreak)
	assert.IsNil(t, o.Version)
	assert.Equal(t, emit.AnyStyle, o.SequenceStyle)
	assert.Equal(t, emit.ScientificFormat, o.NumberFormat)
}

func TestApplyOptions(t *testing.T) {
	o, err := emit.ApplyOptions(
		emit.WithCanonical(),
		emit.WithIndent(4),
		emit.WithLineWidth(emit.UnlimitedWidth),
		emit.WithUnicode(),
		emit.WithLineBreak(emit.LineBreakCRLN),
		emit.WithExplicitStart(),
		emit.WithExplicitEnd(true),
		emit.WithVersion(1, 1),
		emit.WithSortKeys(),
		emit.WithSequenceStyle(emit.FlowStyle),
		emit.WithMappingStyle(emit.BlockStyle),
		emit.WithNumberFormat(emit.DecimalFormat),
		nil,
	)
	assert.NoError(t, err)
	assert.DeepEqual(t, emit.Options{
		Canonical:     true,
		Indent:        4,
		Width:         emit.UnlimitedWidth,
		Unicode:       true,
		LineBreak:     emit.LineBreakCRLN,
		ExplicitStart: true,
		ExplicitEnd:   true,
		Version:       &emit.Version{Major: 1, Minor: 1},
		SortKeys:      true,
		SequenceStyle: emit.FlowStyle,
		MappingStyle:  emit.BlockStyle,
		NumberFormat:  emit.DecimalFormat,
	}, o)
}

func TestApplyOptionsLaterWins(t *testing.T) {
	o, err := emit.ApplyOptions(
		emit.WithSortKeys(),
		emit.CombineOptions(emit.WithIndent(3), emit.WithSortKeys(false)),
		emit.WithIndent(0),
	)
	assert.NoError(t, err)
	assert.Equal(t, false, o.SortKeys)
	assert.Equal(t, 0, o.Indent)
}

func TestOptionErrors(t *testing.T) {
	tests := []struct {
		name   string
		option emit.Option
		err    string
	}{
		{"negative indent", emit.WithIndent(-1), `^yaml: cannot indent to a negative number of spaces$`},
		{"line break", emit.WithLineBreak(emit.LineBreak(7)), `^yaml: invalid line break 7$`},
		{"negative version", emit.WithVersion(-1, 2), `^yaml: invalid version -1\.2$`},
		{"huge version", emit.WithVersion(1, 1000), `^yaml: invalid version 1\.1000$`},
		{"sequence style", emit.WithSequenceStyle(emit.LiteralStyle), `^yaml: literal is not a collection style$`},
		{"mapping style", emit.WithMappingStyle(emit.BlockStyle | emit.FlowStyle), `^yaml: block\|flow is not a collection style$`},
		{"number format", emit.WithNumberFormat(emit.NumberFormat(9)), `^yaml: invalid number format 9$`},
		{"combined", emit.CombineOptions(emit.WithIndent(2), emit.WithIndent(-3)), `negative number of spaces`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := emit.ApplyOptions(emit.WithSortKeys(), tt.option)
			assert.ErrorMatches(t, tt.err, err)
			assert.DeepEqual(t, emit.Options{}, o)
		})
	}
}

func TestOptionStrings(t *testing.T) {
	assert.Equal(t, "crln", emit.LineBreakCRLN.String())
	assert.Equal(t, "LineBreak(5)", emit.LineBreak(5).String())
	assert.Equal(t, "decimal", emit.DecimalFormat.String())
	assert.Equal(t, "1.2", emit.Version{Major: 1, Minor: 2}.String())
}

func TestOptionsYAML(t *testing.T) {
	tests := []struct {
		name      string
		yamlStr   string
		expectErr bool
		errMatch  string
	}{
		{
			name:    "valid options",
			yamlStr: "indent: 4\nsort-keys: true",
		},
		{
			name:    "empty",
			yamlStr: "",
		},
		{
			name:      "typo in field name",
			yamlStr:   "sort-kyes: true",
			expectErr: true,
			errMatch:  "sort-kyes not found",
		},
		{
			name:      "another typo",
			yamlStr:   "indnt: 2",
			expectErr: true,
			errMatch:  "indnt not found",
		},
		{
			name:      "multiple options with one typo",
			yamlStr:   "indent: 2\nunicoode: true",
			expectErr: true,
			errMatch:  "unicoode not found",
		},
		{
			name:      "bad line break",
			yamlStr:   "line-break: lf",
			expectErr: true,
			errMatch:  "invalid line-break value",
		},
		{
			name:      "bad version",
			yamlStr:   "version: latest",
			expectErr: true,
			errMatch:  `invalid version "latest"`,
		},
		{
			name:      "bad style",
			yamlStr:   "mapping-style: literal",
			expectErr: true,
			errMatch:  `invalid collection style "literal"`,
		},
		{
			name:      "bad number format",
			yamlStr:   "number-format: hex",
			expectErr: true,
			errMatch:  `invalid number-format value "hex"`,
		},
		{
			name: "all valid options",
			yamlStr: `
canonical: false
indent: 2
line-width: -1
unicode: true
line-break: crln
explicit-start: true
explicit-end: false
version: "1.2"
sort-keys: true
sequence-style: flow
mapping-style: block
number-format: decimal
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt, err := emit.OptionsYAML(tt.yamlStr)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				if tt.errMatch != "" && !strings.Contains(err.Error(), tt.errMatch) {
					t.Errorf("expected error to contain %q, got: %v", tt.errMatch, err)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if opt == nil {
					t.Fatal("expected non-nil option")
				}
			}
		})
	}
}

func TestOptionsYAMLOverridesOnlyGivenFields(t *testing.T) {
	opt, err := emit.OptionsYAML(`
indent: 4
version: "1.1"
sequence-style: flow
`)
	assert.NoError(t, err)
	o, err := emit.ApplyOptions(emit.WithSortKeys(), emit.WithIndent(8), opt)
	assert.NoError(t, err)
	assert.Equal(t, 4, o.Indent)
	assert.Equal(t, true, o.SortKeys)
	assert.DeepEqual(t, &emit.Version{Major: 1, Minor: 1}, o.Version)
	assert.Equal(t, emit.FlowStyle, o.SequenceStyle)
}

func TestOptionsYAMLInvalidValue(t *testing.T) {
	opt, err := emit.OptionsYAML("indent: -2")
	assert.NoError(t, err)
	_, err = emit.ApplyOptions(opt)
	assert.ErrorMatches(t, `negative number of spaces`, err)
}

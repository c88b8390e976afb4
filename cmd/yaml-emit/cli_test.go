// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"go.yaml.in/emit/internal/testutil/assert"
)

// TestCase represents a single test case from a test file
type TestCase struct {
	Name  string   `yaml:"name"`
	Args  []string `yaml:"args,omitempty"`
	Text  string   `yaml:"text"`
	Yaml  string   `yaml:"yaml,omitempty"`
	Dump  string   `yaml:"dump,omitempty"`
	Event string   `yaml:"event,omitempty"`
	EVENT string   `yaml:"EVENT,omitempty"`
}

// TestSuite is a sequence of test cases
type TestSuite []TestCase

// flagMapping maps test file field names to CLI flags
var flagMapping = map[string][]string{
	"yaml":  {"-y"},
	"dump":  {"-d"},
	"event": {"-e"},
	"EVENT": {"-e", "-l"},
}

func TestCLI(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*.yaml")
	if err != nil {
		t.Fatalf("Failed to find test files: %v", err)
	}
	if len(testFiles) == 0 {
		t.Fatal("No test files found in testdata/")
	}

	for _, testFile := range testFiles {
		t.Run(filepath.Base(testFile), func(t *testing.T) {
			runTestFile(t, testFile)
		})
	}
}

func runTestFile(t *testing.T, testFile string) {
	data, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read test file %s: %v", testFile, err)
	}

	var suite TestSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		t.Fatalf("Failed to parse test file %s: %v", testFile, err)
	}

	for _, testCase := range suite {
		t.Run(testCase.Name, func(t *testing.T) {
			runTestCase(t, testCase)
		})
	}
}

func runTestCase(t *testing.T, tc TestCase) {
	tests := []struct {
		field    string
		expected string
	}{
		{"yaml", tc.Yaml},
		{"dump", tc.Dump},
		{"event", tc.Event},
		{"EVENT", tc.EVENT},
	}

	for _, test := range tests {
		if test.expected == "" {
			continue
		}
		t.Run(test.field, func(t *testing.T) {
			args := append([]string{"yaml-emit"}, flagMapping[test.field]...)
			args = append(args, tc.Args...)
			stdout, stderr, code := runCLI(args, tc.Text)
			if code != 0 {
				t.Fatalf("Command failed with status %d\nStderr: %s", code, stderr)
			}

			actual := normalizeOutput(stdout)
			expected := normalizeOutput(test.expected)
			if actual != expected {
				t.Errorf("Output mismatch for %v\nExpected:\n%s\n\nActual:\n%s", args[1:], expected, actual)
			}
		})
	}
}

func runCLI(args []string, input string) (stdout, stderr string, code int) {
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(input), &out, &errOut)
	return out.String(), errOut.String(), code
}

// normalizeOutput trims whitespace and ensures consistent line endings
func normalizeOutput(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return s
}

func TestCLIOptionErrors(t *testing.T) {
	tests := []struct {
		option string
		err    string
	}{
		{"indent=12", "indent must be between 2 and 9"},
		{"indent=x", "indent requires integer value"},
		{"bogus", "unknown option: bogus"},
		{"no-indent", "option indent is not boolean"},
		{"unicode=maybe", "option unicode requires true or false value"},
		{"width", "option width requires a value"},
		{"line-break=lf", "line-break must be ln, cr, or crln"},
		{"seq-style=literal", "seq-style must be any, block, or flow"},
		{"version=2.0,indent=3,version=x", "version must look like 1.2"},
	}
	for _, tt := range tests {
		t.Run(tt.option, func(t *testing.T) {
			stdout, stderr, code := runCLI([]string{"yaml-emit", "-o", tt.option}, "a: 1\n")
			assert.Equal(t, 1, code)
			assert.Equal(t, "", stdout)
			assert.Truef(t, strings.Contains(stderr, tt.err), "stderr %q does not mention %q", stderr, tt.err)
		})
	}
}

func TestCLIOptionList(t *testing.T) {
	stdout, _, code := runCLI([]string{"yaml-emit", "-o", "help"}, "")
	assert.Equal(t, 0, code)
	assert.Truef(t, strings.HasPrefix(stdout, "Available options"), "unexpected output %q", stdout)

	stdout, _, code = runCLI([]string{"yaml-emit", "-h"}, "")
	assert.Equal(t, 0, code)
	assert.Truef(t, strings.HasPrefix(stdout, "yaml-emit version "+version), "unexpected output %q", stdout)
}

func TestCLIModesExclusive(t *testing.T) {
	_, stderr, code := runCLI([]string{"yaml-emit", "-y", "-e"}, "a\n")
	assert.Equal(t, 1, code)
	assert.Truef(t, strings.Contains(stderr, "mutually exclusive"), "stderr %q", stderr)
}

func TestCLIConfigFile(t *testing.T) {
	config := filepath.Join(t.TempDir(), "emit.yaml")
	assert.NoError(t, os.WriteFile(config, []byte("sort-keys: true\nexplicit-end: true\n"), 0o644))

	stdout, stderr, code := runCLI([]string{"yaml-emit", "-C", config, "-o", "no-explicit-end"}, "b: 1\na: 2\n")
	assert.Equalf(t, 0, code, "stderr: %s", stderr)
	assert.Equal(t, "a: 2\nb: 1\n", stdout)

	_, stderr, code = runCLI([]string{"yaml-emit", "-C", config + ".missing"}, "a\n")
	assert.Equal(t, 1, code)
	assert.Truef(t, strings.Contains(stderr, "failed to read config file"), "stderr %q", stderr)
}

func TestCLIFileArgument(t *testing.T) {
	input := filepath.Join(t.TempDir(), "in.yaml")
	assert.NoError(t, os.WriteFile(input, []byte("[a, b]\n"), 0o644))

	stdout, stderr, code := runCLI([]string{"yaml-emit", "-r", input}, "")
	assert.Equalf(t, 0, code, "stderr: %s", stderr)
	assert.Equal(t, "- a\n- b\n", stdout)
}

func TestCLIVerbose(t *testing.T) {
	_, stderr, code := runCLI([]string{"yaml-emit", "-v"}, "a: 1\n")
	assert.Equal(t, 0, code)
	assert.Truef(t, strings.Contains(stderr, `level=debug msg="stream opened"`), "stderr %q", stderr)
	assert.Truef(t, strings.Contains(stderr, `msg="document serialized" documents=1`), "stderr %q", stderr)

	_, stderr, code = runCLI([]string{"yaml-emit"}, "a: 1\n")
	assert.Equal(t, 0, code)
	assert.Equal(t, "", stderr)
}

func TestCLIParseError(t *testing.T) {
	_, stderr, code := runCLI([]string{"yaml-emit"}, "a: [1, 2\n")
	assert.Equal(t, 1, code)
	assert.Truef(t, strings.Contains(stderr, `level=error msg="failed to parse input"`), "stderr %q", stderr)
}

func TestCLIRecursiveAlias(t *testing.T) {
	_, stderr, code := runCLI([]string{"yaml-emit"}, "a: &a [*a]\n")
	assert.Equal(t, 1, code)
	assert.Truef(t, strings.Contains(stderr, "recursive alias"), "stderr %q", stderr)
}

func TestCLIEmptyInput(t *testing.T) {
	stdout, stderr, code := runCLI([]string{"yaml-emit"}, "")
	assert.Equalf(t, 0, code, "stderr: %s", stderr)
	assert.Equal(t, "", stdout)
}

// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Plain scalar resolution.
// Decides which tag a reader gives a scalar written without quotes, so the
// emitter can quote strings that would read back as another type and write
// the tag of typed scalars whose content does not imply it.

package libyaml

import "regexp"

var (
	intPattern       = regexp.MustCompile(`^[-+]?(?:0|[1-9][0-9_]*)$`)
	octalPattern     = regexp.MustCompile(`^(?:0o[0-7_]+|[-+]?0[0-7_]+)$`)
	hexPattern       = regexp.MustCompile(`^[-+]?0x[0-9a-fA-F_]+$`)
	binaryPattern    = regexp.MustCompile(`^[-+]?0b[01_]+$`)
	floatPattern     = regexp.MustCompile(`^[-+]?(?:\.[0-9]+|[0-9][0-9_]*(?:\.[0-9_]*)?)(?:[eE][-+]?[0-9]+)?$`)
	timestampPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{1,2}-[0-9]{1,2}(?:(?:[Tt]|[ \t]+)[0-9]{1,2}:[0-9]{2}:[0-9]{2}(?:\.[0-9]*)?(?:[ \t]*(?:Z|[-+][0-9]{1,2}(?::[0-9]{2})?))?)?$`)

	// From http://yaml.org/type/float.html, except the regular expression
	// there is bogus. In practice parsers do not enforce the "\.[0-9_]*"
	// suffix.
	base60Pattern = regexp.MustCompile(`^[-+]?[0-9][0-9_]*(?::[0-5]?[0-9])+(?:\.[0-9_]*)?$`)

	// YAML 1.1 Examples 2.19/2.20 show comma as digit separator.
	commaNumberPattern = regexp.MustCompile(`^[-+]?(?:0|[1-9][0-9,]*)(?:\.[0-9]*)?$`)

	// Forms every reader agrees on.
	portableIntPattern   = regexp.MustCompile(`^(?:[-+]?(?:0|[1-9][0-9]*)|0x[0-9a-fA-F]+)$`)
	portableFloatPattern = regexp.MustCompile(`^[-+]?(?:\.[0-9]+|[0-9]+(?:\.[0-9]*)?)(?:[eE][-+]?[0-9]+)?$`)
)

// ResolvePlain returns the tag a reader following either YAML 1.1 or the
// YAML 1.2 core schema may give to s written as a plain scalar.
func ResolvePlain(s string) string {
	switch s {
	case "", "~", "null", "Null", "NULL":
		return NULL_TAG
	case "true", "True", "TRUE", "false", "False", "FALSE",
		"y", "Y", "yes", "Yes", "YES", "on", "On", "ON",
		"n", "N", "no", "No", "NO", "off", "Off", "OFF":
		return BOOL_TAG
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF",
		"-.inf", "-.Inf", "-.INF", ".nan", ".NaN", ".NAN":
		return FLOAT_TAG
	case "<<":
		return MERGE_TAG
	}
	c := s[0]
	if !(c == '+' || c == '-' || c == '.' || c >= '0' && c <= '9') {
		return STR_TAG
	}
	switch {
	case intPattern.MatchString(s), octalPattern.MatchString(s),
		hexPattern.MatchString(s), binaryPattern.MatchString(s):
		return INT_TAG
	case floatPattern.MatchString(s), base60Pattern.MatchString(s), commaNumberPattern.MatchString(s):
		return FLOAT_TAG
	case timestampPattern.MatchString(s):
		return TIMESTAMP_TAG
	}
	return STR_TAG
}

// impliesTag reports whether s written plain reads back as tag under both
// YAML 1.1 and the YAML 1.2 core schema.
func impliesTag(s, tag string) bool {
	if ResolvePlain(s) != tag {
		return false
	}
	switch tag {
	case BOOL_TAG:
		switch s {
		case "true", "True", "TRUE", "false", "False", "FALSE":
			return true
		}
		return false
	case INT_TAG:
		return portableIntPattern.MatchString(s)
	case FLOAT_TAG:
		// The .inf and .nan forms are shared, base 60 and commas are not.
		return portableFloatPattern.MatchString(s) || !base60Pattern.MatchString(s) && !commaNumberPattern.MatchString(s) && !floatPattern.MatchString(s)
	}
	return true
}

// IsCoreScalarTag reports whether tag is one a reader may infer from the
// content of a plain scalar.
func IsCoreScalarTag(tag string) bool {
	switch tag {
	case NULL_TAG, BOOL_TAG, STR_TAG, INT_TAG, FLOAT_TAG, TIMESTAMP_TAG:
		return true
	}
	return false
}

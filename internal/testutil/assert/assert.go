// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package assert holds the small set of test assertions used across the
// module. Every assertion stops the test on failure. The f-suffixed
// variants append a printf-style message to the failure.
//
// Structural comparisons of node trees go through [Diff], which reports a
// go-cmp diff.
package assert

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"

	"github.com/google/go-cmp/cmp"
)

type miniTB interface {
	Helper()
	Fatalf(string, ...any)
}

// formatSuffix renders the optional message of an f-suffixed assertion as
// " - message", or "" when there is none.
func formatSuffix(msgFormat string, args ...any) string {
	if msgFormat == "" {
		return ""
	}
	return " - " + fmt.Sprintf(msgFormat, args...)
}

func fatal(tb miniTB, failure string, msgFormat string, args []any) {
	tb.Helper()
	tb.Fatalf("%s%s", failure, formatSuffix(msgFormat, args...))
}

// match reports whether text matches pattern. When the pattern does not
// compile the test fails and valid is false.
func match(tb miniTB, pattern, text string, msgFormat string, args []any) (matched, valid bool) {
	tb.Helper()
	re, err := regexp.Compile(pattern)
	if err != nil {
		fatal(tb, fmt.Sprintf("invalid regexp %q: %v", pattern, err), msgFormat, args)
		return false, false
	}
	return re.MatchString(text), true
}

// Equal asserts that want == got. Use [DeepEqual] for values that are not
// comparable.
func Equal(tb miniTB, want, got any) {
	tb.Helper()
	Equalf(tb, want, got, "")
}

func Equalf(tb miniTB, want, got any, msgFormat string, args ...any) {
	tb.Helper()
	if got != want {
		fatal(tb, fmt.Sprintf("got %v; want %v", got, want), msgFormat, args)
	}
}

// DeepEqual asserts that want and got are equal per [reflect.DeepEqual].
func DeepEqual(tb miniTB, want, got any) {
	tb.Helper()
	DeepEqualf(tb, want, got, "")
}

func DeepEqualf(tb miniTB, want, got any, msgFormat string, args ...any) {
	tb.Helper()
	if !reflect.DeepEqual(got, want) {
		fatal(tb, fmt.Sprintf("got %+v; want %+v", got, want), msgFormat, args)
	}
}

// Diff asserts that want and got have no [cmp.Diff] difference.
// Options are passed through to cmp, e.g. cmpopts.IgnoreFields.
func Diff(tb miniTB, want, got any, opts ...cmp.Option) {
	tb.Helper()
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		tb.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

// ErrorMatches asserts that err is non-nil and its message matches the
// regular expression pattern.
func ErrorMatches(tb miniTB, pattern string, err error) {
	tb.Helper()
	if err == nil {
		tb.Fatalf("got nil; want error matching %q", pattern)
		return
	}
	if matched, valid := match(tb, pattern, err.Error(), "", nil); valid && !matched {
		tb.Fatalf("error %q does not match %q", err.Error(), pattern)
	}
}

// ErrorIs asserts that errors.Is(got, want).
func ErrorIs(tb miniTB, got, want error) {
	tb.Helper()
	if !errors.Is(got, want) {
		tb.Fatalf("got %#v; want %#v", got, want)
	}
}

// errorAs calls [errors.As], turning a panic over a bad target into an
// error.
func errorAs(err error, target any) (ok bool, panicErr error) {
	defer func() {
		if r := recover(); r != nil {
			ok, panicErr = false, fmt.Errorf("panic: %v", r)
		}
	}()
	return errors.As(err, target), nil
}

// ErrorAs asserts that errors.As(err, target) succeeds.
func ErrorAs(tb miniTB, err error, target any) {
	tb.Helper()
	ok, panicErr := errorAs(err, target)
	switch {
	case panicErr != nil:
		tb.Fatalf("%s", panicErr)
	case !ok:
		tb.Fatalf("got %#v; want %s", err, reflect.TypeOf(target).Elem())
	}
}

// NoError asserts that err is nil.
func NoError(tb miniTB, err error) {
	tb.Helper()
	NoErrorf(tb, err, "")
}

func NoErrorf(tb miniTB, err error, msgFormat string, args ...any) {
	tb.Helper()
	if err != nil {
		fatal(tb, fmt.Sprintf("unexpected error: %v", err), msgFormat, args)
	}
}

// IsNil asserts that v is nil or a nil value of a nillable kind.
func IsNil(tb miniTB, v any) {
	tb.Helper()
	IsNilf(tb, v, "")
}

func IsNilf(tb miniTB, v any, msgFormat string, args ...any) {
	tb.Helper()
	if !isNil(v) {
		fatal(tb, fmt.Sprintf("got non-nil (type %T): %#v", v, v), msgFormat, args)
	}
}

// NotNilf asserts that v is not nil.
func NotNilf(tb miniTB, v any, msgFormat string, args ...any) {
	tb.Helper()
	if isNil(v) {
		fatal(tb, "got nil; want non-nil", msgFormat, args)
	}
}

func True(tb miniTB, got bool) {
	tb.Helper()
	Truef(tb, got, "")
}

func Truef(tb miniTB, got bool, msgFormat string, args ...any) {
	tb.Helper()
	if !got {
		fatal(tb, "got false; want true", msgFormat, args)
	}
}

func False(tb miniTB, got bool) {
	tb.Helper()
	Falsef(tb, got, "")
}

func Falsef(tb miniTB, got bool, msgFormat string, args ...any) {
	tb.Helper()
	if got {
		fatal(tb, "got true; want false", msgFormat, args)
	}
}

// PanicMatchesf asserts that f panics with a value whose message matches
// pattern.
func PanicMatchesf(tb miniTB, pattern string, f func(), msgFormat string, args ...any) {
	tb.Helper()
	recovered := func() (r any) {
		defer func() { r = recover() }()
		f()
		return nil
	}()
	if recovered == nil {
		fatal(tb, fmt.Sprintf("function did not panic; want panic matching %q", pattern), msgFormat, args)
		return
	}
	var msg string
	switch x := recovered.(type) {
	case error:
		msg = x.Error()
	case string:
		msg = x
	default:
		msg = fmt.Sprint(x)
	}
	if matched, valid := match(tb, pattern, msg, msgFormat, args); valid && !matched {
		fatal(tb, fmt.Sprintf("panic %q does not match %q", msg, pattern), msgFormat, args)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Pointer, reflect.Slice, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Error types for YAML emitting.

package libyaml

import (
	"fmt"
)

// EmitterError reports an event stream the emitter cannot render, such as
// an out-of-order event or an unsupported %YAML directive.
type EmitterError struct {
	Message string
}

func (e EmitterError) Error() string {
	return fmt.Sprintf("yaml: %s", e.Message)
}

// WriterError reports a failure of the output target.
type WriterError struct {
	Err error
}

func (e WriterError) Error() string {
	return fmt.Sprintf("yaml: %s", e.Err)
}

func (e WriterError) Unwrap() error {
	return e.Err
}

// err returns the error recorded on the emitter, or nil.
func (emitter *Emitter) err() error {
	switch emitter.ErrorType {
	case WRITER_ERROR:
		return WriterError{Err: emitter.writeErr}
	case EMITTER_ERROR:
		return EmitterError{Message: emitter.Problem}
	}
	return nil
}

// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Output buffer management for the emitter.

package libyaml

// setWriterError records err as the emitter's failure and returns it wrapped
// in a WriterError.
func (emitter *Emitter) setWriterError(err error) error {
	emitter.ErrorType = WRITER_ERROR
	emitter.Problem = err.Error()
	emitter.writeErr = err
	return emitter.err()
}

// flush hands the pending output to the write handler.
func (emitter *Emitter) flush() error {
	if emitter.writeHandler == nil {
		panic("write handler not set")
	}
	if emitter.bufferPos == 0 {
		return nil
	}
	if err := emitter.writeHandler(emitter, emitter.buffer[:emitter.bufferPos]); err != nil {
		return emitter.setWriterError(err)
	}
	emitter.bufferPos = 0
	return nil
}

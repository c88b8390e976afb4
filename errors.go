// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Error types returned by the serializer and the representer.

package emit

import (
	"fmt"
)

// ProtocolError reports a Serializer used out of sequence, such as
// Serialize before Open.
type ProtocolError struct {
	Problem string
}

func (e *ProtocolError) Error() string {
	return "yaml: serializer is " + e.Problem
}

// EmissionError reports an event the sink rejected or failed to write.
// The output produced so far for the current document is unusable.
type EmissionError struct {
	// Event names the rejected event, e.g. "scalar".
	Event string
	Err   error
}

func (e *EmissionError) Error() string {
	return e.Err.Error()
}

func (e *EmissionError) Unwrap() error {
	return e.Err
}

// RepresentationError reports a Go value that cannot be converted into a
// node.
type RepresentationError struct {
	Type    string
	Problem string
}

func (e *RepresentationError) Error() string {
	if e.Type == "" {
		return "yaml: cannot represent value: " + e.Problem
	}
	return fmt.Sprintf("yaml: cannot represent %s: %s", e.Type, e.Problem)
}

// NodeError reports a node tree the serializer cannot walk, such as a
// mapping with an odd number of children.
type NodeError struct {
	Problem string
}

func (e *NodeError) Error() string {
	return "yaml: invalid node: " + e.Problem
}

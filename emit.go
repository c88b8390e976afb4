// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package emit renders trees of YAML nodes as YAML text.
//
// A [Serializer] walks a [Node] tree depth-first and feeds the resulting
// events (stream start, document start, scalars, collection starts and
// ends) to an [EventSink], which does the character level work: escaping,
// folding, indentation and line breaks. The serializer enforces the usage
// protocol
//
//	Open -> Serialize* -> Close
//
// and resolves tags, styles and key order from [Options].
//
// For one-shot use, [Serialize] and [SerializeAll] run the whole protocol
// against an in-memory buffer, and [Dump] converts Go values into nodes
// through [Represent] first:
//
//	out, err := emit.Dump(map[string]any{"name": "Yams"}, emit.WithExplicitStart(true))
//
// This file contains:
// - The Serialize/SerializeAll convenience API
// - The Dump/DumpAll convenience API
package emit

import (
	"github.com/pkg/errors"
)

// Serialize renders node as a single YAML document.
func Serialize(node *Node, opts ...Option) (string, error) {
	return SerializeAll([]*Node{node}, opts...)
}

// SerializeAll renders each node as its own document in one YAML stream.
//
// An empty slice produces an empty stream.
func SerializeAll(nodes []*Node, opts ...Option) (string, error) {
	s, err := NewSerializer(opts...)
	if err != nil {
		return "", err
	}
	if err := s.Open(); err != nil {
		return "", err
	}
	for _, node := range nodes {
		if err := s.Serialize(node); err != nil {
			return "", err
		}
	}
	if err := s.Close(); err != nil {
		return "", err
	}
	return s.String(), nil
}

// Dump represents v as a node tree and renders it as a single YAML
// document.
func Dump(v any, opts ...Option) ([]byte, error) {
	return DumpAll([]any{v}, opts...)
}

// DumpAll renders each value of vs as its own document.
func DumpAll(vs []any, opts ...Option) ([]byte, error) {
	o, err := ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	nodes := make([]*Node, 0, len(vs))
	for i, v := range vs {
		node, err := represent(v, &o)
		if err != nil {
			return nil, errors.Wrapf(err, "document %d", i)
		}
		nodes = append(nodes, node)
	}
	s, err := NewSerializer(withOptions(o))
	if err != nil {
		return nil, err
	}
	if err := s.Open(); err != nil {
		return nil, err
	}
	for _, node := range nodes {
		if err := s.Serialize(node); err != nil {
			return nil, err
		}
	}
	if err := s.Close(); err != nil {
		return nil, err
	}
	return s.Bytes(), nil
}

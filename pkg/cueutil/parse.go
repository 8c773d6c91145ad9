// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing helpers.
//
// Both the toolkit manifest and the application config are CUE files
// validated against an embedded schema. The flow is always the same:
//
//  1. Compile the embedded schema
//  2. Compile the user file and unify it with the schema definition
//  3. Validate and decode into a Go struct
//
// Decode consolidates that flow so callers only supply the schema, the
// data, and the schema root path (e.g. "#Hatkfile").
package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize caps input files at 5 MiB. Manifests and config files
// are hand-written; anything larger is a mistake, not a manifest.
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

// Options configures a Decode call.
type Options struct {
	// Filename is used in error messages. Defaults to "<input>".
	Filename string
	// MaxFileSize rejects oversized inputs. Defaults to DefaultMaxFileSize.
	MaxFileSize int64
}

// Option mutates Options.
type Option func(*Options)

// WithFilename sets the filename reported in parse errors.
func WithFilename(name string) Option {
	return func(o *Options) { o.Filename = name }
}

// WithMaxFileSize overrides the input size cap.
func WithMaxFileSize(n int64) Option {
	return func(o *Options) { o.MaxFileSize = n }
}

// Result holds the outcome of a successful Decode.
type Result[T any] struct {
	// Value is the decoded Go struct.
	Value *T
	// Unified is the schema-unified CUE value, kept for callers that need
	// to inspect fields the Go struct does not carry.
	Unified cue.Value
}

// Decode parses data against the given schema and decodes it into T.
// schemaPath names the root definition inside the schema, e.g. "#Config".
func Decode[T any](schema, data []byte, schemaPath string, opts ...Option) (*Result[T], error) {
	options := Options{MaxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(&options)
	}
	filename := options.Filename
	if filename == "" {
		filename = "<input>"
	}

	if int64(len(data)) > options.MaxFileSize {
		return nil, fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), options.MaxFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &Result[T]{Value: &result, Unified: unified}, nil
}

// DecodeString is Decode with the schema passed as a string constant.
func DecodeString[T any](schema string, data []byte, schemaPath string, opts ...Option) (*Result[T], error) {
	return Decode[T]([]byte(schema), data, schemaPath, opts...)
}

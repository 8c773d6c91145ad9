// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error handling: actionable errors that
// carry operation/resource context plus fix suggestions, and a rendered
// catalog of the known fatal conditions.
package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is an error with context for operator-facing messages:
	// what was attempted, on which resource, and how to fix it.
	//
	// Use the Context builder:
	//
	//	err := issue.NewContext().
	//		WithOperation("load manifest").
	//		WithResource("./hatkfile.cue").
	//		WithSuggestion("Run 'hatk init' to create one").
	//		Wrap(parseErr).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase, e.g. "load manifest".
		Operation string
		// Resource is the file, path or entity involved (optional).
		Resource string
		// Suggestions are fix hints shown under the message (optional).
		Suggestions []string
		// Cause is the underlying error (optional).
		Cause error
	}

	// Context is a fluent builder for ActionableError.
	Context struct {
		operation   string
		resource    string
		suggestions []string
		cause       error
	}
)

// NewContext creates a new builder.
func NewContext() *Context {
	return &Context{}
}

// Wrap is a shorthand for wrapping err with operation context only.
func Wrap(err error, operation string) error {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Cause: err}
}

// Error implements the error interface with the concise form used in
// non-verbose output.
func (e *ActionableError) Error() string {
	var msg strings.Builder

	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)
	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

// Unwrap returns the cause for errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the error with its suggestions. Verbose output appends the
// numbered error chain.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder
	msg.WriteString(e.Error())

	for _, s := range e.Suggestions {
		msg.WriteString("\n  • ")
		msg.WriteString(s)
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		err := e.Cause
		for depth := 1; err != nil; depth++ {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			err = errors.Unwrap(err)
		}
	}
	return msg.String()
}

// WithOperation sets the operation (a verb phrase).
func (c *Context) WithOperation(op string) *Context {
	c.operation = op
	return c
}

// WithResource sets the resource involved.
func (c *Context) WithResource(res string) *Context {
	c.resource = res
	return c
}

// WithSuggestion appends a fix suggestion.
func (c *Context) WithSuggestion(s string) *Context {
	c.suggestions = append(c.suggestions, s)
	return c
}

// Wrap records the underlying cause.
func (c *Context) Wrap(err error) *Context {
	c.cause = err
	return c
}

// Build creates the ActionableError. Returns nil when no operation is set;
// the operation is what makes the message readable.
func (c *Context) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Cause:       c.cause,
	}
}

// BuildError is Build returned as the error interface, for use directly in
// return statements.
func (c *Context) BuildError() error {
	ae := c.Build()
	if ae == nil {
		return nil
	}
	return ae
}

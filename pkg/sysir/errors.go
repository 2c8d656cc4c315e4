package sysir

import "fmt"

// AssemblyError is the single error kind the pipeline raises: assembly
// failure, for any shape error, terminator error, type error, or
// unknown-primitive error encountered while building or verifying a
// Module. There is no recovery; the caller of Assemble/Verify/Lower
// receives the first failure and abandons the partial module.
type AssemblyError struct {
	Stage   string // "parse", "resolve", "verify", "lower"
	Message string
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("sysir: %s: %s", e.Stage, e.Message)
}

func newError(stage, format string, args ...any) *AssemblyError {
	return &AssemblyError{Stage: stage, Message: fmt.Sprintf(format, args...)}
}

// NewAssemblyError builds an *AssemblyError for front-ends outside this
// package (sysasm's lexer/parser, clower's lowering) that need to
// report the same single error kind described in spec.md §7.
func NewAssemblyError(stage, format string, args ...any) *AssemblyError {
	return newError(stage, format, args...)
}

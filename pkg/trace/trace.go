// Package trace formats runtime errors and stack traces by resolving
// call-stack addresses through pkg/debuginfo, the way a VM's
// diagnostics layer would if this repo executed bytecode. Since it
// doesn't, callers supply the call stack directly as a list of
// addresses instead of having it captured from live VM frames.
package trace

import (
	"fmt"
	"strings"

	"github.com/arclang/arcvm/pkg/debuginfo"
)

// FrameInfo captures one call frame's resolved source position.
type FrameInfo struct {
	Function string
	Source   string
	Line     int64
	Column   int32
}

// RuntimeError carries source/stack information for a reported failure.
type RuntimeError struct {
	Message string
	Frame   FrameInfo
	Stack   []FrameInfo
	Cause   error

	// DebuggerAttached records whether a debugger was attached at the
	// time the error was produced, set by TagDebuggerState.
	DebuggerAttached bool
}

func (e *RuntimeError) Error() string {
	var loc []string
	if e.Frame.Source != "" {
		if e.Frame.Line > 0 {
			loc = append(loc, fmt.Sprintf("%s:%d", e.Frame.Source, e.Frame.Line))
		} else {
			loc = append(loc, e.Frame.Source)
		}
	} else if e.Frame.Line > 0 {
		loc = append(loc, fmt.Sprintf("line %d", e.Frame.Line))
	}
	if e.Frame.Function != "" {
		loc = append(loc, fmt.Sprintf("in %s", e.Frame.Function))
	}
	if joined := strings.Join(loc, " "); joined != "" {
		return fmt.Sprintf("%s: %s", joined, e.Message)
	}
	return e.Message
}

// Unwrap exposes the original error, if any.
func (e *RuntimeError) Unwrap() error {
	return e.Cause
}

// StackFrame is one entry of a caller-supplied call stack: the function
// name to report, its debug-info header offset, and the address within
// that function the frame was at when the stack was captured.
type StackFrame struct {
	Function         string
	DebugOffset      uint32
	OffsetInFunction uint32
}

// NewRuntimeError resolves every frame in stack through info and
// returns a RuntimeError whose Frame is stack's innermost entry.
func NewRuntimeError(info *debuginfo.DebugInfo, message string, stack []StackFrame, cause error) *RuntimeError {
	resolved := StackTrace(info, stack)
	var frame FrameInfo
	if len(resolved) > 0 {
		frame = resolved[0]
	}
	return &RuntimeError{
		Message: message,
		Frame:   frame,
		Stack:   resolved,
		Cause:   cause,
	}
}

// StackTrace resolves each StackFrame in stack (innermost first) into a
// FrameInfo via info's address→location query.
func StackTrace(info *debuginfo.DebugInfo, stack []StackFrame) []FrameInfo {
	if len(stack) == 0 {
		return nil
	}
	trace := make([]FrameInfo, 0, len(stack))
	for _, sf := range stack {
		trace = append(trace, resolveFrame(info, sf))
	}
	return trace
}

// PauseOnThrowMode mirrors the host debugger's throw-pausing policy.
type PauseOnThrowMode int

const (
	PauseOnThrowNone PauseOnThrowMode = iota
	PauseOnThrowUncaught
	PauseOnThrowAll
)

// DebuggerState is the minimal, read-only view of the host debugger's
// attachment and throw-pausing state that error reporting tags errors
// with. It holds no behavior of its own — the real debugger backing it
// lives outside this package.
type DebuggerState struct {
	attached bool
	mode     PauseOnThrowMode
}

// NewDebuggerState returns a DebuggerState snapshot.
func NewDebuggerState(attached bool, mode PauseOnThrowMode) *DebuggerState {
	return &DebuggerState{attached: attached, mode: mode}
}

// IsAttached reports whether a debugger is currently attached.
func (s *DebuggerState) IsAttached() bool {
	return s != nil && s.attached
}

// ShouldPauseOnThrow reports whether the attached debugger's
// pause-on-throw mode is anything other than PauseOnThrowNone.
func (s *DebuggerState) ShouldPauseOnThrow() bool {
	return s != nil && s.mode != PauseOnThrowNone
}

// TagDebuggerState records whether a debugger was attached when err was
// produced.
func TagDebuggerState(err *RuntimeError, state *DebuggerState) {
	err.DebuggerAttached = state.IsAttached()
}

func resolveFrame(info *debuginfo.DebugInfo, sf StackFrame) FrameInfo {
	loc, ok := info.GetLocationForAddress(sf.DebugOffset, sf.OffsetInFunction)
	if !ok {
		return FrameInfo{Function: sf.Function}
	}
	source, _ := info.LookupFilename(loc.FilenameID)
	return FrameInfo{
		Function: sf.Function,
		Source:   source,
		Line:     loc.Line,
		Column:   loc.Column,
	}
}

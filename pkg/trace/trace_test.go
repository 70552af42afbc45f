package trace

import (
	"errors"
	"testing"

	"github.com/arclang/arcvm/pkg/debuginfo"
	"github.com/arclang/arcvm/pkg/strtab"
)

func buildInfo(t *testing.T) (*debuginfo.DebugInfo, uint32) {
	t.Helper()
	filenames := strtab.New()
	fileID := filenames.Intern("app.arc")
	g := debuginfo.NewGenerator(filenames)
	start := debuginfo.SourceLocation{Address: 0, Line: 4, Column: 1, Statement: 0, FilenameID: fileID}
	rest := []debuginfo.SourceLocation{
		{Address: 1, Line: 5, Column: 3, Statement: 1, FilenameID: fileID},
	}
	offset := g.AppendSourceLocations(start, 0, rest)
	return g.SerializeWithMove(), offset
}

func TestStackTraceResolvesFrames(t *testing.T) {
	info, offset := buildInfo(t)
	stack := []StackFrame{
		{Function: "inner", DebugOffset: offset, OffsetInFunction: 1},
		{Function: "outer", DebugOffset: offset, OffsetInFunction: 0},
	}
	frames := StackTrace(info, stack)
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[0].Function != "inner" || frames[0].Line != 5 {
		t.Fatalf("unexpected innermost frame: %+v", frames[0])
	}
	if frames[1].Function != "outer" || frames[1].Line != 4 {
		t.Fatalf("unexpected outer frame: %+v", frames[1])
	}
	if frames[0].Source != "app.arc" {
		t.Fatalf("expected resolved source app.arc, got %q", frames[0].Source)
	}
}

func TestNewRuntimeErrorFormatsLocation(t *testing.T) {
	info, offset := buildInfo(t)
	stack := []StackFrame{{Function: "inner", DebugOffset: offset, OffsetInFunction: 1}}
	err := NewRuntimeError(info, "boom", stack, errors.New("cause"))
	want := "app.arc:5 in inner: boom"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	if errors.Unwrap(err).Error() != "cause" {
		t.Fatalf("expected unwrap to surface cause")
	}
}

func TestStackTraceEmptyStack(t *testing.T) {
	info, _ := buildInfo(t)
	if frames := StackTrace(info, nil); frames != nil {
		t.Fatalf("expected nil for empty stack, got %v", frames)
	}
}

func TestRuntimeErrorWithoutLocation(t *testing.T) {
	err := &RuntimeError{Message: "bare"}
	if err.Error() != "bare" {
		t.Fatalf("Error() = %q, want %q", err.Error(), "bare")
	}
}

func TestDebuggerStateAccessors(t *testing.T) {
	attached := NewDebuggerState(true, PauseOnThrowUncaught)
	if !attached.IsAttached() || !attached.ShouldPauseOnThrow() {
		t.Fatalf("expected attached debugger with pause-on-throw enabled")
	}

	detached := NewDebuggerState(false, PauseOnThrowNone)
	if detached.IsAttached() || detached.ShouldPauseOnThrow() {
		t.Fatalf("expected detached debugger with pause-on-throw disabled")
	}

	var nilState *DebuggerState
	if nilState.IsAttached() || nilState.ShouldPauseOnThrow() {
		t.Fatalf("expected nil DebuggerState to report false for both accessors")
	}
}

func TestTagDebuggerState(t *testing.T) {
	err := &RuntimeError{Message: "boom"}
	TagDebuggerState(err, NewDebuggerState(true, PauseOnThrowAll))
	if !err.DebuggerAttached {
		t.Fatalf("expected DebuggerAttached to be tagged true")
	}
}

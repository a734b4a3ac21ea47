package stacktrace

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/thoas/go-funk"
)

// Stacktrace holds our stacktrace information
type Stacktrace struct {
	Frames []Frame
}

// Frame is a single frame in a stacktrace
type Frame struct {
	// Func contains a function name.
	Func string
	// Path contains a file path.
	Path string
	// Line contains a line number.
	Line int
}

// String returns a string representation of the stacktrace
func (t *Stacktrace) String() string {
	result := []string{}
	for _, frame := range t.Frames {
		result = append(result, fmt.Sprintf("%s:%d:%s", frame.Path, frame.Line, frame.Func))
	}
	return strings.Join(result, "\n")
}

// Get returns a stacktrace for the calling frames, excluding this package itself
func Get() *Stacktrace {
	return GetWithSkip(nil)
}

// GetWithSkip returns a stacktrace that skips the given files on top of the frames belonging to this package
func GetWithSkip(skipFiles []string) *Stacktrace {
	stacktrace := &Stacktrace{}
	pc := make([]uintptr, 100)
	n := runtime.Callers(0, pc)
	if n == 0 {
		return stacktrace
	}

	pc = pc[:n]
	frames := runtime.CallersFrames(pc)

	skipFiles = append(skipFiles, pcFile())
	for {
		frame, more := frames.Next()
		if !more {
			break
		}
		if funk.Contains(skipFiles, frame.File) {
			continue
		}
		stacktrace.Frames = append(stacktrace.Frames, Frame{
			Func: frame.Function,
			Path: frame.File,
			Line: frame.Line,
		})
	}

	return stacktrace
}

func pcFile() string {
	pc := make([]uintptr, 1)
	n := runtime.Callers(1, pc)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pc[:n])
	frame, _ := frames.Next()
	return frame.File
}

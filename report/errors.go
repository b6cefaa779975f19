package report

import "fmt"

// Enumeration of the compilation phases that can produce a compile error.
const (
	ErrLex = iota
	ErrParse
	ErrCheck
	ErrGenerate
)

var errKindNames = map[int]string{
	ErrLex:      "token",
	ErrParse:    "syntax",
	ErrCheck:    "name",
	ErrGenerate: "internal",
}

// CompileError is an error produced by one of the compilation phases.  The
// position is optional: errors which cannot be attributed to a specific
// location in the source text leave it nil.
type CompileError struct {
	// The phase which produced the error.  This must be one of the enumerated
	// error kinds above.
	Kind int

	// The error message.
	Message string

	// The position at which the error occurs.
	Position *TextPosition
}

func (ce *CompileError) Error() string {
	if ce.Position == nil {
		return ce.Message
	}

	return fmt.Sprintf("%s: %s", ce.Position, ce.Message)
}

// KindName returns the human-readable name of the error's kind.
func (ce *CompileError) KindName() string {
	return errKindNames[ce.Kind]
}

// Raise creates a new compile error of the given kind.
func Raise(kind int, pos *TextPosition, msg string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Position: pos}
}

// -----------------------------------------------------------------------------

// CatchErrors catches any compile errors thrown by a `panic` during a phase of
// compilation and stores them in the error pointed to by `err`.  Any other
// panic continues to unwind.
// NB: This function must ALWAYS be deferred.
func CatchErrors(err *error) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*CompileError); ok {
			*err = cerr
		} else {
			panic(x)
		}
	}
}

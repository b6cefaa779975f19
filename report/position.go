package report

import "fmt"

// TextPosition represents the position of a token or node in the source text.
// Both the line and the column are 1-indexed: the first character of the file
// is at line 1, column 1.
type TextPosition struct {
	Line, Col int
}

func (tp TextPosition) String() string {
	return fmt.Sprintf("%d:%d", tp.Line, tp.Col)
}

package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgLightCyan
	InfoStyleBG    = pterm.NewStyle(pterm.BgLightCyan, pterm.FgBlack)
)

// tabWidth is the number of spaces a tab is expanded to in code selections.
const tabWidth = 4

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	fmt.Fprintln(rep.out, ErrorStyleBG.Sprint("internal compiler error")+" "+ErrorColorFG.Sprint(message))
	fmt.Fprint(rep.out, "This error was not supposed to happen: the generator met an unchecked AST.\n\n")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	fmt.Fprintln(rep.out, ErrorStyleBG.Sprint("fatal error")+" "+ErrorColorFG.Sprint(message))
	fmt.Fprintln(rep.out)
}

// displayStdError displays a standard Go error.
func displayStdError(path string, err error) {
	fmt.Fprintf(rep.out, "%s: %s\n\n", path, ErrorColorFG.Sprint("error: "+err.Error()))
}

// displayInfo displays a tagged informational message.
func displayInfo(tag, message string) {
	fmt.Fprintln(rep.out, InfoStyleBG.Sprint(tag)+" "+InfoColorFG.Sprint(message))
}

// displayCompileMessage displays a compilation error or warning.  The kind is
// the category of the message: eg. "syntax" for a parse error.
func displayCompileMessage(isErr bool, kind, path, src string, pos *TextPosition, message string) {
	var banner string
	if isErr {
		banner = ErrorStyleBG.Sprint(kind + " error")
	} else {
		banner = WarnStyleBG.Sprint(kind + " warning")
	}

	if pos == nil {
		fmt.Fprintf(rep.out, "%s: %s %s\n\n", path, banner, message)
		return
	}

	fmt.Fprintf(rep.out, "%s:%d:%d: %s %s\n", path, pos.Line, pos.Col, banner, message)
	fmt.Fprint(rep.out, codeSelection(src, pos, isErr))
	fmt.Fprintln(rep.out)
}

// displayCompilationFinished displays the closing summary of a run.
func displayCompilationFinished(success bool, units, errs, warns int, elapsed time.Duration) {
	summary := fmt.Sprintf(
		"%d file(s), %d error(s), %d warning(s) in %s",
		units, errs, warns, elapsed.Round(time.Millisecond),
	)

	if success {
		fmt.Fprintln(rep.out, SuccessStyleBG.Sprint("done")+" "+SuccessColorFG.Sprint(summary))
	} else {
		fmt.Fprintln(rep.out, ErrorStyleBG.Sprint("failed")+" "+ErrorColorFG.Sprint(summary))
	}
}

// -----------------------------------------------------------------------------

// codeSelection renders the source line containing pos (and the line before
// it, if there is one) with line numbers and a caret under the column.  The
// position is clamped to the source text so a bad position never panics.
func codeSelection(src string, pos *TextPosition, isErr bool) string {
	lines := strings.Split(strings.TrimSuffix(src, "\n"), "\n")

	line := pos.Line
	if line < 1 {
		line = 1
	} else if line > len(lines) {
		line = len(lines)
	}

	first := line - 1
	if first < 1 {
		first = 1
	}

	lineNumWidth := len(strconv.Itoa(line))
	lineNumFmt := "%" + strconv.Itoa(lineNumWidth) + "d | "

	sb := &strings.Builder{}
	for ln := first; ln <= line; ln++ {
		fmt.Fprintf(sb, lineNumFmt, ln)
		sb.WriteString(expandTabs(lines[ln-1]))
		sb.WriteRune('\n')
	}

	// The caret sits under the expanded width of everything before the column.
	target := []rune(lines[line-1])
	col := pos.Col
	if col < 1 {
		col = 1
	} else if col > len(target)+1 {
		col = len(target) + 1
	}
	caretOffset := len([]rune(expandTabs(string(target[:col-1]))))

	caret := "^"
	if isErr {
		caret = ErrorColorFG.Sprint(caret)
	} else {
		caret = WarnColorFG.Sprint(caret)
	}

	sb.WriteString(strings.Repeat(" ", lineNumWidth))
	sb.WriteString(" | ")
	sb.WriteString(strings.Repeat(" ", caretOffset))
	sb.WriteString(caret)
	sb.WriteRune('\n')

	return sb.String()
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

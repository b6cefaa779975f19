package report

import (
	"errors"
	"fmt"
	"time"
)

// -----------------------------------------------------------------------------
// NOTE: All report functions will only display if the appropriate log level is
// set.  Errors are always counted, even when they are not displayed.

// ReportCompileError reports a compilation error: ie. erroneous input code.
// The path is the display path of the erroneous unit and src is its source
// text, used to show the offending line.  Errors of kind ErrGenerate are
// displayed as internal compiler errors.
func ReportCompileError(path, src string, cerr *CompileError) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		if cerr.Kind == ErrGenerate {
			displayICE(fmt.Sprintf("%s: %s", path, cerr.Message))
		} else {
			displayCompileMessage(true, cerr.KindName(), path, src, cerr.Position, cerr.Message)
		}
	}
}

// ReportCompileWarning reports a compilation warning.  The arguments are of
// the same form as those to ReportCompileError.
func ReportCompileWarning(path, src string, pos *TextPosition, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.warnCount++

	if rep.logLevel >= LogLevelWarn {
		displayCompileMessage(false, "dispatch", path, src, pos, fmt.Sprintf(message, args...))
	}
}

// ReportError reports any error produced while compiling a unit.  Compile
// errors are displayed with their source text; all other errors are displayed
// as standard errors.
func ReportError(path, src string, err error) {
	var cerr *CompileError
	if errors.As(err, &cerr) {
		ReportCompileError(path, src, cerr)
	} else {
		ReportStdError(path, err)
	}
}

// ReportStdError reports a non-fatal, standard Go error.
func ReportStdError(path string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel >= LogLevelError {
		displayStdError(path, err)
	}
}

// ReportFatal reports an error that prevents any compilation from happening:
// eg. an invalid project file.  The caller is responsible for stopping.
func ReportFatal(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayFatal(fmt.Sprintf(message, args...))
	}
}

// -----------------------------------------------------------------------------
// Below are the "aesthetic" reporting functions that only run if the log level
// is verbose.

// ReportInfo displays an informational message with a tag.
func ReportInfo(tag, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayInfo(tag, fmt.Sprintf(message, args...))
	}
}

// ReportCompilationFinished displays the concluding message for a run that
// compiled `units` source files.
func ReportCompilationFinished(units int) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayCompilationFinished(rep.errorCount == 0, units, rep.errorCount, rep.warnCount, time.Since(rep.startTime))
	}
}

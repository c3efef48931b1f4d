package typesystem

import "fmt"

// buildError is the panic payload used to unwind out of the recursive
// class/enum builders on the first unrecoverable problem. Unlike the
// schema package, there is no enclosing-element breadcrumb to carry:
// the message names the schema type being built directly.
type buildError struct {
	message string
}

func (e *buildError) Error() string { return "typesystem: " + e.message }

func stop(msg string) {
	panic(&buildError{message: msg})
}

func stopf(format string, args ...interface{}) {
	panic(&buildError{message: fmt.Sprintf(format, args...)})
}

// catchBuildError recovers a buildError panic into *err, letting every
// other panic value propagate (a programmer error should crash loudly,
// not be swallowed as a build failure).
func catchBuildError(err *error) {
	switch r := recover().(type) {
	case nil:
		return
	case *buildError:
		*err = r
	default:
		panic(r)
	}
}

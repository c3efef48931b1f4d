package schema

import (
	"fmt"
	"strings"

	"github.com/dlr-sc/cpacsgen/internal/xmltree"
)

// When working with an xml tree structure, we naturally have some
// pretty deep function calls. To save some typing, we use panic/recover
// to bubble parse errors up while recording the path of enclosing
// elements they occurred under. These panics never escape Parse.
type parseError struct {
	message string
	path    []*xmltree.Element
}

func (err parseError) Error() string {
	breadcrumbs := make([]string, 0, len(err.path))
	for i := len(err.path) - 1; i >= 0; i-- {
		piece := err.path[i].Name.Local
		if name := err.path[i].Attr("", "name"); name != "" {
			piece = fmt.Sprintf("%s(%s)", piece, name)
		}
		breadcrumbs = append(breadcrumbs, piece)
	}
	return "schema: " + strings.Join(breadcrumbs, ">") + ": " + err.message
}

func stop(msg string) {
	panic(parseError{message: msg})
}

func stopf(format string, args ...interface{}) {
	panic(parseError{message: fmt.Sprintf(format, args...)})
}

// breadcrumb is deferred at the top of every recursive parse function
// taking an *xmltree.Element, appending that element to a propagating
// parseError's path as the panic unwinds the call stack.
func breadcrumb(el *xmltree.Element) {
	if r := recover(); r != nil {
		if err, ok := r.(parseError); ok {
			err.path = append(err.path, el)
			panic(err)
		}
		panic(r)
	}
}

// catchParseError recovers a propagating parseError into *err. It does
// not recover any other kind of panic.
//
//	defer catchParseError(&err)
func catchParseError(err *error) {
	if r := recover(); r != nil {
		pe, ok := r.(parseError)
		if !ok {
			panic(r)
		}
		*err = pe
	}
}

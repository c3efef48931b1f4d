// Package tables loads the user-curated side-tables that steer code
// generation: type-name substitutions, custom-type overrides, the
// fundamental-type mapping, the parent-pointer set, the prune list and
// the reserved-identifier set.
package tables

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	customTypesFile      = "CustomTypes.txt"
	fundamentalTypesFile = "FundamentalTypes.txt"
	typeSubstitutionFile = "TypeSubstitution.txt"
	parentPointerFile    = "ParentPointer.txt"
	reservedNamesFile    = "ReservedNames.txt"
	pruneListFile        = "PruneList.txt"
)

// Tables holds the six side-tables, loaded once and treated as
// immutable for the rest of the run. It is a plain value passed
// explicitly to every later stage, never a package-level global.
type Tables struct {
	CustomTypes      map[string]string
	FundamentalTypes map[string]string
	TypeSubstitution map[string]string
	ParentPointer    map[string]bool
	ReservedNames    map[string]bool
	PruneList        map[string]bool
}

// Load reads the six fixed-basename files from dir. A missing file is
// fatal, as is any malformed line; all errors found while loading are
// collected and returned together so a user sees every problem in one
// pass instead of fixing files one at a time.
func Load(dir string) (*Tables, error) {
	t := &Tables{
		CustomTypes:      make(map[string]string),
		FundamentalTypes: make(map[string]string),
		TypeSubstitution: make(map[string]string),
		ParentPointer:    make(map[string]bool),
		ReservedNames:    make(map[string]bool),
		PruneList:        make(map[string]bool),
	}

	var errs errorList
	errs = append(errs, loadMapping(dir, customTypesFile, t.CustomTypes)...)
	errs = append(errs, loadMapping(dir, fundamentalTypesFile, t.FundamentalTypes)...)
	errs = append(errs, loadMapping(dir, typeSubstitutionFile, t.TypeSubstitution)...)
	errs = append(errs, loadSet(dir, parentPointerFile, t.ParentPointer)...)
	errs = append(errs, loadSet(dir, reservedNamesFile, t.ReservedNames)...)
	errs = append(errs, loadSet(dir, pruneListFile, t.PruneList)...)

	if len(errs) > 0 {
		return nil, errs
	}
	return t, nil
}

// SubstitutionFor performs an exact lookup in TypeSubstitution, returning
// the replacement and whether one was present.
func (t *Tables) SubstitutionFor(key string) (string, bool) {
	v, ok := t.TypeSubstitution[key]
	return v, ok
}

// Contains reports set membership of key in set.
func Contains(set map[string]bool, key string) bool {
	return set[key]
}

// SubstituteIfExists overwrites *value with the mapped replacement for
// key in m, if one exists.
func SubstituteIfExists(m map[string]string, key string, value *string) {
	if v, ok := m[key]; ok {
		*value = v
	}
}

type lineError struct {
	file string
	line int
	msg  string
}

func (e *lineError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.file, e.line, e.msg)
}

type errorList []error

func (errs errorList) Error() string {
	var b strings.Builder
	for i, err := range errs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// records calls fn with each non-comment, non-blank line's whitespace-
// trimmed tokens (one or two of them) and its 1-based line number.
func records(dir, name string, fn func(line int, tokens []string) error) errorList {
	path := filepath.Join(dir, name)
	f, err := os.Open(path)
	if err != nil {
		return errorList{&lineError{file: path, line: 0, msg: err.Error()}}
	}
	defer f.Close()

	var errs errorList
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "//") {
			continue
		}
		tokens := strings.Fields(text)
		if len(tokens) == 0 || len(tokens) > 2 {
			errs = append(errs, &lineError{file: path, line: lineno,
				msg: fmt.Sprintf("expected one or two tokens, got %d", len(tokens))})
			continue
		}
		if err := fn(lineno, tokens); err != nil {
			errs = append(errs, &lineError{file: path, line: lineno, msg: err.Error()})
		}
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, &lineError{file: path, line: lineno, msg: err.Error()})
	}
	return errs
}

func loadMapping(dir, name string, dst map[string]string) errorList {
	return records(dir, name, func(line int, tokens []string) error {
		if len(tokens) != 2 {
			return fmt.Errorf("mapping file requires key and value, got %q", strings.Join(tokens, " "))
		}
		dst[tokens[0]] = tokens[1]
		return nil
	})
}

func loadSet(dir, name string, dst map[string]bool) errorList {
	return records(dir, name, func(line int, tokens []string) error {
		if len(tokens) != 1 {
			return fmt.Errorf("set file requires a single token, got %q", strings.Join(tokens, " "))
		}
		dst[tokens[0]] = true
		return nil
	})
}

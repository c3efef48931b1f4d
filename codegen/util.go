package codegen

import "sort"

// sortStrings sorts names in place; broken out only so codegen.go reads
// as a plain orchestration loop rather than importing "sort" for one call.
func sortStrings(names []string) { sort.Strings(names) }

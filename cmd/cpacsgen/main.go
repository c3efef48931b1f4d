// Command cpacsgen generates Go types and ReadCPACS/WriteCPACS methods
// from a CPACS XSD schema plus a directory of curated side-tables.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/dlr-sc/cpacsgen/codegen"
	"github.com/dlr-sc/cpacsgen/schema"
	"github.com/dlr-sc/cpacsgen/tables"
	"github.com/dlr-sc/cpacsgen/typesystem"
)

// run mirrors droyo-go-xml's xsdgen.Generate argument handling
// (flag.NewFlagSet, positional arguments, a single combined error
// return) generalized to this generator's three required paths.
func run(arguments []string) error {
	var (
		fs       = flag.NewFlagSet("cpacsgen", flag.ContinueOnError)
		pkg      = fs.String("pkg", "cpacs", "package name of the generated Go files")
		lenient  = fs.Bool("lenient-enums", false, "case-insensitive StringToEnum matching")
		withZero = fs.Bool("default-ctor", false, "also emit a zero-argument constructor for parent-pointer classes")
	)
	if err := fs.Parse(arguments); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return errors.New("usage: cpacsgen [flags] schema.xsd tables-dir out-dir")
	}
	schemaPath, tablesDir, outDir := fs.Arg(0), fs.Arg(1), fs.Arg(2)

	types, err := schema.ParseFile(schemaPath)
	if err != nil {
		return fmt.Errorf("parsing %s: %v", schemaPath, err)
	}
	glog.V(1).Infof("parsed %d schema types from %s", len(types), schemaPath)

	tbl, err := tables.Load(tablesDir)
	if err != nil {
		return fmt.Errorf("loading tables from %s: %v", tablesDir, err)
	}

	ts, err := typesystem.BuildTypeSystem(types, tbl)
	if err != nil {
		return fmt.Errorf("building type system: %v", err)
	}
	typesystem.CollapseEnums(ts)
	typesystem.ApplyPruneList(ts, tbl)
	glog.V(1).Infof("type system: %d classes, %d enums", len(ts.Classes), len(ts.Enums))

	cfg := codegen.DefaultConfig(*pkg)
	cfg.LenientEnumParsing = *lenient
	cfg.EmitDefaultConstructor = *withZero

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %v", outDir, err)
	}
	if err := codegen.Generate(ts, tbl, outDir, cfg); err != nil {
		return fmt.Errorf("generating code: %v", err)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "cpacsgen:", err)
		os.Exit(1)
	}
}

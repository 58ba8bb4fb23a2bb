// Package main provides the CLI entrypoint for meilimap.
//
// meilimap scans Go packages for mapper contract interfaces and renders
// their implementations:
//   - Parses packages (AST + go/types) to find //meilimap:mapper marked
//     interfaces embedding mapper.Mapper[E]
//   - Reports every structural problem of a run at once
//   - Writes one <contract>_gen.go per contract, next to its declaration
//
// Usage:
//
//	meilimap [flags] [packages]
//
// With no package patterns it scans the current directory, which suits
// //go:generate lines placed next to the contracts.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"

	"meilimap/internal/codegen"
)

var (
	dryRun  bool
	verbose bool
)

func init() {
	flag.BoolVar(&dryRun, "dry", false, "scan and report without writing files")
	flag.BoolVar(&verbose, "v", false, "dump discovered contracts to stderr")
	flag.Parse()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("meilimap: ")

	pkgs, err := codegen.Load(flag.Args()...)
	if err != nil {
		log.Fatalf("loading packages: %v", err)
	}

	contracts, report := codegen.FindContracts(pkgs)
	for _, d := range report.All() {
		fmt.Fprintln(os.Stderr, d)
	}
	if report.HasErrors() {
		os.Exit(1)
	}
	if len(contracts) == 0 {
		log.Println("no mapper contracts found")
		return
	}

	if verbose {
		fmt.Fprint(os.Stderr, spew.Sdump(contracts))
	}

	gen := codegen.NewGenerator()
	files := make([]codegen.GeneratedFile, 0, len(contracts))
	for _, c := range contracts {
		file, err := gen.Generate(c)
		if err != nil {
			log.Fatalf("generating %s: %v", c.Name, err)
		}
		files = append(files, file)
	}

	if !dryRun {
		if err := codegen.WriteFiles(files); err != nil {
			log.Fatalf("writing files: %v", err)
		}
	}

	for _, f := range files {
		fmt.Println(f.Path)
	}
}

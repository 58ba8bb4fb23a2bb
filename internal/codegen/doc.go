// Package codegen discovers mapper contracts and renders their
// implementation types.
//
// Discovery loads packages through golang.org/x/tools/go/packages and
// scans for interface types that carry the //meilimap:mapper marker and
// embed mapper.Mapper[E] directly. Every structural problem with a marked
// type is collected into a diagnostic report rather than failing fast, so
// one run surfaces all of them.
//
// Each discovered contract renders to one <contract>_gen.go file next to
// its declaration, holding the Impl type and its constructor.
package codegen

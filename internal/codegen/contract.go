package codegen

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"

	"meilimap/internal/common"
	"meilimap/internal/diagnostic"
)

// mapperPkgPath is the import path of the base contract package.
const mapperPkgPath = "meilimap/mapper"

// Marker is the directive comment that makes an interface a mapper
// contract.
const Marker = "//meilimap:mapper"

// Contract describes one discovered mapper contract interface.
type Contract struct {
	Name    string
	PkgPath string
	PkgName string
	// Dir and File locate the declaration; the implementation is rendered
	// into Dir.
	Dir  string
	File string
	// Entity is the type argument bound to the base contract.
	Entity TypeRef
	// Extra lists methods declared on the contract beyond the inherited
	// surface. The user supplies these on the Impl type.
	Extra []string
}

// TypeRef names a type by package and identifier.
type TypeRef struct {
	PkgPath string
	PkgName string
	Name    string
}

// FindContracts scans the loaded packages for contract interfaces.
// Structural problems with marked types become report errors; suspicious
// but unmarked types become warnings. Contracts discovered through
// overlapping patterns are deduplicated by type identity.
func FindContracts(pkgs []*packages.Package) ([]Contract, *diagnostic.Report) {
	report := &diagnostic.Report{}
	var contracts []Contract

	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			for _, decl := range file.Decls {
				gd, ok := decl.(*ast.GenDecl)
				if !ok || gd.Tok != token.TYPE {
					continue
				}
				for _, spec := range gd.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					if c, ok := classify(pkg, gd, ts, report); ok {
						contracts = append(contracts, c)
					}
				}
			}
		}
	}

	contracts = common.Dedupe(contracts, func(c Contract) string {
		return c.PkgPath + "." + c.Name
	})

	return contracts, report
}

func classify(pkg *packages.Package, gd *ast.GenDecl, ts *ast.TypeSpec, report *diagnostic.Report) (Contract, bool) {
	name := ts.Name.Name
	label := pkg.PkgPath + "." + name
	marked := hasMarker(gd.Doc, ts.Doc)

	obj := pkg.TypesInfo.Defs[ts.Name]
	if obj == nil {
		return Contract{}, false
	}
	iface, isInterface := obj.Type().Underlying().(*types.Interface)

	if !marked {
		if isInterface && len(baseEmbeds(iface)) > 0 {
			report.AddWarning(label, "embeds the base mapper contract but lacks the "+Marker+" marker, skipping")
		}
		return Contract{}, false
	}

	if !isInterface {
		report.AddError(label, "marked as a mapper contract but is not an interface")
		return Contract{}, false
	}

	bases := baseEmbeds(iface)
	if common.IsEmpty(bases) {
		if embedsBaseTransitively(iface, nil) {
			report.AddError(label, "extends the base mapper contract indirectly; embed mapper.Mapper[E] directly")
		} else {
			report.AddError(label, "does not embed mapper.Mapper[E]")
		}
		return Contract{}, false
	}
	if common.IsMultiple(bases) {
		report.AddError(label, "embeds the base mapper contract more than once")
		return Contract{}, false
	}

	args := bases[0].TypeArgs()
	if args == nil || args.Len() != 1 {
		report.AddError(label, "cannot resolve the entity type argument")
		return Contract{}, false
	}
	entity, ok := entityRef(args.At(0))
	if !ok {
		report.AddError(label, fmt.Sprintf("entity type %s is not a named struct", args.At(0)))
		return Contract{}, false
	}

	pos := pkg.Fset.Position(ts.Pos())

	c := Contract{
		Name:    name,
		PkgPath: pkg.PkgPath,
		PkgName: pkg.Name,
		Dir:     filepath.Dir(pos.Filename),
		File:    filepath.Base(pos.Filename),
		Entity:  entity,
	}

	if extra := explicitMethods(iface); len(extra) > 0 {
		c.Extra = extra
		report.AddInfo(label, fmt.Sprintf("declares extra methods (%s); supply them on *%sImpl",
			strings.Join(extra, ", "), name))
	}

	return c, true
}

func hasMarker(groups ...*ast.CommentGroup) bool {
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			if strings.HasPrefix(strings.TrimSpace(c.Text), Marker) {
				return true
			}
		}
	}
	return false
}

// baseEmbeds returns the directly embedded instantiations of the base
// contract, in declaration order.
func baseEmbeds(iface *types.Interface) []*types.Named {
	var bases []*types.Named
	for i := 0; i < iface.NumEmbeddeds(); i++ {
		named, ok := iface.EmbeddedType(i).(*types.Named)
		if !ok {
			continue
		}
		if isBase(named) {
			bases = append(bases, named)
		}
	}
	return bases
}

func isBase(named *types.Named) bool {
	obj := named.Obj()
	return obj != nil && obj.Name() == "Mapper" && obj.Pkg() != nil && obj.Pkg().Path() == mapperPkgPath
}

func embedsBaseTransitively(iface *types.Interface, seen map[*types.Interface]bool) bool {
	if seen == nil {
		seen = make(map[*types.Interface]bool)
	}
	if seen[iface] {
		return false
	}
	seen[iface] = true

	for i := 0; i < iface.NumEmbeddeds(); i++ {
		named, ok := iface.EmbeddedType(i).(*types.Named)
		if !ok {
			continue
		}
		if isBase(named) {
			return true
		}
		if inner, ok := named.Underlying().(*types.Interface); ok && embedsBaseTransitively(inner, seen) {
			return true
		}
	}
	return false
}

func entityRef(arg types.Type) (TypeRef, bool) {
	named, ok := arg.(*types.Named)
	if !ok {
		return TypeRef{}, false
	}
	if _, ok := named.Underlying().(*types.Struct); !ok {
		return TypeRef{}, false
	}
	obj := named.Obj()
	if obj.Pkg() == nil {
		return TypeRef{}, false
	}
	return TypeRef{
		PkgPath: obj.Pkg().Path(),
		PkgName: obj.Pkg().Name(),
		Name:    obj.Name(),
	}, true
}

func explicitMethods(iface *types.Interface) []string {
	var names []string
	for i := 0; i < iface.NumExplicitMethods(); i++ {
		names = append(names, iface.ExplicitMethod(i).Name())
	}
	return names
}

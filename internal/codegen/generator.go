package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"path/filepath"
	"sort"
	"text/template"

	"meilimap/internal/common"
)

// ErrGenerationCollision reports a second, conflicting generation request
// for a contract identity within one process.
var ErrGenerationCollision = errors.New("conflicting generation for contract")

// GeneratedFile represents one rendered Go source file.
type GeneratedFile struct {
	// Path is where the file belongs, inside the contract's directory.
	Path    string
	Content []byte
}

// Generator renders implementation files, at most one definition per
// contract identity.
type Generator struct {
	rendered map[string][]byte
}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator {
	return &Generator{rendered: make(map[string][]byte)}
}

// Generate renders the implementation for c. Generating the same contract
// again returns the previous output unchanged; the same identity rendering
// differently is a collision.
func (g *Generator) Generate(c Contract) (GeneratedFile, error) {
	data := buildImplData(c)

	var buf bytes.Buffer
	if err := implTemplate.Execute(&buf, data); err != nil {
		return GeneratedFile{}, fmt.Errorf("executing template for %s: %w", c.Name, err)
	}

	filename := common.SnakeCase(c.Name) + "_gen.go"
	path := filepath.Join(c.Dir, filename)

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		_ = writeDebugUnformatted(c.Dir, filename, buf.Bytes())

		return GeneratedFile{
			Path:    path,
			Content: buf.Bytes(),
		}, fmt.Errorf("formatting code for %s: %w", c.Name, err)
	}

	id := c.PkgPath + "." + c.Name
	if prev, ok := g.rendered[id]; ok {
		if !bytes.Equal(prev, formatted) {
			return GeneratedFile{}, fmt.Errorf("%w: %s", ErrGenerationCollision, id)
		}
		return GeneratedFile{Path: path, Content: prev}, nil
	}
	g.rendered[id] = formatted

	return GeneratedFile{Path: path, Content: formatted}, nil
}

// implData holds all data needed for the implementation template.
type implData struct {
	Package  string
	Imports  []string
	Contract string
	Impl     string
	Entity   string
}

// buildImplData constructs the template data for one contract. The entity
// reference is qualified only when it lives outside the contract's own
// package, and imports are sorted for deterministic output.
func buildImplData(c Contract) *implData {
	entity := c.Entity.Name
	imports := []string{mapperPkgPath}
	if c.Entity.PkgPath != c.PkgPath {
		entity = c.Entity.PkgName + "." + c.Entity.Name
		imports = append(imports, c.Entity.PkgPath)
	}
	sort.Strings(imports)

	return &implData{
		Package:  c.PkgName,
		Imports:  imports,
		Contract: c.Name,
		Impl:     c.Name + "Impl",
		Entity:   entity,
	}
}

// Template for the implementation file

var implTemplate = template.Must(template.New("impl").Parse(`// Code generated by meilimap. DO NOT EDIT.

package {{.Package}}

import (
{{range .Imports}}	"{{.}}"
{{end}})

var _ {{.Contract}} = (*{{.Impl}})(nil)

// {{.Impl}} implements {{.Contract}} with the inherited operation set.
type {{.Impl}} struct {
	mapper.Base[{{.Entity}}]
}

// New{{.Impl}} validates {{.Entity}}, binds its index through rt and
// returns the registered mapper.
func New{{.Impl}}(rt *mapper.Runtime) (*{{.Impl}}, error) {
	m := &{{.Impl}}{}

	base, err := mapper.Bind[{{.Entity}}](rt, m)
	if err != nil {
		return nil, err
	}
	m.Base = base

	return m, nil
}
`))

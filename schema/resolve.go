package schema

import (
	"fmt"
	"strings"
	"unicode"

	"meilimap/internal/common"
)

// Policy controls how an entity's index uid may be defaulted.
type Policy struct {
	// RequireAnnotation rejects entities that do not implement Indexed.
	RequireAnnotation bool
	// UseTypeNameAsDefault lets an empty declared uid fall back to the
	// decapitalized type name.
	UseTypeNameAsDefault bool
}

// UID resolves the entity's index uid under the given policy. An entity
// without an index declaration resolves to its decapitalized type name
// when the policy allows it; callers are expected to warn about the
// missing declaration.
func (e *Entity) UID(p Policy) (string, error) {
	if !e.Annotated {
		if p.RequireAnnotation {
			return "", fmt.Errorf("%w: entity %s does not declare an index uid (implement schema.Indexed)", ErrAnnotationPolicy, e.Name)
		}

		return Decapitalize(e.Name), nil
	}

	if e.DeclaredUID != "" {
		return e.DeclaredUID, nil
	}

	if p.UseTypeNameAsDefault {
		return Decapitalize(e.Name), nil
	}

	return "", fmt.Errorf("%w: entity %s declares an empty index uid and type-name defaulting is off", ErrAnnotationPolicy, e.Name)
}

// PrimaryKey resolves the document attribute used as the index primary
// key. A single field tagged meili:"pk" wins. With no marker, exactly one
// attribute whose name ends in "id" (case-insensitive) must exist; the
// suffix match is deliberately naive, so an attribute named "paid"
// qualifies.
func (e *Entity) PrimaryKey() (string, error) {
	var marked []string

	for _, f := range e.Fields {
		if f.PrimaryKey {
			marked = append(marked, f.Attr)
		}
	}

	if common.IsMultiple(marked) {
		return "", fmt.Errorf("%w: entity %s marks several fields as primary key (%s)", ErrPrimaryKey, e.Name, strings.Join(marked, ", "))
	}

	if pk, ok := common.Single(marked); ok {
		return pk, nil
	}

	var candidates []string

	for _, f := range e.Fields {
		if strings.HasSuffix(strings.ToLower(f.Attr), "id") {
			candidates = append(candidates, f.Attr)
		}
	}

	switch {
	case common.IsEmpty(candidates):
		return "", fmt.Errorf("%w: entity %s has no attribute ending in \"id\" and none tagged pk", ErrPrimaryKey, e.Name)
	case common.IsMultiple(candidates):
		return "", fmt.Errorf("%w: entity %s has several attributes ending in \"id\" (%s)", ErrPrimaryKey, e.Name, strings.Join(candidates, ", "))
	}

	return candidates[0], nil
}

// Distinct resolves the distinct attribute, empty when no field carries
// the role. Two or more carriers is an error.
func (e *Entity) Distinct() (string, error) {
	ds := e.AttributesWithRole(RoleDistinct)

	if common.IsMultiple(ds) {
		return "", fmt.Errorf("%w: entity %s marks several fields as distinct (%s)", ErrAttributeCardinality, e.Name, strings.Join(ds, ", "))
	}

	if d, ok := common.Single(ds); ok {
		return d, nil
	}

	return "", nil
}

// AttributesWithRole returns the attribute names carrying the role, in
// declaration order.
func (e *Entity) AttributesWithRole(r Roles) []string {
	var attrs []string

	for _, f := range e.Fields {
		if f.Roles.Has(r) {
			attrs = append(attrs, f.Attr)
		}
	}

	return attrs
}

// AttributeNames returns every document attribute name in declaration
// order.
func (e *Entity) AttributeNames() []string {
	attrs := make([]string, 0, len(e.Fields))

	for _, f := range e.Fields {
		attrs = append(attrs, f.Attr)
	}

	return attrs
}

// FieldByAttr finds the field carrying the given document attribute name.
func (e *Entity) FieldByAttr(attr string) (Field, bool) {
	for _, f := range e.Fields {
		if f.Attr == attr {
			return f, true
		}
	}

	return Field{}, false
}

// Decapitalize lowers a type name's first rune, except when the first two
// runes are both upper-case: acronym-led names like URLStat stay as they
// are.
func Decapitalize(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return name
	}

	if len(runes) > 1 && unicode.IsUpper(runes[0]) && unicode.IsUpper(runes[1]) {
		return name
	}

	runes[0] = unicode.ToLower(runes[0])

	return string(runes)
}

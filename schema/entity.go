package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrNotStruct reports an entity type that is not a struct.
	ErrNotStruct = errors.New("entity type is not a struct")
	// ErrUnknownRole reports an unrecognized token in a meili tag.
	ErrUnknownRole = errors.New("unknown role in meili tag")
	// ErrAnnotationPolicy reports a missing or empty index declaration
	// under a policy that does not allow defaulting.
	ErrAnnotationPolicy = errors.New("index declaration violates policy")
	// ErrPrimaryKey reports that no single primary-key attribute could be
	// resolved for an entity.
	ErrPrimaryKey = errors.New("cannot resolve primary key")
	// ErrAttributeCardinality reports more than one field holding a role
	// that allows at most one.
	ErrAttributeCardinality = errors.New("attribute role allows at most one field")
)

// Indexed declares the uid of the search index an entity maps to. Entities
// implement it with a value receiver:
//
//	func (Role) IndexUID() string { return "role" }
//
// An empty uid defers to the name-defaulting policy.
type Indexed interface {
	IndexUID() string
}

var indexedType = reflect.TypeOf((*Indexed)(nil)).Elem()

// Field is one document attribute of an entity.
type Field struct {
	// Name is the Go field name.
	Name string
	// Attr is the document attribute name: the json tag name when
	// present, the Go field name otherwise.
	Attr string
	// Index is the field's position in the struct, for value extraction.
	Index int
	// Roles are the settings roles from the field's meili tag.
	Roles Roles
	// PrimaryKey is true for fields tagged meili:"pk".
	PrimaryKey bool
}

// Entity is the extracted metadata of one entity struct type.
type Entity struct {
	// Type is the entity struct type.
	Type reflect.Type
	// Name is the entity's type name.
	Name string
	// Annotated is true when the entity implements Indexed.
	Annotated bool
	// DeclaredUID is the uid reported by IndexUID, possibly empty.
	DeclaredUID string
	// Fields are the document attributes in declaration order. Unexported,
	// embedded, and json:"-" fields are absent.
	Fields []Field
}

// Describe extracts the metadata of an entity type. t may be the struct
// type or a pointer to it. Tag errors are fatal here rather than at the
// first operation that would trip over them.
func Describe(t reflect.Type) (*Entity, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v", ErrNotStruct, t)
	}

	e := &Entity{Type: t, Name: t.Name()}
	e.probeIndexed()

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}

		attr, ok := attrName(f)
		if !ok {
			continue
		}

		roles, pk, err := parseMeiliTag(f.Tag.Get("meili"))
		if err != nil {
			return nil, fmt.Errorf("entity %s, field %s: %w", e.Name, f.Name, err)
		}

		e.Fields = append(e.Fields, Field{
			Name:       f.Name,
			Attr:       attr,
			Index:      i,
			Roles:      roles,
			PrimaryKey: pk,
		})
	}

	return e, nil
}

// probeIndexed records whether the entity (or its pointer type) declares
// an index uid.
func (e *Entity) probeIndexed() {
	switch {
	case e.Type.Implements(indexedType):
		e.Annotated = true
		e.DeclaredUID = reflect.New(e.Type).Elem().Interface().(Indexed).IndexUID()
	case reflect.PointerTo(e.Type).Implements(indexedType):
		e.Annotated = true
		e.DeclaredUID = reflect.New(e.Type).Interface().(Indexed).IndexUID()
	}
}

// attrName resolves a field's document attribute name from its json tag.
// ok is false for fields json marshaling skips entirely.
func attrName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if idx := strings.Index(tag, ","); idx != -1 {
		tag = tag[:idx]
	}

	switch tag {
	case "-":
		return "", false
	case "":
		return f.Name, true
	default:
		return tag, true
	}
}

// parseMeiliTag splits a meili tag into role bits and the primary-key
// marker. The empty tag is valid and carries nothing.
func parseMeiliTag(tag string) (Roles, bool, error) {
	if tag == "" {
		return RolesNone, false, nil
	}

	var (
		roles Roles
		pk    bool
	)

	for _, token := range strings.Split(tag, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if token == "pk" {
			pk = true
			continue
		}

		role, ok := roleTokens[token]
		if !ok {
			return RolesNone, false, fmt.Errorf("%w: %q", ErrUnknownRole, token)
		}

		roles |= role
	}

	return roles, pk, nil
}

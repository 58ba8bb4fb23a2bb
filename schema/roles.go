package schema

import "strings"

// Roles is the set of settings roles carried by one entity field, encoded
// as a bitmask so a field can hold several roles at once.
type Roles uint8

const (
	RoleDistinct Roles = 1 << iota // attribute used for result de-duplication (at most one per entity)
	RoleDisplayed
	RoleFilterable
	RoleSearchable
	RoleSortable
	RoleStopWord // attribute name contributed to the stop-word list

	RolesNone Roles = 0
)

// roleTokens maps meili tag tokens to role bits. "pk" is not a role; the
// tag parser handles it separately.
var roleTokens = map[string]Roles{
	"distinct":   RoleDistinct,
	"displayed":  RoleDisplayed,
	"filterable": RoleFilterable,
	"searchable": RoleSearchable,
	"sortable":   RoleSortable,
	"stopword":   RoleStopWord,
}

// roleNames lists the bits in declaration order for String.
var roleNames = []struct {
	role Roles
	name string
}{
	{RoleDistinct, "distinct"},
	{RoleDisplayed, "displayed"},
	{RoleFilterable, "filterable"},
	{RoleSearchable, "searchable"},
	{RoleSortable, "sortable"},
	{RoleStopWord, "stopword"},
}

// Has returns true if all bits of role are set.
func (r Roles) Has(role Roles) bool {
	return r&role == role
}

// String returns the tag form of the role set, e.g. "searchable|sortable".
func (r Roles) String() string {
	if r == RolesNone {
		return "none"
	}

	var parts []string

	for _, rn := range roleNames {
		if r.Has(rn.role) {
			parts = append(parts, rn.name)
		}
	}

	return strings.Join(parts, "|")
}

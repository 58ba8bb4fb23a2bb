// Package schema extracts index metadata from entity struct types.
//
// An entity is an ordinary struct whose instances are the documents of one
// search index. Its document attribute names come from json tags, its
// attribute roles from meili tags, and its index uid from the optional
// Indexed marker interface. The package answers the questions the binding
// pipeline asks: which index does this entity map to, which attribute is
// the primary key, and which attributes carry which settings role.
package schema

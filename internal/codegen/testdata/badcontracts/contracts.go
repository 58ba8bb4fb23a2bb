// Package badcontracts collects contract declarations the scanner must
// reject or flag, plus one well-formed contract.
package badcontracts

import "meilimap/mapper"

type record struct {
	ID   int    `json:"id"`
	Body string `json:"body"`
}

func (record) IndexUID() string { return "record" }

//meilimap:mapper
type NotAnInterface struct{}

// UnmarkedMapper embeds the base contract but carries no marker.
type UnmarkedMapper interface {
	mapper.Mapper[record]
}

//meilimap:mapper
type IndirectMapper interface {
	UnmarkedMapper
}

//meilimap:mapper
type Detached interface {
	Close() error
}

//meilimap:mapper
type StringMapper interface {
	mapper.Mapper[string]
}

//meilimap:mapper
type RecordMapper interface {
	mapper.Mapper[record]

	Reindex() error
}

package mapper

import (
	"github.com/meilisearch/meilisearch-go"

	"meilimap/msearch"
)

// Document is a projection of a stored document, keyed by attribute name.
// Field-limited reads return documents instead of entity values because a
// partial entity would be indistinguishable from a zero one.
type Document map[string]any

// Page is one page of search results together with the pagination facts
// reported by the engine.
type Page[T any] struct {
	PageSize   int64
	PageNumber int64
	Total      int64
	Pages      int64
	List       []T
}

// Pagination and result-window defaults applied when callers pass no
// explicit values.
const (
	DefaultPageSize   int64 = 10
	DefaultPageNumber int64 = 1

	// listLimit caps SelectList. The engine itself stops at 1000 hits per
	// search unless told otherwise; asking for exactly that keeps "give me
	// the matches" honest about how many it can return.
	listLimit int64 = 1000
)

// Mapper is the operation surface every generated contract inherits.
// A contract interface embeds Mapper with its entity type and gains the
// whole document, search and settings surface of the bound index.
//
// Write operations return after the engine has accepted the task; they do
// not wait for the task to complete. Every remote failure comes back as a
// *RemoteError wrapping the transport cause.
type Mapper[T any] interface {
	// Insert enqueues doc for indexing. A primaryKey argument overrides
	// the primary key the index was bound with, same as the raw client.
	Insert(doc T, primaryKey ...string) error
	// InsertBatch enqueues docs as a single addition task.
	InsertBatch(docs []T, primaryKey ...string) error
	// UpdateByID enqueues a partial update of the document carrying the
	// same primary key as doc.
	UpdateByID(doc T, primaryKey ...string) error

	// Delete removes the document whose primary key matches doc's.
	Delete(doc T) error
	DeleteByID(id any) error
	DeleteByIDs(ids ...any) error
	DeleteAll() error

	// SelectByID fetches one document. A missing document is reported as
	// an error by the engine and propagates as such.
	SelectByID(id any) (*T, error)
	// SelectByIDWithFields fetches one document restricted to fields.
	SelectByIDWithFields(id any, fields ...string) (Document, error)
	// SelectByIDs fetches documents one by one, preserving the order of
	// ids. The first failure aborts and nothing is returned.
	SelectByIDs(ids ...any) ([]T, error)

	// SelectDocuments lists documents without ranking. With no fields the
	// projection defaults to the entity's attributes.
	SelectDocuments(fields ...string) ([]Document, error)
	SelectDocumentsRange(offset, limit int64, fields ...string) ([]Document, error)

	// SelectList runs a search and decodes the hits, at most listLimit of
	// them. SelectListRange exposes the offset/limit window instead.
	SelectList(query string) ([]T, error)
	SelectListRange(query string, offset, limit int64) ([]T, error)

	// SelectPage is SelectPageAt with DefaultPageSize and
	// DefaultPageNumber. Sizes and numbers below 1 fall back to the
	// defaults rather than erroring.
	SelectPage(query string) (*Page[T], error)
	SelectPageAt(query string, pageSize, pageNumber int64) (*Page[T], error)

	// Settings surface, mirroring the engine's settings routes on the
	// bound index.
	Settings() (*meilisearch.Settings, error)
	UpdateSettings(settings *meilisearch.Settings) error
	ResetSettings() error
	RankingRules() ([]string, error)
	UpdateRankingRules(rules []string) error
	ResetRankingRules() error
	Synonyms() (map[string][]string, error)
	UpdateSynonyms(synonyms map[string][]string) error
	ResetSynonyms() error
	StopWords() ([]string, error)
	UpdateStopWords(words []string) error
	ResetStopWords() error
	SearchableAttributes() ([]string, error)
	UpdateSearchableAttributes(attrs []string) error
	ResetSearchableAttributes() error
	DisplayedAttributes() ([]string, error)
	UpdateDisplayedAttributes(attrs []string) error
	ResetDisplayedAttributes() error
	FilterableAttributes() ([]string, error)
	UpdateFilterableAttributes(attrs []string) error
	ResetFilterableAttributes() error
	DistinctAttribute() (string, error)
	UpdateDistinctAttribute(attr string) error
	ResetDistinctAttribute() error
	TypoTolerance() (*meilisearch.TypoTolerance, error)
	UpdateTypoTolerance(tolerance *meilisearch.TypoTolerance) error
	ResetTypoTolerance() error

	// Stats reports document counts and field distribution.
	Stats() (*meilisearch.StatsIndex, error)

	// Index hands out the bound index for calls outside this surface.
	Index() (msearch.Index, error)
	// UID reports the index uid the mapper was bound to.
	UID() (string, error)
}

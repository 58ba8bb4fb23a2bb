package mapper

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/meilisearch/meilisearch-go"

	"meilimap/msearch"
)

// allDocuments is the limit a raw listing uses when the caller asks for
// everything.
const allDocuments int64 = math.MaxInt32

// Base carries the default implementation of every Mapper operation.
// Generated implementations embed it and inherit the whole surface; the
// zero value is unbound and every operation on it returns ErrNotBound.
//
// Base holds no index handle itself. Each call resolves the binding from
// the runtime registry under the implementation's concrete type, so a
// handle swap through re-binding is picked up by live mappers.
type Base[T any] struct {
	rt   *Runtime
	self reflect.Type
}

var _ Mapper[struct{}] = (*Base[struct{}])(nil)

func (b *Base[T]) binding() (*binding, error) {
	if b.rt == nil {
		return nil, fmt.Errorf("%w: construct mappers through their generated constructor", ErrNotBound)
	}
	bd, ok := b.rt.binding(b.self)
	if !ok {
		return nil, fmt.Errorf("%w: no binding registered for %s", ErrNotBound, b.self)
	}
	return bd, nil
}

// idString renders a primary key value the way the document routes expect
// it: its plain string form.
func idString(id any) string {
	return fmt.Sprint(id)
}

func (b *Base[T]) Insert(doc T, primaryKey ...string) error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.AddDocuments([]T{doc}, primaryKey...); err != nil {
		return remoteErr("add documents", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) InsertBatch(docs []T, primaryKey ...string) error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.AddDocuments(docs, primaryKey...); err != nil {
		return remoteErr("add documents", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) UpdateByID(doc T, primaryKey ...string) error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.UpdateDocuments([]T{doc}, primaryKey...); err != nil {
		return remoteErr("update documents", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) Delete(doc T) error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	id, err := bd.primaryKeyOf(doc)
	if err != nil {
		return err
	}
	if _, err := bd.index.DeleteDocument(id); err != nil {
		return remoteErr("delete document", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) DeleteByID(id any) error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.DeleteDocument(idString(id)); err != nil {
		return remoteErr("delete document", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) DeleteByIDs(ids ...any) error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, idString(id))
	}
	if _, err := bd.index.DeleteDocuments(keys); err != nil {
		return remoteErr("delete documents", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) DeleteAll() error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.DeleteAllDocuments(); err != nil {
		return remoteErr("delete all documents", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) SelectByID(id any) (*T, error) {
	bd, err := b.binding()
	if err != nil {
		return nil, err
	}
	var doc T
	if err := bd.index.GetDocument(idString(id), nil, &doc); err != nil {
		return nil, remoteErr("get document", bd.uid, err)
	}
	return &doc, nil
}

func (b *Base[T]) SelectByIDWithFields(id any, fields ...string) (Document, error) {
	bd, err := b.binding()
	if err != nil {
		return nil, err
	}
	var doc Document
	q := &meilisearch.DocumentQuery{Fields: fields}
	if err := bd.index.GetDocument(idString(id), q, &doc); err != nil {
		return nil, remoteErr("get document", bd.uid, err)
	}
	return doc, nil
}

func (b *Base[T]) SelectByIDs(ids ...any) ([]T, error) {
	bd, err := b.binding()
	if err != nil {
		return nil, err
	}
	docs := make([]T, 0, len(ids))
	for _, id := range ids {
		var doc T
		if err := bd.index.GetDocument(idString(id), nil, &doc); err != nil {
			return nil, remoteErr("get document", bd.uid, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (b *Base[T]) SelectDocuments(fields ...string) ([]Document, error) {
	return b.SelectDocumentsRange(0, allDocuments, fields...)
}

func (b *Base[T]) SelectDocumentsRange(offset, limit int64, fields ...string) ([]Document, error) {
	bd, err := b.binding()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		fields = bd.entity.AttributeNames()
	}
	var res meilisearch.DocumentsResult
	q := &meilisearch.DocumentsQuery{Offset: offset, Limit: limit, Fields: fields}
	if err := bd.index.GetDocuments(q, &res); err != nil {
		return nil, remoteErr("get documents", bd.uid, err)
	}
	docs := make([]Document, 0, len(res.Results))
	for _, raw := range res.Results {
		docs = append(docs, Document(raw))
	}
	return docs, nil
}

func (b *Base[T]) SelectList(query string) ([]T, error) {
	return b.searchList(query, &meilisearch.SearchRequest{Limit: listLimit})
}

func (b *Base[T]) SelectListRange(query string, offset, limit int64) ([]T, error) {
	return b.searchList(query, &meilisearch.SearchRequest{Offset: offset, Limit: limit})
}

func (b *Base[T]) searchList(query string, req *meilisearch.SearchRequest) ([]T, error) {
	bd, err := b.binding()
	if err != nil {
		return nil, err
	}
	resp, err := bd.index.Search(query, req)
	if err != nil {
		return nil, remoteErr("search", bd.uid, err)
	}
	return decodeHits[T](bd.uid, resp.Hits)
}

func (b *Base[T]) SelectPage(query string) (*Page[T], error) {
	return b.SelectPageAt(query, DefaultPageSize, DefaultPageNumber)
}

func (b *Base[T]) SelectPageAt(query string, pageSize, pageNumber int64) (*Page[T], error) {
	bd, err := b.binding()
	if err != nil {
		return nil, err
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageNumber < 1 {
		pageNumber = DefaultPageNumber
	}
	resp, err := bd.index.Search(query, &meilisearch.SearchRequest{
		HitsPerPage: pageSize,
		Page:        pageNumber,
	})
	if err != nil {
		return nil, remoteErr("search", bd.uid, err)
	}
	list, err := decodeHits[T](bd.uid, resp.Hits)
	if err != nil {
		return nil, err
	}
	return &Page[T]{
		PageSize:   resp.HitsPerPage,
		PageNumber: resp.Page,
		Total:      resp.TotalHits,
		Pages:      resp.TotalPages,
		List:       list,
	}, nil
}

// decodeHits converts raw hits back into entity values through a JSON
// round trip, the same shape the documents were serialized from.
func decodeHits[T any](uid string, hits []interface{}) ([]T, error) {
	docs := make([]T, 0, len(hits))
	for _, hit := range hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			return nil, remoteErr("decode search hit", uid, err)
		}
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, remoteErr("decode search hit", uid, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (b *Base[T]) Settings() (*meilisearch.Settings, error) {
	bd, err := b.binding()
	if err != nil {
		return nil, err
	}
	settings, err := bd.index.GetSettings()
	if err != nil {
		return nil, remoteErr("get settings", bd.uid, err)
	}
	return settings, nil
}

func (b *Base[T]) UpdateSettings(settings *meilisearch.Settings) error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.UpdateSettings(settings); err != nil {
		return remoteErr("update settings", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) ResetSettings() error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.ResetSettings(); err != nil {
		return remoteErr("reset settings", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) RankingRules() ([]string, error) {
	bd, err := b.binding()
	if err != nil {
		return nil, err
	}
	rules, err := bd.index.GetRankingRules()
	if err != nil {
		return nil, remoteErr("get ranking rules", bd.uid, err)
	}
	return deref(rules), nil
}

func (b *Base[T]) UpdateRankingRules(rules []string) error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.UpdateRankingRules(&rules); err != nil {
		return remoteErr("update ranking rules", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) ResetRankingRules() error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.ResetRankingRules(); err != nil {
		return remoteErr("reset ranking rules", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) Synonyms() (map[string][]string, error) {
	bd, err := b.binding()
	if err != nil {
		return nil, err
	}
	synonyms, err := bd.index.GetSynonyms()
	if err != nil {
		return nil, remoteErr("get synonyms", bd.uid, err)
	}
	return deref(synonyms), nil
}

func (b *Base[T]) UpdateSynonyms(synonyms map[string][]string) error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.UpdateSynonyms(&synonyms); err != nil {
		return remoteErr("update synonyms", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) ResetSynonyms() error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.ResetSynonyms(); err != nil {
		return remoteErr("reset synonyms", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) StopWords() ([]string, error) {
	bd, err := b.binding()
	if err != nil {
		return nil, err
	}
	words, err := bd.index.GetStopWords()
	if err != nil {
		return nil, remoteErr("get stop words", bd.uid, err)
	}
	return deref(words), nil
}

func (b *Base[T]) UpdateStopWords(words []string) error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.UpdateStopWords(&words); err != nil {
		return remoteErr("update stop words", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) ResetStopWords() error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.ResetStopWords(); err != nil {
		return remoteErr("reset stop words", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) SearchableAttributes() ([]string, error) {
	bd, err := b.binding()
	if err != nil {
		return nil, err
	}
	attrs, err := bd.index.GetSearchableAttributes()
	if err != nil {
		return nil, remoteErr("get searchable attributes", bd.uid, err)
	}
	return deref(attrs), nil
}

func (b *Base[T]) UpdateSearchableAttributes(attrs []string) error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.UpdateSearchableAttributes(&attrs); err != nil {
		return remoteErr("update searchable attributes", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) ResetSearchableAttributes() error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.ResetSearchableAttributes(); err != nil {
		return remoteErr("reset searchable attributes", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) DisplayedAttributes() ([]string, error) {
	bd, err := b.binding()
	if err != nil {
		return nil, err
	}
	attrs, err := bd.index.GetDisplayedAttributes()
	if err != nil {
		return nil, remoteErr("get displayed attributes", bd.uid, err)
	}
	return deref(attrs), nil
}

func (b *Base[T]) UpdateDisplayedAttributes(attrs []string) error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.UpdateDisplayedAttributes(&attrs); err != nil {
		return remoteErr("update displayed attributes", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) ResetDisplayedAttributes() error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.ResetDisplayedAttributes(); err != nil {
		return remoteErr("reset displayed attributes", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) FilterableAttributes() ([]string, error) {
	bd, err := b.binding()
	if err != nil {
		return nil, err
	}
	attrs, err := bd.index.GetFilterableAttributes()
	if err != nil {
		return nil, remoteErr("get filterable attributes", bd.uid, err)
	}
	return deref(attrs), nil
}

func (b *Base[T]) UpdateFilterableAttributes(attrs []string) error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.UpdateFilterableAttributes(&attrs); err != nil {
		return remoteErr("update filterable attributes", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) ResetFilterableAttributes() error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.ResetFilterableAttributes(); err != nil {
		return remoteErr("reset filterable attributes", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) DistinctAttribute() (string, error) {
	bd, err := b.binding()
	if err != nil {
		return "", err
	}
	attr, err := bd.index.GetDistinctAttribute()
	if err != nil {
		return "", remoteErr("get distinct attribute", bd.uid, err)
	}
	return deref(attr), nil
}

func (b *Base[T]) UpdateDistinctAttribute(attr string) error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.UpdateDistinctAttribute(attr); err != nil {
		return remoteErr("update distinct attribute", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) ResetDistinctAttribute() error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.ResetDistinctAttribute(); err != nil {
		return remoteErr("reset distinct attribute", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) TypoTolerance() (*meilisearch.TypoTolerance, error) {
	bd, err := b.binding()
	if err != nil {
		return nil, err
	}
	tolerance, err := bd.index.GetTypoTolerance()
	if err != nil {
		return nil, remoteErr("get typo tolerance", bd.uid, err)
	}
	return tolerance, nil
}

func (b *Base[T]) UpdateTypoTolerance(tolerance *meilisearch.TypoTolerance) error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.UpdateTypoTolerance(tolerance); err != nil {
		return remoteErr("update typo tolerance", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) ResetTypoTolerance() error {
	bd, err := b.binding()
	if err != nil {
		return err
	}
	if _, err := bd.index.ResetTypoTolerance(); err != nil {
		return remoteErr("reset typo tolerance", bd.uid, err)
	}
	return nil
}

func (b *Base[T]) Stats() (*meilisearch.StatsIndex, error) {
	bd, err := b.binding()
	if err != nil {
		return nil, err
	}
	stats, err := bd.index.GetStats()
	if err != nil {
		return nil, remoteErr("get stats", bd.uid, err)
	}
	return stats, nil
}

func (b *Base[T]) Index() (msearch.Index, error) {
	bd, err := b.binding()
	if err != nil {
		return nil, err
	}
	return bd.index, nil
}

func (b *Base[T]) UID() (string, error) {
	bd, err := b.binding()
	if err != nil {
		return "", err
	}
	return bd.uid, nil
}

func deref[E any](p *E) E {
	if p == nil {
		var zero E
		return zero
	}
	return *p
}

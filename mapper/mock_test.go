package mapper_test

import (
	"io"
	"log/slog"

	"github.com/meilisearch/meilisearch-go"
	"github.com/stretchr/testify/mock"

	"meilimap/mapper"
	"meilimap/msearch"
)

// Fixtures mirror the shapes user code declares: entities with tags and
// an implementation type per contract embedding the base mapper.

// role is the scenario entity: declared uid, marked primary key, no
// attribute roles.
type role struct {
	ID          int    `json:"id" meili:"pk"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (role) IndexUID() string { return "role" }

// catalogItem spreads roles over several fields.
type catalogItem struct {
	SKU   string   `json:"sku" meili:"pk,distinct"`
	Title string   `json:"title" meili:"searchable,sortable"`
	Brand string   `json:"brand" meili:"filterable,displayed"`
	Tags  []string `json:"tags" meili:"filterable"`
	Noise string   `json:"noise" meili:"stopword"`
}

func (catalogItem) IndexUID() string { return "catalog" }

// filterOnly marks fields in a single role group.
type filterOnly struct {
	ID     int    `json:"id"`
	Region string `json:"region" meili:"filterable"`
	Tier   string `json:"tier" meili:"filterable"`
}

func (filterOnly) IndexUID() string { return "filter_only" }

// twoDistinct violates the distinct cardinality rule.
type twoDistinct struct {
	ID int    `json:"id"`
	A  string `json:"a" meili:"distinct"`
	B  string `json:"b" meili:"distinct"`
}

func (twoDistinct) IndexUID() string { return "two_distinct" }

// plainNote carries no index declaration at all.
type plainNote struct {
	NoteID int    `json:"noteId"`
	Body   string `json:"body"`
}

// keyless has no marked primary key and no attribute ending in "id".
type keyless struct {
	Label string `json:"label"`
}

func (keyless) IndexUID() string { return "keyless" }

type roleMapperImpl struct{ mapper.Base[role] }

type auditRoleMapperImpl struct{ mapper.Base[role] }

type catalogMapperImpl struct{ mapper.Base[catalogItem] }

type filterOnlyMapperImpl struct{ mapper.Base[filterOnly] }

type twoDistinctMapperImpl struct{ mapper.Base[twoDistinct] }

type plainNoteMapperImpl struct{ mapper.Base[plainNote] }

type keylessMapperImpl struct{ mapper.Base[keyless] }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ret pulls a typed return value out of args, tolerating untyped nils.
func ret[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)
	return v
}

var (
	_ msearch.Client = (*mockClient)(nil)
	_ msearch.Index  = (*mockIndex)(nil)
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) Index(uid string) msearch.Index {
	return ret[msearch.Index](m.Called(uid), 0)
}

func (m *mockClient) GetIndex(uid string) (msearch.Index, error) {
	args := m.Called(uid)
	return ret[msearch.Index](args, 0), args.Error(1)
}

func (m *mockClient) GetIndexes(param *meilisearch.IndexesQuery) (*meilisearch.IndexesResults, error) {
	args := m.Called(param)
	return ret[*meilisearch.IndexesResults](args, 0), args.Error(1)
}

func (m *mockClient) CreateIndex(config *meilisearch.IndexConfig) (*meilisearch.TaskInfo, error) {
	args := m.Called(config)
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockClient) GetTask(taskUID int64) (*meilisearch.Task, error) {
	args := m.Called(taskUID)
	return ret[*meilisearch.Task](args, 0), args.Error(1)
}

type mockIndex struct {
	mock.Mock
}

func (m *mockIndex) UpdateIndex(primaryKey string) (*meilisearch.TaskInfo, error) {
	args := m.Called(primaryKey)
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) AddDocuments(documentsPtr interface{}, primaryKey ...string) (*meilisearch.TaskInfo, error) {
	args := m.Called(documentsPtr, primaryKey)
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) UpdateDocuments(documentsPtr interface{}, primaryKey ...string) (*meilisearch.TaskInfo, error) {
	args := m.Called(documentsPtr, primaryKey)
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) GetDocument(identifier string, request *meilisearch.DocumentQuery, documentPtr interface{}) error {
	args := m.Called(identifier, request, documentPtr)
	return args.Error(0)
}

func (m *mockIndex) GetDocuments(param *meilisearch.DocumentsQuery, resp *meilisearch.DocumentsResult) error {
	args := m.Called(param, resp)
	return args.Error(0)
}

func (m *mockIndex) DeleteDocument(identifier string) (*meilisearch.TaskInfo, error) {
	args := m.Called(identifier)
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) DeleteDocuments(identifiers []string) (*meilisearch.TaskInfo, error) {
	args := m.Called(identifiers)
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) DeleteAllDocuments() (*meilisearch.TaskInfo, error) {
	args := m.Called()
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) Search(query string, request *meilisearch.SearchRequest) (*meilisearch.SearchResponse, error) {
	args := m.Called(query, request)
	return ret[*meilisearch.SearchResponse](args, 0), args.Error(1)
}

func (m *mockIndex) GetStats() (*meilisearch.StatsIndex, error) {
	args := m.Called()
	return ret[*meilisearch.StatsIndex](args, 0), args.Error(1)
}

func (m *mockIndex) WaitForTask(taskUID int64, options ...meilisearch.WaitParams) (*meilisearch.Task, error) {
	args := m.Called(taskUID, options)
	return ret[*meilisearch.Task](args, 0), args.Error(1)
}

func (m *mockIndex) GetSettings() (*meilisearch.Settings, error) {
	args := m.Called()
	return ret[*meilisearch.Settings](args, 0), args.Error(1)
}

func (m *mockIndex) UpdateSettings(request *meilisearch.Settings) (*meilisearch.TaskInfo, error) {
	args := m.Called(request)
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) ResetSettings() (*meilisearch.TaskInfo, error) {
	args := m.Called()
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) GetRankingRules() (*[]string, error) {
	args := m.Called()
	return ret[*[]string](args, 0), args.Error(1)
}

func (m *mockIndex) UpdateRankingRules(request *[]string) (*meilisearch.TaskInfo, error) {
	args := m.Called(request)
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) ResetRankingRules() (*meilisearch.TaskInfo, error) {
	args := m.Called()
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) GetSynonyms() (*map[string][]string, error) {
	args := m.Called()
	return ret[*map[string][]string](args, 0), args.Error(1)
}

func (m *mockIndex) UpdateSynonyms(request *map[string][]string) (*meilisearch.TaskInfo, error) {
	args := m.Called(request)
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) ResetSynonyms() (*meilisearch.TaskInfo, error) {
	args := m.Called()
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) GetStopWords() (*[]string, error) {
	args := m.Called()
	return ret[*[]string](args, 0), args.Error(1)
}

func (m *mockIndex) UpdateStopWords(request *[]string) (*meilisearch.TaskInfo, error) {
	args := m.Called(request)
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) ResetStopWords() (*meilisearch.TaskInfo, error) {
	args := m.Called()
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) GetSearchableAttributes() (*[]string, error) {
	args := m.Called()
	return ret[*[]string](args, 0), args.Error(1)
}

func (m *mockIndex) UpdateSearchableAttributes(request *[]string) (*meilisearch.TaskInfo, error) {
	args := m.Called(request)
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) ResetSearchableAttributes() (*meilisearch.TaskInfo, error) {
	args := m.Called()
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) GetDisplayedAttributes() (*[]string, error) {
	args := m.Called()
	return ret[*[]string](args, 0), args.Error(1)
}

func (m *mockIndex) UpdateDisplayedAttributes(request *[]string) (*meilisearch.TaskInfo, error) {
	args := m.Called(request)
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) ResetDisplayedAttributes() (*meilisearch.TaskInfo, error) {
	args := m.Called()
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) GetFilterableAttributes() (*[]string, error) {
	args := m.Called()
	return ret[*[]string](args, 0), args.Error(1)
}

func (m *mockIndex) UpdateFilterableAttributes(request *[]string) (*meilisearch.TaskInfo, error) {
	args := m.Called(request)
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) ResetFilterableAttributes() (*meilisearch.TaskInfo, error) {
	args := m.Called()
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) GetDistinctAttribute() (*string, error) {
	args := m.Called()
	return ret[*string](args, 0), args.Error(1)
}

func (m *mockIndex) UpdateDistinctAttribute(request string) (*meilisearch.TaskInfo, error) {
	args := m.Called(request)
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) ResetDistinctAttribute() (*meilisearch.TaskInfo, error) {
	args := m.Called()
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) GetTypoTolerance() (*meilisearch.TypoTolerance, error) {
	args := m.Called()
	return ret[*meilisearch.TypoTolerance](args, 0), args.Error(1)
}

func (m *mockIndex) UpdateTypoTolerance(request *meilisearch.TypoTolerance) (*meilisearch.TaskInfo, error) {
	args := m.Called(request)
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

func (m *mockIndex) ResetTypoTolerance() (*meilisearch.TaskInfo, error) {
	args := m.Called()
	return ret[*meilisearch.TaskInfo](args, 0), args.Error(1)
}

package msearch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/meilisearch/meilisearch-go"
)

var (
	// ErrMissingHost reports an empty Meilisearch host url.
	ErrMissingHost = errors.New("meilisearch host url is empty")
	// ErrMissingAPIKey reports an empty Meilisearch api key.
	ErrMissingAPIKey = errors.New("meilisearch api key is empty")
)

// Config carries what New needs to reach a Meilisearch instance.
type Config struct {
	Host   string
	APIKey string
}

// Client is the control-plane surface consumed by the binding pipeline:
// index lookup, creation, and task status.
type Client interface {
	// Index returns a handle for uid without a remote round trip.
	Index(uid string) Index
	// GetIndex fetches a handle for uid, failing if the index is unknown.
	GetIndex(uid string) (Index, error)
	GetIndexes(param *meilisearch.IndexesQuery) (*meilisearch.IndexesResults, error)
	CreateIndex(config *meilisearch.IndexConfig) (*meilisearch.TaskInfo, error)
	GetTask(taskUID int64) (*meilisearch.Task, error)
}

// Index is the per-index surface consumed by mapper operations. Method
// shapes follow the SDK so its index type satisfies the interface as is.
type Index interface {
	UpdateIndex(primaryKey string) (*meilisearch.TaskInfo, error)

	// Documents.
	AddDocuments(documentsPtr interface{}, primaryKey ...string) (*meilisearch.TaskInfo, error)
	UpdateDocuments(documentsPtr interface{}, primaryKey ...string) (*meilisearch.TaskInfo, error)
	GetDocument(identifier string, request *meilisearch.DocumentQuery, documentPtr interface{}) error
	GetDocuments(param *meilisearch.DocumentsQuery, resp *meilisearch.DocumentsResult) error
	DeleteDocument(identifier string) (*meilisearch.TaskInfo, error)
	DeleteDocuments(identifiers []string) (*meilisearch.TaskInfo, error)
	DeleteAllDocuments() (*meilisearch.TaskInfo, error)

	// Search and stats.
	Search(query string, request *meilisearch.SearchRequest) (*meilisearch.SearchResponse, error)
	GetStats() (*meilisearch.StatsIndex, error)

	// WaitForTask polls a task until it settles. Mapper operations never
	// call it; custom contract methods reaching for confirmation do.
	WaitForTask(taskUID int64, options ...meilisearch.WaitParams) (*meilisearch.Task, error)

	// Settings.
	GetSettings() (*meilisearch.Settings, error)
	UpdateSettings(request *meilisearch.Settings) (*meilisearch.TaskInfo, error)
	ResetSettings() (*meilisearch.TaskInfo, error)
	GetRankingRules() (*[]string, error)
	UpdateRankingRules(request *[]string) (*meilisearch.TaskInfo, error)
	ResetRankingRules() (*meilisearch.TaskInfo, error)
	GetSynonyms() (*map[string][]string, error)
	UpdateSynonyms(request *map[string][]string) (*meilisearch.TaskInfo, error)
	ResetSynonyms() (*meilisearch.TaskInfo, error)
	GetStopWords() (*[]string, error)
	UpdateStopWords(request *[]string) (*meilisearch.TaskInfo, error)
	ResetStopWords() (*meilisearch.TaskInfo, error)
	GetSearchableAttributes() (*[]string, error)
	UpdateSearchableAttributes(request *[]string) (*meilisearch.TaskInfo, error)
	ResetSearchableAttributes() (*meilisearch.TaskInfo, error)
	GetDisplayedAttributes() (*[]string, error)
	UpdateDisplayedAttributes(request *[]string) (*meilisearch.TaskInfo, error)
	ResetDisplayedAttributes() (*meilisearch.TaskInfo, error)
	GetFilterableAttributes() (*[]string, error)
	UpdateFilterableAttributes(request *[]string) (*meilisearch.TaskInfo, error)
	ResetFilterableAttributes() (*meilisearch.TaskInfo, error)
	GetDistinctAttribute() (*string, error)
	UpdateDistinctAttribute(request string) (*meilisearch.TaskInfo, error)
	ResetDistinctAttribute() (*meilisearch.TaskInfo, error)
	GetTypoTolerance() (*meilisearch.TypoTolerance, error)
	UpdateTypoTolerance(request *meilisearch.TypoTolerance) (*meilisearch.TaskInfo, error)
	ResetTypoTolerance() (*meilisearch.TaskInfo, error)
}

// The SDK index must keep satisfying the interface verbatim.
var _ Index = (*meilisearch.Index)(nil)

// New validates cfg and returns a Client backed by the SDK.
func New(cfg Config) (Client, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, fmt.Errorf("%w: set the host in configuration", ErrMissingHost)
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: set the api key in configuration", ErrMissingAPIKey)
	}

	sdk := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   cfg.Host,
		APIKey: cfg.APIKey,
	})

	return &sdkClient{sdk: sdk}, nil
}

// sdkClient adapts the SDK client to Client: the index-returning methods
// need their concrete return types lifted to the interface.
type sdkClient struct {
	sdk *meilisearch.Client
}

func (c *sdkClient) Index(uid string) Index {
	return c.sdk.Index(uid)
}

func (c *sdkClient) GetIndex(uid string) (Index, error) {
	idx, err := c.sdk.GetIndex(uid)
	if err != nil {
		return nil, err
	}

	return idx, nil
}

func (c *sdkClient) GetIndexes(param *meilisearch.IndexesQuery) (*meilisearch.IndexesResults, error) {
	return c.sdk.GetIndexes(param)
}

func (c *sdkClient) CreateIndex(config *meilisearch.IndexConfig) (*meilisearch.TaskInfo, error) {
	return c.sdk.CreateIndex(config)
}

func (c *sdkClient) GetTask(taskUID int64) (*meilisearch.Task, error) {
	return c.sdk.GetTask(taskUID)
}

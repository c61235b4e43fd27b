// Package testutil provides test utilities and helpers.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"lorakeys/internal/civitai"
	"lorakeys/internal/triggers"
)

// TempStore creates a trigger cache store backed by a file in a
// temporary directory.
func TempStore(t *testing.T) *triggers.Store {
	t.Helper()
	return triggers.Open(filepath.Join(t.TempDir(), "lora_keywords.json"))
}

// Catalog is a fake paginated catalog API for tests. Pages are served
// per model type; the cursor is a page index carried in the nextPage
// URL, mirroring the real metadata.nextPage contract.
type Catalog struct {
	t      *testing.T
	server *httptest.Server

	mu      sync.Mutex
	pages   map[string][]civitai.SearchPage
	fetches map[string]int
}

// NewCatalog starts a fake catalog server. It is closed via t.Cleanup.
func NewCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := &Catalog{
		t:       t,
		pages:   make(map[string][]civitai.SearchPage),
		fetches: make(map[string]int),
	}
	c.server = httptest.NewServer(http.HandlerFunc(c.handle))
	t.Cleanup(c.server.Close)
	return c
}

// URL returns the fake catalog base URL.
func (c *Catalog) URL() string {
	return c.server.URL
}

// SetPages installs the result pages served for one model type.
// Pagination cursors between them are generated automatically.
func (c *Catalog) SetPages(modelType string, pages ...civitai.SearchPage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[modelType] = pages
}

// Fetches reports how many page requests were served for a model type.
func (c *Catalog) Fetches(modelType string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches[modelType]
}

func (c *Catalog) handle(w http.ResponseWriter, r *http.Request) {
	modelType := r.URL.Query().Get("types")
	pageIdx, _ := strconv.Atoi(r.URL.Query().Get("cursor"))

	c.mu.Lock()
	c.fetches[modelType]++
	pages := c.pages[modelType]
	c.mu.Unlock()

	var page civitai.SearchPage
	if pageIdx < len(pages) {
		page = pages[pageIdx]
		if pageIdx+1 < len(pages) {
			next := *r.URL
			q := next.Query()
			q.Set("cursor", strconv.Itoa(pageIdx+1))
			next.RawQuery = q.Encode()
			page.Metadata.NextPage = c.server.URL + next.RequestURI()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(page); err != nil {
		c.t.Errorf("fake catalog: failed to encode page: %v", err)
	}
}

// Page builds one result page from models.
func Page(models ...civitai.Model) civitai.SearchPage {
	return civitai.SearchPage{Items: models}
}

// Model builds a catalog model with a single version holding one file
// and its trained words. Pass an empty slice for a match with no
// keywords.
func Model(id int, fileName string, words []string) civitai.Model {
	return civitai.Model{
		ID:   id,
		Name: fmt.Sprintf("model-%d", id),
		ModelVersions: []civitai.ModelVersion{
			{
				ID:           id * 10,
				Name:         "v1.0",
				TrainedWords: words,
				Files:        []civitai.ModelFile{{Name: fileName}},
			},
		},
	}
}

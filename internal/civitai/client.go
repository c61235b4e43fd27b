// Package civitai consumes the Civitai model catalog as a paginated
// read-only HTTP API.
package civitai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"lorakeys/internal/metrics"
)

// DefaultBaseURL is the public catalog endpoint.
const DefaultBaseURL = "https://civitai.com/api/v1"

// SearchPage is one page of a model search response.
type SearchPage struct {
	Items    []Model  `json:"items"`
	Metadata Metadata `json:"metadata"`
}

// Metadata carries the pagination cursor. An absent NextPage signals
// exhaustion.
type Metadata struct {
	NextPage string `json:"nextPage"`
}

// Model is one catalog entry with its published versions.
type Model struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	ModelVersions []ModelVersion `json:"modelVersions"`
}

// ModelVersion carries the trigger words and the downloadable files.
type ModelVersion struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	TrainedWords []string    `json:"trainedWords"`
	Files        []ModelFile `json:"files"`
}

// ModelFile is a downloadable artifact attached to a version.
type ModelFile struct {
	Name string `json:"name"`
}

// Client performs paginated searches against the catalog.
type Client struct {
	http    *http.Client
	baseURL string
	limit   int
	nsfw    bool
}

// New creates a catalog client. timeout bounds each page fetch.
func New(baseURL string, limit int, nsfw bool, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if limit < 1 {
		limit = 25
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		limit:   limit,
		nsfw:    nsfw,
	}
}

// FindTrainedWords walks the search pages for one model-type partition
// until a file whose base name equals stem is found, returning that
// version's trigger words. found is false when the pages are exhausted
// or a page fetch fails; the two cases are deliberately not
// distinguished here. The returned slice is non-nil whenever found is
// true, so a match with zero words stays distinct from no match.
func (c *Client) FindTrainedWords(ctx context.Context, stem, query, modelType string) ([]string, bool) {
	pageURL := c.searchURL(query, modelType)

	for pageURL != "" {
		page, err := c.fetchPage(ctx, pageURL)
		if err != nil {
			slog.Warn("catalog page fetch failed",
				"type", modelType, "url", pageURL, "error", err)
			metrics.RecordCatalogError()
			return nil, false
		}
		metrics.RecordCatalogPage()

		if len(page.Items) == 0 {
			break
		}

		for _, model := range page.Items {
			for _, version := range model.ModelVersions {
				for _, file := range version.Files {
					if fileStem(file.Name) != stem {
						continue
					}
					slog.Info("catalog match found",
						"stem", stem, "type", modelType, "model", model.Name)
					words := version.TrainedWords
					if words == nil {
						words = []string{}
					}
					return words, true
				}
			}
		}

		pageURL = page.Metadata.NextPage
	}

	return nil, false
}

// searchURL builds the first-page query for one model-type partition.
func (c *Client) searchURL(query, modelType string) string {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", c.limit))
	params.Set("query", query)
	params.Set("types", modelType)
	params.Set("nsfw", fmt.Sprintf("%t", c.nsfw))
	return c.baseURL + "/models?" + params.Encode()
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) (*SearchPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL: %w", err)
	}
	req.Header.Set("User-Agent", "lorakeys/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var page SearchPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode page: %w", err)
	}
	return &page, nil
}

func fileStem(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

package api

import (
	"net/url"
	"sort"

	"github.com/gofiber/fiber/v3"

	"lorakeys/internal/models"
	"lorakeys/internal/triggers"
	"lorakeys/internal/validation"
)

// KeywordHandler resolves trigger words for model assets via JSON API.
type KeywordHandler struct {
	svc *triggers.Service
}

// NewKeywordHandler creates a new keyword handler.
func NewKeywordHandler(svc *triggers.Service) *KeywordHandler {
	return &KeywordHandler{svc: svc}
}

// Get resolves the trigger words for one asset, searching the catalog
// on a cache miss. The response always carries a (possibly empty)
// keyword list; search failures are cached for retry, never surfaced.
func (h *KeywordHandler) Get(c fiber.Ctx) error {
	name, ok := assetParam(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid asset name")
	}

	words, cached := h.svc.Lookup(c.Context(), name)
	return jsonSuccess(c, models.KeywordsResponse{
		Name:     name,
		Keywords: words,
		Cached:   cached,
	})
}

// GetRaw mirrors the legacy endpoint contract: the bare keyword list
// with no envelope, for frontends that predate the JSON API.
func (h *KeywordHandler) GetRaw(c fiber.Ctx) error {
	name, ok := assetParam(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid asset name")
	}
	return c.JSON(h.svc.Keywords(c.Context(), name))
}

// List returns every cached entry, sorted by asset name.
func (h *KeywordHandler) List(c fiber.Ctx) error {
	entries := h.svc.Entries()

	resp := make([]models.CacheEntryResponse, 0, len(entries))
	for name, out := range entries {
		resp = append(resp, models.CacheEntryResponse{
			Name:       name,
			State:      string(out.State),
			Keywords:   out.Words,
			Retry:      out.Retry,
			ResolvedAt: out.ResolvedAt,
		})
	}
	sort.Slice(resp, func(i, j int) bool { return resp[i].Name < resp[j].Name })

	return jsonSuccess(c, resp)
}

// Delete evicts one asset from the cache so the next lookup searches
// the catalog again.
func (h *KeywordHandler) Delete(c fiber.Ctx) error {
	name, ok := assetParam(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid asset name")
	}

	if err := h.svc.Forget(name); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to evict cache entry")
	}
	return jsonSuccess(c, fiber.Map{"name": name, "evicted": true})
}

// assetParam extracts and validates the :name route parameter.
func assetParam(c fiber.Ctx) (string, bool) {
	raw := c.Params("name")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	name := validation.NormalizeAssetName(raw)
	if !validation.ValidateAssetName(name) {
		return "", false
	}
	return name, true
}

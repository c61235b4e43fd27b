package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"lorakeys/internal/characters"
	"lorakeys/internal/models"
)

// CharacterHandler serves categorized character data via JSON API.
type CharacterHandler struct {
	catalog *characters.Catalog // nil when the data file was absent at startup
}

// NewCharacterHandler creates a new character handler.
func NewCharacterHandler(catalog *characters.Catalog) *CharacterHandler {
	return &CharacterHandler{catalog: catalog}
}

// All returns the full category -> characters mapping. Responds 503
// when no data was loaded, matching the original frontend contract.
func (h *CharacterHandler) All(c fiber.Ctx) error {
	if h.catalog == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "character data not loaded")
	}
	return jsonSuccess(c, h.catalog.All())
}

// Random picks a character, optionally scoped to one category.
func (h *CharacterHandler) Random(c fiber.Ctx) error {
	if h.catalog == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "character data not loaded")
	}

	category := c.Query("category", characters.RandomCategory)
	pick, err := h.catalog.Random(category)
	if err != nil {
		if errors.Is(err, characters.ErrNoCharacters) {
			return jsonError(c, fiber.StatusNotFound, "no characters available")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to pick a character")
	}

	return jsonSuccess(c, models.CharacterResponse{
		Category:  category,
		Character: pick,
	})
}

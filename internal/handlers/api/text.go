package api

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"lorakeys/internal/models"
	"lorakeys/internal/textutil"
)

// TextHandler exposes prompt-text helpers via JSON API.
type TextHandler struct{}

// NewTextHandler creates a new text handler.
func NewTextHandler() *TextHandler {
	return &TextHandler{}
}

// Shuffle shuffles the word order of the given text. An optional seed
// makes the result reproducible.
func (h *TextHandler) Shuffle(c fiber.Ctx) error {
	text := c.Query("text")
	if text == "" {
		return jsonError(c, fiber.StatusBadRequest, "text is required")
	}

	seed, err := strconv.ParseInt(c.Query("seed", "0"), 10, 64)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid seed")
	}

	return jsonSuccess(c, models.ShuffleResponse{
		Text: textutil.ShuffleWords(text, seed),
	})
}

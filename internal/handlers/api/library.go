package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"lorakeys/internal/library"
	"lorakeys/internal/models"
	"lorakeys/internal/triggers"
	"lorakeys/internal/validation"
)

// LibraryHandler lists local model files via JSON API.
type LibraryHandler struct {
	lib *library.Library
}

// NewLibraryHandler creates a new library handler.
func NewLibraryHandler(lib *library.Library) *LibraryHandler {
	return &LibraryHandler{lib: lib}
}

// List returns the model files of one kind with their stems.
func (h *LibraryHandler) List(c fiber.Ctx) error {
	kind := c.Params("kind")
	if !validation.ValidateModelKind(kind) {
		return jsonError(c, fiber.StatusBadRequest, "invalid model kind")
	}

	names, err := h.lib.List(kind)
	if err != nil {
		if errors.Is(err, library.ErrUnknownKind) {
			return jsonError(c, fiber.StatusNotFound, "unknown model kind")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to list models")
	}

	files := make([]models.ModelFileInfo, 0, len(names))
	for _, name := range names {
		files = append(files, models.ModelFileInfo{
			Name: name,
			Stem: triggers.Stem(name),
		})
	}

	return jsonSuccess(c, models.ModelListResponse{
		Kind:   kind,
		Count:  len(files),
		Models: files,
	})
}

// Random picks one model file of a kind at random.
func (h *LibraryHandler) Random(c fiber.Ctx) error {
	kind := c.Params("kind")
	if !validation.ValidateModelKind(kind) {
		return jsonError(c, fiber.StatusBadRequest, "invalid model kind")
	}

	name, err := h.lib.Random(kind)
	if err != nil {
		switch {
		case errors.Is(err, library.ErrUnknownKind):
			return jsonError(c, fiber.StatusNotFound, "unknown model kind")
		case errors.Is(err, library.ErrNoModels):
			return jsonError(c, fiber.StatusNotFound, "no model files found")
		default:
			return jsonError(c, fiber.StatusInternalServerError, "failed to pick a model")
		}
	}

	return jsonSuccess(c, models.ModelFileInfo{
		Name: name,
		Stem: triggers.Stem(name),
	})
}

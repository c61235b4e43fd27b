package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"lorakeys/internal/models"
	"lorakeys/internal/resolution"
)

// DimensionsHandler derives randomized render dimensions via JSON API.
type DimensionsHandler struct{}

// NewDimensionsHandler creates a new dimensions handler.
func NewDimensionsHandler() *DimensionsHandler {
	return &DimensionsHandler{}
}

// Get derives random dimensions preserving the given aspect ratio.
func (h *DimensionsHandler) Get(c fiber.Ctx) error {
	width, err1 := strconv.Atoi(c.Query("width", "0"))
	height, err2 := strconv.Atoi(c.Query("height", "0"))
	if err1 != nil || err2 != nil {
		return jsonError(c, fiber.StatusBadRequest, "width and height must be integers")
	}

	seed, err := strconv.ParseInt(c.Query("seed", "0"), 10, 64)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid seed")
	}

	params := resolution.Params{
		Width:     width,
		Height:    height,
		Mode:      resolution.RatioMode(c.Query("mode", string(resolution.ModeAny))),
		MinPixels: queryInt(c, "min_pixels"),
		MaxPixels: queryInt(c, "max_pixels"),
		Step:      queryInt(c, "step"),
		Seed:      seed,
	}

	result, err := resolution.RandomDimensions(params)
	if err != nil {
		if errors.Is(err, resolution.ErrInvalidMode) {
			return jsonError(c, fiber.StatusBadRequest, "invalid ratio mode")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to derive dimensions")
	}

	return jsonSuccess(c, models.DimensionsResponse{
		Width:       result.Width,
		Height:      result.Height,
		AspectRatio: result.AspectRatio,
	})
}

// queryInt parses an optional integer query parameter, returning zero
// (the package default) when absent or malformed.
func queryInt(c fiber.Ctx, key string) int {
	n, err := strconv.Atoi(c.Query(key, "0"))
	if err != nil {
		return 0
	}
	return n
}

package models

import "time"

// KeywordsResponse contains the result of a trigger-word resolution.
type KeywordsResponse struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Cached   bool     `json:"cached"`
}

// CacheEntryResponse describes one cached resolution outcome.
type CacheEntryResponse struct {
	Name       string    `json:"name"`
	State      string    `json:"state"`
	Keywords   []string  `json:"keywords,omitempty"`
	Retry      bool      `json:"retry,omitempty"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// ModelFileInfo describes one local model file.
type ModelFileInfo struct {
	Name string `json:"name"`
	Stem string `json:"stem"`
}

// ModelListResponse lists the local model files of one kind.
type ModelListResponse struct {
	Kind   string          `json:"kind"`
	Count  int             `json:"count"`
	Models []ModelFileInfo `json:"models"`
}

// CharacterResponse contains one selected character.
type CharacterResponse struct {
	Category  string `json:"category"`
	Character string `json:"character"`
}

// ShuffleResponse contains shuffled prompt text.
type ShuffleResponse struct {
	Text string `json:"text"`
}

// DimensionsResponse contains derived render dimensions.
type DimensionsResponse struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	AspectRatio string `json:"aspect_ratio"`
}

package validation

import (
	"regexp"
	"strings"
)

// AssetNamePattern defines the valid asset name format: path-safe
// filename characters, optionally with forward-slash subfolders.
var AssetNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._\- ]+(/[a-zA-Z0-9._\- ]+)*$`)

// ValidateAssetName checks if an asset name is safe to use as a cache
// key and search stem. Rejects empty names, oversized names and path
// traversal.
func ValidateAssetName(name string) bool {
	if name == "" || len(name) > 200 {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	return AssetNamePattern.MatchString(name)
}

// NormalizeAssetName trims surrounding whitespace and unifies path
// separators so cache keys are stable across hosts.
func NormalizeAssetName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
}

// kindPattern matches library kind path parameters.
var kindPattern = regexp.MustCompile(`^[a-z]+$`)

// ValidateModelKind checks a library kind path parameter.
func ValidateModelKind(kind string) bool {
	return kindPattern.MatchString(kind)
}

package validation

import (
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	tests := []struct {
		name  string
		asset string
		want  bool
	}{
		{"plain stem", "foo_v2", true},
		{"with extension", "foo_v2.safetensors", true},
		{"with hyphen", "my-lora", true},
		{"with spaces", "foo v2 final", true},
		{"subfolder", "styles/foo_v2.safetensors", true},
		{"nested subfolders", "styles/anime/foo.safetensors", true},
		{"empty string", "", false},
		{"too long", strings.Repeat("a", 201), false},
		{"max length", strings.Repeat("a", 200), true},
		{"path traversal", "../etc/passwd", false},
		{"hidden traversal", "styles/../../secret", false},
		{"absolute path", "/etc/passwd", false},
		{"trailing slash", "styles/", false},
		{"url encoded", "foo%20bar", false},
		{"special chars", "foo@#$", false},
		{"unicode", "日本語", false},
		{"single char", "a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateAssetName(tt.asset)
			if got != tt.want {
				t.Errorf("ValidateAssetName(%q) = %v, want %v", tt.asset, got, tt.want)
			}
		})
	}
}

func TestNormalizeAssetName(t *testing.T) {
	tests := []struct {
		name  string
		asset string
		want  string
	}{
		{"untouched", "foo_v2.safetensors", "foo_v2.safetensors"},
		{"trims whitespace", "  foo_v2  ", "foo_v2"},
		{"windows separators", `styles\foo_v2.safetensors`, "styles/foo_v2.safetensors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAssetName(tt.asset); got != tt.want {
				t.Errorf("NormalizeAssetName(%q) = %q, want %q", tt.asset, got, tt.want)
			}
		})
	}
}

func TestValidateModelKind(t *testing.T) {
	tests := []struct {
		kind string
		want bool
	}{
		{"loras", true},
		{"checkpoints", true},
		{"", false},
		{"Loras", false},
		{"lo-ras", false},
		{"loras2", false},
	}

	for _, tt := range tests {
		if got := ValidateModelKind(tt.kind); got != tt.want {
			t.Errorf("ValidateModelKind(%q) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

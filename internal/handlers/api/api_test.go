package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v3"

	"lorakeys/internal/characters"
	"lorakeys/internal/civitai"
	"lorakeys/internal/handlers/api"
	"lorakeys/internal/library"
	"lorakeys/internal/testutil"
	"lorakeys/internal/triggers"
)

// envelope mirrors the standard API response wrapper.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func doRequest(t *testing.T, app *fiber.App, method, target string) (*http.Response, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, target, err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("%s %s returned non-envelope body %q: %v", method, target, body, err)
	}
	return resp, env
}

func newKeywordApp(t *testing.T, catalog *testutil.Catalog) *fiber.App {
	t.Helper()
	store := testutil.TempStore(t)
	client := civitai.New(catalog.URL(), 25, true, 0)
	resolver := triggers.NewResolver(client, []string{"LORA", "LoCon"}, 4)
	svc := triggers.NewService(store, resolver)

	h := api.NewKeywordHandler(svc)
	app := fiber.New()
	app.Get("/api/keywords", h.List)
	app.Get("/api/keywords/:name", h.Get)
	app.Delete("/api/keywords/:name", h.Delete)
	app.Get("/lora_keywords/:name", h.GetRaw)
	return app
}

func TestKeywordGet(t *testing.T) {
	catalog := testutil.NewCatalog(t)
	catalog.SetPages("LORA", testutil.Page(
		testutil.Model(1, "foo_v2.safetensors", []string{"foo", "style"}),
	))
	app := newKeywordApp(t, catalog)

	resp, env := doRequest(t, app, http.MethodGet, "/api/keywords/foo_v2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if env.Status != "ok" {
		t.Fatalf("envelope status = %q", env.Status)
	}

	var data struct {
		Name     string   `json:"name"`
		Keywords []string `json:"keywords"`
		Cached   bool     `json:"cached"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.Name != "foo_v2" || len(data.Keywords) != 2 || data.Cached {
		t.Errorf("unexpected payload: %+v", data)
	}

	// Second request is answered from cache.
	_, env = doRequest(t, app, http.MethodGet, "/api/keywords/foo_v2")
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if !data.Cached {
		t.Error("expected second request to be cached")
	}
}

func TestKeywordGetUnknownAssetStillSucceeds(t *testing.T) {
	// A failed search returns 200 with an empty list, never an error.
	app := newKeywordApp(t, testutil.NewCatalog(t))

	resp, env := doRequest(t, app, http.MethodGet, "/api/keywords/never_heard_of_it")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var data struct {
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if len(data.Keywords) != 0 {
		t.Errorf("expected empty keyword list, got %v", data.Keywords)
	}
}

func TestKeywordGetInvalidName(t *testing.T) {
	app := newKeywordApp(t, testutil.NewCatalog(t))

	resp, env := doRequest(t, app, http.MethodGet, "/api/keywords/foo%21bar")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if env.Status != "error" || env.Error == "" {
		t.Errorf("expected error envelope, got %+v", env)
	}
}

func TestKeywordGetRawLegacyContract(t *testing.T) {
	catalog := testutil.NewCatalog(t)
	catalog.SetPages("LORA", testutil.Page(
		testutil.Model(1, "foo.safetensors", []string{"foo"}),
	))
	app := newKeywordApp(t, catalog)

	req := httptest.NewRequest(http.MethodGet, "/lora_keywords/foo", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	// Bare JSON list, no envelope.
	var words []string
	if err := json.Unmarshal(body, &words); err != nil {
		t.Fatalf("expected bare list body, got %q: %v", body, err)
	}
	if len(words) != 1 || words[0] != "foo" {
		t.Errorf("unexpected words: %v", words)
	}
}

func TestKeywordListAndDelete(t *testing.T) {
	catalog := testutil.NewCatalog(t)
	catalog.SetPages("LORA", testutil.Page(
		testutil.Model(1, "foo.safetensors", []string{"foo"}),
	))
	app := newKeywordApp(t, catalog)

	doRequest(t, app, http.MethodGet, "/api/keywords/foo")

	_, env := doRequest(t, app, http.MethodGet, "/api/keywords")
	var entries []struct {
		Name  string `json:"name"`
		State string `json:"state"`
	}
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name != "foo" || entries[0].State != "keywords" {
		t.Fatalf("unexpected cache listing: %+v", entries)
	}

	resp, _ := doRequest(t, app, http.MethodDelete, "/api/keywords/foo")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", resp.StatusCode)
	}

	_, env = doRequest(t, app, http.MethodGet, "/api/keywords")
	entries = nil
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty cache listing after delete, got %+v", entries)
	}
}

func newLibraryApp(t *testing.T, lorasDir string) *fiber.App {
	t.Helper()
	h := api.NewLibraryHandler(library.New(lorasDir, ""))
	app := fiber.New()
	app.Get("/api/models/:kind", h.List)
	app.Get("/api/models/:kind/random", h.Random)
	return app
}

func TestLibraryList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.safetensors", "a.safetensors", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("stub"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	app := newLibraryApp(t, dir)

	resp, env := doRequest(t, app, http.MethodGet, "/api/models/loras")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var data struct {
		Kind   string `json:"kind"`
		Count  int    `json:"count"`
		Models []struct {
			Name string `json:"name"`
			Stem string `json:"stem"`
		} `json:"models"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.Kind != "loras" || data.Count != 2 {
		t.Fatalf("unexpected listing: %+v", data)
	}
	if data.Models[0].Name != "a.safetensors" || data.Models[0].Stem != "a" {
		t.Errorf("unexpected first model: %+v", data.Models[0])
	}
}

func TestLibraryUnknownKind(t *testing.T) {
	app := newLibraryApp(t, t.TempDir())

	resp, _ := doRequest(t, app, http.MethodGet, "/api/models/embeddings")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}

	resp, _ = doRequest(t, app, http.MethodGet, "/api/models/Nope!")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed kind", resp.StatusCode)
	}
}

func TestLibraryRandomEmpty(t *testing.T) {
	app := newLibraryApp(t, t.TempDir())

	resp, env := doRequest(t, app, http.MethodGet, "/api/models/loras/random")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if env.Status != "error" {
		t.Errorf("expected error envelope, got %+v", env)
	}
}

func newCharacterApp(t *testing.T, catalog *characters.Catalog) *fiber.App {
	t.Helper()
	h := api.NewCharacterHandler(catalog)
	app := fiber.New()
	app.Get("/api/characters", h.All)
	app.Get("/api/characters/random", h.Random)
	return app
}

func loadCharacters(t *testing.T) *characters.Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "characters.json")
	data := `{"Fantasy": ["elf archer", "dwarf smith"]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	catalog, err := characters.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return catalog
}

func TestCharacterRandom(t *testing.T) {
	app := newCharacterApp(t, loadCharacters(t))

	resp, env := doRequest(t, app, http.MethodGet, "/api/characters/random?category=Fantasy")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var data struct {
		Category  string `json:"category"`
		Character string `json:"character"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.Category != "Fantasy" || data.Character == "" {
		t.Errorf("unexpected payload: %+v", data)
	}
}

func TestCharacterUnavailableWithoutData(t *testing.T) {
	app := newCharacterApp(t, nil)

	for _, target := range []string{"/api/characters", "/api/characters/random"} {
		resp, env := doRequest(t, app, http.MethodGet, target)
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d, want 503", target, resp.StatusCode)
		}
		if env.Status != "error" {
			t.Errorf("%s: expected error envelope, got %+v", target, env)
		}
	}
}

func TestShuffle(t *testing.T) {
	app := fiber.New()
	app.Get("/api/shuffle", api.NewTextHandler().Shuffle)

	resp, env := doRequest(t, app, http.MethodGet, "/api/shuffle?text=red+hair%2C+blue+eyes&seed=42")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var data struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.Text == "" {
		t.Error("expected shuffled text")
	}

	resp, _ = doRequest(t, app, http.MethodGet, "/api/shuffle")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing text: status = %d, want 400", resp.StatusCode)
	}

	resp, _ = doRequest(t, app, http.MethodGet, "/api/shuffle?text=foo&seed=abc")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad seed: status = %d, want 400", resp.StatusCode)
	}
}

func TestDimensions(t *testing.T) {
	app := fiber.New()
	app.Get("/api/dimensions", api.NewDimensionsHandler().Get)

	resp, env := doRequest(t, app, http.MethodGet, "/api/dimensions?width=1920&height=1080&mode=image&seed=1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var data struct {
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		AspectRatio string `json:"aspect_ratio"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.Width%8 != 0 || data.Height%8 != 0 || data.AspectRatio != "16/9" {
		t.Errorf("unexpected payload: %+v", data)
	}

	resp, _ = doRequest(t, app, http.MethodGet, "/api/dimensions?width=abc&height=100")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad width: status = %d, want 400", resp.StatusCode)
	}

	resp, _ = doRequest(t, app, http.MethodGet, "/api/dimensions?width=100&height=100&mode=square")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad mode: status = %d, want 400", resp.StatusCode)
	}
}

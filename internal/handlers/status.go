package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v3"

	"lorakeys/internal/triggers"
)

// StatusHandler renders the human-facing cache status page.
type StatusHandler struct {
	svc *triggers.Service
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(svc *triggers.Service) *StatusHandler {
	return &StatusHandler{svc: svc}
}

// statusRow is one rendered cache entry.
type statusRow struct {
	Name     string
	State    string
	Words    []string
	Retry    bool
	Resolved string
}

// Index renders the cache contents with per-state counts.
func (h *StatusHandler) Index(c fiber.Ctx) error {
	entries := h.svc.Entries()

	rows := make([]statusRow, 0, len(entries))
	counts := map[string]int{}
	for name, out := range entries {
		counts[string(out.State)]++
		rows = append(rows, statusRow{
			Name:     name,
			State:    string(out.State),
			Words:    out.Words,
			Retry:    out.Retry,
			Resolved: out.ResolvedAt.Format("2006-01-02 15:04:05"),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	return c.Render("index", fiber.Map{
		"Title":    "Keyword Cache",
		"Rows":     rows,
		"Total":    len(rows),
		"Keywords": counts[string(triggers.StateKeywords)],
		"Empty":    counts[string(triggers.StateEmpty)],
		"Errors":   counts[string(triggers.StateError)],
	})
}

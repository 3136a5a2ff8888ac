package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/dirpanel/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	switch {
	case state.SearchEditing:
		return []string{
			"type: filter",
			"↵: apply",
			"Esc: clear",
		}
	case state.View.Err != nil:
		segments := []string{"r: retry"}
		if state.View.ShowUp {
			segments = append(segments, "←: up")
		}
		return append(segments, "q: quit")
	}

	segments := []string{"↑↓: select", "↵/→: open"}
	if state.View.ShowUp {
		segments = append(segments, "←: up")
	}
	segments = append(segments, "/: filter")
	if state.SearchText != "" {
		segments = append(segments, "Esc: clear filter")
	}
	return append(segments, "1-4: sort", "r: refresh", "q: quit")
}

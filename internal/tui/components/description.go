package components

import (
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/tablero-dev/tablero/internal/tui/theme"
)

// Glamour renderers are expensive to build, so cache them by wrap width
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderDescription renders a card description as markdown, falling
// back to the raw text when glamour fails.
func RenderDescription(description string, width int) string {
	if description == "" {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Muted)).
			Italic(true).
			Render("No description")
	}

	renderer, err := getRenderer(width)
	if err != nil {
		return description
	}
	rendered, err := renderer.Render(description)
	if err != nil {
		return description
	}
	return strings.TrimSpace(rendered)
}

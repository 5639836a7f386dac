// Package theme holds the resolved color palette for the TUI.
// Apply is called once at startup with the configured scheme; components
// read the package vars when building styles.
package theme

import "github.com/tablero-dev/tablero/internal/config"

var (
	Border       = "#3b4261"
	ActiveBorder = "#7aa2f7"
	Title        = "#c0caf5"
	CardTitle    = "#a9b1d6"
	Selected     = "#7aa2f7"
	Grabbed      = "#e0af68"
	Muted        = "#565f89"
	Error        = "#f7768e"
	Info         = "#9ece6a"
	Connected    = "#9ece6a"
	Disconnected = "#f7768e"
)

// Apply overrides the palette with the user's configured scheme
func Apply(scheme config.ColorScheme) {
	Border = scheme.Border
	ActiveBorder = scheme.ActiveBorder
	Title = scheme.Title
	CardTitle = scheme.CardTitle
	Selected = scheme.Selected
	Grabbed = scheme.Grabbed
	Muted = scheme.Muted
	Error = scheme.Error
	Info = scheme.Info
	Connected = scheme.Connected
	Disconnected = scheme.Disconnected
}

package config

// ColorScheme holds the hex colors used by the board view.
// Missing values are filled from the default scheme so partial themes work.
type ColorScheme struct {
	Border       string `yaml:"border"`
	ActiveBorder string `yaml:"active_border"`
	Title        string `yaml:"title"`
	CardTitle    string `yaml:"card_title"`
	Selected     string `yaml:"selected"`
	Grabbed      string `yaml:"grabbed"`
	Muted        string `yaml:"muted"`
	Error        string `yaml:"error"`
	Info         string `yaml:"info"`
	Connected    string `yaml:"connected"`
	Disconnected string `yaml:"disconnected"`
}

// DefaultColorScheme returns the built-in theme
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		Border:       "#3b4261",
		ActiveBorder: "#7aa2f7",
		Title:        "#c0caf5",
		CardTitle:    "#a9b1d6",
		Selected:     "#7aa2f7",
		Grabbed:      "#e0af68",
		Muted:        "#565f89",
		Error:        "#f7768e",
		Info:         "#9ece6a",
		Connected:    "#9ece6a",
		Disconnected: "#f7768e",
	}
}

// applyDefaults fills in missing colors from the default scheme
func (c *ColorScheme) applyDefaults() {
	defaults := DefaultColorScheme()
	if c.Border == "" {
		c.Border = defaults.Border
	}
	if c.ActiveBorder == "" {
		c.ActiveBorder = defaults.ActiveBorder
	}
	if c.Title == "" {
		c.Title = defaults.Title
	}
	if c.CardTitle == "" {
		c.CardTitle = defaults.CardTitle
	}
	if c.Selected == "" {
		c.Selected = defaults.Selected
	}
	if c.Grabbed == "" {
		c.Grabbed = defaults.Grabbed
	}
	if c.Muted == "" {
		c.Muted = defaults.Muted
	}
	if c.Error == "" {
		c.Error = defaults.Error
	}
	if c.Info == "" {
		c.Info = defaults.Info
	}
	if c.Connected == "" {
		c.Connected = defaults.Connected
	}
	if c.Disconnected == "" {
		c.Disconnected = defaults.Disconnected
	}
}

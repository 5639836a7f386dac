package config

// KeyMappings defines the keyboard bindings for the board view.
// Values are single keys or bubbletea key names ("enter", "esc").
type KeyMappings struct {
	Up          string `yaml:"up"`
	Down        string `yaml:"down"`
	Left        string `yaml:"left"`
	Right       string `yaml:"right"`
	Grab        string `yaml:"grab"`
	Confirm     string `yaml:"confirm"`
	Cancel      string `yaml:"cancel"`
	NewCard     string `yaml:"new_card"`
	NewList     string `yaml:"new_list"`
	Delete      string `yaml:"delete"`
	OpenCard    string `yaml:"open_card"`
	AddComment  string `yaml:"add_comment"`
	EditLabels  string `yaml:"edit_labels"`
	Search      string `yaml:"search"`
	Quit        string `yaml:"quit"`
	BoardPicker string `yaml:"board_picker"`
}

// DefaultKeyMappings returns the vim-flavored default bindings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		Up:          "k",
		Down:        "j",
		Left:        "h",
		Right:       "l",
		Grab:        "g",
		Confirm:     "enter",
		Cancel:      "esc",
		NewCard:     "n",
		NewList:     "N",
		Delete:      "d",
		OpenCard:    "enter",
		AddComment:  "c",
		EditLabels:  "L",
		Search:      "/",
		Quit:        "q",
		BoardPicker: "b",
	}
}

// applyDefaults fills in any unset bindings
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()
	if k.Up == "" {
		k.Up = defaults.Up
	}
	if k.Down == "" {
		k.Down = defaults.Down
	}
	if k.Left == "" {
		k.Left = defaults.Left
	}
	if k.Right == "" {
		k.Right = defaults.Right
	}
	if k.Grab == "" {
		k.Grab = defaults.Grab
	}
	if k.Confirm == "" {
		k.Confirm = defaults.Confirm
	}
	if k.Cancel == "" {
		k.Cancel = defaults.Cancel
	}
	if k.NewCard == "" {
		k.NewCard = defaults.NewCard
	}
	if k.NewList == "" {
		k.NewList = defaults.NewList
	}
	if k.Delete == "" {
		k.Delete = defaults.Delete
	}
	if k.OpenCard == "" {
		k.OpenCard = defaults.OpenCard
	}
	if k.AddComment == "" {
		k.AddComment = defaults.AddComment
	}
	if k.EditLabels == "" {
		k.EditLabels = defaults.EditLabels
	}
	if k.Search == "" {
		k.Search = defaults.Search
	}
	if k.Quit == "" {
		k.Quit = defaults.Quit
	}
	if k.BoardPicker == "" {
		k.BoardPicker = defaults.BoardPicker
	}
}

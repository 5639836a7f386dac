// Package huhforms builds the huh forms the board view opens as modals
package huhforms

import "charm.land/huh/v2"

// CardForm creates the form for adding or editing a card
func CardForm(title, description *string, isEdit bool) *huh.Form {
	heading := "New Card"
	if isEdit {
		heading = "Edit Card"
	}

	fields := []huh.Field{
		huh.NewInput().
			Key("title").
			Title(heading).
			Placeholder("Card title...").
			Value(title),
		huh.NewText().
			Key("description").
			Title("Description (markdown)").
			Placeholder("Optional description...").
			Value(description).
			CharLimit(4000),
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

// ListForm creates the form for adding or renaming a list
func ListForm(title *string, isEdit bool) *huh.Form {
	heading := "New List"
	if isEdit {
		heading = "Rename List"
	}

	fields := []huh.Field{
		huh.NewInput().
			Key("title").
			Title(heading).
			Placeholder("List title...").
			Value(title),
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

// CommentForm creates the form for adding or editing a comment on the
// open card
func CommentForm(content *string, isEdit bool) *huh.Form {
	heading := "New Comment"
	if isEdit {
		heading = "Edit Comment"
	}

	fields := []huh.Field{
		huh.NewText().
			Key("content").
			Title(heading).
			Placeholder("Say something...").
			Value(content).
			CharLimit(2000),
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

// SearchForm creates the single-field search prompt
func SearchForm(query *string) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Key("query").
			Title("Search cards").
			Placeholder("Text to search for...").
			Value(query),
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

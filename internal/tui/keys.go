package tui

import "github.com/charmbracelet/bubbles/key"

// browseKeys holds key bindings for list navigation.
type browseKeys struct {
	Up        key.Binding
	Down      key.Binding
	SortFirst key.Binding
	SortLast  key.Binding
	Search    key.Binding
	Clear     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns the browse bindings for the help bar.
func (k browseKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.SortFirst, k.SortLast, k.Search, k.Help, k.Quit}
}

// FullHelp returns the browse bindings grouped for expanded help.
func (k browseKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.SortFirst, k.SortLast},
		{k.Search, k.Clear},
		{k.Help, k.Quit},
	}
}

// searchKeys holds key bindings while the search prompt is open.
type searchKeys struct {
	Field  key.Binding
	Submit key.Binding
	Cancel key.Binding
}

// ShortHelp returns the search bindings for the help bar.
func (k searchKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Field, k.Submit, k.Cancel}
}

// FullHelp returns the search bindings grouped for expanded help.
func (k searchKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Field, k.Submit, k.Cancel}}
}

// BrowseKeyMap returns the key bindings for list navigation.
func BrowseKeyMap() browseKeys {
	return browseKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		SortFirst: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "sort by first name"),
		),
		SortLast: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "sort by last name"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SearchKeyMap returns the key bindings for the search prompt.
func SearchKeyMap() searchKeys {
	return searchKeys{
		Field: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

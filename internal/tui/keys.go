package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the global bindings. Navigation inside the table uses the table's own keymap.
type keyMap struct {
	Quit          key.Binding
	Help          key.Binding
	Back          key.Binding
	Detail        key.Binding
	Chart         key.Binding
	Metric        key.Binding
	Order         key.Binding
	Mode          key.Binding
	Favorite      key.Binding
	FavoritesOnly key.Binding
	Copy          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Detail:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detail")),
		Chart:         key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "chart")),
		Metric:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort metric")),
		Order:         key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "order")),
		Mode:          key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
		Favorite:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		FavoritesOnly: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "favorites only")),
		Copy:          key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
	}
}

// shortHelp lists the bindings shown in the status bar
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Detail, k.Chart, k.Metric, k.Order, k.Mode, k.Favorite, k.Copy, k.Help, k.Quit}
}

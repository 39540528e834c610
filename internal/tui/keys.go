package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Next     key.Binding
	Prev     key.Binding
	Decrease key.Binding
	Increase key.Binding
	Mode     key.Binding
	Variant  key.Binding
	Custom   key.Binding
	Skip     key.Binding
	Export   key.Binding
	Restart  key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "select"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "tab"),
			key.WithHelp("n", "next step"),
		),
		Prev: key.NewBinding(
			key.WithKeys("b", "shift+tab"),
			key.WithHelp("b", "back"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "less"),
		),
		Increase: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "more"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mode"),
		),
		Variant: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "size"),
		),
		Custom: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "custom"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// stepKeyMap enables only the bindings that do something on step.
func stepKeyMap(km KeyMap, step stepKind) KeyMap {
	km.Up.SetEnabled(step.hasList || step.sliders > 1)
	km.Down.SetEnabled(step.hasList || step.sliders > 1)
	km.Select.SetEnabled(step.hasList)
	km.Decrease.SetEnabled(step.sliders > 0)
	km.Increase.SetEnabled(step.sliders > 0)
	km.Mode.SetEnabled(step.modes)
	km.Variant.SetEnabled(step.variants)
	km.Custom.SetEnabled(step.creative)
	km.Skip.SetEnabled(step.creative)
	km.Export.SetEnabled(step.receipt)
	km.Restart.SetEnabled(step.receipt)
	return km
}

// EditKeyMap is active while the custom creative form has focus.
type EditKeyMap struct {
	Submit key.Binding
	Switch key.Binding
	Cancel key.Binding
}

// DefaultEditKeyMap returns the form bindings.
func DefaultEditKeyMap() EditKeyMap {
	return EditKeyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Switch: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

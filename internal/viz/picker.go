package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// PickerItem is one model offered by the picker.
type PickerItem struct {
	Name        string
	Description string
	Build       Builder
}

// Picker lists models and hands over to a Monitor for the chosen one.
type Picker struct {
	items   []PickerItem
	cursor  int
	opts    MonitorOptions
	monitor *Monitor
	err     error
}

func NewPicker(items []PickerItem, opts MonitorOptions) Picker {
	return Picker{items: items, opts: opts}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.monitor != nil {
		next, cmd := p.monitor.Update(msg)
		mon := next.(Monitor)
		p.monitor = &mon
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	case "enter":
		if len(p.items) == 0 {
			return p, nil
		}
		item := p.items[p.cursor]
		mon, err := NewMonitor(item.Name, item.Build, p.opts)
		if err != nil {
			p.err = fmt.Errorf("%s: %w", item.Name, err)
			return p, nil
		}
		p.err = nil
		p.monitor = &mon
		return p, mon.Init()
	}
	return p, nil
}

// Selected returns the highlighted item name.
func (p Picker) Selected() string {
	if len(p.items) == 0 {
		return ""
	}
	return p.items[p.cursor].Name
}

func (p Picker) View() string {
	if p.monitor != nil {
		return p.monitor.View()
	}
	st := GetTheme(p.opts.Theme).styles()

	var b strings.Builder
	b.WriteString("\n\n    " + st.header.Render("GAITSIM") + "\n    " + st.help.Render("musculoskeletal models") + "\n\n")
	for i, item := range p.items {
		desc := item.Description
		if len(desc) > 48 {
			desc = desc[:45] + "..."
		}
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", st.active.Render("▸"), st.active.Render(fmt.Sprintf("%-12s", item.Name)), st.value.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", st.label.Render(fmt.Sprintf("%-12s", item.Name)), st.help.Render(desc)))
		}
	}
	if p.err != nil {
		b.WriteString("\n    " + st.failed.Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n    " + st.help.Render("j/k navigate  enter start  q quit") + "\n")
	return b.String()
}

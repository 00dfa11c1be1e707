// Package browser implements the interactive command browser behind
// "rig help --interactive": a filterable list of every command path
// with its usage text as the preview.
package browser

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/rig-tools/cli/internal/dispatchers"
	"github.com/rig-tools/cli/internal/domain"
)

// Run opens the browser over the command tree. When the user selects a
// command, its usage text is shown through the output writer's pager
// after the program exits.
func Run(root *dispatchers.Node, out domain.OutputWriter) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("interactive help requires a terminal")
	}

	items := collectItems(root)

	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, 0, 0)
	l.Title = "rig commands"
	l.SetShowStatusBar(false)

	model := browserModel{list: l}
	program := tea.NewProgram(model, tea.WithAltScreen())

	final, err := program.Run()
	if err != nil {
		return err
	}

	if selected := final.(browserModel).selected; selected != nil {
		out.Pager(selected.usage)
	}
	return nil
}

func collectItems(root *dispatchers.Node) []list.Item {
	var items []list.Item
	for _, path := range dispatchers.CommandPaths(root, "") {
		node, ok := dispatchers.ResolvePath(root, strings.Fields(path))
		if !ok {
			continue
		}
		items = append(items, commandItem{
			path:  path,
			usage: node.UsageText(),
		})
	}
	return items
}

type commandItem struct {
	path  string
	usage string
}

func (i commandItem) FilterValue() string { return i.path }
func (i commandItem) Title() string       { return i.path }

// Description shows the first non-empty usage line after the Usage:
// heading.
func (i commandItem) Description() string {
	for _, line := range strings.Split(i.usage, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "Usage:") {
			continue
		}
		return trimmed
	}
	return ""
}

type browserModel struct {
	list     list.Model
	selected *commandItem
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(commandItem); ok {
				m.selected = &item
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browserModel) View() string {
	return m.list.View()
}

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/cloudgram/cloudgram/pkg/icons"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// iconsCommand creates the icons command for browsing the icon catalog.
func (c *CLI) iconsCommand() *cobra.Command {
	var (
		provider    string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "icons",
		Short: "Browse the icon catalog",
		Long: `Browse the icon catalog.

Lists every icon that manifests and the library can reference, with its
provider/category/name key. Use --interactive for a scrollable browser that
copies the selected key to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := filterCatalog(provider)
			if err != nil {
				return err
			}
			if interactive {
				return runIconBrowser(entries)
			}
			printIconTable(entries)
			return nil
		},
	}

	cmd.Flags().StringVarP(&provider, "provider", "p", "", "filter by provider (aws, onprem, programming)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse icons interactively")

	return cmd
}

// filterCatalog returns catalog entries, optionally restricted to one provider.
func filterCatalog(provider string) ([]icons.CatalogEntry, error) {
	all := icons.Catalog()
	if provider == "" {
		return all, nil
	}
	if _, err := icons.Categories(provider); err != nil {
		return nil, err
	}
	provider = strings.ToLower(provider)
	out := make([]icons.CatalogEntry, 0, len(all))
	for _, e := range all {
		if e.Icon.Provider == provider {
			out = append(out, e)
		}
	}
	return out, nil
}

// printIconTable prints the catalog as a static table.
func printIconTable(entries []icons.CatalogEntry) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Icon.Key(), e.Title, e.Icon.Category}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Key", "Title", "Category").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return listNormalStyle
		})

	fmt.Println(t)
	printDetail("%d icons", len(entries))
}

// runIconBrowser runs the interactive icon browser and prints the selected key.
func runIconBrowser(entries []icons.CatalogEntry) error {
	m := newIconListModel(entries)
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("icon browser: %w", err)
	}
	if fm, ok := final.(IconListModel); ok && fm.Selected != nil {
		fmt.Println(fm.Selected.Key())
	}
	return nil
}

// =============================================================================
// IconListModel - Interactive icon browser
// =============================================================================

// IconListModel is the bubbletea model for the icon browser.
type IconListModel struct {
	Entries  []icons.CatalogEntry
	Cursor   int
	Selected *icons.Icon
	Height   int
	Offset   int
}

// newIconListModel creates an icon browser over the given entries.
func newIconListModel(entries []icons.CatalogEntry) IconListModel {
	return IconListModel{
		Entries: entries,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m IconListModel) Init() tea.Cmd {
	return nil
}

func (m IconListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			icon := m.Entries[m.Cursor].Icon
			m.Selected = &icon
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m IconListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Icon Catalog"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		line := fmt.Sprintf("%s%-40s %s", cursor, e.Icon.Key(), e.Title)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if len(m.Entries) > m.Height {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%d-%d of %d", m.Offset+1, end, len(m.Entries))))
	}

	return b.String()
}

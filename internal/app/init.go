package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/amitgawande/tools/internal/config"
	"github.com/amitgawande/tools/internal/locks"
)

type InitOptions struct {
	Reporter Reporter
}

// FindRoot walks up from dir looking for toolindex.toml and falls back to dir.
func FindRoot(dir string) string {
	current := dir
	for {
		if _, err := os.Stat(filepath.Join(current, config.FileName)); err == nil {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir
		}
		current = parent
	}
}

func Init(root string, opts InitOptions) error {
	reporter := ensureReporter(opts.Reporter)
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("init requires an interactive terminal")
	}

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	configPath := filepath.Join(rootAbs, config.FileName)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists at %s", config.FileName, configPath)
	} else if !os.IsNotExist(err) {
		return err
	}

	variant, err := promptVariant()
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, []byte(renderConfigTemplate(variant)), 0o644); err != nil {
		return err
	}
	reporter.Info("created " + config.FileName)

	changed, err := ensureLine(filepath.Join(rootAbs, ".gitignore"), "/"+locks.Dir+"/")
	if err != nil {
		return err
	}
	if changed {
		reporter.Info("updated .gitignore")
	}

	reporter.Info("next steps:")
	reporter.Info("1. Give each tool directory an index.html and a README.md.")
	reporter.Info("2. Add ## Metadata and ## Description sections to each README.")
	reporter.Info("3. Run `toolindex` to generate index.html.")
	return nil
}

var variantDescriptions = map[string]string{
	config.VariantRecency:   "Pills, most recently updated first",
	config.VariantUnordered: "Cards in directory order",
}

func promptVariant() (string, error) {
	program := tea.NewProgram(newVariantModel())
	result, err := program.Run()
	if err != nil {
		return "", err
	}
	final, ok := result.(variantModel)
	if !ok {
		return "", errors.New("unexpected selection result")
	}
	if final.aborted {
		return "", errors.New("init canceled")
	}
	return config.Variants[final.cursor], nil
}

func renderConfigTemplate(variant string) string {
	defaults := config.Default()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("output = %q\n\n", defaults.Output))
	b.WriteString("[site]\n")
	b.WriteString(fmt.Sprintf("title = %q\n", defaults.Site.Title))
	b.WriteString(fmt.Sprintf("subtitle = %q\n", defaults.Site.Subtitle))
	b.WriteString(fmt.Sprintf("author = %q\n", defaults.Site.Author))
	b.WriteString(fmt.Sprintf("author_url = %q\n\n", defaults.Site.AuthorURL))
	b.WriteString("[catalog]\n")
	b.WriteString("# exclude = [\"drafts-*\"]\n")
	b.WriteString("# legacy = false\n\n")
	b.WriteString("[render]\n")
	b.WriteString(fmt.Sprintf("variant = %q\n", variant))
	b.WriteString(fmt.Sprintf("truncate = %d\n", config.DefaultTruncate))
	return b.String()
}

func ensureLine(path, line string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, os.WriteFile(path, []byte(line+"\n"), 0o644)
		}
		return false, err
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	for _, existing := range strings.Split(content, "\n") {
		if strings.TrimSpace(existing) == strings.TrimSpace(line) {
			return false, nil
		}
	}

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += line + "\n"
	return true, os.WriteFile(path, []byte(content), 0o644)
}

type variantModel struct {
	cursor  int
	aborted bool
	styles  variantStyles
}

type variantStyles struct {
	title      lipgloss.Style
	item       lipgloss.Style
	itemActive lipgloss.Style
	cursor     lipgloss.Style
	detail     lipgloss.Style
	hint       lipgloss.Style
}

func newVariantModel() variantModel {
	return variantModel{
		styles: variantStyles{
			title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
			item:       lipgloss.NewStyle().Foreground(lipgloss.Color("251")),
			itemActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
			cursor:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
			detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
			hint:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
	}
}

func (m variantModel) Init() tea.Cmd {
	return nil
}

func (m variantModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.aborted = true
		return m, tea.Quit
	case tea.KeyEnter:
		return m, tea.Quit
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < len(config.Variants)-1 {
			m.cursor++
		}
	}
	return m, nil
}

func (m variantModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Page layout"))
	b.WriteString("\n\n")
	for i, variant := range config.Variants {
		cursor := " "
		itemStyle := m.styles.item
		if i == m.cursor {
			cursor = ">"
			itemStyle = m.styles.itemActive
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			m.styles.cursor.Render(cursor),
			itemStyle.Render(variant),
			m.styles.detail.Render(variantDescriptions[variant]),
		))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.hint.Render("up/down to move | enter to confirm | esc to cancel"))
	return b.String()
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Lixing-Zhang/course-catalog/internal/catalogview"
	"github.com/Lixing-Zhang/course-catalog/internal/models"
	"github.com/Lixing-Zhang/course-catalog/pkg/logger"
)

const heading = "Cursos SENAI 2070"

type focus int

const (
	focusCatalog focus = iota
	focusCart
	focusSearch
)

func (f focus) String() string {
	switch f {
	case focusCart:
		return "cart"
	case focusSearch:
		return "search"
	default:
		return "catalog"
	}
}

type model struct {
	theme Theme
	deps  Deps

	view   catalogview.View
	search textinput.Model
	focus  focus

	cursor     int
	cartCursor int

	// one-shot message shown above the key help, cleared by the next key
	notice string
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	ti := textinput.New()
	ti.Placeholder = "Buscar cursos..."
	ti.Prompt = "Buscar: "
	ti.CharLimit = 64

	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}

	return model{
		theme:  DefaultTheme(),
		deps:   deps,
		view:   catalogview.New(deps.Items),
		search: ti,
		focus:  focusCatalog,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.search.Width = max(msg.Width-12, 10)
		return m, nil

	case tea.KeyMsg:
		m.notice = ""

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			return m.setFocus((m.focus + 1) % 3)
		case "shift+tab":
			return m.setFocus((m.focus + 2) % 3)
		}

		switch m.focus {
		case focusSearch:
			return m.updateSearch(msg)
		case focusCart:
			return m.updateCart(msg)
		default:
			return m.updateCatalog(msg)
		}
	}

	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "down":
		return m.setFocus(focusCatalog)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	if term := m.search.Value(); term != m.view.SearchTerm() {
		m.view = m.view.SetSearchTerm(term)
		m.cursor = clamp(m.cursor, len(m.view.DisplayList()))
	}
	return m, cmd
}

func (m model) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.view.DisplayList()

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		return m.setFocus(focusSearch)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(list)-1 {
			m.cursor++
		}
	case "enter", "a", "+":
		if len(list) > 0 {
			id := list[m.cursor].ID
			m.view = m.view.AddItem(id)
			m.deps.Logger.Debug("cart.add", "item_id", id, "quantity", m.view.Quantity(id))
		}
	case "s":
		next := models.SortByPrice
		if m.view.SortOption() == models.SortByPrice {
			next = models.SortByTitle
		}
		m.view = m.view.SetSortOption(next)
	}
	return m, nil
}

func (m model) updateCart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := m.view.Cart()

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		return m.setFocus(focusSearch)
	case "up", "k":
		if m.cartCursor > 0 {
			m.cartCursor--
		}
	case "down", "j":
		if m.cartCursor < len(lines)-1 {
			m.cartCursor++
		}
	case "enter", "d", "x", "-", "backspace":
		if len(lines) > 0 {
			id := lines[m.cartCursor].Item.ID
			m.view = m.view.RemoveItem(id)
			m.cartCursor = clamp(m.cartCursor, len(m.view.Cart()))
			m.deps.Logger.Debug("cart.remove", "item_id", id, "quantity", m.view.Quantity(id))
		}
	case "+":
		if len(lines) > 0 {
			m.view = m.view.AddItem(lines[m.cartCursor].Item.ID)
		}
	}
	return m, nil
}

func (m model) setFocus(f focus) (tea.Model, tea.Cmd) {
	m.focus = f
	if f == focusSearch {
		return m, m.search.Focus()
	}
	m.search.Blur()
	return m, nil
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)

	header := m.theme.Title.Render(heading) + "\n" +
		m.theme.Subtitle.Render(fmt.Sprintf("%d cursos • %s", len(m.view.Items()), m.view.SortOption().Label()))

	search := m.box(focusSearch).Render(m.search.View())
	catalog := m.box(focusCatalog).Render(m.renderCatalog())
	cart := m.box(focusCart).Render(m.renderCart())

	return wrap.Render(strings.Join([]string{header, search, catalog, cart, m.renderHelp()}, "\n"))
}

func (m model) renderCatalog() string {
	list := m.view.DisplayList()
	if len(list) == 0 {
		return m.theme.Help.Render("Nenhum curso encontrado.")
	}

	var b strings.Builder
	for i, it := range list {
		cursor := "  "
		title := it.Title
		if m.focus == focusCatalog && i == m.cursor {
			cursor = "> "
			title = m.theme.Selected.Render(title)
		}

		fmt.Fprintf(&b, "%s%s  %s", cursor, title, m.theme.Price.Render("Preço: "+it.Price.String()))
		if qty := m.view.Quantity(it.ID); qty > 0 {
			b.WriteString(m.theme.Badge.Render(fmt.Sprintf("  [%d no carrinho]", qty)))
		}
		if i < len(list)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m model) renderCart() string {
	summary := m.view.CartSummary()

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Carrinho de Compras"))

	if summary.Empty() {
		b.WriteString("\n" + m.theme.Help.Render("Carrinho vazio."))
		return b.String()
	}

	for i, l := range summary.Lines {
		cursor := "  "
		title := l.Title
		if m.focus == focusCart && i == m.cartCursor {
			cursor = "> "
			title = m.theme.Selected.Render(title)
		}
		fmt.Fprintf(&b, "\n%s%s  Preço: %s  Quantidade: %d  Total: %s",
			cursor, title, l.UnitPrice, l.Quantity, l.LineTotal)
	}

	fmt.Fprintf(&b, "\n\nTotal (%d itens): %s", summary.TotalQuantity, m.theme.Price.Render(summary.Total.String()))
	return b.String()
}

func (m model) renderHelp() string {
	var b strings.Builder
	if m.notice != "" {
		b.WriteString(m.theme.Badge.Render(m.notice) + "\n")
	}

	var keys string
	switch m.focus {
	case focusSearch:
		keys = "type to filter • enter/esc done • tab next"
	case focusCart:
		keys = "↑/↓ navigate • d remove one • + add one • / search • tab next • q quit"
	default:
		keys = "↑/↓ navigate • enter add • s sort title/price • / search • tab next • q quit"
	}
	b.WriteString(m.theme.Help.Render(keys))

	if m.deps.Debug {
		b.WriteString("\n" + m.theme.Help.Render(m.debugLine()))
	}
	return b.String()
}

func (m model) debugLine() string {
	summary := m.view.CartSummary()
	return fmt.Sprintf("debug: focus=%s cursor=%d/%d cart_cursor=%d/%d search=%q sort=%s",
		m.focus, m.cursor, len(m.view.DisplayList()), m.cartCursor, len(summary.Lines),
		m.view.SearchTerm(), m.view.SortOption())
}

func (m model) box(f focus) lipgloss.Style {
	if m.focus == f {
		return m.theme.Focused
	}
	return m.theme.Card
}

// clamp keeps a cursor inside a list of n rows
func clamp(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

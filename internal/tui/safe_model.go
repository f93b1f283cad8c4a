package tui

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lixing-Zhang/course-catalog/pkg/logger"
)

const updateFailedNotice = "Erro inesperado: a ação foi ignorada (veja o log)."

// safeModel keeps the program alive when the catalog model panics.
// A message that panics in Update is dropped: the model from before it,
// cart and search included, stays current and a notice is shown.
// A panic in View falls back to a plain rendering of the cart.
type safeModel struct {
	m   model
	log *slog.Logger
}

func wrapSafe(m model, log *slog.Logger) safeModel {
	if log == nil {
		log = logger.Discard()
	}
	return safeModel{m: m, log: log}
}

func (s safeModel) Init() tea.Cmd {
	return s.m.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic("update", r, "msg", fmt.Sprintf("%T %v", msg, msg))

			s.m.notice = updateFailedNotice
			tm, cmd = s, nil
		}
	}()

	next, c := s.m.Update(msg)
	if mm, ok := next.(model); ok {
		s.m = mm
	}
	return s, c
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic("view", r)
			out = s.fallbackView()
		}
	}()
	return s.m.View()
}

func (s safeModel) logPanic(where string, r any, args ...any) {
	args = append([]any{
		"where", "tui." + where,
		"panic", fmt.Sprint(r),
		"focus", s.m.focus.String(),
		"cart_lines", len(s.m.view.Cart()),
		"stack", string(debug.Stack()),
	}, args...)
	s.log.Error("panic.recovered", args...)
}

// fallbackView renders the cart without styling so the user still sees
// what they picked
func (s safeModel) fallbackView() string {
	var b strings.Builder
	b.WriteString(heading + "\n\nErro ao desenhar a tela (veja o log).\n")

	summary := s.m.view.CartSummary()
	for _, l := range summary.Lines {
		fmt.Fprintf(&b, "\n%s  Quantidade: %d  Total: %s", l.Title, l.Quantity, l.LineTotal)
	}
	if !summary.Empty() {
		fmt.Fprintf(&b, "\n\nTotal (%d itens): %s", summary.TotalQuantity, summary.Total)
	}
	return b.String()
}

var _ tea.Model = safeModel{}

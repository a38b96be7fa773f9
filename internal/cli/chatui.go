package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/rvasani/shopcopilot/internal/chat"
)

const pingTimeout = 5 * time.Second

// turnResultMsg carries the outcome of a dispatched turn back into the
// update loop, where the session is reconciled.
type turnResultMsg struct {
	turn  *chat.Turn
	reply chat.TurnReply
	err   error
}

// pingResultMsg carries the startup reachability probe result.
type pingResultMsg struct {
	err error
}

// chatModel is the bubbletea model for an interactive session. All session
// mutation happens inside Update; network calls run as commands.
type chatModel struct {
	session *chat.Session
	timeout time.Duration
	logger  *slog.Logger
	theme   Theme

	input    textinput.Model
	spin     spinner.Model
	waiting  bool
	status   string
	quitting bool
	width    int
}

// newChatModel creates the chat UI model around an existing session.
func newChatModel(sess *chat.Session, timeout time.Duration, logger *slog.Logger) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask about products, prices, or /attach an image"
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return chatModel{
		session: sess,
		timeout: timeout,
		logger:  logger,
		theme:   defaultTheme,
		input:   ti,
		spin:    sp,
	}
}

// Init probes the backend so an unreachable server is reported before the
// first message is typed.
func (m chatModel) Init() tea.Cmd {
	return m.ping()
}

// Update handles messages and returns the updated model.
func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			return m.submit()
		}
		// Typing stays live while a reply is awaited.

	case pingResultMsg:
		if msg.err != nil {
			m.logger.Warn("backend unreachable", "error", msg.err)
			m.status = "backend unreachable, messages will fail until it is back"
		}
		return m, nil

	case turnResultMsg:
		m.session.Reconcile(msg.turn, msg.reply, msg.err)
		m.waiting = false
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit handles Enter: slash commands act locally, anything else starts a
// turn. The input field clears as soon as the turn begins, before any
// network activity.
func (m chatModel) submit() (tea.Model, tea.Cmd) {
	trimmed := strings.TrimSpace(m.input.Value())
	if strings.HasPrefix(trimmed, "/") {
		return m.runCommand(trimmed)
	}

	turn, err := m.session.Begin(m.input.Value())
	switch {
	case errors.Is(err, chat.ErrEmptySubmit):
		return m, nil
	case errors.Is(err, chat.ErrTurnInFlight):
		m.status = "still waiting on the previous reply"
		return m, nil
	case err != nil:
		m.status = err.Error()
		return m, nil
	}

	m.input.SetValue("")
	m.status = ""
	m.waiting = true
	return m, tea.Batch(m.spin.Tick, m.dispatch(turn))
}

// runCommand executes a local slash command.
func (m chatModel) runCommand(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	m.input.SetValue("")

	switch fields[0] {
	case "/attach":
		if len(fields) < 2 {
			m.status = "usage: /attach <path>"
			return m, nil
		}
		path := strings.Join(fields[1:], " ")
		data, err := os.ReadFile(path)
		if err != nil {
			m.status = fmt.Sprintf("cannot read %s: %v", path, err)
			return m, nil
		}
		m.session.Attachments().Select(filepath.Base(path), data)
		m.status = ""
		return m, nil

	case "/detach":
		m.session.Attachments().Clear()
		m.status = ""
		return m, nil

	case "/open":
		if len(fields) != 2 {
			m.status = "usage: /open <n>"
			return m, nil
		}
		return m.openProduct(fields[1])

	case "/quit":
		m.quitting = true
		return m, tea.Quit

	default:
		m.status = fmt.Sprintf("unknown command %s", fields[0])
		return m, nil
	}
}

// openProduct opens the n-th product link of the latest gallery in the
// system browser.
func (m chatModel) openProduct(arg string) (tea.Model, tea.Cmd) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		m.status = "usage: /open <n>"
		return m, nil
	}

	products := m.latestProducts()
	if n > len(products) {
		m.status = fmt.Sprintf("no product %d in the latest reply", n)
		return m, nil
	}
	link := products[n-1].Link
	if link == "" {
		m.status = fmt.Sprintf("product %d has no link", n)
		return m, nil
	}

	if err := openBrowser(link); err != nil {
		m.logger.Warn("failed to open link", "link", link, "error", err)
		m.status = fmt.Sprintf("could not open %s", link)
		return m, nil
	}
	m.status = "opened " + link
	return m, nil
}

// latestProducts returns the gallery of the most recent bot reply that has
// one, or nil.
func (m chatModel) latestProducts() []chat.ProductResult {
	records := m.session.Log().All()
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Role == chat.RoleBot && len(records[i].Products) > 0 {
			return records[i].Products
		}
	}
	return nil
}

// dispatch sends the turn off the update loop and feeds the outcome back as
// a message.
func (m chatModel) dispatch(t *chat.Turn) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		reply, err := m.session.Dispatch(ctx, t)
		return turnResultMsg{turn: t, reply: reply, err: err}
	}
}

// ping probes the backend root endpoint.
func (m chatModel) ping() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()

		return pingResultMsg{err: backend.Ping(ctx)}
	}
}

// View renders the transcript, pending attachment, and input line.
func (m chatModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m chatModel) renderContent() string {
	var b strings.Builder
	b.WriteString(m.theme.titleStyle().Render("Shopping Copilot") + "\n\n")

	for _, rec := range m.session.Log().All() {
		switch rec.Role {
		case chat.RoleUser:
			b.WriteString(m.theme.userStyle().Render("you") + "  " + rec.Text + "\n")
			if rec.Image != nil && !rec.Image.Released() {
				b.WriteString(m.theme.hintStyle().Render("     [image: "+rec.Image.Name()+"]") + "\n")
			}
		case chat.RoleBot:
			b.WriteString(m.theme.botStyle().Render("bot") + "  " + rec.Text + "\n")
			if cards := chat.RenderProducts(rec.Products); len(cards) > 0 {
				b.WriteString(renderCards(cards, m.theme))
				b.WriteString(m.theme.hintStyle().Render("     /open <n> to view in browser") + "\n")
			}
		}
		b.WriteString("\n")
	}

	if att := m.session.Attachments().Pending(); att != nil {
		b.WriteString(m.theme.hintStyle().Render("attached: "+att.Name+" (/detach to remove)") + "\n")
	}

	if m.waiting {
		b.WriteString(m.spin.View() + " waiting for the copilot\n")
	}
	if m.status != "" {
		b.WriteString(m.theme.errorStyle().Render(m.status) + "\n")
	}

	b.WriteString(m.input.View() + "\n")
	return b.String()
}

// openBrowser launches the platform opener for a URL, the terminal analog of
// a new browsing context.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

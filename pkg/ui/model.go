// Package ui is the interactive terminal front end of quotechat.
package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"quotechat/pkg/api"
	"quotechat/pkg/chat"
	"quotechat/pkg/ui/input"
	"quotechat/pkg/ui/styles"
	"quotechat/pkg/ui/transcript"
	"quotechat/pkg/ui/utils"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

const (
	headerTitle = "quotechat · window quote assistant"
	footerHelp  = "enter send · shift+enter newline · ctrl+o thinking · ctrl+n new · ctrl+y copy quote · pgup/pgdn scroll · ctrl+c quit"
)

// Model represents the Bubble Tea application state
type Model struct {
	client     api.Chatter
	controller *chat.Controller

	ctx    context.Context
	cancel context.CancelFunc

	// UI Components
	layout    *LayoutManager
	viewport  *TranscriptViewport
	statusBar *StatusBarView
	input     *input.ChatInput
	spinner   spinner.Model

	clipboard io.Writer

	expandThinking bool
	width          int
	height         int
	ready          bool
}

// NewModel creates the root model. Requests run under a child of ctx, so
// cancelling ctx aborts an in-flight request. baseURL is only displayed.
func NewModel(ctx context.Context, client api.Chatter, baseURL string) Model {
	ctx, cancel := context.WithCancel(ctx)
	m := Model{
		client:     client,
		controller: chat.NewController(client),
		ctx:        ctx,
		cancel:     cancel,
		layout:     NewLayoutManager(),
		viewport:   NewTranscriptViewport(),
		statusBar:  NewStatusBarView(baseURL),
		input:      input.New(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		clipboard:  os.Stdout,
	}
	m.refresh()
	return m
}

// Init initializes the model (Bubble Tea lifecycle method)
func (m Model) Init() tea.Cmd {
	return nil
}

// Messages returns a snapshot of the conversation.
func (m Model) Messages() []chat.Message {
	return m.controller.Messages()
}

// Update handles messages and updates the model (Bubble Tea lifecycle method)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout.SetSize(msg.Width, msg.Height)
		m.input.SetWidth(m.layout.InputWidth())
		m.statusBar.SetWidth(m.layout.Width())
		m.viewport.SetHeight(m.layout.TranscriptHeight(m.input.Height()))
		m.refresh()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.PasteMsg:
		m.input.InsertString(msg.Content)
		return m, nil

	case input.SubmitMsg:
		return m.submit(msg.Text)

	case chatReplyMsg:
		m.controller.Resolve(msg.resp)
		m.finishRequest()
		return m, nil

	case chatErrorMsg:
		m.controller.Reject(msg.err)
		m.finishRequest()
		return m, nil

	case clipboardMsg:
		m.statusBar.SetMessage(msg.status)
		return m, nil

	case spinner.TickMsg:
		if !m.controller.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancel()
		return m, tea.Quit

	case "ctrl+o":
		m.expandThinking = !m.expandThinking
		m.refresh()
		return m, nil

	case "ctrl+n":
		if !m.controller.Reset() {
			m.statusBar.SetMessage("wait for the reply before starting over")
			return m, nil
		}
		slog.Info("ui_new_conversation")
		m.statusBar.SetSession("")
		m.statusBar.SetMessage("")
		m.viewport.GotoBottom()
		m.refresh()
		return m, nil

	case "ctrl+y":
		return m, m.copyQuote()

	case "pgup", "pgdown":
		m.viewport.HandleKey(msg.String())
		return m, nil
	}

	return m, m.input.Update(msg)
}

func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	req, ok := m.controller.Begin(text)
	if !ok {
		return m, nil
	}
	m.input.SetDisabled(true)
	m.statusBar.SetBusy(true)
	m.statusBar.SetMessage("")
	m.viewport.GotoBottom()
	m.refresh()
	return m, tea.Batch(sendChat(m.ctx, m.client, req), m.spinner.Tick)
}

func (m *Model) finishRequest() {
	m.input.SetDisabled(false)
	m.statusBar.SetBusy(false)
	m.statusBar.SetSession(m.controller.SessionID())
	m.refresh()
}

// refresh re-renders the transcript into the viewport.
func (m *Model) refresh() {
	lines := transcript.Render(m.controller.Messages(), transcript.Options{
		Width:          m.layout.TranscriptWidth(),
		LoadingFrame:   m.spinner.View(),
		ExpandThinking: m.expandThinking,
	})
	m.viewport.SetLines(lines)
}

func (m Model) copyQuote() tea.Cmd {
	text, ok := m.controller.LastQuote()
	out := m.clipboard
	return func() tea.Msg {
		if !ok {
			return clipboardMsg{status: "no quote to copy"}
		}
		if _, err := fmt.Fprint(out, osc52.New(text)); err != nil {
			slog.Error("ui_clipboard_error", "error", err)
			return clipboardMsg{status: "copy failed"}
		}
		return clipboardMsg{status: "quote copied"}
	}
}

// View renders the UI (Bubble Tea lifecycle method)
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	if !m.ready {
		return "Initializing..."
	}

	header := styles.TitleStyle.Render(utils.TruncateToWidth(headerTitle, m.layout.Width()))
	width := m.layout.TranscriptWidth()
	transcriptBox := styles.BoxStyle.Render(m.viewport.View(width))
	inputBox := styles.InputBoxStyle.Render(m.inputView())
	footer := styles.FooterStyle.Render(utils.TruncateToWidth(footerHelp, m.layout.Width()))

	return m.layout.RenderLayout(header, transcriptBox, inputBox, footer, m.statusBar.Render())
}

func (m Model) inputView() string {
	width := m.layout.InputWidth()
	lines := strings.Split(m.input.View(), "\n")
	rows := make([]string, 0, m.input.Height())
	for i := 0; i < m.input.Height(); i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		rows = append(rows, utils.PadStyled(line, width))
	}
	return strings.Join(rows, "\n")
}

type chatReplyMsg struct {
	resp api.ChatResponse
}

type chatErrorMsg struct {
	err error
}

type clipboardMsg struct {
	status string
}

// sendChat performs the request off the event loop.
func sendChat(ctx context.Context, client api.Chatter, req api.ChatRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Chat(ctx, req)
		if err != nil {
			return chatErrorMsg{err: err}
		}
		return chatReplyMsg{resp: resp}
	}
}

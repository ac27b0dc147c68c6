// Package tui is the interactive chat surface over the agent: a
// conversation viewport, a one-line prompt, and slash commands for
// inspecting memory, axioms, journal, and storage health.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/axon/internal/agent"
	"github.com/jeanpaul/axon/internal/health"
)

var thinkingSpinner = spinner.Spinner{
	Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	FPS:    time.Second / 12,
}

type chatMessage struct {
	role    string // user, agent, markdown, system, error, welcome
	content string
}

type responseMsg struct {
	reply string
	err   error
}

type Model struct {
	width, height int
	viewport      viewport.Model
	textarea      textarea.Model
	spinner       spinner.Model
	menu          MenuModel
	messages      []chatMessage
	busy          bool

	agent    *agent.Agent
	renderer *glamour.TermRenderer
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewModel(agt *agent.Agent) Model {
	ta := textarea.New()
	ta.Placeholder = "Écris ton message..."
	ta.Focus()
	ta.CharLimit = 0
	ta.SetHeight(1)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(White)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(DimGreen)
	ta.BlurredStyle.Base = lipgloss.NewStyle().Foreground(DarkGreen)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = thinkingSpinner
	sp.Style = SpinnerStyle

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		viewport: vp,
		textarea: ta,
		spinner:  sp,
		menu:     NewMenuModel(),
		agent:    agt,
		renderer: r,
		ctx:      ctx,
		cancel:   cancel,
	}
	m.messages = append(m.messages, chatMessage{
		role: "welcome",
		content: fmt.Sprintf(`Bienvenue dans Axon. Mémoire locale : %s

Essaie par exemple :
  • apprends que le ciel est bleu
  • j'aime les pommes
  • cherche capitale de la France
  • qui est le ciel ?
  • oublie le ciel

Tape / pour la liste des commandes.`, agt.Store().Root()),
	})
	m.rebuildView()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, tea.EnableMouseCellMotion)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		if m.menu.active {
			switch msg.String() {
			case "enter":
				if selected := m.menu.list.SelectedItem(); selected != nil {
					chosen := selected.(item).Title()
					m.menu.active = false
					m.resize()
					if chosen == "/quit" {
						m.cancel()
						return m, tea.Quit
					}
					m.textarea.SetValue(chosen)
					m.textarea.Focus()
					return m, nil
				}
			case "esc":
				m.menu.active = false
				m.resize()
				m.textarea.Focus()
				return m, nil
			}
			var cmd tea.Cmd
			m.menu, cmd = m.menu.Update(msg)
			return m, cmd
		}

		// "/" on an empty line opens the command menu; the key is
		// forwarded so list filtering starts immediately.
		if msg.String() == "/" && m.textarea.Value() == "" && !m.busy {
			m.menu.active = true
			m.menu.list.ResetSelected()
			m.menu.list.ResetFilter()
			m.resize()
			var cmd tea.Cmd
			m.menu, cmd = m.menu.Update(msg)
			return m, cmd
		}

		switch msg.Type {
		case tea.KeyPgUp:
			m.viewport.HalfViewUp()
			return m, nil
		case tea.KeyPgDown:
			m.viewport.HalfViewDown()
			return m, nil
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancel()
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.textarea.Value())
			if m.busy {
				if text != "" {
					m.appendSystem("L'agent travaille encore, patiente un instant.")
					m.rebuildView()
				}
				return m, nil
			}
			if text == "" {
				return m, nil
			}
			m.textarea.Reset()
			if strings.HasPrefix(text, "/") {
				return m.handleSlashCommand(text)
			}
			m.messages = append(m.messages, chatMessage{role: "user", content: text})
			m.busy = true
			m.rebuildView()
			return m, tea.Batch(m.spinner.Tick, m.sendPrompt(text))
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress || msg.Action == tea.MouseActionMotion {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.viewport.LineUp(3)
				return m, nil
			case tea.MouseButtonWheelDown:
				m.viewport.LineDown(3)
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case responseMsg:
		m.busy = false
		if msg.err != nil {
			m.messages = append(m.messages, chatMessage{role: "error", content: msg.err.Error()})
		} else {
			m.messages = append(m.messages, chatMessage{role: "agent", content: msg.reply})
		}
		m.rebuildView()
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			m.rebuildView()
			return m, cmd
		}
	}

	if !m.menu.active {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// sendPrompt runs the prompt off the update loop; live search can take
// seconds.
func (m Model) sendPrompt(text string) tea.Cmd {
	agt, ctx := m.agent, m.ctx
	return func() tea.Msg {
		reply, err := agt.Respond(ctx, text)
		return responseMsg{reply: reply, err: err}
	}
}

func (m *Model) handleSlashCommand(text string) (Model, tea.Cmd) {
	parts := strings.Fields(text)

	switch parts[0] {
	case "/help":
		m.appendSystem(`Commandes :
  /help      — cette aide
  /memory    — faits et préférences enregistrés
  /axioms    — axiomes de comportement
  /logs [n]  — les n derniers échanges (5 par défaut)
  /doctor    — état des fichiers de stockage
  /clear     — effacer la transcription affichée
  /quit      — quitter

Raccourcis :
  Entrée        — envoyer
  PgUp/PgDn     — faire défiler
  Échap, Ctrl+C — quitter`)

	case "/memory":
		mem, err := m.agent.Store().LoadMemory()
		if err != nil {
			m.appendError(err.Error())
		} else {
			m.appendSystem(formatMemory(mem))
		}

	case "/axioms":
		axioms, err := m.agent.Store().LoadAxioms()
		switch {
		case err != nil:
			m.appendError(err.Error())
		case strings.TrimSpace(axioms) == "":
			m.appendSystem("Aucun axiome défini. Fichier : " + m.agent.Store().AxiomsPath())
		default:
			rendered := axioms
			if m.renderer != nil {
				if out, rerr := m.renderer.Render(axioms); rerr == nil {
					rendered = out
				}
			}
			m.messages = append(m.messages, chatMessage{role: "markdown", content: rendered})
		}

	case "/logs":
		n := 5
		if len(parts) > 1 {
			if v, err := strconv.Atoi(parts[1]); err == nil && v > 0 {
				n = v
			}
		}
		entries, err := m.agent.Store().TailLogs(n)
		if err != nil {
			m.appendError(err.Error())
		} else {
			m.appendSystem(formatLogs(entries))
		}

	case "/doctor":
		m.appendSystem(formatHealth(health.Check(m.agent.Store())))

	case "/clear":
		m.messages = nil
		m.appendSystem("Transcription effacée. La mémoire sur disque reste intacte.")

	case "/quit":
		m.cancel()
		return *m, tea.Quit

	default:
		m.appendError(fmt.Sprintf("Commande inconnue : %s (/help pour la liste)", parts[0]))
	}

	m.rebuildView()
	return *m, nil
}

func (m *Model) appendSystem(content string) {
	m.messages = append(m.messages, chatMessage{role: "system", content: content})
}

func (m *Model) appendError(content string) {
	m.messages = append(m.messages, chatMessage{role: "error", content: content})
}

func (m *Model) resize() {
	headerH := 9
	inputH := 3
	menuH := 0
	if m.menu.active {
		menuH = 16
	}
	m.viewport.Width = m.width - 4
	m.viewport.Height = m.height - headerH - inputH - menuH
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.textarea.SetWidth(m.width - 6)
	m.rebuildView()
}

func (m *Model) rebuildView() {
	var sb strings.Builder

	for _, msg := range m.messages {
		switch msg.role {
		case "welcome":
			sb.WriteString(AgentMsgStyle.Render(msg.content) + "\n\n")
		case "user":
			sb.WriteString(UserLabelStyle.Render("VOUS") + "\n")
			sb.WriteString(UserMsgStyle.Render(msg.content) + "\n\n")
		case "agent":
			sb.WriteString(AgentLabelStyle.Render("AXON") + "\n")
			sb.WriteString(AgentMsgStyle.Render(msg.content) + "\n\n")
		case "markdown":
			sb.WriteString(strings.TrimRight(msg.content, "\n") + "\n\n")
		case "system":
			sb.WriteString(SystemMsgStyle.Render(msg.content) + "\n\n")
		case "error":
			sb.WriteString(ErrorStyle.Render("✗ "+msg.content) + "\n\n")
		}
	}

	if m.busy {
		sb.WriteString(SpinnerStyle.Render(m.spinner.View()+" Je réfléchis...") + "\n")
	}

	wasAtBottom := m.viewport.AtBottom()
	m.viewport.SetContent(sb.String())
	if wasAtBottom || len(m.messages) <= 1 {
		m.viewport.GotoBottom()
	}
}

func (m Model) View() string {
	status := StatusStyle.Render(fmt.Sprintf("stockage : %s  •  recherche : %s",
		m.agent.Store().Root(), m.agent.ProviderName()))

	header := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(DimGreen).
		Width(m.width).
		Align(lipgloss.Center).
		Render(BannerStyle.Render(strings.TrimRight(Banner, "\n")) + "\n" + status)

	prompt := lipgloss.NewStyle().Foreground(Green).Bold(true).Render("> ")
	inputStyle := InputActiveStyle
	if m.busy {
		prompt = lipgloss.NewStyle().Foreground(MedGreen).Bold(true).Render("● ")
		inputStyle = InputBorderStyle
	}
	inputBox := inputStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, prompt, m.textarea.View()))

	help := HelpStyle.Render("Entrée : envoyer  •  / : commandes  •  Échap : quitter")

	mainView := lipgloss.JoinVertical(lipgloss.Left,
		header,
		ViewportStyle.Render(m.viewport.View()),
		inputBox,
		lipgloss.NewStyle().PaddingLeft(2).Render(help),
	)

	if m.menu.active {
		return lipgloss.JoinVertical(lipgloss.Left, mainView, m.menu.View())
	}
	return mainView
}

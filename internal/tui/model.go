// Package tui provides the Bubble Tea arcade interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/neontype/internal/game"
	"github.com/verte-zerg/neontype/internal/model"
	statsPkg "github.com/verte-zerg/neontype/internal/stats"
)

const (
	refreshInterval = 100 * time.Millisecond
	flashDuration   = 600 * time.Millisecond
	barWidth        = 40
)

// Engine is the part of game.Engine the interface drives.
type Engine interface {
	Start(ctx context.Context) (model.Snapshot, error)
	Submit(ctx context.Context, buf string) (model.Snapshot, error)
	End(ctx context.Context) (model.Snapshot, error)
	Snapshot() model.Snapshot
}

type startMsg struct{}

type refreshMsg time.Time

type eventMsg game.Event

type eventsClosedMsg struct{}

// Model implements the Bubble Tea game UI.
type Model struct {
	ctx    context.Context
	engine Engine
	events <-chan game.Event
	tuning model.Tuning

	input  textinput.Model
	health progress.Model
	combo  progress.Model

	snap       model.Snapshot
	flash      string
	flashStyle lipgloss.Style
	flashUntil time.Time

	width  int
	height int
	err    error
}

var (
	correctStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#39FF14"))
	incorrectStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0040"))
	pendingStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	pastStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	currentWordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00F0FF")).Bold(true)
	overdriveWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5F520")).Bold(true)
	cursorStyle        = currentWordStyle.Underline(true)

	neonGreen   = lipgloss.NewStyle().Foreground(lipgloss.Color("#39FF14")).Bold(true)
	neonPink    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF006E")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	endCard     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#FF006E")).Padding(1, 4)
)

// NewModel constructs the game UI around a running engine and its event feed.
// tuning sizes the health and combo gauges.
func NewModel(ctx context.Context, engine Engine, events <-chan game.Event, tuning model.Tuning) *Model {
	input := textinput.New()
	input.Prompt = neonGreen.Render(">_ ")
	input.Placeholder = "type here"
	input.Focus()

	return &Model{
		ctx:    ctx,
		engine: engine,
		events: events,
		tuning: tuning,
		input:  input,
		health: progress.New(progress.WithSolidFill("#39FF14"), progress.WithWidth(barWidth), progress.WithoutPercentage()),
		combo:  progress.New(progress.WithSolidFill("#39FF14"), progress.WithWidth(barWidth), progress.WithoutPercentage()),
		snap:   engine.Snapshot(),
	}
}

// Err returns the error that stopped the UI, if any.
func (m *Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return startMsg{} },
		listen(m.events),
		refresh(),
		textinput.Blink,
	)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := msg.Width / 2
		if w < 10 {
			w = 10
		}
		m.health.Width = w
		m.combo.Width = w
		return m, nil
	case startMsg:
		return m, m.start()
	case refreshMsg:
		m.snap = m.engine.Snapshot()
		if !m.flashUntil.IsZero() && time.Time(msg).After(m.flashUntil) {
			m.flash = ""
			m.flashUntil = time.Time{}
		}
		return m, refresh()
	case eventMsg:
		m.handleEvent(game.Event(msg))
		return m, listen(m.events)
	case eventsClosedMsg:
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.snap.Status == model.StatusPlaying {
			if _, err := m.engine.End(m.ctx); err != nil && !errors.Is(err, game.ErrStopped) {
				m.err = fmt.Errorf("failed to end session: %w", err)
			}
		}
		return tea.Quit
	case tea.KeyEsc:
		if m.snap.Status != model.StatusPlaying {
			return nil
		}
		return m.apply(m.engine.End(m.ctx))
	case tea.KeyEnter:
		if m.snap.Status == model.StatusPlaying {
			return nil
		}
		return m.start()
	}
	if m.snap.Status != model.StatusPlaying {
		return nil
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	val := m.input.Value()
	if val == prev {
		return cmd
	}
	if strings.HasSuffix(val, " ") {
		val = strings.TrimRightFunc(val, unicode.IsSpace)
	}
	return tea.Batch(cmd, m.apply(m.engine.Submit(m.ctx, val)))
}

func (m *Model) start() tea.Cmd {
	m.flash = ""
	m.flashUntil = time.Time{}
	return m.apply(m.engine.Start(m.ctx))
}

// apply adopts a command result; the input mirrors the session buffer.
func (m *Model) apply(snap model.Snapshot, err error) tea.Cmd {
	if err != nil {
		m.err = err
		return tea.Quit
	}
	m.snap = snap
	m.input.SetValue(snap.TypedChars)
	m.input.CursorEnd()
	return nil
}

func (m *Model) handleEvent(ev game.Event) {
	m.snap = m.engine.Snapshot()
	if ev.SessionID != m.snap.SessionID {
		return
	}
	switch ev.Kind {
	case game.EventKeyError:
		m.setFlash("✗ MISS", incorrectStyle)
	case game.EventWordComplete:
		m.setFlash("+ "+ev.Word, correctStyle)
	case game.EventComboMilestone:
		m.setFlash(fmt.Sprintf("COMBO x%d!", ev.Combo), neonPink)
	case game.EventOverdriveStart:
		m.setFlash("⚡ MAXIMUM OVERDRIVE ⚡", overdriveWordStyle)
	case game.EventOverdriveEnd:
		m.setFlash("overdrive cooling down", labelStyle)
	case game.EventGameOver:
		m.flash = ""
		m.flashUntil = time.Time{}
	}
}

func (m *Model) setFlash(text string, style lipgloss.Style) {
	m.flash = text
	m.flashStyle = style
	m.flashUntil = time.Now().Add(flashDuration)
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.snap.Status {
	case model.StatusGameOver:
		content = m.renderEndScreen()
	case model.StatusIdle:
		content = neonGreen.Render("NEON") + neonPink.Render("TYPE") + "\n\n" + footerStyle.Render("ENTER to start · CTRL+C to quit")
	default:
		content = m.renderPlaying()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderPlaying() string {
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 20 {
		contentWidth = 60
	}
	words := wrapStyledRunes(buildWordRunes(m.snap.Words, m.snap.CurrentWordIndex, m.snap.TypedChars, m.snap.IsOverdrive), contentWidth)

	lines := []string{
		neonGreen.Render("NEON") + neonPink.Render("TYPE") + "   " + m.renderStats(),
		"",
		m.renderHealth(),
		"",
		words,
		"",
		m.input.View(),
		"",
		m.renderCombo(),
	}
	if m.flash != "" {
		lines = append(lines, "", m.flashStyle.Render(m.flash))
	}
	lines = append(lines, "", footerStyle.Render("ESC to end · CTRL+C to quit"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderStats() string {
	snap := m.snap
	acc := snap.Accuracy
	if snap.Status == model.StatusPlaying {
		acc = statsPkg.Accuracy(snap.CorrectChars, snap.TotalChars)
	}
	segments := []string{
		stat("WPM", fmt.Sprintf("%d", snap.WPM)),
		labelStyle.Render("ACCURACY") + " " + accuracyStyle(acc).Render(fmt.Sprintf("%d%%", acc)),
		stat("WORDS", fmt.Sprintf("%d", snap.WordsCompleted)),
		stat("TIME", statsPkg.FormatElapsed(snap.Elapsed)),
		stat("LVL", fmt.Sprintf("%d", snap.Level)),
	}
	return strings.Join(segments, "  ")
}

func (m *Model) renderHealth() string {
	hp := m.snap.Health
	icon := "❤"
	switch {
	case hp < 15:
		icon = "☠"
	case hp < 30:
		icon = "⚠"
	}
	bar := m.health
	bar.FullColor = healthColor(hp)
	percent := 0.0
	if m.tuning.MaxHealth > 0 {
		percent = hp / m.tuning.MaxHealth
	}
	return fmt.Sprintf("%s %s %s %s", icon, labelStyle.Render("HEALTH"), bar.ViewAs(percent), valueStyle.Render(fmt.Sprintf("%.0f%%", hp)))
}

func (m *Model) renderCombo() string {
	snap := m.snap
	bar := m.combo
	bar.FullColor = comboColor(snap.ComboMeter, snap.IsOverdrive)
	comboText := fmt.Sprintf("%dx", snap.Combo)
	switch {
	case snap.Combo >= 25:
		comboText = neonPink.Render(comboText)
	case snap.Combo >= 10:
		comboText = overdriveWordStyle.Render(comboText)
	default:
		comboText = valueStyle.Render(comboText)
	}
	percent := 0.0
	if m.tuning.MaxComboMeter > 0 {
		percent = float64(snap.ComboMeter) / float64(m.tuning.MaxComboMeter)
	}
	line := fmt.Sprintf("%s %s %s", labelStyle.Render("COMBO"), comboText, bar.ViewAs(percent))
	if snap.IsOverdrive {
		line += "\n" + overdriveWordStyle.Render("⚡ MAXIMUM OVERDRIVE ⚡")
	}
	return line
}

func (m *Model) renderEndScreen() string {
	snap := m.snap
	rank := statsPkg.RankFor(snap.WPM)
	rankStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(rank.Color)).Bold(true)

	lines := []string{neonPink.Render("SYSTEM OFFLINE")}
	if snap.NewBest {
		lines = append(lines, overdriveWordStyle.Render("⭐ NEW PERSONAL BEST ⭐"))
	}
	lines = append(lines,
		"",
		rankStyle.Render(rank.Emoji+" "+rank.Name),
		labelStyle.Render(fmt.Sprintf("TOP %d%% OF TYPISTS", statsPkg.Percentile(snap.WPM))),
		"",
		stat("WPM", fmt.Sprintf("%d", snap.WPM)),
		stat("ACCURACY", fmt.Sprintf("%d%%", snap.Accuracy)),
		stat("MAX COMBO", fmt.Sprintf("%d", snap.MaxCombo)),
		stat("WORDS", fmt.Sprintf("%d", snap.WordsCompleted)),
		stat("TIME", statsPkg.FormatElapsed(snap.Elapsed)),
	)
	if snap.HasBest {
		lines = append(lines, "", stat("BEST", fmt.Sprintf("%d WPM · %d%%", snap.Best.WPM, snap.Best.Accuracy)))
	}
	if snap.StoreErr != "" {
		lines = append(lines, "", incorrectStyle.Render("⚠ "+snap.StoreErr))
	}
	lines = append(lines, "", footerStyle.Render("ENTER to restart · CTRL+C to quit"))
	return endCard.Render(strings.Join(lines, "\n"))
}

func stat(label, value string) string {
	return labelStyle.Render(label) + " " + valueStyle.Render(value)
}

func accuracyStyle(acc int) lipgloss.Style {
	switch {
	case acc < 80:
		return incorrectStyle
	case acc < 95:
		return overdriveWordStyle
	default:
		return correctStyle
	}
}

func healthColor(hp float64) string {
	switch {
	case hp < 15:
		return "#FF0040"
	case hp < 30:
		return "#FF4400"
	case hp > 70:
		return "#39FF14"
	default:
		return "#F5F520"
	}
}

func comboColor(meter int, overdrive bool) string {
	switch {
	case overdrive:
		return "#BF00FF"
	case meter > 75:
		return "#FF006E"
	case meter > 50:
		return "#F5F520"
	default:
		return "#39FF14"
	}
}

func listen(events <-chan game.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(ev)
	}
}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

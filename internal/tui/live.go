// Package tui renders a live match in the terminal: an ASCII arena with the
// robot and its cleaning trail, a stats panel, and a coverage curve.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sweepsim/internal/config"
	"github.com/san-kum/sweepsim/internal/match"
)

const (
	canvasWidth     = 60
	canvasHeight    = 24
	historyCapacity = 600
	frameRate       = 30
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

type cell struct{ x, y int }

// Model displays ticks streamed from a match runner and forwards operator
// commands back to it.
type Model struct {
	cfg    *config.Config
	ticks  <-chan match.Tick
	cmds   chan<- match.Command
	latest match.Tick
	seen   bool
	done   bool

	trail    map[cell]struct{}
	coverage []float64
}

func NewModel(cfg *config.Config, ticks <-chan match.Tick, cmds chan<- match.Command) Model {
	return Model{
		cfg:      cfg,
		ticks:    ticks,
		cmds:     cmds,
		trail:    make(map[cell]struct{}),
		coverage: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.send(match.CmdEnd)
			return m, tea.Quit
		case "l":
			m.send(match.CmdRelocate)
		case "e":
			m.send(match.CmdEnd)
		}
	case TickMsg:
		m.drain()
		return m, tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) send(cmd match.Command) {
	if m.done {
		return
	}
	select {
	case m.cmds <- cmd:
	default:
	}
}

// drain consumes every tick the runner produced since the last frame.
func (m *Model) drain() {
	for {
		select {
		case tk, ok := <-m.ticks:
			if !ok {
				m.done = true
				return
			}
			m.latest = tk
			m.seen = true
			x, y := m.toCanvas(tk.Pose.X, tk.Pose.Y)
			m.trail[cell{x, y}] = struct{}{}
			m.coverage = append(m.coverage, tk.Arena.CleanedPercent)
			if len(m.coverage) > historyCapacity {
				m.coverage = m.coverage[1:]
			}
		default:
			return
		}
	}
}

func (m *Model) toCanvas(wx, wy float64) (int, int) {
	half := m.cfg.Ground.SizeMeters / 2
	x := int((wx + half) / m.cfg.Ground.SizeMeters * float64(canvasWidth))
	y := int((half - wy) / m.cfg.Ground.SizeMeters * float64(canvasHeight))
	return x, y
}

func (m Model) View() string {
	canvas := make([][]rune, canvasHeight)
	for i := range canvas {
		canvas[i] = make([]rune, canvasWidth)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}
	for c := range m.trail {
		if c.x >= 0 && c.x < canvasWidth && c.y >= 0 && c.y < canvasHeight {
			canvas[c.y][c.x] = '.'
		}
	}
	if m.seen {
		x, y := m.toCanvas(m.latest.Pose.X, m.latest.Pose.Y)
		if x >= 0 && x < canvasWidth && y >= 0 && y < canvasHeight {
			canvas[y][x] = '@'
		}
	}

	var arena strings.Builder
	border := "+" + strings.Repeat("-", canvasWidth) + "+\n"
	arena.WriteString(border)
	for _, row := range canvas {
		arena.WriteString("|" + string(row) + "|\n")
	}
	arena.WriteString(border)
	canvasView := canvasStyle.Render(arena.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("SWEEPSIM "+m.cfg.Subleague) + "\n")
	status := "RUNNING"
	if m.done || (m.seen && m.latest.Arena.GameOver) {
		status = "GAME OVER"
	}
	s.WriteString(fmt.Sprintf("%s\n\n", status))

	if len(m.coverage) > 1 {
		chart := asciigraph.Plot(m.coverage, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Coverage %"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs", m.latest.Time)) + "\n")
	s.WriteString(labelStyle.Render("Score") + valueStyle.Render(fmt.Sprintf("%d", m.latest.Arena.Score)) + "\n")
	s.WriteString(labelStyle.Render("Cleaned") + valueStyle.Render(fmt.Sprintf("%.1f%%", m.latest.Arena.CleanedPercent)) + "\n")
	s.WriteString(labelStyle.Render("Remaining") + valueStyle.Render(fmt.Sprintf("%.0fs", m.latest.Arena.Remaining)) + "\n")
	if m.latest.Arena.HasBattery {
		s.WriteString(labelStyle.Render("Battery") + valueStyle.Render(fmt.Sprintf("%.0f%%", m.latest.Arena.Battery)) + "\n")
	}
	if m.latest.Arena.CurrentRoom >= 0 {
		s.WriteString(labelStyle.Render("Room") + valueStyle.Render(fmt.Sprintf("%d", m.latest.Arena.CurrentRoom)) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nL:Relocate E:End Q:Quit"))
	statsView := statsStyle.Render(s.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// chanObserver forwards ticks into a channel, dropping frames when the view
// falls behind rather than stalling the match.
type chanObserver struct {
	ch chan<- match.Tick
}

func (o chanObserver) OnTick(tk match.Tick) {
	select {
	case o.ch <- tk:
	default:
	}
}

// pacer slows the runner down to wall-clock speed so the view is watchable.
type pacer struct {
	dt time.Duration
}

func (p pacer) OnTick(match.Tick) { time.Sleep(p.dt) }

// Run plays the match in real time inside a bubbletea program.
func Run(cfg *config.Config, r *match.Runner) error {
	ticks := make(chan match.Tick, 256)
	cmds := make(chan match.Command, 4)
	r.SetCommands(cmds)
	r.AddObserver(chanObserver{ch: ticks})
	r.AddObserver(pacer{dt: time.Duration(cfg.TimeStep * float64(time.Second))})

	go func() {
		defer close(ticks)
		_, _ = r.Run(context.Background())
	}()

	p := tea.NewProgram(NewModel(cfg, ticks, cmds))
	_, err := p.Run()
	return err
}

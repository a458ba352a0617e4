// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/Thermoquad/tonelight/pkg/bridge"
	"github.com/Thermoquad/tonelight/pkg/tonelight"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

//////////////////////////////////////////////////////////////
// Constants
//////////////////////////////////////////////////////////////

const (
	batchInterval  = 50 * time.Millisecond
	tickInterval   = time.Second
	connectTimeout = 10 * time.Second
	noticeLifetime = 4 * time.Second
	maxLogLines    = 200
	ledStep        = 32
)

// shift+1/2/3 select a motor mode directly
var modeKeys = map[string]tonelight.MotorMode{
	"!": tonelight.MotorModeManual,
	"@": tonelight.MotorModeSemiAuto,
	"#": tonelight.MotorModeAuto,
}

//////////////////////////////////////////////////////////////
// Styles
//////////////////////////////////////////////////////////////

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statsLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	statsValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	focusedBoxStyle = boxStyle.
			BorderForeground(lipgloss.Color("12"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("12"))
)

//////////////////////////////////////////////////////////////
// Types
//////////////////////////////////////////////////////////////

// controlModel is the Bubble Tea model for the control panel
type controlModel struct {
	ctrl *bridge.Controller

	// Connection
	connState bridge.ConnectionState
	portInfo  string
	connErr   string
	removed   bool

	// Device
	state tonelight.State
	stats tonelight.Statistics
	log   []string

	// Control
	channel   int
	input     textinput.Model
	inputting bool
	logView   viewport.Model

	// Notices from intents (rejections, copy results)
	notice    string
	noticeErr bool
	noticeAt  time.Time

	// UI state
	width    int
	height   int
	quitting bool
}

//////////////////////////////////////////////////////////////
// Messages
//////////////////////////////////////////////////////////////

type controlTickMsg time.Time

type controlBatchMsg struct {
	events []bridge.Event
}

type connectResultMsg struct {
	err error
}

//////////////////////////////////////////////////////////////
// Model Initialization
//////////////////////////////////////////////////////////////

func initialControlModel(ctrl *bridge.Controller) controlModel {
	ti := textinput.New()
	ti.Placeholder = "led set r 512"
	ti.Prompt = ": "
	ti.CharLimit = 128
	ti.Width = 40

	m := controlModel{
		ctrl:      ctrl,
		connState: ctrl.State(),
		input:     ti,
		logView:   viewport.New(80, 10),
	}
	m.refresh()
	return m
}

func controlTickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return controlTickMsg(t)
	})
}

//////////////////////////////////////////////////////////////
// Bubble Tea Interface
//////////////////////////////////////////////////////////////

func (m controlModel) Init() tea.Cmd {
	return tea.Batch(controlTickCmd(), connectCmd(m.ctrl))
}

func (m controlModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLog()
		return m, nil

	case controlTickMsg:
		m.stats = m.ctrl.Stats()
		m.stats.CalculateRates()
		if m.notice != "" && time.Since(m.noticeAt) > noticeLifetime {
			m.notice = ""
		}
		return m, controlTickCmd()

	case controlBatchMsg:
		for _, ev := range msg.events {
			if ev.Kind == bridge.EventConnection {
				m.connState = ev.Connection
				m.connErr = ev.Error
			}
		}
		m.refresh()
		return m, nil

	case connectResultMsg:
		if msg.err != nil {
			m.setNotice(fmt.Sprintf("connect: %v", msg.err), true)
		}
		m.refresh()
		return m, nil
	}

	return m, nil
}

func (m controlModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// The command line swallows every key until enter or esc
	if m.inputting {
		switch msg.Type {
		case tea.KeyEsc:
			m.closeInput()
			return m, nil
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.closeInput()
			if line != "" {
				m.report(m.ctrl.Send(line))
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case ":":
		m.inputting = true
		m.input.SetValue("")
		cmd := m.input.Focus()
		return m, cmd

	case "tab":
		m.channel = (m.channel + 1) % len(tonelight.LEDChannels)
	case "shift+tab":
		m.channel = (m.channel + len(tonelight.LEDChannels) - 1) % len(tonelight.LEDChannels)
	case "+", "=":
		m.stepLED(ledStep)
	case "-", "_":
		m.stepLED(-ledStep)

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.report(m.ctrl.LoadPreset(int(msg.Runes[0] - '1')))

	case "d":
		m.report(m.ctrl.ToggleDark())
	case "t":
		m.report(m.ctrl.ToggleTriplet())
	case "s":
		m.report(m.ctrl.Shoot())

	case "j":
		m.report(m.ctrl.MoveMotor(tonelight.Backward, false))
	case "l":
		m.report(m.ctrl.MoveMotor(tonelight.Forward, false))
	case "k":
		m.report(m.ctrl.StopMotor())
	case "left":
		m.report(m.ctrl.MoveMotor(tonelight.Backward, true))
	case "right":
		m.report(m.ctrl.MoveMotor(tonelight.Forward, true))
	case "m":
		m.report(m.ctrl.CycleMotorMode())
	case "!", "@", "#":
		m.report(m.ctrl.SetMotorMode(modeKeys[msg.String()]))

	case "c":
		m.setNotice("connecting...", false)
		return m, connectCmd(m.ctrl)
	case "x":
		m.ctrl.Disconnect()
		m.refresh()

	case "y":
		if err := clipboard.WriteAll(strings.Join(m.ctrl.Log(), "\n")); err != nil {
			m.setNotice(fmt.Sprintf("copy failed: %v", err), true)
		} else {
			m.setNotice("log copied to clipboard", false)
		}

	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m controlModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	var s strings.Builder

	helpText := "q=quit :=command c=connect x=disconnect y=copy log"
	s.WriteString(titleStyle.Render("TONELIGHT CONTROL"))
	s.WriteString(" ")
	s.WriteString(headerStyle.Render(fmt.Sprintf("| %s | %s", m.renderConnection(), helpText)))
	s.WriteString("\n\n")

	width := m.width - 4
	if width < 40 {
		width = 40
	}
	half := width/2 - 1

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderLEDs(half),
		m.renderMotion(width-half-2),
	)
	s.WriteString(top)
	s.WriteString("\n")
	s.WriteString(m.renderPresets(width))
	s.WriteString("\n")
	s.WriteString(m.renderStats())
	s.WriteString("\n")
	s.WriteString(boxStyle.Width(width).Render(m.logView.View()))
	s.WriteString("\n")

	if m.inputting {
		s.WriteString(focusedBoxStyle.Width(width).Render(m.input.View()))
		s.WriteString("\n")
	} else if m.notice != "" {
		style := statsValueStyle
		if m.noticeErr {
			style = errorStyle
		}
		s.WriteString(" " + style.Render(m.notice) + "\n")
	}

	return s.String()
}

//////////////////////////////////////////////////////////////
// View Helpers
//////////////////////////////////////////////////////////////

func (m controlModel) renderConnection() string {
	switch m.connState {
	case bridge.StateConnected:
		return statsValueStyle.Render("CONNECTED") + " " + m.portInfo
	case bridge.StateConnecting:
		return warningStyle.Render("CONNECTING...")
	case bridge.StateError:
		msg := "ERROR"
		if m.removed {
			msg = "DEVICE REMOVED (c to reconnect)"
		}
		if m.connErr != "" {
			msg += ": " + m.connErr
		}
		return errorStyle.Render(msg)
	default:
		return warningStyle.Render("DISCONNECTED")
	}
}

func (m controlModel) renderLEDs(width int) string {
	var s strings.Builder
	s.WriteString(statsLabelStyle.Render("LED"))
	if dark, ok := m.state.Flag("led.dark"); ok && dark {
		s.WriteString(" " + warningStyle.Render("DARK"))
	}
	s.WriteString("\n")

	for i, ch := range tonelight.LEDChannels {
		label := fmt.Sprintf(" %-3s", strings.ToUpper(string(ch)))
		if i == m.channel {
			label = selectedStyle.Render(label)
		}
		value := "N/A"
		bar := ""
		if n, ok := m.state.Number(tonelight.SectionLED + "." + string(ch)); ok {
			value = fmt.Sprintf("%4d", int(n))
			bar = strings.Repeat("█", int(n)*20/tonelight.MaxBrightness)
		}
		s.WriteString(fmt.Sprintf("%s %s %s\n", label, statsValueStyle.Render(value), headerStyle.Render(bar)))
	}
	s.WriteString(headerStyle.Render("tab=channel +/-=adjust"))

	return boxStyle.Width(width).Render(s.String())
}

func (m controlModel) renderMotion(width int) string {
	var s strings.Builder
	s.WriteString(statsLabelStyle.Render("MOTOR"))
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf(" State: %s\n", statsValueStyle.Render(tonelight.MotorStateLabel(m.state.MotorState()))))
	s.WriteString(fmt.Sprintf(" Mode:  %s\n", statsValueStyle.Render(tonelight.MotorModeLabel(m.state.MotorMode()))))
	s.WriteString(fmt.Sprintf(" IO:    %s\n", statsValueStyle.Render(tonelight.IOModeLabel(m.state.IOMode()))))
	s.WriteString("\n")
	s.WriteString(statsLabelStyle.Render("SHUTTER"))
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf(" State: %s", statsValueStyle.Render(tonelight.ShutterStateLabel(m.state.ShutterState()))))
	if triplet, ok := m.state.Flag("shutter.triplet"); ok && triplet {
		s.WriteString(" " + warningStyle.Render("TRIPLET"))
	}
	s.WriteString("\n")
	s.WriteString(headerStyle.Render("j/l=travel ←/→=jog k=stop m=mode !@#=set mode s=shoot t=triplet d=dark"))

	return boxStyle.Width(width).Render(s.String())
}

func (m controlModel) renderPresets(width int) string {
	var s strings.Builder
	s.WriteString(statsLabelStyle.Render("PRESETS"))
	s.WriteString(headerStyle.Render("  1-9=load"))
	s.WriteString("\n")

	table := m.state.Presets()
	if len(table) == 0 {
		s.WriteString(headerStyle.Render(" (not reported yet)"))
	} else {
		for _, idx := range table.Indices() {
			s.WriteString(fmt.Sprintf(" %d  %s\n", idx+1, table[idx].Fields()))
		}
	}

	return boxStyle.Width(width).Render(strings.TrimRight(s.String(), "\n"))
}

func (m controlModel) renderStats() string {
	st := m.stats
	parts := []string{
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Lines:"), statsValueStyle.Render(fmt.Sprintf("%d", st.TotalLines))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Telemetry:"), statsValueStyle.Render(fmt.Sprintf("%d", st.TelemetryLines))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Sent:"), statsValueStyle.Render(fmt.Sprintf("%d", st.CommandsSent))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Rate:"), statsValueStyle.Render(fmt.Sprintf("%.1f/s", st.LineRate))),
	}
	errs := fmt.Sprintf("%d", st.MalformedLines+st.ErrorLines)
	if st.MalformedLines+st.ErrorLines > 0 {
		errs = errorStyle.Render(errs)
	} else {
		errs = statsValueStyle.Render(errs)
	}
	parts = append(parts, fmt.Sprintf("%s %s", statsLabelStyle.Render("Errors:"), errs))
	return " " + strings.Join(parts, "  ")
}

//////////////////////////////////////////////////////////////
// State Helpers
//////////////////////////////////////////////////////////////

// refresh pulls the latest snapshot from the controller
func (m *controlModel) refresh() {
	m.connState = m.ctrl.State()
	m.portInfo = m.ctrl.PortInfo()
	m.removed = m.ctrl.Removed()
	if err := m.ctrl.LastError(); err != nil && m.connState == bridge.StateError {
		m.connErr = err.Error()
	}
	m.state = m.ctrl.Snapshot()
	m.stats = m.ctrl.Stats()
	m.stats.CalculateRates()

	m.log = m.ctrl.LogTail(maxLogLines)
	styled := make([]string, len(m.log))
	for i, line := range m.log {
		styled[i] = styleLine(line)
	}
	atBottom := m.logView.AtBottom()
	m.logView.SetContent(strings.Join(styled, "\n"))
	if atBottom {
		m.logView.GotoBottom()
	}
}

func (m *controlModel) resizeLog() {
	// Header, LED/motor row, presets, stats and input take the rest
	height := m.height - 24
	if height < 3 {
		height = 3
	}
	width := m.width - 8
	if width < 20 {
		width = 20
	}
	m.logView.Width = width
	m.logView.Height = height
	m.input.Width = width - 4
	m.logView.GotoBottom()
}

func (m *controlModel) stepLED(delta int) {
	ch := tonelight.LEDChannels[m.channel]
	current, _ := m.state.Number(tonelight.SectionLED + "." + string(ch))
	next := min(max(int(current)+delta, 0), tonelight.MaxBrightness)
	m.report(m.ctrl.SetLED(ch, next))
}

func (m *controlModel) closeInput() {
	m.inputting = false
	m.input.Blur()
	m.input.SetValue("")
}

// report surfaces an intent's error, if any
func (m *controlModel) report(err error) {
	if err != nil {
		m.setNotice(err.Error(), true)
	}
}

func (m *controlModel) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
	m.noticeAt = time.Now()
}

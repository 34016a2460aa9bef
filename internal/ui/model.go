// ABOUTME: Bubbletea model for the mixer TUI
// ABOUTME: Drives the engine on a UI tick and handles mixer and profile input
package ui

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/noisegen-go/internal/app"
	"github.com/harperreed/noisegen-go/internal/profile"
	"github.com/harperreed/noisegen-go/internal/version"
)

const (
	// TickInterval is how often the engine is polled
	TickInterval = 50 * time.Millisecond

	// usageEvery is how many ticks pass between resource samples
	usageEvery = 40

	volumeStep = 0.01
	barWidth   = 20
)

type mode int

const (
	modeMixing mode = iota
	modeProfileMenu
	modeNaming
)

type tickMsg time.Time

// Model represents the TUI state
type Model struct {
	session *app.Session

	mode     mode
	selected int // generator index, or len(generators) for master

	// Profile menu
	profiles     []string
	profileIndex int

	// Save dialog
	input string

	status string

	usage   Usage
	sampler *usageSampler
	ticks   int

	quitting bool
}

// NewModel creates a mixer model for a running session
func NewModel(s *app.Session) Model {
	m := Model{
		session: s,
		sampler: newUsageSampler(),
	}
	m.usage = m.sampler.sample()
	return m
}

func tickEvery() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the engine tick
func (m Model) Init() tea.Cmd {
	return tickEvery()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		m.session.Engine.Update()
		m.ticks++
		if m.ticks%usageEvery == 0 {
			m.usage = m.sampler.sample()
		}
		return m, tickEvery()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.mode {
	case modeProfileMenu:
		m.handleProfileMenuKey(msg)
		return m, nil
	case modeNaming:
		m.handleNamingKey(msg)
		return m, nil
	}

	eng := m.session.Engine
	count := len(eng.Generators())

	switch msg.String() {
	case "esc", "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < count {
			m.selected++
		}
	case " ", "enter":
		if g := eng.Generator(m.selected); g != nil {
			g.SetEnabled(!g.Enabled())
		}
	case "left", "h":
		m.adjustVolume(-volumeStep)
	case "right", "l":
		m.adjustVolume(volumeStep)
	case "m":
		eng.SetMasterEnabled(!eng.MasterEnabled())
	case "p":
		profiles, err := m.session.Profiles()
		if err != nil {
			m.status = fmt.Sprintf("Cannot list profiles: %v", err)
			return m, nil
		}
		m.profiles = profiles
		m.profileIndex = 0
		m.mode = modeProfileMenu
	case "s":
		m.input = ""
		m.mode = modeNaming
	}

	return m, nil
}

// adjustVolume moves the selected row's volume, rounded to hundredths
func (m *Model) adjustVolume(delta float32) {
	eng := m.session.Engine
	step := func(v float32) float32 {
		return float32(math.Round(float64(v+delta)*100) / 100)
	}

	if g := eng.Generator(m.selected); g != nil {
		g.SetVolume(step(g.Volume()))
		return
	}
	eng.SetMasterVolume(step(eng.MasterVolume()))
}

func (m *Model) handleProfileMenuKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		m.mode = modeMixing
	case "up", "k":
		if m.profileIndex > 0 {
			m.profileIndex--
		}
	case "down", "j":
		if m.profileIndex < len(m.profiles)-1 {
			m.profileIndex++
		}
	case "enter":
		if len(m.profiles) > 0 {
			name := m.profiles[m.profileIndex]
			if err := m.session.LoadProfile(name); err != nil {
				log.Printf("Failed to load profile %s: %v", name, err)
				m.status = fmt.Sprintf("Load failed: %v", err)
			} else {
				m.status = ""
			}
		}
		m.mode = modeMixing
	}
}

func (m *Model) handleNamingKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeMixing
	case tea.KeyEnter:
		if m.input != "" {
			if err := m.session.SaveProfile(m.input); err != nil {
				log.Printf("Failed to save profile %s: %v", m.input, err)
				m.status = fmt.Sprintf("Save failed: %v", err)
			} else {
				m.status = ""
			}
		}
		m.mode = modeMixing
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if profile.ValidNameRune(r) {
				m.input += string(r)
			}
		}
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	statsStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	profileStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	ruleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	onStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	offStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("237"))
	menuStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	pickStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("255"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	barLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	barMidStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	barHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const rule = "-----------------------------"

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return "Saving session...\n"
	}

	switch m.mode {
	case modeProfileMenu:
		return m.renderProfileMenu()
	case modeNaming:
		return m.renderNaming()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())

	eng := m.session.Engine
	for i, g := range eng.Generators() {
		b.WriteString(m.renderRow(i, g.Name(), g.Enabled(), g.Volume()))
	}
	b.WriteString(ruleStyle.Render(rule) + "\n")
	b.WriteString(m.renderRow(len(eng.Generators()), "MASTER VOLUME", eng.MasterEnabled(), eng.MasterVolume()))
	b.WriteString(ruleStyle.Render(rule) + "\n")

	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status) + "\n")
	}
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("=== " + strings.ToUpper(version.Product) + " ==="))
	b.WriteString("\n")
	b.WriteString(statsStyle.Render(fmt.Sprintf("RAM: %d MB | CPU: %.1f%%", m.usage.MemMB, m.usage.CPUPercent)))
	b.WriteString("\n")
	b.WriteString(profileStyle.Render("Profile: " + m.session.ProfileName()))
	b.WriteString("\n")
	b.WriteString(ruleStyle.Render(rule))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderRow(index int, name string, enabled bool, volume float32) string {
	status := offStyle.Render("[OFF]")
	if enabled {
		status = onStyle.Render("[ON] ")
	}

	line := fmt.Sprintf("%s %-20s [%s] %.2f", status, name, renderBar(volume, barWidth), volume)
	if index == m.selected {
		line = selectedStyle.Render(line)
	}
	return line + "\n"
}

// renderBar draws volume as filled '|' cells coloured by level
func renderBar(volume float32, width int) string {
	filled := int(volume * float32(width))
	if filled > width {
		filled = width
	}

	style := barLowStyle
	switch {
	case volume >= 0.75:
		style = barHighStyle
	case volume >= 0.5:
		style = barMidStyle
	}

	return style.Render(strings.Repeat("|", filled)) +
		offStyle.Render(strings.Repeat(".", width-filled))
}

func (m Model) renderHelp() string {
	return helpStyle.Render("[UP/DOWN] Select | [SPACE] Toggle | [LEFT/RIGHT] Volume | [M] Master") + "\n" +
		helpStyle.Render("[P] Profiles | [S] Save | [ESC] Quit") + "\n"
}

func (m Model) renderProfileMenu() string {
	var b strings.Builder
	b.WriteString(menuStyle.Render("=== LOAD PROFILE ===") + "\n")
	b.WriteString("UP/DOWN to select, ENTER to load, ESC to cancel\n")
	b.WriteString(ruleStyle.Render(rule) + "\n")
	for i, name := range m.profiles {
		entry := " " + name + " "
		if i == m.profileIndex {
			entry = pickStyle.Render(entry)
		}
		b.WriteString(entry + "\n")
	}
	return b.String()
}

func (m Model) renderNaming() string {
	var b strings.Builder
	b.WriteString(menuStyle.Render("=== SAVE PROFILE ===") + "\n")
	b.WriteString("Type name and press ENTER. ESC to cancel.\n")
	b.WriteString(ruleStyle.Render(rule) + "\n")
	b.WriteString("Name: " + m.input + "_\n")
	return b.String()
}

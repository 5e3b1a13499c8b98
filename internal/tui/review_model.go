package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Brottuetchen/TimeTrack/internal/models"
)

// FocusArea represents which part of the review TUI has focus
type FocusArea int

const (
	FocusTable FocusArea = iota
	FocusSearch
)

// ReviewModel is the interactive session review browser
type ReviewModel struct {
	sessions []models.Session
	visible  []int // indices into sessions after search filtering

	selected    int // index into visible
	currentPage int
	rowsPerPage int

	focus        FocusArea
	searchInput  textinput.Model
	searchActive bool

	width  int
	height int
}

// NewReviewModel creates a review model over the given sessions
func NewReviewModel(sessions []models.Session) ReviewModel {
	input := textinput.New()
	input.Placeholder = "process or title..."
	input.Prompt = "🔍 "
	input.CharLimit = 64

	model := ReviewModel{
		sessions:    sessions,
		selected:    0,
		focus:       FocusTable,
		searchInput: input,
		currentPage: 0,
		rowsPerPage: 10,
	}
	model.applyFilter()

	return model
}

// Init initializes the model
func (m ReviewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Height - header(2) - column header(2) - pagination(1) - help(1) - borders(4) - margins(2)
		availableHeight := m.height - 12
		if availableHeight < 3 {
			availableHeight = 3
		}
		m.rowsPerPage = availableHeight

		return m, nil

	case tea.KeyMsg:
		if m.focus == FocusSearch {
			return m.handleSearchKeys(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			// Escape clears an active filter before quitting
			if msg.String() == "esc" && m.searchActive {
				m.searchActive = false
				m.searchInput.SetValue("")
				m.applyFilter()
				return m, nil
			}
			return m, tea.Quit

		case "up", "k":
			return m.moveSelectionUp(), nil

		case "down", "j":
			return m.moveSelectionDown(), nil

		case "left", "h":
			return m.prevPage(), nil

		case "right", "l":
			return m.nextPage(), nil

		case "/":
			m.focus = FocusSearch
			m.searchInput.Focus()
			return m, textinput.Blink
		}
	}

	return m, nil
}

// handleSearchKeys handles key input while the search bar is focused
func (m ReviewModel) handleSearchKeys(msg tea.KeyMsg) (ReviewModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = FocusTable
		m.searchActive = false
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.applyFilter()
		return m, nil

	case "enter":
		m.focus = FocusTable
		m.searchActive = m.searchInput.Value() != ""
		m.searchInput.Blur()
		return m, nil

	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.applyFilter()
		return m, cmd
	}
}

// applyFilter rebuilds the visible index list from the search query
func (m *ReviewModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.searchInput.Value()))

	m.visible = m.visible[:0]
	for i, session := range m.sessions {
		if query == "" ||
			strings.Contains(strings.ToLower(session.ProcessName), query) ||
			strings.Contains(strings.ToLower(session.WindowTitleBase), query) {
			m.visible = append(m.visible, i)
		}
	}

	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.currentPage = 0
	if m.rowsPerPage > 0 {
		m.currentPage = m.selected / m.rowsPerPage
	}
}

// moveSelectionUp moves the selection up
func (m ReviewModel) moveSelectionUp() ReviewModel {
	if m.selected > 0 {
		m.selected--

		currentPageStart := m.currentPage * m.rowsPerPage
		if m.selected < currentPageStart && m.currentPage > 0 {
			m.currentPage--
		}
	}
	return m
}

// moveSelectionDown moves the selection down
func (m ReviewModel) moveSelectionDown() ReviewModel {
	if m.selected < len(m.visible)-1 {
		m.selected++

		currentPageEnd := min((m.currentPage+1)*m.rowsPerPage-1, len(m.visible)-1)
		maxPages := (len(m.visible) + m.rowsPerPage - 1) / m.rowsPerPage
		if m.selected > currentPageEnd && m.currentPage < maxPages-1 {
			m.currentPage++
		}
	}
	return m
}

// prevPage goes to the previous page
func (m ReviewModel) prevPage() ReviewModel {
	if m.currentPage > 0 {
		m.currentPage--
		maxIndex := min((m.currentPage+1)*m.rowsPerPage-1, len(m.visible)-1)
		if m.selected > maxIndex {
			m.selected = maxIndex
		}
	}
	return m
}

// nextPage goes to the next page
func (m ReviewModel) nextPage() ReviewModel {
	maxPages := (len(m.visible) + m.rowsPerPage - 1) / m.rowsPerPage
	if m.currentPage < maxPages-1 {
		m.currentPage++
		minIndex := m.currentPage * m.rowsPerPage
		if m.selected < minIndex {
			m.selected = minIndex
		}
	}
	return m
}

// View renders the TUI
func (m ReviewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 1

	leftPanel := m.renderSessionTable(leftWidth)
	rightPanel := m.renderSessionDetails(rightWidth)

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanel,
		" ",
		rightPanel,
	)

	var bottomBar string
	if m.focus == FocusSearch {
		bottomBar = m.renderSearchBar()
	} else {
		bottomBar = m.renderHelpBar()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		content,
		"",
		bottomBar,
	)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// renderSessionTable renders the left panel with the session table
func (m ReviewModel) renderSessionTable(width int) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))

	b.WriteString(headerStyle.Render("📋 Sessions"))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
		b.WriteString(emptyStyle.Render("No sessions found"))
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Width(width).
			Render(b.String())
	}

	columnHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Padding(0, 1)

	availableWidth := width - 4
	idWidth := 5
	startWidth := 11
	activeWidth := 7
	statusWidth := 10
	titleWidth := availableWidth - idWidth - startWidth - activeWidth - statusWidth - 8
	if titleWidth < 16 {
		titleWidth = 16
	}

	headers := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s",
		idWidth, "ID",
		startWidth, "START",
		titleWidth, "TITLE",
		activeWidth, "ACTIVE",
		statusWidth, "STATUS")
	b.WriteString(columnHeaderStyle.Render(headers))
	b.WriteString("\n\n")

	startIndex := m.currentPage * m.rowsPerPage
	endIndex := min(startIndex+m.rowsPerPage, len(m.visible))

	for i := startIndex; i < endIndex; i++ {
		session := m.sessions[m.visible[i]]
		isSelected := i == m.selected

		id := fmt.Sprintf("#%d", session.ID)
		start := session.StartTime.Format("02/01 15:04")

		title := session.WindowTitleBase
		if title == "" {
			title = session.ProcessName
		}
		if len(title) > titleWidth-1 {
			if titleWidth > 4 {
				title = title[:titleWidth-4] + "..."
			} else {
				title = title[:titleWidth-1]
			}
		}

		active := formatShortDuration(session.ActiveDurationSeconds)

		var statusText, statusColor string
		if session.AssignmentID != nil {
			statusText = "✓ assigned"
			statusColor = ColorSuccess
		} else {
			statusText = "○ open"
			statusColor = ColorWarning
		}
		coloredStatus := lipgloss.NewStyle().Foreground(lipgloss.Color(statusColor)).Render(statusText)

		rowContent := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s",
			idWidth, id,
			startWidth, start,
			titleWidth, title,
			activeWidth, active,
			statusWidth, coloredStatus)

		if isSelected {
			selectedBorder := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorAccentMain)).
				Bold(true).
				Padding(0, 1)
			b.WriteString(selectedBorder.Render(rowContent))
		} else {
			b.WriteString(" " + rowContent)
		}
		b.WriteString("\n")
	}

	if m.rowsPerPage < len(m.visible) {
		totalPages := (len(m.visible) + m.rowsPerPage - 1) / m.rowsPerPage
		pageInfo := fmt.Sprintf("Page %d/%d (%d sessions)", m.currentPage+1, totalPages, len(m.visible))
		pageStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelpText)).
			Align(lipgloss.Center).
			Width(width - 2).
			MarginTop(1)
		b.WriteString(pageStyle.Render(pageInfo))
	}

	outerBorderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width)

	return outerBorderStyle.Render(b.String())
}

// renderSessionDetails renders the right panel with details for the selection
func (m ReviewModel) renderSessionDetails(width int) string {
	var b strings.Builder

	if len(m.visible) == 0 || m.selected >= len(m.visible) {
		logoStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentMain)).
			Bold(true).
			Align(lipgloss.Center).
			Width(width)
		b.WriteString(logoStyle.Render("timetrack"))

		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Align(lipgloss.Center).
			Width(width).
			MarginTop(2)
		b.WriteString("\n")
		b.WriteString(emptyStyle.Render("Select a session to view details"))
	} else {
		session := m.sessions[m.visible[m.selected]]

		titleStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Width(width)
		title := session.WindowTitleBase
		if title == "" {
			title = session.ProcessName
		}
		b.WriteString(titleStyle.Render("📋 " + title))
		b.WriteString("\n\n")

		labelStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText))
		valueStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimaryText))

		row := func(label, value string) {
			b.WriteString(labelStyle.Render(label))
			b.WriteString(" ")
			b.WriteString(valueStyle.Render(value))
			b.WriteString("\n")
		}

		row("Process:", session.ProcessName)
		row("User:", session.UserID)
		row("Start:", session.StartTime.Format("02/01/2006 15:04:05"))
		row("End:", session.EndTime.Format("02/01/2006 15:04:05"))
		row("Total:", formatShortDuration(session.TotalDurationSeconds))
		row("Active:", formatShortDuration(session.ActiveDurationSeconds))
		row("Events:", fmt.Sprintf("%d", session.EventCount))
		row("Breaks:", fmt.Sprintf("%d", session.BreakCount))

		b.WriteString("\n")
		if assignment := session.Assignment; assignment != nil {
			assignedStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorSuccess)).
				Bold(true)
			b.WriteString(assignedStyle.Render("✓ Assigned"))
			b.WriteString("\n")
			if assignment.Project != nil {
				row("Project:", assignment.Project.Name)
			}
			if assignment.Milestone != nil {
				row("Milestone:", assignment.Milestone.Name)
			}
			if assignment.ActivityType != "" {
				row("Activity:", assignment.ActivityType)
			}
			if assignment.Comment != "" {
				row("Comment:", assignment.Comment)
			}
		} else {
			openStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorWarning)).
				Italic(true)
			b.WriteString(openStyle.Render("○ Not assigned yet"))
			b.WriteString("\n")
		}
	}

	outerBorderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width)

	return outerBorderStyle.Render(b.String())
}

// renderSearchBar renders the focused search input
func (m ReviewModel) renderSearchBar() string {
	barStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(0, 1).
		Width(m.width - 4)

	return barStyle.Render(m.searchInput.View())
}

// renderHelpBar renders the hotkey help line
func (m ReviewModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Padding(0, 1)

	help := "↑/↓ select • ←/→ page • / search • q quit"
	if m.searchActive {
		help = fmt.Sprintf("filter: %q • esc clear • %s", m.searchInput.Value(), help)
	}
	return helpStyle.Render(help)
}

// formatShortDuration formats seconds as a compact hours/minutes string
func formatShortDuration(seconds int) string {
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

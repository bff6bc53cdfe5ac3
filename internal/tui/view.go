package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/chrct/chrct/internal/domain"
)

// layout resizes the panes for the current window.
func (m *Model) layout() {
	if m.width <= 0 {
		return
	}
	editorWidth := m.width * 3 / 5
	m.editor.SetWidth(editorWidth - 4)
	m.editor.SetHeight(m.height - 5)
	m.input.Width = editorWidth - 8
}

// View renders the whole screen.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	editorWidth := m.width * 3 / 5
	tasksWidth := m.width - editorWidth - 2

	editorPane := m.renderEditorPane(editorWidth)
	tasksPane := m.renderTasksPane(tasksWidth)
	body := lipgloss.JoinHorizontal(lipgloss.Top, editorPane, tasksPane)

	sections := []string{
		titleStyle.Render("chrct"),
		body,
		m.renderStatusLine(),
	}
	if m.mode == ModeGate {
		sections = append(sections, m.renderGatePrompt())
	}
	if m.mode == ModeNewTask || m.mode == ModeNewSubtask {
		sections = append(sections, gatePromptStyle.Render(m.input.View()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderEditorPane(width int) string {
	style := paneStyle
	if m.mode == ModeEditor {
		style = focusedPaneStyle
	}
	return style.Width(width - 2).Render(m.editor.View())
}

func (m *Model) renderTasksPane(width int) string {
	style := paneStyle
	if m.mode == ModeTasks {
		style = focusedPaneStyle
	}

	var b strings.Builder
	if len(m.rows) == 0 {
		b.WriteString("no tasks yet, press n")
	}
	for i, row := range m.rows {
		line := m.renderTaskRow(row)
		if m.mode == ModeTasks && i == m.cursor {
			line = selectedRowStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(m.rows)-1 {
			b.WriteByte('\n')
		}
	}
	return style.Width(width).Height(m.height - 5).Render(b.String())
}

func (m *Model) renderTaskRow(row taskRow) string {
	marker := "[ ]"
	style := lipgloss.NewStyle()
	switch row.Task.Status {
	case domain.StatusActive:
		marker = "[>]"
		style = activeTaskStyle
	case domain.StatusCompleted:
		marker = "[x]"
		style = completedTaskStyle
	}

	line := strings.Repeat("  ", row.Depth) + marker + " " + row.Task.Text
	if d := row.Task.DisplayTime(m.now); d > 0 {
		line += " " + formatClock(d)
	}
	if row.Task.DailyRepeat {
		line += " ↻"
	}
	return style.Render(line)
}

func (m *Model) renderStatusLine() string {
	stats := domain.CountText(m.editor.Value())
	parts := []string{
		m.renderSyncBadge(),
		fmt.Sprintf("%d chars", stats.Chars),
		fmt.Sprintf("%d words", stats.Words),
	}
	if m.active != nil {
		parts = append(parts, activeTaskStyle.Render("▶ "+m.active.Text+" "+formatClock(m.active.DisplayTime(m.now))))
	}
	line := statusLineStyle.Render(strings.Join(parts, "  ·  "))
	if m.alert != "" {
		line += "  " + alertStyle.Render(m.alert)
	}
	return line
}

func (m *Model) renderSyncBadge() string {
	switch m.snap.State {
	case domain.SyncStateSynced:
		return badgeSynced.Render("● synced")
	case domain.SyncStateSaving:
		return badgeSaving.Render("◌ saving")
	case domain.SyncStateOffline:
		return badgeOffline.Render("○ offline")
	default:
		return badgeLoading.Render("… loading")
	}
}

func (m *Model) renderGatePrompt() string {
	remaining := time.Duration(0)
	if m.gate != nil {
		remaining = m.gate.Remaining(m.now)
	}
	prompt := fmt.Sprintf("What is the first concrete move? (%ds left)\n%s", int(remaining.Seconds()), m.input.View())
	return gatePromptStyle.Render(prompt)
}

// formatClock renders a duration as h:mm:ss or m:ss.
func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}

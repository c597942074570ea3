package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type uiStyles struct {
	headerStyle   lipgloss.Style
	mutedStyle    lipgloss.Style
	statusStyle   lipgloss.Style
	warnStyle     lipgloss.Style
	cursorStyle   lipgloss.Style
	explicitStyle lipgloss.Style
	panelBorder   lipgloss.Style
}

func stylesFor(model Model) uiStyles {
	if strings.ToLower(model.state.Prefs.Theme) == "light" {
		return uiStyles{
			headerStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235")),
			mutedStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
			statusStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
			warnStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("124")).Bold(true),
			cursorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("90")).Bold(true),
			explicitStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Bold(true),
			panelBorder:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		}
	}
	return uiStyles{
		headerStyle:   lipgloss.NewStyle().Bold(true),
		mutedStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		statusStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true),
		warnStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true),
		cursorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		explicitStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		panelBorder:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

func (model Model) View() string {
	styles := stylesFor(model)
	if model.showHelp {
		return renderHelpView(model, styles)
	}
	body := renderBody(model, styles)
	footer := renderFooter(model, styles)
	return strings.Join([]string{body, footer}, "\n")
}

func renderBody(model Model, styles uiStyles) string {
	bodyHeight := model.listHeight()
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	leftWidth, rightWidth, showRight := splitPanels(model.width)
	left := renderListPanel(model, styles, bodyHeight, leftWidth)
	if !showRight {
		return left
	}
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Render("│")
	right := renderDetailPanel(model, styles, rightWidth, bodyHeight)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, sep, right)
}

func renderListPanel(model Model, styles uiStyles, height, width int) string {
	if width < 20 {
		width = 20
	}
	contentWidth := maxInt(width-2, 10)
	status := "IDLE"
	if model.detecting {
		status = "DETECTING"
	}
	headerLine := padLine(styles.headerStyle.Render("muserc")+"  "+model.state.Store.Path(),
		styles.statusStyle.Render(status), contentWidth)

	visible := model.state.VisibleEntries()
	listHeight := height - 1
	if listHeight < 1 {
		listHeight = 1
	}
	if len(visible) == 0 {
		lines := []string{headerLine, "No keys match the search"}
		for i := 0; i < maxInt(listHeight-1, 0); i++ {
			lines = append(lines, "")
		}
		return styles.panelBorder.Width(contentWidth).Render(strings.Join(lines, "\n"))
	}

	start := clamp(model.viewTop, 0, maxInt(len(visible)-1, 0))
	end := start + listHeight
	if end > len(visible) {
		end = len(visible)
	}

	lines := make([]string, 0, height)
	lines = append(lines, headerLine)
	for index := start; index < end; index++ {
		entry := visible[index]
		marker := "  "
		if entry.Explicit {
			marker = styles.explicitStyle.Render("● ")
		}
		value := entry.Value
		if value == "" {
			value = styles.mutedStyle.Render("(unset)")
		}
		line := fmt.Sprintf("%s%-24s %s", marker, entry.Info.Key, truncate(value, contentWidth-28))
		if index == model.state.Cursor {
			line = styles.cursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return styles.panelBorder.Width(contentWidth).Render(strings.Join(lines, "\n"))
}

func renderDetailPanel(model Model, styles uiStyles, width, height int) string {
	contentWidth := maxInt(width-2, 10)
	if model.reviewing {
		return renderReviewPanel(model, styles, contentWidth, height)
	}
	if model.mode != inputNone {
		return renderInputPanel(model, styles, contentWidth, height)
	}
	entry := model.state.CurrentEntry()
	if entry == nil {
		return styles.panelBorder.Width(contentWidth).Render("No selection")
	}
	info := entry.Info
	lines := []string{
		styles.headerStyle.Render("Key"),
		string(info.Key),
		"",
		styles.headerStyle.Render("Kind"),
		info.Kind.String(),
	}
	if info.Default != "" {
		lines = append(lines, "", styles.headerStyle.Render("Default"), info.Default)
	}
	if len(info.Values) > 0 {
		lines = append(lines, "", styles.headerStyle.Render("Allowed"), strings.Join(info.Values, ", "))
	}
	current := entry.Value
	if current == "" {
		current = "(unset)"
	}
	lines = append(lines, "", styles.headerStyle.Render("Current"), current)
	if model.state.Prefs.ShowDescriptions && info.Description != "" {
		lines = append(lines, "", styles.headerStyle.Render("About"), info.Description)
	}
	content := lipgloss.NewStyle().Width(contentWidth).Height(height).Render(strings.Join(lines, "\n"))
	return styles.panelBorder.Width(contentWidth).Render(content)
}

func renderInputPanel(model Model, styles uiStyles, width, height int) string {
	title := "Input"
	switch model.mode {
	case inputEdit:
		title = fmt.Sprintf("Edit %s", model.editKey)
	case inputBackup:
		title = "Backup destination"
	case inputRestore:
		title = "Restore from"
	case inputSearch:
		title = "Search"
	}
	lines := []string{
		styles.headerStyle.Render(title),
		model.input.View(),
	}
	content := lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(lines, "\n"))
	return styles.panelBorder.Width(width).Render(content)
}

func renderReviewPanel(model Model, styles uiStyles, width, height int) string {
	lines := []string{styles.headerStyle.Render("Detected applications"), ""}
	for index, candidate := range model.candidates {
		line := fmt.Sprintf("%-24s %s", candidate.Key, truncate(candidate.Path, width-26))
		line += styles.mutedStyle.Render("  " + candidate.Source)
		if index == model.reviewCursor {
			line = styles.cursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	content := lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(lines, "\n"))
	return styles.panelBorder.Width(width).Render(content)
}

func renderFooter(model Model, styles uiStyles) string {
	statusLine := trimStatus(model.status, model.width)
	statusStyle := styles.mutedStyle
	lowered := strings.ToLower(model.status)
	if strings.Contains(lowered, "error") || strings.Contains(lowered, "cannot") {
		statusStyle = styles.warnStyle
	}
	statusLine = statusStyle.Render(statusLine)

	fileInfo := "File: absent"
	if model.state.Store.Exists() {
		fileInfo = "File: present"
	}
	setInfo := fmt.Sprintf("Set: %d", model.state.ExplicitCount())
	searchInfo := ""
	if model.state.SearchQuery != "" {
		searchInfo = fmt.Sprintf("  Search[%s]", model.state.SearchQuery)
	}
	left := fmt.Sprintf("%s  %s%s", setInfo, fileInfo, searchInfo)

	keys := "↑/↓ move  enter edit  space cycle  u unset  t detect  b backup  r restore  d delete file  / search  ? help  q quit"
	if model.confirming {
		keys = "y confirm  n cancel"
	}
	if model.mode != inputNone {
		keys = "type value  enter confirm  esc cancel"
	}
	if model.reviewing {
		keys = "↑/↓ move  y apply  a apply unset  esc close"
	}
	footerLine := padLine(left, keys, model.width)
	return strings.Join([]string{statusLine, styles.mutedStyle.Render(footerLine)}, "\n")
}

func renderHelpView(model Model, styles uiStyles) string {
	bindings := []key.Binding{
		model.keys.Up,
		model.keys.Down,
		model.keys.Edit,
		model.keys.Cycle,
		model.keys.Unset,
		model.keys.Detect,
		model.keys.Backup,
		model.keys.Restore,
		model.keys.DeleteFile,
		model.keys.Search,
		model.keys.ClearFilter,
		model.keys.ApplyAll,
		model.keys.Confirm,
		model.keys.Cancel,
		model.keys.Help,
		model.keys.Quit,
	}

	lines := []string{styles.headerStyle.Render("muserc Help"), ""}
	lines = append(lines, styles.headerStyle.Render("Editing"))
	lines = append(lines, "enter edits the selected key", "space cycles enum and bool values", "u reverts to the default")
	lines = append(lines, "", styles.headerStyle.Render("Detection"))
	lines = append(lines, "t probes PATH and install dirs for helper apps", "on a path key only that key is probed")
	lines = append(lines, "", styles.headerStyle.Render("File"))
	lines = append(lines, "b copies the settings file to a destination", "r restores from a backup", "d deletes the file (double confirm)")
	lines = append(lines, "", styles.headerStyle.Render("Keys"))
	for _, binding := range bindings {
		keysLabel := strings.Join(binding.Keys(), ", ")
		lines = append(lines, fmt.Sprintf("%-14s %s", keysLabel, binding.Help().Desc))
	}
	lines = append(lines, "", "Press ? to close help")
	width := model.width
	if width <= 0 {
		width = 80
	}
	return styles.panelBorder.Width(maxInt(width-2, 10)).Render(strings.Join(lines, "\n"))
}

func padLine(left, right string, width int) string {
	if width <= 0 {
		return left
	}
	space := width - lipgloss.Width(left) - lipgloss.Width(right)
	if space < 1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", space) + right
}

func splitPanels(width int) (int, int, bool) {
	if width < 80 {
		return width, 0, false
	}
	left := int(float64(width) * 0.55)
	if left < 40 {
		left = 40
	}
	right := width - left - 1
	if right < 30 {
		return width, 0, false
	}
	return left, right, true
}

func truncate(value string, max int) string {
	if max <= 3 {
		return value
	}
	if lipgloss.Width(value) <= max {
		return value
	}
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max-3]) + "..."
}

func trimStatus(message string, width int) string {
	if width <= 0 {
		return message
	}
	max := width - 4
	runes := []rune(message)
	if max <= 0 || len(runes) <= max {
		return message
	}
	return string(runes[:max]) + "..."
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

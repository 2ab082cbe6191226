package review

import (
	"fmt"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jobhunter/internal/model"
	"github.com/amishk599/jobhunter/internal/store"
)

// ApplicationStore is the slice of the store the TUI needs to persist
// status changes.
type ApplicationStore interface {
	UpdateApplication(jobID string, upd store.ApplicationUpdate) error
}

// Lines per application item in the list view (title + subtitle + blank
// separator).
const appItemHeight = 3

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")) // bright blue

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")) // dim gray

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	activeHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("39"))

	inactiveHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	itemTitleStyle = lipgloss.NewStyle().
			Bold(true)

	itemSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedItemTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")). // bright white
				Background(lipgloss.Color("24"))  // dark blue bg

	selectedItemSubtitleStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("252")).
					Background(lipgloss.Color("24"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(16)

	detailValueStyle = lipgloss.NewStyle()

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				MarginBottom(1)

	descDividerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	descHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	descBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	errorTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// statusSavedMsg is sent when an async status update completes.
type statusSavedMsg struct {
	jobID  string
	status string
	err    error
}

type reviewModel struct {
	pending []model.Application // NEW, documents not generated yet
	ready   []model.Application // NEW, documents attached, awaiting submission
	store   ApplicationStore

	leftViewport  viewport.Model
	rightViewport viewport.Model
	activePane    int // 0=pending, 1=ready
	leftCursor    int
	rightCursor   int
	width         int
	height        int
	sized         bool

	// Detail view state
	view            viewState
	detailApp       model.Application
	detailViewport  viewport.Model
	showDescription bool

	saving    bool
	statusErr string
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		if m.view == viewDetail {
			m.detailViewport.Width = m.width - 4
			m.detailViewport.Height = m.height - 4
			m.detailViewport.SetContent(m.renderDetail())
		}
		return m, nil

	case statusSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.statusErr = fmt.Sprintf("saving %s: %v", msg.status, msg.err)
			if m.view == viewDetail {
				m.detailViewport.SetContent(m.renderDetail())
			}
			return m, nil
		}
		m.statusErr = ""
		m.removeApp(msg.jobID)
		m.recalcContent()
		// The marked application left the queue; a detail view of it has
		// nothing left to show.
		if m.view == viewDetail && m.detailApp.JobID == msg.jobID {
			m.view = viewList
		}
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetailView(msg)
		}
		return m.updateListView(msg)
	}

	return m, nil
}

func (m reviewModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "left", "right":
		m.activePane = 1 - m.activePane
		m.recalcContent()
		return m, nil
	case "up", "k":
		m.moveCursor(-1)
		m.recalcContent()
		m.ensureCursorVisible()
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		m.recalcContent()
		m.ensureCursorVisible()
		return m, nil
	case "enter":
		return m.openDetailView()
	case "o":
		if app, ok := m.selectedApp(); ok {
			openURL(app.URL)
		}
		return m, nil
	case "s":
		return m.markSelected(model.StatusSkipped)
	case "m":
		return m.markSelected(model.StatusManualNeeded)
	}

	// Forward other keys (pgup/pgdn/home/end) to the active viewport.
	var cmd tea.Cmd
	if m.activePane == 0 {
		m.leftViewport, cmd = m.leftViewport.Update(msg)
	} else {
		m.rightViewport, cmd = m.rightViewport.Update(msg)
	}
	return m, cmd
}

func (m reviewModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	case "o":
		openURL(m.detailApp.URL)
		return m, nil
	case "r":
		if m.detailApp.Description != "" {
			m.showDescription = !m.showDescription
			m.detailViewport.SetContent(m.renderDetail())
			m.detailViewport.SetYOffset(0)
		}
		return m, nil
	case "s":
		return m.markApp(m.detailApp, model.StatusSkipped)
	case "m":
		return m.markApp(m.detailApp, model.StatusManualNeeded)
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m reviewModel) markSelected(status string) (tea.Model, tea.Cmd) {
	app, ok := m.selectedApp()
	if !ok {
		return m, nil
	}
	return m.markApp(app, status)
}

func (m reviewModel) markApp(app model.Application, status string) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	m.saving = true
	st := m.store
	return m, func() tea.Msg {
		s := status
		err := st.UpdateApplication(app.JobID, store.ApplicationUpdate{Status: &s})
		return statusSavedMsg{jobID: app.JobID, status: status, err: err}
	}
}

func (m *reviewModel) moveCursor(delta int) {
	if m.activePane == 0 {
		m.leftCursor = clamp(m.leftCursor+delta, 0, max(len(m.pending)-1, 0))
	} else {
		m.rightCursor = clamp(m.rightCursor+delta, 0, max(len(m.ready)-1, 0))
	}
}

func (m *reviewModel) ensureCursorVisible() {
	var vp *viewport.Model
	var cursor int
	if m.activePane == 0 {
		vp = &m.leftViewport
		cursor = m.leftCursor
	} else {
		vp = &m.rightViewport
		cursor = m.rightCursor
	}

	cursorTop := cursor * appItemHeight
	cursorBottom := cursorTop + appItemHeight - 1

	if cursorTop < vp.YOffset {
		vp.SetYOffset(cursorTop)
	} else if cursorBottom >= vp.YOffset+vp.Height {
		vp.SetYOffset(cursorBottom - vp.Height + 1)
	}
}

func (m reviewModel) openDetailView() (tea.Model, tea.Cmd) {
	app, ok := m.selectedApp()
	if !ok {
		return m, nil
	}

	m.view = viewDetail
	m.detailApp = app
	m.showDescription = false
	m.detailViewport = viewport.New(m.width-4, m.height-4)
	m.detailViewport.SetContent(m.renderDetail())
	return m, nil
}

func (m reviewModel) selectedApp() (model.Application, bool) {
	apps := m.activeApps()
	if len(apps) == 0 {
		return model.Application{}, false
	}
	return apps[m.activeCursor()], true
}

func (m *reviewModel) removeApp(jobID string) {
	m.pending = removeByID(m.pending, jobID)
	m.ready = removeByID(m.ready, jobID)
	m.leftCursor = clamp(m.leftCursor, 0, max(len(m.pending)-1, 0))
	m.rightCursor = clamp(m.rightCursor, 0, max(len(m.ready)-1, 0))
}

func removeByID(apps []model.Application, jobID string) []model.Application {
	for i := range apps {
		if apps[i].JobID == jobID {
			return append(apps[:i], apps[i+1:]...)
		}
	}
	return apps
}

func (m *reviewModel) recalcLayout() {
	// 2 border chars per pane + 1 gap between panes.
	paneWidth := max((m.width-5)/2, 20)

	// Header (1 line) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	paneHeight := max(m.height-4, 5)

	if !m.sized {
		m.leftViewport = viewport.New(paneWidth, paneHeight)
		m.rightViewport = viewport.New(paneWidth, paneHeight)
		m.sized = true
	} else {
		m.leftViewport.Width = paneWidth
		m.leftViewport.Height = paneHeight
		m.rightViewport.Width = paneWidth
		m.rightViewport.Height = paneHeight
	}

	m.recalcContent()
}

func (m *reviewModel) recalcContent() {
	m.leftViewport.SetContent(renderApps(m.pending, m.leftCursor, m.activePane == 0))
	m.rightViewport.SetContent(renderApps(m.ready, m.rightCursor, m.activePane == 1))
}

func (m reviewModel) activeApps() []model.Application {
	if m.activePane == 0 {
		return m.pending
	}
	return m.ready
}

func (m reviewModel) activeCursor() int {
	if m.activePane == 0 {
		return m.leftCursor
	}
	return m.rightCursor
}

func (m reviewModel) View() string {
	if !m.sized {
		return "Initializing..."
	}

	if m.view == viewDetail {
		return m.viewDetail()
	}

	return m.viewList()
}

func (m reviewModel) viewList() string {
	paneWidth := m.leftViewport.Width

	// Headers.
	leftHeader := fmt.Sprintf(" Pending (%d)", len(m.pending))
	rightHeader := fmt.Sprintf(" Ready to Submit (%d)", len(m.ready))

	var leftHeaderRendered, rightHeaderRendered string
	var leftBorder, rightBorder lipgloss.Style

	if m.activePane == 0 {
		leftHeaderRendered = activeHeaderStyle.Render(leftHeader)
		rightHeaderRendered = inactiveHeaderStyle.Render(rightHeader)
		leftBorder = activeBorderStyle.Width(paneWidth)
		rightBorder = inactiveBorderStyle.Width(paneWidth)
	} else {
		leftHeaderRendered = inactiveHeaderStyle.Render(leftHeader)
		rightHeaderRendered = activeHeaderStyle.Render(rightHeader)
		leftBorder = inactiveBorderStyle.Width(paneWidth)
		rightBorder = activeBorderStyle.Width(paneWidth)
	}

	// Panes with borders.
	leftPane := leftBorder.Render(m.leftViewport.View())
	rightPane := rightBorder.Render(m.rightViewport.View())

	// Headers side by side.
	headerRow := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(paneWidth+2).Render(leftHeaderRendered),
		" ",
		lipgloss.NewStyle().Width(paneWidth+2).Render(rightHeaderRendered),
	)

	// Panes side by side.
	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, " ", rightPane)

	// Status bar.
	statusText := fmt.Sprintf(" %d pending | %d ready    ←/→/Tab switch  ↑/↓ cursor  Enter detail  o open  s skip  m manual  q quit",
		len(m.pending), len(m.ready))
	if m.statusErr != "" {
		statusText = " ⚠ " + m.statusErr
	}
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return headerRow + "\n" + panes + "\n" + statusBar
}

func (m reviewModel) viewDetail() string {
	title := detailTitleStyle.Render("Application Details")
	if m.saving {
		title += "  (saving...)"
	}

	border := activeBorderStyle.Width(m.width - 2)
	content := border.Render(m.detailViewport.View())

	statusText := " o open URL  s skip  m manual  esc/backspace back  ↑/↓ scroll  q quit"
	if m.detailApp.Description != "" {
		statusText = " o open URL  s skip  m manual  r desc  esc/backspace back  ↑/↓ scroll  q quit"
	}
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return title + "\n" + content + "\n" + statusBar
}

func (m reviewModel) renderDetail() string {
	app := m.detailApp
	var b strings.Builder

	addField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(detailValueStyle.Render(value))
		b.WriteByte('\n')
	}

	addField("Title", app.Title)
	addField("Company", app.Company)
	addField("Location", app.Location)
	addField("Job ID", app.JobID)
	addField("Source", app.Source)

	b.WriteByte('\n')
	addField("Posted", app.DatePosted)
	addField("Scraped", app.ScrapedDate)
	addField("Salary", app.Salary)
	addField("Sponsorship", app.Sponsorship)
	if app.ATSScore > 0 {
		addField("ATS Score", fmt.Sprintf("%.1f", app.ATSScore))
	}
	addField("Resume", app.ResumePDFPath)
	addField("Cover Letter", app.CoverLetterPDFPath)
	addField("Notes", app.Notes)

	b.WriteByte('\n')
	addField("Job URL", app.URL)

	if m.statusErr != "" {
		b.WriteByte('\n')
		b.WriteString(errorTextStyle.Render("⚠ "+m.statusErr) + "\n")
	}

	if app.Description != "" {
		wrapWidth := max(m.width-8, 20)
		b.WriteByte('\n')
		if m.showDescription {
			label := "── Description "
			fill := strings.Repeat("─", max(wrapWidth-len(label), 3))
			b.WriteString(descDividerStyle.Render(label+fill) + "\n\n")
			b.WriteString(descBodyStyle.Render(wordWrap(app.Description, wrapWidth)) + "\n")
		} else {
			b.WriteString(descHintStyle.Render("  press r to read the stored description") + "\n")
		}
	}

	return b.String()
}

func renderApps(apps []model.Application, cursor int, isActive bool) string {
	if len(apps) == 0 {
		return "  (nothing here)"
	}

	var b strings.Builder
	for i, app := range apps {
		isSelected := isActive && i == cursor

		titleSt := itemTitleStyle
		subtitleSt := itemSubtitleStyle
		prefix := "  "
		if isSelected {
			titleSt = selectedItemTitleStyle
			subtitleSt = selectedItemSubtitleStyle
			prefix = "> "
		}

		b.WriteString(prefix)
		b.WriteString(titleSt.Render(app.Title))
		b.WriteByte('\n')

		b.WriteString(prefix)
		b.WriteString(subtitleSt.Render(fmt.Sprintf("%s · %s", app.Company, app.Location)))
		b.WriteByte('\n')

		if i < len(apps)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sortApplications(apps []model.Application) {
	sort.Slice(apps, func(i, j int) bool {
		if apps[i].ScrapedDate != apps[j].ScrapedDate {
			return apps[i].ScrapedDate > apps[j].ScrapedDate
		}
		return apps[i].Company < apps[j].Company
	})
}

func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url in the default system browser, fire-and-forget.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// SplitQueue partitions the NEW queue into the two review panes: documents
// still missing versus tailored and awaiting manual submission.
func SplitQueue(apps []model.Application) (pending, ready []model.Application) {
	for _, app := range apps {
		if app.ResumePDFPath == "" {
			pending = append(pending, app)
		} else {
			ready = append(ready, app)
		}
	}
	return pending, ready
}

// RunReviewTUI opens the split-pane triage view over the NEW queue. Marking
// an application skipped or manual-needed persists immediately and drops it
// from the queue.
func RunReviewTUI(pending, ready []model.Application, st ApplicationStore) error {
	sortApplications(pending)
	sortApplications(ready)

	m := reviewModel{
		pending: pending,
		ready:   ready,
		store:   st,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

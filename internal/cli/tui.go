package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/panekit/panekit/pkg/divider"
	"github.com/panekit/panekit/pkg/editor"
	"github.com/panekit/panekit/pkg/geom"
	"github.com/panekit/panekit/pkg/workspace"
)

// Editor chrome metrics.
const (
	// canvasTop is the number of chrome lines above the canvas grid.
	// Mouse rows are translated by this amount.
	canvasTop = 2

	// sidebarWidth is the fixed width of the right-hand info panel.
	sidebarWidth = 34

	// statusRows is the number of chrome lines below the canvas grid.
	statusRows = 2
)

// Canvas cell styles.
var (
	regionPalette = []lipgloss.Style{
		lipgloss.NewStyle().Background(lipgloss.Color("24")).Foreground(colorWhite),
		lipgloss.NewStyle().Background(lipgloss.Color("29")).Foreground(colorWhite),
		lipgloss.NewStyle().Background(lipgloss.Color("94")).Foreground(colorWhite),
		lipgloss.NewStyle().Background(lipgloss.Color("60")).Foreground(colorWhite),
		lipgloss.NewStyle().Background(lipgloss.Color("96")).Foreground(colorWhite),
		lipgloss.NewStyle().Background(lipgloss.Color("66")).Foreground(colorWhite),
	}

	styleCellSelected = lipgloss.NewStyle().Background(lipgloss.Color("31")).Foreground(colorWhite).Bold(true)
	styleCellHandle   = lipgloss.NewStyle().Background(colorYellow).Foreground(lipgloss.Color("16"))
	styleCellDivider  = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	styleCellEmpty    = lipgloss.NewStyle().Foreground(colorDim)
)

// Style indices for cellGrid entries. Region styles start at styleRegion0.
const (
	styleEmpty = iota
	styleSelected
	styleHandle
	styleDivider
	styleRegion0
)

// =============================================================================
// editorModel - Interactive Layout Editor
// =============================================================================

// editorModel is the bubbletea model hosting one editor session. It
// translates terminal cells into canvas coordinates, feeds pointer and key
// events to the session, and paints the resulting geometry. All editing
// rules live in the session; the model is chrome.
type editorModel struct {
	ctx context.Context
	ws  *workspace.Workspace
	ed  *workspace.Editing

	handleMargin int

	// Cell geometry, set on the first window size message.
	cols, rows int // canvas grid in terminal cells
	sx, sy     int // canvas units per cell
	ready      bool

	mouseDown bool
	hover     geom.Point
	hoverOK   bool

	status string
	saved  bool
}

// newEditorModel builds the model around a loaded session.
func newEditorModel(ctx context.Context, ws *workspace.Workspace, ed *workspace.Editing, handleMargin int) editorModel {
	if handleMargin <= 0 {
		handleMargin = editor.DefaultHandleMargin
	}
	return editorModel{
		ctx:          ctx,
		ws:           ws,
		ed:           ed,
		handleMargin: handleMargin,
		status:       "ready",
	}
}

func (m editorModel) session() *editor.Session {
	return m.ed.Session
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

// resize fits the canvas grid into the available terminal area and fixes
// the cell scale for the session's canvas.
func (m *editorModel) resize(width, height int) {
	canvas := m.session().Canvas()

	availCols := width - sidebarWidth - 1
	availRows := height - canvasTop - statusRows
	if availCols < 10 || availRows < 5 {
		m.ready = false
		return
	}

	m.sx = (canvas.W + availCols - 1) / availCols
	m.sy = (canvas.H + availRows - 1) / availRows
	if m.sx < 1 {
		m.sx = 1
	}
	if m.sy < 1 {
		m.sy = 1
	}
	m.cols = (canvas.W + m.sx - 1) / m.sx
	m.rows = (canvas.H + m.sy - 1) / m.sy
	m.ready = true
}

// =============================================================================
// Input Handling
// =============================================================================

func (m editorModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sess := m.session()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		if sess.Mode() == editor.ModeRegions {
			sess.SetMode(editor.ModeDividers)
			m.status = "divider mode"
		} else {
			sess.SetMode(editor.ModeRegions)
			m.status = "region mode"
		}

	case "g":
		sess.SetSnapEnabled(!sess.SnapEnabled())
		if sess.SnapEnabled() {
			m.status = fmt.Sprintf("snap on (grid %d)", sess.GridSize())
		} else {
			m.status = "snap off"
		}

	case "r":
		if name, ok := sess.Selection(); ok {
			if err := sess.ResetRegion(name); err != nil {
				m.status = err.Error()
			} else {
				m.status = fmt.Sprintf("reset %q", name)
			}
		} else {
			m.status = "nothing selected"
		}

	case "R":
		if err := sess.ResetAll(); err != nil {
			m.status = err.Error()
		} else {
			m.status = "reset all regions"
		}

	case "w":
		return m.save()

	case "up", "down", "left", "right":
		sess.HandleKey(editor.KeyEvent{Key: editor.Key(msg.String())})

	case "shift+up":
		sess.HandleKey(editor.KeyEvent{Key: editor.KeyUp, ShiftHeld: true})
	case "shift+down":
		sess.HandleKey(editor.KeyEvent{Key: editor.KeyDown, ShiftHeld: true})
	case "shift+left":
		sess.HandleKey(editor.KeyEvent{Key: editor.KeyLeft, ShiftHeld: true})
	case "shift+right":
		sess.HandleKey(editor.KeyEvent{Key: editor.KeyRight, ShiftHeld: true})

	case "esc":
		sess.HandleKey(editor.KeyEvent{Key: editor.KeyEscape})
		m.status = "selection cleared"
	}

	return m, nil
}

func (m editorModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.ready {
		return m, nil
	}

	p, inside := m.cellToCanvas(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return m, nil
		}
		m.mouseDown = true
		m.session().HandlePointer(editor.PointerEvent{X: p.X, Y: p.Y, PrimaryButtonDown: true})

	case tea.MouseActionMotion:
		m.hover = p
		m.hoverOK = inside
		if m.mouseDown {
			m.session().HandlePointer(editor.PointerEvent{X: p.X, Y: p.Y, PrimaryButtonDown: true})
		}

	case tea.MouseActionRelease:
		if m.mouseDown {
			m.mouseDown = false
			m.session().HandlePointer(editor.PointerEvent{X: p.X, Y: p.Y, PrimaryButtonDown: false})
		}
	}

	return m, nil
}

// save exports the session through the workspace.
func (m editorModel) save() (tea.Model, tea.Cmd) {
	if m.ed.Key == "" {
		m.status = "no store key, run with --key"
		return m, nil
	}
	if err := m.ws.SaveSession(m.ctx, m.ed); err != nil {
		m.status = "save failed: " + err.Error()
		return m, nil
	}
	m.saved = true
	m.status = StyleSuccess.Render(fmt.Sprintf("saved to %q", m.ed.Key))
	return m, nil
}

// =============================================================================
// Coordinate Mapping
// =============================================================================

// cellToCanvas maps a terminal position to the center of its canvas cell,
// clamped to the canvas. inside is false for positions off the grid.
func (m editorModel) cellToCanvas(x, y int) (geom.Point, bool) {
	cx := x
	cy := y - canvasTop
	inside := cx >= 0 && cx < m.cols && cy >= 0 && cy < m.rows

	canvas := m.session().Canvas()
	p := geom.Point{
		X: geom.Clamp(cx*m.sx+m.sx/2, 0, canvas.W-1),
		Y: geom.Clamp(cy*m.sy+m.sy/2, 0, canvas.H-1),
	}
	return p, inside
}

// =============================================================================
// View
// =============================================================================

func (m editorModel) View() string {
	if !m.ready {
		return StyleDim.Render("waiting for terminal size (needs at least 45x9)")
	}

	var b strings.Builder
	b.WriteString(m.viewTitle())
	b.WriteString("\n")
	b.WriteString(m.viewHint())
	b.WriteString("\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewCanvas(), " ", m.viewSidebar())
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.viewStatus())

	return b.String()
}

func (m editorModel) viewTitle() string {
	sess := m.session()
	canvas := sess.Canvas()

	title := StyleTitle.Render("panekit")
	info := StyleDim.Render(fmt.Sprintf("canvas %dx%d · 1 cell = %dx%d units", canvas.W, canvas.H, m.sx, m.sy))
	return title + "  " + info
}

func (m editorModel) viewHint() string {
	return StyleDim.Render("drag regions · tab mode · g snap · arrows nudge · shift+arrows resize · r/R reset · w save · q quit")
}

func (m editorModel) viewStatus() string {
	line := m.viewHover()
	if m.status != "" {
		line += StyleDim.Render("  |  ") + m.status
	}
	return line
}

// viewHover describes what sits under the pointer.
func (m editorModel) viewHover() string {
	sess := m.session()
	if !m.hoverOK {
		return StyleDim.Render(fmt.Sprintf("mode %s", sess.Mode()))
	}

	at := fmt.Sprintf("(%d, %d)", m.hover.X, m.hover.Y)

	if sess.Mode() == editor.ModeDividers {
		if d, ok := divider.At(m.hover, sess.Dividers(), editor.DefaultDividerTolerance); ok {
			return StyleHighlight.Render(fmt.Sprintf("%s divider at %d", d.Axis, d.Position)) + " " + StyleDim.Render(at)
		}
		return StyleDim.Render("no divider " + at)
	}

	if name, ok := sess.Selection(); ok {
		if rect, ok := sess.Region(name); ok {
			if h := editor.HandleAt(m.hover, rect, m.handleMargin); h != editor.HandleNone {
				return StyleHighlight.Render(fmt.Sprintf("%s handle of %q", h, name)) + " " + StyleDim.Render(at)
			}
		}
	}
	if name, ok := editor.RegionAt(m.hover, sess.Regions()); ok {
		return StyleValue.Render(name) + " " + StyleDim.Render(at)
	}
	return StyleDim.Render("empty " + at)
}

// =============================================================================
// Canvas Painting
// =============================================================================

// cellGrid is one painted frame: a rune and style index per terminal cell.
type cellGrid struct {
	cols, rows int
	ch         []rune
	style      []int
}

func newCellGrid(cols, rows int) *cellGrid {
	g := &cellGrid{
		cols:  cols,
		rows:  rows,
		ch:    make([]rune, cols*rows),
		style: make([]int, cols*rows),
	}
	for i := range g.ch {
		g.ch[i] = '·'
		g.style[i] = styleEmpty
	}
	return g
}

func (g *cellGrid) set(cx, cy int, ch rune, style int) {
	if cx < 0 || cx >= g.cols || cy < 0 || cy >= g.rows {
		return
	}
	i := cy*g.cols + cx
	g.ch[i] = ch
	g.style[i] = style
}

func (g *cellGrid) fill(cx0, cy0, cx1, cy1 int, ch rune, style int) {
	for cy := cy0; cy <= cy1; cy++ {
		for cx := cx0; cx <= cx1; cx++ {
			g.set(cx, cy, ch, style)
		}
	}
}

// viewCanvas paints the session geometry into the cell grid and renders it.
func (m editorModel) viewCanvas() string {
	sess := m.session()
	grid := newCellGrid(m.cols, m.rows)

	selection, _ := sess.Selection()

	// Regions in insertion order, so later regions paint over earlier
	// ones exactly like the hit-test stacking order.
	for i, reg := range sess.Regions() {
		style := styleRegion0 + i%len(regionPalette)
		if reg.Name == selection {
			style = styleSelected
		}

		cx0, cy0 := reg.Rect.X/m.sx, reg.Rect.Y/m.sy
		cx1, cy1 := (reg.Rect.Right()-1)/m.sx, (reg.Rect.Bottom()-1)/m.sy
		grid.fill(cx0, cy0, cx1, cy1, ' ', style)

		label := reg.Name
		if width := cx1 - cx0 + 1; len(label) > width {
			label = label[:width]
		}
		for j, r := range label {
			grid.set(cx0+j, cy0, r, style)
		}
	}

	for _, d := range sess.Dividers() {
		if d.Axis == geom.Vertical {
			cx := d.Position / m.sx
			for cy := d.Span.Start / m.sy; cy <= (d.Span.End-1)/m.sy; cy++ {
				grid.set(cx, cy, '│', styleDivider)
			}
		} else {
			cy := d.Position / m.sy
			for cx := d.Span.Start / m.sx; cx <= (d.Span.End-1)/m.sx; cx++ {
				grid.set(cx, cy, '─', styleDivider)
			}
		}
	}

	// Resize handles on the selection, painted last so they stay visible.
	if rect, ok := sess.Region(selection); ok && selection != "" {
		cx0, cy0 := rect.X/m.sx, rect.Y/m.sy
		cx1, cy1 := (rect.Right()-1)/m.sx, (rect.Bottom()-1)/m.sy
		mx, my := (cx0+cx1)/2, (cy0+cy1)/2
		for _, h := range [][2]int{
			{cx0, cy0}, {cx1, cy0}, {cx1, cy1}, {cx0, cy1},
			{mx, cy0}, {cx1, my}, {mx, cy1}, {cx0, my},
		} {
			grid.set(h[0], h[1], '▪', styleHandle)
		}
	}

	return m.renderGrid(grid)
}

// renderGrid turns the cell grid into styled terminal lines, batching
// runs of equally styled cells.
func (m editorModel) renderGrid(g *cellGrid) string {
	styleFor := func(idx int) lipgloss.Style {
		switch idx {
		case styleEmpty:
			return styleCellEmpty
		case styleSelected:
			return styleCellSelected
		case styleHandle:
			return styleCellHandle
		case styleDivider:
			return styleCellDivider
		default:
			return regionPalette[idx-styleRegion0]
		}
	}

	var b strings.Builder
	for cy := 0; cy < g.rows; cy++ {
		if cy > 0 {
			b.WriteString("\n")
		}
		runStart := 0
		row := cy * g.cols
		for cx := 1; cx <= g.cols; cx++ {
			if cx == g.cols || g.style[row+cx] != g.style[row+runStart] {
				run := string(g.ch[row+runStart : row+cx])
				b.WriteString(styleFor(g.style[row+runStart]).Render(run))
				runStart = cx
			}
		}
	}
	return b.String()
}

// =============================================================================
// Sidebar
// =============================================================================

func (m editorModel) viewSidebar() string {
	sess := m.session()
	var b strings.Builder

	kv := func(key, value string) {
		b.WriteString(StyleDim.Render(fmt.Sprintf("%-10s", key)) + StyleValue.Render(value) + "\n")
	}

	b.WriteString(StyleTitle.Render("Session") + "\n")
	kv("mode", string(sess.Mode()))
	snap := "off"
	if sess.SnapEnabled() {
		snap = fmt.Sprintf("grid %d", sess.GridSize())
	}
	kv("snap", snap)
	if name, ok := sess.Selection(); ok {
		if rect, found := sess.Region(name); found {
			kv("selected", name)
			kv("rect", fmtRect(rect))
		}
	} else {
		kv("selected", "none")
	}
	if g := sess.Gesture(); g != editor.GestureIdle {
		kv("gesture", string(g))
	}
	if m.ed.Key != "" {
		kv("key", m.ed.Key)
	}

	b.WriteString("\n" + StyleTitle.Render("Collisions") + "\n")
	collisions := sess.Collisions()
	if len(collisions) == 0 {
		b.WriteString(StyleDim.Render("none") + "\n")
	}
	for i, col := range collisions {
		if i == 4 {
			b.WriteString(StyleDim.Render(fmt.Sprintf("+%d more", len(collisions)-i)) + "\n")
			break
		}
		b.WriteString(StyleWarning.Render(col.A+" × "+col.B) + "\n")
	}

	b.WriteString("\n" + StyleTitle.Render("Changes") + "\n")
	changes := sess.Diff()
	if len(changes) == 0 {
		b.WriteString(StyleDim.Render("none") + "\n")
	}
	for i, ch := range changes {
		if i == 6 {
			b.WriteString(StyleDim.Render(fmt.Sprintf("+%d more", len(changes)-i)) + "\n")
			break
		}
		var detail string
		switch {
		case ch.Added:
			detail = "added " + fmtRect(ch.To)
		case ch.Removed:
			detail = "removed"
		default:
			detail = fmtRect(ch.From) + " → " + fmtRect(ch.To)
		}
		b.WriteString(StyleValue.Render(ch.Name) + StyleDim.Render(" "+detail) + "\n")
	}

	return lipgloss.NewStyle().Width(sidebarWidth).Render(b.String())
}

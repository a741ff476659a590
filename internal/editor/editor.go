// Package editor implements the editable notes surface of the slide-over
// panel: a plain rune-grid buffer with cursor tracking, soft wrapping and
// viewport scrolling.
package editor

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// Editor is a focusable text area. The buffer is stored as lines of
// runes; the viewport is tracked in visual (wrapped) lines.
type Editor struct {
	lines       [][]rune
	cursorRow   int
	cursorCol   int
	desiredCol  int // preserves the visual column across vertical movement
	viewportRow int // top visible visual line
	width       int
	height      int
	placeholder string
	focused     bool
	dirty       bool
}

// New returns an empty unfocused editor.
func New() Editor {
	return Editor{
		lines:  [][]rune{{}},
		width:  80,
		height: 24,
	}
}

func (e *Editor) SetWidth(w int) {
	if w > 0 {
		e.width = w
	}
}

func (e *Editor) SetHeight(h int) {
	if h > 0 {
		e.height = h
	}
}

func (e *Editor) SetPlaceholder(p string) {
	e.placeholder = p
}

func (e *Editor) Focus() {
	e.focused = true
}

func (e *Editor) Blur() {
	e.focused = false
}

func (e *Editor) Focused() bool {
	return e.focused
}

// Dirty reports whether the buffer changed since the last ClearDirty.
func (e *Editor) Dirty() bool {
	return e.dirty
}

func (e *Editor) ClearDirty() {
	e.dirty = false
}

// Value returns the buffer contents as a single string.
func (e *Editor) Value() string {
	var sb strings.Builder
	for i, line := range e.lines {
		sb.WriteString(string(line))
		if i < len(e.lines)-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// SetValue replaces the buffer contents and resets cursor, viewport and
// dirty state.
func (e *Editor) SetValue(text string) {
	e.lines = [][]rune{}
	if text == "" {
		e.lines = [][]rune{{}}
	} else {
		for _, line := range strings.Split(text, "\n") {
			e.lines = append(e.lines, []rune(line))
		}
	}
	e.cursorRow = 0
	e.cursorCol = 0
	e.desiredCol = 0
	e.viewportRow = 0
	e.dirty = false
}

// SetCursor places the cursor at a character offset into the buffer.
func (e *Editor) SetCursor(pos int) {
	if pos < 0 {
		pos = 0
	}
	off := 0
	for row, line := range e.lines {
		if off+len(line) >= pos {
			e.cursorRow = row
			e.cursorCol = pos - off
			e.updateDesiredCol()
			e.ensureCursorVisible()
			return
		}
		off += len(line) + 1
	}
	e.CursorToEnd()
}

// Cursor returns the cursor position as a character offset.
func (e *Editor) Cursor() int {
	pos := 0
	for i := 0; i < e.cursorRow && i < len(e.lines); i++ {
		pos += len(e.lines[i]) + 1
	}
	return pos + e.cursorCol
}

// CursorToEnd moves the cursor past the last rune of the buffer.
func (e *Editor) CursorToEnd() {
	e.cursorRow = len(e.lines) - 1
	e.cursorCol = len(e.lines[e.cursorRow])
	e.updateDesiredCol()
	e.ensureCursorVisible()
}

// InsertString inserts text at the cursor, splitting on newlines. Used
// for paste payloads and inline image tokens; counts as an edit.
func (e *Editor) InsertString(text string) {
	for _, r := range text {
		if r == '\n' || r == '\r' {
			e.insertNewline()
		} else {
			e.insertRune(r)
		}
	}
}

func (e *Editor) insertRune(r rune) {
	line := e.lines[e.cursorRow]
	line = append(line[:e.cursorCol], append([]rune{r}, line[e.cursorCol:]...)...)
	e.lines[e.cursorRow] = line
	e.cursorCol++
	e.updateDesiredCol()
	e.ensureCursorVisible()
	e.dirty = true
}

func (e *Editor) insertNewline() {
	current := e.lines[e.cursorRow]
	before := make([]rune, e.cursorCol)
	copy(before, current[:e.cursorCol])
	after := make([]rune, len(current)-e.cursorCol)
	copy(after, current[e.cursorCol:])

	e.lines[e.cursorRow] = before
	e.lines = append(e.lines[:e.cursorRow+1], append([][]rune{after}, e.lines[e.cursorRow+1:]...)...)

	e.cursorRow++
	e.cursorCol = 0
	e.desiredCol = 0
	e.ensureCursorVisible()
	e.dirty = true
}

func (e *Editor) deleteCharBackward() {
	if e.cursorCol > 0 {
		line := e.lines[e.cursorRow]
		e.lines[e.cursorRow] = append(line[:e.cursorCol-1], line[e.cursorCol:]...)
		e.cursorCol--
		e.dirty = true
	} else if e.cursorRow > 0 {
		prev := e.lines[e.cursorRow-1]
		e.cursorCol = len(prev)
		e.lines[e.cursorRow-1] = append(prev, e.lines[e.cursorRow]...)
		e.lines = append(e.lines[:e.cursorRow], e.lines[e.cursorRow+1:]...)
		e.cursorRow--
		e.dirty = true
	}
	e.updateDesiredCol()
	e.ensureCursorVisible()
}

func (e *Editor) deleteCharForward() {
	line := e.lines[e.cursorRow]
	if e.cursorCol < len(line) {
		e.lines[e.cursorRow] = append(line[:e.cursorCol], line[e.cursorCol+1:]...)
		e.dirty = true
	} else if e.cursorRow < len(e.lines)-1 {
		e.lines[e.cursorRow] = append(line, e.lines[e.cursorRow+1]...)
		e.lines = append(e.lines[:e.cursorRow+1], e.lines[e.cursorRow+2:]...)
		e.dirty = true
	}
	e.updateDesiredCol()
}

func (e *Editor) deleteToLineEnd() {
	line := e.lines[e.cursorRow]
	if e.cursorCol < len(line) {
		e.lines[e.cursorRow] = line[:e.cursorCol]
		e.dirty = true
	}
}

func (e *Editor) deleteToLineStart() {
	if e.cursorCol > 0 {
		e.lines[e.cursorRow] = e.lines[e.cursorRow][e.cursorCol:]
		e.cursorCol = 0
		e.desiredCol = 0
		e.dirty = true
	}
}

func (e *Editor) deleteWordBackward() {
	line := e.lines[e.cursorRow]
	col := e.cursorCol
	for col > 0 && line[col-1] == ' ' {
		col--
	}
	for col > 0 && line[col-1] != ' ' {
		col--
	}
	if col < e.cursorCol {
		e.lines[e.cursorRow] = append(line[:col], line[e.cursorCol:]...)
		e.cursorCol = col
		e.updateDesiredCol()
		e.dirty = true
	} else if e.cursorCol == 0 {
		e.deleteCharBackward()
	}
}

func (e *Editor) moveLeft() {
	if e.cursorCol > 0 {
		e.cursorCol--
	} else if e.cursorRow > 0 {
		e.cursorRow--
		e.cursorCol = len(e.lines[e.cursorRow])
	}
	e.updateDesiredCol()
	e.ensureCursorVisible()
}

func (e *Editor) moveRight() {
	if e.cursorCol < len(e.lines[e.cursorRow]) {
		e.cursorCol++
	} else if e.cursorRow < len(e.lines)-1 {
		e.cursorRow++
		e.cursorCol = 0
	}
	e.updateDesiredCol()
	e.ensureCursorVisible()
}

func (e *Editor) moveUp() {
	if e.width > 0 && e.cursorCol >= e.width {
		// Within a wrapped line: move one visual line up.
		e.cursorCol -= e.width
	} else if e.cursorRow > 0 {
		e.cursorRow--
		prevLen := len(e.lines[e.cursorRow])
		lastVisualStart := 0
		if e.width > 0 && prevLen > 0 {
			lastVisualStart = ((prevLen - 1) / e.width) * e.width
		}
		e.cursorCol = lastVisualStart + e.desiredCol
		if e.cursorCol > prevLen {
			e.cursorCol = prevLen
		}
	} else {
		e.cursorCol = 0
		e.desiredCol = 0
	}
	e.ensureCursorVisible()
}

func (e *Editor) moveDown() {
	lineLen := len(e.lines[e.cursorRow])
	if e.width > 0 && e.cursorCol+e.width <= lineLen {
		// Within a wrapped line: move one visual line down.
		e.cursorCol += e.width
	} else if e.cursorRow < len(e.lines)-1 {
		e.cursorRow++
		e.cursorCol = e.desiredCol
		if e.cursorCol > len(e.lines[e.cursorRow]) {
			e.cursorCol = len(e.lines[e.cursorRow])
		}
	} else {
		e.cursorCol = lineLen
	}
	e.ensureCursorVisible()
}

func (e *Editor) moveToLineStart() {
	e.cursorCol = 0
	e.desiredCol = 0
}

func (e *Editor) moveToLineEnd() {
	e.cursorCol = len(e.lines[e.cursorRow])
	e.updateDesiredCol()
}

func (e *Editor) jumpWordBackward() {
	line := e.lines[e.cursorRow]
	col := e.cursorCol
	for col > 0 && line[col-1] == ' ' {
		col--
	}
	for col > 0 && line[col-1] != ' ' {
		col--
	}
	e.cursorCol = col
	e.updateDesiredCol()
}

func (e *Editor) jumpWordForward() {
	line := e.lines[e.cursorRow]
	col := e.cursorCol
	for col < len(line) && line[col] != ' ' {
		col++
	}
	for col < len(line) && line[col] == ' ' {
		col++
	}
	e.cursorCol = col
	e.updateDesiredCol()
}

func (e *Editor) updateDesiredCol() {
	if e.width > 0 {
		e.desiredCol = e.cursorCol % e.width
	} else {
		e.desiredCol = e.cursorCol
	}
}

func (e *Editor) countVisualLines(line []rune) int {
	if e.width <= 0 || len(line) == 0 {
		return 1
	}
	return (len(line) + e.width - 1) / e.width
}

func (e *Editor) cursorVisualRow() int {
	visual := 0
	for i := 0; i < e.cursorRow && i < len(e.lines); i++ {
		visual += e.countVisualLines(e.lines[i])
	}
	if e.width > 0 && e.cursorCol > 0 {
		visual += e.cursorCol / e.width
	}
	return visual
}

func (e *Editor) ensureCursorVisible() {
	cursor := e.cursorVisualRow()
	if cursor >= e.viewportRow+e.height {
		e.viewportRow = cursor - e.height + 1
	}
	if cursor < e.viewportRow {
		e.viewportRow = cursor
	}
}

// Update applies a key message to the buffer when focused.
func (e *Editor) Update(msg tea.Msg) {
	if !e.focused {
		return
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return
	}

	switch key.String() {
	case "enter":
		e.insertNewline()
	case "backspace":
		e.deleteCharBackward()
	case "delete":
		e.deleteCharForward()
	case "up":
		e.moveUp()
	case "down":
		e.moveDown()
	case "left":
		e.moveLeft()
	case "right":
		e.moveRight()
	case "home", "ctrl+a":
		e.moveToLineStart()
	case "end", "ctrl+e":
		e.moveToLineEnd()
	case "ctrl+u":
		e.deleteToLineStart()
	case "ctrl+k":
		e.deleteToLineEnd()
	case "ctrl+w", "alt+backspace":
		e.deleteWordBackward()
	case "ctrl+left":
		e.jumpWordBackward()
	case "ctrl+right":
		e.jumpWordForward()
	case "ctrl+home":
		e.SetCursor(0)
	case "ctrl+end":
		e.CursorToEnd()
	default:
		if len(key.Runes) > 0 {
			for _, r := range key.Runes {
				if r == '\n' || r == '\r' {
					e.insertNewline()
				} else {
					e.insertRune(r)
				}
			}
		}
	}
}

// View renders the visible window of the buffer, soft-wrapped to width,
// with a reverse-video cursor when focused.
func (e *Editor) View() string {
	if len(e.lines) == 1 && len(e.lines[0]) == 0 && e.placeholder != "" {
		return placeholderStyle.Render(e.placeholder)
	}

	cursorStyle := lipgloss.NewStyle().Reverse(true)

	var sb strings.Builder
	rendered := 0
	visual := 0

	for row := 0; row < len(e.lines) && rendered < e.height; row++ {
		line := e.lines[row]
		segments := e.countVisualLines(line)

		for v := 0; v < segments; v++ {
			if visual < e.viewportRow {
				visual++
				continue
			}
			if rendered >= e.height {
				break
			}

			start := v * e.width
			end := start + e.width
			if end > len(line) {
				end = len(line)
			}
			segment := line[start:end]

			if rendered > 0 {
				sb.WriteRune('\n')
			}

			cursorPos := -1
			if e.focused && row == e.cursorRow && e.cursorCol >= start && e.cursorCol-start <= len(segment) {
				cursorPos = e.cursorCol - start
			}

			switch {
			case cursorPos < 0:
				sb.WriteString(string(segment))
			case cursorPos < len(segment):
				sb.WriteString(string(segment[:cursorPos]))
				sb.WriteString(cursorStyle.Render(string(segment[cursorPos : cursorPos+1])))
				sb.WriteString(string(segment[cursorPos+1:]))
			default:
				// Cursor sits past the last rune of the line.
				sb.WriteString(string(segment))
				if v == segments-1 {
					sb.WriteString(cursorStyle.Render(" "))
				}
			}

			visual++
			rendered++
		}
	}

	return sb.String()
}

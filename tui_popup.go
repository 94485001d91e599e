package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"raidcalc/capacity"
)

const popupWidth = 56

// comparePopup ranks every scheme for the planner's drives. Choosing an
// entry switches the planner to that scheme.
type comparePopup struct {
	rows     []comparison
	selected int
}

func newComparePopup(drives []float64) *comparePopup {
	return &comparePopup{rows: compareSchemes(capacity.Default, drives)}
}

func (p *comparePopup) lines() []string {
	lines := make([]string, 0, len(p.rows))
	for _, row := range p.rows {
		if row.Err != nil {
			lines = append(lines, fmt.Sprintf("%-12s not possible", row.Scheme.ID))
			continue
		}
		lines = append(lines, fmt.Sprintf("%-12s %12s %7s",
			row.Scheme.ID,
			capacity.FormatCapacity(row.Result.Usable, false),
			capacity.FormatPercentage(row.Result.Efficiency)))
	}
	return lines
}

// openComparePopup shows the comparison with the current scheme selected.
func (s *plannerState) openComparePopup() {
	popup := newComparePopup(s.drives)
	for i, row := range popup.rows {
		if row.Scheme.ID == s.scheme().ID {
			popup.selected = i
		}
	}
	s.popup = popup
}

// handlePopupKey consumes keys while the popup is open.
func (s *plannerState) handlePopupKey(ev *tcell.EventKey) {
	p := s.popup
	switch ev.Key() {
	case tcell.KeyEscape:
		s.popup = nil
	case tcell.KeyUp:
		if p.selected > 0 {
			p.selected--
		}
	case tcell.KeyDown:
		if p.selected < len(p.rows)-1 {
			p.selected++
		}
	case tcell.KeyEnter:
		id := p.rows[p.selected].Scheme.ID
		for i, scheme := range s.schemes {
			if scheme.ID == id {
				s.schemeIdx = i
			}
		}
		s.popup = nil
		s.recalculate()
	default:
		if ev.Rune() == 'c' || ev.Rune() == 'C' {
			s.popup = nil
		}
	}
}

// renderPopup draws the comparison popup over the planner
func (s *plannerState) renderPopup(screen tcell.Screen, width, height int) {
	lines := s.popup.lines()
	boxWidth := popupWidth
	boxHeight := len(lines) + 5 // title, separator, instructions and borders
	boxX := (width - boxWidth) / 2
	boxY := (height - boxHeight) / 2

	if boxX < 0 {
		boxX = 0
	}
	if boxY < 0 {
		boxY = 0
	}
	if boxX+boxWidth > width {
		boxWidth = width - boxX
	}
	if boxY+boxHeight > height {
		boxHeight = height - boxY
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Dim(true))
		}
	}
	drawBox(screen, boxX, boxY, boxWidth, boxHeight)

	title := "Compare Schemes"
	drawText(screen, boxX+(boxWidth-len(title))/2, boxY+1, boxX+boxWidth-1, title,
		tcell.StyleDefault.Bold(true).Reverse(true))

	sepY := boxY + 2
	screen.SetContent(boxX, sepY, '├', nil, tcell.StyleDefault.Bold(true))
	for x := boxX + 1; x < boxX+boxWidth-1; x++ {
		screen.SetContent(x, sepY, '─', nil, tcell.StyleDefault.Bold(true))
	}
	screen.SetContent(boxX+boxWidth-1, sepY, '┤', nil, tcell.StyleDefault.Bold(true))

	rowY := boxY + 3
	for i, line := range lines {
		if rowY+i >= boxY+boxHeight-2 {
			break
		}
		style := tcell.StyleDefault.Reverse(true)
		marker := "  "
		if i == s.popup.selected {
			style = tcell.StyleDefault.
				Foreground(tcell.ColorBlack).
				Background(tcell.ColorWhite).
				Reverse(true)
			marker = "▶ "
		}
		if s.popup.rows[i].Err != nil {
			style = style.Dim(true)
		}
		drawText(screen, boxX+2, rowY+i, boxX+boxWidth-2, marker+line, style)
	}

	instructions := "↑↓: Select  Enter: Use  Esc: Close"
	instX := boxX + (boxWidth-len([]rune(instructions)))/2
	drawText(screen, instX, boxY+boxHeight-2, boxX+boxWidth-1, instructions,
		tcell.StyleDefault.Dim(true).Reverse(true))
}

// drawBox draws a bordered box with a reversed background.
func drawBox(screen tcell.Screen, x0, y0, w, h int) {
	border := tcell.StyleDefault.Bold(true)
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			var ch rune
			switch {
			case y == y0 && x == x0:
				ch = '┌'
			case y == y0 && x == x0+w-1:
				ch = '┐'
			case y == y0+h-1 && x == x0:
				ch = '└'
			case y == y0+h-1 && x == x0+w-1:
				ch = '┘'
			case y == y0 || y == y0+h-1:
				ch = '─'
			case x == x0 || x == x0+w-1:
				ch = '│'
			default:
				screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Reverse(true))
				continue
			}
			screen.SetContent(x, y, ch, nil, border)
		}
	}
}

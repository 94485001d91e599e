package main

import (
	"fmt"
	"os"

	tcell "github.com/gdamore/tcell/v2"

	"raidcalc/capacity"
	"raidcalc/config"
)

type plannerPane int

const (
	paneSchemes plannerPane = iota
	paneDrives
)

const (
	schemeColumn = 0
	driveColumn  = 28
	resultColumn = 46
	listTop      = 3
)

// plannerState holds the full-screen planner state
type plannerState struct {
	schemes   []capacity.Scheme
	schemeIdx int
	drives    []float64
	driveIdx  int
	focus     plannerPane
	groups    int
	showBoth  bool

	defaultSize float64
	result      *capacity.Result
	err         error
	popup       *comparePopup
}

func newPlannerState(settings config.Settings, drives []float64) *plannerState {
	s := &plannerState{
		schemes:     capacity.Default.Schemes(),
		groups:      1,
		showBoth:    true,
		defaultSize: settings.DefaultDriveSize,
	}
	for i, scheme := range s.schemes {
		if scheme.ID == settings.DefaultScheme {
			s.schemeIdx = i
		}
	}
	if len(drives) == 0 {
		drives = uniformDrives(4, settings.DefaultDriveSize)
	}
	s.drives = append([]float64(nil), drives...)
	s.recalculate()
	return s
}

func (s *plannerState) scheme() capacity.Scheme {
	return s.schemes[s.schemeIdx]
}

func (s *plannerState) topology() *capacity.Topology {
	if s.groups <= 1 || !s.scheme().Groupable {
		return nil
	}
	return &capacity.Topology{Groups: s.groups, PerGroup: len(s.drives) / s.groups}
}

func (s *plannerState) recalculate() {
	res, err := capacity.Calculate(s.scheme().ID, s.drives, s.topology())
	if err != nil {
		s.result = nil
		s.err = err
		return
	}
	s.result = &res
	s.err = nil
}

// runTUI is the main entry point for the planner command
func runTUI(settings config.Settings, drives []float64) {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(exitFailure)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(exitFailure)
	}
	defer screen.Fini()

	newPlannerState(settings, drives).runLoop(screen)
}

func (s *plannerState) runLoop(screen tcell.Screen) {
	screen.SetStyle(tcell.StyleDefault.
		Foreground(tcell.ColorWhite).
		Background(tcell.ColorBlack))
	screen.Clear()

	for {
		s.render(screen)
		screen.Show()

		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if s.popup != nil {
				s.handlePopupKey(ev)
				continue
			}
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				return
			}
			if ev.Rune() == 'q' || ev.Rune() == 'Q' {
				return
			}
			s.handleKeyEvent(ev)
		case *tcell.EventResize:
			screen.Sync()
		case nil:
			return
		}
	}
}

func (s *plannerState) handleKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyTab, tcell.KeyBacktab:
		if s.focus == paneSchemes {
			s.focus = paneDrives
		} else {
			s.focus = paneSchemes
		}
		return
	case tcell.KeyUp:
		s.moveSelection(-1)
		return
	case tcell.KeyDown:
		s.moveSelection(1)
		return
	case tcell.KeyLeft:
		if s.focus == paneDrives {
			s.stepDriveSize(-1)
		}
		return
	case tcell.KeyRight:
		if s.focus == paneDrives {
			s.stepDriveSize(1)
		}
		return
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		s.removeDrive()
		return
	}

	switch ev.Rune() {
	case '+', 'a', 'A':
		s.addDrive()
	case '-', 'd', 'D':
		s.removeDrive()
	case 'g':
		s.groups++
		s.recalculate()
	case 'G':
		if s.groups > 1 {
			s.groups--
			s.recalculate()
		}
	case 't', 'T':
		s.showBoth = !s.showBoth
	case 'c', 'C':
		s.openComparePopup()
	}
}

func (s *plannerState) moveSelection(delta int) {
	if s.focus == paneSchemes {
		next := s.schemeIdx + delta
		if next >= 0 && next < len(s.schemes) {
			s.schemeIdx = next
			s.recalculate()
		}
		return
	}
	next := s.driveIdx + delta
	if next >= 0 && next < len(s.drives) {
		s.driveIdx = next
	}
}

// stepDriveSize moves the selected drive to the neighbouring preset size.
func (s *plannerState) stepDriveSize(delta int) {
	if len(s.drives) == 0 {
		return
	}
	current := s.drives[s.driveIdx]
	presets := capacity.PresetDriveSizes

	next := current
	if delta > 0 {
		for _, p := range presets {
			if p > current {
				next = p
				break
			}
		}
	} else {
		for i := len(presets) - 1; i >= 0; i-- {
			if presets[i] < current {
				next = presets[i]
				break
			}
		}
	}
	s.drives[s.driveIdx] = next
	s.recalculate()
}

func (s *plannerState) addDrive() {
	size := s.defaultSize
	if len(s.drives) > 0 {
		size = s.drives[s.driveIdx]
	}
	s.drives = append(s.drives, size)
	s.driveIdx = len(s.drives) - 1
	s.recalculate()
}

func (s *plannerState) removeDrive() {
	if len(s.drives) == 0 {
		return
	}
	s.drives = append(s.drives[:s.driveIdx], s.drives[s.driveIdx+1:]...)
	if s.driveIdx >= len(s.drives) && s.driveIdx > 0 {
		s.driveIdx--
	}
	s.recalculate()
}

// resultLines is the text of the result panel.
func (s *plannerState) resultLines() []string {
	scheme := s.scheme()
	lines := []string{scheme.Name, scheme.Description, ""}
	if s.err != nil {
		return append(lines, "Cannot calculate:", s.err.Error())
	}

	res := s.result
	lines = append(lines,
		"Usable:     "+capacity.FormatCapacity(res.Usable, s.showBoth),
		"Raw:        "+capacity.FormatCapacity(res.Raw, s.showBoth),
		"Efficiency: "+capacity.FormatPercentage(res.Efficiency),
		"Redundancy: "+capacity.FormatCapacity(res.Wasted, s.showBoth),
		"",
		capacity.FaultToleranceText(scheme.FaultTolerance),
		capacity.PerformanceText(scheme),
		"",
		fmt.Sprintf("%d drives: %s", len(s.drives), capacity.FormatDriveList(s.drives)),
	)
	if res.Topology != nil {
		lines = append(lines, fmt.Sprintf("%d vdevs × %d drives each", res.Topology.Groups, res.Topology.PerGroup))
	}
	return lines
}

func (s *plannerState) statusText() string {
	if s.err != nil {
		return s.err.Error()
	}
	return fmt.Sprintf("Ready: %s usable", capacity.FormatCapacity(s.result.Usable, false))
}

func (s *plannerState) render(screen tcell.Screen) {
	screen.Clear()
	width, height := screen.Size()

	title := "=== Storage Capacity Planner ==="
	titleX := (width - len(title)) / 2
	if titleX < 0 {
		titleX = 0
	}
	drawText(screen, titleX, 0, width, title, tcell.StyleDefault.Bold(true))

	headerStyle := tcell.StyleDefault.Bold(true)
	drawText(screen, schemeColumn, 2, driveColumn-1, "Scheme", headerStyle)
	drawText(screen, driveColumn, 2, resultColumn-1, "Drives", headerStyle)
	drawText(screen, resultColumn, 2, width, "Result", headerStyle)

	for i, scheme := range s.schemes {
		y := listTop + i
		if y >= height-3 {
			break
		}
		drawText(screen, schemeColumn, y, driveColumn-1, listPrefix(i == s.schemeIdx)+scheme.Name,
			s.rowStyle(paneSchemes, i == s.schemeIdx))
	}

	for i, size := range s.drives {
		y := listTop + i
		if y >= height-3 {
			break
		}
		line := fmt.Sprintf("%sDrive %d: %s", listPrefix(i == s.driveIdx), i+1, capacity.FormatSize(size))
		drawText(screen, driveColumn, y, resultColumn-1, line, s.rowStyle(paneDrives, i == s.driveIdx))
	}

	resultStyle := tcell.StyleDefault
	if s.err != nil {
		resultStyle = resultStyle.Foreground(tcell.ColorRed)
	}
	for i, line := range s.resultLines() {
		y := listTop + i
		if y >= height-3 {
			break
		}
		drawText(screen, resultColumn, y, width, line, resultStyle)
	}

	statusY := height - 2
	for x := 0; x < width; x++ {
		screen.SetContent(x, statusY, ' ', nil, tcell.StyleDefault.Reverse(true))
	}
	drawText(screen, 0, statusY, width, s.statusText(), tcell.StyleDefault.Reverse(true))
	if topo := s.topology(); topo != nil {
		right := fmt.Sprintf("vdevs: %d", topo.Groups)
		drawText(screen, width-len(right), statusY, width, right, tcell.StyleDefault.Reverse(true))
	}

	instructions := "Tab: Pane | ↑↓: Select | ←→: Size | +/-: Add/Remove | g/G: vdevs | c: Compare | t: TB | Q: Quit"
	instX := (width - len([]rune(instructions))) / 2
	if instX < 0 {
		instX = 0
	}
	drawText(screen, instX, height-1, width, instructions, tcell.StyleDefault.Dim(true))

	if s.popup != nil {
		s.renderPopup(screen, width, height)
	}
}

func (s *plannerState) rowStyle(pane plannerPane, selected bool) tcell.Style {
	if !selected {
		return tcell.StyleDefault
	}
	if s.focus == pane {
		return tcell.StyleDefault.
			Foreground(tcell.ColorBlack).
			Background(tcell.ColorWhite)
	}
	return tcell.StyleDefault.Bold(true)
}

func listPrefix(selected bool) string {
	if selected {
		return "> "
	}
	return "  "
}

// drawText writes text from (x, y), clipped before maxX.
func drawText(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) {
	for _, ch := range text {
		if x >= maxX {
			break
		}
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

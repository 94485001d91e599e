package main

import (
	"strings"
	"testing"

	tcell "github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raidcalc/capacity"
	"raidcalc/config"
)

func schemeIndex(t *testing.T, s *plannerState, id string) int {
	t.Helper()
	for i, scheme := range s.schemes {
		if scheme.ID == id {
			return i
		}
	}
	t.Fatalf("scheme %s not listed", id)
	return -1
}

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestNewPlannerStateDefaults(t *testing.T) {
	s := newPlannerState(config.Defaults(), nil)

	assert.Equal(t, "raid5", s.scheme().ID)
	assert.Equal(t, []float64{12, 12, 12, 12}, s.drives)
	require.NoError(t, s.err)
	assert.InDelta(t, 3*capacity.ToBinaryUnits(12), s.result.Usable, 1e-9)
	assert.Equal(t, "Ready: 32.74 TiB usable", s.statusText())
}

func TestPlannerStateKeepsCallerDrives(t *testing.T) {
	drives := []float64{4, 8}
	s := newPlannerState(config.Defaults(), drives)
	s.handleKeyEvent(keyRune('a'))

	assert.Equal(t, []float64{4, 8}, drives)
	assert.Equal(t, []float64{4, 8, 4}, s.drives)
}

func TestPlannerStateNavigation(t *testing.T) {
	s := newPlannerState(config.Defaults(), nil)

	s.handleKeyEvent(key(tcell.KeyUp))
	assert.Equal(t, "raid1", s.scheme().ID)
	s.handleKeyEvent(key(tcell.KeyUp))
	s.handleKeyEvent(key(tcell.KeyUp))
	assert.Equal(t, "raid0", s.scheme().ID, "selection stops at the first scheme")

	s.handleKeyEvent(key(tcell.KeyTab))
	assert.Equal(t, paneDrives, s.focus)
	s.handleKeyEvent(key(tcell.KeyDown))
	s.handleKeyEvent(key(tcell.KeyDown))
	assert.Equal(t, 2, s.driveIdx)
	assert.Equal(t, "raid0", s.scheme().ID, "drive pane keys leave the scheme alone")

	s.handleKeyEvent(key(tcell.KeyBacktab))
	assert.Equal(t, paneSchemes, s.focus)
}

func TestPlannerStateDriveSizes(t *testing.T) {
	s := newPlannerState(config.Defaults(), nil)

	s.handleKeyEvent(key(tcell.KeyRight))
	assert.Equal(t, 12.0, s.drives[0], "size keys only act on the drive pane")

	s.handleKeyEvent(key(tcell.KeyTab))
	s.handleKeyEvent(key(tcell.KeyRight))
	assert.Equal(t, 14.0, s.drives[0])
	s.handleKeyEvent(key(tcell.KeyLeft))
	s.handleKeyEvent(key(tcell.KeyLeft))
	assert.Equal(t, 10.0, s.drives[0])

	s.drives[0] = 24
	s.handleKeyEvent(key(tcell.KeyRight))
	assert.Equal(t, 24.0, s.drives[0], "largest preset is kept")

	s.drives[0] = 5
	s.handleKeyEvent(key(tcell.KeyRight))
	assert.Equal(t, 6.0, s.drives[0], "off-preset sizes snap to the next preset")
}

func TestPlannerStateAddRemove(t *testing.T) {
	s := newPlannerState(config.Defaults(), nil)

	s.handleKeyEvent(keyRune('d'))
	s.handleKeyEvent(keyRune('-'))
	assert.Len(t, s.drives, 2)

	var insufficient *capacity.InsufficientDrivesError
	require.ErrorAs(t, s.err, &insufficient)
	assert.Nil(t, s.result)
	assert.Equal(t, "RAID 5 requires at least 3 drives, got 2", s.statusText())
	assert.Contains(t, s.resultLines(), "Cannot calculate:")

	s.handleKeyEvent(keyRune('+'))
	assert.Len(t, s.drives, 3)
	assert.Equal(t, 2, s.driveIdx)
	assert.NoError(t, s.err)

	s.handleKeyEvent(key(tcell.KeyDelete))
	s.handleKeyEvent(key(tcell.KeyDelete))
	s.handleKeyEvent(key(tcell.KeyDelete))
	s.handleKeyEvent(key(tcell.KeyDelete))
	assert.Empty(t, s.drives)
	assert.Equal(t, 0, s.driveIdx)

	s.handleKeyEvent(keyRune('a'))
	assert.Equal(t, []float64{12}, s.drives, "empty list grows with the default size")
}

func TestPlannerStateGroups(t *testing.T) {
	s := newPlannerState(config.Defaults(), []float64{4, 4, 4, 4, 4, 4})

	s.handleKeyEvent(keyRune('g'))
	assert.Nil(t, s.topology(), "raid5 ignores the vdev count")

	s.schemeIdx = schemeIndex(t, s, "raidz1")
	s.recalculate()
	require.NotNil(t, s.topology())
	assert.Equal(t, capacity.Topology{Groups: 2, PerGroup: 3}, *s.topology())
	require.NoError(t, s.err)
	assert.InDelta(t, 4*capacity.ToBinaryUnits(4), s.result.Usable, 1e-9)
	assert.Contains(t, s.resultLines(), "2 vdevs × 3 drives each")

	s.handleKeyEvent(keyRune('g'))
	require.NoError(t, s.err)
	assert.InDelta(t, 3*capacity.ToBinaryUnits(4), s.result.Usable, 1e-9)
	assert.Contains(t, s.resultLines(), "3 vdevs × 2 drives each")

	s.handleKeyEvent(keyRune('g'))
	var mismatch *capacity.TopologyMismatchError
	require.ErrorAs(t, s.err, &mismatch)
	assert.Nil(t, s.result)

	s.handleKeyEvent(keyRune('G'))
	s.handleKeyEvent(keyRune('G'))
	s.handleKeyEvent(keyRune('G'))
	s.handleKeyEvent(keyRune('G'))
	assert.Equal(t, 1, s.groups)
	assert.Nil(t, s.topology())
	assert.NoError(t, s.err)
}

func TestPlannerStateToggleUnits(t *testing.T) {
	s := newPlannerState(config.Defaults(), nil)
	assert.Contains(t, s.resultLines()[3], "TB)")

	s.handleKeyEvent(keyRune('t'))
	assert.False(t, s.showBoth)
	assert.NotContains(t, s.resultLines()[3], "TB)")
}

func screenRow(screen tcell.Screen, y int) string {
	width, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(120, 30)
	return screen
}

func TestPlannerRender(t *testing.T) {
	screen := newTestScreen(t)
	s := newPlannerState(config.Defaults(), nil)
	s.render(screen)

	assert.Contains(t, screenRow(screen, 0), "=== Storage Capacity Planner ===")

	header := screenRow(screen, 2)
	assert.Equal(t, "Scheme", header[schemeColumn:schemeColumn+6])
	assert.Equal(t, "Drives", header[driveColumn:driveColumn+6])
	assert.Equal(t, "Result", header[resultColumn:resultColumn+6])

	assert.Contains(t, screenRow(screen, listTop+2), "> RAID 5")
	assert.Contains(t, screenRow(screen, listTop), "> Drive 1: 12TB")
	assert.Contains(t, screenRow(screen, listTop+1), "  Drive 2: 12TB")
	assert.Contains(t, screenRow(screen, listTop), "RAID 5")
	assert.Contains(t, screenRow(screen, 28), "Ready: 32.74 TiB usable")
}

func TestPlannerRenderSchemeNames(t *testing.T) {
	screen := newTestScreen(t)
	s := newPlannerState(config.Defaults(), nil)
	s.schemeIdx = schemeIndex(t, s, "shr2")
	s.recalculate()
	s.render(screen)

	row := screenRow(screen, listTop+schemeIndex(t, s, "shr2"))
	assert.Equal(t, "> Synology Hybrid RAID 2", strings.TrimRight(row[:driveColumn], " "))
}

func TestPlannerRunLoop(t *testing.T) {
	screen := newTestScreen(t)
	s := newPlannerState(config.Defaults(), nil)

	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	screen.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan struct{})
	go func() {
		s.runLoop(screen)
		close(done)
	}()
	<-done

	assert.Len(t, s.drives, 5)
	assert.Equal(t, "raid1", s.scheme().ID)
}

func TestPlannerComparePopup(t *testing.T) {
	s := newPlannerState(config.Defaults(), nil)

	s.handleKeyEvent(keyRune('c'))
	require.NotNil(t, s.popup)
	assert.Equal(t, "raid5", s.popup.rows[s.popup.selected].Scheme.ID)
	assert.Contains(t, s.popup.lines(), "raidz3       not possible")

	for i := 0; i < 20; i++ {
		s.handlePopupKey(key(tcell.KeyUp))
	}
	assert.Equal(t, 0, s.popup.selected)
	s.handlePopupKey(key(tcell.KeyEnter))
	assert.Nil(t, s.popup)
	assert.Equal(t, "raid0", s.scheme().ID)
	assert.InDelta(t, 4*capacity.ToBinaryUnits(12), s.result.Usable, 1e-9)

	s.handleKeyEvent(keyRune('c'))
	s.handlePopupKey(key(tcell.KeyDown))
	s.handlePopupKey(key(tcell.KeyEscape))
	assert.Nil(t, s.popup)
	assert.Equal(t, "raid0", s.scheme().ID)
}

func TestPlannerRenderPopup(t *testing.T) {
	screen := newTestScreen(t)
	s := newPlannerState(config.Defaults(), nil)
	s.openComparePopup()
	s.render(screen)

	var found bool
	for y := 0; y < 30; y++ {
		if strings.Contains(screenRow(screen, y), "Compare Schemes") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPlannerRunLoopPopupEscape(t *testing.T) {
	screen := newTestScreen(t)
	s := newPlannerState(config.Defaults(), nil)

	screen.InjectKey(tcell.KeyRune, 'c', tcell.ModNone)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	s.runLoop(screen)

	assert.Nil(t, s.popup)
	assert.Equal(t, "raid5", s.scheme().ID)
}

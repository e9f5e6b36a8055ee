package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

func newTestViewer(t *testing.T, width, height, resolution int) (*viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	p, err := img2ascii.NewPalette(nil, img2ascii.DefaultCharset...)
	require.NoError(t, err)
	p.Equalize()
	conv := img2ascii.NewConverter(p, img2ascii.WithResolution(resolution))

	img := imageutil.CreateSolidImage(width, height, imageutil.RGB{R: 255, G: 255, B: 255})
	return newViewer(screen, conv, img), screen
}

func statusLine(screen tcell.SimulationScreen) string {
	w, h := screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, h-1)
		sb.WriteRune(r)
	}
	return strings.TrimSpace(sb.String())
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestViewerDraw(t *testing.T) {
	v, screen := newTestViewer(t, 64, 64, 8)
	v.convert()
	v.draw()

	want, err := v.conv.Matcher().Match(1)
	require.NoError(t, err)

	r, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, want, r)
	r, _, _, _ = screen.GetContent(7, 7)
	assert.Equal(t, want, r)
	r, _, _, _ = screen.GetContent(8, 0)
	assert.Equal(t, ' ', r)
	assert.Equal(t, "8x8  resolution 8  invert false", statusLine(screen))
}

func TestViewerResolutionKeys(t *testing.T) {
	v, screen := newTestViewer(t, 64, 64, 8)
	v.convert()

	assert.True(t, v.handleKey(key('+')))
	assert.Equal(t, 16, v.conv.Resolution)
	assert.Len(t, v.grid, 16)

	assert.True(t, v.handleKey(key('-')))
	assert.True(t, v.handleKey(key('-')))
	assert.Equal(t, 4, v.conv.Resolution)
	assert.Len(t, v.grid[0], 4)

	// 128 columns do not fit a 64 pixel wide image
	v.setResolution(64)
	assert.True(t, v.handleKey(key('+')))
	assert.Equal(t, 64, v.conv.Resolution)
	v.draw()
	assert.Equal(t, "resolution 128 out of range", statusLine(screen))
}

func TestViewerInvert(t *testing.T) {
	v, screen := newTestViewer(t, 32, 32, 4)
	v.convert()

	assert.True(t, v.handleKey(key('i')))
	assert.True(t, v.conv.Invert)
	v.draw()

	want, err := v.conv.Matcher().Match(0)
	require.NoError(t, err)
	r, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, want, r)
}

func TestViewerScroll(t *testing.T) {
	// 128 columns on an 80 column screen
	v, _ := newTestViewer(t, 512, 64, 128)
	v.convert()
	require.Len(t, v.grid[0], 128)

	v.handleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	assert.Equal(t, 1, v.offX)
	v.handleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	v.handleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	assert.Equal(t, 0, v.offX)

	v.scroll(1000, 0)
	assert.Equal(t, 128-80, v.offX)

	// 16 rows fit on screen
	v.handleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	assert.Equal(t, 0, v.offY)
}

func TestViewerQuit(t *testing.T) {
	v, _ := newTestViewer(t, 32, 32, 4)
	assert.False(t, v.handleKey(key('q')))
	assert.False(t, v.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestViewerRun(t *testing.T) {
	v, screen := newTestViewer(t, 32, 32, 4)
	screen.InjectKey(tcell.KeyRune, '+', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	v.run()
	assert.Equal(t, 8, v.conv.Resolution)
}

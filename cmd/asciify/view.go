package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v2"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

// viewer shows a conversion on a terminal screen and re-runs it as the
// resolution or inversion changes.
type viewer struct {
	screen tcell.Screen
	conv   *img2ascii.Converter
	img    *imageutil.RGBAImage

	// padded size of img, used to check resolution changes
	width, height int

	grid       [][]rune
	offX, offY int
	status     string
}

func newViewer(screen tcell.Screen, conv *img2ascii.Converter, img *imageutil.RGBAImage) *viewer {
	return &viewer{
		screen: screen,
		conv:   conv,
		img:    img,
		width:  imageutil.NextPowerOfTwo(img.Width()),
		height: imageutil.NextPowerOfTwo(img.Height()),
	}
}

// convert re-runs the conversion. On failure the previous grid is kept
// and the error is shown in the status line.
func (v *viewer) convert() {
	grid, err := v.conv.Run(v.img)
	if err != nil {
		v.status = err.Error()
		return
	}
	v.grid = grid
	v.offX, v.offY = 0, 0
	v.status = fmt.Sprintf("%dx%d  resolution %d  invert %t",
		len(grid[0]), len(grid), v.conv.Resolution, v.conv.Invert)
}

// setResolution switches to n columns if n tiles the padded image.
func (v *viewer) setResolution(n int) {
	if !imageutil.ValidResolution(v.width, v.height, n) {
		v.status = fmt.Sprintf("resolution %d out of range", n)
		return
	}
	v.conv.Resolution = n
	v.convert()
}

func (v *viewer) scroll(dx, dy int) {
	w, h := v.screen.Size()
	h-- // status line
	if len(v.grid) == 0 {
		return
	}
	v.offX = clamp(v.offX+dx, 0, max(0, len(v.grid[0])-w))
	v.offY = clamp(v.offY+dy, 0, max(0, len(v.grid)-h))
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}

func (v *viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	style := tcell.StyleDefault

	for y := 0; y < h-1 && v.offY+y < len(v.grid); y++ {
		row := v.grid[v.offY+y]
		for x := 0; x < w && v.offX+x < len(row); x++ {
			v.screen.SetContent(x, y, row[v.offX+x], nil, style)
		}
	}

	status := style.Reverse(true)
	for x, r := range []rune(v.status) {
		if x >= w {
			break
		}
		v.screen.SetContent(x, h-1, r, nil, status)
	}
	v.screen.Show()
}

// handleKey applies a key press. It returns false when the viewer should
// exit.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		v.scroll(0, -1)
	case tcell.KeyDown:
		v.scroll(0, 1)
	case tcell.KeyLeft:
		v.scroll(-1, 0)
	case tcell.KeyRight:
		v.scroll(1, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case '+', '=':
			v.setResolution(v.conv.Resolution * 2)
		case '-':
			v.setResolution(v.conv.Resolution / 2)
		case 'i':
			v.conv.Invert = !v.conv.Invert
			v.convert()
		}
	}
	return true
}

func (v *viewer) run() {
	v.convert()
	for {
		v.draw()
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			v.scroll(0, 0)
			v.screen.Sync()
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return
			}
		}
	}
}

func viewAction(c *cli.Context) error {
	conv, img, err := setup(c, c.Bool("invert"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return cli.Exit(err, 1)
	}
	if err := screen.Init(); err != nil {
		return cli.Exit(err, 1)
	}
	defer screen.Fini()

	newViewer(screen, conv, img).run()
	return nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

const (
	outputConsole = "console"
	outputHTML    = "html"
	outputPNG     = "png"

	defaultPNGFile = "out.png"
)

var errNoImage = errors.New("no input image, use --image")

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "asciify"
	app.Usage = "Convert images to ASCII art by glyph brightness"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "image",
			Aliases: []string{"i"},
			EnvVars: []string{"ASCIIFY_IMAGE"},
			Usage:   "path to the input image (png, jpeg, gif, tiff, qoi)",
		},
		&cli.IntFlag{
			Name:    "resolution",
			Aliases: []string{"r"},
			EnvVars: []string{"ASCIIFY_RESOLUTION"},
			Value:   img2ascii.DefaultResolution,
			Usage:   "characters per output row",
		},
		&cli.StringSliceFlag{
			Name:    "chars",
			Aliases: []string{"c"},
			EnvVars: []string{"ASCIIFY_CHARS"},
			Usage:   "character set: all, space, a range like a-z, or one character (repeatable, default 0-9)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   outputConsole,
			Usage:   "output format: console, html or png",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "output file for html and png (default out.html or out.png)",
		},
		&cli.StringFlag{
			Name:    "font",
			EnvVars: []string{"ASCIIFY_FONT"},
			Usage:   "TrueType font used to measure glyphs (default embedded Go Mono)",
		},
		&cli.StringFlag{
			Name:  "html-font",
			Value: img2ascii.DefaultHTMLFont,
			Usage: "CSS font family for html output",
		},
		&cli.StringFlag{
			Name:  "glyphs",
			Usage: "precomputed glyph data written by the glyphs command",
		},
		&cli.BoolFlag{
			Name:  "invert",
			Usage: "invert tile brightness (html and png are inverted by default)",
		},
		&cli.IntFlag{
			Name:  "scale",
			Value: 1,
			Usage: "glyph scale for png output",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = convertAction

	app.Commands = []*cli.Command{
		{
			Name:   "convert",
			Usage:  "Convert an image (the default)",
			Action: convertAction,
		},
		{
			Name:   "chars",
			Usage:  "List the character set with its brightness",
			Action: charsAction,
		},
		{
			Name:        "glyphs",
			Usage:       "Precompute glyph bitmaps for a font",
			Description: "Rasterizes every printable character and saves the bitmaps, so later runs can use --glyphs instead of the font.",
			ArgsUsage:   "FILE",
			Action:      glyphsAction,
		},
		{
			Name:   "view",
			Usage:  "Show the conversion full screen; +/- change resolution, i inverts, q quits",
			Action: viewAction,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(c.App.ErrWriter)
	}
	return logger
}

// glyphTable picks the glyph source: precomputed data, a font file, or the
// embedded font.
func glyphTable(c *cli.Context) (*img2ascii.GlyphTable, error) {
	if path := c.String("glyphs"); path != "" {
		data, err := img2ascii.LoadGlyphDataFile(path)
		if err != nil {
			return nil, err
		}
		return img2ascii.NewGlyphTable(data), nil
	}
	if path := c.String("font"); path != "" {
		r, err := img2ascii.LoadFontRasterizer(path)
		if err != nil {
			return nil, err
		}
		return img2ascii.NewGlyphTable(r), nil
	}
	return img2ascii.DefaultGlyphTable(), nil
}

func parseCharsets(args []string) ([]rune, error) {
	if len(args) == 0 {
		return img2ascii.DefaultCharset, nil
	}
	var chars []rune
	for _, arg := range args {
		cs, err := img2ascii.ParseCharset(arg)
		if err != nil {
			return nil, err
		}
		chars = append(chars, cs...)
	}
	return chars, nil
}

// buildPalette creates an equalized palette from the --chars arguments.
func buildPalette(c *cli.Context) (*img2ascii.Palette, error) {
	table, err := glyphTable(c)
	if err != nil {
		return nil, err
	}
	chars, err := parseCharsets(c.StringSlice("chars"))
	if err != nil {
		return nil, err
	}
	p, err := img2ascii.NewPalette(table, chars...)
	if err != nil {
		return nil, err
	}
	p.Equalize()
	return p, nil
}

// setup loads the image and builds a converter from the command line.
func setup(c *cli.Context, invert bool) (*img2ascii.Converter, *imageutil.RGBAImage, error) {
	path := c.String("image")
	if path == "" {
		return nil, nil, errNoImage
	}
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, nil, err
	}
	p, err := buildPalette(c)
	if err != nil {
		return nil, nil, err
	}
	conv := img2ascii.NewConverter(p,
		img2ascii.WithResolution(c.Int("resolution")),
		img2ascii.WithInvert(invert),
		img2ascii.WithLogger(newLogger(c)))
	return conv, img, nil
}

func convertAction(c *cli.Context) error {
	if c.NArg() > 0 {
		return cli.Exit(fmt.Sprintf("unknown command %q", c.Args().First()), 1)
	}

	mode := c.String("output")
	invert := c.Bool("invert")
	switch mode {
	case outputConsole:
	case outputHTML, outputPNG:
		// Dark ink on light paper
		invert = !invert
	default:
		return cli.Exit(fmt.Sprintf("unknown output %q", mode), 1)
	}

	conv, img, err := setup(c, invert)
	if err != nil {
		return cli.Exit(err, 1)
	}
	grid, err := conv.Run(img)
	if err != nil {
		return cli.Exit(err, 1)
	}

	switch mode {
	case outputHTML:
		err = writeHTMLFile(outPath(c, img2ascii.DefaultHTMLFile), grid, c.String("html-font"))
	case outputPNG:
		rendered := img2ascii.RenderImage(grid, conv.Palette().GlyphTable(), c.Int("scale"))
		err = imageutil.SaveImage(rendered, outPath(c, defaultPNGFile))
	default:
		err = img2ascii.WriteText(c.App.Writer, grid)
	}
	if err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

func outPath(c *cli.Context, def string) string {
	if path := c.String("out"); path != "" {
		return path
	}
	return def
}

// fontFamily derives a display name from a font file path.
func fontFamily(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func writeHTMLFile(path string, grid [][]rune, font string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := img2ascii.WriteHTML(f, grid, font); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func charsAction(c *cli.Context) error {
	p, err := buildPalette(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "%-6s %8s %10s\n", "char", "raw", "normalized")
	for _, ch := range p.Sorted() {
		raw, _ := p.Raw(ch)
		norm, _ := p.Normalized(ch)
		fmt.Fprintf(w, "%-6s %8.4f %10.4f\n",
			img2ascii.FormatCharset([]rune{ch}), raw, norm)
	}
	return nil
}

func glyphsAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
	}

	var (
		r    img2ascii.Rasterizer
		name = img2ascii.DefaultFontName
	)
	if path := c.String("font"); path != "" {
		fr, err := img2ascii.LoadFontRasterizer(path)
		if err != nil {
			return cli.Exit(err, 1)
		}
		r, name = fr, fontFamily(path)
	} else {
		fr, err := img2ascii.DefaultRasterizer()
		if err != nil {
			return cli.Exit(err, 1)
		}
		r = fr
	}

	data := img2ascii.ComputeGlyphData(r, name)
	if err := data.SaveFile(c.Args().First()); err != nil {
		return cli.Exit(err, 1)
	}
	newLogger(c).Printf("saved %d glyphs of %s to %s",
		len(data.Glyphs), name, c.Args().First())
	return nil
}

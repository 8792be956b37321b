package cmd

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/spf13/cobra"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mj1618/screen-bridge/internal/model"
	"github.com/mj1618/screen-bridge/internal/output"
)

// LabelMode controls what text is drawn on each box.
type LabelMode int

const (
	// LabelOrder draws the element's 1-based position in reading order.
	LabelOrder LabelMode = iota
	// LabelText draws the element's spoken text.
	LabelText
)

// OverlayBox is one rectangle to draw.
type OverlayBox struct {
	Bounds model.Rect
	Text   string
}

// OverlayResult is the output of the `overlay` command.
type OverlayResult struct {
	Path   string `yaml:"path"   json:"path"`
	Source string `yaml:"source" json:"source"`
	Boxes  int    `yaml:"boxes"  json:"boxes"`
	Width  int    `yaml:"width"  json:"width"`
	Height int    `yaml:"height" json:"height"`
}

var overlayCmd = &cobra.Command{
	Use:   "overlay <screen.yaml>",
	Short: "Render the reading order as a PNG",
	Long: `Draw the bounds of every element in reading order (or of the active
panel's focusable controls with --panel) on a blank canvas, numbered in the
order they would be visited. Useful for checking row grouping.`,
	Args: cobra.ExactArgs(1),
	RunE: runOverlay,
}

func init() {
	rootCmd.AddCommand(overlayCmd)
	overlayCmd.Flags().StringP("out", "o", "overlay.png", "Output PNG path")
	overlayCmd.Flags().Bool("panel", false, "Draw the active panel's focusable controls instead of the reading list")
	overlayCmd.Flags().Bool("text", false, "Label boxes with their text instead of their position")
	overlayCmd.Flags().Float64("scale", 1, "Pixels per screen point")
}

func runOverlay(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	usePanel, _ := cmd.Flags().GetBool("panel")
	textLabels, _ := cmd.Flags().GetBool("text")
	scale, _ := cmd.Flags().GetFloat64("scale")
	if scale <= 0 {
		return fmt.Errorf("scale must be positive, got %g", scale)
	}
	mode := LabelOrder
	if textLabels {
		mode = LabelText
	}

	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	b := s.Bridge
	b.Tick(s.Start)

	var boxes []OverlayBox
	if usePanel {
		for _, el := range b.RefreshPanel() {
			boxes = append(boxes, OverlayBox{Bounds: el.Bounds, Text: el.Label})
		}
	} else {
		if err := b.Reading().RefreshElements(); err != nil {
			return err
		}
		for _, el := range b.Reading().Elements() {
			boxes = append(boxes, OverlayBox{Bounds: el.Bounds, Text: el.Text})
		}
	}

	var canvas model.Rect
	if root := s.Host.Root(); root != nil {
		canvas = root.Bounds()
	}
	img := RenderOverlay(boxes, canvas, scale, mode)
	if err := writeFile(out, func(w io.Writer) error { return png.Encode(w, img) }); err != nil {
		return fmt.Errorf("write overlay: %w", err)
	}

	return output.Fprint(cmd.OutOrStdout(), OverlayResult{
		Path:   out,
		Source: s.Source,
		Boxes:  len(boxes),
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	})
}

// RenderOverlay draws boxes on a white canvas covering canvas and every box.
// Coordinates are screen points; scale converts them to pixels.
func RenderOverlay(boxes []OverlayBox, canvas model.Rect, scale float64, mode LabelMode) *image.RGBA {
	maxX, maxY := canvas.X+canvas.Width, canvas.Y+canvas.Height
	for _, bx := range boxes {
		maxX = math.Max(maxX, bx.Bounds.X+bx.Bounds.Width)
		maxY = math.Max(maxY, bx.Bounds.Y+bx.Bounds.Height)
	}
	w := max(int(math.Ceil(maxX*scale)), 1)
	h := max(int(math.Ceil(maxY*scale)), 1)

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	boxColor := color.RGBA{R: 255, G: 0, B: 0, A: 255}
	textColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor := color.RGBA{R: 0, G: 0, B: 0, A: 200}

	for i, bx := range boxes {
		x := int(bx.Bounds.X * scale)
		y := int(bx.Bounds.Y * scale)
		bw := int(bx.Bounds.Width * scale)
		bh := int(bx.Bounds.Height * scale)
		drawRectangle(rgba, x, y, x+bw, y+bh, boxColor)

		label := fmt.Sprintf("%d", i+1)
		if mode == LabelText {
			label = bx.Text
		}
		drawTextWithOutline(rgba, label, x+bw/2, y+bh/2, textColor, outlineColor)
	}
	return rgba
}

// isWithinBounds checks if a point is within the image bounds
func isWithinBounds(bounds image.Rectangle, x, y int) bool {
	return x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y
}

// drawRectangle draws a rectangle outline clamped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()
	x1, y1 = max(x1, bounds.Min.X), max(y1, bounds.Min.Y)
	x2, y2 = min(x2, bounds.Max.X), min(y2, bounds.Max.Y)
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x < x2; x++ {
		img.Set(x, y1, c)
		img.Set(x, y2-1, c)
	}
	for y := y1; y < y2; y++ {
		img.Set(x1, y, c)
		img.Set(x2-1, y, c)
	}
}

// drawTextWithOutline draws text centered on (x, y) with a one-pixel
// outline. basicfont.Face7x13 glyphs are 7 pixels wide.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outlineColor color.Color) {
	const glyphW, glyphH = 7, 13
	offsetX := x - len(text)*glyphW/2
	offsetY := y + glyphH/2

	drawAt := func(dx, dy int, c color.Color) {
		if !isWithinBounds(img.Bounds(), offsetX+dx, offsetY+dy) {
			return
		}
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(c),
			Face: basicfont.Face7x13,
			Dot: fixed.Point26_6{
				X: fixed.Int26_6((offsetX + dx) * 64),
				Y: fixed.Int26_6((offsetY + dy) * 64),
			},
		}
		d.DrawString(text)
	}
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx != 0 || dy != 0 {
				drawAt(dx, dy, outlineColor)
			}
		}
	}
	drawAt(0, 0, textColor)
}

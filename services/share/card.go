package share

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strconv"

	"doitto/models"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	CardWidth  = 1200
	CardHeight = 630

	descriptionLimit = 120
	avatarCenterX    = 1000
	avatarCenterY    = 120
	avatarRadius     = 80
)

var (
	gradientFrom = color.RGBA{R: 0x66, G: 0x7e, B: 0xea, A: 0xff}
	gradientTo   = color.RGBA{R: 0x76, G: 0x4b, B: 0xa2, A: 0xff}
)

// RenderCard draws a social preview card for h as a PNG. avatar may be nil.
func RenderCard(w io.Writer, h models.Helper, avatar image.Image) error {
	card := image.NewRGBA(image.Rect(0, 0, CardWidth, CardHeight))
	fillGradient(card)

	// Baselines and sizes follow the web card: 48px name, 32px title, 24px description.
	drawText(card, h.Name, 60, 120, 4)
	drawText(card, h.Title, 60, 180, 3)
	drawText(card, Truncate(h.Description, descriptionLimit), 60, 250, 2)
	drawText(card, "Rating: "+strconv.FormatFloat(h.Rating, 'f', -1, 64)+"/5", 60, 350, 3)

	if avatar != nil {
		drawAvatar(card, avatar)
	}

	if err := png.Encode(w, card); err != nil {
		return fmt.Errorf("failed to encode share card: %w", err)
	}
	return nil
}

// Truncate cuts s to limit runes and appends "..." when anything was cut.
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

// fillGradient paints the diagonal from the top-left to the bottom-right corner.
func fillGradient(img *image.RGBA) {
	b := img.Bounds()
	span := float64(b.Dx()*b.Dx() + b.Dy()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			t := float64(x*b.Dx()+y*b.Dy()) / span
			img.SetRGBA(x, y, color.RGBA{
				R: lerp(gradientFrom.R, gradientTo.R, t),
				G: lerp(gradientFrom.G, gradientTo.G, t),
				B: lerp(gradientFrom.B, gradientTo.B, t),
				A: 0xff,
			})
		}
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// drawText renders s in the 7x13 bitmap face and scales it up by scale with
// its baseline at (x, y).
func drawText(dst *image.RGBA, s string, x, y, scale int) {
	if s == "" {
		return
	}
	face := basicfont.Face7x13
	width := font.MeasureString(face, s).Ceil()
	height := face.Height

	glyphs := image.NewRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(s)

	top := y - face.Ascent*scale
	target := image.Rect(x, top, x+width*scale, top+height*scale)
	draw.NearestNeighbor.Scale(dst, target, glyphs, glyphs.Bounds(), draw.Over, nil)
}

func drawAvatar(dst *image.RGBA, avatar image.Image) {
	size := avatarRadius * 2
	scaled := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), avatar, avatar.Bounds(), draw.Src, nil)

	target := image.Rect(avatarCenterX-avatarRadius, avatarCenterY-avatarRadius, avatarCenterX+avatarRadius, avatarCenterY+avatarRadius)
	draw.DrawMask(dst, target, scaled, image.Point{}, &circle{r: avatarRadius}, image.Point{}, draw.Over)
}

// circle is an alpha mask of a disc of radius r centred in a 2r square.
type circle struct {
	r int
}

func (c *circle) ColorModel() color.Model { return color.AlphaModel }

func (c *circle) Bounds() image.Rectangle { return image.Rect(0, 0, 2*c.r, 2*c.r) }

func (c *circle) At(x, y int) color.Color {
	dx, dy := float64(x-c.r)+0.5, float64(y-c.r)+0.5
	if dx*dx+dy*dy <= float64(c.r*c.r) {
		return color.Alpha{A: 0xff}
	}
	return color.Alpha{}
}

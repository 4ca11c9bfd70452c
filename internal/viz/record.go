package viz

import (
	"image"
	"image/color"
	"image/gif"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/pendulums/internal/palette"
)

const (
	cellW = 8
	cellH = 16
)

// gifPalette is black followed by the particle hue wheel.
var gifPalette = func() color.Palette {
	p := color.Palette{color.Black}
	for i := 0; i < palette.HueRange; i++ {
		p = append(p, palette.Particle(float64(i)))
	}
	return p
}()

// Recorder rasterises canvas frames into a paletted GIF.
type Recorder struct {
	frames []*image.Paletted
	delay  int
}

func NewRecorder(fps int) *Recorder {
	delay := 2
	if fps > 0 {
		delay = max(1, 100/fps)
	}
	return &Recorder{delay: delay}
}

func (r *Recorder) Len() int { return len(r.frames) }

// Capture draws every lit braille dot of c as a cellW/2 x cellH/4 block in
// its cell's colour.
func (r *Recorder) Capture(c *Canvas) {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*cellW, c.Height*cellH), gifPalette)
	dotW, dotH := cellW/2, cellH/4

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			bits := int(c.Grid[row][col] - blank)
			if bits == 0 {
				continue
			}
			idx := uint8(gifPalette.Index(toRGBA(c.Colors[row][col])))
			if idx == 0 {
				// keep dark cells visible against the background
				idx = 1
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if bits&pixelMap[dy][dx] == 0 {
						continue
					}
					x0, y0 := col*cellW+dx*dotW, row*cellH+dy*dotH
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(x0+px, y0+py, idx)
						}
					}
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

func toRGBA(c colorful.Color) color.RGBA {
	cr, cg, cb := c.Clamped().RGB255()
	return color.RGBA{R: cr, G: cg, B: cb, A: 0xff}
}

// Save encodes the captured frames as a looping GIF at path.
func (r *Recorder) Save(path string) error {
	anim := gif.GIF{LoopCount: 0}
	for _, f := range r.frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, r.delay)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

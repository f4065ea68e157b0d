package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextureTileEdge is the world-space edge length of one texture tile.
// Texture coordinates are world position divided by this, so textures tile
// across an object instead of stretching with it.
const TextureTileEdge = 7.5

const materialTextureSize = 64

// MaterialTextures is the fixed set of textures the triangle batch can bind,
// indexed by material texture index. Passing nil to NewRenderer disables the
// textured path entirely.
type MaterialTextures struct {
	images []*ebiten.Image
}

// NewMaterialTextures builds the built-in material set: metal (index 0) and
// rubber (index 1). The patterns are procedural so the testbed has no asset
// files to ship.
func NewMaterialTextures() *MaterialTextures {
	return &MaterialTextures{
		images: []*ebiten.Image{
			patternTexture(color.NRGBA{R: 0xc8, G: 0xcc, B: 0xd4, A: 0xff}, color.NRGBA{R: 0x9a, G: 0xa0, B: 0xaa, A: 0xff}),
			patternTexture(color.NRGBA{R: 0x3a, G: 0x3a, B: 0x3e, A: 0xff}, color.NRGBA{R: 0x2a, G: 0x2a, B: 0x2e, A: 0xff}),
		},
	}
}

func (m *MaterialTextures) Count() int {
	if m == nil {
		return 0
	}
	return len(m.images)
}

// Image returns the texture for a material index, or nil when the index is
// out of range.
func (m *MaterialTextures) Image(idx int) *ebiten.Image {
	if m == nil || idx < 0 || idx >= len(m.images) {
		return nil
	}
	return m.images[idx]
}

// patternTexture renders a two-tone diagonal stripe tile.
func patternTexture(a, b color.NRGBA) *ebiten.Image {
	img := image.NewNRGBA(image.Rect(0, 0, materialTextureSize, materialTextureSize))
	for y := 0; y < materialTextureSize; y++ {
		for x := 0; x < materialTextureSize; x++ {
			c := a
			if (x+y)/8%2 == 0 {
				c = b
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return ebiten.NewImageFromImage(img)
}

package figure

import (
	"math"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
)

// glowSize is the edge length in pixels of the generated halo texture.
const glowSize = 128

// Halo builds the glow sprite drawn behind the globe. Its edge length is SpriteStyle.Size times
// the globe radius. Without an image a radial glow is generated.
//
// Parameters:
//   - env: the build environment
//
// Returns:
//   - node.Node: the sprite node
func Halo(env Env) node.Node {
	style := env.Config.SpriteStyle

	mat := node.NewMaterial(common.MustColor(style.Color))
	mat.Size = style.Size * env.Config.R
	mat.Transparent = true
	mat.DepthWrite = false
	if style.Img != "" && env.Loader != nil {
		bindImage(env.Loader, env.logger(), mat, style.Img)
	} else {
		mat.SetTexture(node.NewTexture(GlowTexture(glowSize)))
	}

	return node.NewNode(node.KindSprite,
		node.WithName(NameHalo),
		node.WithGeometry(&node.Geometry{Positions: []float32{0, 0, 0}}),
		node.WithMaterial(mat),
	)
}

// GlowTexture renders a white radial glow that peaks at half the radius and fades to both the
// center and the edge, leaving a ring around a globe that covers the inner half.
//
// Parameters:
//   - size: the edge length in pixels
//
// Returns:
//   - common.TextureStagingData: RGBA pixels
func GlowTexture(size int) common.TextureStagingData {
	size = max(size, 2)
	data := common.TextureStagingData{
		Pixels: make([]byte, size*size*4),
		Width:  uint32(size),
		Height: uint32(size),
	}
	half := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) + 0.5 - half) / half
			dy := (float64(y) + 0.5 - half) / half
			d := math.Hypot(dx, dy)

			var a float64
			switch {
			case d >= 1:
				a = 0
			case d >= 0.5:
				a = math.Pow(1-(d-0.5)/0.5, 2)
			default:
				a = d / 0.5
			}

			i := (y*size + x) * 4
			data.Pixels[i] = 255
			data.Pixels[i+1] = 255
			data.Pixels[i+2] = 255
			data.Pixels[i+3] = byte(math.Round(a * 255))
		}
	}
	return data
}

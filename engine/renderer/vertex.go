package renderer

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/pipeline"
)

// quadCorners are the four corners of a point or sprite quad, counter-clockwise.
var quadCorners = [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// quadIndices triangulates one quad.
var quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}

// vertexWriter appends little-endian float32 values.
type vertexWriter struct {
	buf []byte
}

func (w *vertexWriter) f32(values ...float32) {
	for _, v := range values {
		w.buf = binary.LittleEndian.AppendUint32(w.buf, math.Float32bits(v))
	}
}

// PackGeometry interleaves a geometry into the vertex layout of a program.
// Lines without indices are treated as polylines and expanded into segment pairs; points
// and sprites expand into one quad per vertex.
//
// Parameters:
//   - program: the program the vertices are for
//   - g: the geometry
//   - mat: the material supplying fallback colours
//
// Returns:
//   - []byte: the interleaved vertex data
//   - []uint32: the index list
func PackGeometry(program pipeline.Program, g *node.Geometry, mat *node.Material) ([]byte, []uint32) {
	if g == nil {
		return nil, nil
	}
	n := g.VertexCount()
	fallback := common.Color{R: 1, G: 1, B: 1, A: 1}
	if mat != nil {
		fallback = mat.Color
	}

	w := &vertexWriter{}
	var indices []uint32

	switch program {
	case pipeline.ProgramMesh, pipeline.ProgramMeshTextured:
		textured := program == pipeline.ProgramMeshTextured
		w.buf = make([]byte, 0, n*pipeline.MeshTexturedStride)
		for i := 0; i < n; i++ {
			w.f32(g.Positions[i*3 : i*3+3]...)
			if len(g.Normals) >= (i+1)*3 {
				w.f32(g.Normals[i*3 : i*3+3]...)
			} else {
				nrm := g.Vertex(i).Normalize()
				w.f32(float32(nrm.X), float32(nrm.Y), float32(nrm.Z))
			}
			if !textured {
				continue
			}
			if len(g.UVs) >= (i+1)*2 {
				w.f32(g.UVs[i*2 : i*2+2]...)
			} else {
				w.f32(0, 0)
			}
		}
		indices = append(indices, g.Indices...)
		if len(indices) == 0 {
			for i := 0; i < n; i++ {
				indices = append(indices, uint32(i))
			}
		}

	case pipeline.ProgramLine:
		w.buf = make([]byte, 0, n*pipeline.LineStride)
		for i := 0; i < n; i++ {
			w.f32(g.Positions[i*3 : i*3+3]...)
			r, gg, b := vertexColor(g, i, fallback)
			w.f32(r, gg, b, 1)
		}
		indices = append(indices, g.Indices...)
		if len(indices) == 0 {
			for i := 0; i+1 < n; i++ {
				indices = append(indices, uint32(i), uint32(i+1))
			}
		}

	case pipeline.ProgramPointTrail:
		w.buf = make([]byte, 0, n*4*pipeline.PointTrailStride)
		indices = make([]uint32, 0, n*6)
		for i := 0; i < n; i++ {
			percent := float32(1)
			if i < len(g.Percents) {
				percent = g.Percents[i]
			}
			r, gg, b := vertexColor(g, i, fallback)
			for _, c := range quadCorners {
				w.f32(g.Positions[i*3 : i*3+3]...)
				w.f32(r, gg, b, 1)
				w.f32(c[0], c[1], percent)
			}
			base := uint32(i * 4)
			for _, q := range quadIndices {
				indices = append(indices, base+q)
			}
		}

	case pipeline.ProgramSprite:
		w.buf = make([]byte, 0, n*4*pipeline.SpriteStride)
		indices = make([]uint32, 0, n*6)
		for i := 0; i < n; i++ {
			for _, c := range quadCorners {
				w.f32(g.Positions[i*3 : i*3+3]...)
				w.f32(c[0], c[1])
				w.f32((c[0]+1)/2, (1-c[1])/2)
			}
			base := uint32(i * 4)
			for _, q := range quadIndices {
				indices = append(indices, base+q)
			}
		}
	}

	return w.buf, indices
}

func vertexColor(g *node.Geometry, i int, fallback common.Color) (r, gg, b float32) {
	if len(g.Colors) >= (i+1)*3 {
		return g.Colors[i*3], g.Colors[i*3+1], g.Colors[i*3+2]
	}
	return float32(fallback.R), float32(fallback.G), float32(fallback.B)
}

// PackObjectUniform builds the per-object uniform: model matrix, colour and
// (opacity, size, vertex colours, 0).
//
// Parameters:
//   - model: the world matrix
//   - mat: the material
//
// Returns:
//   - []byte: pipeline.ObjectUniformSize bytes
func PackObjectUniform(model [16]float32, mat *node.Material) []byte {
	w := &vertexWriter{buf: make([]byte, 0, pipeline.ObjectUniformSize)}
	w.f32(model[:]...)
	if mat == nil {
		mat = node.NewMaterial(common.Color{R: 1, G: 1, B: 1, A: 1})
	}
	c := mat.Color.Float32()
	w.f32(c[:]...)
	vertexColors := float32(0)
	if mat.VertexColors {
		vertexColors = 1
	}
	w.f32(float32(mat.Opacity), float32(mat.Size), vertexColors, 0)
	return w.buf
}

// PackFrameUniform builds the frame uniform: view-projection, view and projection matrices
// followed by (width, height, pixel ratio, 0).
func PackFrameUniform(f *Frame) []byte {
	w := &vertexWriter{buf: make([]byte, 0, pipeline.FrameUniformSize)}
	w.f32(f.ViewProj[:]...)
	w.f32(f.View[:]...)
	w.f32(f.Proj[:]...)
	w.f32(float32(f.Width), float32(f.Height), float32(f.PixelRatio), 0)
	return w.buf
}

/*
 * preview.go, part of gomolmesh.
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * goMolMesh is built on goChem, currently developed at the Universidad de Santiago de Chile (USACH)
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

//Package preview draws a quick, flat-shaded picture of a mesh, to check
//the output of goMolMesh without a 3D viewer.
package preview

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/fogleman/gg"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rmera/gomolmesh/mesh"
)

//Options control the picture. Yaw and Pitch are rotations, in degrees,
//around the Y and X axes, applied before the projection along Z.
type Options struct {
	Width      int
	Height     int
	Margin     float64
	Yaw        float32
	Pitch      float32
	Background string //hex color
	LineWidth  float64
}

//DefaultOptions returns the options used when nil is given.
func DefaultOptions() *Options {
	return &Options{Width: 800, Height: 800, Margin: 20, Background: "#000000", LineWidth: 1.5}
}

type vertex struct {
	pos   mgl32.Vec3
	shade float64
	color mgl32.Vec4
}

//a triangle or a line segment.
type piece struct {
	v     []vertex
	depth float32
}

//Draw renders the blocks and returns the picture.
func Draw(blocks []mesh.Block, opts *Options) (image.Image, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("preview: bad size %dx%d", opts.Width, opts.Height)
	}
	rot := mgl32.Rotate3DX(mgl32.DegToRad(opts.Pitch)).Mul3(mgl32.Rotate3DY(mgl32.DegToRad(opts.Yaw)))
	pieces := make([]piece, 0, 1024)
	lo := mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	hi := lo.Mul(-1)
	for _, b := range blocks {
		per := 3
		if b.Mode == mesh.Lines {
			per = 2
		}
		n := b.Vertices() - b.Vertices()%per
		for i := 0; i < n; i += per {
			p := piece{v: make([]vertex, per)}
			for j := 0; j < per; j++ {
				pos, normal, color := b.Vertex(i + j)
				pos = rot.Mul3x1(pos)
				normal = rot.Mul3x1(normal)
				shade := 1.0
				if b.Mode == mesh.Triangles {
					//two-sided lambert, light along the view direction
					shade = 0.3 + 0.7*math.Abs(float64(normal.Z()))
				}
				p.v[j] = vertex{pos: pos, shade: shade, color: color}
				p.depth += pos.Z() / float32(per)
				for k := 0; k < 3; k++ {
					lo[k] = float32(math.Min(float64(lo[k]), float64(pos[k])))
					hi[k] = float32(math.Max(float64(hi[k]), float64(pos[k])))
				}
			}
			pieces = append(pieces, p)
		}
	}
	if len(pieces) == 0 {
		return nil, fmt.Errorf("preview: nothing to draw")
	}
	//painter's algorithm, farthest first.
	sort.SliceStable(pieces, func(i, j int) bool { return pieces[i].depth < pieces[j].depth })
	w, h := float64(opts.Width), float64(opts.Height)
	dx, dy := math.Max(float64(hi.X()-lo.X()), 1e-3), math.Max(float64(hi.Y()-lo.Y()), 1e-3)
	scale := math.Min((w-2*opts.Margin)/dx, (h-2*opts.Margin)/dy)
	ox := (w - dx*scale) / 2
	oy := (h - dy*scale) / 2
	project := func(p mgl32.Vec3) (float64, float64) {
		return ox + float64(p.X()-lo.X())*scale, h - oy - float64(p.Y()-lo.Y())*scale
	}
	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetHexColor(opts.Background)
	dc.Clear()
	dc.SetLineWidth(opts.LineWidth)
	for _, p := range pieces {
		var r, g, b, a float64
		for _, v := range p.v {
			r += float64(v.color[0]) * v.shade
			g += float64(v.color[1]) * v.shade
			b += float64(v.color[2]) * v.shade
			a += float64(v.color[3])
		}
		n := float64(len(p.v))
		dc.SetRGBA(r/n, g/n, b/n, a/n)
		for i, v := range p.v {
			x, y := project(v.pos)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		if len(p.v) == 2 {
			dc.Stroke()
			continue
		}
		dc.ClosePath()
		dc.Fill()
	}
	return dc.Image(), nil
}

//Render draws the blocks and saves the picture as a PNG file.
func Render(blocks []mesh.Block, opts *Options, filename string) error {
	img, err := Draw(blocks, opts)
	if err != nil {
		return err
	}
	return gg.SavePNG(filename, img)
}

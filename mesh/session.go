/*
 * session.go, part of gomolmesh.
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

package mesh

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	chem "github.com/rmera/gomolmesh"
	v3 "github.com/rmera/gomolmesh/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

//Session holds the state of one mesh generation pass over a molecule. All the
//generators of the package are methods of Session, and write to its accumulator.
//A Session is not safe for concurrent use.
type Session struct {
	ID         uuid.UUID
	mol        *chem.Molecule
	acc        *Accumulator
	opts       *Options
	elements   *chem.ElementTable
	rep        *chem.Reporter
	rnd        *rand.Rand
	brightness float64

	slices       int
	sphereSlices int
	ribbonSlices int

	//last ring of the previous ribbon segment, for connector tubes.
	cache      []r3.Vec
	cacheValid bool
	//atoms to be drawn by Spheres.
	sphere map[int]bool
}

//NewSession starts a generation pass over mol, writing to acc. opts can be nil,
//in which case DefaultOptions() is used. The session claims acc until Close is called.
func NewSession(mol *chem.Molecule, acc *Accumulator, opts *Options) (*Session, error) {
	if mol == nil {
		return nil, newError(ErrNilMolecule, "NewSession", nil)
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	S := &Session{
		ID:     uuid.New(),
		mol:    mol,
		acc:    acc,
		opts:   opts,
		sphere: make(map[int]bool),
	}
	if err := acc.Claim(S.ID); err != nil {
		return nil, err
	}
	S.elements = opts.Elements
	if S.elements == nil {
		S.elements = chem.DefaultElements()
	}
	S.rep = chem.NewReporter("mesh "+mol.Name+": ", opts.Logger)
	S.rnd = rand.New(rand.NewSource(opts.Seed))
	factor := opts.BrightnessFactor
	if factor <= 0 {
		factor = 12
	}
	S.brightness = mol.Offset / factor
	if S.brightness == 0 {
		S.brightness = 1
	}
	S.slices = opts.Slices
	if S.slices <= 0 {
		S.slices = autoSlices(mol.Len())
	}
	S.sphereSlices = positive(opts.SphereSlices, 10)
	S.ribbonSlices = positive(opts.RibbonSlices, 20)
	return S, nil
}

func positive(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

//Close releases the accumulator. It doesn't flush it.
func (S *Session) Close() {
	S.acc.Release(S.ID)
}

//Diagnostics returns the problems found so far.
func (S *Session) Diagnostics() chem.Diagnostics {
	return S.rep.Diagnostics()
}

//Brightness returns the factor applied to the normals.
func (S *Session) Brightness() float64 {
	return S.brightness
}

//SetSlices sets the tessellation of cylinders, spheres and ribbons.
//Non-positive values leave the corresponding setting unchanged.
func (S *Session) SetSlices(slices, sphereSlices, ribbonSlices int) {
	S.slices = positive(slices, S.slices)
	S.sphereSlices = positive(sphereSlices, S.sphereSlices)
	S.ribbonSlices = positive(ribbonSlices, S.ribbonSlices)
	S.cacheValid = false
}

//atom returns the atom with the given serial, or nil.
func (S *Session) atom(serial int) *chem.Atom {
	return S.mol.Atom(serial)
}

func (S *Session) vertex(p, n r3.Vec, c mgl32.Vec4) {
	S.acc.Put(v3.Vec3(p), v3.Vec3(n), c)
}

func (S *Session) tri(p1, p2, p3, n r3.Vec, c mgl32.Vec4) {
	S.vertex(p1, n, c)
	S.vertex(p2, n, c)
	S.vertex(p3, n, c)
}

//face emits the triangle p1, p2, p3 with the normal of p3, p2, p1,
//scaled by the negative brightness.
func (S *Session) face(p1, p2, p3 r3.Vec, c mgl32.Vec4) {
	S.tri(p1, p2, p3, r3.Scale(-S.brightness, v3.Normal(p3, p2, p1)), c)
}

//primitive reserves room for n vertices, and runs draw. If draw fails or writes
//non-finite values, the vertices it wrote are discarded.
func (S *Session) primitive(n int, what string, draw func() bool) error {
	if err := S.acc.Reserve(n); err != nil {
		return err
	}
	m := S.acc.Mark()
	ok := draw()
	if ok && S.acc.FiniteSince(m) {
		return nil
	}
	S.rep.Report(chem.DiagDegenerateGeometry, 0, 0, "%s discarded", what)
	return S.acc.Rewind(m)
}

//tube joins two rings of the same size with triangles.
func (S *Session) tube(v1, v2 []r3.Vec, c mgl32.Vec4) error {
	n := len(v1) - 1
	return S.primitive(6*n, "tube", func() bool {
		for i := 0; i < n; i++ {
			S.face(v1[i], v2[i+1], v2[i], c)
			S.face(v1[i], v1[i+1], v2[i+1], c)
		}
		return true
	})
}

//connect emits a tube from the last ring of the previous segment to first,
//if there is a previous segment. The cached ring is rotated to match first
//along dir, the direction in which the new segment starts.
func (S *Session) connect(first []r3.Vec, dir r3.Vec) error {
	if !S.cacheValid || len(S.cache) != len(first) {
		return nil
	}
	n := len(first) - 1
	prev := alignRing(S.cache, first, dir)
	return S.primitive(6*n, "connector", func() bool {
		for i := 0; i < n; i++ {
			S.face(first[i], prev[i], prev[i+1], White)
			S.face(first[i], prev[i+1], first[i+1], White)
		}
		return true
	})
}

//keep stores ring as the last one emitted.
func (S *Session) keep(ring []r3.Vec) {
	if len(S.cache) != len(ring) {
		S.cache = make([]r3.Vec, len(ring))
	}
	copy(S.cache, ring)
	S.cacheValid = true
}

//randomUnit returns a random unit vector.
func (S *Session) randomUnit() r3.Vec {
	for {
		v := r3.Vec{X: S.rnd.Float64()*2 - 1, Y: S.rnd.Float64()*2 - 1, Z: S.rnd.Float64()*2 - 1}
		if n := r3.Norm(v); n > 0.1 && n <= 1 {
			return r3.Scale(1/n, v)
		}
	}
}

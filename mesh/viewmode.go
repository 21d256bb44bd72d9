/*
 * viewmode.go, part of gomolmesh.
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
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	chem "github.com/rmera/gomolmesh"
)

//ViewMode is a way of rendering a molecule.
type ViewMode int

const (
	ViewRibbons      ViewMode = 1
	ViewSpacefill    ViewMode = 2
	ViewBallAndStick ViewMode = 3
	ViewStick        ViewMode = 4
	ViewAll          ViewMode = 5 //ribbons plus ball and stick
	ViewCATrace      ViewMode = 6
)

//Part is a set of the kinds of geometry counted by the memory budget.
type Part int

const (
	PartRibbons Part = 1 << iota
	PartBonds
	PartSpheres
)

//RadiusPolicy decides the radius of the atom spheres.
type RadiusPolicy int

const (
	PipeRadius RadiusPolicy = iota //the radius of the bond cylinders
	BallRadius
	VdWRadius
)

const (
	pipeRadius = 0.25
	ballRadius = 0.5
)

type step int

const (
	stepClearSpheres step = iota
	stepFlagAll
	stepRibbons
	stepLadders
	stepAllBonds
	stepNucleicBonds
	stepHetBonds
	stepSpheres
	stepCATrace
)

//ModeSpec describes what a view mode draws.
type ModeSpec struct {
	Name     string
	Parts    Part
	Radius   RadiusPolicy
	Fallback ViewMode //mode to use if this one doesn't fit in memory. 0 means none.
	steps    []step
}

//Modes describes each view mode.
var Modes = map[ViewMode]ModeSpec{
	ViewRibbons: {
		Name:   "ribbons",
		Parts:  PartRibbons,
		Radius: PipeRadius,
		steps:  []step{stepClearSpheres, stepRibbons, stepLadders, stepNucleicBonds, stepHetBonds, stepSpheres},
	},
	ViewSpacefill: {
		Name:   "spacefill",
		Parts:  PartSpheres,
		Radius: VdWRadius,
		steps:  []step{stepFlagAll, stepSpheres},
	},
	ViewBallAndStick: {
		Name:   "ball",
		Parts:  PartBonds | PartSpheres,
		Radius: BallRadius,
		steps:  []step{stepClearSpheres, stepAllBonds, stepSpheres},
	},
	ViewStick: {
		Name:   "stick",
		Parts:  PartBonds | PartSpheres,
		Radius: PipeRadius,
		steps:  []step{stepClearSpheres, stepAllBonds, stepSpheres},
	},
	ViewAll: {
		Name:     "all",
		Parts:    PartRibbons | PartBonds | PartSpheres,
		Radius:   BallRadius,
		Fallback: ViewRibbons,
		steps:    []step{stepClearSpheres, stepAllBonds, stepSpheres, stepRibbons, stepLadders},
	},
	ViewCATrace: {
		Name:  "ca",
		steps: []step{stepCATrace},
	},
}

func (V ViewMode) String() string {
	if m, ok := Modes[V]; ok {
		return m.Name
	}
	return fmt.Sprintf("ViewMode(%d)", int(V))
}

//ParseViewMode returns the view mode with the given name.
func ParseViewMode(name string) (ViewMode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, v := range Modes {
		if v.Name == name {
			return k, nil
		}
	}
	switch name {
	case "sphere", "spheres":
		return ViewSpacefill, nil
	case "ballandstick", "ball-and-stick":
		return ViewBallAndStick, nil
	}
	return 0, newError(fmt.Sprintf("%s: %q", ErrUnknownMode, name), "ParseViewMode", nil)
}

//Tessellation is the number of slices used for each kind of geometry.
type Tessellation struct {
	Slices       int
	SphereSlices int
	RibbonSlices int
}

func (T Tessellation) halve() Tessellation {
	h := func(n int) int {
		if n/2 < 3 {
			return 3
		}
		return n / 2
	}
	return Tessellation{Slices: h(T.Slices), SphereSlices: h(T.SphereSlices), RibbonSlices: h(T.RibbonSlices)}
}

//Budget is the estimated size, in bytes, of the geometry of a view mode.
type Budget struct {
	Ribbons int64
	Bonds   int64
	Spheres int64
}

//Total returns the sum of the parts of the budget.
func (B Budget) Total() int64 {
	return B.Ribbons + B.Bonds + B.Spheres
}

//Estimate returns the bytes that the given view mode would use for mol, with
//the tessellation t. The estimate is slightly above the real size.
func Estimate(mol *chem.Molecule, mode ViewMode, t Tessellation) Budget {
	var b Budget
	ms := Modes[mode]
	if ms.Parts&PartRibbons != 0 {
		b.Ribbons = int64(mol.RibbonNodeCount) * csf * 6 * int64(t.RibbonSlices+1) * Stride
	}
	if ms.Parts&PartBonds != 0 {
		b.Bonds = int64(mol.BondCount()) * int64(CylinderVertices(t.Slices)) * Stride
	}
	if ms.Parts&PartSpheres != 0 {
		b.Spheres = int64(mol.Len()) * int64(SphereVertices(t.SphereSlices)) * Stride
	}
	return b
}

//BuildPlan is the outcome of fitting a view mode into the memory budget.
type BuildPlan struct {
	Requested ViewMode
	Mode      ViewMode //the mode actually used
	Tessellation
	Budget  Budget
	Limit   int64 //0 means no limit
	Reduced bool  //the quality or the mode had to be lowered
}

func initialTessellation(mol *chem.Molecule, opts *Options) Tessellation {
	t := Tessellation{
		Slices:       opts.Slices,
		SphereSlices: positive(opts.SphereSlices, 10),
		RibbonSlices: positive(opts.RibbonSlices, 20),
	}
	if t.Slices <= 0 {
		t.Slices = autoSlices(mol.Len())
	}
	return t
}

//Plan decides the mode and tessellation to render mol with. Half of opts.AvailableMemory
//is available for the geometry. If the requested mode doesn't fit, the tessellation is
//halved once. If it still doesn't fit, the mode falls back to a cheaper one, if there is
//one. Plan never fails, the problems are returned as diagnostics.
func Plan(mol *chem.Molecule, mode ViewMode, opts *Options) (BuildPlan, chem.Diagnostics) {
	if opts == nil {
		opts = DefaultOptions()
	}
	rep := chem.NewReporter("plan "+mol.Name+": ", opts.Logger)
	p := BuildPlan{Requested: mode, Mode: mode, Tessellation: initialTessellation(mol, opts), Limit: opts.AvailableMemory / 2}
	p.Budget = Estimate(mol, mode, p.Tessellation)
	if p.Limit <= 0 || p.Budget.Total() <= p.Limit {
		return p, rep.Diagnostics()
	}
	p.Reduced = true
	p.Tessellation = p.Tessellation.halve()
	p.Budget = Estimate(mol, mode, p.Tessellation)
	rep.Report(chem.DiagBudgetDowngrade, 0, 0, "%s needs more than %d bytes, slices lowered to %d", mode, p.Limit, p.Slices)
	if p.Budget.Total() <= p.Limit {
		return p, rep.Diagnostics()
	}
	if fb := Modes[mode].Fallback; fb != 0 {
		p.Mode = fb
		p.Budget = Estimate(mol, fb, p.Tessellation)
		rep.Report(chem.DiagBudgetDowngrade, 0, 0, "%s doesn't fit in %d bytes, using %s", mode, p.Limit, fb)
		if p.Budget.Total() <= p.Limit {
			return p, rep.Diagnostics()
		}
	}
	rep.Report(chem.DiagBudgetExceeded, 0, 0, "%s needs %d bytes, %d available", p.Mode, p.Budget.Total(), p.Limit)
	return p, rep.Diagnostics()
}

//Result summarizes a Build.
type Result struct {
	Plan        BuildPlan
	Session     uuid.UUID
	Vertices    int
	Blocks      int //blocks handed to the sink during the build
	Diagnostics chem.Diagnostics
}

//Build renders mol in the given mode into acc, which is flushed at the end.
func Build(mol *chem.Molecule, mode ViewMode, acc *Accumulator, opts *Options) (*Result, error) {
	return BuildContext(context.Background(), mol, mode, acc, opts)
}

//BuildContext is like Build, but stops between passes if ctx is done.
func BuildContext(ctx context.Context, mol *chem.Molecule, mode ViewMode, acc *Accumulator, opts *Options) (*Result, error) {
	if mol == nil {
		return nil, newError(ErrNilMolecule, "BuildContext", nil)
	}
	if _, ok := Modes[mode]; !ok {
		return nil, newError(fmt.Sprintf("%s: %d", ErrUnknownMode, int(mode)), "BuildContext", nil)
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	plan, diags := Plan(mol, mode, opts)
	S, err := NewSession(mol, acc, opts)
	if err != nil {
		return nil, errDecorate(err, "BuildContext")
	}
	defer S.Close()
	S.rep.Append(diags...)
	S.SetSlices(plan.Slices, plan.SphereSlices, plan.RibbonSlices)
	v0, b0 := acc.Vertices(), acc.Blocks()
	ms := Modes[plan.Mode]
	for _, st := range ms.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := S.run(st, ms.Radius); err != nil {
			return nil, errDecorate(err, "BuildContext")
		}
	}
	if err := acc.SetMode(Triangles); err != nil {
		return nil, errDecorate(err, "BuildContext")
	}
	if err := acc.Flush(); err != nil {
		return nil, errDecorate(err, "BuildContext")
	}
	return &Result{
		Plan:        plan,
		Session:     S.ID,
		Vertices:    acc.Vertices() - v0,
		Blocks:      acc.Blocks() - b0,
		Diagnostics: S.Diagnostics(),
	}, nil
}

func (S *Session) run(st step, radius RadiusPolicy) error {
	switch st {
	case stepClearSpheres:
		S.sphere = make(map[int]bool)
	case stepFlagAll:
		S.FlagAll()
	case stepRibbons:
		return S.Ribbons()
	case stepLadders:
		return S.Ladders()
	case stepAllBonds:
		return S.Bonds(nil)
	case stepNucleicBonds:
		return S.Bonds(func(a1, a2 *chem.Atom) bool { return isNucleic(a1) && isNucleic(a2) })
	case stepHetBonds:
		return S.Bonds(func(a1, a2 *chem.Atom) bool { return a1.Het || a2.Het })
	case stepSpheres:
		return S.Spheres(radius)
	case stepCATrace:
		return S.CATrace()
	}
	return nil
}

func isNucleic(at *chem.Atom) bool {
	return at.Class == chem.NucleicBackbone || at.Class == chem.NucleicBase
}

//FlagAll marks every atom but water to be drawn as a sphere.
func (S *Session) FlagAll() {
	for _, at := range S.mol.Atoms {
		S.sphere[at.Serial] = !at.IsWater()
	}
}

//Bonds draws a pipe for each bond of the molecule for which keep returns true.
//A nil keep draws all the bonds.
func (S *Session) Bonds(keep func(a1, a2 *chem.Atom) bool) error {
	for _, b := range S.mol.Bonds {
		a1, a2 := S.atom(b.At1), S.atom(b.At2)
		if a1 == nil || a2 == nil {
			S.rep.Report(chem.DiagMissingAtom, 0, b.At1, "bond %d-%d refers to a missing atom", b.At1, b.At2)
			continue
		}
		if keep != nil && !keep(a1, a2) {
			continue
		}
		if err := S.Cylinder(a1, a2, pipeRadius, S.slices); err != nil {
			return err
		}
	}
	return nil
}

//Spheres draws the atoms flagged as spheres, with the radius given by the policy.
//Atoms without color in the element table are green.
func (S *Session) Spheres(policy RadiusPolicy) error {
	for _, at := range S.mol.Atoms {
		if !S.sphere[at.Serial] {
			continue
		}
		if at.BondCount == 0 {
			S.rep.Logf("atom %d %s %s has no bonds", at.Serial, at.ResName, at.Name)
		}
		radius := pipeRadius
		switch policy {
		case BallRadius:
			radius = ballRadius
		case VdWRadius:
			radius = S.elements.VdW(at.Symbol)
			if radius == 0 {
				S.rep.Logf("no radius for atom %d %s %s, element %q", at.Serial, at.ResName, at.Name, at.Symbol)
				radius = pipeRadius
			}
		}
		if err := S.Sphere(at.Coord, radius, S.sphereSlices, S.atomColor(at, Green)); err != nil {
			return err
		}
	}
	return nil
}

//CATrace draws lines joining the backbone atoms of each chain. It leaves
//the accumulator in Lines mode.
func (S *Session) CATrace() error {
	if err := S.acc.SetMode(Lines); err != nil {
		return err
	}
	for _, list := range S.mol.Chains {
		var prev *chem.Atom
		for _, d := range list {
			at := S.atom(d.Backbone)
			if at == nil {
				continue
			}
			if prev != nil {
				if err := S.line(prev.Coord, at.Coord, Green); err != nil {
					return err
				}
			}
			prev = at
		}
	}
	return nil
}

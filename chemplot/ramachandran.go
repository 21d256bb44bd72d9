/*
 * ramachandran.go, part of gomolmesh.
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

package chemplot

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	chem "github.com/rmera/gomolmesh"
	v3 "github.com/rmera/gomolmesh/v3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//RamaSet contains the serials of the atoms that define the phi and psi
//dihedrals of one residue.
type RamaSet struct {
	Cprev   int
	N       int
	Ca      int
	C       int
	Npost   int
	Chain   byte
	ResSeq  int
	ResName string
	Type    chem.SSType
}

func basicRamaPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = vg.Millimeter * 3
	p.Title.Text = title
	p.X.Label.Text = "Phi"
	p.Y.Label.Text = "Psi"
	//Constant axes
	p.X.Min = -180
	p.X.Max = 180
	p.Y.Min = -180
	p.Y.Max = 180
	p.Add(plotter.NewGrid())
	return p
}

//RamaPlot produces a plot, in the format given by the extension of plotname, of the
//Ramachandran data (phi and psi dihedrals) in data, which correspond to the residues in sets.
//Points are colored by secondary structure. The points with indexes in tag (maximun 4) are highlighted.
func RamaPlot(data [][]float64, sets []RamaSet, tag []int, title, plotname string) error {
	if data == nil || len(data) != len(sets) {
		return fmt.Errorf("RamaPlot: %d points for %d residues", len(data), len(sets))
	}
	p := basicRamaPlot(title)
	temp := make(plotter.XYs, 1)
	var tagged int
	seen := make(map[chem.SSType]bool)
	for key, val := range data {
		temp[0].X = val[0]
		temp[0].Y = val[1]
		s, err := plotter.NewScatter(temp)
		if err != nil {
			return err
		}
		t := sets[key].Type
		s.GlyphStyle.Color = ssColor(t)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		if isInInt(tag, key) {
			s.GlyphStyle.Shape, err = getShape(tagged)
			tagged++
			if err != nil {
				return err
			}
		}
		p.Add(s)
		if !seen[t] {
			seen[t] = true
			p.Legend.Add(t.String(), s)
		}
	}
	return p.Save(4*vg.Inch, 4*vg.Inch, plotname)
}

func getShape(tagged int) (draw.GlyphDrawer, error) {
	switch tagged {
	case 0:
		return draw.PyramidGlyph{}, nil
	case 1:
		return draw.SquareGlyph{}, nil
	case 2:
		return draw.CrossGlyph{}, nil
	case 3:
		return draw.PlusGlyph{}, nil
	default:
		return draw.RingGlyph{}, fmt.Errorf("Maximun number of taggable residues is 4")
	}
}

//ssColor returns the plot color for a secondary structure type.
func ssColor(t chem.SSType) color.RGBA {
	var r, g, b uint8
	switch t {
	case chem.AlphaHelix:
		r, g, b = iHVS2RGB(120, 0.8, 1)
	case chem.BetaSheet:
		r, g, b = iHVS2RGB(220, 0.9, 1)
	default:
		r, g, b = iHVS2RGB(0, 0.9, 1)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

//RamaCalc obtains the phi and psi angles, in degrees, for the residues in dihedrals.
//It returns a slice with a [phi, psi] pair for each element of dihedrals.
func RamaCalc(mol *chem.Molecule, dihedrals []RamaSet) ([][]float64, error) {
	if mol == nil || dihedrals == nil {
		return nil, fmt.Errorf("RamaCalc: Given nil data")
	}
	Rama := make([][]float64, 0, len(dihedrals))
	for _, j := range dihedrals {
		ats := make([]*chem.Atom, 5)
		for i, s := range []int{j.Cprev, j.N, j.Ca, j.C, j.Npost} {
			ats[i] = mol.Atom(s)
			if ats[i] == nil {
				return nil, fmt.Errorf("RamaCalc: atom %d not in molecule", s)
			}
		}
		phi := v3.Dihedral(ats[0].Coord, ats[1].Coord, ats[2].Coord, ats[3].Coord)
		psi := v3.Dihedral(ats[1].Coord, ats[2].Coord, ats[3].Coord, ats[4].Coord)
		Rama = append(Rama, []float64{phi * (180 / math.Pi), psi * (180 / math.Pi)})
	}
	return Rama, nil
}

//RamaResidueFilter filters the set of dihedral angles of a ramachandran plot by residue (ex. only GLY, everything but GLY).
//The 3 letter code of the residues to be filtered in or out is in filterdata, whether they are filter in
//or out depends on shouldBePresent. It returns the filtered data and a slice containing the indexes in
//the new data of the residues in the old data, when they are included, or -1 when they are not included.
func RamaResidueFilter(dihedrals []RamaSet, filterdata []string, shouldBePresent bool) ([]RamaSet, []int) {
	RetList := make([]RamaSet, 0, len(dihedrals))
	Index := make([]int, len(dihedrals))
	var added int
	for key, val := range dihedrals {
		isPresent := isInString(filterdata, val.ResName)
		if isPresent == shouldBePresent {
			RetList = append(RetList, val)
			Index[key] = added
			added++
		} else {
			Index[key] = -1
		}
	}
	return RetList, Index
}

//RamaList returns the dihedral sets of the protein residues in the chains of mol whose
//identifiers are in chains (all of them, if chains is empty). Only residues with complete
//backbones, bonded to the previous and the next residue, are included.
func RamaList(mol *chem.Molecule, chains string) []RamaSet {
	ret := make([]RamaSet, 0, mol.RibbonNodeCount)
	for _, list := range mol.Chains {
		if len(list) < 3 || list[0].Type == chem.Nucleic {
			continue
		}
		if chains != "" && !strings.ContainsRune(chains, rune(list[0].Chain)) {
			continue
		}
		for i := 1; i < len(list)-1; i++ {
			prev, d, next := list[i-1], list[i], list[i+1]
			if prev.End <= 0 || d.Start <= 0 || d.Backbone <= 0 || d.End <= 0 || next.Start <= 0 {
				continue
			}
			if !mol.Bonded(prev.End, d.Start) || !mol.Bonded(d.End, next.Start) {
				continue
			}
			ret = append(ret, RamaSet{
				Cprev:   prev.End,
				N:       d.Start,
				Ca:      d.Backbone,
				C:       d.End,
				Npost:   next.Start,
				Chain:   d.Chain,
				ResSeq:  d.ResSeq,
				ResName: d.ResName,
				Type:    d.Type,
			})
		}
	}
	return ret
}

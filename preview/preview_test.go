/*
 * preview_test.go, part of gomolmesh.
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

package preview

import (
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/gomolmesh"
	"github.com/rmera/gomolmesh/mesh"
)

func TestRender(Te *testing.T) {
	mol, _, err := chem.ReadPDBFile("../mesh/testdata/peptide.pdb", nil)
	if err != nil {
		Te.Fatal(err)
	}
	for _, mode := range []mesh.ViewMode{mesh.ViewBallAndStick, mesh.ViewCATrace} {
		sink := new(mesh.MemorySink)
		if _, err := mesh.Build(mol, mode, mesh.NewAccumulator(0, sink), nil); err != nil {
			Te.Fatal(err)
		}
		opts := DefaultOptions()
		opts.Width, opts.Height = 200, 150
		opts.Yaw = 30
		img, err := Draw(sink.Blocks, opts)
		if err != nil {
			Te.Fatal(err)
		}
		if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 150 {
			Te.Errorf("bad image size %v", b)
		}
		var lit bool
		for x := 0; x < 200 && !lit; x++ {
			for y := 0; y < 150; y++ {
				if r, g, b, _ := img.At(x, y).RGBA(); r+g+b > 0 {
					lit = true
					break
				}
			}
		}
		if !lit {
			Te.Errorf("%s: nothing was drawn", mode)
		}
		name := filepath.Join(Te.TempDir(), "preview.png")
		if err := Render(sink.Blocks, opts, name); err != nil {
			Te.Fatal(err)
		}
		if fi, err := os.Stat(name); err != nil || fi.Size() == 0 {
			Te.Errorf("%s: picture not written", mode)
		}
	}
	if _, err := Draw(nil, nil); err == nil {
		Te.Errorf("empty mesh accepted")
	}
}

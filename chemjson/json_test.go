/*
 * json_test.go, part of gomolmesh.
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

package chemjson

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	chem "github.com/rmera/gomolmesh"
	"github.com/rmera/gomolmesh/mesh"
)

func TestSummary(Te *testing.T) {
	mol, diags, err := chem.ReadPDBFile("../mesh/testdata/peptide.pdb", nil)
	if err != nil {
		Te.Fatal(err)
	}
	acc := mesh.NewAccumulator(0, new(mesh.MemorySink))
	res, err := mesh.Build(mol, mesh.ViewStick, acc, nil)
	if err != nil {
		Te.Fatal(err)
	}
	S := Summarize(mol, diags, res)
	if S.Stats.Atoms != mol.Len() || S.Vertices != res.Vertices || S.Mode != "stick" {
		Te.Errorf("unexpected summary %+v", S)
	}
	if len(S.Diagnostics) != len(diags)+len(res.Diagnostics) {
		Te.Errorf("%d diagnostics in summary, expected %d", len(S.Diagnostics), len(diags)+len(res.Diagnostics))
	}
	var buf bytes.Buffer
	if jerr := S.Send(&buf); jerr != nil {
		Te.Fatal(jerr)
	}
	back := new(Summary)
	if err := json.Unmarshal(buf.Bytes(), back); err != nil {
		Te.Fatal(err)
	}
	if back.Vertices != S.Vertices || back.Stats.Bonds != S.Stats.Bonds || back.Session != S.Session {
		Te.Errorf("summary changed after decoding: %+v", back)
	}
	if S.BondLengths.Min < 1 || S.BondLengths.Max > 2 {
		Te.Errorf("unexpected bond lengths %+v", S.BondLengths)
	}
	if back.BondHisto == nil || back.BondHisto.Total() != S.BondLengths.N || back.BondHisto.Sum() != float64(S.BondLengths.N) {
		Te.Errorf("bond length histogram %v does not match %d bonds", back.BondHisto, S.BondLengths.N)
	}
	plain := Summarize(mol, nil, nil)
	if plain.Vertices != 0 || plain.Mode != "" {
		Te.Errorf("summary without a mesh has mesh data: %+v", plain)
	}
}

func TestOptions(Te *testing.T) {
	in := bufio.NewReader(strings.NewReader(`{"Files":["a.pdb"],"Mode":"ribbons","Slices":8}` + "\n"))
	o, jerr := DecodeOptions(in)
	if jerr != nil {
		Te.Fatal(jerr)
	}
	if len(o.Files) != 1 || o.Mode != "ribbons" || o.Slices != 8 {
		Te.Errorf("bad options %+v", o)
	}
	_, jerr = DecodeOptions(bufio.NewReader(strings.NewReader("{not json\n")))
	if jerr == nil || !jerr.InOptions {
		Te.Errorf("bad options accepted")
	}
	e := NewError("parse", "TestOptions", errors.New("boom"))
	if !e.InParse || e.Message != "boom" || !bytes.Contains(e.Marshal(), []byte(`"IsError":true`)) {
		Te.Errorf("bad error %s", e.Marshal())
	}
}

/*
 * files.go, part of gomolmesh.
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

package chem

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//PDB reading

//Atom names that are never read, as no template gives them partners.
var excludedNames = []string{"OXT", "O5T", "O3T"}

//pdbParser holds the state of one PDB read.
type pdbParser struct {
	mol       *Molecule
	opts      *ParseOptions
	templates *TemplateSet
	rep       *Reporter
	line      int
	endmdl    bool
	terAt     map[int]bool
}

//ReadPDBFile reads the PDB file at path. Files ending in .gz or .zst are
//decompressed on the fly. Other files are memory-mapped when possible.
//See ParsePDB for the meaning of the returned values.
func ReadPDBFile(path string, opts *ParseOptions) (*Molecule, Diagnostics, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &CError{message: ErrUnableOpen + ": " + err.Error(), filename: path, deco: []string{"ReadPDBFile"}, critical: true}
	}
	defer f.Close()
	name := molName(path)
	var mol *Molecule
	var diags Diagnostics
	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, zerr := gzip.NewReader(f)
		if zerr != nil {
			return nil, nil, &CError{message: zerr.Error(), filename: path, deco: []string{"ReadPDBFile"}, critical: true}
		}
		defer zr.Close()
		mol, diags, err = ParsePDB(zr, name, opts)
	case strings.HasSuffix(path, ".zst"):
		zr, zerr := zstd.NewReader(f)
		if zerr != nil {
			return nil, nil, &CError{message: zerr.Error(), filename: path, deco: []string{"ReadPDBFile"}, critical: true}
		}
		defer zr.Close()
		mol, diags, err = ParsePDB(zr, name, opts)
	default:
		//mapping fails for empty files, among others. We just read those.
		m, merr := mmap.Map(f, mmap.RDONLY, 0)
		if merr != nil {
			mol, diags, err = ParsePDB(f, name, opts)
			break
		}
		mol, diags, err = ParsePDB(bytes.NewReader(m), name, opts)
		m.Unmap()
	}
	if err != nil {
		if e, ok := err.(*CError); ok {
			e.filename = path
		}
		err = errDecorate(err, "ReadPDBFile")
	}
	return mol, diags, err
}

func molName(path string) string {
	name := filepath.Base(path)
	for _, ext := range []string{".gz", ".zst", ".pdb", ".ent"} {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

//ParsePDB reads a PDB-formatted stream and returns the molecule it describes, with
//coordinates centered, bonds inferred and chains traced, and the non-fatal problems found.
//Only the first model is read, but CONECT records after it are applied.
//The error is non-nil only if the stream could not be read to the end. Even
//then, the molecule built from the lines read is returned, fully processed.
//opts can be nil, in which case DefaultParseOptions() is used.
func ParsePDB(r io.Reader, name string, opts *ParseOptions) (*Molecule, Diagnostics, error) {
	if opts == nil {
		opts = DefaultParseOptions()
	}
	P := &pdbParser{
		mol:       NewMolecule(name),
		opts:      opts,
		templates: opts.Templates,
		rep:       NewReporter("PDB "+name+": ", opts.Logger),
		terAt:     make(map[int]bool),
	}
	if P.templates == nil {
		P.templates = DefaultTemplates()
	}
	var rerr error
	in := bufio.NewReader(r)
	for {
		l, err := in.ReadString('\n')
		if len(l) > 0 {
			P.line++
			P.record(strings.TrimRight(l, "\r\n"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			P.rep.Report(DiagReadError, P.line, 0, "%s", err.Error())
			rerr = &CError{message: ErrReadFailed + ": " + err.Error(), deco: []string{"ParsePDB"}, critical: true}
			break
		}
	}
	P.finish()
	if rerr == nil && P.mol.Len() == 0 {
		P.rep.Logf("%s", ErrNoAtoms)
	}
	return P.mol, P.rep.Diagnostics(), rerr
}

//record dispatches one line to the corresponding parsing function.
func (P *pdbParser) record(l string) {
	if len(strings.TrimSpace(l)) == 0 {
		return
	}
	l = padRight(l, 80)
	rec := l[0:6]
	if rec == "CONECT" {
		P.conect(l)
		return
	}
	if P.endmdl {
		return
	}
	switch {
	case rec == "ATOM  " || rec == "HETATM":
		P.atom(l, rec == "HETATM")
	case strings.HasPrefix(rec, "TER"):
		P.terAt[P.mol.Len()] = true
		P.mol.Ters = append(P.mol.Ters, P.mol.Len())
	case rec == "HELIX ":
		P.helix(l)
	case rec == "SHEET ":
		P.sheet(l)
	case rec == "ENDMDL":
		P.endmdl = true
	}
}

//integer parses a fixed-width integer field. An empty field gives -1. A malformed
//one gives 0 and a diagnostic.
func (P *pdbParser) integer(field string) int {
	f := strings.TrimSpace(field)
	if f == "" {
		return -1
	}
	i, err := strconv.Atoi(f)
	if err != nil {
		P.rep.Report(DiagBadInteger, P.line, 0, "%q: %s", f, err.Error())
		return 0
	}
	return i
}

//float parses a fixed-width float field. A malformed or empty one gives 0 and a diagnostic.
func (P *pdbParser) float(field string) float64 {
	f := strings.TrimSpace(field)
	v, err := strconv.ParseFloat(f, 64)
	if err != nil {
		P.rep.Report(DiagBadFloat, P.line, 0, "%q: %s", f, err.Error())
		return 0
	}
	return v
}

//atom parses an ATOM or HETATM line.
func (P *pdbParser) atom(l string, het bool) {
	at := new(Atom)
	at.Het = het
	if het {
		at.Class = HeteroAtom
	}
	at.Serial = P.integer(l[6:11])
	at.Name = strings.TrimSpace(l[12:16])
	at.AltLoc = l[16]
	at.ResName = strings.TrimSpace(l[17:20])
	at.Chain = l[21]
	at.ResSeq = P.integer(l[22:26])
	at.ICode = l[26]
	at.Coord.X = P.float(l[30:38])
	at.Coord.Y = P.float(l[38:46])
	at.Coord.Z = P.float(l[46:54])
	at.Symbol = normalizeSymbol(strings.TrimSpace(l[76:78]))
	if at.Symbol == "" {
		at.Symbol = symbolFromName(at.Name)
	}
	if at.Symbol == "H" || at.Symbol == "D" {
		return
	}
	if isInString(excludedNames, at.Name) {
		return
	}
	if at.AltLoc != ' ' && at.AltLoc != 'A' {
		return
	}
	if at.Serial <= 0 {
		P.rep.Report(DiagBadInteger, P.line, 0, "atom %s without a valid serial number", at.Name)
		return
	}
	if !P.mol.AddAtom(at) {
		P.rep.Report(DiagDuplicateAtom, P.line, at.Serial, "serial already used, atom %s ignored", at.Name)
	}
}

//helix parses a HELIX record.
func (P *pdbParser) helix(l string) {
	var h Helix
	h.Serial = P.integer(l[7:10])
	h.ID = strings.TrimSpace(l[11:14])
	h.InitRes = strings.TrimSpace(l[15:18])
	h.InitChain = l[19]
	h.InitSeq = P.integer(l[21:25])
	h.InitICode = l[25]
	h.EndRes = strings.TrimSpace(l[27:30])
	h.EndChain = l[31]
	h.EndSeq = P.integer(l[33:37])
	h.EndICode = l[37]
	h.Class = P.integer(l[38:40])
	h.Comment = strings.TrimSpace(l[40:70])
	h.Length = P.integer(l[71:76])
	P.mol.Helices = append(P.mol.Helices, h)
}

//sheet parses a SHEET record. The registration fields are only present
//from the second strand on.
func (P *pdbParser) sheet(l string) {
	var s Sheet
	s.Strand = P.integer(l[7:10])
	s.ID = strings.TrimSpace(l[11:14])
	s.NumStrands = P.integer(l[14:16])
	s.Init = SheetResidue{Res: strings.TrimSpace(l[17:20]), Chain: l[21], Seq: P.integer(l[22:26]), ICode: l[26]}
	s.End = SheetResidue{Res: strings.TrimSpace(l[28:31]), Chain: l[32], Seq: P.integer(l[33:37]), ICode: l[37]}
	s.Sense = P.integer(l[38:40])
	if strings.TrimSpace(l[41:70]) != "" {
		s.Current = SheetResidue{Atom: strings.TrimSpace(l[41:45]), Res: strings.TrimSpace(l[45:48]), Chain: l[49], Seq: P.integer(l[50:54]), ICode: l[54]}
		s.Previous = SheetResidue{Atom: strings.TrimSpace(l[56:60]), Res: strings.TrimSpace(l[60:63]), Chain: l[64], Seq: P.integer(l[65:69]), ICode: l[69]}
	}
	P.mol.Sheets = append(P.mol.Sheets, s)
}

//conect parses a CONECT record and adds the bonds it declares, unless
//the atoms are too far away from each other.
func (P *pdbParser) conect(l string) {
	mol := P.mol
	base := P.integer(l[6:11])
	var b *Atom
	if base > 0 && base <= mol.MaxSerial {
		b = mol.Atom(base)
	}
	if b == nil {
		P.rep.Report(DiagMissingAtom, P.line, base, "CONECT base atom not found")
		return
	}
	for _, f := range [][2]int{{11, 16}, {16, 21}, {21, 26}, {26, 31}} {
		s := P.integer(l[f[0]:f[1]])
		if s <= 0 {
			break
		}
		if s == base {
			continue
		}
		a := mol.Atom(s)
		if a == nil {
			P.rep.Report(DiagMissingAtom, P.line, s, "CONECT partner of %d not found", base)
			continue
		}
		if d := SqDistance(a, b); d > P.opts.ConectMaxSqDist {
			P.rep.Report(DiagConectTooFar, P.line, base, "%d-%d squared distance %.2f", base, s, d)
			continue
		}
		mol.AddBond(base, s, FromConect)
	}
}

//finish runs, in order, the passes that need the whole file.
func (P *pdbParser) finish() {
	P.mol.Recenter(P.opts.LegacyOffset)
	P.templateBonds()
	P.buildChains()
	for _, h := range P.mol.Helices {
		P.annotate(h.InitChain, h.InitSeq, h.EndSeq, AlphaHelix, DiagHelixStartNotFound, DiagHelixEndNotFound)
	}
	for _, s := range P.mol.Sheets {
		P.annotate(s.Init.Chain, s.Init.Seq, s.End.Seq, BetaSheet, DiagSheetStartNotFound, DiagSheetEndNotFound)
	}
	P.backboneLinks()
	if P.opts.HetDistanceBonds {
		P.hetDistanceBonds()
	}
}

//normalizeSymbol turns "FE" into "Fe".
func normalizeSymbol(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

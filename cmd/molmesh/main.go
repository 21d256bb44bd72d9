/*
 * main.go, part of gomolmesh.
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

//molmesh reads PDB files and builds triangle meshes for them, in one of
//several view modes. The mesh can be written to a compressed file, and
//a summary, a preview picture, and some plots of the structure can be produced.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	chem "github.com/rmera/gomolmesh"
	"github.com/rmera/gomolmesh/chemgraph"
	"github.com/rmera/gomolmesh/chemjson"
	"github.com/rmera/gomolmesh/chemplot"
	"github.com/rmera/gomolmesh/mesh"
	"github.com/rmera/gomolmesh/meshio"
	"github.com/rmera/gomolmesh/preview"
)

const (
	exitSuccess = iota
	exitFailure
	exitUsage
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	f := flag.NewFlagSet("molmesh", flag.ContinueOnError)
	f.SetOutput(stderr)
	config := f.String("config", "", "TOML configuration file")
	mode := f.String("mode", "", "view mode: ribbons, spacefill, ball, stick, all or ca")
	out := f.String("o", "", "mesh output file (.msh, .msh.zst, .msh.gz, .msh.zz or .msh.lzw)")
	summary := f.String("summary", "", "write a JSON summary to this file, - for the standard output")
	pic := f.String("preview", "", "write a PNG preview of the mesh to this file")
	rama := f.String("rama", "", "write a Ramachandran plot to this file")
	bonds := f.String("bondplot", "", "write a bond length histogram to this file")
	memory := f.Int64("memory", -1, "available memory in bytes, 0 for no limit")
	jsonMode := f.Bool("json", false, "read the job options as JSON from the standard input, and write JSON summaries")
	verbose := f.Bool("v", false, "log progress to the standard error")
	f.Usage = func() {
		fmt.Fprintln(f.Output(), "molmesh [flags] file.pdb\nmolmesh -json [flags] < options.json")
		f.PrintDefaults()
	}
	if err := f.Parse(args); err != nil {
		return exitUsage
	}
	cfg, err := loadConfig(*config)
	if err != nil {
		fmt.Fprintln(stderr, "Reading the configuration:", err)
		return exitUsage
	}
	var logger *log.Logger
	if *verbose {
		logger = log.New(stderr, "molmesh: ", 0)
	}
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "mode":
			cfg.Mesh.Mode = *mode
		case "o":
			cfg.Output.Mesh = *out
		case "summary":
			cfg.Output.Summary = *summary
		case "preview":
			cfg.Output.Preview = *pic
		case "rama":
			cfg.Output.Rama = *rama
		case "bondplot":
			cfg.Output.BondPlot = *bonds
		case "memory":
			cfg.Mesh.Memory = *memory
		}
	})
	if *jsonMode {
		return runJSON(cfg, bufio.NewReader(stdin), stdout, logger)
	}
	if f.NArg() != 1 {
		f.Usage()
		return exitUsage
	}
	S, err := process(cfg, f.Arg(0), logger)
	if S != nil {
		for _, d := range S.Diagnostics {
			fmt.Fprintf(stderr, "%s: %s: %s\n", f.Arg(0), d.Code, d.Message)
		}
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	if err := writeSummary(S, cfg.Output.Summary, stdout); err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	return exitSuccess
}

//runJSON processes the files named in the JSON options read from stdin.
//Each summary, or error, is written to stdout as JSON.
func runJSON(cfg *Config, stdin *bufio.Reader, stdout io.Writer, logger *log.Logger) int {
	opts, jerr := chemjson.DecodeOptions(stdin)
	if jerr != nil {
		stdout.Write(jerr.Marshal())
		fmt.Fprintln(stdout)
		return exitUsage
	}
	if opts.Mode != "" {
		cfg.Mesh.Mode = opts.Mode
	}
	if opts.Slices > 0 {
		cfg.Mesh.Slices = opts.Slices
	}
	if opts.SphereSlices > 0 {
		cfg.Mesh.SphereSlices = opts.SphereSlices
	}
	if opts.RibbonSlices > 0 {
		cfg.Mesh.RibbonSlices = opts.RibbonSlices
	}
	if opts.MemoryLimit > 0 {
		cfg.Mesh.Memory = opts.MemoryLimit
	}
	ret := exitSuccess
	for _, name := range opts.Files {
		c := *cfg
		c.Output.Mesh = meshName(opts.Output, name, len(opts.Files))
		c.Output.Summary = ""
		S, err := process(&c, name, logger)
		if err != nil {
			jerr := chemjson.NewError("build", "runJSON", err)
			if _, ok := err.(chem.FileError); ok {
				jerr = chemjson.NewError("parse", "runJSON", err)
			}
			stdout.Write(jerr.Marshal())
			fmt.Fprintln(stdout)
			ret = exitFailure
			continue
		}
		if jerr := S.Send(stdout); jerr != nil {
			return exitFailure
		}
	}
	return ret
}

//meshName returns the mesh file for the input file name. With several
//inputs, output is a directory.
func meshName(output, name string, files int) string {
	if output == "" || files <= 1 {
		return output
	}
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return filepath.Join(output, base+".msh.zst")
}

type teeSink []mesh.Sink

func (T teeSink) WriteBlock(b mesh.Block) error {
	for _, s := range T {
		if err := s.WriteBlock(b); err != nil {
			return err
		}
	}
	return nil
}

//process reads the file name and produces every output requested in cfg.
func process(cfg *Config, name string, logger *log.Logger) (*chemjson.Summary, error) {
	popts, err := cfg.parseOptions()
	if err != nil {
		return nil, err
	}
	popts.Logger = logger
	mol, diags, err := chem.ReadPDBFile(name, popts)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		st := mol.Stats()
		comps := chemgraph.FromMolecule(mol).Components()
		logger.Printf("%s: %d atoms, %d bonds, %d chains, %d connected components", name, st.Atoms, st.Bonds, st.Chains, len(comps))
	}
	mode, err := mesh.ParseViewMode(cfg.Mesh.Mode)
	if err != nil {
		return nil, err
	}
	mopts := cfg.meshOptions()
	mopts.Logger = logger
	var sinks teeSink
	var mem *mesh.MemorySink
	if cfg.Output.Preview != "" {
		mem = new(mesh.MemorySink)
		sinks = append(sinks, mem)
	}
	var w *meshio.Writer
	if cfg.Output.Mesh != "" {
		header := map[string]string{
			"source": mol.Name,
			"mode":   mode.String(),
			"atoms":  strconv.Itoa(mol.Len()),
		}
		if w, err = meshio.NewWriter(cfg.Output.Mesh, header); err != nil {
			return nil, err
		}
		sinks = append(sinks, w)
	}
	res, err := mesh.Build(mol, mode, mesh.NewAccumulator(mopts.BlockVertices, sinks), mopts)
	if w != nil {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return chemjson.Summarize(mol, diags, nil), err
	}
	S := chemjson.Summarize(mol, diags, res)
	if mem != nil {
		if err := preview.Render(mem.Blocks, nil, cfg.Output.Preview); err != nil {
			return S, err
		}
	}
	if cfg.Output.Rama != "" {
		if err := ramaPlot(mol, cfg.Output.Rama, logger); err != nil {
			return S, err
		}
	}
	if cfg.Output.BondPlot != "" {
		if err := chemplot.BondLengthPlot(mol.BondLengths(), 50, mol.Name, cfg.Output.BondPlot); err != nil {
			return S, err
		}
	}
	return S, nil
}

func ramaPlot(mol *chem.Molecule, name string, logger *log.Logger) error {
	sets := chemplot.RamaList(mol, "")
	if len(sets) == 0 {
		if logger != nil {
			logger.Printf("%s: no protein residues for a Ramachandran plot", mol.Name)
		}
		return nil
	}
	angles, err := chemplot.RamaCalc(mol, sets)
	if err != nil {
		return err
	}
	return chemplot.RamaPlot(angles, sets, nil, mol.Name, name)
}

func writeSummary(S *chemjson.Summary, name string, stdout io.Writer) error {
	if name == "" {
		return nil
	}
	if name == "-" {
		if jerr := S.Send(stdout); jerr != nil {
			return jerr
		}
		return nil
	}
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	if jerr := S.Send(out); jerr != nil {
		out.Close()
		return jerr
	}
	return out.Close()
}

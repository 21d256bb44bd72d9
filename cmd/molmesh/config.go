/*
 * config.go, part of gomolmesh.
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

package main

import (
	"os"
	"reflect"

	"github.com/pelletier/go-toml"
	chem "github.com/rmera/gomolmesh"
	"github.com/rmera/gomolmesh/mesh"
)

//Config is the TOML configuration of molmesh. Flags override it.
type Config struct {
	Input  InputConfig  `toml:"input"`
	Mesh   MeshConfig   `toml:"mesh"`
	Output OutputConfig `toml:"output"`
}

type InputConfig struct {
	ConectMaxSqDist  float64 `toml:"conect_max_sq_dist"`
	BackboneMaxDist  float64 `toml:"backbone_max_dist"`
	LegacyOffset     bool    `toml:"legacy_offset"`
	HetDistanceBonds bool    `toml:"het_distance_bonds"`
	Templates        string  `toml:"templates"` //residue template file. Empty for the embedded set.
}

type MeshConfig struct {
	Mode          string  `toml:"mode"`
	Slices        int     `toml:"slices"`
	SphereSlices  int     `toml:"sphere_slices"`
	RibbonSlices  int     `toml:"ribbon_slices"`
	Brightness    float64 `toml:"brightness"`
	Memory        int64   `toml:"memory"` //bytes, 0 for no limit
	BlockVertices int     `toml:"block_vertices"`
	Seed          int64   `toml:"seed"`
}

type OutputConfig struct {
	Mesh     string `toml:"mesh"` //the suffix selects the compression
	Summary  string `toml:"summary"`
	Preview  string `toml:"preview"`
	Rama     string `toml:"rama"`
	BondPlot string `toml:"bond_plot"`
}

func defaultConfig() *Config {
	p := chem.DefaultParseOptions()
	m := mesh.DefaultOptions()
	return &Config{
		Input: InputConfig{
			ConectMaxSqDist: p.ConectMaxSqDist,
			BackboneMaxDist: p.BackboneMaxDist,
		},
		Mesh: MeshConfig{
			Mode:          "ribbons",
			Slices:        m.Slices,
			SphereSlices:  m.SphereSlices,
			RibbonSlices:  m.RibbonSlices,
			Brightness:    m.BrightnessFactor,
			BlockVertices: m.BlockVertices,
			Seed:          m.Seed,
		},
	}
}

//loadConfig reads the TOML file path over the defaults. An empty path
//returns the defaults.
func loadConfig(path string) (*Config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}
	tree, err := toml.LoadFile(path)
	if err != nil {
		return nil, err
	}
	file := new(Config)
	if err := tree.Unmarshal(file); err != nil {
		return nil, err
	}
	//only the keys present in the file replace the defaults.
	cv, fv := reflect.ValueOf(c).Elem(), reflect.ValueOf(file).Elem()
	for i := 0; i < cv.NumField(); i++ {
		section := cv.Type().Field(i).Tag.Get("toml")
		for j := 0; j < cv.Field(i).NumField(); j++ {
			key := cv.Field(i).Type().Field(j).Tag.Get("toml")
			if tree.Has(section + "." + key) {
				cv.Field(i).Field(j).Set(fv.Field(i).Field(j))
			}
		}
	}
	return c, nil
}

func (C *Config) parseOptions() (*chem.ParseOptions, error) {
	p := chem.DefaultParseOptions()
	p.ConectMaxSqDist = C.Input.ConectMaxSqDist
	p.BackboneMaxDist = C.Input.BackboneMaxDist
	p.LegacyOffset = C.Input.LegacyOffset
	p.HetDistanceBonds = C.Input.HetDistanceBonds
	if C.Input.Templates != "" {
		f, err := os.Open(C.Input.Templates)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		t, err := chem.LoadTemplates(f)
		if err != nil {
			return nil, err
		}
		p.Templates = t
	}
	return p, nil
}

func (C *Config) meshOptions() *mesh.Options {
	m := mesh.DefaultOptions()
	m.Slices = C.Mesh.Slices
	m.SphereSlices = C.Mesh.SphereSlices
	m.RibbonSlices = C.Mesh.RibbonSlices
	m.BrightnessFactor = C.Mesh.Brightness
	m.AvailableMemory = C.Mesh.Memory
	m.BlockVertices = C.Mesh.BlockVertices
	m.Seed = C.Mesh.Seed
	return m
}

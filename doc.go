/*
 * doc.go, part of gomolmesh.
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

/*Package chem is the main package of the goMolMesh library. It provides the atom, bond and
molecule structures, a fault-tolerant reader for PDB files and the inference of the bonded
topology and the polymer chains of the structures read.



	**goMolMesh Capabilities**


    Reads PDB files, plain, gzip- or zstd-compressed. Only the first model is read.

    Infers the bonds of standard residues from CHARMM-style residue templates,
	links consecutive residues by distance and validates CONECT records.
	Optionally bonds ligands by a covalent radii criterion.

    Traces protein and nucleic acid chains, and annotates them with the HELIX and
	SHEET records of the file.

    Recenters the structure and measures its size, for rendering.

    Builds triangle meshes of the structure as spheres, bonds, ribbons and nucleic
	acid ladders (package mesh), which can be stored in compressed files (package meshio).

    Problems found in the input are not fatal. They are returned as a list of typed
	diagnostics, along with the best molecule that could be built.

	Bond graph analyses (package chemgraph), bond length histograms (packages histo
	and chemplot) and JSON summaries (package chemjson) are also provided.

*/
package chem

/*
 * accumulator.go, part of gomolmesh.
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
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

const (
	FloatsPerVertex      = 10 //3 position, 3 normal, 4 color
	Stride               = FloatsPerVertex * 4
	DefaultBlockVertices = 15000
)

//Primitive is the topology of the vertices in a block.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
)

func (P Primitive) String() string {
	if P == Lines {
		return "lines"
	}
	return "triangles"
}

//Block is a set of interleaved vertex records, ready to be handed to a renderer.
type Block struct {
	Mode Primitive
	Data []float32
}

//Vertices returns the number of vertices in the block.
func (B Block) Vertices() int {
	return len(B.Data) / FloatsPerVertex
}

//Vertex returns the i-th vertex of the block.
func (B Block) Vertex(i int) (pos, normal mgl32.Vec3, color mgl32.Vec4) {
	d := B.Data[i*FloatsPerVertex : (i+1)*FloatsPerVertex]
	pos = mgl32.Vec3{d[0], d[1], d[2]}
	normal = mgl32.Vec3{d[3], d[4], d[5]}
	color = mgl32.Vec4{d[6], d[7], d[8], d[9]}
	return
}

//Sink receives the full blocks of an Accumulator. The sink owns the
//blocks it receives.
type Sink interface {
	WriteBlock(b Block) error
}

//MemorySink keeps all the blocks it receives.
type MemorySink struct {
	Blocks []Block
}

//WriteBlock appends the block to the sink.
func (M *MemorySink) WriteBlock(b Block) error {
	M.Blocks = append(M.Blocks, b)
	return nil
}

//Vertices returns the total number of vertices received.
func (M *MemorySink) Vertices() int {
	n := 0
	for _, b := range M.Blocks {
		n += b.Vertices()
	}
	return n
}

//Mark is a write position in an Accumulator.
type Mark struct {
	gen    int
	offset int
}

//Accumulator collects vertex records in blocks of a fixed number of vertices, and hands
//each full block to its sink. Only one writer can use an Accumulator at a time. It has to
//Claim the accumulator before writing, and Release it afterwards.
type Accumulator struct {
	sink     Sink
	capacity int
	data     []float32
	mode     Primitive
	owner    uuid.UUID
	gen      int
	blocks   int
	flushed  int
}

//NewAccumulator returns an accumulator that hands blocks of up to capacity vertices to sink.
//If capacity is not positive, DefaultBlockVertices is used. If sink is nil, a MemorySink is used.
func NewAccumulator(capacity int, sink Sink) *Accumulator {
	if capacity <= 0 {
		capacity = DefaultBlockVertices
	}
	if sink == nil {
		sink = new(MemorySink)
	}
	A := &Accumulator{sink: sink, capacity: capacity}
	A.data = make([]float32, 0, capacity*FloatsPerVertex)
	return A
}

//Sink returns the sink of the accumulator.
func (A *Accumulator) Sink() Sink {
	return A.sink
}

//Capacity returns the number of vertices that fit in a block.
func (A *Accumulator) Capacity() int {
	return A.capacity
}

//Claim gives the writer with the given id exclusive use of the accumulator.
//It fails if another writer holds it.
func (A *Accumulator) Claim(id uuid.UUID) error {
	if A.owner != uuid.Nil && A.owner != id {
		return newError(ErrInUse, "Claim", nil)
	}
	A.owner = id
	return nil
}

//Release frees the accumulator, if it is held by id.
func (A *Accumulator) Release(id uuid.UUID) {
	if A.owner == id {
		A.owner = uuid.Nil
	}
}

//Owner returns the id of the current writer, or uuid.Nil.
func (A *Accumulator) Owner() uuid.UUID {
	return A.owner
}

func (A *Accumulator) mustOwn() {
	if A.owner == uuid.Nil {
		panic("mesh: write to an accumulator without owner")
	}
}

//Pending returns the number of vertices in the current block.
func (A *Accumulator) Pending() int {
	return len(A.data) / FloatsPerVertex
}

//Vertices returns the total number of vertices written, flushed or not.
func (A *Accumulator) Vertices() int {
	return A.flushed + A.Pending()
}

//Blocks returns the number of blocks handed to the sink so far.
func (A *Accumulator) Blocks() int {
	return A.blocks
}

//Mode returns the primitive type of the current block.
func (A *Accumulator) Mode() Primitive {
	return A.mode
}

//SetMode sets the primitive type of the following vertices. If it differs
//from the current one, the current block is flushed first.
func (A *Accumulator) SetMode(p Primitive) error {
	if p == A.mode {
		return nil
	}
	if err := A.Flush(); err != nil {
		return err
	}
	A.mode = p
	return nil
}

//Reserve makes sure that n vertices fit in the current block, flushing it if they don't.
//A primitive larger than a whole block gets a block of its own, larger than the capacity.
func (A *Accumulator) Reserve(n int) error {
	A.mustOwn()
	if A.Pending() > 0 && A.Pending()+n > A.capacity {
		return A.Flush()
	}
	return nil
}

//Put appends one vertex to the current block.
func (A *Accumulator) Put(pos, normal mgl32.Vec3, color mgl32.Vec4) {
	A.mustOwn()
	A.data = append(A.data, pos[0], pos[1], pos[2], normal[0], normal[1], normal[2], color[0], color[1], color[2], color[3])
}

//Mark returns the current write position.
func (A *Accumulator) Mark() Mark {
	return Mark{gen: A.gen, offset: len(A.data)}
}

//Rewind discards the vertices written after m. It fails if the block m belongs to
//was already flushed.
func (A *Accumulator) Rewind(m Mark) error {
	if m.gen != A.gen || m.offset > len(A.data) {
		return newError(ErrRewind, "Rewind", nil)
	}
	A.data = A.data[:m.offset]
	return nil
}

//Since returns the number of vertices written after m, in the current block.
func (A *Accumulator) Since(m Mark) int {
	if m.gen != A.gen {
		return 0
	}
	return (len(A.data) - m.offset) / FloatsPerVertex
}

//FiniteSince returns false if any value written after m is NaN or infinite.
func (A *Accumulator) FiniteSince(m Mark) bool {
	if m.gen != A.gen {
		return true
	}
	for _, v := range A.data[m.offset:] {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

//Flush hands the current block, if not empty, to the sink and starts a new one.
func (A *Accumulator) Flush() error {
	if len(A.data) == 0 {
		return nil
	}
	b := Block{Mode: A.mode, Data: A.data}
	A.flushed += b.Vertices()
	A.blocks++
	A.gen++
	A.data = make([]float32, 0, A.capacity*FloatsPerVertex)
	if err := A.sink.WriteBlock(b); err != nil {
		return newError(ErrSink, "Flush", err)
	}
	return nil
}

//Close flushes the last block.
func (A *Accumulator) Close() error {
	return A.Flush()
}

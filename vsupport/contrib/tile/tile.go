// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tile provides a square matrix accumulator updated by outer
// products. Each row of the tile is a vsupport vector of the preferred
// species, so an outer-product update is one broadcast and one FMA
// dispatch per row.
package tile

import "github.com/ajroetker/vecsupport/vsupport"

// Tile is a Dim × Dim accumulator. Create it with New; the zero value has
// dimension 0.
type Tile[T vsupport.Floats] struct {
	rows    []vsupport.Vector[T]
	species vsupport.Species[T]
}

// Dim returns the tile dimension for T at the current dispatch width.
//
// For example, with AVX2 (256 bits):
//   - float32: 8 (8×8 tile)
//   - float64: 4 (4×4 tile)
func Dim[T vsupport.Floats]() int {
	return vsupport.MaxLanes[T]()
}

// New creates a zero-initialized tile of size Dim × Dim.
func New[T vsupport.Floats]() *Tile[T] {
	s := vsupport.PreferredSpecies[T]()
	t := &Tile[T]{species: s, rows: make([]vsupport.Vector[T], s.Length())}
	t.Zero()
	return t
}

// Dim returns the dimension of t.
func (t *Tile[T]) Dim() int {
	return len(t.rows)
}

// Species returns the species of each tile row.
func (t *Tile[T]) Species() vsupport.Species[T] {
	return t.species
}

// Zero clears every element of the tile.
func (t *Tile[T]) Zero() {
	z := vsupport.Zero(t.species)
	for i := range t.rows {
		t.rows[i] = z
	}
}

// At returns tile[i][j].
func (t *Tile[T]) At(i, j int) T {
	return t.rows[i].Lane(j)
}

// OuterProductAdd accumulates an outer product into the tile:
//
//	tile[i][j] += row[i] * col[j]
//
// row and col must both have Dim lanes.
func (t *Tile[T]) OuterProductAdd(row, col vsupport.Vector[T]) {
	t.checkOperand(row)
	t.checkOperand(col)
	for i := range t.rows {
		ri := vsupport.Broadcast(t.species, row.Lane(i))
		t.rows[i] = vsupport.FMA(ri, col, t.rows[i])
	}
}

// OuterProductSub subtracts an outer product from the tile:
//
//	tile[i][j] -= row[i] * col[j]
func (t *Tile[T]) OuterProductSub(row, col vsupport.Vector[T]) {
	t.checkOperand(row)
	t.checkOperand(col)
	for i := range t.rows {
		ri := vsupport.Broadcast(t.species, -row.Lane(i))
		t.rows[i] = vsupport.FMA(ri, col, t.rows[i])
	}
}

// StoreRow copies tile row i to dst.
// PRECONDITION: len(dst) >= t.Dim().
func (t *Tile[T]) StoreRow(i int, dst []T) {
	vsupport.StoreSlice(t.rows[i], dst, 0)
}

// ReadRow returns tile row i as a vector.
func (t *Tile[T]) ReadRow(i int) vsupport.Vector[T] {
	return t.rows[i]
}

// LoadCol places src[i] into tile[i][j] for each row i.
// PRECONDITION: len(src) >= t.Dim().
func (t *Tile[T]) LoadCol(j int, src []T) {
	for i := range t.rows {
		t.rows[i] = vsupport.WithLane(t.rows[i], j, src[i])
	}
}

func (t *Tile[T]) checkOperand(v vsupport.Vector[T]) {
	if v.Len() != len(t.rows) {
		panic("tile: operand length does not match tile dimension")
	}
}

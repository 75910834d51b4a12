// Package sudoku implements a constraint-satisfaction engine for generalized
// Sudoku boards (4x4 through 25x25) and a puzzle generation pipeline built on
// top of it. The engine combines bit-set candidate domains, AC-3 arc
// consistency, multi-criteria variable/value ordering heuristics, and a
// depth/time-bounded hybrid backtracking search. Every cell whose value is
// determined without (or in spite of) guessing is classified in a
// ForcedCellsRegistry, which later drives difficulty calibration.
//
// This file defines Domain, the compact candidate set for one cell.
package sudoku

import (
	"fmt"
	"math/bits"
	"strings"
)

// MaxBoardSize is the largest supported board dimension. Candidate values
// are 1..N with N <= 25, so a single 32-bit word holds any domain.
const MaxBoardSize = 25

// MinBoardSize is the smallest supported board dimension.
const MinBoardSize = 4

// Domain is a fixed-capacity bit set of candidate values for one cell,
// with a cached cardinality. Bit i represents value i+1. Every mutation
// preserves the invariant count == popcount(bits).
//
// Domain is a small value type; the ConstraintNetwork stores one per cell
// and mutates them in place through its own accessors.
type Domain struct {
	bits  uint32
	count uint8
}

// FullDomain returns a domain containing every value 1..n.
func FullDomain(n int) Domain {
	return Domain{bits: (1 << uint(n)) - 1, count: uint8(n)}
}

// SingletonDomain returns a domain containing exactly the value v.
func SingletonDomain(v int) Domain {
	return Domain{bits: 1 << uint(v-1), count: 1}
}

// DomainOf returns a domain containing exactly the given values.
func DomainOf(values ...int) Domain {
	var d Domain
	for _, v := range values {
		if !d.Has(v) {
			d.bits |= 1 << uint(v-1)
			d.count++
		}
	}
	return d
}

// Count returns the cached number of candidates. O(1).
func (d Domain) Count() int { return int(d.count) }

// IsEmpty reports whether no candidates remain.
func (d Domain) IsEmpty() bool { return d.count == 0 }

// IsSingleton reports whether exactly one candidate remains.
func (d Domain) IsSingleton() bool { return d.count == 1 }

// Has reports whether v is still a candidate. O(1).
func (d Domain) Has(v int) bool {
	if v < 1 || v > 32 {
		return false
	}
	return d.bits>>(uint(v-1))&1 == 1
}

// Value returns the sole candidate of a singleton domain, or 0 if the
// domain does not hold exactly one value.
func (d Domain) Value() int {
	if d.count != 1 {
		return 0
	}
	return bits.TrailingZeros32(d.bits) + 1
}

// Remove deletes v from the domain and reports whether anything changed.
func (d *Domain) Remove(v int) bool {
	if !d.Has(v) {
		return false
	}
	d.bits &^= 1 << uint(v-1)
	d.count--
	return true
}

// Assign replaces the domain with the singleton {v}. It does not check
// that v was a candidate; legality is the caller's responsibility.
func (d *Domain) Assign(v int) {
	d.bits = 1 << uint(v-1)
	d.count = 1
}

// Restore resets the domain to the full set 1..n. Used when undoing a
// trial assignment; the caller must re-propagate afterwards.
func (d *Domain) Restore(n int) {
	d.bits = (1 << uint(n)) - 1
	d.count = uint8(n)
}

// Iterate calls f for each candidate in ascending order.
func (d Domain) Iterate(f func(v int)) {
	w := d.bits
	for w != 0 {
		low := w & -w
		f(bits.TrailingZeros32(w) + 1)
		w &^= low
	}
}

// Values returns the candidates in ascending order.
func (d Domain) Values() []int {
	out := make([]int, 0, d.count)
	d.Iterate(func(v int) { out = append(out, v) })
	return out
}

// String renders the domain as "{v1 v2 ...}".
func (d Domain) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	d.Iterate(func(v int) {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&sb, "%d", v)
	})
	sb.WriteByte('}')
	return sb.String()
}

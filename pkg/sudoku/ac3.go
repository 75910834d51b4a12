// Package sudoku arc-consistency propagation (AC-3).
//
// A directed arc (Xi, Xj) under the all-different constraint requires every
// surviving value of Xi to have a supporting value in Xj; concretely, a
// value v in Xi is unsupported iff Xj's domain is exactly {v}. Propagation
// runs a queue of arcs to a fixed point, re-enqueueing the arcs pointing at
// any cell whose domain shrank, and aborts at the first empty domain.
//
// Failure never aborts the program: the propagator returns false, leaving
// at least one empty domain behind, and the caller rolls back every
// mutation made since the last consistent state (see ConstraintNetwork
// Snapshot/UndoTo).
package sudoku

type arc struct {
	xi Position
	xj Position
}

// abortPollInterval controls how often long propagation loops poll the
// abort callback. Sampling keeps the check itself cheap; a small
// wall-clock overshoot past the budget is expected and accepted.
const abortPollInterval = 64

// Propagator runs arc-consistency algorithms over one ConstraintNetwork.
// Stats, when non-nil, receives revision and elimination counts. Abort,
// when non-nil, is polled periodically; once it reports true every
// in-flight run stops and returns false.
type Propagator struct {
	net   *ConstraintNetwork
	Stats *Stats
	Abort func() bool
	queue []arc
}

// NewPropagator creates a propagator bound to the given network.
func NewPropagator(net *ConstraintNetwork) *Propagator {
	return &Propagator{
		net:   net,
		queue: make([]arc, 0, 4*net.Size()*net.Size()),
	}
}

// Revise removes from Xi every value unsupported by Xj and reports whether
// Xi changed. Under all-different the only unsupported value is Xj's sole
// candidate when Xj is singleton.
func (p *Propagator) Revise(xi, xj Position) bool {
	if p.Stats != nil {
		p.Stats.Revisions++
	}
	dj := p.net.Domain(xj.Row, xj.Col)
	if !dj.IsSingleton() {
		return false
	}
	if !p.net.RemoveValue(xi.Row, xi.Col, dj.Value()) {
		return false
	}
	if p.Stats != nil {
		p.Stats.ValuesEliminated++
	}
	return true
}

// EnforceConsistency runs AC-3 to a fixed point over every arc in the
// network. Returns false if any domain became (or already was) empty; in
// that case at least one empty domain is left in place for the caller to
// observe and roll back.
func (p *Propagator) EnforceConsistency() bool {
	if p.Stats != nil {
		p.Stats.AC3Calls++
	}
	if _, empty := p.net.FirstEmpty(); empty {
		return false
	}
	p.queue = p.queue[:0]
	size := p.net.Size()
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			xi := Position{Row: r, Col: c}
			for _, xj := range p.net.Neighbors(r, c) {
				p.queue = append(p.queue, arc{xi: xi, xj: xj})
			}
		}
	}
	return p.drain(nil)
}

// PropagateFrom is the cheap, targeted variant run after a trial
// assignment at (r, c): the queue is seeded only with the arcs pointing
// from the assigned cell's neighbors back at it.
func (p *Propagator) PropagateFrom(r, c int) bool {
	if p.Stats != nil {
		p.Stats.AC3Calls++
	}
	p.queue = p.queue[:0]
	target := Position{Row: r, Col: c}
	for _, xk := range p.net.Neighbors(r, c) {
		p.queue = append(p.queue, arc{xi: xk, xj: target})
	}
	return p.drain(nil)
}

// FindSingles propagates until the first cell collapses to exactly one
// candidate and returns that cell and its value. Used for lightweight
// single-step deduction. Returns ok=false if the fixed point is reached
// with no new singleton, or if a domain was wiped out.
func (p *Propagator) FindSingles() (Position, int, bool) {
	if p.Stats != nil {
		p.Stats.AC3Calls++
	}
	p.queue = p.queue[:0]
	size := p.net.Size()
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			xi := Position{Row: r, Col: c}
			for _, xj := range p.net.Neighbors(r, c) {
				p.queue = append(p.queue, arc{xi: xi, xj: xj})
			}
		}
	}
	var found Position
	var value int
	ok := p.drain(func(pos Position) bool {
		d := p.net.Domain(pos.Row, pos.Col)
		if d.IsSingleton() {
			found, value = pos, d.Value()
			return true
		}
		return false
	})
	if !ok || value == 0 {
		return Position{}, 0, false
	}
	return found, value, true
}

// drain pops arcs until the queue is empty, a domain empties, or stop
// (called after each changed cell) asks to halt. Returns false only on an
// empty domain or an abort signal.
func (p *Propagator) drain(stop func(Position) bool) bool {
	polls := 0
	for len(p.queue) > 0 {
		polls++
		if p.Abort != nil && polls%abortPollInterval == 0 && p.Abort() {
			return false
		}
		a := p.queue[0]
		p.queue = p.queue[1:]
		if !p.Revise(a.xi, a.xj) {
			continue
		}
		if p.net.IsEmpty(a.xi.Row, a.xi.Col) {
			return false
		}
		if stop != nil && stop(a.xi) {
			return true
		}
		// Xi shrank, so arcs into Xi may be inconsistent again.
		for _, xk := range p.net.Neighbors(a.xi.Row, a.xi.Col) {
			if xk == a.xj {
				continue
			}
			p.queue = append(p.queue, arc{xi: xk, xj: a.xi})
		}
	}
	return true
}

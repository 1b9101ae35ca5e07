package models

import (
	"math"
	"math/rand"
	"sync"

	"onlinerf/internal/data"
)

const (
	warmupItems  = 10
	minOOBTested = 10
	maxOOBError  = 0.30
)

var invE = math.Exp(-1)

// Poisson draws k ~ Poisson(1) by multiplying uniforms until the product
// falls to e^-1 or below.
func Poisson(r *rand.Rand) int {
	k := 0
	p := 1.0
	for {
		k++
		p *= r.Float64()
		if p <= invE {
			return k - 1
		}
	}
}

// Tree is a single online tree. Callers hold mu for the whole of any call
// that reads or changes the tree; the unexported methods assume it is held.
type Tree struct {
	ID int

	mu        sync.Mutex
	root      *Node
	rng       *rand.Rand
	nFuncs    int
	window    int
	testers   []*data.Input
	scored    int
	oobErrors int
	oobTested int
	resets    int
	processed int
	done      bool

	// out-of-bag counters at the moment of the last reset
	lastErrors int
	lastTested int
}

type TreeStats struct {
	ID        int         `json:"id"`
	Processed int         `json:"processed"`
	Resets    int         `json:"resets"`
	OOBErrors int         `json:"oob_errors"`
	OOBTested int         `json:"oob_tested"`
	Testers   int         `json:"testers"`
	Depth     int         `json:"depth"`
	Leaves    int         `json:"leaves"`
	Splits    map[int]int `json:"splits"`
	Done      bool        `json:"done"`
}

func newTree(id, nFuncs, window int, rng *rand.Rand) *Tree {
	t := &Tree{ID: id, rng: rng, nFuncs: nFuncs, window: window}
	t.root = newLeaf(nil, nFuncs, rng)
	return t
}

func (t *Tree) findLeaf(in *data.Input) *Node {
	n := t.root
	for !n.IsLeaf() {
		n = n.child(in)
	}
	return n
}

func (t *Tree) predict(in *data.Input) int {
	return t.findLeaf(in).Prediction()
}

func (t *Tree) predictPercent(in *data.Input) map[int]float64 {
	leaf := t.findLeaf(in)
	out := make(map[int]float64, len(leaf.leaf.counts))
	total := float64(leaf.Count())
	if total == 0 {
		return out
	}
	for c, n := range leaf.leaf.counts {
		out[c] = float64(n) / total
	}
	return out
}

func (t *Tree) train(in *data.Input, k, alpha int, beta float64) {
	for u := 0; u < k; u++ {
		t.processed++
		leaf := t.findLeaf(in)
		leaf.update(in, t.rng)
		if leaf.Count() > alpha && leaf.calculateGain() > beta {
			leaf.split(t.rng)
		}
	}
}

// process applies online bagging to one arriving item and reports whether the
// tree was reset.
func (t *Tree) process(in *data.Input, alpha int, beta float64) bool {
	k := Poisson(t.rng)
	if k > 0 {
		t.train(in, k, alpha, beta)
		return false
	}
	t.hold(in)
	if t.processed <= warmupItems {
		return false
	}
	return t.drain(in, alpha, beta)
}

// hold appends to the out-of-bag window, dropping the oldest items once the
// window is full.
func (t *Tree) hold(in *data.Input) {
	t.testers = append(t.testers, in)
	if over := len(t.testers) - t.window; over > 0 {
		copy(t.testers, t.testers[over:])
		t.testers = t.testers[:t.window]
		t.scored -= over
		if t.scored < 0 {
			t.scored = 0
		}
	}
}

// drain scores every held item that has not been scored yet. Scored items
// stay in the window for variable importance but are never scored twice.
func (t *Tree) drain(trigger *data.Input, alpha int, beta float64) bool {
	for t.scored < len(t.testers) {
		in := t.testers[t.scored]
		t.scored++
		t.oobTested++
		if t.predict(in) != in.Classification {
			t.oobErrors++
		}
		if t.oobTested > minOOBTested && float64(t.oobErrors)/float64(t.oobTested) > maxOOBError {
			t.reset()
			t.forget(trigger)
			// the rest was held out of the structure being discarded
			t.scored = len(t.testers)
			t.train(trigger, 1, alpha, beta)
			return true
		}
	}
	return false
}

// forget removes in from the out-of-bag window once the tree trains on it.
func (t *Tree) forget(in *data.Input) {
	for i := len(t.testers) - 1; i >= 0; i-- {
		if t.testers[i] == in {
			t.testers = append(t.testers[:i], t.testers[i+1:]...)
			if i < t.scored {
				t.scored--
			}
			return
		}
	}
}

func (t *Tree) reset() {
	t.resets++
	t.lastErrors, t.lastTested = t.oobErrors, t.oobTested
	t.processed = 0
	t.oobErrors = 0
	t.oobTested = 0
	t.root = newLeaf(nil, t.nFuncs, t.rng)
}

func (t *Tree) stats() TreeStats {
	s := TreeStats{
		ID:        t.ID,
		Processed: t.processed,
		Resets:    t.resets,
		OOBErrors: t.oobErrors,
		OOBTested: t.oobTested,
		Testers:   len(t.testers),
		Splits:    map[int]int{},
		Done:      t.done,
	}
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if depth > s.Depth {
			s.Depth = depth
		}
		if n.IsLeaf() {
			s.Leaves++
			return
		}
		s.Splits[n.Feature]++
		walk(n.Left, depth+1)
		walk(n.Right, depth+1)
	}
	walk(t.root, 0)
	return s
}

// donor picks another held item to borrow a feature value from.
func (t *Tree) donor(idx int) int {
	if len(t.testers) < 2 {
		return idx
	}
	j := t.rng.Intn(len(t.testers) - 1)
	if j >= idx {
		j++
	}
	return j
}

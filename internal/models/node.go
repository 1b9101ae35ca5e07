package models

import (
	"math/rand"

	"onlinerf/internal/data"
)

// Node is either a leaf, holding the items routed to it and the candidate
// splits built from them, or an internal node with a fixed rule and two
// children. leaf is nil exactly when the node is internal.
type Node struct {
	Feature   int
	Threshold float64
	Left      *Node
	Right     *Node

	leaf *leafState
}

type leafState struct {
	items      []*data.Input
	counts     map[int]int
	classOrder []int
	prediction int
	nFuncs     int
	candidates []*candidate
}

type candidate struct {
	feature     int
	threshold   float64
	left        []*data.Input
	right       []*data.Input
	leftCounts  map[int]int
	rightCounts map[int]int
	gain        float64
}

func newLeaf(items []*data.Input, nFuncs int, rng *rand.Rand) *Node {
	l := &leafState{items: items, counts: map[int]int{}, nFuncs: nFuncs}
	n := &Node{leaf: l}
	if len(items) > 1 {
		l.generateCandidates(rng)
	}
	for _, it := range items {
		l.count(it)
		l.fold(it)
	}
	l.prediction = l.majority()
	return n
}

func (n *Node) IsLeaf() bool { return n.leaf != nil }

func (n *Node) Count() int {
	if n.leaf == nil {
		return 0
	}
	return len(n.leaf.items)
}

func (n *Node) Prediction() int {
	if n.leaf == nil {
		return 0
	}
	return n.leaf.prediction
}

// Histogram returns a copy of the leaf's class counts.
func (n *Node) Histogram() map[int]int {
	out := map[int]int{}
	if n.leaf == nil {
		return out
	}
	for c, v := range n.leaf.counts {
		out[c] = v
	}
	return out
}

func (n *Node) child(in *data.Input) *Node {
	if in.Feature(n.Feature) < n.Threshold {
		return n.Left
	}
	return n.Right
}

func (n *Node) update(in *data.Input, rng *rand.Rand) {
	l := n.leaf
	l.items = append(l.items, in)
	l.count(in)
	l.prediction = l.majority()
	if len(l.candidates) == 0 && len(l.items) > 1 && len(l.classOrder) > 1 {
		l.generateCandidates(rng)
		for _, it := range l.items {
			l.fold(it)
		}
		return
	}
	l.fold(in)
}

// calculateGain refreshes the gini gain of every candidate and returns the
// best one. Leaves without candidates report zero.
func (n *Node) calculateGain() float64 {
	l := n.leaf
	if l == nil || len(l.candidates) == 0 {
		return 0
	}
	total := float64(len(l.items))
	parent := gini(l.classOrder, l.counts, total)
	best := 0.0
	for _, c := range l.candidates {
		nl, nr := float64(len(c.left)), float64(len(c.right))
		g := parent - nl/total*gini(l.classOrder, c.leftCounts, nl) - nr/total*gini(l.classOrder, c.rightCounts, nr)
		if g < 0 {
			g = 0
		}
		if g > parent {
			g = parent
		}
		c.gain = g
		if g > best {
			best = g
		}
	}
	return best
}

func (n *Node) split(rng *rand.Rand) {
	l := n.leaf
	if l == nil || len(l.candidates) == 0 {
		return
	}
	best := n.calculateGain()
	var winners []int
	for i, c := range l.candidates {
		if c.gain == best {
			winners = append(winners, i)
		}
	}
	w := l.candidates[winners[rng.Intn(len(winners))]]
	n.Feature = w.feature
	n.Threshold = w.threshold
	n.Left = newLeaf(w.left, l.nFuncs, rng)
	n.Right = newLeaf(w.right, l.nFuncs, rng)
	n.leaf = nil
}

func (l *leafState) generateCandidates(rng *rand.Rand) {
	width := l.items[0].FeatureCount()
	l.candidates = make([]*candidate, 0, l.nFuncs)
	for i := 0; i < l.nFuncs; i++ {
		f := rng.Intn(width)
		lo, hi := l.items[0].Feature(f), l.items[0].Feature(f)
		for _, it := range l.items[1:] {
			v := it.Feature(f)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		l.candidates = append(l.candidates, &candidate{
			feature:     f,
			threshold:   lo + rng.Float64()*(hi-lo),
			leftCounts:  map[int]int{},
			rightCounts: map[int]int{},
		})
	}
}

func (l *leafState) count(in *data.Input) {
	if _, ok := l.counts[in.Classification]; !ok {
		l.classOrder = append(l.classOrder, in.Classification)
	}
	l.counts[in.Classification]++
}

func (l *leafState) fold(in *data.Input) {
	for _, c := range l.candidates {
		if in.Feature(c.feature) < c.threshold {
			c.left = append(c.left, in)
			c.leftCounts[in.Classification]++
		} else {
			c.right = append(c.right, in)
			c.rightCounts[in.Classification]++
		}
	}
}

// majority breaks ties in favour of the class that was seen first.
func (l *leafState) majority() int {
	best, bestN := 0, -1
	for _, c := range l.classOrder {
		if l.counts[c] > bestN {
			best, bestN = c, l.counts[c]
		}
	}
	return best
}

// gini sums over classes in a fixed order so that equal gains compare equal
// from run to run.
func gini(classes []int, counts map[int]int, total float64) float64 {
	if total == 0 {
		return 0
	}
	g := 0.0
	for _, c := range classes {
		p := float64(counts[c]) / total
		g += p * (1 - p)
	}
	return g
}

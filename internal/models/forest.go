package models

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"onlinerf/internal/data"
)

const DefaultOOBWindow = 1000

type ResetEvent struct {
	Tree      int
	Resets    int
	OOBErrors int
	OOBTested int
}

type options struct {
	seed    int64
	seeded  bool
	logger  *zap.Logger
	onReset func(ResetEvent)
	window  int
	workers int
}

type Option func(*options)

func WithSeed(seed int64) Option {
	return func(o *options) { o.seed, o.seeded = seed, true }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithResetHook is called from the training goroutine of the tree that was
// reset, so it must be safe for concurrent use.
func WithResetHook(fn func(ResetEvent)) Option {
	return func(o *options) { o.onReset = fn }
}

// WithOOBWindow bounds how many out-of-bag items each tree keeps.
func WithOOBWindow(n int) Option {
	return func(o *options) { o.window = n }
}

// WithWorkers caps the number of trees processed at once. Zero means one
// goroutine per tree.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

type Forest struct {
	alpha  int
	beta   float64
	nFuncs int
	trees  []*Tree

	workers int
	logger  *zap.Logger
	onReset func(ResetEvent)

	mu          sync.Mutex
	numFeatures int
	generation  uint64
	importance  map[int]float64
}

func NewForest(trees, alpha int, beta float64, candidates int, opts ...Option) (*Forest, error) {
	o := options{window: DefaultOOBWindow}
	for _, opt := range opts {
		opt(&o)
	}

	var err error
	if trees <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: trees must be positive, got %d", ErrConfiguration, trees))
	}
	if alpha <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: alpha must be positive, got %d", ErrConfiguration, alpha))
	}
	if math.IsNaN(beta) || beta < 0 || beta >= 1 {
		err = multierr.Append(err, fmt.Errorf("%w: beta must be in [0,1), got %v", ErrConfiguration, beta))
	}
	if candidates <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: candidates must be positive, got %d", ErrConfiguration, candidates))
	}
	if o.window <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: oob window must be positive, got %d", ErrConfiguration, o.window))
	}
	if o.workers < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: workers must not be negative, got %d", ErrConfiguration, o.workers))
	}
	if err != nil {
		return nil, err
	}

	if !o.seeded {
		o.seed = time.Now().UnixNano()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	f := &Forest{
		alpha:   alpha,
		beta:    beta,
		nFuncs:  candidates,
		trees:   make([]*Tree, trees),
		workers: o.workers,
		logger:  o.logger,
		onReset: o.onReset,
	}
	master := rand.New(rand.NewSource(o.seed))
	for i := range f.trees {
		f.trees[i] = newTree(i, candidates, o.window, rand.New(rand.NewSource(master.Int63())))
	}
	return f, nil
}

func (f *Forest) Name() string { return "OnlineRandomForest" }

func (f *Forest) Size() int { return len(f.trees) }

// NumFeatures is the feature count fixed by the first training item, or zero.
func (f *Forest) NumFeatures() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.numFeatures
}

// each runs fn once per tree and waits for all of them.
func (f *Forest) each(fn func(i int, t *Tree) error) error {
	var g errgroup.Group
	if f.workers > 0 {
		g.SetLimit(f.workers)
	}
	for i, t := range f.trees {
		i, t := i, t
		g.Go(func() error { return fn(i, t) })
	}
	return g.Wait()
}

// admit validates items against the forest's feature count, fixing it from
// the first item when nothing has been trained yet. Nothing is recorded
// unless every item passes.
func (f *Forest) admit(items []*data.Input) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := f.numFeatures
	if want == 0 && items[0] != nil {
		want = items[0].FeatureCount()
	}
	for i, in := range items {
		if in == nil || in.FeatureCount() == 0 {
			return fmt.Errorf("item %d: %w: empty feature vector", i, ErrDimensionMismatch)
		}
		if in.Classification < 0 {
			return fmt.Errorf("item %d (%s): %w: %d", i, in.ID, ErrInvalidLabel, in.Classification)
		}
		if in.FeatureCount() != want {
			return fmt.Errorf("item %d (%s): %w: want %d, got %d", i, in.ID, ErrDimensionMismatch, want, in.FeatureCount())
		}
	}
	f.numFeatures = want
	f.generation++
	f.importance = nil
	return nil
}

func (f *Forest) check(in *data.Input) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.numFeatures == 0 {
		return ErrNoTrainedTrees
	}
	if in == nil || in.FeatureCount() != f.numFeatures {
		got := 0
		if in != nil {
			got = in.FeatureCount()
		}
		return fmt.Errorf("%w: want %d, got %d", ErrDimensionMismatch, f.numFeatures, got)
	}
	return nil
}

func (f *Forest) resetHappened(t *Tree) {
	ev := ResetEvent{Tree: t.ID, Resets: t.resets, OOBErrors: t.lastErrors, OOBTested: t.lastTested}
	f.logger.Info("tree reset",
		zap.Int("tree", ev.Tree),
		zap.Int("resets", ev.Resets),
		zap.Int("oob_errors", ev.OOBErrors),
		zap.Int("oob_tested", ev.OOBTested),
	)
	if f.onReset != nil {
		f.onReset(ev)
	}
}

// Train feeds the batch, in order, through every tree in parallel. Each tree
// is marked done once it has consumed the batch.
func (f *Forest) Train(batch []*data.Input) error {
	if len(batch) == 0 {
		return ErrEmptyBatch
	}
	if err := f.admit(batch); err != nil {
		return err
	}
	err := f.pass(batch, true)
	f.logger.Debug("batch trained", zap.Int("items", len(batch)), zap.Int("trees", len(f.trees)))
	return err
}

// TrainOne is the streaming variant of Train for a single arriving item.
func (f *Forest) TrainOne(item *data.Input) error {
	if err := f.admit([]*data.Input{item}); err != nil {
		return err
	}
	return f.pass([]*data.Input{item}, false)
}

// pass runs admitted items through every tree. Importance computed while the
// trees were changing is dropped once they are done.
func (f *Forest) pass(items []*data.Input, markDone bool) error {
	err := f.each(func(_ int, t *Tree) error {
		t.mu.Lock()
		defer t.mu.Unlock()
		for _, in := range items {
			if t.process(in, f.alpha, f.beta) {
				f.resetHappened(t)
			}
		}
		if markDone {
			t.done = true
		}
		return nil
	})
	f.invalidate()
	return err
}

func (f *Forest) invalidate() {
	f.mu.Lock()
	f.generation++
	f.importance = nil
	f.mu.Unlock()
}

// Predict returns the class with the most votes among trees that have
// processed at least one item. Ties go to the class that reached the top
// count first in tree order.
func (f *Forest) Predict(item *data.Input) (int, error) {
	if err := f.check(item); err != nil {
		return 0, err
	}
	votes := make([]int, len(f.trees))
	active := make([]bool, len(f.trees))
	_ = f.each(func(i int, t *Tree) error {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.processed == 0 {
			return nil
		}
		votes[i] = t.predict(item)
		active[i] = true
		return nil
	})

	tally := map[int]int{}
	best, bestN := 0, 0
	for i, c := range votes {
		if !active[i] {
			continue
		}
		tally[c]++
		if tally[c] > bestN {
			best, bestN = c, tally[c]
		}
	}
	if bestN == 0 {
		return 0, ErrNoTrainedTrees
	}
	return best, nil
}

// PredictPercent averages the leaf class distributions of the active trees.
func (f *Forest) PredictPercent(item *data.Input) (map[int]float64, error) {
	if err := f.check(item); err != nil {
		return nil, err
	}
	dists := make([]map[int]float64, len(f.trees))
	_ = f.each(func(i int, t *Tree) error {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.processed == 0 {
			return nil
		}
		dists[i] = t.predictPercent(item)
		return nil
	})

	out := map[int]float64{}
	active := 0
	for _, d := range dists {
		if d == nil {
			continue
		}
		active++
		for c, p := range d {
			out[c] += p
		}
	}
	if active == 0 {
		return nil, ErrNoTrainedTrees
	}
	for c := range out {
		out[c] /= float64(active)
	}
	return out, nil
}

func (f *Forest) Done() bool {
	for _, t := range f.trees {
		t.mu.Lock()
		done := t.done
		t.mu.Unlock()
		if !done {
			return false
		}
	}
	return true
}

func (f *Forest) PercentDone() float64 {
	done := 0
	for _, t := range f.trees {
		t.mu.Lock()
		if t.done {
			done++
		}
		t.mu.Unlock()
	}
	return float64(done) / float64(len(f.trees)) * 100
}

// Resets is the total number of drift resets across all trees.
func (f *Forest) Resets() int {
	n := 0
	for _, s := range f.Stats() {
		n += s.Resets
	}
	return n
}

func (f *Forest) Stats() []TreeStats {
	out := make([]TreeStats, len(f.trees))
	_ = f.each(func(i int, t *Tree) error {
		t.mu.Lock()
		defer t.mu.Unlock()
		out[i] = t.stats()
		return nil
	})
	return out
}

// PredictionDifference is the L1 distance between two class distributions,
// treating a missing class as probability zero.
func PredictionDifference(a, b map[int]float64) float64 {
	sum := 0.0
	for c, p := range a {
		sum += math.Abs(p - b[c])
	}
	for c, p := range b {
		if _, ok := a[c]; !ok {
			sum += math.Abs(p)
		}
	}
	return sum
}

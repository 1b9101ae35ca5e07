package models

type permutationTally struct {
	held     bool
	baseline int
	permuted []int
}

// VariableImportance returns the cached permutation importance, computing it
// on first use. Training invalidates the cache. An empty result (no tree holds
// out-of-bag items yet) is returned but not cached.
func (f *Forest) VariableImportance() map[int]float64 {
	f.mu.Lock()
	if f.importance != nil {
		out := copyScores(f.importance)
		f.mu.Unlock()
		return out
	}
	gen := f.generation
	f.mu.Unlock()

	imp := f.CalcVariableImportance()
	if len(imp) == 0 {
		return imp
	}
	f.mu.Lock()
	if f.generation == gen {
		f.importance = copyScores(imp)
	}
	f.mu.Unlock()
	return imp
}

// CalcVariableImportance computes Breiman's permutation importance over the
// trees' out-of-bag windows: for each feature, the drop in correct
// predictions when that feature is replaced by another held item's value,
// divided by the number of trees. Permutations always work on clones.
func (f *Forest) CalcVariableImportance() map[int]float64 {
	width := f.NumFeatures()
	out := map[int]float64{}
	if width == 0 {
		return out
	}

	tallies := make([]permutationTally, len(f.trees))
	_ = f.each(func(i int, t *Tree) error {
		t.mu.Lock()
		defer t.mu.Unlock()
		if len(t.testers) == 0 {
			return nil
		}
		r := permutationTally{held: true, permuted: make([]int, width)}
		for _, in := range t.testers {
			if t.predict(in) == in.Classification {
				r.baseline++
			}
		}
		for j := 0; j < width; j++ {
			for idx, in := range t.testers {
				cp := in.Clone()
				cp.Features[j] = t.testers[t.donor(idx)].Features[j]
				if t.predict(cp) == cp.Classification {
					r.permuted[j]++
				}
			}
		}
		tallies[i] = r
		return nil
	})

	baseline := 0
	permuted := make([]int, width)
	held := false
	for _, r := range tallies {
		if !r.held {
			continue
		}
		held = true
		baseline += r.baseline
		for j, n := range r.permuted {
			permuted[j] += n
		}
	}
	if !held {
		return out
	}
	for j := 0; j < width; j++ {
		out[j] = float64(baseline-permuted[j]) / float64(len(f.trees))
	}
	return out
}

// SplitImportance is the share of internal nodes, over the whole forest,
// that route on each feature.
func (f *Forest) SplitImportance() map[int]float64 {
	width := f.NumFeatures()
	out := make(map[int]float64, width)
	counts := make([]int, width)
	total := 0
	for _, s := range f.Stats() {
		for feat, n := range s.Splits {
			if feat < width {
				counts[feat] += n
			}
			total += n
		}
	}
	for j := 0; j < width; j++ {
		if total > 0 {
			out[j] = float64(counts[j]) / float64(total)
		} else {
			out[j] = 0
		}
	}
	return out
}

func copyScores(m map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

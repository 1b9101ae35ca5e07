package models

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onlinerf/internal/data"
)

func trainedSeparable(t *testing.T, seed int64) *Forest {
	t.Helper()
	f, err := NewForest(10, 5, 0.05, 10, WithSeed(seed))
	require.NoError(t, err)
	require.NoError(t, f.Train(separable(rand.New(rand.NewSource(seed)), 600)))
	return f
}

func TestVariableImportance_FavoursInformativeFeature(t *testing.T) {
	f := trainedSeparable(t, 31)
	imp := f.VariableImportance()
	require.Len(t, imp, 2)
	assert.Greater(t, imp[0], imp[1])
	assert.Greater(t, imp[0], 0.0)
}

func TestVariableImportance_LeavesTestersUntouched(t *testing.T) {
	f := trainedSeparable(t, 32)
	before := map[*data.Input][]float64{}
	for _, tree := range f.trees {
		for _, in := range tree.testers {
			before[in] = append([]float64(nil), in.Features...)
		}
	}
	require.NotEmpty(t, before)

	f.CalcVariableImportance()
	for in, feats := range before {
		assert.Equal(t, feats, in.Features)
	}
}

func TestVariableImportance_EmptyForest(t *testing.T) {
	f, err := NewForest(3, 2, 0.05, 5)
	require.NoError(t, err)
	assert.Empty(t, f.VariableImportance())
	assert.Nil(t, f.importance)
}

func TestVariableImportance_CacheInvalidatedByTraining(t *testing.T) {
	f := trainedSeparable(t, 33)
	first := f.VariableImportance()
	require.NotNil(t, f.importance)
	assert.Equal(t, first, f.VariableImportance())

	// mutating the returned map must not leak into the cache
	first[0] = -100
	assert.NotEqual(t, -100.0, f.VariableImportance()[0])

	require.NoError(t, f.TrainOne(data.NewInput("late", 1, 0.9, 0.1)))
	assert.Nil(t, f.importance)
}

func TestSplitImportance(t *testing.T) {
	f := trainedSeparable(t, 34)
	imp := f.SplitImportance()
	require.Len(t, imp, 2)
	assert.InDelta(t, 1.0, imp[0]+imp[1], 1e-9)
	assert.Greater(t, imp[0], imp[1])

	empty, err := NewForest(2, 2, 0.05, 5)
	require.NoError(t, err)
	assert.Empty(t, empty.SplitImportance())
}

func TestVariableImportance_ComputedMidPassIsNotKept(t *testing.T) {
	f := trainedSeparable(t, 35)
	rng := rand.New(rand.NewSource(35))
	// the new concept follows feature 1
	batch := make([]*data.Input, 300)
	for i := range batch {
		x := rng.Float64()
		class := 0
		if x > 0.5 {
			class = 1
		}
		batch[i] = data.NewInput("n", class, rng.Float64(), x)
	}

	require.NoError(t, f.admit(batch))
	mid := f.VariableImportance()
	require.NotEmpty(t, mid)
	require.NotNil(t, f.importance, "a request between admission and training caches its result")

	require.NoError(t, f.pass(batch, true))
	assert.Nil(t, f.importance)
}

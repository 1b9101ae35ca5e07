package data

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput_CloneIsDeep(t *testing.T) {
	in := NewInput("a", 1, 1, 2, 3)
	in.FeaturesNormalized = []float64{0, 0.5, 1}
	cp := in.Clone()
	cp.Features[0] = 99
	cp.FeaturesNormalized[0] = 99

	assert.Equal(t, 1.0, in.Features[0])
	assert.Equal(t, 0.0, in.FeaturesNormalized[0])
	assert.Equal(t, in.ID, cp.ID)
	assert.Equal(t, in.Classification, cp.Classification)
}

func TestInput_Distance(t *testing.T) {
	a := NewInput("a", 0, 0, 0)
	b := NewInput("b", 0, 3, 4)
	d, err := a.Distance(b, false)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, d, 1e-12)

	_, err = a.Distance(b, true)
	assert.ErrorIs(t, err, ErrNotNormalized)

	a.FeaturesNormalized = []float64{0, 0}
	b.FeaturesNormalized = []float64{1, 1}
	d, err = a.Distance(b, true)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, d, 1e-12)

	_, err = a.Distance(NewInput("c", 0, 1), false)
	assert.ErrorIs(t, err, ErrFeatureCount)
	_, err = NewInput("c", 0, 1).Distance(a, false)
	assert.ErrorIs(t, err, ErrFeatureCount)
}

func TestInput_ErrorDistance(t *testing.T) {
	a := NewInput("a", 0, 0, 0)
	b := NewInput("b", 0, 0.8, 0.01)
	// log2(0.8/0.1) = 3; the second term is floored at 1
	d, err := a.ErrorDistance(b)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, d, 1e-12)

	_, err = a.ErrorDistance(NewInput("c", 0, 1, 2, 3))
	assert.ErrorIs(t, err, ErrFeatureCount)
}

func TestEncodeFeatures(t *testing.T) {
	in := NewInput("a", 0, 0.25, -3, 1e6)
	enc, err := in.EncodeFeatures()
	require.NoError(t, err)
	got, err := DecodeFeatures(enc)
	require.NoError(t, err)
	assert.Equal(t, in.Features, got)

	_, err = DecodeFeatures("not base64!")
	assert.Error(t, err)
	_, err = DecodeFeatures("bm90IGpzb24=") // "not json"
	assert.Error(t, err)
}

func TestGenerateStream(t *testing.T) {
	spec := StreamSpec{N: 200, Classes: 2, Informative: 1, Noise: 2, Spread: 0.1, Seed: 7}
	a := GenerateStream(spec)
	require.Len(t, a, 200)
	assert.Equal(t, a, GenerateStream(spec), "same seed, same stream")
	for _, in := range a {
		require.Equal(t, 3, in.FeatureCount())
		centre := float64(in.Classification)
		assert.InDelta(t, centre, in.Features[0], 0.1+1e-9)
	}

	spec.DriftAt = 100
	drifted := GenerateStream(spec)
	for _, in := range drifted[100:] {
		centre := 1 - float64(in.Classification)
		assert.InDelta(t, centre, in.Features[0], 0.1+1e-9)
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "stream.csv")
	require.NoError(t, WriteCSV(path, []*Input{NewInput("x", 1, 0.5, 2)}))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.Equal(t, []string{"id,classification,f0,f1", "x,1,0.5,2"}, lines)
}

package features

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onlinerf/internal/data"
)

func TestParseRecord(t *testing.T) {
	in, err := ParseRecord([]string{"r1", "2", "0.5", "-1"})
	require.NoError(t, err)
	assert.Equal(t, "r1", in.ID)
	assert.Equal(t, 2, in.Classification)
	assert.Equal(t, []float64{0.5, -1}, in.Features)

	_, err = ParseRecord([]string{"r1", "2"})
	assert.ErrorIs(t, err, ErrShortRecord)
	_, err = ParseRecord([]string{"r1", "x", "1"})
	assert.Error(t, err)
	_, err = ParseRecord([]string{"r1", "0", "nan?"})
	assert.Error(t, err)
}

func TestLoadCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.csv")
	stream := data.GenerateStream(data.StreamSpec{N: 30, Classes: 3, Informative: 2, Noise: 1, Spread: 0.2, Seed: 3})
	require.NoError(t, data.WriteCSV(path, stream))

	got, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, stream, got)
}

func TestLoadCSV_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadCSV(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, []byte("id,classification,f0\n"), 0o644))
	_, err = LoadCSV(empty)
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("id,classification,f0\na,1,2\nb,1\n"), 0o644))
	_, err = LoadCSV(bad)
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	inputs := []*data.Input{
		data.NewInput("a", 0, 0, 5),
		data.NewInput("b", 0, 5, 5),
		data.NewInput("c", 1, 10, 5),
	}
	Normalize(inputs)
	assert.Equal(t, []float64{0, 0}, inputs[0].FeaturesNormalized)
	assert.Equal(t, []float64{0.5, 0}, inputs[1].FeaturesNormalized)
	assert.Equal(t, []float64{1, 0}, inputs[2].FeaturesNormalized)
	assert.Equal(t, []float64{0, 5}, inputs[0].Features, "raw features untouched")

	Normalize(nil)
}

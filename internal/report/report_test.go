package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCurveCSV(t *testing.T) {
	c := NewCurve("accuracy", "resets")
	c.Add(100, 0.5, 0)
	c.Add(200, 0.75, 2)

	path := filepath.Join(t.TempDir(), "out", "curve.csv")
	require.NoError(t, WriteCurveCSV(path, c))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"items,accuracy,resets",
		"100,0.500000,0.000000",
		"200,0.750000,2.000000",
	}, strings.Split(strings.TrimSpace(string(raw)), "\n"))
}

func TestPlots(t *testing.T) {
	dir := t.TempDir()
	c := NewCurve("accuracy")
	for i := 1; i <= 5; i++ {
		c.Add(i*10, float64(i)/5)
	}
	curve := filepath.Join(dir, "curve.png")
	require.NoError(t, PlotCurve(curve, "Accuracy", "accuracy", c))
	imp := filepath.Join(dir, "imp.png")
	require.NoError(t, PlotImportance(imp, "Importance", map[int]float64{0: 0.4, 1: 0.1}))

	for _, p := range []string{curve, imp} {
		st, err := os.Stat(p)
		require.NoError(t, err)
		assert.NotZero(t, st.Size())
	}
}

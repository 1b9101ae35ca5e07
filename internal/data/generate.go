package data

import (
	"encoding/csv"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
)

// StreamSpec describes a synthetic labelled stream. The first Informative
// features carry the label (class c lives around c/(Classes-1) with Spread
// jitter), the remaining Noise features are uniform on [0,1). After DriftAt
// items the class centres are reversed.
type StreamSpec struct {
	N           int
	Classes     int
	Informative int
	Noise       int
	Spread      float64
	DriftAt     int
	Seed        int64
}

func GenerateStream(spec StreamSpec) []*Input {
	if spec.Classes < 2 {
		spec.Classes = 2
	}
	if spec.Informative < 1 {
		spec.Informative = 1
	}
	rng := rand.New(rand.NewSource(spec.Seed))
	out := make([]*Input, 0, spec.N)
	for i := 0; i < spec.N; i++ {
		class := rng.Intn(spec.Classes)
		centre := float64(class) / float64(spec.Classes-1)
		if spec.DriftAt > 0 && i >= spec.DriftAt {
			centre = 1 - centre
		}
		feats := make([]float64, 0, spec.Informative+spec.Noise)
		for j := 0; j < spec.Informative; j++ {
			feats = append(feats, centre+(rng.Float64()*2-1)*spec.Spread)
		}
		for j := 0; j < spec.Noise; j++ {
			feats = append(feats, rng.Float64())
		}
		out = append(out, &Input{ID: "S" + strconv.Itoa(i), Classification: class, Features: feats})
	}
	return out
}

// WriteCSV writes id, classification and one column per feature.
func WriteCSV(path string, inputs []*Input) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	width := 0
	if len(inputs) > 0 {
		width = inputs[0].FeatureCount()
	}
	header := []string{"id", "classification"}
	for j := 0; j < width; j++ {
		header = append(header, "f"+strconv.Itoa(j))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, in := range inputs {
		rec := []string{in.ID, strconv.Itoa(in.Classification)}
		for _, v := range in.Features {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

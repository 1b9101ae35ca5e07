package features

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"onlinerf/internal/data"
)

var ErrShortRecord = errors.New("record needs id, classification and at least one feature")

// ParseRecord turns one CSV row (id, classification, f0, f1, ...) into an Input.
func ParseRecord(row []string) (*data.Input, error) {
	if len(row) < 3 {
		return nil, ErrShortRecord
	}
	class, err := strconv.Atoi(row[1])
	if err != nil {
		return nil, fmt.Errorf("classification %q: %w", row[1], err)
	}
	vec := make([]float64, 0, len(row)-2)
	for j, s := range row[2:] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("feature %d %q: %w", j, s, err)
		}
		vec = append(vec, v)
	}
	return &data.Input{ID: row[0], Classification: class, Features: vec}, nil
}

// LoadCSV reads a file written by data.WriteCSV. The header row is skipped.
func LoadCSV(path string) ([]*data.Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: no records", path)
	}
	out := make([]*data.Input, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		in, err := ParseRecord(rows[i])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+1, err)
		}
		out = append(out, in)
	}
	return out, nil
}

// Normalize fills FeaturesNormalized with a min/max rescale to [0,1] computed
// over the given inputs. Constant columns map to 0.
func Normalize(inputs []*data.Input) {
	if len(inputs) == 0 {
		return
	}
	width := inputs[0].FeatureCount()
	col := make([]float64, len(inputs))
	for _, in := range inputs {
		in.FeaturesNormalized = make([]float64, width)
	}
	for j := 0; j < width; j++ {
		for i, in := range inputs {
			col[i] = in.Features[j]
		}
		lo, hi := floats.Min(col), floats.Max(col)
		for _, in := range inputs {
			if hi > lo {
				in.FeaturesNormalized[j] = (in.Features[j] - lo) / (hi - lo)
			}
		}
	}
}

package data

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-json"
)

type Input struct {
	ID                 string    `json:"id"`
	Classification     int       `json:"classification"`
	Features           []float64 `json:"features"`
	FeaturesNormalized []float64 `json:"-"`
}

func NewInput(id string, classification int, features ...float64) *Input {
	return &Input{ID: id, Classification: classification, Features: features}
}

func (in *Input) FeatureCount() int { return len(in.Features) }

func (in *Input) Feature(i int) float64 { return in.Features[i] }

// Clone returns a deep copy. Trees hold shared references to inputs, so
// anything that needs to change a feature value works on a clone.
func (in *Input) Clone() *Input {
	out := &Input{ID: in.ID, Classification: in.Classification}
	out.Features = append([]float64(nil), in.Features...)
	if in.FeaturesNormalized != nil {
		out.FeaturesNormalized = append([]float64(nil), in.FeaturesNormalized...)
	}
	return out
}

var (
	ErrFeatureCount  = errors.New("feature vectors differ in length")
	ErrNotNormalized = errors.New("input has no normalized features")
)

// Distance is the euclidean distance between the two feature vectors. With
// normalized set the normalized copies are compared instead.
func (in *Input) Distance(other *Input, normalized bool) (float64, error) {
	a, b := in.Features, other.Features
	if normalized {
		a, b = in.FeaturesNormalized, other.FeaturesNormalized
		if a == nil || b == nil {
			return 0, ErrNotNormalized
		}
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d and %d", ErrFeatureCount, len(a), len(b))
	}
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// ErrorDistance sums max(log2(|a-b|/0.1), 1) over the features.
func (in *Input) ErrorDistance(other *Input) (float64, error) {
	if len(in.Features) != len(other.Features) {
		return 0, fmt.Errorf("%w: %d and %d", ErrFeatureCount, len(in.Features), len(other.Features))
	}
	sum := 0.0
	for i := range in.Features {
		d := math.Abs(in.Features[i] - other.Features[i])
		sum += math.Max(math.Log2(d/0.1), 1)
	}
	return sum, nil
}

// EncodeFeatures renders the features the way the sync service stores them:
// base64 over the JSON array.
func (in *Input) EncodeFeatures() (string, error) {
	raw, err := json.Marshal(in.Features)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func DecodeFeatures(s string) ([]float64, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode features: %w", err)
	}
	var out []float64
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode features: %w", err)
	}
	return out, nil
}

package models

import "github.com/goccy/go-json"

// Snapshot describes a forest for diagnostics. It carries no node data and
// cannot be loaded back into a Forest.
type Snapshot struct {
	Model       string      `json:"model"`
	Trees       int         `json:"trees"`
	Alpha       int         `json:"alpha"`
	Beta        float64     `json:"beta"`
	Candidates  int         `json:"candidates"`
	NumFeatures int         `json:"num_features"`
	PercentDone float64     `json:"percent_done"`
	TreeStats   []TreeStats `json:"tree_stats"`
}

func (f *Forest) Snapshot() Snapshot {
	return Snapshot{
		Model:       f.Name(),
		Trees:       len(f.trees),
		Alpha:       f.alpha,
		Beta:        f.beta,
		Candidates:  f.nFuncs,
		NumFeatures: f.NumFeatures(),
		PercentDone: f.PercentDone(),
		TreeStats:   f.Stats(),
	}
}

func (f *Forest) Serialize() ([]byte, error) {
	return json.Marshal(f.Snapshot())
}

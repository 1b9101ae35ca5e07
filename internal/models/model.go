package models

import "onlinerf/internal/data"

//go:generate mockgen -destination=mocks/model.go -package=mocks onlinerf/internal/models Model

type Model interface {
	Train(batch []*data.Input) error
	TrainOne(item *data.Input) error
	Predict(item *data.Input) (int, error)
	PredictPercent(item *data.Input) (map[int]float64, error)
	VariableImportance() map[int]float64
	Stats() []TreeStats
	PercentDone() float64
	Serialize() ([]byte, error)
	Name() string
}

var _ Model = (*Forest)(nil)

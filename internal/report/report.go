package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

type Series struct {
	Name   string
	Values []float64
}

// Curve is a set of series sampled at the same X positions (items seen).
type Curve struct {
	X      []int
	Series []Series
}

func (c *Curve) Add(x int, values ...float64) {
	c.X = append(c.X, x)
	for i := range c.Series {
		if i < len(values) {
			c.Series[i].Values = append(c.Series[i].Values, values[i])
		}
	}
}

func NewCurve(names ...string) *Curve {
	c := &Curve{}
	for _, n := range names {
		c.Series = append(c.Series, Series{Name: n})
	}
	return c
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func WriteCurveCSV(path string, c *Curve) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	hdr := []string{"items"}
	for _, s := range c.Series {
		hdr = append(hdr, s.Name)
	}
	if err := w.Write(hdr); err != nil {
		return err
	}
	for i, x := range c.X {
		rec := []string{strconv.Itoa(x)}
		for _, s := range c.Series {
			v := ""
			if i < len(s.Values) {
				v = fmt.Sprintf("%.6f", s.Values[i])
			}
			rec = append(rec, v)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func PlotCurve(path, title, yLabel string, c *Curve) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Items seen"
	p.Y.Label.Text = yLabel

	args := make([]interface{}, 0, 2*len(c.Series))
	for _, s := range c.Series {
		pts := make(plotter.XYs, len(s.Values))
		for i := range s.Values {
			pts[i].X = float64(c.X[i])
			pts[i].Y = s.Values[i]
		}
		args = append(args, s.Name, pts)
	}
	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// PlotImportance draws one bar per feature, in feature order.
func PlotImportance(path, title string, scores map[int]float64) error {
	keys := make([]int, 0, len(scores))
	for k := range scores {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	vals := make(plotter.Values, len(keys))
	names := make([]string, len(keys))
	for i, k := range keys {
		vals[i] = scores[k]
		names[i] = "f" + strconv.Itoa(k)
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Importance"
	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return err
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(names...)
	if err := ensureDir(path); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

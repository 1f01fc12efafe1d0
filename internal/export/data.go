package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/san-kum/physlab/internal/storage"
)

// WriteCSV writes a header of "t" plus the state labels, then one row per
// sample.
func WriteCSV(w io.Writer, series storage.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"t"}, series.Labels...)); err != nil {
		return err
	}
	for i, x := range series.States {
		row := make([]string, 0, len(x)+1)
		row = append(row, strconv.FormatFloat(series.Times[i], 'g', -1, 64))
		for _, v := range x {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Number is a float that encodes NaN and ±Inf as null.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

type Sample struct {
	T      Number   `json:"t"`
	Values []Number `json:"values"`
}

type Document struct {
	ID         string            `json:"id"`
	Simulation string            `json:"simulation"`
	Integrator string            `json:"integrator,omitempty"`
	Dt         float64           `json:"dt"`
	Duration   float64           `json:"duration"`
	CreatedAt  time.Time         `json:"created_at"`
	Params     map[string]Number `json:"params"`
	Metrics    map[string]Number `json:"metrics,omitempty"`
	Labels     []string          `json:"labels"`
	Samples    []Sample          `json:"samples"`
}

// NewDocument combines run metadata and its series for JSON export.
func NewDocument(run storage.Run, series storage.Series) Document {
	doc := Document{
		ID:         run.ID,
		Simulation: run.Simulation,
		Integrator: run.Integrator,
		Dt:         run.Dt,
		Duration:   run.Duration,
		CreatedAt:  run.CreatedAt,
		Params:     numbers(run.Params),
		Metrics:    numbers(run.Metrics),
		Labels:     series.Labels,
		Samples:    make([]Sample, len(series.States)),
	}
	for i, x := range series.States {
		s := Sample{T: Number(series.Times[i]), Values: make([]Number, len(x))}
		for j, v := range x {
			s.Values[j] = Number(v)
		}
		doc.Samples[i] = s
	}
	return doc
}

func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func numbers(m map[string]float64) map[string]Number {
	if m == nil {
		return nil
	}
	out := make(map[string]Number, len(m))
	for k, v := range m {
		out[k] = Number(v)
	}
	return out
}

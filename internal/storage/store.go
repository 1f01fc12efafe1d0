// Package storage keeps recorded runs: an index in SQLite and one CSV file of
// observed states per run.
package storage

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/san-kum/physlab/internal/dynamo"
)

var (
	ErrNotFound  = errors.New("run not found")
	ErrAmbiguous = errors.New("run id prefix is ambiguous")
	ErrEmptyID   = errors.New("run id is empty")
)

// Run is the index entry of one recorded run.
type Run struct {
	ID         string
	Simulation string
	Integrator string
	Dt         float64
	Duration   float64
	Frames     int
	Params     map[string]float64
	Metrics    map[string]float64
	CreatedAt  time.Time
}

// Series is the recorded trajectory of a run.
type Series struct {
	Labels []string
	Times  []float64
	States []dynamo.State
}

type runRow struct {
	ID          string  `db:"id"`
	Simulation  string  `db:"simulation"`
	Integrator  string  `db:"integrator"`
	Dt          float64 `db:"dt"`
	Duration    float64 `db:"duration"`
	Frames      int     `db:"frames"`
	ParamsJSON  string  `db:"params_json"`
	MetricsJSON string  `db:"metrics_json"`
	CreatedAt   int64   `db:"created_at"`
}

type Store struct {
	dir  string
	conn *sqlx.DB
}

// Open opens or creates the run store in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	conn, err := sqlx.Open("sqlite", filepath.Join(dir, "runs.db")+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{dir: dir, conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		simulation TEXT NOT NULL,
		integrator TEXT NOT NULL,
		dt REAL NOT NULL,
		duration REAL NOT NULL,
		frames INTEGER NOT NULL,
		params_json TEXT NOT NULL,
		metrics_json TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_simulation ON runs(simulation);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Save assigns run a new ID, writes its series and indexes it.
func (s *Store) Save(ctx context.Context, run *Run, series Series) (string, error) {
	run.ID = uuid.NewString()
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	row, err := toRow(run)
	if err != nil {
		return "", err
	}
	path := s.seriesPath(run.ID)
	if err := writeSeries(path, series); err != nil {
		return "", fmt.Errorf("write series: %w", err)
	}

	_, err = s.conn.NamedExecContext(ctx, `INSERT INTO runs
		(id, simulation, integrator, dt, duration, frames, params_json, metrics_json, created_at)
		VALUES (:id, :simulation, :integrator, :dt, :duration, :frames, :params_json, :metrics_json, :created_at)`,
		row)
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return run.ID, nil
}

// List returns every run, newest first. A non-empty simulation filters.
func (s *Store) List(ctx context.Context, simulation string) ([]Run, error) {
	var rows []runRow
	var err error
	if simulation == "" {
		err = s.conn.SelectContext(ctx, &rows, `SELECT * FROM runs ORDER BY created_at DESC`)
	} else {
		err = s.conn.SelectContext(ctx, &rows, `SELECT * FROM runs WHERE simulation = ? ORDER BY created_at DESC`, simulation)
	}
	if err != nil {
		return nil, err
	}

	runs := make([]Run, 0, len(rows))
	for _, r := range rows {
		run, err := fromRow(r)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", r.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// Load finds a run by its ID or a unique ID prefix.
func (s *Store) Load(ctx context.Context, id string) (*Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyID
	}
	var rows []runRow
	err := s.conn.SelectContext(ctx, &rows,
		`SELECT * FROM runs WHERE substr(id, 1, length(?)) = ? LIMIT 2`, id, id)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguous, id)
	}
	run, err := fromRow(rows[0])
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// LoadSeries reads the recorded states of run id.
func (s *Store) LoadSeries(id string) (Series, error) {
	file, err := os.Open(s.seriesPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return Series{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return Series{}, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return Series{}, err
	}
	if len(records) == 0 {
		return Series{}, nil
	}

	series := Series{Labels: records[0][1:]}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return Series{}, fmt.Errorf("line %d: %w", i+1, err)
		}
		state := make(dynamo.State, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return Series{}, fmt.Errorf("line %d: %w", i+1, err)
			}
			state = append(state, v)
		}
		series.Times = append(series.Times, t)
		series.States = append(series.States, state)
	}
	return series, nil
}

// SeriesSize is the size in bytes of the run's CSV file.
func (s *Store) SeriesSize(id string) (int64, error) {
	fi, err := os.Stat(s.seriesPath(id))
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// SeriesPath is where the run's CSV lives.
func (s *Store) SeriesPath(id string) string { return s.seriesPath(id) }

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := os.Remove(s.seriesPath(id)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) seriesPath(id string) string {
	return filepath.Join(s.dir, id+".csv")
}

func toRow(run *Run) (runRow, error) {
	params, err := json.Marshal(finite(run.Params))
	if err != nil {
		return runRow{}, err
	}
	metrics, err := json.Marshal(finite(run.Metrics))
	if err != nil {
		return runRow{}, err
	}
	return runRow{
		ID:          run.ID,
		Simulation:  run.Simulation,
		Integrator:  run.Integrator,
		Dt:          run.Dt,
		Duration:    run.Duration,
		Frames:      run.Frames,
		ParamsJSON:  string(params),
		MetricsJSON: string(metrics),
		CreatedAt:   run.CreatedAt.UnixNano(),
	}, nil
}

func fromRow(r runRow) (Run, error) {
	run := Run{
		ID:         r.ID,
		Simulation: r.Simulation,
		Integrator: r.Integrator,
		Dt:         r.Dt,
		Duration:   r.Duration,
		Frames:     r.Frames,
		CreatedAt:  time.Unix(0, r.CreatedAt),
	}
	if err := json.Unmarshal([]byte(r.ParamsJSON), &run.Params); err != nil {
		return Run{}, err
	}
	if err := json.Unmarshal([]byte(r.MetricsJSON), &run.Metrics); err != nil {
		return Run{}, err
	}
	return run, nil
}

// finite drops NaN and Inf values, which JSON cannot encode.
func finite(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}

func writeSeries(path string, series Series) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(file)
	header := append([]string{"time"}, series.Labels...)
	if len(series.Labels) == 0 && len(series.States) > 0 {
		for i := range series.States[0] {
			header = append(header, fmt.Sprintf("x%d", i))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, x := range series.States {
		row := make([]string, 0, len(x)+1)
		row = append(row, strconv.FormatFloat(series.Times[i], 'f', 6, 64))
		for _, v := range x {
			row = append(row, strconv.FormatFloat(v, 'g', 10, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

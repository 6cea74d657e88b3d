// Package store writes snapshots of the currently visible records to disk.
//
// A snapshot is a directory holding metadata.json and visible.csv. Snapshots
// are write-once records of a filtering session; they are listed and read
// back for inspection only and never restore brush state.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/parcoord/internal/dataset"
	"github.com/san-kum/parcoord/internal/plot"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Selection is one active brush at snapshot time, in value space.
type Selection struct {
	Dimension string  `json:"dimension"`
	Lo        float64 `json:"lo"`
	Hi        float64 `json:"hi"`
}

type SnapshotMetadata struct {
	ID         string      `json:"id"`
	Source     string      `json:"source"`
	Timestamp  time.Time   `json:"timestamp"`
	Dimensions []string    `json:"dimensions"`
	Total      int         `json:"total"`
	Visible    int         `json:"visible"`
	Selections []Selection `json:"selections"`
}

// writeRows writes the visible records of a snapshot.
var writeRows = WriteCSV

// Save writes the visible records of p and returns the snapshot id. On any
// failure the partly written snapshot directory is removed.
func (s *Store) Save(p *plot.Plot) (id string, err error) {
	id = uuid.NewString()
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(dir)
			id = ""
		}
	}()

	meta := SnapshotMetadata{
		ID:         id,
		Source:     p.Data.Source,
		Timestamp:  time.Now().UTC(),
		Dimensions: p.Data.Dimensions,
		Total:      p.Data.Len(),
		Visible:    p.VisibleCount(),
		Selections: Selections(p),
	}

	if err := writeFile(filepath.Join(dir, "visible.csv"), func(w io.Writer) error {
		return writeRows(w, p)
	}); err != nil {
		return "", fmt.Errorf("snapshot rows: %w", err)
	}
	if err := writeFile(filepath.Join(dir, "metadata.json"), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", fmt.Errorf("snapshot metadata: %w", err)
	}
	return id, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Selections lists the active brushes of p in axis order.
func Selections(p *plot.Plot) []Selection {
	cs := p.Constraints()
	out := make([]Selection, len(cs))
	for i, c := range cs {
		out[i] = Selection{Dimension: c.Dimension, Lo: c.Extent.Lo, Hi: c.Extent.Hi}
	}
	return out
}

// WriteCSV writes a header and every visible record of p. Non-finite values
// are written as empty fields.
func WriteCSV(w io.Writer, p *plot.Plot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(p.Data.Dimensions); err != nil {
		return err
	}
	row := make([]string, len(p.Data.Dimensions))
	for _, i := range p.VisibleIndices() {
		for j, v := range p.Data.Records[i] {
			row[j] = formatValue(v)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(v float64) string {
	if !dataset.IsFinite(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// List returns every readable snapshot, oldest first.
func (s *Store) List() ([]SnapshotMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SnapshotMetadata{}, nil
		}
		return nil, err
	}

	snaps := make([]SnapshotMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		snaps = append(snaps, *meta)
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Timestamp.Before(snaps[j].Timestamp) })
	return snaps, nil
}

func (s *Store) Load(id string) (*SnapshotMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, fmt.Errorf("store: snapshot %s: %w", id, err)
	}

	var meta SnapshotMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("store: snapshot %s: %w", id, err)
	}
	return &meta, nil
}

// RowsPath is the CSV file of snapshot id.
func (s *Store) RowsPath(id string) string {
	return filepath.Join(s.baseDir, id, "visible.csv")
}

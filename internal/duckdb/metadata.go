package duckdb

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file. Standard input
// ("-" or "") gets a fingerprint with only its path set.
func StatFile(path string) (FileFingerprint, error) {
	if path == "" || path == "-" {
		return FileFingerprint{Path: "-"}, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Run describes one extraction run.
type Run struct {
	ID            int64
	Input         FileFingerprint
	StartedAt     time.Time
	FinishedAt    time.Time
	MaxMismatches int
	Strategy      string
	Definitions   []string
	Records       int
	Regions       int
	Failures      int
}

// NextRunID returns an identifier not used by any stored run or region.
func (s *Store) NextRunID() (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT GREATEST(
		(SELECT COALESCE(MAX(run_id), 0) FROM runs),
		(SELECT COALESCE(MAX(run_id), 0) FROM regions)) + 1`).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("next run id: %w", err)
	}
	return id, nil
}

// RecordRun stores the run metadata.
func (s *Store) RecordRun(r Run) error {
	_, err := s.db.Exec(`INSERT INTO runs VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Input.Path, r.Input.Size, r.Input.ModTime,
		r.StartedAt, r.FinishedAt,
		int64(r.MaxMismatches), r.Strategy, strings.Join(r.Definitions, ","),
		int64(r.Records), int64(r.Regions), int64(r.Failures))
	if err != nil {
		return fmt.Errorf("record run %d: %w", r.ID, err)
	}
	return nil
}

// Runs returns all stored runs ordered by identifier.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(`SELECT
		run_id, input_path, input_size, input_mtime, started_at, finished_at,
		max_mismatches, strategy, definitions, records, regions, failures
		FROM runs ORDER BY run_id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r    Run
			defs string
		)
		if err := rows.Scan(
			&r.ID, &r.Input.Path, &r.Input.Size, &r.Input.ModTime, &r.StartedAt, &r.FinishedAt,
			&r.MaxMismatches, &r.Strategy, &defs, &r.Records, &r.Regions, &r.Failures,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if defs != "" {
			r.Definitions = strings.Split(defs, ",")
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

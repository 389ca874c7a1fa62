package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/ebedthan/hyperex/internal/extract"
	"github.com/ebedthan/hyperex/internal/primer"
)

// WriteRegions batch-inserts regions for a run using the Appender API.
// Ordinals continue from the regions already stored for the run, so
// repeated calls keep emission order.
func (s *Store) WriteRegions(runID int64, regions []extract.Region) error {
	if len(regions) == 0 {
		return nil
	}

	var next int64
	if err := s.db.QueryRow(
		"SELECT COALESCE(MAX(ordinal) + 1, 0) FROM regions WHERE run_id = ?", runID,
	).Scan(&next); err != nil {
		return fmt.Errorf("next ordinal: %w", err)
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "regions")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for i := range regions {
		r := &regions[i]
		if err := appender.AppendRow(
			runID, next+int64(i), r.ID, r.RecordID, int64(r.RecordIndex), r.RegionName,
			int64(r.Start), int64(r.End), r.Strand.Sign(),
			r.ForwardPrimer, r.ReversePrimer,
			int64(r.MismatchesForward), int64(r.MismatchesReverse),
			r.Sequence,
		); err != nil {
			return fmt.Errorf("append region %s: %w", r.ID, err)
		}
	}

	return appender.Flush()
}

// RegionsForRecord returns every stored region of a record, oldest run
// first and in emission order within a run.
func (s *Store) RegionsForRecord(recordID string) ([]extract.Region, error) {
	rows, err := s.db.Query(`SELECT
		region_id, record_id, record_index, region_name,
		start_pos, end_pos, strand,
		forward_primer, reverse_primer,
		forward_mismatches, reverse_mismatches, sequence
		FROM regions
		WHERE record_id = ?
		ORDER BY run_id, ordinal`, recordID)
	if err != nil {
		return nil, fmt.Errorf("query regions: %w", err)
	}
	defer rows.Close()

	var out []extract.Region
	for rows.Next() {
		var (
			r      extract.Region
			strand string
		)
		if err := rows.Scan(
			&r.ID, &r.RecordID, &r.RecordIndex, &r.RegionName,
			&r.Start, &r.End, &strand,
			&r.ForwardPrimer, &r.ReversePrimer,
			&r.MismatchesForward, &r.MismatchesReverse, &r.Sequence,
		); err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		if strand == "-" {
			r.Strand = primer.Reverse
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate regions: %w", err)
	}
	return out, nil
}

// RegionCounts returns the number of stored regions per region name for a
// run.
func (s *Store) RegionCounts(runID int64) (map[string]int, error) {
	rows, err := s.db.Query(
		"SELECT region_name, COUNT(*) FROM regions WHERE run_id = ? GROUP BY region_name", runID)
	if err != nil {
		return nil, fmt.Errorf("query region counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			name string
			n    int
		)
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scan region count: %w", err)
		}
		counts[name] = n
	}
	return counts, rows.Err()
}

// DefaultSinkBatch is the number of regions a RegionSink buffers before
// appending them.
const DefaultSinkBatch = 1000

// RegionSink buffers regions of one run and appends them in batches. It
// satisfies the output package's RegionWriter.
type RegionSink struct {
	store *Store
	runID int64
	batch int
	buf   []extract.Region
}

// NewRegionSink creates a sink writing into run runID.
func (s *Store) NewRegionSink(runID int64) *RegionSink {
	return &RegionSink{store: s, runID: runID, batch: DefaultSinkBatch}
}

// WriteRegion buffers r, appending the batch once it is full.
func (rs *RegionSink) WriteRegion(r *extract.Region) error {
	rs.buf = append(rs.buf, *r)
	if len(rs.buf) >= rs.batch {
		return rs.Flush()
	}
	return nil
}

// Flush appends any buffered regions.
func (rs *RegionSink) Flush() error {
	if len(rs.buf) == 0 {
		return nil
	}
	err := rs.store.WriteRegions(rs.runID, rs.buf)
	rs.buf = rs.buf[:0]
	return err
}

// Package output provides extracted-region output formatters.
package output

import (
	"errors"

	"github.com/ebedthan/hyperex/internal/extract"
)

// RegionWriter receives extracted regions in output order.
type RegionWriter interface {
	WriteRegion(r *extract.Region) error
	Flush() error
}

// Multi fans every region out to all writers.
func Multi(writers ...RegionWriter) RegionWriter {
	return multiWriter(writers)
}

type multiWriter []RegionWriter

func (m multiWriter) WriteRegion(r *extract.Region) error {
	for _, w := range m {
		if err := w.WriteRegion(r); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every writer, even after a failure.
func (m multiWriter) Flush() error {
	var errs []error
	for _, w := range m {
		if err := w.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteResult writes all regions of one record result.
func WriteResult(w RegionWriter, res extract.RecordResult) error {
	for i := range res.Regions {
		if err := w.WriteRegion(&res.Regions[i]); err != nil {
			return err
		}
	}
	return nil
}

package uksim

import (
	"bytes"
	"fmt"
	"os"
)

// CSVStatsBackend writes one row per tick to a single CSV file,
// following the teacher's AppendToFile batching idiom (csv_logger.go):
// buffer the whole channel's worth of rows in memory, then append them
// to disk in one write+sync rather than a write per row.
type CSVStatsBackend struct {
	path string
}

func NewCSVStatsBackend(path string) *CSVStatsBackend {
	return &CSVStatsBackend{path: path}
}

func (b *CSVStatsBackend) Init() error {
	header := []byte("tick,susceptible,exposed,infected,recovered,vaccinated,dead,lockdown,masking\n")
	return writeFile(b.path, header)
}

func (b *CSVStatsBackend) WriteSnapshots(c <-chan CountRecord) {
	const template = "%d,%d,%d,%d,%d,%d,%d,%t,%t\n"
	var buf bytes.Buffer
	for rec := range c {
		fmt.Fprintf(&buf, template,
			rec.Tick, rec.Susceptible, rec.Exposed, rec.Infected,
			rec.Recovered, rec.Vaccinated, rec.Dead,
			rec.LockdownActive, rec.MaskingActive,
		)
	}
	// TODO: surface this error to the caller instead of swallowing it;
	// matches the teacher's csv_logger.go AppendToFile call sites, which
	// do the same.
	AppendToFile(b.path, buf.Bytes())
}

func (b *CSVStatsBackend) Close() error { return nil }

// writeFile truncates (or creates) the file at path and writes b, for the
// one-time header row. Rows after that go through AppendToFile instead.
func writeFile(path string, b []byte) error {
	f, err := os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(b); err != nil {
		return err
	}
	return f.Sync()
}

// AppendToFile creates a new file at path if it does not exist, or appends
// to the end of the existing file if it does. Carried forward from the
// teacher's csv_logger.go, whose batch-then-append idiom this backend reuses.
func AppendToFile(path string, b []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(b); err != nil {
		return err
	}
	return f.Sync()
}

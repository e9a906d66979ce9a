package uksim

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStatsBackend writes one row per tick into a single "counts"
// table, adapted from the teacher's per-run table-and-transaction shape
// (sqlite_logger.go OpenSQLiteDB/newTable/Prepare-Exec-in-a-transaction)
// down to one table instead of six, since this domain has one record
// kind instead of genotype/node/freq/tree/status/transmission.
type SQLiteStatsBackend struct {
	path string
	db   *sqlx.DB
}

func NewSQLiteStatsBackend(path string) *SQLiteStatsBackend {
	return &SQLiteStatsBackend{path: path}
}

func (b *SQLiteStatsBackend) Init() error {
	db, err := sqlx.Open("sqlite3", b.path)
	if err != nil {
		return err
	}
	const schema = `
create table if not exists counts (
	tick integer not null primary key,
	susceptible integer, exposed integer, infected integer,
	recovered integer, vaccinated integer, dead integer,
	lockdown_active boolean, masking_active boolean
);
delete from counts;
`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("%q: %s", err, schema)
	}
	b.db = db
	return nil
}

func (b *SQLiteStatsBackend) WriteSnapshots(c <-chan CountRecord) {
	tx, err := b.db.Beginx()
	if err != nil {
		return
	}
	stmt, err := tx.Preparex(`insert into counts
		(tick, susceptible, exposed, infected, recovered, vaccinated, dead, lockdown_active, masking_active)
		values (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return
	}
	defer stmt.Close()
	for rec := range c {
		if _, err := stmt.Exec(
			rec.Tick, rec.Susceptible, rec.Exposed, rec.Infected,
			rec.Recovered, rec.Vaccinated, rec.Dead,
			rec.LockdownActive, rec.MaskingActive,
		); err != nil {
			continue
		}
	}
	tx.Commit()
}

func (b *SQLiteStatsBackend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// ReadCounts reads every row a SQLiteStatsBackend recorded back out,
// ordered by tick. WriteSummaryReport (report.go) does not call it; the
// report is built from the live StatsRecorder history.
func ReadCounts(path string) ([]CountRecord, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	var rows []CountRecord
	err = db.Select(&rows, `select tick, susceptible, exposed, infected, recovered, vaccinated, dead,
		lockdown_active as lockdownactive, masking_active as maskingactive from counts order by tick`)
	return rows, err
}

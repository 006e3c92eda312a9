// Package journal keeps an append-only record of login attempts in a
// sqlite database, so an operator can answer "who has been knocking"
// without shipping logs anywhere.
//
// The secret itself is never written, only the outcome and the remote
// address of each attempt.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type (
	J struct {
		db *sql.DB
	}

	Attempt struct {
		At      time.Time
		Remote  string
		Granted bool
	}
)

// Open loads (or creates) the journal database stored under dir.
func Open(ctx context.Context, dir string) (*J, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("unable to create directory %v to store journal, cause %w", dir, err)
	}
	file := filepath.Join(dir, "journal.db")
	connstr := fmt.Sprintf("file:%v?_journal=wal&mode=rwc", file)
	conn, err := sql.Open("sqlite3", connstr)
	if err != nil {
		return nil, fmt.Errorf("unable to open %v, cause %w", file, err)
	}
	err = conn.PingContext(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to ping journal %v, cause %w", file, err)
	}
	j := &J{db: conn}
	err = j.init(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to init journal %v, cause %w", file, err)
	}
	return j, nil
}

func (j *J) init(ctx context.Context) error {
	_, err := j.db.ExecContext(ctx, `create table if not exists login_attempts(
		attempt_id integer primary key autoincrement,
		at text not null,
		remote text not null,
		granted integer not null)`)
	return err
}

// Record appends one attempt. remote is whatever the transport knows
// about the caller, usually ip:port.
func (j *J) Record(ctx context.Context, remote string, granted bool) error {
	g := 0
	if granted {
		g = 1
	}
	_, err := j.db.ExecContext(ctx,
		`insert into login_attempts (at, remote, granted) values (?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), remote, g)
	if err != nil {
		return fmt.Errorf("unable to record login attempt, cause %w", err)
	}
	return nil
}

// Tail returns the n most recent attempts, newest first.
func (j *J) Tail(ctx context.Context, n int) ([]Attempt, error) {
	rows, err := j.db.QueryContext(ctx,
		`select at, remote, granted from login_attempts order by attempt_id desc limit ?`, n)
	if err != nil {
		return nil, fmt.Errorf("unable to read journal tail, cause %w", err)
	}
	defer rows.Close()
	var out []Attempt
	for rows.Next() {
		var a Attempt
		var at string
		var granted int
		err = rows.Scan(&at, &a.Remote, &granted)
		if err != nil {
			return nil, fmt.Errorf("unable to scan journal entry, cause %w", err)
		}
		a.At, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("unable to parse journal timestamp %v, cause %w", at, err)
		}
		a.Granted = granted == 1
		out = append(out, a)
	}
	return out, rows.Err()
}

func (j *J) Close() error {
	return j.db.Close()
}

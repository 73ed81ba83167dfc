package db

import (
	"database/sql"
	"fmt"
)

// ToolRun represents a row in the tool_runs table.
type ToolRun struct {
	ID         int
	RunID      string
	Tool       string
	Ok         bool
	DurationMs int
	Summary    string
	Detail     string
	Timestamp  string
}

// CommitRun represents a row in the commit_runs table. Percent, Covered
// and Missed are nil when the run carried no coverage data.
type CommitRun struct {
	ID        int
	RunID     string
	State     string
	Message   string
	Percent   *float64
	Covered   *int
	Missed    *int
	Timestamp string
}

// LogToolRun inserts a tool run record.
func (d *DB) LogToolRun(runID, tool string, ok bool, durationMs int, summary, detail string) error {
	_, err := d.conn.Exec(
		`INSERT INTO tool_runs (run_id, tool, ok, duration_ms, summary, detail) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, tool, ok, durationMs, summary, detail,
	)
	if err != nil {
		return fmt.Errorf("log tool run: %w", err)
	}
	return nil
}

// LogCommitRun inserts a commit run record.
func (d *DB) LogCommitRun(runID, state, message string, percent *float64, covered, missed *int) error {
	_, err := d.conn.Exec(
		`INSERT INTO commit_runs (run_id, state, message, percent, covered, missed) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, state, message, percent, covered, missed,
	)
	if err != nil {
		return fmt.Errorf("log commit run: %w", err)
	}
	return nil
}

// RecentToolRuns returns the newest tool runs, most recent first.
func (d *DB) RecentToolRuns(limit int) ([]ToolRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.conn.Query(
		`SELECT id, run_id, tool, ok, duration_ms, summary, detail, timestamp
		 FROM tool_runs ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query tool runs: %w", err)
	}
	defer rows.Close()

	var out []ToolRun
	for rows.Next() {
		var r ToolRun
		var duration sql.NullInt64
		var summary, detail sql.NullString
		if err := rows.Scan(&r.ID, &r.RunID, &r.Tool, &r.Ok, &duration, &summary, &detail, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan tool run: %w", err)
		}
		r.DurationMs = int(duration.Int64)
		r.Summary = summary.String
		r.Detail = detail.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// RecentCommitRuns returns the newest commit runs, most recent first.
func (d *DB) RecentCommitRuns(limit int) ([]CommitRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.conn.Query(
		`SELECT id, run_id, state, message, percent, covered, missed, timestamp
		 FROM commit_runs ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query commit runs: %w", err)
	}
	defer rows.Close()

	var out []CommitRun
	for rows.Next() {
		var r CommitRun
		var percent sql.NullFloat64
		var covered, missed sql.NullInt64
		if err := rows.Scan(&r.ID, &r.RunID, &r.State, &r.Message, &percent, &covered, &missed, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan commit run: %w", err)
		}
		if percent.Valid {
			v := percent.Float64
			r.Percent = &v
		}
		if covered.Valid {
			v := int(covered.Int64)
			r.Covered = &v
		}
		if missed.Valid {
			v := int(missed.Int64)
			r.Missed = &v
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

package data

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/xerrors"

	"github.com/khaledhikmat/fire-go/model"
	"github.com/khaledhikmat/fire-go/service/config"
)

type sqliteService struct {
	conn *sql.DB
}

func NewSqlite(cfgsvc config.IService) (IService, error) {
	path := cfgsvc.GetSqlitePath()
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, xerrors.Errorf("creating sqlite folder: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, xerrors.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, xerrors.Errorf("failed to ping database: %w", err)
	}

	svc := &sqliteService{conn: conn}
	if err := svc.createTables(); err != nil {
		conn.Close()
		return nil, xerrors.Errorf("failed to create tables: %w", err)
	}

	return svc, nil
}

func (svc *sqliteService) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS errors (
		timestamp INTEGER NOT NULL,
		processor TEXT NOT NULL,
		inner_error TEXT,
		message TEXT,
		stack_trace TEXT,
		misc TEXT
	);
	CREATE TABLE IF NOT EXISTS sampler_stats (
		run_id TEXT NOT NULL,
		name TEXT NOT NULL,
		source TEXT NOT NULL,
		kind TEXT NOT NULL,
		source_fps REAL,
		step INTEGER,
		frames INTEGER,
		forwarded INTEGER,
		errors INTEGER,
		overruns INTEGER,
		uptime INTEGER,
		timestamp INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS classifier_stats (
		run_id TEXT NOT NULL,
		name TEXT NOT NULL,
		frames INTEGER,
		fire INTEGER,
		no_fire INTEGER,
		errors INTEGER,
		avg_proc_time REAL,
		timestamp INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS run_stats (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		kind TEXT NOT NULL,
		result_log TEXT,
		labels INTEGER,
		uptime INTEGER,
		timestamp INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS classifications (
		run_id TEXT NOT NULL,
		frame INTEGER NOT NULL,
		label TEXT NOT NULL,
		scores TEXT,
		proc_time_ns INTEGER,
		timestamp INTEGER NOT NULL
	);
	`

	_, err := svc.conn.Exec(query)
	return err
}

func (svc *sqliteService) NewError(err interface{}) error {
	record := toErrorRecord(err)
	misc, mErr := json.Marshal(record.Misc)
	if mErr != nil {
		return mErr
	}

	_, execErr := svc.conn.Exec(`INSERT INTO errors (timestamp, processor, inner_error, message, stack_trace, misc) VALUES (?, ?, ?, ?, ?, ?)`,
		record.Timestamp, record.Processor, record.Inner, record.Message, record.StackTrace, string(misc))
	return execErr
}

func (svc *sqliteService) NewSamplerStats(stats model.SamplerStats) error {
	_, err := svc.conn.Exec(`INSERT INTO sampler_stats (run_id, name, source, kind, source_fps, step, frames, forwarded, errors, overruns, uptime, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.RunID, stats.Name, stats.Source, stats.Kind, stats.SourceFPS, stats.Step, stats.Frames,
		stats.Forwarded, stats.Errors, stats.Overruns, stats.Uptime, time.Now().Unix())
	return err
}

func (svc *sqliteService) NewClassifierStats(stats model.ClassifierStats) error {
	_, err := svc.conn.Exec(`INSERT INTO classifier_stats (run_id, name, frames, fire, no_fire, errors, avg_proc_time, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.RunID, stats.Name, stats.Frames, stats.Fire, stats.NoFire, stats.Errors, stats.AvgProcTime, time.Now().Unix())
	return err
}

func (svc *sqliteService) NewRunStats(stats model.RunStats) error {
	_, err := svc.conn.Exec(`INSERT OR REPLACE INTO run_stats (id, source, kind, result_log, labels, uptime, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		stats.ID, stats.Source, stats.Kind, stats.ResultLog, stats.Labels, stats.Uptime, time.Now().Unix())
	return err
}

func (svc *sqliteService) NewClassification(classification model.Classification) error {
	scores, err := json.Marshal(classification.Scores)
	if err != nil {
		return err
	}

	_, err = svc.conn.Exec(`INSERT INTO classifications (run_id, frame, label, scores, proc_time_ns, timestamp) VALUES (?, ?, ?, ?, ?, ?)`,
		classification.RunID, classification.Frame, classification.Label.String(), string(scores),
		classification.ProcTime.Nanoseconds(), classification.Timestamp)
	return err
}

func (svc *sqliteService) RetrieveRunStats() ([]model.RunStats, error) {
	rows, err := svc.conn.Query(`SELECT id, source, kind, result_log, labels, uptime, timestamp FROM run_stats ORDER BY timestamp, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.RunStats{}
	for rows.Next() {
		var stats model.RunStats
		if err := rows.Scan(&stats.ID, &stats.Source, &stats.Kind, &stats.ResultLog, &stats.Labels, &stats.Uptime, &stats.Timestamp); err != nil {
			return nil, err
		}
		result = append(result, stats)
	}

	return result, rows.Err()
}

func (svc *sqliteService) Close() error {
	return svc.conn.Close()
}

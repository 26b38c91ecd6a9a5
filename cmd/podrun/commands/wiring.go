package commands

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/podrun/podrun/config"
	"github.com/podrun/podrun/db"
	"github.com/podrun/podrun/engine"
	"github.com/podrun/podrun/errors"
	"github.com/podrun/podrun/logger"
	"github.com/podrun/podrun/tpu"
)

// openDatabase opens and migrates the execution history database
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	path := cfg.Database.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create database directory for %s", path)
	}

	database, err := db.Open(path, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", path)
	}

	if err := db.Migrate(database, logger.Logger); err != nil {
		database.Close()
		return nil, errors.Wrapf(err, "failed to run migrations on %s", path)
	}

	return database, nil
}

// buildEngine wires the TPU client and record store into an engine.
// The caller owns the returned database handle.
func buildEngine(cfg *config.Config) (*engine.Engine, *sql.DB, error) {
	client, err := tpu.NewClient(cfg.TPU, logger.Logger)
	if err != nil {
		return nil, nil, err
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}

	store := engine.NewRecordStore(database)
	eng := engine.New(client, client, store, cfg.Run.ExcerptChars, logger.Logger)
	return eng, database, nil
}

// openStore opens just the record store for history/errors views
func openStore(cfg *config.Config) (*engine.RecordStore, *sql.DB, error) {
	database, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	return engine.NewRecordStore(database), database, nil
}

// Package migrator applies embedded goose migrations with a goose Provider.
package migrator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/lock"

	"github.com/ghuser/supermarket/pkg/logger"
)

// Commands accepted by Run. They match MIGRATION_COMMAND.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandRedo    = "redo"
	CommandReset   = "reset"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// ErrUnknownCommand is returned for a command Run does not implement.
var ErrUnknownCommand = errors.New("unknown migration command")

// Run opens dbURL and executes command against the *.sql files at the root
// of files, logging one line per applied migration.
func Run(ctx context.Context, dbURL string, files fs.FS, command string, log logger.Logger) error {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	// The advisory lock keeps concurrent deploys from migrating at once.
	locker, err := lock.NewPostgresSessionLocker()
	if err != nil {
		return fmt.Errorf("goose session locker: %w", err)
	}
	p, err := goose.NewProvider(goose.DialectPostgres, db, files,
		goose.WithSessionLocker(locker),
		goose.WithSlog(log.ToSlog()),
	)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if err := runCommand(ctx, p, command, log); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

func runCommand(ctx context.Context, p *goose.Provider, command string, log logger.Logger) error {
	switch command {
	case CommandUp:
		res, err := p.Up(ctx)
		logResults(log, res...)
		if len(res) == 0 && err == nil {
			log.Info("no pending migrations")
		}
		return err
	case CommandDown:
		res, err := p.Down(ctx)
		logResults(log, res)
		return err
	case CommandRedo:
		down, err := p.Down(ctx)
		logResults(log, down)
		if err != nil {
			return err
		}
		up, err := p.UpByOne(ctx)
		logResults(log, up)
		return err
	case CommandReset:
		res, err := p.DownTo(ctx, 0)
		logResults(log, res...)
		return err
	case CommandStatus:
		statuses, err := p.Status(ctx)
		for _, s := range statuses {
			log.Info("migration", "version", s.Source.Version, "path", s.Source.Path, "state", s.State, "applied_at", s.AppliedAt)
		}
		return err
	case CommandVersion:
		v, err := p.GetDBVersion(ctx)
		if err == nil {
			log.Info("database version", "version", v)
		}
		return err
	default:
		return fmt.Errorf("%w %q", ErrUnknownCommand, command)
	}
}

func logResults(log logger.Logger, results ...*goose.MigrationResult) {
	for _, r := range results {
		if r == nil {
			continue
		}
		log.Info("migration applied",
			"direction", r.Direction,
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration", r.Duration,
			"empty", r.Empty)
	}
}

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rediwo/redi-records/accessor"
	"github.com/rediwo/redi-records/config"
	"github.com/rediwo/redi-records/database"
	"github.com/rediwo/redi-records/logger"
	"github.com/rediwo/redi-records/resource"
)

// session is the state one command runs with.
type session struct {
	cfg     *config.Config
	db      database.Database
	catalog *resource.Catalog
	logger  logger.Logger
}

// openSession loads the configuration, builds the catalog and, if connect
// is set, connects to the database. Log output goes to errOut.
func openSession(ctx context.Context, opts *RootOptions, errOut io.Writer, connect bool) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Level()
	if opts.LogLevel != "" {
		level = logger.ParseLogLevel(opts.LogLevel)
	}
	l := logger.NewDefaultLogger("redi-records")
	l.SetOutput(errOut)
	l.SetLevel(level)
	logger.SetGlobalLogger(l)

	db, err := database.NewFromURI(cfg.Database)
	if err != nil {
		return nil, err
	}
	db.SetLogger(l)

	if err := cfg.RegisterModels(db); err != nil {
		return nil, err
	}

	if connect {
		if err := db.Connect(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	for _, name := range cfg.DropDelegateFilters() {
		l.Warn("Skipping filter %s: delegate filters are not available from the command line", name)
	}

	catalog, err := cfg.Build(db, nil)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &session{cfg: cfg, db: db, catalog: catalog, logger: l}, nil
}

func (s *session) accessor(name string) (*accessor.RelationalRecordAccessor, error) {
	res, err := s.catalog.Get(name)
	if err != nil {
		return nil, err
	}
	return accessor.NewRelationalRecordAccessor(res, s.db,
		accessor.WithLogger(s.logger),
		accessor.WithStrictFilters(s.cfg.StrictFilters),
	)
}

func (s *session) Close() error {
	return s.db.Close()
}

package root

import (
	"context"
	"log/slog"
	"os"

	"github.com/AAChaika/duotasks/internal/config"
	"github.com/AAChaika/duotasks/internal/engine"
	"github.com/AAChaika/duotasks/internal/storage"
)

func openService(ctx context.Context) (*engine.Service, config.Config, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, cfg, nil, err
	}

	path := cfg.DBPath
	if path == "" {
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, cfg, nil, err
		}
	}

	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, cfg, nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		_ = db.Close()
		return nil, cfg, nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	svc := engine.NewService(db, engine.Options{
		Clock:     engine.NewClock(loc),
		Logger:    logger,
		Debounce:  cfg.Debounce.Std(),
		WriteWait: cfg.WriteWait.Std(),
	})

	cleanup := func() {
		_ = db.Close()
	}
	return svc, cfg, cleanup, nil
}

package commands

import (
	"context"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/config"
	"tableflip.dev/daybook/pkg/logutils"
	"tableflip.dev/daybook/pkg/store"
)

// session is everything a command needs to touch the daybook.
type session struct {
	cfg   *config.Settings
	svc   *app.Service
	close func()
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, closeLog, err := logutils.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg, store.WithLogger(log))
	if err != nil {
		closeLog()
		return nil, err
	}
	svc, err := app.Open(ctx, app.Options{Persistence: p, Log: log})
	if err != nil {
		closeLog()
		return nil, err
	}
	return &session{
		cfg: cfg,
		svc: svc,
		close: func() {
			svc.Close()
			closeLog()
		},
	}, nil
}

// withService opens a session, runs fn and routes its error through the
// output options.
func withService(ctx context.Context, fn func(s *session) error) error {
	s, err := openSession(ctx)
	if err != nil {
		return oo.HandleError(err)
	}
	defer s.close()
	return oo.HandleError(fn(s))
}

package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/docdraft/internal/config"
	"github.com/sells-group/docdraft/internal/drafter"
	"github.com/sells-group/docdraft/internal/store"
)

// draftEnv holds what every drafting command needs.
type draftEnv struct {
	Drafter drafter.Drafter
	Store   store.Store // nil when store.path is empty
}

func (e *draftEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initDraftEnv validates c and builds the drafter and optional run log.
func initDraftEnv(ctx context.Context, c *config.Config, mode string) (*draftEnv, error) {
	if err := c.Validate(mode); err != nil {
		return nil, err
	}

	st, err := initStore(ctx, c)
	if err != nil {
		return nil, err
	}

	d := drafter.New(c, nil)
	zap.L().Info("drafter ready", zap.String("mode", string(d.Mode())))
	return &draftEnv{Drafter: d, Store: st}, nil
}

// initStore opens and migrates the run log, or returns nil when disabled.
func initStore(ctx context.Context, c *config.Config) (store.Store, error) {
	if c.Store.Path == "" {
		return nil, nil
	}
	st, err := store.NewSQLite(c.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "store migrate")
	}
	return st, nil
}

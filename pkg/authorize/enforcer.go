package authorize

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	psqlwatcher "github.com/IguteChung/casbin-psql-watcher"
	casbin "github.com/casbin/casbin/v2"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const policyChannel = "roxydental_casbin_policy"

// reloadFailed is set when a watcher-triggered reload errors and cleared by
// the next successful one.
var reloadFailed atomic.Bool

// IsPolicyHealthy reports whether the in-memory policy matches the last
// notification from other instances.
func IsPolicyHealthy() bool { return !reloadFailed.Load() }

type CleanupFunc func(ctx context.Context)

func noCleanup(context.Context) {}

// NewEnforcer builds an enforcer over the casbin_rule table in db. With
// cfg.Watch set, policy writes are broadcast over PostgreSQL LISTEN/NOTIFY on
// dsn and every instance reloads on receipt.
func NewEnforcer(db *gorm.DB, cfg Config, dsn string) (*casbin.DistributedEnforcer, CleanupFunc, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, nil, fmt.Errorf("casbin adapter: %w", err)
	}
	m, err := LoadModel(cfg.ModelPath)
	if err != nil {
		return nil, nil, fmt.Errorf("casbin model: %w", err)
	}
	e, err := casbin.NewDistributedEnforcer(m, adapter)
	if err != nil {
		return nil, nil, fmt.Errorf("casbin enforcer: %w", err)
	}
	e.EnableAutoSave(true)

	if !cfg.Watch {
		return e, noCleanup, nil
	}
	cleanup, err := watchPolicies(e, dsn)
	if err != nil {
		return nil, nil, err
	}
	return e, cleanup, nil
}

func watchPolicies(e *casbin.DistributedEnforcer, dsn string) (CleanupFunc, error) {
	w, err := psqlwatcher.NewWatcherWithConnString(context.Background(), dsn, psqlwatcher.Option{Channel: policyChannel})
	if err != nil {
		return nil, fmt.Errorf("policy watcher: %w", err)
	}

	reload := func(msg string) {
		err := e.LoadPolicy()
		reloadFailed.Store(err != nil)
		if err != nil {
			slog.Error("policy reload failed", "notification", msg, "error", err)
			return
		}
		slog.Debug("policies reloaded", "notification", msg)
	}
	if err := w.SetUpdateCallback(reload); err != nil {
		w.Close()
		return nil, err
	}
	if err := e.SetWatcher(w); err != nil {
		w.Close()
		return nil, err
	}
	return func(context.Context) { w.Close() }, nil
}

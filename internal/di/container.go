package di

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ignitionstack/wasmboard/internal/config"
	"github.com/ignitionstack/wasmboard/internal/repository"
	"github.com/ignitionstack/wasmboard/internal/services"
	"github.com/ignitionstack/wasmboard/internal/session"
	"github.com/ignitionstack/wasmboard/pkg/modules"
	"github.com/ignitionstack/wasmboard/pkg/wasm"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the session database, the observable module store bound
// to it, the local runtime and the module service.
var Module = fx.Module("wasmboard",
	fx.Provide(
		newDatabase,
		newSession,
		newStore,
		newRuntime,
		services.NewModuleService,
	),
)

// Container manages dependency injection for the application
type Container struct {
	app *fx.App

	Modules services.ModuleService
	Session *session.Session
	Store   *modules.Store
}

// Start builds the dependency graph for cfg and starts it.
func Start(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{}
	c.app = fx.New(
		fx.Supply(cfg, logger),
		Module,
		fx.NopLogger,
		fx.Populate(&c.Modules, &c.Session, &c.Store),
	)
	if err := c.app.Err(); err != nil {
		return nil, err
	}
	if err := c.app.Start(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Stop runs the shutdown hooks: the store is unbound from the session, then
// the runtime and database are closed.
func (c *Container) Stop(ctx context.Context) error {
	return c.app.Stop(ctx)
}

func newDatabase(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (repository.DBRepository, error) {
	dbRepo, err := repository.Open(filepath.Join(cfg.Session.Dir, "session.db"), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return dbRepo.Close()
		},
	})
	return dbRepo, nil
}

func newSession(dbRepo repository.DBRepository, cfg *config.Config, logger *zap.Logger) *session.Session {
	return session.New(dbRepo, cfg.Session.Dir, logger.Named("session"))
}

func newStore(lc fx.Lifecycle, sess *session.Session, logger *zap.Logger) (*modules.Store, error) {
	mods, err := sess.LoadModules()
	if err != nil {
		return nil, err
	}

	store := modules.New(modules.WithModules(mods), modules.WithLogger(logger.Named("store")))
	unbind := sess.Bind(store)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			unbind()
			return nil
		},
	})
	return store, nil
}

func newRuntime(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) wasm.Runtime {
	rt := wasm.NewWazeroRuntime(cfg.Runtime.CallTimeout, logger.Named("runtime"))
	lc.Append(fx.Hook{
		OnStop: rt.Close,
	})
	return rt
}

// Provider returns the application container, starting it on first use.
// Commands that never call it never open the session database.
type Provider func(ctx context.Context) (*Container, error)

package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/candlepilots/planguard/internal/api"
	"github.com/candlepilots/planguard/internal/store"
	"github.com/candlepilots/planguard/pkg/config"
	"github.com/candlepilots/planguard/pkg/entitlements"
	"github.com/candlepilots/planguard/pkg/guard"
	"github.com/candlepilots/planguard/pkg/httpserver"
	"github.com/candlepilots/planguard/pkg/logger"
	"github.com/candlepilots/planguard/pkg/pg"
	"github.com/candlepilots/planguard/pkg/plan"
	"github.com/candlepilots/planguard/pkg/redis"
	"github.com/candlepilots/planguard/pkg/session"
)

type appConfig struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	PlansFile string `env:"PLANS_FILE"` // optional YAML catalog override
}

func main() {
	ctx := context.Background()

	var appCfg appConfig
	config.MustLoad(&appCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Env, "planguard"))
	logger.SetAsDefault(log)

	if err := run(ctx, appCfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg appConfig, log *slog.Logger) error {
	var pgCfg pg.Config
	config.MustLoad(&pgCfg)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return err
	}

	// Plan catalog: YAML file when configured, shipped defaults otherwise.
	src := plan.NewDefaultSource()
	if appCfg.PlansFile != "" {
		src = plan.NewYAMLSource(appCfg.PlansFile)
	}
	catalog, err := plan.NewCatalog(ctx, src)
	if err != nil {
		return err
	}

	st := store.NewPostgresStore(pool)
	svc := entitlements.NewService(catalog, store.NewResolver(st), store.NewCounters(st))

	healthchecks := map[string]func(context.Context) error{
		"postgres": pg.Healthcheck(pool),
	}

	sessions, err := buildSessionManager(ctx, log, healthchecks)
	if err != nil {
		return err
	}

	g := guard.New(sessions, svc, log)
	router := api.Router(api.RouterOptions{
		Guard:        g,
		Handlers:     api.NewHandlers(catalog, svc, st, log),
		Healthchecks: healthchecks,
	})

	var httpCfg httpserver.Config
	config.MustLoad(&httpCfg)

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

// buildSessionManager selects the session backend: Redis when REDIS_URL
// is configured, in-process memory otherwise.
func buildSessionManager(ctx context.Context, log *slog.Logger, healthchecks map[string]func(context.Context) error) (*session.Manager, error) {
	var sessCfg session.Config
	config.MustLoad(&sessCfg)

	var redisCfg redis.Config
	config.MustLoad(&redisCfg)

	if redisCfg.ConnectionURL == "" {
		log.Info("sessions: using in-memory store")
		return session.NewManager(session.NewMemoryStore(time.Minute), sessCfg), nil
	}

	client, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return nil, err
	}
	healthchecks["redis"] = redis.Healthcheck(client)
	log.Info("sessions: using redis store")
	return session.NewManager(session.NewRedisStore(client), sessCfg), nil
}

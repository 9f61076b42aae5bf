package routes

import (
	"context"
	"errors"
	"net/http"

	"WashroomMonitor/internal/auth"
	"WashroomMonitor/internal/clock"
	"WashroomMonitor/internal/config"
	"WashroomMonitor/internal/metrics"
	"WashroomMonitor/internal/notification"
	"WashroomMonitor/internal/report"
	"WashroomMonitor/internal/stats"
	"WashroomMonitor/internal/washroom"
	"WashroomMonitor/pkg/middleware"
	"WashroomMonitor/pkg/validate"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var EchoModules = fx.Module("echo",
	fx.Provide(config.NewAppConfig),
	fx.Provide(config.NewClock),
	fx.Provide(config.NewMongoDBConfig),
	fx.Provide(config.NewMongoDatabase),
	fx.Provide(config.NewNotifierConfig),
	fx.Provide(config.NewNotifier),
	fx.Provide(config.NewReportCache),
	fx.Provide(washroom.NewRepository),
	fx.Provide(washroomPorts),
	fx.Provide(washroom.NewService),
	fx.Provide(washroom.NewHandler),
	fx.Provide(stats.NewService),
	fx.Provide(stats.NewHandler),
	fx.Provide(newReportResolver),
	fx.Provide(report.NewHandler),
	fx.Provide(notification.NewService),
	fx.Provide(notification.NewHandler),
	fx.Provide(newReminderScheduler),
	fx.Provide(newUserRepository),
	fx.Provide(newTokenIssuer),
	fx.Provide(auth.NewUserService),
	fx.Provide(auth.NewAuthHandler),
	fx.Provide(NewEchoServer),
	fx.Invoke(ensureUserIndexes),
	fx.Invoke(startReminders),
	fx.Invoke(RegisterRoutes))

type ports struct {
	fx.Out

	Configs  washroom.ConfigStore
	Stats    stats.Source
	Reports  report.Source
	Problems notification.Store
}

// washroomPorts exposes the record store under each interface its consumers ask for.
func washroomPorts(r *washroom.Repository) ports {
	return ports{Configs: r, Stats: r, Reports: r, Problems: r}
}

func newReportResolver(source report.Source, clk *clock.Clock, cache report.Cache, cfg *config.AppConfig, log *zap.Logger) *report.Resolver {
	return report.NewResolver(source, clk, cache, cfg.ReportCacheTTL, log)
}

func newReminderScheduler(service *notification.Service, cfg *config.AppConfig, log *zap.Logger) *notification.Scheduler {
	return notification.NewScheduler(service, cfg.ReminderInterval, log)
}

func newUserRepository(db *mongo.Database) (*auth.UserRepository, auth.UserStore) {
	repo := auth.NewUserRepository(db)
	return repo, repo
}

func newTokenIssuer(cfg *config.AppConfig) *auth.TokenIssuer {
	return auth.NewTokenIssuer(cfg.JWTKey, cfg.TokenTTL)
}

func ensureUserIndexes(lc fx.Lifecycle, repo *auth.UserRepository) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.EnsureIndexes(ctx)
		},
	})
}

func startReminders(lc fx.Lifecycle, s *notification.Scheduler) {
	s.StartScheduler(lc)
}

func NewEchoServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg *config.AppConfig, log *zap.Logger) *echo.Echo {
	e := newEcho(cfg, log)
	addr := cfg.Addr()
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("server running", zap.String("addr", addr))
			go func() {
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down the server")
			return e.Shutdown(ctx)
		},
	})
	return e
}

func newEcho(cfg *config.AppConfig, log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Metrics())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	return e
}

// Handlers groups every HTTP handler the server mounts.
type Handlers struct {
	fx.In

	Auth         *auth.AuthHandler
	Washroom     *washroom.Handler
	Stats        *stats.Handler
	Report       *report.Handler
	Notification *notification.Handler
}

func RegisterRoutes(e *echo.Echo, cfg *config.AppConfig, tokens *auth.TokenIssuer, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	e.POST("/login", h.Auth.Login)
	e.POST("/register", h.Auth.Register)

	e.GET("/all-usages", h.Stats.AllUsages)
	e.GET("/usages", h.Stats.TopUsages)
	e.GET("/feedbacks", h.Stats.Feedbacks)
	e.GET("/washroom-stats", h.Stats.WashroomStats)

	e.GET("/configurations", h.Washroom.Configurations)
	e.GET("/washrooms", h.Washroom.Washrooms)

	e.GET("/report", h.Report.Report)

	e.GET("/problems", h.Notification.Problems)
	e.GET("/notifications", h.Notification.Notifications)

	var guard []echo.MiddlewareFunc
	if cfg.AuthRequired {
		guard = append(guard, middleware.JWTMiddleware(tokens))
	}
	e.POST("/mark-notifications-read", h.Notification.MarkRead, guard...)
	e.POST("/send-action-message", h.Notification.SendAction, guard...)
}

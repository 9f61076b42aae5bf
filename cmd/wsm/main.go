package main

import (
	"WashroomMonitor/internal/bootstrap"
	"WashroomMonitor/pkg/routes"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	bootstrap.Loadenv()
	app := fx.New(
		fx.Provide(bootstrap.NewLogger),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		routes.EchoModules,
	)

	app.Run()
}

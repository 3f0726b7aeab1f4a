package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/fundraiser/internal/config"
	"github.com/polkiloo/fundraiser/internal/pkg/metrics"
	"github.com/polkiloo/fundraiser/internal/server/http/handlers"
)

// Module provides the gin engine serving the portal API.
var Module = fx.Provide(newEngine)

type engineParams struct {
	fx.In

	Facade  handlers.PortalFacade
	Metrics *metrics.Metrics `optional:"true"`
	Config  *config.Config
	Logger  *slog.Logger
}

func newEngine(p engineParams) *gin.Engine {
	return Setup(p.Facade, p.Metrics, p.Config, p.Logger)
}

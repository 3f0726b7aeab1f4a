package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/fundraiser/internal/adapter/identity"
	"github.com/polkiloo/fundraiser/internal/app"
	"github.com/polkiloo/fundraiser/internal/config"
	"github.com/polkiloo/fundraiser/internal/logger"
	"github.com/polkiloo/fundraiser/internal/pkg/auth"
	"github.com/polkiloo/fundraiser/internal/pkg/metrics"
	"github.com/polkiloo/fundraiser/internal/server/http/router"
	"github.com/polkiloo/fundraiser/internal/storage/postgres"
	"github.com/polkiloo/fundraiser/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		postgres.Module,
		identity.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

package saleactivity

import (
	"github.com/smallbiznis/parkline/internal/saleactivity/repository"
	"github.com/smallbiznis/parkline/internal/saleactivity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("saleactivity.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)

package pretransaction

import (
	"github.com/smallbiznis/parkline/internal/pretransaction/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pretransaction.service",
	fx.Provide(service.NewService),
)

package payment

import (
	"github.com/smallbiznis/parkline/internal/providers/payment/stripe"
	"go.uber.org/fx"
)

var Module = fx.Module("paymentgateway",
	fx.Provide(stripe.New),
)

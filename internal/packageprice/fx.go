package packageprice

import (
	"github.com/renolab/bathquote/internal/packageprice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("packageprice.service",
	fx.Provide(service.NewService),
)

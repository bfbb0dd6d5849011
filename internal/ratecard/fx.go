package ratecard

import (
	"github.com/renolab/bathquote/internal/ratecard/repository"
	"github.com/renolab/bathquote/internal/ratecard/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ratecard.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)

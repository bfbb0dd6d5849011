package snapshot

import (
	"github.com/renolab/bathquote/internal/snapshot/repository"
	"github.com/renolab/bathquote/internal/snapshot/service"
	"go.uber.org/fx"
)

var Module = fx.Module("snapshot.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)

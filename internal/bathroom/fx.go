package bathroom

import (
	"github.com/renolab/bathquote/internal/bathroom/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("bathroom",
	fx.Provide(repository.Provide),
)

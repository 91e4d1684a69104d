package components

import (
	"cabin-reserve/internal/infra/policysource"
	"cabin-reserve/internal/infra/readstore"
	repo_impl "cabin-reserve/internal/infra/repository"
	"cabin-reserve/internal/usecase/commands"
	"cabin-reserve/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
		),
		fx.Annotate(
			repo_impl.NewBlockRepository,
			fx.As(new(commands.BlockRepository)),
		),
		fx.Annotate(
			repo_impl.NewWaitingListRepository,
			fx.As(new(commands.WaitingListRepository)),
		),
		fx.Annotate(
			policysource.NewEnvSource,
			fx.As(new(commands.ConfigSource)),
		),
		// Read-side repository for queries
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
	),
)

package components

import (
	"cabin-reserve/internal/handler"
	"cabin-reserve/internal/handler/api"
	"cabin-reserve/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewReservationHandler,
		api.NewAdminHandler,
		api.NewWaitingListHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

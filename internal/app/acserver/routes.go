// Package acserver собирает HTTP-сервер доступа к инструментам: маршруты протокола узлов,
// API внешних систем и служебные конечные точки.
package acserver

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/acnode-server/internal/http/guard"
	"github.com/magabrotheeeer/acnode-server/internal/http/handlers/health"
	"github.com/magabrotheeeer/acnode-server/internal/http/handlers/summary/toollog"
	"github.com/magabrotheeeer/acnode-server/internal/http/handlers/summary/toolsstatus"
	"github.com/magabrotheeeer/acnode-server/internal/http/handlers/summary/usersummary"
	"github.com/magabrotheeeer/acnode-server/internal/http/handlers/tool/card"
	"github.com/magabrotheeeer/acnode-server/internal/http/handlers/tool/granttocard"
	"github.com/magabrotheeeer/acnode-server/internal/http/handlers/tool/isinuse"
	"github.com/magabrotheeeer/acnode-server/internal/http/handlers/tool/settoolstatus"
	"github.com/magabrotheeeer/acnode-server/internal/http/handlers/tool/settooluse"
	"github.com/magabrotheeeer/acnode-server/internal/http/handlers/tool/settoolusetime"
	"github.com/magabrotheeeer/acnode-server/internal/http/handlers/tool/status"

	_ "github.com/magabrotheeeer/acnode-server/docs"
)

// StateService — операции состояния инструмента, нужные обработчикам узлов.
type StateService interface {
	status.Service
	isinuse.Service
	settoolstatus.Service
	settooluse.Service
	settoolusetime.Service
}

// SummaryService — операции сводок для API внешних систем.
type SummaryService interface {
	toolsstatus.Service
	usersummary.Service
	toollog.Service
}

// Services — зависимости обработчиков.
type Services struct {
	State      StateService
	Resolver   card.Service
	Delegation granttocard.Service
	Summary    SummaryService
	DB         health.Pinger
	Cache      health.CachePinger
}

// Guards — конвейеры проверок для двух групп маршрутов.
type Guards struct {
	Node guard.Pipeline
	API  guard.Pipeline
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc Services, guards Guards) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	// Открытые запросы узлов
	r.Get("/{tool_id:[0-9]+}/status/", status.New(logger, svc.State).ServeHTTP)
	r.Get("/{tool_id:[0-9]+}/is_tool_in_use", isinuse.New(logger, svc.State).ServeHTTP)

	// Запросы узлов, требующие секрета
	r.Group(func(r chi.Router) {
		r.Use(guards.Node.Middleware)
		r.Get("/{tool_id:[0-9]+}/card/{card_id}", card.New(logger, svc.Resolver).ServeHTTP)
		r.Post("/{tool_id:[0-9]+}/grant-to-card/{to_card_id}/by-card/{by_card_id}", granttocard.New(logger, svc.Delegation).ServeHTTP)
		r.Post("/{tool_id:[0-9]+}/status/{status}/by/{card_id}", settoolstatus.New(logger, svc.State).ServeHTTP)
		r.Post("/{tool_id:[0-9]+}/tooluse/{status}/{card_id}", settooluse.New(logger, svc.State).ServeHTTP)
		r.Post("/{tool_id:[0-9]+}/tooluse/time/for/{card_id}/{duration}", settoolusetime.New(logger, svc.State).ServeHTTP)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(guards.API.Middleware)
		r.Get("/get_tools_status", toolsstatus.New(logger, svc.Summary).ServeHTTP)
		r.Get("/get_tools_summary_for_user/{user_id}", usersummary.New(logger, svc.Summary).ServeHTTP)
		r.Get("/get_tool_log/{tool_id:[0-9]+}", toollog.New(logger, svc.Summary).ServeHTTP)
	})

	r.Get("/healthz", health.New(logger, svc.DB, svc.Cache).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

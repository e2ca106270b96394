package http

import (
	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	handler "panda-menu/internal/adapter/handler/http"
)

// RegisterRoutes sets up the menu routes, health check and, when gatherer is set, metrics.
func RegisterRoutes(r *router.Router, h *handler.MenuHandler, gatherer prometheus.Gatherer, logger *zap.Logger) {
	logger.Info("Setting up application-specific routes...")

	r.GET("/menu", h.GetMenu)
	r.POST("/menu/retry", h.Retry)
	r.GET("/menu/host", h.GetHostConfig)
	r.GET("/networks/{networkKey}/services", h.GetNetworkServices)

	logger.Info("Setting up health check route...")
	r.GET("/health", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("OK")
	})

	if gatherer != nil {
		logger.Info("Setting up metrics route...")
		r.GET("/metrics", fasthttpadaptor.NewFastHTTPHandler(
			promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		))
	}

	logger.Info("All routes registered.")
}

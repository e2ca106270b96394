package http

import (
	"testing"

	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	handler "panda-menu/internal/adapter/handler/http"
	"panda-menu/internal/config"
	"panda-menu/internal/domain/hoststyle"
)

func serve(h fasthttp.RequestHandler, method, uri string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)

	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	h(&ctx)
	return &ctx
}

func TestRegisterRoutes(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_total", Help: "probe"}))

	h := handler.NewMenuHandler(nil, hoststyle.DefaultRules(), hoststyle.VariantButton, config.Config{}, zap.NewNop())
	r := router.New()
	RegisterRoutes(r, h, reg, zap.NewNop())

	ctx := serve(r.Handler, fasthttp.MethodGet, "/health")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "OK", string(ctx.Response.Body()))

	ctx = serve(r.Handler, fasthttp.MethodGet, "/metrics")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "probe_total")

	ctx = serve(r.Handler, fasthttp.MethodGet, "/menu/host?url=https://ethstats.holesky.ethpandaops.io/")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), `"theme":"dark"`)

	ctx = serve(r.Handler, fasthttp.MethodGet, "/menu/retry")
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
}

func TestRegisterRoutes_NoMetrics(t *testing.T) {
	h := handler.NewMenuHandler(nil, nil, hoststyle.VariantButton, config.Config{}, zap.NewNop())
	r := router.New()
	RegisterRoutes(r, h, nil, zap.NewNop())

	ctx := serve(r.Handler, fasthttp.MethodGet, "/metrics")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestRecover(t *testing.T) {
	boom := func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString("partial")
		panic("boom")
	}

	ctx := serve(Logging(zap.NewNop())(Recover(zap.NewNop())(boom)), fasthttp.MethodGet, "/")
	assert.Equal(t, fasthttp.StatusInternalServerError, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"error":"internal system error"}`, string(ctx.Response.Body()))
}

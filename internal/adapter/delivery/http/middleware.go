package http

import (
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Logging logs every request before handing it to next.
func Logging(logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			logger.Info("Request received",
				zap.ByteString("method", ctx.Method()),
				zap.ByteString("uri", ctx.RequestURI()))
			next(ctx)
		}
	}
}

// Recover turns a panicking handler into a 500 response.
func Recover(logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Handler panicked",
						zap.Any("panic", r),
						zap.ByteString("uri", ctx.RequestURI()))
					ctx.Error(`{"error":"internal system error"}`, fasthttp.StatusInternalServerError)
					ctx.SetContentType("application/json")
				}
			}()
			next(ctx)
		}
	}
}

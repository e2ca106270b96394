package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"panda-menu/internal/application/port"
	"panda-menu/internal/config"
	"panda-menu/internal/domain"
	"panda-menu/internal/domain/entity"
	"panda-menu/internal/domain/hoststyle"
	"panda-menu/internal/domain/theme"
	"panda-menu/internal/pkg/apperrors"
)

type MenuHandler struct {
	menu        port.MenuService
	hostRules   hoststyle.Rules
	variant     hoststyle.Variant
	links       []config.LinkItem
	waitTimeout time.Duration
	logger      *zap.Logger
}

func NewMenuHandler(
	menu port.MenuService,
	hostRules hoststyle.Rules,
	variant hoststyle.Variant,
	cfg config.Config,
	logger *zap.Logger,
) *MenuHandler {
	return &MenuHandler{
		menu:        menu,
		hostRules:   hostRules,
		variant:     variant,
		links:       cfg.Menu.Links,
		waitTimeout: cfg.Server.WaitTimeout,
		logger:      logger.Named("MenuHandler"),
	}
}

// GetMenu opens the menu for the caller's page and returns the resolved contract.
func (h *MenuHandler) GetMenu(ctx *fasthttp.RequestCtx) {
	page, ok, err := pageLocation(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	if !ok {
		h.writeError(ctx, fmt.Errorf("%w: url query or Referer header is required", domain.ErrInvalidPageURL))
		return
	}

	h.menu.Open(ctx)

	if ctx.QueryArgs().GetBool("wait") {
		// The request context must not outlive the handler, so the wait is not derived from it.
		waitCtx, cancel := context.WithTimeout(context.Background(), h.waitTimeout)
		err := h.menu.Await(waitCtx)
		cancel()
		if err != nil {
			h.logger.Debug("Registry still loading after wait", zap.Error(err))
		}
	}

	state := h.menu.Snapshot(ctx, page)
	resp := menuResponse{
		Loading:         state.Loading,
		State:           h.menu.State(ctx).String(),
		CurrentLocation: state.CurrentLocation,
		Categories:      toCategoryViews(state.SortedCategories, state.CurrentLocation, page),
		LastUpdate:      state.LastUpdate,
		Links:           toLinkViews(h.links),
	}
	if state.Error != "" {
		resp.Error = &state.Error
	}

	h.writeJSON(ctx, fasthttp.StatusOK, resp)
}

// Retry discards the cached registry and the last error.
func (h *MenuHandler) Retry(ctx *fasthttp.RequestCtx) {
	h.menu.Retry(ctx)
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

// GetHostConfig returns the presentation settings for the caller's page host.
func (h *MenuHandler) GetHostConfig(ctx *fasthttp.RequestCtx) {
	page, ok, err := pageLocation(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	if !ok {
		h.writeError(ctx, fmt.Errorf("%w: url query or Referer header is required", domain.ErrInvalidPageURL))
		return
	}

	args := ctx.QueryArgs()
	host := h.hostRules.Resolve(page.Hostname)
	signals := theme.Signals{
		DataTheme:   string(args.Peek("dataTheme")),
		DataBsTheme: string(args.Peek("dataBsTheme")),
		Classes:     theme.SplitClasses(string(args.Peek("htmlClass"))),
		PrefersDark: args.GetBool("prefersDark"),
	}

	h.writeJSON(ctx, fasthttp.StatusOK, hostResponse{
		Hostname: page.Hostname,
		Variant:  hoststyle.PresentationFor(h.variant, host),
		Theme:    theme.Detect(host.DefaultColorMode, signals),
		Host:     host,
	})
}

// GetNetworkServices returns the resolved services of one active network.
func (h *MenuHandler) GetNetworkServices(ctx *fasthttp.RequestCtx) {
	networkKey, ok := ctx.UserValue("networkKey").(string)
	if !ok || networkKey == "" {
		h.writeError(ctx, fmt.Errorf("%w: networkKey is required", apperrors.ErrInvalidInput))
		return
	}

	page, hasPage, err := pageLocation(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	network, err := h.menu.ActiveNetwork(ctx, networkKey)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	var current entity.CurrentLocation
	if hasPage {
		current = h.menu.Locate(ctx, page)
	}
	h.writeJSON(ctx, fasthttp.StatusOK, toNetworkView(networkKey, network, current, page))
}

// pageLocation reads the page from the url query argument, falling back to Referer.
// ok is false when neither is present.
func pageLocation(ctx *fasthttp.RequestCtx) (entity.PageLocation, bool, error) {
	raw := string(ctx.QueryArgs().Peek("url"))
	if raw == "" {
		raw = string(ctx.Request.Header.Referer())
	}
	if raw == "" {
		return entity.PageLocation{}, false, nil
	}

	page, err := entity.NewPageLocation(raw)
	if err != nil {
		return entity.PageLocation{}, false, fmt.Errorf("%w: %v", domain.ErrInvalidPageURL, err)
	}
	return page, true, nil
}

func (h *MenuHandler) writeError(ctx *fasthttp.RequestCtx, err error) {
	status := statusFor(err)
	if status >= fasthttp.StatusInternalServerError {
		h.logger.Error("Request failed", zap.ByteString("uri", ctx.RequestURI()), zap.Error(err))
	} else {
		h.logger.Debug("Request rejected", zap.ByteString("uri", ctx.RequestURI()), zap.Int("status", status), zap.Error(err))
	}
	h.writeJSON(ctx, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidPageURL), errors.Is(err, apperrors.ErrInvalidInput):
		return fasthttp.StatusBadRequest
	case errors.Is(err, domain.ErrNetworkNotFound), errors.Is(err, domain.ErrRegistryNotLoaded):
		return fasthttp.StatusNotFound
	case errors.Is(err, apperrors.ErrTimeout):
		return fasthttp.StatusGatewayTimeout
	default:
		return fasthttp.StatusInternalServerError
	}
}

func (h *MenuHandler) writeJSON(ctx *fasthttp.RequestCtx, status int, body any) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	if err := json.NewEncoder(ctx).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	dto "panda-menu/internal/adapter/storage/registry/dto"
	"panda-menu/internal/config"
	"panda-menu/internal/domain/entity"
	domainRepo "panda-menu/internal/domain/repository"
	"panda-menu/internal/domain/service"
	"panda-menu/internal/pkg/apperrors"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.RegistryRepository = (*Repository)(nil)

// Repository implements RegistryRepository by fetching the registry document over HTTP.
type Repository struct {
	fetcher     service.Fetcher
	url         string
	timeout     time.Duration
	maxBodySize int
	logger      *zap.Logger
}

// NewRepository creates a registry repository reading from the configured URL through fetcher.
func NewRepository(cfg config.RegistryConfig, fetcher service.Fetcher, logger *zap.Logger) *Repository {
	return &Repository{
		fetcher:     fetcher,
		url:         cfg.URL,
		timeout:     cfg.GetTimeout(),
		maxBodySize: cfg.GetMaxBodySize(),
		logger:      logger.Named("RegistryStorage"),
	}
}

// FetchRegistry downloads and decodes the registry document.
func (r *Repository) FetchRegistry(ctx context.Context) (*entity.Registry, error) {
	r.logger.Debug("Fetching registry", zap.String("url", r.url))

	resp, err := r.fetcher.Fetch(ctx, r.url, r.timeout)
	if err != nil {
		r.logger.Error("Failed to execute request to registry", zap.Error(err))
		return nil, fmt.Errorf("%w: failed to fetch networks: %v", apperrors.ErrExternalServiceFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.logger.Error("Registry returned non-success status",
			zap.Int("statusCode", resp.StatusCode),
			zap.ByteString("body", resp.Body[:min(256, len(resp.Body))]),
		)
		return nil, fmt.Errorf("%w: failed to fetch networks: registry returned status %d",
			apperrors.ErrExternalServiceFailure, resp.StatusCode,
		)
	}

	body := resp.Body
	if bytes.EqualFold([]byte(resp.ContentEncoding), []byte("gzip")) {
		r.logger.Debug("Received gzipped registry response")
		body, err = gunzipLimited(resp.Body, r.maxBodySize)
		if err != nil {
			r.logger.Error("Failed to gunzip registry response body", zap.Error(err))
			return nil, fmt.Errorf("%w: failed to decompress registry response: %v",
				apperrors.ErrExternalServiceFailure, err,
			)
		}
	}

	var raw dto.RegistryRaw
	if err := json.Unmarshal(body, &raw); err != nil {
		r.logger.Error("Failed to unmarshal registry response",
			zap.Error(err), zap.ByteString("bodySample", body[:min(1024, len(body))]),
		)
		return nil, fmt.Errorf("%w: failed to parse registry response: %v",
			apperrors.ErrExternalServiceFailure, err,
		)
	}

	if raw.Networks == nil {
		r.logger.Error("Registry response has no networks", zap.ByteString("bodySample", body[:min(1024, len(body))]))
		return nil, fmt.Errorf("%w: failed to parse registry response: missing networks",
			apperrors.ErrExternalServiceFailure,
		)
	}

	registry := toDomainRegistry(&raw, r.logger)
	r.logger.Info("Fetched registry",
		zap.Int("networks", len(registry.Networks)),
		zap.Int("categories", len(registry.Metadata)),
		zap.String("lastUpdate", registry.LastUpdate),
	)

	return registry, nil
}

// gunzipLimited inflates data and fails once the output exceeds limit bytes.
func gunzipLimited(data []byte, limit int) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	body, err := io.ReadAll(io.LimitReader(zr, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if len(body) > limit {
		return nil, fmt.Errorf("inflated body exceeds %d bytes", limit)
	}
	return body, nil
}

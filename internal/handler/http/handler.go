package http

import (
	"strings"
	"time"

	"github.com/MKhiriev/go-tool-access/internal/config"
	"github.com/MKhiriev/go-tool-access/internal/logger"
	"github.com/MKhiriev/go-tool-access/internal/service"
)

type Handler struct {
	services *service.Services

	// baseURL is the public origin used for post-login redirects.
	baseURL        string
	secureCookies  bool
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, app config.App, server config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		baseURL:        strings.TrimRight(app.BaseURL, "/"),
		secureCookies:  server.SecureCookies,
		requestTimeout: server.RequestTimeout,
		logger:         logger,
	}
}

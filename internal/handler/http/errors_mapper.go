package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-tool-access/internal/service"
	"github.com/MKhiriev/go-tool-access/internal/store"
)

var errorStatusMap = map[error]int{
	ErrNoCredentials:              http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrInvalidJSON:                http.StatusBadRequest,

	service.ErrInvalidDataProvided:   http.StatusBadRequest,
	service.ErrInvalidCheckoutRef:    http.StatusBadRequest,
	service.ErrInvalidOrExpiredToken: http.StatusUnauthorized,
	service.ErrInvalidSession:        http.StatusUnauthorized,
	service.ErrInvalidServiceToken:   http.StatusUnauthorized,
	service.ErrMagicLinkNotSent:      http.StatusBadGateway,
	service.ErrTokenGenerationFailed: http.StatusInternalServerError,
	service.ErrStorageFailure:        http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

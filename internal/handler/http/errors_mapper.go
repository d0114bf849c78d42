package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-sync-ledger/internal/service"
	"github.com/MKhiriev/go-sync-ledger/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrUnknownOperationType: http.StatusBadRequest,

	store.ErrEntityNotFound:        http.StatusNotFound,
	store.ErrEntityVersionConflict: http.StatusConflict,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

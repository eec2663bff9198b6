package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sava-app/sava/internal/domain"
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// kindStatus maps the pipeline error taxonomy to view-facing HTTP statuses.
func kindStatus(kind domain.Kind) int {
	switch kind {
	case domain.KindEmptyInput, domain.KindMalformedURL, domain.KindInvalidRequest:
		return http.StatusBadRequest
	case domain.KindDuplicateRecord:
		return http.StatusConflict
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindTimeout:
		return http.StatusGatewayTimeout
	case domain.KindNetworkFailure:
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders a classified pipeline error as a single human-readable
// message tied to the failed action.
func writeError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	detail := ""
	var de *domain.Error
	if errors.As(err, &de) {
		detail = de.Detail
	}
	writeJSON(w, kindStatus(kind), errorResponse{Error: string(kind), Detail: detail})
}

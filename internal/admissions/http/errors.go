package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/admissions/internal/admissions/service"
	"github.com/aussiebroadwan/admissions/pkg/admissionsdk"
	"github.com/aussiebroadwan/admissions/pkg/httpx"
	"github.com/aussiebroadwan/admissions/pkg/slogx"
)

// writeServiceError maps service errors onto the wire contract. Absence and
// soft-deletion are indistinguishable 404s; tenant mismatch and policy
// denial are indistinguishable 403s.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		details := make([]admissionsdk.FieldError, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			details = append(details, admissionsdk.FieldError{Field: f.Field, Message: f.Message})
		}
		httpx.WriteJSON(w, http.StatusBadRequest, admissionsdk.ErrorResponse{
			Error:            "validation_failed",
			ErrorDescription: "One or more request fields are invalid",
			Details:          details,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrLeadNotFound),
		errors.Is(err, service.ErrApplicationNotFound),
		errors.Is(err, service.ErrTaskNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, admissionsdk.ErrorResponse{
			Error:            "not_found",
			ErrorDescription: "The requested resource does not exist",
		})
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteJSON(w, http.StatusForbidden, admissionsdk.ErrorResponse{
			Error:            "forbidden",
			ErrorDescription: "You are not allowed to perform this action",
		})
	case errors.Is(err, service.ErrInvalidTransition):
		httpx.WriteJSON(w, http.StatusConflict, admissionsdk.ErrorResponse{
			Error:            "invalid_transition",
			ErrorDescription: "The requested status change is not permitted",
		})
	default:
		slogx.FromContext(ctx).Error("request failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, admissionsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "An unexpected error occurred",
		})
	}
}

func writeInvalidJSON(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusBadRequest, admissionsdk.ErrorResponse{
		Error:            "invalid_request",
		ErrorDescription: "Invalid JSON body",
	})
}

func writeTenantUnresolvable(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusBadRequest, admissionsdk.ErrorResponse{
		Error:            "invalid_request",
		ErrorDescription: "Credential does not resolve to a tenant",
	})
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/admissions/internal/admissions/service"
	"github.com/aussiebroadwan/admissions/pkg/admissionsdk"
	"github.com/aussiebroadwan/admissions/pkg/httpx"
)

type ApplicationsHandler struct {
	ApplicationService *service.ApplicationService
}

// HandleCreate godoc
//
//	@Summary		Create Application Endpoint
//	@Description	Open an application under a lead. The application inherits the lead's tenant; access is governed by the lead's ownership.
//	@Tags			Applications
//	@Accept			json
//	@Produce		json
//	@Param			request	body		admissionsdk.CreateApplicationRequest	true	"Application to create"
//	@Success		201		{object}	admissionsdk.CreateApplicationResponse	"success, application_id"
//	@Failure		400		{object}	admissionsdk.ErrorResponse				"validation_failed"
//	@Failure		403		{object}	admissionsdk.ErrorResponse				"forbidden"
//	@Failure		404		{object}	admissionsdk.ErrorResponse				"lead not found"
//	@Security		BearerAuth
//	@Router			/v1/applications [post].
func (h *ApplicationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req admissionsdk.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w)
		return
	}

	actor, ok := actorFromContext(ctx)
	if !ok {
		writeTenantUnresolvable(w)
		return
	}

	app, err := h.ApplicationService.CreateApplication(ctx, actor, service.CreateApplicationRequest{
		LeadID: req.LeadID,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, admissionsdk.CreateApplicationResponse{
		Success:       true,
		ApplicationID: app.ID,
	})
}

// HandleList godoc
//
//	@Summary		List Applications Endpoint
//	@Description	List the applications the caller may read. Soft-deleted rows never appear.
//	@Tags			Applications
//	@Produce		json
//	@Success		200	{object}	admissionsdk.ListApplicationsResponse	"applications"
//	@Failure		500	{object}	admissionsdk.ErrorResponse				"server_error"
//	@Security		BearerAuth
//	@Router			/v1/applications [get].
func (h *ApplicationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(ctx)
	if !ok {
		writeTenantUnresolvable(w)
		return
	}

	apps, err := h.ApplicationService.ListApplications(ctx, actor)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, admissionsdk.ListApplicationsResponse{
		Applications: applicationDTOs(apps),
	})
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/admissions/internal/admissions/domain"
	"github.com/aussiebroadwan/admissions/internal/admissions/service"
	"github.com/aussiebroadwan/admissions/pkg/admissionsdk"
	"github.com/aussiebroadwan/admissions/pkg/httpx"
)

type LeadsHandler struct {
	LeadService *service.LeadService
}

// HandleCreate godoc
//
//	@Summary		Create Lead Endpoint
//	@Description	Open a new lead in the caller's tenant at the start of the funnel. Ownership and team sharing are optional.
//	@Tags			Leads
//	@Accept			json
//	@Produce		json
//	@Param			request	body		admissionsdk.CreateLeadRequest	true	"Lead to create"
//	@Success		201		{object}	admissionsdk.CreateLeadResponse	"success, lead_id"
//	@Failure		400		{object}	admissionsdk.ErrorResponse		"validation_failed"
//	@Failure		403		{object}	admissionsdk.ErrorResponse		"forbidden"
//	@Security		BearerAuth
//	@Router			/v1/leads [post].
func (h *LeadsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req admissionsdk.CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w)
		return
	}

	actor, ok := actorFromContext(ctx)
	if !ok {
		writeTenantUnresolvable(w)
		return
	}

	lead, err := h.LeadService.CreateLead(ctx, actor, service.CreateLeadRequest{
		OwnerID: req.OwnerID,
		TeamID:  req.TeamID,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, admissionsdk.CreateLeadResponse{
		Success: true,
		LeadID:  lead.ID,
	})
}

// HandleList godoc
//
//	@Summary		List Leads Endpoint
//	@Description	List the leads the caller may read. Soft-deleted leads never appear.
//	@Tags			Leads
//	@Produce		json
//	@Success		200	{object}	admissionsdk.ListLeadsResponse	"leads"
//	@Failure		500	{object}	admissionsdk.ErrorResponse		"server_error"
//	@Security		BearerAuth
//	@Router			/v1/leads [get].
func (h *LeadsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(ctx)
	if !ok {
		writeTenantUnresolvable(w)
		return
	}

	leads, err := h.LeadService.ListLeads(ctx, actor)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, admissionsdk.ListLeadsResponse{Leads: leadDTOs(leads)})
}

// HandleStage godoc
//
//	@Summary		Update Lead Stage Endpoint
//	@Description	Move a lead to a new funnel stage.
//	@Tags			Leads
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Lead id"
//	@Param			request	body		admissionsdk.UpdateLeadStageRequest	true	"Target stage"
//	@Success		200		{object}	admissionsdk.LeadResponse			"success, lead"
//	@Failure		400		{object}	admissionsdk.ErrorResponse			"validation_failed"
//	@Failure		403		{object}	admissionsdk.ErrorResponse			"forbidden"
//	@Failure		404		{object}	admissionsdk.ErrorResponse			"lead not found"
//	@Security		BearerAuth
//	@Router			/v1/leads/{id}/stage [post].
func (h *LeadsHandler) HandleStage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req admissionsdk.UpdateLeadStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w)
		return
	}

	actor, ok := actorFromContext(ctx)
	if !ok {
		writeTenantUnresolvable(w)
		return
	}

	lead, err := h.LeadService.UpdateLeadStage(ctx, actor, r.PathValue("id"), domain.LeadStage(req.Stage))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, admissionsdk.LeadResponse{
		Success: true,
		Lead:    leadDTO(lead),
	})
}

// HandleDelete godoc
//
//	@Summary		Delete Lead Endpoint
//	@Description	Soft delete a lead together with its applications and tasks. The whole subtree disappears from reads atomically; nothing is physically removed.
//	@Tags			Leads
//	@Produce		json
//	@Param			id	path	string	true	"Lead id"
//	@Success		204	"deleted"
//	@Failure		403	{object}	admissionsdk.ErrorResponse	"forbidden"
//	@Failure		404	{object}	admissionsdk.ErrorResponse	"lead not found"
//	@Security		BearerAuth
//	@Router			/v1/leads/{id} [delete].
func (h *LeadsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(ctx)
	if !ok {
		writeTenantUnresolvable(w)
		return
	}

	if err := h.LeadService.DeleteLead(ctx, actor, r.PathValue("id")); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

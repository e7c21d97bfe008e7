package admissionsdk

import (
	"context"
	"net/http"
)

// CreateLead opens a new lead at the start of the funnel.
func (c *Client) CreateLead(ctx context.Context, req CreateLeadRequest) (*CreateLeadResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/leads", req)
	if err != nil {
		return nil, err
	}

	var out CreateLeadResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListLeads lists the leads visible to the caller.
func (c *Client) ListLeads(ctx context.Context) (*ListLeadsResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/v1/leads", nil)
	if err != nil {
		return nil, err
	}

	var out ListLeadsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateLeadStage moves a lead to a new funnel stage.
func (c *Client) UpdateLeadStage(ctx context.Context, leadID, stage string) (*LeadResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/leads/"+leadID+"/stage",
		UpdateLeadStageRequest{Stage: stage})
	if err != nil {
		return nil, err
	}

	var out LeadResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteLead soft deletes a lead together with its applications and tasks.
func (c *Client) DeleteLead(ctx context.Context, leadID string) error {
	resp, err := c.doJSON(ctx, http.MethodDelete, "/v1/leads/"+leadID, nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusNoContent)
}

// CreateApplication opens an application under a lead.
func (c *Client) CreateApplication(ctx context.Context, req CreateApplicationRequest) (*CreateApplicationResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/applications", req)
	if err != nil {
		return nil, err
	}

	var out CreateApplicationResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListApplications lists the applications visible to the caller.
func (c *Client) ListApplications(ctx context.Context) (*ListApplicationsResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/v1/applications", nil)
	if err != nil {
		return nil, err
	}

	var out ListApplicationsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

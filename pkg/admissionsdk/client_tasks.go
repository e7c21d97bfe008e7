package admissionsdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// CreateTask creates a follow-up task on an application.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*CreateTaskResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/tasks", req)
	if err != nil {
		return nil, err
	}

	var out CreateTaskResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTasks lists the tasks visible to the caller.
func (c *Client) ListTasks(ctx context.Context) (*ListTasksResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/v1/tasks", nil)
	if err != nil {
		return nil, err
	}

	var out ListTasksResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTasksDueBefore lists the caller's open tasks due before the cutoff.
func (c *Client) ListTasksDueBefore(ctx context.Context, cutoff time.Time) (*ListTasksResponse, error) {
	q := url.Values{}
	q.Set("due_before", cutoff.Format(time.RFC3339))

	resp, err := c.doJSON(ctx, http.MethodGet, "/v1/tasks?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var out ListTasksResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTaskStatus moves a task through its status state machine.
func (c *Client) UpdateTaskStatus(ctx context.Context, taskID, status string) (*TaskResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/tasks/"+taskID+"/status",
		UpdateTaskStatusRequest{Status: status})
	if err != nil {
		return nil, err
	}

	var out TaskResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

package admissionsdk

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	// Success is always false on errors.
	Success bool `json:"success"`

	// Error is the stable error kind (e.g. "validation_failed", "not_found",
	// "forbidden", "server_error").
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error.
	ErrorDescription string `json:"error_description,omitempty"`

	// Details carries field-level errors, populated only for
	// "validation_failed".
	Details []FieldError `json:"details,omitempty"`
}

// FieldError names a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CreateTaskRequest is the body of POST /v1/tasks.
type CreateTaskRequest struct {
	// ApplicationID of the application the task belongs to. Required.
	ApplicationID string `json:"application_id"`

	// TaskType is one of "call", "email", "review". Required.
	TaskType string `json:"task_type"`

	// DueAt is an RFC3339 timestamp strictly in the future. Required.
	DueAt string `json:"due_at"`

	// Title defaults to "<task_type> task" when empty.
	Title string `json:"title,omitempty"`

	Description string `json:"description,omitempty"`

	// Priority is one of "low", "medium", "high"; defaults to "medium".
	Priority string `json:"priority,omitempty"`

	// AssignedTo is the actor id responsible for the task.
	AssignedTo *string `json:"assigned_to,omitempty"`
}

// CreateTaskResponse is the body of a successful POST /v1/tasks.
type CreateTaskResponse struct {
	Success bool   `json:"success"`
	TaskID  string `json:"task_id"`
}

// Task is the wire representation of a task.
type Task struct {
	ID            string  `json:"id"`
	TenantID      string  `json:"tenant_id"`
	ApplicationID string  `json:"application_id"`
	TaskType      string  `json:"task_type"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	Priority      string  `json:"priority"`
	DueAt         string  `json:"due_at"`
	Status        string  `json:"status"`
	AssignedTo    *string `json:"assigned_to,omitempty"`
	CompletedAt   *string `json:"completed_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// Lead is the wire representation of a lead.
type Lead struct {
	ID       string  `json:"id"`
	TenantID string  `json:"tenant_id"`
	OwnerID  *string `json:"owner_id,omitempty"`
	TeamID   *string `json:"team_id,omitempty"`
	Stage    string  `json:"stage"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Application is the wire representation of an application.
type Application struct {
	ID            string `json:"id"`
	TenantID      string `json:"tenant_id"`
	LeadID        string `json:"lead_id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ListLeadsResponse is the body of GET /v1/leads.
type ListLeadsResponse struct {
	Leads []Lead `json:"leads"`
}

// ListApplicationsResponse is the body of GET /v1/applications.
type ListApplicationsResponse struct {
	Applications []Application `json:"applications"`
}

// ListTasksResponse is the body of GET /v1/tasks.
type ListTasksResponse struct {
	Tasks []Task `json:"tasks"`
}

// CreateLeadRequest is the body of POST /v1/leads.
type CreateLeadRequest struct {
	OwnerID *string `json:"owner_id,omitempty"`
	TeamID  *string `json:"team_id,omitempty"`
}

// CreateLeadResponse is the body of a successful POST /v1/leads.
type CreateLeadResponse struct {
	Success bool   `json:"success"`
	LeadID  string `json:"lead_id"`
}

// CreateApplicationRequest is the body of POST /v1/applications.
type CreateApplicationRequest struct {
	LeadID string `json:"lead_id"`
}

// CreateApplicationResponse is the body of a successful POST
// /v1/applications.
type CreateApplicationResponse struct {
	Success       bool   `json:"success"`
	ApplicationID string `json:"application_id"`
}

// UpdateTaskStatusRequest is the body of POST /v1/tasks/{id}/status.
type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

// UpdateLeadStageRequest is the body of POST /v1/leads/{id}/stage.
type UpdateLeadStageRequest struct {
	Stage string `json:"stage"`
}

// TaskResponse wraps a single task.
type TaskResponse struct {
	Success bool `json:"success"`
	Task    Task `json:"task"`
}

// LeadResponse wraps a single lead.
type LeadResponse struct {
	Success bool `json:"success"`
	Lead    Lead `json:"lead"`
}

// HealthChecks reports per-dependency health on the readiness endpoint.
type HealthChecks struct {
	Database  string `json:"database"`
	Verifier  string `json:"verifier"`
	Broadcast string `json:"broadcast,omitempty"`
}

// HealthResponse is the body of GET /livez and GET /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aussiebroadwan/admissions/internal/admissions/domain"
	"github.com/aussiebroadwan/admissions/internal/admissions/service"
	"github.com/aussiebroadwan/admissions/pkg/admissionsdk"
	"github.com/aussiebroadwan/admissions/pkg/httpx"
)

type TasksHandler struct {
	TaskService *service.TaskService
}

// HandleCreate godoc
//
//	@Summary		Create Task Endpoint
//	@Description	Create a follow-up task on an application. The task starts in the "pending" status; title and priority default when omitted.
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			request	body		admissionsdk.CreateTaskRequest	true	"Task to create"
//	@Success		201		{object}	admissionsdk.CreateTaskResponse	"success, task_id"
//	@Failure		400		{object}	admissionsdk.ErrorResponse		"validation_failed with field details"
//	@Failure		403		{object}	admissionsdk.ErrorResponse		"forbidden"
//	@Failure		404		{object}	admissionsdk.ErrorResponse		"application not found"
//	@Failure		500		{object}	admissionsdk.ErrorResponse		"server_error"
//	@Security		BearerAuth
//	@Router			/v1/tasks [post].
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req admissionsdk.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w)
		return
	}

	actor, ok := actorFromContext(ctx)
	if !ok {
		writeTenantUnresolvable(w)
		return
	}

	task, err := h.TaskService.CreateTask(ctx, actor, service.CreateTaskRequest{
		ApplicationID: req.ApplicationID,
		Type:          req.TaskType,
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		DueAt:         req.DueAt,
		AssignedTo:    req.AssignedTo,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, admissionsdk.CreateTaskResponse{
		Success: true,
		TaskID:  task.ID,
	})
}

// HandleList godoc
//
//	@Summary		List Tasks Endpoint
//	@Description	List the tasks the caller may read. Pass due_before (RFC3339) to narrow to open tasks due before the cutoff, ordered by due date.
//	@Tags			Tasks
//	@Produce		json
//	@Param			due_before	query		string	false	"RFC3339 cutoff for a due-window read"
//	@Success		200			{object}	admissionsdk.ListTasksResponse	"tasks"
//	@Failure		400			{object}	admissionsdk.ErrorResponse		"invalid due_before"
//	@Failure		500			{object}	admissionsdk.ErrorResponse		"server_error"
//	@Security		BearerAuth
//	@Router			/v1/tasks [get].
func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(ctx)
	if !ok {
		writeTenantUnresolvable(w)
		return
	}

	var (
		tasks []domain.Task
		err   error
	)
	if raw := r.URL.Query().Get("due_before"); raw != "" {
		cutoff, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			httpx.WriteJSON(w, http.StatusBadRequest, admissionsdk.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "due_before must be a valid RFC3339 timestamp",
			})
			return
		}
		tasks, err = h.TaskService.ListTasksDueBefore(ctx, actor, cutoff)
	} else {
		tasks, err = h.TaskService.ListTasks(ctx, actor)
	}
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, admissionsdk.ListTasksResponse{Tasks: taskDTOs(tasks)})
}

// HandleStatus godoc
//
//	@Summary		Update Task Status Endpoint
//	@Description	Move a task through its status state machine: pending to in_progress to completed, or to cancelled from any non-terminal status.
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Task id"
//	@Param			request	body		admissionsdk.UpdateTaskStatusRequest	true	"Target status"
//	@Success		200		{object}	admissionsdk.TaskResponse			"success, task"
//	@Failure		400		{object}	admissionsdk.ErrorResponse			"validation_failed"
//	@Failure		403		{object}	admissionsdk.ErrorResponse			"forbidden"
//	@Failure		404		{object}	admissionsdk.ErrorResponse			"task not found"
//	@Failure		409		{object}	admissionsdk.ErrorResponse			"invalid_transition"
//	@Security		BearerAuth
//	@Router			/v1/tasks/{id}/status [post].
func (h *TasksHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req admissionsdk.UpdateTaskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w)
		return
	}

	actor, ok := actorFromContext(ctx)
	if !ok {
		writeTenantUnresolvable(w)
		return
	}

	task, err := h.TaskService.UpdateTaskStatus(ctx, actor, r.PathValue("id"), domain.TaskStatus(req.Status))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, admissionsdk.TaskResponse{
		Success: true,
		Task:    taskDTO(task),
	})
}

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"dateTracker/internal/handlers/dto"
	"dateTracker/internal/logger"
	"dateTracker/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type TaskHandler struct {
	TaskService TaskService
	metrics     TaskRecorder
	development bool
}

func NewTaskHandler(taskService TaskService, metrics TaskRecorder, development bool) *TaskHandler {
	return &TaskHandler{
		TaskService: taskService,
		metrics:     metrics,
		development: development,
	}
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	tasks, err := h.TaskService.ListTasks(r.Context())
	if err != nil {
		handleServiceError(w, r, err, h.development)
		return
	}

	logger.Info("HTTP: tasks listed",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)))

	respondSuccess(w, http.StatusOK,
		toPayload("data", tasks),
		toPayload("count", len(tasks)),
	)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	t, err := h.TaskService.GetTask(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, h.development)
		return
	}

	respondSuccess(w, http.StatusOK, toPayload("data", t))
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: unsupported content type",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("request_id", middleware.GetRequestID(r.Context())))

		respondFailure(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.CreateTaskRequest
	if !h.decode(w, r, &request) {
		return
	}

	if err := validate.Struct(request); err != nil {
		respondValidation(w, validationDetails(err)...)
		return
	}

	t, err := h.TaskService.CreateTask(r.Context(), request.Name, request.Description, request.Completed())
	if err != nil {
		handleServiceError(w, r, err, h.development)
		return
	}
	h.record("create")

	respondSuccess(w, http.StatusCreated,
		toPayload("data", t),
		toPayload("message", "Task created successfully"),
	)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	var request dto.UpdateTaskRequest
	if !h.decode(w, r, &request) {
		return
	}

	if request.Name != nil {
		if details := checkField("name", *request.Name, nameRules); details != nil {
			respondValidation(w, details...)
			return
		}
	}

	t, err := h.TaskService.UpdateTask(r.Context(), id, request.Options()...)
	if err != nil {
		handleServiceError(w, r, err, h.development)
		return
	}
	h.record("update")

	respondSuccess(w, http.StatusOK,
		toPayload("data", t),
		toPayload("message", "Task updated successfully"),
	)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), id); err != nil {
		handleServiceError(w, r, err, h.development)
		return
	}
	h.record("delete")

	respondSuccess(w, http.StatusOK, toPayload("message", "Task deleted successfully"))
}

// decode reads a JSON body into dst and answers 400 itself on failure.
func (h *TaskHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil {
		return true
	}

	logger.Warn("HTTP: failed to decode JSON body",
		zap.Error(err),
		zap.String("request_id", middleware.GetRequestID(r.Context())))

	message := "Invalid JSON body"
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		message = "Request body is required"
	case errors.As(err, &maxErr):
		message = "Request body is too large"
	}
	respondFailure(w, http.StatusBadRequest, message)
	return false
}

func (h *TaskHandler) notFound(w http.ResponseWriter, r *http.Request) {
	logger.Info("HTTP: task id does not name a task", zap.String("id", chi.URLParam(r, "id")))
	respondFailure(w, http.StatusNotFound, "Task not found")
}

func (h *TaskHandler) record(operation string) {
	if h.metrics != nil {
		h.metrics.TaskOperation(operation)
	}
}

// taskID accepts positive base-10 ids only.
func taskID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

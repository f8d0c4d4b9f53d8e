package employee

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/transport"
	"github.com/frahmantamala/employee-directory/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateEmployee(ctx context.Context, candidate *Employee) (*Employee, error)
	GetEmployeeByID(ctx context.Context, id int64) (*Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*Employee, error)
	UpdateEmployee(ctx context.Context, id int64, details *Employee) (*Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
	SearchEmployees(ctx context.Context, criteria SearchCriteria) ([]*Employee, error)
	GetAllDepartments(ctx context.Context) ([]string, error)
	GetAllPositions(ctx context.Context) ([]string, error)
	GetEmployeeCountByDepartment(ctx context.Context, department string) (int64, error)
	EmployeeExistsByEmail(ctx context.Context, email string) (bool, error)
	GetDashboard(ctx context.Context) (*Dashboard, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	criteria, appErr := ParseSearchCriteria(r.URL.Query())
	if appErr != nil {
		h.HandleServiceError(w, appErr)
		return
	}

	ctx, cancel := h.RequestContext(r)
	defer cancel()

	employees, err := h.Service.SearchEmployees(ctx, criteria)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToEmployeesResponse(employees))
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	candidate, appErr := h.decodeEmployee(r)
	if appErr != nil {
		h.Logger.Warn("CreateEmployee: invalid request", "error", appErr.GetDetailedMessage())
		h.HandleServiceError(w, appErr)
		return
	}

	ctx, cancel := h.RequestContext(r)
	defer cancel()

	created, err := h.Service.CreateEmployee(ctx, candidate)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/employees/"+strconv.FormatInt(created.ID, 10))
	h.WriteJSON(w, http.StatusCreated, created.ToResponse())
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, appErr := parseID(r)
	if appErr != nil {
		h.HandleServiceError(w, appErr)
		return
	}

	ctx, cancel := h.RequestContext(r)
	defer cancel()

	emp, err := h.Service.GetEmployeeByID(ctx, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp.ToResponse())
}

func (h *Handler) GetEmployeeByEmail(w http.ResponseWriter, r *http.Request) {
	email, appErr := pathParam(r, "email")
	if appErr != nil {
		h.HandleServiceError(w, appErr)
		return
	}

	ctx, cancel := h.RequestContext(r)
	defer cancel()

	emp, err := h.Service.GetEmployeeByEmail(ctx, email)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp.ToResponse())
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, appErr := parseID(r)
	if appErr != nil {
		h.HandleServiceError(w, appErr)
		return
	}

	details, appErr := h.decodeEmployee(r)
	if appErr != nil {
		h.Logger.Warn("UpdateEmployee: invalid request", "employee_id", id, "error", appErr.GetDetailedMessage())
		h.HandleServiceError(w, appErr)
		return
	}

	ctx, cancel := h.RequestContext(r)
	defer cancel()

	updated, err := h.Service.UpdateEmployee(ctx, id, details)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated.ToResponse())
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, appErr := parseID(r)
	if appErr != nil {
		h.HandleServiceError(w, appErr)
		return
	}

	ctx, cancel := h.RequestContext(r)
	defer cancel()

	if err := h.Service.DeleteEmployee(ctx, id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) EmployeeExists(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		h.HandleServiceError(w, internal.NewValidationFieldError("email", "email is required", internal.ErrCodeInvalidEmail))
		return
	}

	ctx, cancel := h.RequestContext(r)
	defer cancel()

	exists, err := h.Service.EmployeeExistsByEmail(ctx, email)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, EmailExistsResponse{Email: email, Exists: exists})
}

func (h *Handler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	departments, err := h.Service.GetAllDepartments(ctx)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, DepartmentsResponse{Departments: departments})
}

func (h *Handler) GetPositions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	positions, err := h.Service.GetAllPositions(ctx)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, PositionsResponse{Positions: positions})
}

func (h *Handler) CountByDepartment(w http.ResponseWriter, r *http.Request) {
	department, appErr := pathParam(r, "department")
	if appErr != nil {
		h.HandleServiceError(w, appErr)
		return
	}

	ctx, cancel := h.RequestContext(r)
	defer cancel()

	count, err := h.Service.GetEmployeeCountByDepartment(ctx, department)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, DepartmentCountResponse{Department: department, Count: count})
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	dash, err := h.Service.GetDashboard(ctx)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dash)
}

func (h *Handler) decodeEmployee(r *http.Request) (*Employee, *internal.AppError) {
	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, internal.NewValidationError("invalid request body", internal.ErrCodeInvalidBody).WithCause(err)
	}
	if appErr := req.Validate(); appErr != nil {
		return nil, appErr
	}
	return req.ToEmployee()
}

func parseID(r *http.Request) (int64, *internal.AppError) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, internal.NewValidationFieldError("id", "id must be a positive integer", internal.ErrCodeInvalidID)
	}
	return id, nil
}

func pathParam(r *http.Request, name string) (string, *internal.AppError) {
	raw, err := url.PathUnescape(chi.URLParam(r, name))
	if err != nil || strings.TrimSpace(raw) == "" {
		return "", internal.NewValidationFieldError(name, name+" is required", internal.ErrCodeValidationFailed)
	}
	return raw, nil
}

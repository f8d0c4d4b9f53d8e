package rest

import (
	"database/sql"
	"log/slog"

	"github.com/frahmantamala/employee-directory/internal/employee"
	"github.com/frahmantamala/employee-directory/internal/transport/middleware"
	"github.com/frahmantamala/employee-directory/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, employeeHandler *employee.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Handle(swagger.SpecPath, swagger.SpecHandler())
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match the OpenAPI server url
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if employeeHandler == nil {
			return
		}

		r.Get("/dashboard", employeeHandler.GetDashboard)

		r.Route("/employees", func(er chi.Router) {
			er.Get("/", employeeHandler.ListEmployees)
			er.Post("/", employeeHandler.CreateEmployee)

			// static segments are matched before {id}
			er.Get("/exists", employeeHandler.EmployeeExists)
			er.Get("/departments", employeeHandler.GetDepartments)
			er.Get("/departments/{department}/count", employeeHandler.CountByDepartment)
			er.Get("/positions", employeeHandler.GetPositions)
			er.Get("/email/{email}", employeeHandler.GetEmployeeByEmail)

			er.Get("/{id}", employeeHandler.GetEmployee)
			er.Put("/{id}", employeeHandler.UpdateEmployee)
			er.Delete("/{id}", employeeHandler.DeleteEmployee)
		})
	})
}

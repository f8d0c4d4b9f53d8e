package employee_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/core/database"
	employeeDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-directory/internal/employee"
	employeePostgres "github.com/frahmantamala/employee-directory/internal/employee/postgres"
	"github.com/frahmantamala/employee-directory/internal/transport/rest"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm/logger"
)

type errorBody struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

var _ = Describe("Employee Handler Integration", func() {
	var (
		sqlDB  *sql.DB
		router *chi.Mux
	)

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decode := func(w *httptest.ResponseRecorder, into interface{}) {
		Expect(json.NewDecoder(w.Body).Decode(into)).To(Succeed())
	}

	requestFor := func(e *employee.Employee) map[string]interface{} {
		return map[string]interface{}{
			"first_name":   e.FirstName,
			"last_name":    e.LastName,
			"email":        e.Email,
			"phone_number": e.PhoneNumber,
			"department":   e.Department,
			"position":     e.Position,
			"hire_date":    e.HireDate.Format(employee.DateLayout),
			"salary":       e.Salary.String(),
			"status":       string(e.Status),
		}
	}

	create := func(e *employee.Employee) employee.EmployeeResponse {
		w := do(http.MethodPost, "/api/v1/employees", requestFor(e))
		Expect(w.Code).To(Equal(http.StatusCreated), w.Body.String())
		var resp employee.EmployeeResponse
		decode(w, &resp)
		return resp
	}

	BeforeEach(func() {
		var err error
		sqlDB, err = sql.Open("sqlite3", ":memory:")
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		db, err := database.NewGorm(internal.DriverSQLite, sqlDB, logger.Silent)
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&employeeDatamodel.Employee{})).To(Succeed())

		service := employee.NewService(
			employeePostgres.NewEmployeeRepository(db),
			database.NewTransactionManager(db),
			quietLogger,
		)
		handler := employee.NewHandler(service)
		handler.Logger = quietLogger

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, sqlDB, handler, quietLogger)
	})

	AfterEach(func() {
		Expect(sqlDB.Close()).To(Succeed())
	})

	It("creates an employee and reads it back", func() {
		created := create(sampleEmployees()[0])

		Expect(created.ID).To(BeNumerically(">", 0))
		Expect(created.Status).To(Equal(employee.StatusActive))
		Expect(created.StatusDisplay).To(Equal("Active"))
		Expect(created.HireDate).To(Equal("2020-01-15"))
		Expect(created.Salary.Equal(dec("75000"))).To(BeTrue())

		w := do(http.MethodGet, "/api/v1/employees/1", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		var fetched employee.EmployeeResponse
		decode(w, &fetched)
		Expect(fetched.Email).To(Equal("john.doe@company.com"))
	})

	It("answers 409 for a duplicate email", func() {
		create(sampleEmployees()[0])

		w := do(http.MethodPost, "/api/v1/employees", requestFor(sampleEmployees()[0]))

		Expect(w.Code).To(Equal(http.StatusConflict))
		var body errorBody
		decode(w, &body)
		Expect(body.Error.Code).To(Equal(string(internal.ErrCodeEmailConflict)))
		Expect(body.Error.Message).To(Equal("Employee with email john.doe@company.com already exists"))
	})

	It("answers 400 for an invalid body", func() {
		req := requestFor(sampleEmployees()[0])
		req["salary"] = "-5"
		delete(req, "first_name")

		w := do(http.MethodPost, "/api/v1/employees", req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		var body errorBody
		decode(w, &body)
		Expect(body.Error.Type).To(Equal(string(internal.ErrorTypeValidation)))
	})

	It("answers 400 for a salary outside numeric(12,2) and stores nothing", func() {
		for _, salary := range []string{"0.125", "123456789012345678.99"} {
			req := requestFor(sampleEmployees()[0])
			req["salary"] = salary

			w := do(http.MethodPost, "/api/v1/employees", req)

			Expect(w.Code).To(Equal(http.StatusBadRequest), salary)
			var body errorBody
			decode(w, &body)
			Expect(body.Error.Type).To(Equal(string(internal.ErrorTypeValidation)))
		}

		var resp employee.EmployeesResponse
		decode(do(http.MethodGet, "/api/v1/employees", nil), &resp)
		Expect(resp.Count).To(BeZero())
	})

	It("returns the stored salary exactly", func() {
		e := sampleEmployees()[0]
		e.Salary = dec("9999999999.99")

		created := create(e)

		Expect(created.Salary.String()).To(Equal("9999999999.99"))
		var fetched employee.EmployeeResponse
		decode(do(http.MethodGet, "/api/v1/employees/1", nil), &fetched)
		Expect(fetched.Salary.String()).To(Equal("9999999999.99"))
	})

	It("answers 404 for an unknown id and 400 for a malformed one", func() {
		w := do(http.MethodGet, "/api/v1/employees/99", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
		var body errorBody
		decode(w, &body)
		Expect(body.Error.Message).To(Equal("Employee not found with id: 99"))

		Expect(do(http.MethodGet, "/api/v1/employees/abc", nil).Code).To(Equal(http.StatusBadRequest))
	})

	It("updates and deletes", func() {
		created := create(sampleEmployees()[0])
		update := requestFor(sampleEmployees()[0])
		update["salary"] = "80000"

		w := do(http.MethodPut, "/api/v1/employees/1", update)
		Expect(w.Code).To(Equal(http.StatusOK), w.Body.String())
		var updated employee.EmployeeResponse
		decode(w, &updated)
		Expect(updated.ID).To(Equal(created.ID))
		Expect(updated.Salary.Equal(dec("80000"))).To(BeTrue())

		Expect(do(http.MethodDelete, "/api/v1/employees/1", nil).Code).To(Equal(http.StatusNoContent))
		Expect(do(http.MethodGet, "/api/v1/employees/1", nil).Code).To(Equal(http.StatusNotFound))
		Expect(do(http.MethodDelete, "/api/v1/employees/1", nil).Code).To(Equal(http.StatusNotFound))
	})

	Context("with the sample directory", func() {
		BeforeEach(func() {
			for _, e := range sampleEmployees() {
				create(e)
			}
		})

		It("searches with query criteria", func() {
			w := do(http.MethodGet, "/api/v1/employees?department=IT&minSalary=50000&maxSalary=72000", nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp employee.EmployeesResponse
			decode(w, &resp)
			Expect(resp.Count).To(Equal(1))
			Expect(resp.Employees[0].Email).To(Equal("david.brown@company.com"))
		})

		It("lets the keyword win over other criteria", func() {
			w := do(http.MethodGet, "/api/v1/employees?keyword=jane&department=IT", nil)

			var resp employee.EmployeesResponse
			decode(w, &resp)
			Expect(resp.Count).To(Equal(1))
			Expect(resp.Employees[0].FirstName).To(Equal("Jane"))
		})

		It("ignores an unknown status filter behind a keyword", func() {
			w := do(http.MethodGet, "/api/v1/employees?keyword=jane&status=bogus", nil)
			Expect(w.Code).To(Equal(http.StatusOK), w.Body.String())

			var resp employee.EmployeesResponse
			decode(w, &resp)
			Expect(resp.Count).To(Equal(1))
			Expect(resp.Employees[0].Email).To(Equal("jane.smith@company.com"))
		})

		It("rejects an unknown status filter", func() {
			Expect(do(http.MethodGet, "/api/v1/employees?status=RETIRED", nil).Code).To(Equal(http.StatusBadRequest))
		})

		It("looks up by email", func() {
			w := do(http.MethodGet, "/api/v1/employees/email/jane.smith@company.com", nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp employee.EmployeeResponse
			decode(w, &resp)
			Expect(resp.LastName).To(Equal("Smith"))

			Expect(do(http.MethodGet, "/api/v1/employees/email/nobody@company.com", nil).Code).To(Equal(http.StatusNotFound))
		})

		It("checks email existence", func() {
			w := do(http.MethodGet, "/api/v1/employees/exists?email=john.doe@company.com", nil)
			var resp employee.EmailExistsResponse
			decode(w, &resp)
			Expect(resp.Exists).To(BeTrue())

			Expect(do(http.MethodGet, "/api/v1/employees/exists", nil).Code).To(Equal(http.StatusBadRequest))
		})

		It("lists departments and positions", func() {
			var departments employee.DepartmentsResponse
			decode(do(http.MethodGet, "/api/v1/employees/departments", nil), &departments)
			Expect(departments.Departments).To(Equal([]string{"Finance", "HR", "IT", "Marketing"}))

			var positions employee.PositionsResponse
			decode(do(http.MethodGet, "/api/v1/employees/positions", nil), &positions)
			Expect(positions.Positions).To(HaveLen(5))
		})

		It("counts a department", func() {
			var it employee.DepartmentCountResponse
			decode(do(http.MethodGet, "/api/v1/employees/departments/IT/count", nil), &it)
			Expect(it.Count).To(Equal(int64(2)))

			var sales employee.DepartmentCountResponse
			decode(do(http.MethodGet, "/api/v1/employees/departments/Sales/count", nil), &sales)
			Expect(sales.Count).To(BeZero())
		})

		It("serves the dashboard", func() {
			var dash employee.Dashboard
			decode(do(http.MethodGet, "/api/v1/dashboard", nil), &dash)

			Expect(dash.TotalEmployees).To(Equal(5))
			Expect(dash.DepartmentCounts).To(HaveKeyWithValue("IT", int64(2)))
		})
	})

	It("reports database health", func() {
		w := do(http.MethodGet, "/api/v1/health", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		var health rest.HealthResponse
		decode(w, &health)
		Expect(health.Status).To(Equal(rest.HealthHealthy))
	})

	It("serves the OpenAPI document", func() {
		w := do(http.MethodGet, "/openapi.yml", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("Employee Directory API"))
	})
})

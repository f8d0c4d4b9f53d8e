package middleware_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/employee-directory/internal/transport/middleware"
	"github.com/frahmantamala/employee-directory/pkg/logger"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Middleware", func() {
	var (
		logs *bytes.Buffer
		lg   *slog.Logger
	)

	BeforeEach(func() {
		logs = &bytes.Buffer{}
		lg = logger.New(logs, "debug", "json")
	})

	Describe("LoggingMiddleware", func() {
		It("masks personal data in request and response bodies", func() {
			handler := middleware.LoggingMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				Expect(err).NotTo(HaveOccurred())
				Expect(string(body)).To(ContainSubstring("555-0100"))

				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"email":"jane@company.com","phone_number":"555-0100"}`))
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/employees",
				strings.NewReader(`{"first_name":"Jane","phone_number":"555-0100"}`))
			req.Header.Set("Authorization", "Bearer abc")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(logs.String()).NotTo(ContainSubstring("555-0100"))
			Expect(logs.String()).NotTo(ContainSubstring("Bearer abc"))
			Expect(logs.String()).To(ContainSubstring("[FILTERED]"))
			Expect(logs.String()).To(ContainSubstring(`"status_code":201`))
		})

		It("logs client errors at warn level", func() {
			handler := middleware.LoggingMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/employees/9", nil))

			Expect(logs.String()).To(ContainSubstring(`"level":"WARN"`))
		})
	})

	Describe("RecoveryMiddleware", func() {
		It("answers a panic with an internal error body", func() {
			handler := middleware.RecoveryMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic("nil map")
			}))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).To(MatchJSON(`{"error":{"type":"INTERNAL_ERROR","code":"INTERNAL_ERROR","message":"Internal server error"}}`))
			Expect(logs.String()).To(ContainSubstring("panic recovered"))
		})

		It("lets aborted handlers abort", func() {
			handler := middleware.RecoveryMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(http.ErrAbortHandler)
			}))

			Expect(func() {
				handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
			}).To(PanicWith(http.ErrAbortHandler))
		})
	})

	Describe("RequestID", func() {
		var seen string

		handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.From(r.Context()).Info("inside")
			seen = w.Header().Get(middleware.TraceIDHeader)
		}))

		It("keeps a well-formed incoming trace id", func() {
			id := uuid.NewString()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(middleware.TraceIDHeader, id)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			Expect(w.Header().Get(middleware.TraceIDHeader)).To(Equal(id))
			Expect(seen).To(Equal(id))
		})

		It("replaces a malformed trace id", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(middleware.TraceIDHeader, "not-a-uuid\nforged")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			_, err := uuid.Parse(w.Header().Get(middleware.TraceIDHeader))
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("CORS", func() {
		var reached bool

		handler := middleware.CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
		}))

		BeforeEach(func() {
			reached = false
		})

		It("answers preflight requests without calling the handler", func() {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/employees", nil)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
			Expect(w.Header().Get("Access-Control-Allow-Methods")).To(ContainSubstring(http.MethodDelete))
			Expect(reached).To(BeFalse())
		})

		It("decorates regular requests", func() {
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil))

			Expect(reached).To(BeTrue())
			Expect(w.Header().Get("Access-Control-Expose-Headers")).To(Equal(middleware.TraceIDHeader))
		})
	})
})


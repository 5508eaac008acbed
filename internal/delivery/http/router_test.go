package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-vaccine-registration/config"
	"go-vaccine-registration/internal/delivery/http/handler"
	"go-vaccine-registration/internal/delivery/http/middleware"
	"go-vaccine-registration/internal/domain/entity"
	"go-vaccine-registration/internal/repository"
	"go-vaccine-registration/internal/service"
	"go-vaccine-registration/internal/usecase"
	"go-vaccine-registration/pkg/clock"
	"go-vaccine-registration/pkg/jwt"
	"go-vaccine-registration/pkg/validator"

	"github.com/sirupsen/logrus"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type wizardData struct {
	ActiveStep int               `json:"active_step"`
	State      string            `json:"state"`
	Valid      bool              `json:"valid"`
	Errors     map[string]string `json:"errors"`
	Values     map[string]string `json:"values"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	ict := time.FixedZone("ICT", 7*60*60)
	clk := clock.Fixed(time.Date(2026, 10, 16, 9, 30, 0, 0, ict))
	catalog := entity.OptionCatalog{
		GroupPriorities: []entity.Option{{ID: 1, Value: "A"}},
		Sessions:        []entity.Option{{ID: 1, Value: "Morning"}},
	}

	locker := service.NewWizardLocker(log)
	t.Cleanup(locker.Stop)
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "router-secret-0123456", AccessExpiry: time.Hour}, clk)

	uc := usecase.NewRegistrationWizardUsecase(
		log, clk,
		repository.NewWizardMemoryRepository(time.Hour, clk),
		service.NewRegistrationSchema(clk, catalog, false),
		locker,
		service.NewNoopAuditService(),
		jwtService,
	)

	router := NewRouter(
		handler.NewRegistrationHandler(uc, validator.NewValidator(clk)),
		middleware.NewWizardMiddleware(jwtService),
		middleware.NewCORSMiddleware(),
	)

	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, token, body string) (int, envelope) {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rdr)
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", method, path, err, raw)
		}
	}
	return resp.StatusCode, env
}

func startWizard(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	code, env := do(t, srv, http.MethodPost, "/api/v1/registrations/wizards", "", "")
	if code != http.StatusCreated {
		t.Fatalf("start status = %d", code)
	}
	var started struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &started); err != nil || started.Token == "" {
		t.Fatalf("start data = %s", env.Data)
	}
	return started.Token
}

func decodeWizard(t *testing.T, env envelope) wizardData {
	t.Helper()
	var w wizardData
	if err := json.Unmarshal(env.Data, &w); err != nil {
		t.Fatalf("decode wizard: %v (%s)", err, env.Data)
	}
	return w
}

func TestRegistrationFlow(t *testing.T) {
	srv := newTestServer(t)
	token := startWizard(t, srv)

	code, env := do(t, srv, http.MethodGet, "/api/v1/registrations/wizards/current", token, "")
	if code != http.StatusOK {
		t.Fatalf("get status = %d", code)
	}
	w := decodeWizard(t, env)
	if w.Valid || w.Values["appointmentDate"] != "2026-10-17" {
		t.Errorf("initial wizard = %+v", w)
	}

	for _, body := range []string{
		`{"field":"groupPriority","value":"A"}`,
		`{"field":"session","value":"Morning"}`,
		`{"field":"appointmentDate","value":"20/10/2026"}`,
	} {
		code, env = do(t, srv, http.MethodPatch, "/api/v1/registrations/wizards/current/fields", token, body)
		if code != http.StatusOK {
			t.Fatalf("patch %s status = %d (%s)", body, code, env.Error)
		}
	}
	w = decodeWizard(t, env)
	if !w.Valid || w.Values["appointmentDate"] != "2026-10-20" {
		t.Fatalf("wizard after edits = %+v", w)
	}

	code, env = do(t, srv, http.MethodPost, "/api/v1/registrations/wizards/current/submit", token, "")
	if code != http.StatusOK {
		t.Fatalf("submit status = %d (%s)", code, env.Error)
	}
	w = decodeWizard(t, env)
	if w.ActiveStep != 1 || w.State != "submitted" {
		t.Errorf("wizard after submit = %+v", w)
	}

	code, env = do(t, srv, http.MethodDelete, "/api/v1/registrations/wizards/current", token, "")
	if code != http.StatusOK || !strings.Contains(string(env.Data), `"redirect":"/"`) {
		t.Fatalf("cancel status = %d, data = %s", code, env.Data)
	}

	code, _ = do(t, srv, http.MethodGet, "/api/v1/registrations/wizards/current", token, "")
	if code != http.StatusNotFound {
		t.Errorf("get after cancel status = %d, want 404", code)
	}
}

func TestSubmitInvalidDraft(t *testing.T) {
	srv := newTestServer(t)
	token := startWizard(t, srv)

	code, env := do(t, srv, http.MethodPost, "/api/v1/registrations/wizards/current/submit", token, "")
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("submit status = %d, want 422", code)
	}

	var fieldErrors map[string]string
	if err := json.Unmarshal(env.Error, &fieldErrors); err != nil {
		t.Fatal(err)
	}
	if len(fieldErrors) != 2 || fieldErrors["groupPriority"] != "required" || fieldErrors["session"] != "required" {
		t.Errorf("errors = %v", fieldErrors)
	}
	if w := decodeWizard(t, env); w.ActiveStep != 0 {
		t.Errorf("ActiveStep = %d, want 0", w.ActiveStep)
	}
}

func TestRequestErrors(t *testing.T) {
	srv := newTestServer(t)
	token := startWizard(t, srv)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		want   int
	}{
		{"no token", http.MethodGet, "/api/v1/registrations/wizards/current", "", "", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/api/v1/registrations/wizards/current", "abc", "", http.StatusUnauthorized},
		{"malformed body", http.MethodPatch, "/api/v1/registrations/wizards/current/fields", token, "{", http.StatusBadRequest},
		{"missing field name", http.MethodPatch, "/api/v1/registrations/wizards/current/fields", token, `{"value":"x"}`, http.StatusBadRequest},
		{"unknown field", http.MethodPatch, "/api/v1/registrations/wizards/current/fields", token, `{"field":"phone","value":"x"}`, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := do(t, srv, tc.method, tc.path, tc.token, tc.body)
			if code != tc.want {
				t.Errorf("status = %d, want %d", code, tc.want)
			}
		})
	}
}

func TestPublicRoutes(t *testing.T) {
	srv := newTestServer(t)

	code, env := do(t, srv, http.MethodGet, "/api/v1/registrations/options", "", "")
	if code != http.StatusOK || !strings.Contains(string(env.Data), `"sessions":[{"id":1,"value":"Morning"}]`) {
		t.Errorf("options status = %d, data = %s", code, env.Data)
	}

	code, _ = do(t, srv, http.MethodGet, "/api/v1/health", "", "")
	if code != http.StatusOK {
		t.Errorf("health status = %d", code)
	}

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(raw), "registration_wizards_started_total") {
		t.Errorf("metrics status = %d", resp.StatusCode)
	}
}

func TestPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/registrations/wizards/current/fields", nil)
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("preflight status = %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Header.Get("Access-Control-Allow-Methods"), "PATCH") {
		t.Errorf("Allow-Methods = %q", resp.Header.Get("Access-Control-Allow-Methods"))
	}
}

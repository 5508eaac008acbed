package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFormInvalid(t *testing.T) {
	rec := httptest.NewRecorder()
	FormInvalid(rec, "form is invalid", map[string]int{"active_step": 0}, map[string]string{"session": "required"})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Data    map[string]int    `json:"data"`
		Error   map[string]string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Success || body.Error["session"] != "required" || body.Data == nil {
		t.Errorf("body = %+v", body)
	}
}

func TestDefaultMessages(t *testing.T) {
	tests := []struct {
		name string
		fn   func(http.ResponseWriter, string)
		code int
		msg  string
	}{
		{"unauthorized", Unauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"not found", NotFound, http.StatusNotFound, "Resource not found"},
		{"internal", InternalServerError, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range tests {
		rec := httptest.NewRecorder()
		tc.fn(rec, "")

		var body Response
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if rec.Code != tc.code || body.Message != tc.msg {
			t.Errorf("%s: %d %q", tc.name, rec.Code, body.Message)
		}
	}
}

package validator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgvalidator "github.com/ghuser/supermarket/pkg/validator"
)

type orderReq struct {
	Quantity uint   `json:"quantity" validate:"required,gt=0"`
	Channel  string `json:"channel"  validate:"omitempty,oneof=web store"`
	Contact  string `json:"contact"  validate:"omitempty,email,max=20"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		in        orderReq
		wantField string
		wantMsg   string
	}{
		{"valid", orderReq{Quantity: 3, Channel: "web"}, "", ""},
		{"missing quantity", orderReq{}, "quantity", "This field is required"},
		{"unknown channel", orderReq{Quantity: 1, Channel: "phone"}, "channel", "Must be one of: web store"},
		{"bad contact", orderReq{Quantity: 1, Contact: "nope"}, "contact", "Must be a valid email address"},
		{"long contact", orderReq{Quantity: 1, Contact: "someone@a-very-long-domain.example"}, "contact", "Maximum length is 20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgvalidator.Validate(&tt.in)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			m := pkgvalidator.FormatValidationErrors(err)
			if m[tt.wantField] != tt.wantMsg {
				t.Errorf("%s: got %q, want %q (all: %v)", tt.wantField, m[tt.wantField], tt.wantMsg, m)
			}
		})
	}
}

func TestFormatValidationErrors_nonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie)
	if len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantStatus int
		wantBody   string
	}{
		{"valid", `{"quantity":5}`, true, http.StatusOK, ""},
		{"malformed json", "{bad json", false, http.StatusBadRequest, "Invalid JSON"},
		{"negative quantity", `{"quantity":-1}`, false, http.StatusBadRequest, "Invalid JSON"},
		{"zero quantity", `{"quantity":0}`, false, http.StatusUnprocessableEntity, "Validation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			req, ok := pkgvalidator.ValidateRequest[orderReq](w, r)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v. Response: %s", ok, tt.wantOK, w.Body.String())
			}
			if ok {
				if req.Quantity != 5 {
					t.Errorf("unexpected quantity: %d", req.Quantity)
				}
				return
			}
			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("expected %q in body, got: %s", tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestValidateRequest_BodyTooLarge(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":5,"channel":"`+strings.Repeat("w", 64)+`"}`))
	w := httptest.NewRecorder()
	r.Body = http.MaxBytesReader(w, r.Body, 16)

	if _, ok := pkgvalidator.ValidateRequest[orderReq](w, r); ok {
		t.Fatal("expected ok=false")
	}
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
}

package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	plain := Conflict("slot unavailable")
	if plain.Error() != "CONFLICT: slot unavailable" {
		t.Errorf("unexpected message: %s", plain.Error())
	}

	cause := fmt.Errorf("connection refused")
	wrapped := Internal("Failed to create booking", cause)
	if !errors.Is(wrapped, cause) {
		t.Error("expected wrapped error to unwrap to its cause")
	}
}

func TestTaxonomyStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code string
		want int
	}{
		{"not found", NotFound("Turf"), CodeNotFound, http.StatusNotFound},
		{"invalid interval", InvalidInterval("start after end"), CodeInvalidInterval, http.StatusBadRequest},
		{"duplicate request", DuplicateRequest("already booked"), CodeDuplicateRequest, http.StatusConflict},
		{"conflict", Conflict("slot unavailable"), CodeConflict, http.StatusConflict},
		{"invalid transition", InvalidTransition("already cancelled"), CodeInvalidTransition, http.StatusConflict},
		{"validation", Validation("bad booking", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.StatusCode() != tt.want {
				t.Errorf("status = %d, want %d", tt.err.StatusCode(), tt.want)
			}
		})
	}
}

func TestDuplicateDistinctFromConflict(t *testing.T) {
	dup := DuplicateRequest("already booked")
	conflict := Conflict("slot unavailable")

	if dup.Code == conflict.Code {
		t.Error("duplicate requests must carry a distinct code from capacity conflicts")
	}
	if !IsCode(dup, CodeDuplicateRequest) || IsCode(dup, CodeConflict) {
		t.Error("IsCode misclassified a duplicate request")
	}
}

func TestNotFoundWithID_Details(t *testing.T) {
	err := NotFoundWithID("Booking", "abc123")
	if err.Details["id"] != "abc123" || err.Details["resource"] != "Booking" {
		t.Errorf("unexpected details: %v", err.Details)
	}
}

func TestToJSON(t *testing.T) {
	raw := Conflict("slot unavailable").ToJSON()

	var resp ErrorResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("ToJSON produced invalid JSON: %v", err)
	}
	if resp.Code != CodeConflict || resp.Message != "slot unavailable" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Conflict("taken")
	if AsAppError(appErr) != appErr {
		t.Error("expected AsAppError to return the same AppError")
	}

	converted := AsAppError(errors.New("plain"))
	if converted.Code != CodeInternal {
		t.Errorf("plain errors should convert to internal, got %s", converted.Code)
	}
}

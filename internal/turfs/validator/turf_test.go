package validator

import (
	"testing"

	"turfbook/pkg/logger"
	"turfbook/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func validTurf() *model.Turf {
	return &model.Turf{
		OwnerID:     "64a0000000000000000000b1",
		Name:        "Greenfield Arena",
		Phone:       "+919876543210",
		Location:    "Bengaluru",
		Sport:       "football",
		RatePerHour: 500,
		OpenTime:    "08:00",
		CloseTime:   "22:00",
	}
}

func TestValidateOperatingHours(t *testing.T) {
	v := NewTurfValidator(testLogger())

	tests := []struct {
		name      string
		openTime  string
		closeTime string
		wantError bool
	}{
		{
			name:      "valid window",
			openTime:  "08:00",
			closeTime: "22:00",
			wantError: false,
		},
		{
			name:      "full day",
			openTime:  "00:00",
			closeTime: "23:59",
			wantError: false,
		},
		{
			name:      "close before open",
			openTime:  "22:00",
			closeTime: "08:00",
			wantError: true,
		},
		{
			name:      "zero-length window",
			openTime:  "10:00",
			closeTime: "10:00",
			wantError: true,
		},
		{
			name:      "hour out of range",
			openTime:  "25:00",
			closeTime: "22:00",
			wantError: true,
		},
		{
			name:      "minute out of range",
			openTime:  "08:60",
			closeTime: "22:00",
			wantError: true,
		},
		{
			name:      "no leading zero",
			openTime:  "8:00",
			closeTime: "22:00",
			wantError: false,
		},
		{
			name:      "wrong separator",
			openTime:  "08-00",
			closeTime: "22:00",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			turf := validTurf()
			turf.OpenTime = tt.openTime
			turf.CloseTime = tt.closeTime

			err := v.Validate(turf)
			if tt.wantError && err == nil {
				t.Errorf("expected error for open=%s close=%s, got nil", tt.openTime, tt.closeTime)
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error for open=%s close=%s: %v", tt.openTime, tt.closeTime, err)
			}
		})
	}
}

func TestValidateRequiredFields(t *testing.T) {
	v := NewTurfValidator(testLogger())

	turf := validTurf()
	turf.Name = ""
	turf.RatePerHour = 0

	err := v.Validate(turf)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 2 {
		t.Errorf("expected 2 field errors, got %d: %v", len(verrs), verrs)
	}
}

func TestValidateRejectsNegativeRate(t *testing.T) {
	v := NewTurfValidator(testLogger())

	turf := validTurf()
	turf.RatePerHour = -100

	if err := v.Validate(turf); err == nil {
		t.Error("expected error for negative rate, got nil")
	}
}

func TestValidateRejectsBadPhone(t *testing.T) {
	v := NewTurfValidator(testLogger())

	turf := validTurf()
	turf.Phone = "not-a-phone"

	if err := v.Validate(turf); err == nil {
		t.Error("expected error for malformed phone, got nil")
	}
}

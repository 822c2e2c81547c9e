package notify

import (
	"testing"

	"clinic-management-server/internal/models"
)

func TestValidTransition(t *testing.T) {
	cases := []struct {
		from  models.AppointmentStatus
		to    models.AppointmentStatus
		valid bool
	}{
		{models.StatusPending, models.StatusConfirmed, true},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusPending, models.StatusPending, false},
		{models.StatusConfirmed, models.StatusCancelled, true},
		{models.StatusConfirmed, models.StatusPending, true},
		{models.StatusConfirmed, models.StatusConfirmed, false},
		{models.StatusCancelled, models.StatusConfirmed, true},
		{models.StatusCancelled, models.StatusPending, true},
		{models.StatusCancelled, models.StatusCancelled, false},
		{"unknown", models.StatusConfirmed, false},
	}

	for _, tt := range cases {
		if got := ValidTransition(tt.from, tt.to); got != tt.valid {
			t.Fatalf("ValidTransition(%q, %q)=%v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}

func TestTemplateTypeFor(t *testing.T) {
	cases := []struct {
		target models.AppointmentStatus
		want   models.TemplateType
		ok     bool
	}{
		{models.StatusConfirmed, models.TemplateConfirmation, true},
		{models.StatusCancelled, models.TemplateCancellation, true},
		{models.StatusPending, "", false},
	}

	for _, tt := range cases {
		got, ok := TemplateTypeFor(tt.target)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("TemplateTypeFor(%q)=(%q, %v), want (%q, %v)", tt.target, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCanRemind(t *testing.T) {
	if !CanRemind(models.StatusConfirmed) {
		t.Fatal("expected reminders to be available for confirmed appointments")
	}
	if CanRemind(models.StatusPending) || CanRemind(models.StatusCancelled) {
		t.Fatal("expected reminders to be unavailable outside confirmed")
	}
}

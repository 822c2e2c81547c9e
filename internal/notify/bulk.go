package notify

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"clinic-management-server/internal/models"
	"clinic-management-server/internal/sms"
)

// Preconditions that block a bulk send before any dispatch attempt.
var (
	ErrEmptyMessage = errors.New("bulk message body is empty")
	ErrNoRecipients = errors.New("no appointments match the selected filters")
)

// FilterAppointments narrows an appointment collection by doctor and
// calendar day. An empty doctorID or nil day leaves that axis
// unfiltered; both set means logical AND. Relative order is preserved.
func FilterAppointments(appts []models.Appointment, doctorID string, day *time.Time) []models.Appointment {
	filtered := make([]models.Appointment, 0, len(appts))
	for _, appt := range appts {
		if doctorID != "" && appt.DoctorID != doctorID {
			continue
		}
		if day != nil && !sameDay(appt.Date, *day) {
			continue
		}
		filtered = append(filtered, appt)
	}
	return filtered
}

// sameDay compares at day granularity, ignoring time-of-day. The two
// sides can carry different zone representations of the same instant
// (the MySQL driver returns Local, callers may construct UTC), so both
// are aligned to UTC before the day components are read.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.In(time.UTC).Date()
	by, bm, bd := b.In(time.UTC).Date()
	return ay == by && am == bm && ad == bd
}

// BulkResult is the aggregate outcome of a bulk send.
// SuccessCount+FailCount always equals the number of recipients.
type BulkResult struct {
	SuccessCount int `json:"successCount"`
	FailCount    int `json:"failCount"`
}

// SendBulk personalizes the operator-authored message for each
// recipient and dispatches it sequentially. Recipients without a phone
// number count as failures without reaching the gateway, and an
// individual gateway failure never aborts the loop. Batches are
// operator-bounded, so sequential latency is an accepted trade.
func (n *Notifier) SendBulk(ctx context.Context, appts []models.Appointment, message string) (BulkResult, error) {
	if strings.TrimSpace(message) == "" {
		return BulkResult{}, ErrEmptyMessage
	}
	if len(appts) == 0 {
		return BulkResult{}, ErrNoRecipients
	}

	var result BulkResult
	for _, appt := range appts {
		if appt.PatientPhone == "" {
			result.FailCount++
			continue
		}
		personalized := sms.Render(message, sms.ContextFor(appt))
		if err := n.Gateway.Send(ctx, appt.PatientPhone, personalized); err != nil {
			log.Warn().Err(err).Str("appointment", appt.ID).Msg("bulk sms dispatch failed")
			result.FailCount++
			continue
		}
		result.SuccessCount++
	}

	log.Info().
		Int("recipients", len(appts)).
		Int("sent", result.SuccessCount).
		Int("failed", result.FailCount).
		Msg("bulk sms finished")
	return result, nil
}

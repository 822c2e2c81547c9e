package notify

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"clinic-management-server/internal/models"
	"clinic-management-server/internal/sms"
)

// TemplateSource returns the active template for a type, or nil when
// none is configured.
type TemplateSource interface {
	TemplateByType(ctx context.Context, t models.TemplateType) (*models.SMSTemplate, error)
}

// TemplateStore is the gorm-backed TemplateSource. The type column
// carries a unique index, so at most one row matches.
type TemplateStore struct {
	DB *gorm.DB
}

func (s TemplateStore) TemplateByType(ctx context.Context, t models.TemplateType) (*models.SMSTemplate, error) {
	var tpl models.SMSTemplate
	err := s.DB.WithContext(ctx).Where("type = ?", t).First(&tpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// Outcome describes the result of one notification attempt. A skipped
// or failed notification never invalidates the action that triggered
// it; callers surface it as a secondary warning at most.
type Outcome struct {
	Sent       bool
	SkipReason string // set when no dispatch was attempted
	Err        error  // transport or template lookup failure
}

// Notifier resolves a template against an appointment and dispatches
// the rendered message through the gateway.
type Notifier struct {
	Templates TemplateSource
	Gateway   sms.Gateway
}

// New creates a Notifier over a gorm-backed template store.
func New(db *gorm.DB, gateway sms.Gateway) *Notifier {
	return &Notifier{Templates: TemplateStore{DB: db}, Gateway: gateway}
}

// Notify sends the template of the given type to the appointment's
// patient. A missing template or missing patient phone is a silent
// skip, not an error.
func (n *Notifier) Notify(ctx context.Context, appt models.Appointment, t models.TemplateType) Outcome {
	tpl, err := n.Templates.TemplateByType(ctx, t)
	if err != nil {
		log.Error().Err(err).Str("template", string(t)).Msg("template lookup failed")
		return Outcome{Err: err}
	}
	if tpl == nil {
		return Outcome{SkipReason: "no template configured for type " + string(t)}
	}
	if appt.PatientPhone == "" {
		return Outcome{SkipReason: "appointment has no patient phone"}
	}

	message := sms.Render(tpl.Content, sms.ContextFor(appt))
	if err := n.Gateway.Send(ctx, appt.PatientPhone, message); err != nil {
		log.Warn().Err(err).
			Str("appointment", appt.ID).
			Str("template", string(t)).
			Msg("sms dispatch failed")
		return Outcome{Err: err}
	}

	log.Info().
		Str("appointment", appt.ID).
		Str("template", string(t)).
		Str("to", appt.PatientPhone).
		Msg("sms dispatched")
	return Outcome{Sent: true}
}

// StatusChanged sends the notification coupled to the appointment's
// new status. Targets without a template type (pending) are a skip.
func (n *Notifier) StatusChanged(ctx context.Context, appt models.Appointment, target models.AppointmentStatus) Outcome {
	t, ok := TemplateTypeFor(target)
	if !ok {
		return Outcome{SkipReason: "no notification for status " + string(target)}
	}
	return n.Notify(ctx, appt, t)
}

// Remind sends the reminder template for a confirmed appointment. The
// status guard lives with the caller via CanRemind.
func (n *Notifier) Remind(ctx context.Context, appt models.Appointment) Outcome {
	return n.Notify(ctx, appt, models.TemplateReminder)
}

package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-management-server/internal/models"
)

// fakeTemplates serves templates from a map, mimicking the keyed
// type -> single active template store.
type fakeTemplates map[models.TemplateType]string

func (f fakeTemplates) TemplateByType(ctx context.Context, t models.TemplateType) (*models.SMSTemplate, error) {
	content, ok := f[t]
	if !ok {
		return nil, nil
	}
	return &models.SMSTemplate{Type: t, Content: content}, nil
}

type failingTemplates struct{}

func (failingTemplates) TemplateByType(ctx context.Context, t models.TemplateType) (*models.SMSTemplate, error) {
	return nil, errors.New("db unavailable")
}

// recordingGateway captures every dispatch and can fail selected
// phone numbers.
type recordingGateway struct {
	sent    []sentSMS
	failFor map[string]bool
}

type sentSMS struct {
	phone   string
	message string
}

func (g *recordingGateway) Send(ctx context.Context, phone, message string) error {
	if g.failFor[phone] {
		return errors.New("gateway failure")
	}
	g.sent = append(g.sent, sentSMS{phone: phone, message: message})
	return nil
}

func testAppointment() models.Appointment {
	return models.Appointment{
		BaseModel:    models.BaseModel{ID: "appt-1"},
		PatientName:  "Rafiq Islam",
		PatientPhone: "+8801712345678",
		Date:         time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		Time:         "09:00 AM",
		Status:       models.StatusPending,
		Doctor:       models.Doctor{Name: "Dr. Abdul Rahman"},
	}
}

func TestNotifyRendersAndDispatches(t *testing.T) {
	gateway := &recordingGateway{}
	n := &Notifier{
		Templates: fakeTemplates{models.TemplateConfirmation: "Dear {patientName}, confirmed for {date} at {time}."},
		Gateway:   gateway,
	}

	outcome := n.Notify(context.Background(), testAppointment(), models.TemplateConfirmation)

	assert.True(t, outcome.Sent)
	require.Len(t, gateway.sent, 1)
	assert.Equal(t, "+8801712345678", gateway.sent[0].phone)
	assert.Equal(t, "Dear Rafiq Islam, confirmed for 15/01/2024 at 09:00 AM.", gateway.sent[0].message)
}

func TestNotifyMissingTemplateIsSilentSkip(t *testing.T) {
	gateway := &recordingGateway{}
	n := &Notifier{Templates: fakeTemplates{}, Gateway: gateway}

	outcome := n.Notify(context.Background(), testAppointment(), models.TemplateConfirmation)

	assert.False(t, outcome.Sent)
	assert.NoError(t, outcome.Err)
	assert.NotEmpty(t, outcome.SkipReason)
	assert.Empty(t, gateway.sent)
}

func TestNotifyMissingPhoneIsSilentSkip(t *testing.T) {
	gateway := &recordingGateway{}
	n := &Notifier{
		Templates: fakeTemplates{models.TemplateConfirmation: "hi"},
		Gateway:   gateway,
	}
	appt := testAppointment()
	appt.PatientPhone = ""

	outcome := n.Notify(context.Background(), appt, models.TemplateConfirmation)

	assert.False(t, outcome.Sent)
	assert.NoError(t, outcome.Err)
	assert.Empty(t, gateway.sent)
}

func TestNotifyGatewayFailureIsNonFatal(t *testing.T) {
	gateway := &recordingGateway{failFor: map[string]bool{"+8801712345678": true}}
	n := &Notifier{
		Templates: fakeTemplates{models.TemplateCancellation: "cancelled"},
		Gateway:   gateway,
	}

	outcome := n.Notify(context.Background(), testAppointment(), models.TemplateCancellation)

	assert.False(t, outcome.Sent)
	assert.Error(t, outcome.Err)
}

func TestNotifyTemplateLookupError(t *testing.T) {
	n := &Notifier{Templates: failingTemplates{}, Gateway: &recordingGateway{}}

	outcome := n.Notify(context.Background(), testAppointment(), models.TemplateReminder)

	assert.False(t, outcome.Sent)
	assert.Error(t, outcome.Err)
}

func TestStatusChangedSelectsTemplateByTarget(t *testing.T) {
	gateway := &recordingGateway{}
	n := &Notifier{
		Templates: fakeTemplates{
			models.TemplateConfirmation: "confirmed",
			models.TemplateCancellation: "cancelled",
		},
		Gateway: gateway,
	}

	outcome := n.StatusChanged(context.Background(), testAppointment(), models.StatusCancelled)
	require.True(t, outcome.Sent)
	assert.Equal(t, "cancelled", gateway.sent[0].message)

	outcome = n.StatusChanged(context.Background(), testAppointment(), models.StatusConfirmed)
	require.True(t, outcome.Sent)
	assert.Equal(t, "confirmed", gateway.sent[1].message)
}

func TestStatusChangedPendingHasNoNotification(t *testing.T) {
	gateway := &recordingGateway{}
	n := &Notifier{Templates: fakeTemplates{}, Gateway: gateway}

	outcome := n.StatusChanged(context.Background(), testAppointment(), models.StatusPending)

	assert.False(t, outcome.Sent)
	assert.NoError(t, outcome.Err)
	assert.Empty(t, gateway.sent)
}

func TestRemindUsesReminderTemplate(t *testing.T) {
	gateway := &recordingGateway{}
	n := &Notifier{
		Templates: fakeTemplates{models.TemplateReminder: "Reminder for {patientName} today at {time}"},
		Gateway:   gateway,
	}

	outcome := n.Remind(context.Background(), testAppointment())

	require.True(t, outcome.Sent)
	assert.Equal(t, "Reminder for Rafiq Islam today at 09:00 AM", gateway.sent[0].message)
}

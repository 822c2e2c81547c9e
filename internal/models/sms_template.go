package models

import "gorm.io/gorm"

// TemplateType selects which message content is used for a
// notification and determines when it is sent.
type TemplateType string

const (
	TemplateConfirmation TemplateType = "confirmation"
	TemplateReminder     TemplateType = "reminder"
	TemplateCancellation TemplateType = "cancellation"
)

// ValidTemplateType reports whether t is one of the known types.
func ValidTemplateType(t TemplateType) bool {
	switch t {
	case TemplateConfirmation, TemplateReminder, TemplateCancellation:
		return true
	}
	return false
}

// SMSTemplate holds the message body for one template type. The type
// column carries a unique index so there is exactly one active
// template per type; edits go through an upsert keyed on the type.
type SMSTemplate struct {
	BaseModel
	Type    TemplateType `gorm:"size:20;uniqueIndex;not null" json:"type"`
	Content string       `gorm:"type:text;not null" json:"content"`
}

// defaultTemplates are installed on first startup so a fresh clinic
// can send notifications before anyone has edited the templates.
var defaultTemplates = []SMSTemplate{
	{
		Type:    TemplateConfirmation,
		Content: "Dear {patientName}, your appointment with {doctorName} is confirmed for {date} at {time}. Thank you for choosing our diagnostic center. If you need to reschedule, please call us at 01234567890.",
	},
	{
		Type:    TemplateReminder,
		Content: "Reminder: Dear {patientName}, you have an appointment with {doctorName} today at {time}. Please arrive 15 minutes early. For any queries, call 01234567890.",
	},
	{
		Type:    TemplateCancellation,
		Content: "Dear {patientName}, your appointment with {doctorName} scheduled for {date} at {time} has been cancelled. Please call 01234567890 to reschedule.",
	},
}

// SeedTemplates inserts the default SMS templates when the table is
// empty. Existing rows are left untouched.
func SeedTemplates(db *gorm.DB) error {
	var count int64
	if err := db.Model(&SMSTemplate{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	templates := make([]SMSTemplate, len(defaultTemplates))
	copy(templates, defaultTemplates)
	return db.Create(&templates).Error
}

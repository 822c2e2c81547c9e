package sms

import (
	"strings"
	"time"

	"clinic-management-server/internal/models"
)

// DateLayout is the day/month/year format patients see in messages.
const DateLayout = "02/01/2006"

// TemplateContext carries the per-recipient values substituted into a
// template body. Zero values render as empty strings.
type TemplateContext struct {
	PatientName string
	DoctorName  string
	Date        time.Time
	Time        string // pre-formatted upstream, e.g. "10:30 AM"
}

// ContextFor builds a TemplateContext from an appointment row. The
// doctor relation is expected to be preloaded; a missing doctor just
// yields an empty {doctorName}.
func ContextFor(appt models.Appointment) TemplateContext {
	return TemplateContext{
		PatientName: appt.PatientName,
		DoctorName:  appt.Doctor.Name,
		Date:        appt.Date,
		Time:        appt.Time,
	}
}

// Render substitutes every occurrence of the recognized placeholder
// tokens {patientName}, {doctorName}, {date} and {time} in content
// with the corresponding context value. Unrecognized tokens are left
// unchanged and no escaping is performed; template content is trusted.
// Render is a single pass over the body so tokens produced by a
// substitution are never re-expanded.
func Render(content string, ctx TemplateContext) string {
	var b strings.Builder
	b.Grow(len(content))

	rest := content
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			b.WriteString(rest)
			return b.String()
		}

		value, ok := ctx.lookup(rest[open+1 : open+end])
		if !ok {
			// Not one of ours: emit up to and including the opening
			// brace and rescan from the next byte, so an overlapping
			// brace like "{{patientName}}" still finds the token.
			b.WriteString(rest[:open+1])
			rest = rest[open+1:]
			continue
		}

		b.WriteString(rest[:open])
		b.WriteString(value)
		rest = rest[open+end+1:]
	}
}

func (c TemplateContext) lookup(token string) (string, bool) {
	switch token {
	case "patientName":
		return c.PatientName, true
	case "doctorName":
		return c.DoctorName, true
	case "date":
		if c.Date.IsZero() {
			return "", true
		}
		return c.Date.Format(DateLayout), true
	case "time":
		return c.Time, true
	}
	return "", false
}

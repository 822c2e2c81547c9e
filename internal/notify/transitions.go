package notify

import "clinic-management-server/internal/models"

// transitionMap lists, for each current status, the statuses an
// appointment may move to. The product deliberately permits moving
// back and forth between confirmed and cancelled; only no-op
// transitions to the same status are rejected.
var transitionMap = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusPending, models.StatusCancelled},
	models.StatusCancelled: {models.StatusPending, models.StatusConfirmed},
}

// ValidTransition reports whether an appointment may move from one
// status to another.
func ValidTransition(from, to models.AppointmentStatus) bool {
	allowed, ok := transitionMap[from]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == to {
			return true
		}
	}
	return false
}

// TemplateTypeFor returns the template type coupled to reaching the
// target status. Pending has no notification attached.
func TemplateTypeFor(target models.AppointmentStatus) (models.TemplateType, bool) {
	switch target {
	case models.StatusConfirmed:
		return models.TemplateConfirmation, true
	case models.StatusCancelled:
		return models.TemplateCancellation, true
	}
	return "", false
}

// CanRemind reports whether the reminder side-channel action is
// available for an appointment in the given status.
func CanRemind(status models.AppointmentStatus) bool {
	return status == models.StatusConfirmed
}

// internal/models/admission.go
package models

// Guardian is a notification recipient attached to an application or lead.
type Guardian struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	Email                   string `json:"email,omitempty"`
	Phone                   string `json:"phone,omitempty"`
	CanReceiveNotifications bool   `json:"canReceiveNotifications"`
	Locale                  string `json:"locale,omitempty"`
}

// Admission is the correlation object a lifecycle event refers to: an
// application or a lead, the student it concerns, and the guardians to
// broadcast to. Exactly one of ApplicationID / LeadID is usually set, but
// both may be present once a lead converts.
type Admission struct {
	ApplicationID string     `json:"applicationId,omitempty"`
	LeadID        string     `json:"leadId,omitempty"`
	StudentName   string     `json:"studentName"`
	Guardians     []Guardian `json:"guardians"`
}

// EligibleGuardians returns the guardians with notifications enabled at this
// moment. The flag is read once per fan-out, never re-checked mid-dispatch.
func (a *Admission) EligibleGuardians() []Guardian {
	out := make([]Guardian, 0, len(a.Guardians))
	for _, g := range a.Guardians {
		if g.CanReceiveNotifications {
			out = append(out, g)
		}
	}
	return out
}

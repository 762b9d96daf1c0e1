// internal/model/campaign.go
package model

import "time"

// Campaign statuses. The server only ever assigns collecting and completed;
// draft and reviewing are accepted on PATCH for clients that stage campaigns.
const (
	StatusCollecting = "collecting"
	StatusCompleted  = "completed"
	StatusDraft      = "draft"
	StatusReviewing  = "reviewing"
)

// ValidStatus reports whether s is a recognized campaign status.
func ValidStatus(s string) bool {
	switch s {
	case StatusCollecting, StatusCompleted, StatusDraft, StatusReviewing:
		return true
	}
	return false
}

// BirthdayPerson is the person the campaign collects wishes for.
// Only the name is required.
type BirthdayPerson struct {
	Name        string   `json:"name"`
	DateOfBirth string   `json:"dateOfBirth,omitempty"`
	Email       string   `json:"email,omitempty"`
	Age         int      `json:"age,omitempty"`
	Gender      string   `json:"gender,omitempty"`
	Interests   []string `json:"interests,omitempty"`
}

// Gatherer is the person who owns the campaign and receives status emails.
type Gatherer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Campaign struct {
	ID             string         `json:"id"`
	BirthdayPerson BirthdayPerson `json:"birthdayPerson"`
	Gatherer       Gatherer       `json:"gatherer"`
	InvitedEmails  []string       `json:"invitedEmails"`
	Status         string         `json:"status"`
	PhotoURL       string         `json:"photoUrl,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// internal/model/greeting.go
package model

import "time"

// Greeting is one contributed birthday wish. Greetings are created by
// contributors and never updated or deleted individually; they only go away
// when their campaign is deleted.
type Greeting struct {
	ID          string    `json:"id"`
	CampaignID  string    `json:"campaignId"`
	Message     string    `json:"message"`
	SenderName  string    `json:"senderName,omitempty"`
	SenderEmail string    `json:"senderEmail,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

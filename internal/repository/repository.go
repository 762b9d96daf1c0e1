package repository

import (
	"github.com/wishwell/wishwell-backend/internal/model"
)

// CampaignRepositoryInterface is the storage contract for the campaign
// collection. The collection is one document: List returns it in storage
// order and SaveAll replaces it wholesale. Callers that read-modify-write
// are responsible for serializing with each other.
type CampaignRepositoryInterface interface {
	List() ([]model.Campaign, error)
	GetByID(id string) (*model.Campaign, error)
	SaveAll(campaigns []model.Campaign) error
}

// GreetingRepositoryInterface is the storage contract for the greeting
// collection. List with an empty campaignID returns everything; otherwise
// it returns the order-preserving subset for that campaign.
type GreetingRepositoryInterface interface {
	List(campaignID string) ([]model.Greeting, error)
	SaveAll(greetings []model.Greeting) error
}

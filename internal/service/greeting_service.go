// internal/service/greeting_service.go
package service

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/wishwell/wishwell-backend/internal/errors"
	"github.com/wishwell/wishwell-backend/internal/model"
	"github.com/wishwell/wishwell-backend/internal/repository"
)

type GreetingService struct {
	GreetingRepo repository.GreetingRepositoryInterface

	Now func() time.Time

	// Locks must be the same instance as the CampaignService's; see
	// StoreLock.
	Locks *StoreLock

	locksOnce sync.Once
}

func (s *GreetingService) locks() *StoreLock {
	s.locksOnce.Do(func() {
		if s.Locks == nil {
			s.Locks = &StoreLock{}
		}
	})
	return s.Locks
}

func (s *GreetingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

type CreateGreetingInput struct {
	CampaignID  string `json:"campaignId"`
	Message     string `json:"message"`
	SenderName  string `json:"senderName"`
	SenderEmail string `json:"senderEmail"`
	ImageURL    string `json:"imageUrl"`
}

// CreateGreeting appends a contributor's greeting. The campaignId is not
// checked against existing campaigns: submissions racing a delete are
// accepted and swept up by the next cascade.
func (s *GreetingService) CreateGreeting(input CreateGreetingInput) (*model.Greeting, error) {
	missing := []string{}
	if strings.TrimSpace(input.CampaignID) == "" {
		missing = append(missing, "campaignId")
	}
	if strings.TrimSpace(input.Message) == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return nil, appErrors.NewValidation(missing...)
	}

	greeting := model.Greeting{
		ID:          uuid.NewString(),
		CampaignID:  input.CampaignID,
		Message:     input.Message,
		SenderName:  input.SenderName,
		SenderEmail: input.SenderEmail,
		ImageURL:    input.ImageURL,
		CreatedAt:   s.now(),
	}

	l := s.locks()
	l.greetings.Lock()
	defer l.greetings.Unlock()

	greetings, err := s.GreetingRepo.List("")
	if err != nil {
		return nil, err
	}
	greetings = append(greetings, greeting)
	if err := s.GreetingRepo.SaveAll(greetings); err != nil {
		return nil, err
	}
	return &greeting, nil
}

// ListGreetings returns all greetings, or only those for campaignID when it
// is non-empty, in storage order.
func (s *GreetingService) ListGreetings(campaignID string) ([]model.Greeting, error) {
	return s.GreetingRepo.List(campaignID)
}

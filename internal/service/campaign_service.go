// internal/service/campaign_service.go
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

// CampaignService owns the campaign lifecycle. Every read-modify-write
// against the whole-document store runs under the shared StoreLock so two
// concurrent mutations in this process cannot silently drop each other's
// writes.
type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	GreetingRepo repository.GreetingRepositoryInterface

	// Now is the clock used for createdAt/updatedAt. Tests inject it;
	// nil means time.Now.
	Now func() time.Time

	// Locks must be the same instance as the GreetingService's, so the
	// cascade delete and greeting creation cannot interleave. nil gets a
	// private instance, which only serializes this service with itself.
	Locks *StoreLock

	locksOnce sync.Once
}

func (s *CampaignService) locks() *StoreLock {
	s.locksOnce.Do(func() {
		if s.Locks == nil {
			s.Locks = &StoreLock{}
		}
	})
	return s.Locks
}

func (s *CampaignService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

type CreateCampaignInput struct {
	BirthdayPerson model.BirthdayPerson `json:"birthdayPerson"`
	Gatherer       model.Gatherer       `json:"gatherer"`
	InvitedEmails  []string             `json:"invitedEmails"`
}

// UpdateCampaignInput is a partial update; nil fields are left untouched.
type UpdateCampaignInput struct {
	BirthdayPerson *model.BirthdayPerson `json:"birthdayPerson"`
	Gatherer       *model.Gatherer       `json:"gatherer"`
	InvitedEmails  *[]string             `json:"invitedEmails"`
	Status         *string               `json:"status"`
	PhotoURL       *string               `json:"photoUrl"`
}

func (s *CampaignService) CreateCampaign(input CreateCampaignInput) (*model.Campaign, error) {
	missing := []string{}
	if strings.TrimSpace(input.BirthdayPerson.Name) == "" {
		missing = append(missing, "birthdayPerson.name")
	}
	if strings.TrimSpace(input.Gatherer.Name) == "" {
		missing = append(missing, "gatherer.name")
	}
	if strings.TrimSpace(input.Gatherer.Email) == "" {
		missing = append(missing, "gatherer.email")
	}
	if len(missing) > 0 {
		return nil, appErrors.NewValidation(missing...)
	}

	now := s.now()
	campaign := model.Campaign{
		ID:             uuid.NewString(),
		BirthdayPerson: input.BirthdayPerson,
		Gatherer:       input.Gatherer,
		InvitedEmails:  dedupeEmails(input.InvitedEmails),
		Status:         model.StatusCollecting,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	l := s.locks()
	l.campaigns.Lock()
	defer l.campaigns.Unlock()

	campaigns, err := s.CampaignRepo.List()
	if err != nil {
		return nil, err
	}
	campaigns = append(campaigns, campaign)
	if err := s.CampaignRepo.SaveAll(campaigns); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (s *CampaignService) GetCampaign(id string) (*model.Campaign, error) {
	return s.CampaignRepo.GetByID(id)
}

func (s *CampaignService) ListCampaigns() ([]model.Campaign, error) {
	return s.CampaignRepo.List()
}

// UpdateCampaign shallow-merges the provided fields over the stored record
// and refreshes updatedAt.
func (s *CampaignService) UpdateCampaign(id string, input UpdateCampaignInput) (*model.Campaign, error) {
	if input.Status != nil && !model.ValidStatus(*input.Status) {
		return nil, appErrors.NewValidation("status")
	}

	l := s.locks()
	l.campaigns.Lock()
	defer l.campaigns.Unlock()

	campaigns, err := s.CampaignRepo.List()
	if err != nil {
		return nil, err
	}
	idx := findCampaign(campaigns, id)
	if idx < 0 {
		return nil, appErrors.NewCampaignNotFound(id)
	}

	c := &campaigns[idx]
	if input.BirthdayPerson != nil {
		c.BirthdayPerson = *input.BirthdayPerson
	}
	if input.Gatherer != nil {
		c.Gatherer = *input.Gatherer
	}
	if input.InvitedEmails != nil {
		c.InvitedEmails = dedupeEmails(*input.InvitedEmails)
	}
	if input.Status != nil {
		c.Status = *input.Status
	}
	if input.PhotoURL != nil {
		c.PhotoURL = *input.PhotoURL
	}
	c.UpdatedAt = s.now()

	if err := s.CampaignRepo.SaveAll(campaigns); err != nil {
		return nil, err
	}
	updated := campaigns[idx]
	return &updated, nil
}

// AddInvitees unions emails into the invite list and returns the updated
// campaign plus the subset that was actually new, so callers notify only
// addresses that have not been invited before.
func (s *CampaignService) AddInvitees(id string, emails []string) (*model.Campaign, []string, error) {
	l := s.locks()
	l.campaigns.Lock()
	defer l.campaigns.Unlock()

	campaigns, err := s.CampaignRepo.List()
	if err != nil {
		return nil, nil, err
	}
	idx := findCampaign(campaigns, id)
	if idx < 0 {
		return nil, nil, appErrors.NewCampaignNotFound(id)
	}

	c := &campaigns[idx]
	seen := map[string]bool{}
	for _, e := range c.InvitedEmails {
		seen[e] = true
	}
	newEmails := []string{}
	for _, e := range dedupeEmails(emails) {
		if !seen[e] {
			seen[e] = true
			c.InvitedEmails = append(c.InvitedEmails, e)
			newEmails = append(newEmails, e)
		}
	}
	c.UpdatedAt = s.now()

	if err := s.CampaignRepo.SaveAll(campaigns); err != nil {
		return nil, nil, err
	}
	updated := campaigns[idx]
	return &updated, newEmails, nil
}

// SetPhotoURL records the uploaded birthday photo location.
func (s *CampaignService) SetPhotoURL(id, photoURL string) (*model.Campaign, error) {
	return s.UpdateCampaign(id, UpdateCampaignInput{PhotoURL: &photoURL})
}

// DeleteCampaign removes the campaign and cascades deletion of every
// greeting that belongs to it.
func (s *CampaignService) DeleteCampaign(id string) error {
	l := s.locks()
	l.campaigns.Lock()
	defer l.campaigns.Unlock()
	l.greetings.Lock()
	defer l.greetings.Unlock()

	campaigns, err := s.CampaignRepo.List()
	if err != nil {
		return err
	}
	idx := findCampaign(campaigns, id)
	if idx < 0 {
		return appErrors.NewCampaignNotFound(id)
	}
	campaigns = append(campaigns[:idx], campaigns[idx+1:]...)
	if err := s.CampaignRepo.SaveAll(campaigns); err != nil {
		return err
	}

	greetings, err := s.GreetingRepo.List("")
	if err != nil {
		return err
	}
	kept := greetings[:0]
	for _, g := range greetings {
		if g.CampaignID != id {
			kept = append(kept, g)
		}
	}
	return s.GreetingRepo.SaveAll(kept)
}

// VerifyInvitee reports whether email is on the campaign's invite list.
func (s *CampaignService) VerifyInvitee(id, email string) (bool, error) {
	campaign, err := s.CampaignRepo.GetByID(id)
	if err != nil {
		return false, err
	}
	needle := strings.ToLower(strings.TrimSpace(email))
	for _, e := range campaign.InvitedEmails {
		if strings.ToLower(e) == needle {
			return true, nil
		}
	}
	return false, nil
}

// RefreshStatus advances the campaign to completed once every invited email
// has submitted a greeting. It is a separately callable operation, not a
// side effect of reads or greeting submission.
func (s *CampaignService) RefreshStatus(id string) (*model.Campaign, error) {
	l := s.locks()
	l.campaigns.Lock()
	defer l.campaigns.Unlock()

	campaigns, err := s.CampaignRepo.List()
	if err != nil {
		return nil, err
	}
	idx := findCampaign(campaigns, id)
	if idx < 0 {
		return nil, appErrors.NewCampaignNotFound(id)
	}
	c := &campaigns[idx]
	if c.Status == model.StatusCompleted || len(c.InvitedEmails) == 0 {
		result := *c
		return &result, nil
	}

	greetings, err := s.GreetingRepo.List(id)
	if err != nil {
		return nil, err
	}
	responded := map[string]bool{}
	for _, g := range greetings {
		if g.SenderEmail != "" {
			responded[strings.ToLower(g.SenderEmail)] = true
		}
	}
	for _, e := range c.InvitedEmails {
		if !responded[strings.ToLower(e)] {
			result := *c
			return &result, nil
		}
	}

	c.Status = model.StatusCompleted
	c.UpdatedAt = s.now()
	if err := s.CampaignRepo.SaveAll(campaigns); err != nil {
		return nil, err
	}
	result := campaigns[idx]
	return &result, nil
}

func findCampaign(campaigns []model.Campaign, id string) int {
	for i := range campaigns {
		if campaigns[i].ID == id {
			return i
		}
	}
	return -1
}

// dedupeEmails trims and collapses duplicates, keeping first-seen order.
func dedupeEmails(emails []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, e := range emails {
		e = strings.TrimSpace(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

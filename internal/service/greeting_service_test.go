package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/wishwell/wishwell-backend/internal/errors"
	"github.com/wishwell/wishwell-backend/internal/model"
)

func newGreetingService() (*GreetingService, *fakeGreetingRepo, *fakeClock) {
	repo := &fakeGreetingRepo{}
	clock := &fakeClock{t: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}
	return &GreetingService{GreetingRepo: repo, Now: clock.Now}, repo, clock
}

func TestCreateGreeting(t *testing.T) {
	svc, repo, clock := newGreetingService()

	greeting, err := svc.CreateGreeting(CreateGreetingInput{
		CampaignID:  "c1",
		Message:     "Happy birthday!",
		SenderName:  "Carol",
		SenderEmail: "c@x.com",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, greeting.ID)
	assert.Equal(t, "c1", greeting.CampaignID)
	assert.Equal(t, clock.t, greeting.CreatedAt)
	require.Len(t, repo.greetings, 1)
}

func TestCreateGreetingValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateGreetingInput
		missing []string
	}{
		{"missing campaign", CreateGreetingInput{Message: "hi"}, []string{"campaignId"}},
		{"missing message", CreateGreetingInput{CampaignID: "c1"}, []string{"message"}},
		{"missing both", CreateGreetingInput{Message: "  "}, []string{"campaignId", "message"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newGreetingService()

			_, err := svc.CreateGreeting(tt.input)
			var validationErr *appErrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.missing, validationErr.Fields)
			assert.Empty(t, repo.greetings)
		})
	}
}

func TestCreateGreetingAcceptsUnknownCampaign(t *testing.T) {
	// Orphan greetings are accepted; cascade delete sweeps them up later.
	svc, repo, _ := newGreetingService()

	_, err := svc.CreateGreeting(CreateGreetingInput{CampaignID: "ghost", Message: "hi"})
	require.NoError(t, err)
	require.Len(t, repo.greetings, 1)
}

func TestListGreetingsFiltered(t *testing.T) {
	svc, repo, _ := newGreetingService()
	repo.greetings = []model.Greeting{
		{ID: "g1", CampaignID: "c1"},
		{ID: "g2", CampaignID: "c2"},
		{ID: "g3", CampaignID: "c1"},
	}

	all, err := svc.ListGreetings("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := svc.ListGreetings("c1")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "g1", filtered[0].ID)
	assert.Equal(t, "g3", filtered[1].ID)
}

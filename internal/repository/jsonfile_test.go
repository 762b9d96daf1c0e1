package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/wishwell/wishwell-backend/internal/errors"
	"github.com/wishwell/wishwell-backend/internal/model"
)

func TestJSONCampaignRepositoryCreatesEmptyDocument(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	repo := NewJSONCampaignRepository(dir)

	campaigns, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, campaigns)

	data, err := os.ReadFile(filepath.Join(dir, "campaigns.json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestJSONCampaignRepositoryRoundTrip(t *testing.T) {
	repo := NewJSONCampaignRepository(t.TempDir())

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	in := []model.Campaign{
		{
			ID:             "c1",
			BirthdayPerson: model.BirthdayPerson{Name: "Ada"},
			Gatherer:       model.Gatherer{Name: "Bob", Email: "bob@x.com"},
			InvitedEmails:  []string{"c@x.com"},
			Status:         model.StatusCollecting,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{ID: "c2", Status: model.StatusCompleted, CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, repo.SaveAll(in))

	out, err := repo.List()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "c1", out[0].ID)
	assert.Equal(t, "Ada", out[0].BirthdayPerson.Name)
	assert.Equal(t, []string{"c@x.com"}, out[0].InvitedEmails)

	got, err := repo.GetByID("c2")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)
}

func TestJSONCampaignRepositoryGetByIDNotFound(t *testing.T) {
	repo := NewJSONCampaignRepository(t.TempDir())

	_, err := repo.GetByID("missing")
	var notFound *appErrors.ErrCampaignNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.CampaignID)
}

func TestJSONCampaignRepositoryCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "campaigns.json"), []byte("{not json"), 0o644))

	repo := NewJSONCampaignRepository(dir)
	_, err := repo.List()
	var storageErr *appErrors.StorageError
	require.ErrorAs(t, err, &storageErr)
}

func TestJSONGreetingRepositoryFiltersByCampaign(t *testing.T) {
	repo := NewJSONGreetingRepository(t.TempDir())

	in := []model.Greeting{
		{ID: "g1", CampaignID: "c1", Message: "hi"},
		{ID: "g2", CampaignID: "c2", Message: "yo"},
		{ID: "g3", CampaignID: "c1", Message: "hey"},
	}
	require.NoError(t, repo.SaveAll(in))

	all, err := repo.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := repo.List("c1")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "g1", filtered[0].ID)
	assert.Equal(t, "g3", filtered[1].ID)

	none, err := repo.List("unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestJSONGreetingRepositoryNormalizesLegacyFields(t *testing.T) {
	dir := t.TempDir()
	legacy := `[
        {"id":"g1","campaignId":"c1","message":"hello","name":"Carol","email":"carol@x.com","image":"/uploads/old.jpg"},
        {"id":"g2","campaignId":"c1","message":"hi","senderName":"Dan","senderEmail":"dan@x.com"}
    ]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "greetings.json"), []byte(legacy), 0o644))

	repo := NewJSONGreetingRepository(dir)
	greetings, err := repo.List("c1")
	require.NoError(t, err)
	require.Len(t, greetings, 2)

	assert.Equal(t, "Carol", greetings[0].SenderName)
	assert.Equal(t, "carol@x.com", greetings[0].SenderEmail)
	assert.Equal(t, "/uploads/old.jpg", greetings[0].ImageURL)

	assert.Equal(t, "Dan", greetings[1].SenderName)
	assert.Equal(t, "dan@x.com", greetings[1].SenderEmail)
}

func TestJSONGreetingRepositorySaveAllNil(t *testing.T) {
	repo := NewJSONGreetingRepository(t.TempDir())
	require.NoError(t, repo.SaveAll(nil))

	greetings, err := repo.List("")
	require.NoError(t, err)
	assert.Empty(t, greetings)
}

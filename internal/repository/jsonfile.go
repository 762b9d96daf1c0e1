package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	appErrors "github.com/wishwell/wishwell-backend/internal/errors"
	"github.com/wishwell/wishwell-backend/internal/model"
)

const (
	campaignsFile = "campaigns.json"
	greetingsFile = "greetings.json"
)

// documentFile is one JSON array document on disk. Every mutation rewrites
// the whole document; a mutex per file keeps individual reads and writes
// from interleaving, but read-modify-write sequences spanning two calls are
// serialized by the service layer, not here.
type documentFile struct {
	path string
	mu   sync.Mutex
}

// load reads the document into v, creating the directory and an empty
// document first if they do not exist yet.
func (d *documentFile) load(v interface{}) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensure(); err != nil {
		return err
	}
	data, err := os.ReadFile(d.path)
	if err != nil {
		return appErrors.NewStorage("read "+filepath.Base(d.path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return appErrors.NewStorage("decode "+filepath.Base(d.path), err)
	}
	return nil
}

// save replaces the document. It writes to a temp file in the same
// directory and renames it over the document so a crash mid-write never
// leaves a truncated array behind.
func (d *documentFile) save(v interface{}) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensure(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return appErrors.NewStorage("encode "+filepath.Base(d.path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(d.path), filepath.Base(d.path)+".tmp")
	if err != nil {
		return appErrors.NewStorage("create temp file", err)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return appErrors.NewStorage("write "+filepath.Base(d.path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return appErrors.NewStorage("close "+filepath.Base(d.path), err)
	}
	if err := os.Rename(tmp.Name(), d.path); err != nil {
		os.Remove(tmp.Name())
		return appErrors.NewStorage("replace "+filepath.Base(d.path), err)
	}
	return nil
}

// ensure creates the data directory and an empty document when absent.
// Callers must hold d.mu.
func (d *documentFile) ensure() error {
	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return appErrors.NewStorage("create data directory", err)
	}
	if _, err := os.Stat(d.path); os.IsNotExist(err) {
		if err := os.WriteFile(d.path, []byte("[]\n"), 0o644); err != nil {
			return appErrors.NewStorage("initialize "+filepath.Base(d.path), err)
		}
	} else if err != nil {
		return appErrors.NewStorage("stat "+filepath.Base(d.path), err)
	}
	return nil
}

// ====================== Campaigns ======================

type JSONCampaignRepository struct {
	doc *documentFile
}

func NewJSONCampaignRepository(dataDir string) *JSONCampaignRepository {
	return &JSONCampaignRepository{
		doc: &documentFile{path: filepath.Join(dataDir, campaignsFile)},
	}
}

func (r *JSONCampaignRepository) List() ([]model.Campaign, error) {
	campaigns := []model.Campaign{}
	if err := r.doc.load(&campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *JSONCampaignRepository) GetByID(id string) (*model.Campaign, error) {
	campaigns, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range campaigns {
		if campaigns[i].ID == id {
			return &campaigns[i], nil
		}
	}
	return nil, appErrors.NewCampaignNotFound(id)
}

func (r *JSONCampaignRepository) SaveAll(campaigns []model.Campaign) error {
	if campaigns == nil {
		campaigns = []model.Campaign{}
	}
	return r.doc.save(campaigns)
}

// ====================== Greetings ======================

// greetingDocument carries the legacy field aliases that older documents
// used (name/email/image) alongside the canonical shape, so old data keeps
// loading without a separate migration run.
type greetingDocument struct {
	model.Greeting
	LegacyName  string `json:"name,omitempty"`
	LegacyEmail string `json:"email,omitempty"`
	LegacyImage string `json:"image,omitempty"`
}

func (g greetingDocument) normalize() model.Greeting {
	out := g.Greeting
	if out.SenderName == "" {
		out.SenderName = g.LegacyName
	}
	if out.SenderEmail == "" {
		out.SenderEmail = g.LegacyEmail
	}
	if out.ImageURL == "" {
		out.ImageURL = g.LegacyImage
	}
	return out
}

type JSONGreetingRepository struct {
	doc *documentFile
}

func NewJSONGreetingRepository(dataDir string) *JSONGreetingRepository {
	return &JSONGreetingRepository{
		doc: &documentFile{path: filepath.Join(dataDir, greetingsFile)},
	}
}

func (r *JSONGreetingRepository) List(campaignID string) ([]model.Greeting, error) {
	docs := []greetingDocument{}
	if err := r.doc.load(&docs); err != nil {
		return nil, err
	}
	greetings := []model.Greeting{}
	for _, d := range docs {
		g := d.normalize()
		if campaignID != "" && g.CampaignID != campaignID {
			continue
		}
		greetings = append(greetings, g)
	}
	return greetings, nil
}

func (r *JSONGreetingRepository) SaveAll(greetings []model.Greeting) error {
	if greetings == nil {
		greetings = []model.Greeting{}
	}
	return r.doc.save(greetings)
}

var _ CampaignRepositoryInterface = (*JSONCampaignRepository)(nil)
var _ GreetingRepositoryInterface = (*JSONGreetingRepository)(nil)

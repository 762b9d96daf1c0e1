package repository

import (
	"database/sql"
	"encoding/json"

	_ "github.com/lib/pq"

	appErrors "github.com/wishwell/wishwell-backend/internal/errors"
	"github.com/wishwell/wishwell-backend/internal/model"
)

// OpenPostgres connects to Postgres and creates the document tables. Each
// collection keeps the same whole-document contract as the JSON files: one
// row per record with the record stored as jsonb, seq preserving storage
// order. SaveAll runs in a transaction, so the overwrite is atomic here.
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, appErrors.NewStorage("open postgres", err)
	}
	if err := db.Ping(); err != nil {
		return nil, appErrors.NewStorage("ping postgres", err)
	}
	schema := `
        CREATE TABLE IF NOT EXISTS campaigns (
            id  TEXT PRIMARY KEY,
            seq BIGSERIAL,
            doc JSONB NOT NULL
        );
        CREATE TABLE IF NOT EXISTS greetings (
            id  TEXT PRIMARY KEY,
            seq BIGSERIAL,
            doc JSONB NOT NULL
        );
    `
	if _, err := db.Exec(schema); err != nil {
		return nil, appErrors.NewStorage("create tables", err)
	}
	return db, nil
}

type PostgresCampaignRepository struct {
	DB *sql.DB
}

func (r *PostgresCampaignRepository) List() ([]model.Campaign, error) {
	rows, err := r.DB.Query(`SELECT doc FROM campaigns ORDER BY seq`)
	if err != nil {
		return nil, appErrors.NewStorage("list campaigns", err)
	}
	defer rows.Close()

	campaigns := []model.Campaign{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, appErrors.NewStorage("scan campaign", err)
		}
		var c model.Campaign
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, appErrors.NewStorage("decode campaign", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.NewStorage("list campaigns", err)
	}
	return campaigns, nil
}

func (r *PostgresCampaignRepository) GetByID(id string) (*model.Campaign, error) {
	var doc []byte
	err := r.DB.QueryRow(`SELECT doc FROM campaigns WHERE id=$1`, id).Scan(&doc)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, appErrors.NewStorage("get campaign", err)
	}
	var c model.Campaign
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, appErrors.NewStorage("decode campaign", err)
	}
	return &c, nil
}

func (r *PostgresCampaignRepository) SaveAll(campaigns []model.Campaign) error {
	return replaceAll(r.DB, "campaigns", len(campaigns), func(i int) (string, interface{}) {
		return campaigns[i].ID, campaigns[i]
	})
}

type PostgresGreetingRepository struct {
	DB *sql.DB
}

func (r *PostgresGreetingRepository) List(campaignID string) ([]model.Greeting, error) {
	query := `SELECT doc FROM greetings`
	args := []interface{}{}
	if campaignID != "" {
		query += ` WHERE doc->>'campaignId' = $1`
		args = append(args, campaignID)
	}
	query += ` ORDER BY seq`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, appErrors.NewStorage("list greetings", err)
	}
	defer rows.Close()

	greetings := []model.Greeting{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, appErrors.NewStorage("scan greeting", err)
		}
		var g greetingDocument
		if err := json.Unmarshal(doc, &g); err != nil {
			return nil, appErrors.NewStorage("decode greeting", err)
		}
		greetings = append(greetings, g.normalize())
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.NewStorage("list greetings", err)
	}
	return greetings, nil
}

func (r *PostgresGreetingRepository) SaveAll(greetings []model.Greeting) error {
	return replaceAll(r.DB, "greetings", len(greetings), func(i int) (string, interface{}) {
		return greetings[i].ID, greetings[i]
	})
}

// replaceAll rewrites a collection table inside one transaction, keeping
// slice order as storage order via the seq column.
func replaceAll(db *sql.DB, table string, n int, record func(i int) (string, interface{})) error {
	tx, err := db.Begin()
	if err != nil {
		return appErrors.NewStorage("begin save "+table, err)
	}
	if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
		tx.Rollback()
		return appErrors.NewStorage("clear "+table, err)
	}
	for i := 0; i < n; i++ {
		id, rec := record(i)
		doc, err := json.Marshal(rec)
		if err != nil {
			tx.Rollback()
			return appErrors.NewStorage("encode "+table, err)
		}
		if _, err := tx.Exec(`INSERT INTO `+table+` (id, doc) VALUES ($1, $2)`, id, doc); err != nil {
			tx.Rollback()
			return appErrors.NewStorage("insert "+table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return appErrors.NewStorage("commit save "+table, err)
	}
	return nil
}

var _ CampaignRepositoryInterface = (*PostgresCampaignRepository)(nil)
var _ GreetingRepositoryInterface = (*PostgresGreetingRepository)(nil)

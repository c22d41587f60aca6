package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"jobscaffold-backend/internal/domain"
)

type LeadRepository interface {
	// Upsert inserts the lead or, when the email already exists, refreshes
	// its attribution fields.
	Upsert(ctx context.Context, lead *domain.Lead) error
	ListSince(ctx context.Context, since time.Time) ([]domain.Lead, error)
}

type leadRepository struct {
	db *sqlx.DB
}

func NewLeadRepository(db *sqlx.DB) LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) Upsert(ctx context.Context, lead *domain.Lead) error {
	query := `
		INSERT INTO leads (email, source, utm_source, utm_medium, utm_campaign, utm_term, utm_content, landing_path, referrer, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (email) DO UPDATE SET
			source = EXCLUDED.source,
			utm_source = COALESCE(EXCLUDED.utm_source, leads.utm_source),
			utm_medium = COALESCE(EXCLUDED.utm_medium, leads.utm_medium),
			utm_campaign = COALESCE(EXCLUDED.utm_campaign, leads.utm_campaign),
			utm_term = COALESCE(EXCLUDED.utm_term, leads.utm_term),
			utm_content = COALESCE(EXCLUDED.utm_content, leads.utm_content),
			landing_path = COALESCE(EXCLUDED.landing_path, leads.landing_path),
			referrer = COALESCE(EXCLUDED.referrer, leads.referrer),
			user_agent = COALESCE(EXCLUDED.user_agent, leads.user_agent),
			updated_at = NOW()
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		lead.Email, lead.Source, lead.UTMSource, lead.UTMMedium, lead.UTMCampaign,
		lead.UTMTerm, lead.UTMContent, lead.LandingPath, lead.Referrer, lead.UserAgent,
	).Scan(&lead.CreatedAt, &lead.UpdatedAt)
}

func (r *leadRepository) ListSince(ctx context.Context, since time.Time) ([]domain.Lead, error) {
	var leads []domain.Lead
	query := `SELECT * FROM leads WHERE created_at >= $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &leads, query, since)
	return leads, err
}

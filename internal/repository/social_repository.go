package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/credipyme/risk-api/internal/models"
	"github.com/google/uuid"
)

// socialRepository implements SocialRepository
type socialRepository struct {
	db dbExecutor
}

// NewSocialRepository creates a new social analysis repository
func NewSocialRepository(db dbExecutor) SocialRepository {
	return &socialRepository{db: db}
}

// GetLatestByCompany retrieves the most recent social snapshot
func (r *socialRepository) GetLatestByCompany(companyID uuid.UUID) (*models.SocialAnalysis, error) {
	query := `
		SELECT id, company_id, followers_count, posts_count, engagement_rate,
			   overall_sentiment, professional_content_score, posting_frequency,
			   source, captured_at, created_at
		FROM social_media_analyses
		WHERE company_id = $1
		ORDER BY captured_at DESC
		LIMIT 1
	`

	analysis := &models.SocialAnalysis{}
	err := r.db.QueryRow(query, companyID).Scan(
		&analysis.ID, &analysis.CompanyID, &analysis.FollowersCount,
		&analysis.PostsCount, &analysis.EngagementRate, &analysis.OverallSentiment,
		&analysis.ProfessionalContentScore, &analysis.PostingFrequency,
		&analysis.Source, &analysis.CapturedAt, &analysis.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no social analysis for company")
		}
		return nil, fmt.Errorf("failed to get social analysis: %w", err)
	}

	return analysis, nil
}

// Create stores a new social snapshot
func (r *socialRepository) Create(analysis *models.SocialAnalysis) error {
	if analysis.ID == uuid.Nil {
		analysis.ID = uuid.New()
	}
	if analysis.CapturedAt.IsZero() {
		analysis.CapturedAt = time.Now()
	}
	analysis.CreatedAt = time.Now()

	query := `
		INSERT INTO social_media_analyses (
			id, company_id, followers_count, posts_count, engagement_rate,
			overall_sentiment, professional_content_score, posting_frequency,
			source, captured_at, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	_, err := r.db.Exec(query,
		analysis.ID, analysis.CompanyID, analysis.FollowersCount,
		analysis.PostsCount, analysis.EngagementRate, analysis.OverallSentiment,
		analysis.ProfessionalContentScore, analysis.PostingFrequency,
		analysis.Source, analysis.CapturedAt, analysis.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create social analysis: %w", err)
	}

	return nil
}

// DeleteByCompany removes all snapshots for a company
func (r *socialRepository) DeleteByCompany(companyID uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM social_media_analyses WHERE company_id = $1`, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete social analyses: %w", err)
	}
	return nil
}

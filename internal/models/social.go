package models

import (
	"time"

	"github.com/google/uuid"
)

// SocialAnalysis represents one captured social-media snapshot for a
// company.
type SocialAnalysis struct {
	ID                       uuid.UUID `json:"id" db:"id"`
	CompanyID                uuid.UUID `json:"company_id" db:"company_id"`
	FollowersCount           int       `json:"followers_count" db:"followers_count"`
	PostsCount               int       `json:"posts_count" db:"posts_count"`
	EngagementRate           float64   `json:"engagement_rate" db:"engagement_rate"`
	OverallSentiment         string    `json:"overall_sentiment" db:"overall_sentiment"`
	ProfessionalContentScore float64   `json:"professional_content_score" db:"professional_content_score"`
	PostingFrequency         string    `json:"posting_frequency" db:"posting_frequency"`
	Source                   string    `json:"source" db:"source"`
	CapturedAt               time.Time `json:"captured_at" db:"captured_at"`
	CreatedAt                time.Time `json:"created_at" db:"created_at"`
}

// Sentiment labels accepted by the analysis pipeline
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

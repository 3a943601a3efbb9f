// Package social collects the public social-media signal for a company.
// The web fetcher reads open profile and site pages; the scoring layer
// only sees the resulting SocialRecord.
package social

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/credipyme/risk-api/internal/models"
	"github.com/credipyme/risk-api/internal/scoring"
)

// Fetcher produces a social snapshot for a company.
type Fetcher interface {
	FetchSocialSignal(ctx context.Context, company *models.Company) (*scoring.SocialRecord, error)
}

// WebFetcher builds the snapshot from the company's own website and
// linked public profiles.
type WebFetcher struct {
	client *Client
}

// NewWebFetcher creates a fetcher backed by a rate-limited HTTP client
func NewWebFetcher(requestsPerSecond int) *WebFetcher {
	return &WebFetcher{client: NewClient(requestsPerSecond)}
}

var followerPattern = regexp.MustCompile(`([\d.,]+)\s*(mil|[kK]|[mM])?\s*(seguidores|followers)`)

// FetchSocialSignal visits the company site and linked profiles and
// extracts whatever public counters the pages expose. Pages that fail
// to load degrade the record instead of failing the fetch; a company
// with no reachable presence yields an all-zero record.
func (f *WebFetcher) FetchSocialSignal(ctx context.Context, company *models.Company) (*scoring.SocialRecord, error) {
	record := &scoring.SocialRecord{}

	if company.Website != "" {
		if doc, err := f.client.Get(ctx, company.Website); err == nil {
			record.ProfessionalContentScore = siteContentScore(doc)
		}
	}

	for _, url := range company.SocialLinks {
		doc, err := f.client.Get(ctx, url)
		if err != nil {
			continue
		}
		if followers := extractFollowers(doc); followers > record.FollowersCount {
			record.FollowersCount = followers
		}
		record.PostsCount += countPosts(doc)
	}

	if record.PostsCount > 0 {
		record.PostingFrequency = "monthly"
	} else {
		record.PostingFrequency = "rarely"
	}
	record.OverallSentiment = models.SentimentNeutral

	return record, nil
}

// Close releases the underlying HTTP client
func (f *WebFetcher) Close() {
	f.client.Close()
}

// siteContentScore grades how complete a company site looks from its
// markup: description metadata, contact info and structural depth.
func siteContentScore(doc *goquery.Document) float64 {
	score := 0.2

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok && len(desc) > 40 {
		score += 0.2
	}
	if doc.Find(`a[href^="mailto:"], a[href^="tel:"]`).Length() > 0 {
		score += 0.2
	}
	if doc.Find("nav").Length() > 0 {
		score += 0.2
	}
	if doc.Find(`meta[property="og:title"]`).Length() > 0 {
		score += 0.2
	}

	return score
}

// extractFollowers scans visible text and meta descriptions for a
// follower counter.
func extractFollowers(doc *goquery.Document) int {
	candidates := []string{doc.Find("body").Text()}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		candidates = append(candidates, desc)
	}

	for _, text := range candidates {
		match := followerPattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		value := strings.ReplaceAll(strings.ReplaceAll(match[1], ".", ""), ",", "")
		n, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		switch strings.ToLower(match[2]) {
		case "mil", "k":
			n *= 1000
		case "m":
			n *= 1000000
		}
		return n
	}

	return 0
}

func countPosts(doc *goquery.Document) int {
	return doc.Find("article").Length()
}

// StaticFetcher returns a fixed snapshot, for tests and offline runs.
type StaticFetcher struct {
	Record scoring.SocialRecord
	Err    error
}

// FetchSocialSignal returns the configured record
func (f *StaticFetcher) FetchSocialSignal(ctx context.Context, company *models.Company) (*scoring.SocialRecord, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	record := f.Record
	return &record, nil
}

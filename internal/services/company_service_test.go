package services

import (
	"testing"

	apperrors "github.com/credipyme/risk-api/internal/errors"
	"github.com/credipyme/risk-api/internal/models"
	"github.com/credipyme/risk-api/internal/repository"
	"github.com/credipyme/risk-api/internal/scoring"
	"github.com/credipyme/risk-api/internal/social"
)

func TestValidateRUC(t *testing.T) {
	tests := []struct {
		name    string
		ruc     string
		wantErr bool
	}{
		{"valid", "1790012345001", false},
		{"too short", "179001234501", true},
		{"too long", "17900123450011", true},
		{"letters", "17900izq45001", true},
		{"wrong suffix", "1790012345002", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRUC(tt.ruc)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateRUC(%q) error = %v, wantErr %v", tt.ruc, err, tt.wantErr)
			}
			if err != nil {
				if code := errCode(t, err); code != apperrors.ErrCodeInvalidInput {
					t.Errorf("error code = %q, want %q", code, apperrors.ErrCodeInvalidInput)
				}
			}
		})
	}
}

func TestCreateCompanyDefaults(t *testing.T) {
	repos := newTestRepos()
	service := newCompanyService(repos, &social.StaticFetcher{}, noopLogger{})

	company, err := service.Create(&repository.CompanyForm{
		RUC:    "1790012345001",
		Name:   "Comercial Andina",
		Sector: "Comercio",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if company.LegalStatus != models.LegalStatusActive {
		t.Errorf("legal status = %q, want %q", company.LegalStatus, models.LegalStatusActive)
	}
	if company.ComplianceStatus != models.ComplianceCurrent {
		t.Errorf("compliance status = %q, want %q", company.ComplianceStatus, models.ComplianceCurrent)
	}

	got, err := service.GetByRUC("1790012345001")
	if err != nil {
		t.Fatalf("GetByRUC: %v", err)
	}
	if got.Name != "Comercial Andina" {
		t.Errorf("name = %q, want Comercial Andina", got.Name)
	}
}

func TestCreateCompanyDuplicateRUC(t *testing.T) {
	repos := newTestRepos()
	service := newCompanyService(repos, &social.StaticFetcher{}, noopLogger{})

	form := &repository.CompanyForm{RUC: "1790012345001", Name: "Primera", Sector: "Comercio"}
	if _, err := service.Create(form); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := service.Create(&repository.CompanyForm{RUC: "1790012345001", Name: "Segunda", Sector: "Servicios"})
	if code := errCode(t, err); code != apperrors.ErrCodeConflict {
		t.Errorf("error code = %q, want %q", code, apperrors.ErrCodeConflict)
	}
}

func TestSubmitStatementRejectsBadFiscalYear(t *testing.T) {
	repos := newTestRepos()
	companyID := seedStrongCompany(t, repos)
	service := newCompanyService(repos, &social.StaticFetcher{}, noopLogger{})

	for _, year := range []int{1899, 2100} {
		_, err := service.SubmitStatement(companyID.String(), &repository.StatementForm{FiscalYear: year})
		if code := errCode(t, err); code != apperrors.ErrCodeValidationError {
			t.Errorf("year %d: error code = %q, want %q", year, code, apperrors.ErrCodeValidationError)
		}
	}
}

func TestSubmitStatementReplacesSameYear(t *testing.T) {
	repos := newTestRepos()
	companyID := seedStrongCompany(t, repos)
	service := newCompanyService(repos, &social.StaticFetcher{}, noopLogger{})

	form := &repository.StatementForm{FiscalYear: 2025, TotalRevenue: 700000}
	if _, err := service.SubmitStatement(companyID.String(), form); err != nil {
		t.Fatalf("SubmitStatement: %v", err)
	}

	statements, err := repos.Statement.ListByCompany(companyID)
	if err != nil {
		t.Fatalf("ListByCompany: %v", err)
	}
	if len(statements) != 2 {
		t.Fatalf("statements = %d, want 2 (2024 and the replaced 2025)", len(statements))
	}
	if statements[0].TotalRevenue != 700000 {
		t.Errorf("latest revenue = %v, want the replacement 700000", statements[0].TotalRevenue)
	}
}

func TestRefreshSocialSnapshot(t *testing.T) {
	repos := newTestRepos()
	companyID := seedStrongCompany(t, repos)

	fetcher := &social.StaticFetcher{Record: scoring.SocialRecord{
		FollowersCount:           12500,
		PostsCount:               40,
		EngagementRate:           3.5,
		OverallSentiment:         models.SentimentPositive,
		ProfessionalContentScore: 0.6,
		PostingFrequency:         "weekly",
	}}
	service := newCompanyService(repos, fetcher, noopLogger{})

	analysis, err := service.RefreshSocialSnapshot(companyID.String())
	if err != nil {
		t.Fatalf("RefreshSocialSnapshot: %v", err)
	}
	if analysis.FollowersCount != 12500 {
		t.Errorf("followers = %d, want 12500", analysis.FollowersCount)
	}
	if analysis.Source != "web" {
		t.Errorf("source = %q, want web", analysis.Source)
	}

	latest, err := repos.Social.GetLatestByCompany(companyID)
	if err != nil {
		t.Fatalf("GetLatestByCompany: %v", err)
	}
	if latest.FollowersCount != 12500 {
		t.Errorf("stored followers = %d, want 12500", latest.FollowersCount)
	}
}

func TestRefreshSocialSnapshotFetchFailure(t *testing.T) {
	repos := newTestRepos()
	companyID := seedStrongCompany(t, repos)

	fetcher := &social.StaticFetcher{Err: apperrors.ServiceError("profile unreachable", nil)}
	service := newCompanyService(repos, fetcher, noopLogger{})

	_, err := service.RefreshSocialSnapshot(companyID.String())
	if code := errCode(t, err); code != apperrors.ErrCodeServiceError {
		t.Errorf("error code = %q, want %q", code, apperrors.ErrCodeServiceError)
	}
}

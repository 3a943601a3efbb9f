package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Company represents a registered PyME
type Company struct {
	ID               uuid.UUID   `json:"id" db:"id"`
	RUC              string      `json:"ruc" db:"ruc"`
	Name             string      `json:"name" db:"name"`
	Sector           string      `json:"sector" db:"sector"`
	FoundationDate   *time.Time  `json:"foundation_date" db:"foundation_date"`
	EmployeeCount    int         `json:"employee_count" db:"employee_count"`
	Website          string      `json:"website" db:"website"`
	Description      string      `json:"description" db:"description"`
	SocialLinks      SocialLinks `json:"social_links" db:"social_links"`
	Address          Address     `json:"address" db:"address"`
	LegalStatus      string      `json:"legal_status" db:"legal_status"`
	ComplianceStatus string      `json:"compliance_status" db:"compliance_status"`
	DigitalScore     float64     `json:"digital_score" db:"digital_score"`
	Verified         bool        `json:"verified" db:"verified"`
	CreatedAt        time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at" db:"updated_at"`
}

// Company legal status values from the registry
const (
	LegalStatusActive    = "ACTIVA"
	LegalStatusSuspended = "SUSPENDIDA"
	LegalStatusDissolved = "DISUELTA"
)

// Compliance status values
const (
	ComplianceCurrent = "AL_DIA"
	ComplianceArrears = "MORA"
)

// SocialLinks maps a platform name to a profile URL, stored as JSON
type SocialLinks map[string]string

// Address represents a company address as JSON
type Address struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
	PostCode string `json:"post_code"`
}

// Value implements driver.Valuer for SocialLinks
func (s SocialLinks) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for SocialLinks
func (s *SocialLinks) Scan(value interface{}) error {
	if value == nil {
		*s = SocialLinks{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into SocialLinks", value)
	}

	return json.Unmarshal(bytes, s)
}

// Value implements driver.Valuer for Address
func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for Address
func (a *Address) Scan(value interface{}) error {
	if value == nil {
		*a = Address{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into Address", value)
	}

	return json.Unmarshal(bytes, a)
}

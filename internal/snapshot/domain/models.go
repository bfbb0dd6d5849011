// Package domain contains the immutable pricing snapshot.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	packagepricedomain "github.com/renolab/bathquote/internal/packageprice/domain"
	quotedomain "github.com/renolab/bathquote/internal/quote/domain"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Status is the customer-facing lifecycle of a snapshotted quote. Status
// moves forward; the priced numbers never change.
type Status string

const (
	StatusDraft            Status = "draft"
	StatusCustomerViewable Status = "customer_viewable"
	StatusReserved         Status = "reserved"
	StatusAccepted         Status = "accepted"
	StatusExpired          Status = "expired"
)

var legalTransitions = map[Status][]Status{
	StatusDraft:            {StatusCustomerViewable, StatusExpired},
	StatusCustomerViewable: {StatusReserved, StatusAccepted, StatusExpired},
	StatusReserved:         {StatusAccepted, StatusExpired},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to Status) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PricingSnapshot is written once per finalized quote and never mutated.
// A configuration change produces a new snapshot under a new checksum,
// which is what keeps a customer-facing quote stable while admins edit
// rate cards.
type PricingSnapshot struct {
	ID             snowflake.ID    `json:"id" gorm:"primaryKey"`
	QuoteRef       string          `json:"quote_ref" gorm:"type:text;not null;index"`
	Status         Status          `json:"status" gorm:"type:text;not null;default:draft"`
	LabourTotal    decimal.Decimal `json:"labour_total" gorm:"type:numeric;not null"`
	MaterialsTotal decimal.Decimal `json:"materials_total" gorm:"type:numeric;not null"`
	GrandTotal     decimal.Decimal `json:"grand_total" gorm:"type:numeric;not null"`
	ConfigVersion  int64           `json:"config_version" gorm:"not null"`
	PackageCode    string          `json:"package_code" gorm:"type:text"`
	LineItems      datatypes.JSON  `json:"line_items" gorm:"type:jsonb"`
	RawFormData    datatypes.JSON  `json:"raw_form_data" gorm:"type:jsonb"`
	Checksum       string          `json:"checksum" gorm:"type:text;not null;uniqueIndex"`
	CreatedAt      time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (PricingSnapshot) TableName() string { return "pricing_snapshots" }

// CreateRequest carries both pricing inputs for one snapshot.
type CreateRequest struct {
	QuoteRef      string                           `json:"quote_ref" binding:"required"`
	Form          quotedomain.QuoteFormData        `json:"form" binding:"required"`
	PackageCode   string                           `json:"package_code" binding:"required"`
	Configuration packagepricedomain.Configuration `json:"configuration" binding:"required"`
}

// CreateResult pairs the stored snapshot with materials diagnostics.
type CreateResult struct {
	Snapshot    *PricingSnapshot `json:"snapshot"`
	MissingSKUs []string         `json:"missing_skus,omitempty"`
	Warnings    []string         `json:"warnings,omitempty"`
	Reused      bool             `json:"reused"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*CreateResult, error)
	Get(ctx context.Context, id string) (*PricingSnapshot, error)
	Transition(ctx context.Context, id string, to Status) (*PricingSnapshot, error)
}

var (
	ErrNotFound          = errors.New("snapshot_not_found")
	ErrInvalidID         = errors.New("invalid_snapshot_id")
	ErrInvalidTransition = errors.New("invalid_status_transition")
)

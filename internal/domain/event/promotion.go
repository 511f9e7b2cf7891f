package event

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zona2/backend/internal/domain/shared"
)

// Promotion represents a discount code for an event's registration fee
type Promotion struct {
	shared.BaseEntity
	EventID         uuid.UUID
	Code            string // Unique across all events
	DiscountPercent decimal.Decimal
	ExpiresAt       time.Time
	MaxUses         int // Zero means unlimited
	Uses            int
}

// NewPromotion creates a new promotion
func NewPromotion(eventID uuid.UUID, code string, discountPercent decimal.Decimal, expiresAt time.Time, maxUses int) (*Promotion, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	if eventID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EVENT", "Event ID cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Promotion code cannot be empty")
	}
	if discountPercent.LessThanOrEqual(decimal.Zero) || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between 0 and 100 percent")
	}
	if expiresAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_EXPIRY", "Expiry time cannot be zero")
	}
	if maxUses < 0 {
		return nil, shared.NewDomainError("INVALID_MAX_USES", "Max uses cannot be negative")
	}

	return &Promotion{
		BaseEntity:      shared.NewBaseEntity(),
		EventID:         eventID,
		Code:            code,
		DiscountPercent: discountPercent,
		ExpiresAt:       expiresAt,
		MaxUses:         maxUses,
	}, nil
}

// IsUsable returns true if the promotion can still be redeemed
func (p *Promotion) IsUsable(now time.Time) bool {
	if now.After(p.ExpiresAt) {
		return false
	}
	if p.MaxUses > 0 && p.Uses >= p.MaxUses {
		return false
	}
	return true
}

// Redeem consumes one use of the promotion
func (p *Promotion) Redeem(now time.Time) error {
	if !p.IsUsable(now) {
		return shared.NewDomainError("PROMOTION_EXHAUSTED", "Promotion has expired or reached its use limit")
	}
	p.Uses++
	p.Touch()
	return nil
}

// Apply returns the fee after discount
func (p *Promotion) Apply(fee decimal.Decimal) decimal.Decimal {
	discount := fee.Mul(p.DiscountPercent).Div(decimal.NewFromInt(100))
	return fee.Sub(discount).Round(2)
}

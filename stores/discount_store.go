package stores

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Govind-619/Sodfaa/gateway"
	"github.com/Govind-619/Sodfaa/models"
)

// Discount code validation failures
var (
	ErrCodeNotFound      = errors.New("discount code not found")
	ErrCodeInactive      = errors.New("discount code is not active")
	ErrCodeNotStarted    = errors.New("discount code is not valid yet")
	ErrCodeExpired       = errors.New("discount code has expired")
	ErrCodeExhausted     = errors.New("discount code usage limit reached")
	ErrOrderBelowMinimum = errors.New("order amount is below the code minimum")
)

// DiscountCodeStore manages discount codes
type DiscountCodeStore struct {
	codes collection[models.DiscountCode]
}

func NewDiscountCodeStore(gw gateway.Gateway) *DiscountCodeStore {
	return &DiscountCodeStore{
		codes: newCollection(gw, models.DiscountCodesCollection,
			func(d *models.DiscountCode, id string) { d.ID = id },
			gateway.Query{OrderBy: "createdAt", Desc: true}),
	}
}

// NormalizeCode is the stored form of a code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *DiscountCodeStore) Create(ctx context.Context, d models.DiscountCode) (string, error) {
	now := time.Now()
	d.ID = ""
	d.Code = NormalizeCode(d.Code)
	d.CreatedAt, d.UpdatedAt = now, now
	return s.codes.Create(ctx, d)
}

func (s *DiscountCodeStore) List(ctx context.Context) ([]models.DiscountCode, error) {
	return s.codes.List(ctx, gateway.Query{})
}

func (s *DiscountCodeStore) Get(ctx context.Context, id string) (*models.DiscountCode, error) {
	d, err := s.codes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FindByCode looks a code up case-insensitively
func (s *DiscountCodeStore) FindByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	found, err := s.codes.List(ctx, gateway.Query{
		Where: map[string]interface{}{"code": NormalizeCode(code)},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrCodeNotFound
	}
	return &found[0], nil
}

func (s *DiscountCodeStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if code, ok := fields["code"].(string); ok {
		fields["code"] = NormalizeCode(code)
	}
	fields["updatedAt"] = time.Now()
	return s.codes.Update(ctx, id, fields)
}

func (s *DiscountCodeStore) Delete(ctx context.Context, id string) error {
	return s.codes.Delete(ctx, id)
}

// Validate checks a code against an order amount at now
func (s *DiscountCodeStore) Validate(ctx context.Context, code string, orderAmount float64, now time.Time) (*models.DiscountCode, error) {
	d, err := s.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := CheckDiscountCode(*d, orderAmount, now); err != nil {
		return d, err
	}
	return d, nil
}

// CheckDiscountCode applies the activity, date window, usage and minimum
// order rules to one code. Zero dates and a zero usage limit are open.
func CheckDiscountCode(d models.DiscountCode, orderAmount float64, now time.Time) error {
	switch {
	case !d.IsActive:
		return ErrCodeInactive
	case !d.StartDate.IsZero() && now.Before(d.StartDate):
		return ErrCodeNotStarted
	case !d.EndDate.IsZero() && now.After(d.EndDate):
		return ErrCodeExpired
	case d.UsageLimit > 0 && d.UsedCount >= d.UsageLimit:
		return ErrCodeExhausted
	case orderAmount < d.MinimumOrderAmount:
		return ErrOrderBelowMinimum
	}
	return nil
}

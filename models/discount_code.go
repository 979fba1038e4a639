package models

import (
	"time"
)

// DiscountCodesCollection is the gateway collection holding discount codes
const DiscountCodesCollection = "discountCodes"

type DiscountCode struct {
	ID                 string    `json:"id,omitempty"`
	Code               string    `json:"code"`
	Description        string    `json:"description"`
	DiscountPercentage float64   `json:"discountPercentage"`
	IsActive           bool      `json:"isActive"`
	UsageLimit         int       `json:"usageLimit"` // 0 means unlimited
	UsedCount          int       `json:"usedCount"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	MinimumOrderAmount float64   `json:"minimumOrderAmount"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

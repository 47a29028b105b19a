package procurementapimodels

import (
	"github.com/pkg/errors"
	dbmodels "procure-ops-backend/models/db"
)

type VendorData struct {
	Name                string  `json:"name"`
	Specialization      string  `json:"specialization"`
	Rating              float64 `json:"rating"`                 // 0..5
	ReliabilityScore    float64 `json:"reliability_score"`      // 0..1
	AverageLeadTimeDays int     `json:"average_lead_time_days"`
}

func (v VendorData) Validate() error {
	if v.Name == "" {
		return errors.New("vendor name is required")
	}
	if v.Rating < 0 || v.Rating > 5 {
		return errors.New("rating must be in [0,5]")
	}
	if v.ReliabilityScore < 0 || v.ReliabilityScore > 1 {
		return errors.New("reliability score must be in [0,1]")
	}
	return nil
}

type VendorView struct {
	VendorData
	ID string `json:"id"`
}

func VendorConvert(rec dbmodels.Vendor) VendorView {
	return VendorView{
		VendorData: VendorData{
			Name:                rec.Name,
			Specialization:      rec.Specialization,
			Rating:              rec.Rating,
			ReliabilityScore:    rec.ReliabilityScore,
			AverageLeadTimeDays: rec.AverageLeadTimeDays,
		},
		ID: rec.ID,
	}
}

type VendorFindRequest struct {
	Category     string   `json:"category"`
	ItemName     string   `json:"item_name,omitempty"`
	CurrentStock *float64 `json:"current_stock,omitempty"`
	MinThreshold *float64 `json:"min_threshold,omitempty"`
}

func (r VendorFindRequest) Validate() error {
	if r.Category == "" {
		return errors.New("category is required")
	}
	return nil
}

// VendorRecommendation is the validated outcome of a sourcing run.
type VendorRecommendation struct {
	VendorID   string `json:"vendor_id"`
	VendorName string `json:"vendor_name"`
	Reasoning  string `json:"reasoning"`
}

package procurementapimodels

import workforceapimodels "procure-ops-backend/models/api/workforce"

// PipelineResult is the combined trace of one car-factory run:
// stock check, vendor sourcing and task assignment.
type PipelineResult struct {
	SelectedItem      *InventoryItemView                    `json:"selected_item,omitempty"`
	RecommendedVendor *VendorRecommendation                 `json:"recommended_vendor,omitempty"`
	AssignmentResult  *workforceapimodels.AssignmentResult  `json:"assignment_result,omitempty"`
	Logs              []string                              `json:"logs"`
}

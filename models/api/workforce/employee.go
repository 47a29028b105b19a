package workforceapimodels

import (
	"time"

	"github.com/pkg/errors"
	dbmodels "procure-ops-backend/models/db"
)

type EmployeeData struct {
	Name           string   `json:"name"`            // full name
	Role           string   `json:"role"`            // job role
	Skills         []string `json:"skills"`          // skill tags
	MaxCapacity    float64  `json:"max_capacity"`    // hours per week
	AllocatedHours float64  `json:"allocated_hours"` // currently allocated hours
}

func (e EmployeeData) Validate() error {
	if e.Name == "" {
		return errors.New("employee name is required")
	}
	if e.MaxCapacity < 0 {
		return errors.New("max capacity must not be negative")
	}
	if e.AllocatedHours < 0 {
		return errors.New("allocated hours must not be negative")
	}
	return nil
}

type EmployeeView struct {
	EmployeeData
	ID                 string    `json:"id"`
	AvailableHours     float64   `json:"available_hours"`
	UtilizationPercent int       `json:"utilization_percent"`
	CreatedAt          time.Time `json:"created_at"`
}

func EmployeeConvert(rec dbmodels.Employee) EmployeeView {
	return EmployeeView{
		EmployeeData: EmployeeData{
			Name:           rec.Name,
			Role:           rec.Role,
			Skills:         rec.Skills,
			MaxCapacity:    rec.MaxCapacity,
			AllocatedHours: rec.AllocatedHours,
		},
		ID:                 rec.ID,
		AvailableHours:     rec.AvailableHours(),
		UtilizationPercent: rec.UtilizationPercent(),
		CreatedAt:          rec.CreatedAt,
	}
}

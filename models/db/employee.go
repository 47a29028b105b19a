package dbmodels

import "strings"

type Employee struct {
	BaseModel
	Name           string      `gorm:"type:varchar(255)"`
	Role           string      `gorm:"type:varchar(255)"`
	Skills         StringSlice `gorm:"type:jsonb"`
	MaxCapacity    float64
	AllocatedHours float64
}

func (Employee) TableName() string {
	return "employees"
}

// AvailableHours may be negative when the overflow policy allows
// allocating past capacity.
func (e Employee) AvailableHours() float64 {
	return e.MaxCapacity - e.AllocatedHours
}

func (e Employee) UtilizationPercent() int {
	if e.MaxCapacity <= 0 {
		return 100
	}
	return int(e.AllocatedHours / e.MaxCapacity * 100)
}

func (e Employee) HasSkill(skill string) bool {
	for _, s := range e.Skills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}

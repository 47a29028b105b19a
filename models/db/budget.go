package dbmodels

import "time"

type Budget struct {
	BaseModel
	Category     string `gorm:"type:varchar(255);index"`
	MonthlyLimit float64
	CurrentSpend float64
	PeriodStart  time.Time
	PeriodEnd    time.Time `gorm:"index"`
}

func (Budget) TableName() string {
	return "procurement_budgets"
}

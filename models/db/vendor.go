package dbmodels

type Vendor struct {
	BaseModel
	Name                string `gorm:"type:varchar(255)"`
	Specialization      string `gorm:"type:varchar(255)"`
	Rating              float64
	ReliabilityScore    float64
	AverageLeadTimeDays int
}

func (Vendor) TableName() string {
	return "vendors"
}

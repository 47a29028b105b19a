package employeehandler

import (
	"gorm.io/gorm"
	"procure-ops-backend/db"
	employeestore "procure-ops-backend/lib/employee/store"
	"procure-ops-backend/models"
	workforceapimodels "procure-ops-backend/models/api/workforce"
	dbmodels "procure-ops-backend/models/db"
)

type Provider interface {
	Create(data workforceapimodels.EmployeeData) (id string, err error)
	GetByID(id string) (*workforceapimodels.EmployeeView, error)
	Update(id string, data workforceapimodels.EmployeeData) error
	List() ([]workforceapimodels.EmployeeView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB)
}

func NewInstance(DB *gorm.DB) Provider {
	return impl{
		store: employeestore.NewInstance(DB),
	}
}

type impl struct {
	store employeestore.Provider
}

func (i impl) Create(data workforceapimodels.EmployeeData) (string, error) {
	return i.store.Create(dbmodels.Employee{
		Name:           data.Name,
		Role:           data.Role,
		Skills:         data.Skills,
		MaxCapacity:    data.MaxCapacity,
		AllocatedHours: data.AllocatedHours,
	})
}

func (i impl) GetByID(id string) (*workforceapimodels.EmployeeView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.ErrNotFound
	}
	view := workforceapimodels.EmployeeConvert(*rec)
	return &view, nil
}

func (i impl) Update(id string, data workforceapimodels.EmployeeData) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.ErrNotFound
	}
	return i.store.Update(id, map[string]interface{}{
		"name":            data.Name,
		"role":            data.Role,
		"skills":          dbmodels.StringSlice(data.Skills),
		"max_capacity":    data.MaxCapacity,
		"allocated_hours": data.AllocatedHours,
	})
}

func (i impl) List() ([]workforceapimodels.EmployeeView, error) {
	list, err := i.store.List()
	if err != nil {
		return nil, err
	}
	result := make([]workforceapimodels.EmployeeView, 0, len(list))
	for _, rec := range list {
		result = append(result, workforceapimodels.EmployeeConvert(rec))
	}
	return result, nil
}

package taskhandler

import (
	"gorm.io/gorm"
	"procure-ops-backend/db"
	taskstore "procure-ops-backend/lib/task/store"
	"procure-ops-backend/models"
	workforceapimodels "procure-ops-backend/models/api/workforce"
	dbmodels "procure-ops-backend/models/db"
)

type Provider interface {
	Create(data workforceapimodels.TaskData) (id string, err error)
	GetByID(id string) (*workforceapimodels.TaskView, error)
	SetStatus(id string, status models.TaskStatus) error
	List() ([]workforceapimodels.TaskView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB)
}

func NewInstance(DB *gorm.DB) Provider {
	return impl{
		store: taskstore.NewInstance(DB),
	}
}

type impl struct {
	store taskstore.Provider
}

func (i impl) Create(data workforceapimodels.TaskData) (string, error) {
	return i.store.Create(dbmodels.ProcurementTask{
		Title:          data.Title,
		RequiredSkill:  data.RequiredSkill,
		EstimatedHours: data.EstimatedHours,
		Priority:       data.Priority,
		Status:         models.TaskStatusPending,
	})
}

func (i impl) GetByID(id string) (*workforceapimodels.TaskView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.ErrNotFound
	}
	view := workforceapimodels.TaskConvert(*rec)
	return &view, nil
}

func (i impl) SetStatus(id string, status models.TaskStatus) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.ErrNotFound
	}
	return i.store.Update(id, map[string]interface{}{"status": status})
}

func (i impl) List() ([]workforceapimodels.TaskView, error) {
	list, err := i.store.List()
	if err != nil {
		return nil, err
	}
	result := make([]workforceapimodels.TaskView, 0, len(list))
	for _, rec := range list {
		result = append(result, workforceapimodels.TaskConvert(rec))
	}
	return result, nil
}

package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// StringSlice is stored as a json column.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	valueString, err := json.Marshal(s)
	return string(valueString), err
}

func (s *StringSlice) Scan(value any) error {
	return scanJSON(value, s)
}

// Metadata is free-form json attached to a record.
type Metadata map[string]any

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		m = Metadata{}
	}
	valueString, err := json.Marshal(m)
	return string(valueString), err
}

func (m *Metadata) Scan(value any) error {
	return scanJSON(value, m)
}

func scanJSON(value any, out any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, out)
	case string:
		return json.Unmarshal([]byte(v), out)
	}
	return errors.Errorf("unsupported column type %T", value)
}

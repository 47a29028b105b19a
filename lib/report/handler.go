package reporthandler

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"procure-ops-backend/db"
	assignmentlogstore "procure-ops-backend/lib/assignment/log-store"
	xlsexport "procure-ops-backend/lib/export/xls"
	filestorage "procure-ops-backend/lib/file-storage"
	dbmodels "procure-ops-backend/models/db"
)

type Provider interface {
	// ApprovalReport builds the approvals sheet. Archiving to the object
	// store is best-effort, the download succeeds either way.
	ApprovalReport(ctx context.Context) (fileName string, data *bytes.Buffer, err error)
	AssignmentReport(ctx context.Context) (fileName string, data *bytes.Buffer, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB)
}

func NewInstance(DB *gorm.DB) Provider {
	return impl{
		db:       DB,
		logStore: assignmentlogstore.NewInstance(DB),
	}
}

type impl struct {
	db       *gorm.DB
	logStore assignmentlogstore.Provider
}

func (i impl) ApprovalReport(ctx context.Context) (string, *bytes.Buffer, error) {
	list := []dbmodels.ApprovalRequest{}
	err := i.db.
		Order("created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return "", nil, errors.Wrap(err, "approval listing failed")
	}
	buf, err := xlsexport.Instance.ExportApprovalList(list)
	if err != nil {
		return "", nil, err
	}
	name := fmt.Sprintf("approvals-%s", time.Now().Format("20060102-150405"))
	i.archive(ctx, name, buf.Bytes())
	return name + ".xlsx", buf, nil
}

func (i impl) AssignmentReport(ctx context.Context) (string, *bytes.Buffer, error) {
	list, err := i.logStore.List()
	if err != nil {
		return "", nil, errors.Wrap(err, "assignment log listing failed")
	}
	buf, err := xlsexport.Instance.ExportAssignmentLog(list)
	if err != nil {
		return "", nil, err
	}
	name := fmt.Sprintf("assignments-%s", time.Now().Format("20060102-150405"))
	i.archive(ctx, name, buf.Bytes())
	return name + ".xlsx", buf, nil
}

func (i impl) archive(ctx context.Context, name string, data []byte) {
	if filestorage.Instance == nil {
		return
	}
	objectName, err := filestorage.Instance.ArchiveReport(ctx, name, data)
	if err != nil {
		log.WithError(err).WithField("report", name).Error("report archiving failed")
		return
	}
	log.WithField("object_name", objectName).Info("report archived")
}

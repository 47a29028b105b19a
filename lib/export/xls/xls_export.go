package xlsexport

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	dbmodels "procure-ops-backend/models/db"
)

type Provider interface {
	ExportApprovalList(list []dbmodels.ApprovalRequest) (*bytes.Buffer, error)
	ExportAssignmentLog(list []dbmodels.AssignmentLog) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var approvalHeaders = []string{"Request type", "Amount", "Status", "Current level", "Max level", "Chain", "Comments", "Rejection reason", "Created"}

func (i impl) ExportApprovalList(list []dbmodels.ApprovalRequest) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer closeFile(f)
	sheet := "Sheet1"
	row, err := writeHeaderRow(f, sheet, 0, approvalHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "xlsx header write failed")
	}
	if len(list) != 0 {
		if err = writeApprovalData(f, sheet, list, row); err != nil {
			return nil, errors.Wrap(err, "xlsx data write failed")
		}
	}
	f.SetSheetName(sheet, "Approvals")
	return f.WriteToBuffer()
}

func writeApprovalData(f *excelize.File, sheet string, list []dbmodels.ApprovalRequest, row int) error {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(approvalHeaders), len(list)+1); err != nil {
		return err
	}
	for _, item := range list {
		row++
		values := []interface{}{
			string(item.RequestType),
			item.Amount,
			string(item.Status),
			item.CurrentApproverLevel,
			item.MaxApprovalLevel,
			chainSummary(item.ApprovalChain),
			item.Comments,
			item.RejectionReason,
			item.CreatedAt.Format("02.01.2006 15:04"),
		}
		for col, value := range values {
			if err := setCell(f, sheet, col+1, row, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func chainSummary(chain dbmodels.ApprovalChain) string {
	parts := make([]string, 0, len(chain))
	for _, entry := range chain {
		parts = append(parts, entry.Approver+": "+string(entry.Status))
	}
	return strings.Join(parts, ", ")
}

var assignmentHeaders = []string{"Task", "Employee", "Score", "Reasoning", "Assigned at"}

func (i impl) ExportAssignmentLog(list []dbmodels.AssignmentLog) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer closeFile(f)
	sheet := "Sheet1"
	row, err := writeHeaderRow(f, sheet, 0, assignmentHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "xlsx header write failed")
	}
	if len(list) != 0 {
		if err = writeAssignmentData(f, sheet, list, row); err != nil {
			return nil, errors.Wrap(err, "xlsx data write failed")
		}
	}
	f.SetSheetName(sheet, "Assignments")
	return f.WriteToBuffer()
}

func writeAssignmentData(f *excelize.File, sheet string, list []dbmodels.AssignmentLog, row int) error {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(assignmentHeaders), len(list)+1); err != nil {
		return err
	}
	for _, item := range list {
		row++
		taskTitle := item.TaskID
		if item.Task != nil {
			taskTitle = item.Task.Title
		}
		employeeName := item.EmployeeID
		if item.Employee != nil {
			employeeName = item.Employee.Name
		}
		values := []interface{}{
			taskTitle,
			employeeName,
			item.Score,
			item.Reasoning,
			item.CreatedAt.Format("02.01.2006 15:04"),
		}
		for col, value := range values {
			if err := setCell(f, sheet, col+1, row, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func closeFile(f *excelize.File) {
	if err := f.Close(); err != nil {
		log.WithError(err).Error("xlsx file close failed")
	}
}

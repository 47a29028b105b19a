package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	"procure-ops-backend/config"
)

// Provider archives generated report files in the object store so a
// report stays retrievable after it was downloaded.
type Provider interface {
	ArchiveReport(ctx context.Context, reportName string, data []byte) (objectName string, err error)
	GetReport(ctx context.Context, objectName string) ([]byte, error)
}

var Instance Provider

type impl struct {
	s3client *minio.Client
}

func NewInstance(s3client *minio.Client) {
	Instance = &impl{
		s3client: s3client,
	}
}

func (i impl) ArchiveReport(ctx context.Context, reportName string, data []byte) (string, error) {
	objectName := fmt.Sprintf("reports/%s/%s.xlsx", time.Now().Format("2006-01-02"), reportName)
	_, err := i.s3client.PutObject(ctx, config.Conf.S3.BucketName, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"})
	if err != nil {
		return "", errors.Wrap(err, "report upload failed")
	}
	return objectName, nil
}

func (i impl) GetReport(ctx context.Context, objectName string) ([]byte, error) {
	object, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "report download failed")
	}
	defer object.Close()
	buf := bytes.Buffer{}
	if _, err = buf.ReadFrom(object); err != nil {
		return nil, errors.Wrap(err, "report read failed")
	}
	return buf.Bytes(), nil
}

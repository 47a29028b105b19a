package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"
	filestorage "procure-ops-backend/lib/file-storage"
	s3client "procure-ops-backend/s3"
)

// InitS3 wires the report archive. The service stays usable without it,
// reports are then download-only.
func InitS3() {
	client, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("S3 client initialization failed")
		return
	}
	if err = client.MakeBucket(context.Background()); err != nil {
		log.WithError(err).Error("S3 bucket creation failed")
		return
	}
	filestorage.NewInstance(client.Client())
	log.Info("S3 client initialized")
}

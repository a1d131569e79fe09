// Package minio stores deliverable artifacts. Freelancers upload a
// work archive through a presigned PUT; owners download through a
// presigned GET resolved when the project is served. The chat and
// negotiation core never reads artifact bytes itself.
package minio

import (
	"context"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/google/uuid"
	minioSDK "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/skillbridge/marketplace-go/config"
)

var Client *minioSDK.Client
var BucketName string

const presignExpiry = 15 * time.Minute

// InitMinio connects and ensures the bucket exists. An empty endpoint
// leaves artifact storage disabled; the rest of the system runs
// without it.
func InitMinio() {
	if config.MinioEndpoint == "" {
		log.Println("MinIO endpoint not configured, artifact storage disabled")
		return
	}
	BucketName = config.MinioBucket

	minioClient, err := minioSDK.New(config.MinioEndpoint, &minioSDK.Options{
		Creds:  credentials.NewStaticV4(config.MinioAccessKey, config.MinioSecretKey, ""),
		Secure: config.MinioUseSSL,
	})
	if err != nil {
		log.Printf("Failed to connect to MinIO: %v", err)
		return
	}

	ctx := context.Background()
	exists, err := minioClient.BucketExists(ctx, BucketName)
	if err != nil {
		log.Printf("Failed to check bucket existence: %v", err)
		return
	}
	if !exists {
		if err := minioClient.MakeBucket(ctx, BucketName, minioSDK.MakeBucketOptions{}); err != nil {
			log.Printf("Failed to create bucket: %v", err)
			return
		}
		log.Printf("Bucket created: %s", BucketName)
	}

	Client = minioClient
	log.Println("Successfully connected to MinIO")
}

func Enabled() bool {
	return Client != nil
}

// PresignUpload returns a PUT URL for a fresh object key derived from
// the project and file name.
func PresignUpload(ctx context.Context, projectID uint, fileName string) (uploadURL, objectKey string, err error) {
	if !Enabled() {
		return "", "", fmt.Errorf("artifact storage is not configured")
	}
	objectKey = fmt.Sprintf("projects/%d/%s%s", projectID, uuid.New().String(), path.Ext(fileName))
	u, err := Client.PresignedPutObject(ctx, BucketName, objectKey, presignExpiry)
	if err != nil {
		return "", "", err
	}
	return u.String(), objectKey, nil
}

// PresignDownload returns a short-lived GET URL for a stored artifact.
func PresignDownload(ctx context.Context, objectKey string) (string, error) {
	if !Enabled() {
		return "", fmt.Errorf("artifact storage is not configured")
	}
	u, err := Client.PresignedGetObject(ctx, BucketName, objectKey, presignExpiry, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

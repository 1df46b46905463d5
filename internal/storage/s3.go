package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/AutoRepairsHQ/shop-manager/internal/config"
)

// Uploader stores employee pictures in an S3 bucket.
type Uploader struct {
	client *s3.Client
	bucket string
	region string
}

func NewUploader(cfg *appconfig.Config) *Uploader {
	awsCfg := aws.Config{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	return &Uploader{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.S3Bucket,
		region: cfg.S3Region,
	}
}

// Enabled reports whether a bucket is configured. Picture uploads are
// rejected cleanly when storage is not set up.
func (u *Uploader) Enabled() bool {
	return u.bucket != ""
}

// UploadEmployeePicture stores a WebP-encoded picture and returns its
// public URL.
func (u *Uploader) UploadEmployeePicture(
	ctx context.Context,
	employeeID uint,
	data []byte,
) (string, error) {

	key := fmt.Sprintf("employee_pics/%d.webp", employeeID)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}

package advisor

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Archive keeps a copy of every uploaded resume.
type Archive interface {
	Store(ctx context.Context, filename, contentType string, data []byte) (key string, err error)
}

// S3Archive stores uploads in an S3-compatible bucket.
type S3Archive struct {
	client *s3.Client
	bucket string
	now    func() time.Time
}

func NewS3Archive(ctx context.Context, conf config.ArchiveConfig) (*S3Archive, error) {
	awsConfig, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AccessKey, conf.SecretKey, "")),
		awsconfig.WithRegion(conf.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating aws config: %w", err)
	}
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Archive{client: client, bucket: conf.Bucket, now: time.Now}, nil
}

// objectKey groups uploads by day, e.g. resumes/2025/07/30/<uuid>.pdf.
func objectKey(now time.Time, filename string) string {
	return path.Join("resumes", now.UTC().Format("2006/01/02"), uuid.NewString()+path.Ext(filename))
}

func (a *S3Archive) Store(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	key := objectKey(a.now(), filename)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		Metadata:    map[string]string{"filename": filename},
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object: %w", err)
	}
	return key, nil
}

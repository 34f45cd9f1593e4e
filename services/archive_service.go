package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

// Archiver keeps a copy of pinned content outside IPFS.
type Archiver interface {
	Archive(ctx context.Context, hash string, data []byte, contentType string) error
}

// SupabaseArchive writes objects to Supabase Storage through its S3-compatible endpoint.
type SupabaseArchive struct {
	s3Client   *s3.Client
	bucketName string
	log        *logrus.Entry
}

type ArchiveOptions struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
}

func NewSupabaseArchive(ctx context.Context, opts ArchiveOptions, log *logrus.Entry) (*SupabaseArchive, error) {
	endpoint := strings.TrimSuffix(opts.Endpoint, "/")

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("us-east-1"), // ignored by Supabase
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Supabase requires path-style addressing
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	log.WithFields(logrus.Fields{"endpoint": endpoint, "bucket": opts.Bucket}).Info("Archive mirror enabled")
	return &SupabaseArchive{s3Client: client, bucketName: opts.Bucket, log: log}, nil
}

// ObjectKey is where the content for hash is stored.
func ObjectKey(hash string) string {
	return "ipfs/" + hash
}

func (a *SupabaseArchive) Archive(ctx context.Context, hash string, data []byte, contentType string) error {
	_, err := a.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucketName),
		Key:           aws.String(ObjectKey(hash)),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to archive: %w", hash, err)
	}
	a.log.WithFields(logrus.Fields{"hash": hash, "size": len(data)}).Debug("Archived content")
	return nil
}

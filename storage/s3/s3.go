package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"report-backend/config"
	"report-backend/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/rs/zerolog/log"
)

// ErrIncompleteS3Config is returned when the S3 configuration is incomplete
var ErrIncompleteS3Config = errors.New("incomplete S3 configuration")

// ErrBlobNotFound is returned when the addressed object does not exist
var ErrBlobNotFound = errors.New("blob not found")

// S3Storage implements the storage interface on an S3 bucket
type S3Storage struct {
	S3Client *s3.Client
	Timeout  time.Duration
	Bucket   string
}

// New creates a new s3-backed storage
func New() (*S3Storage, error) {
	// check for required S3 configuration
	if strings.TrimSpace(config.Cfg.Storage.S3.AccessKey) == "" ||
		strings.TrimSpace(config.Cfg.Storage.S3.KeyID) == "" ||
		strings.TrimSpace(config.Cfg.Storage.S3.Endpoint) == "" ||
		strings.TrimSpace(config.Cfg.Storage.S3.Region) == "" ||
		strings.TrimSpace(config.Cfg.Storage.S3.Bucket) == "" ||
		strings.TrimSpace(config.Cfg.Storage.S3.Timeout) == "" {
		return nil, fmt.Errorf("%w", ErrIncompleteS3Config)
	}
	s3Client := s3.New(s3.Options{
		UsePathStyle: true,
		BaseEndpoint: aws.String(config.Cfg.Storage.S3.Endpoint),
		Region:       config.Cfg.Storage.S3.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				config.Cfg.Storage.S3.KeyID,
				config.Cfg.Storage.S3.AccessKey,
				"",
			),
		),
	})

	timeoutDuration, err := time.ParseDuration(config.Cfg.Storage.S3.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid S3 timeout value: %w", err)
	}

	return &S3Storage{
		S3Client: s3Client,
		Timeout:  timeoutDuration,
		Bucket:   config.Cfg.Storage.S3.Bucket,
	}, nil
}

// Store uploads content under the given key
func (s *S3Storage) Store(key string, content []byte) error {
	uploader := manager.NewUploader(s.S3Client)

	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()
	result, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(content),
	})
	if err != nil {
		var mu manager.MultiUploadFailure
		if errors.As(err, &mu) {
			log.Error().
				Msg(fmt.Sprintf("multi-upload failure (upload_id: %s): %v", mu.UploadID(), mu))

			return &storage.Error{
				Op:    "store",
				Path:  key,
				Inner: fmt.Errorf("multi-upload failure (upload_id: %s): %w", mu.UploadID(), mu),
			}
		}

		log.Error().Err(err).Msg("upload failure")

		return &storage.Error{Op: "store", Path: key, Inner: err}
	}
	log.Debug().
		Str("location", result.Location).
		Msg("successfully uploaded blob to s3 bucket")

	return nil
}

// Delete removes a single object
func (s *S3Storage) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	_, err := s.S3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFoundErr *types.NotFound
		if errors.As(err, &notFoundErr) {
			return &storage.Error{Op: "delete", Path: key, Inner: ErrBlobNotFound}
		}

		return &storage.Error{
			Op:    "delete",
			Path:  key,
			Inner: fmt.Errorf("failed to stat object: %w", err),
		}
	}

	_, err = s.S3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return &storage.Error{
			Op:    "delete",
			Path:  key,
			Inner: fmt.Errorf("failed to delete object: %w", err),
		}
	}

	return nil
}

// MoveDir re-keys every object under the src prefix to the dst prefix.
// S3 has no rename, so this is copy-then-delete per object.
func (s *S3Storage) MoveDir(src, dst string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	srcPrefix := strings.TrimSuffix(src, "/") + "/"
	dstPrefix := strings.TrimSuffix(dst, "/") + "/"

	paginator := s3.NewListObjectsV2Paginator(s.S3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.Bucket),
		Prefix: aws.String(srcPrefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return &storage.Error{
				Op:    "move",
				Path:  src,
				Inner: fmt.Errorf("failed to list objects: %w", err),
			}
		}

		for _, object := range page.Contents {
			srcKey := aws.ToString(object.Key)
			dstKey := dstPrefix + strings.TrimPrefix(srcKey, srcPrefix)

			_, err := s.S3Client.CopyObject(ctx, &s3.CopyObjectInput{
				Bucket:     aws.String(s.Bucket),
				CopySource: aws.String(path.Join(s.Bucket, srcKey)),
				Key:        aws.String(dstKey),
			})
			if err != nil {
				return &storage.Error{
					Op:    "move",
					Path:  srcKey,
					Inner: fmt.Errorf("failed to copy object: %w", err),
				}
			}

			_, err = s.S3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(s.Bucket),
				Key:    aws.String(srcKey),
			})
			if err != nil {
				return &storage.Error{
					Op:    "move",
					Path:  srcKey,
					Inner: fmt.Errorf("failed to delete source object: %w", err),
				}
			}
		}
	}

	return nil
}

package archive

import (
	"bytes"
	"context"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/modules/royalty/config"
	"github.com/gaze-network/royalty-registry/pkg/parquetutils"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
)

// Storage stores archive files.
type Storage interface {
	Name() string

	// Write creates the file of the given key and fills it with write.
	// Location returns where the file is stored, e.g. a local path or an s3:// url.
	Write(ctx context.Context, key string, write func(file source.ParquetFile) error) (location string, err error)
}

// NewStorage returns the S3 storage when a bucket is configured, otherwise the local storage.
func NewStorage(ctx context.Context, conf config.ArchiveConfig) (Storage, error) {
	if conf.S3.Bucket != "" {
		storage, err := NewS3Storage(ctx, conf.S3)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return storage, nil
	}
	if conf.Output == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "archive output directory or s3 bucket is required")
	}
	return NewLocalStorage(conf.Output), nil
}

var _ Storage = (*LocalStorage)(nil)

// LocalStorage writes archive files into a local directory.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{dir: dir}
}

func (s *LocalStorage) Name() string {
	return "local"
}

func (s *LocalStorage) Write(ctx context.Context, key string, write func(file source.ParquetFile) error) (string, error) {
	location := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(location), 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create archive directory")
	}
	file, err := local.NewLocalFileWriter(location)
	if err != nil {
		return "", errors.Wrap(err, "failed to create archive file")
	}
	if err := write(file); err != nil {
		_ = file.Close()
		_ = os.Remove(location)
		return "", errors.WithStack(err)
	}
	if err := file.Close(); err != nil {
		return "", errors.Wrap(err, "failed to close archive file")
	}
	return location, nil
}

type s3Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

var _ Storage = (*S3Storage)(nil)

// S3Storage uploads archive files to an S3 (or S3 compatible) bucket.
type S3Storage struct {
	uploader s3Uploader
	bucket   string
	prefix   string
}

func NewS3Storage(ctx context.Context, conf config.S3Config) (*S3Storage, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if conf.Region != "" {
		opts = append(opts, awsconfig.WithRegion(conf.Region))
	}
	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "can't load aws user config")
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
		}
		o.UsePathStyle = conf.UsePathStyle
	})
	return &S3Storage{
		uploader: manager.NewUploader(client),
		bucket:   conf.Bucket,
		prefix:   conf.Prefix,
	}, nil
}

func (s *S3Storage) Name() string {
	return "s3"
}

func (s *S3Storage) Write(ctx context.Context, key string, write func(file source.ParquetFile) error) (string, error) {
	buffer := parquetutils.NewEmptyBufferFile()
	if err := write(buffer); err != nil {
		return "", errors.WithStack(err)
	}

	objectKey := path.Join(s.prefix, key)
	if _, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(buffer.Bytes()),
		ContentType: aws.String("application/vnd.apache.parquet"),
	}); err != nil {
		return "", errors.Wrapf(err, "failed to upload s3://%s/%s", s.bucket, objectKey)
	}
	return "s3://" + s.bucket + "/" + objectKey, nil
}

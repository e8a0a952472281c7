// Package storage aloja las fotos de los pedidos en un almacenamiento compatible con S3.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/jhoicas/Pedidos-api/internal/application/ports"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/pkg/config"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

var _ ports.ImageStorage = (*S3ImageStorage)(nil)

// s3API operaciones del cliente S3 que se usan (permite sustituirlo en tests).
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// S3ImageStorage implementa ports.ImageStorage sobre AWS S3 o cualquier compatible (MinIO, R2...).
type S3ImageStorage struct {
	client    s3API
	bucket    string
	folder    string
	publicURL string
	transform ImageTransform
	log       *logger.Logger
}

// NewS3ImageStorage construye el adaptador desde la configuración.
func NewS3ImageStorage(ctx context.Context, cfg config.StorageConfig, upload config.UploadConfig, log *logger.Logger) (*S3ImageStorage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("S3_BUCKET es obligatorio")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		if endpoint != "" {
			publicURL = strings.TrimRight(endpoint, "/") + "/" + cfg.Bucket
		} else {
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
		}
	}

	return newS3ImageStorage(client, cfg.Bucket, cfg.Folder, publicURL, ImageTransform{
		MaxWidth:  upload.MaxWidth,
		MaxHeight: upload.MaxHeight,
		Quality:   upload.Quality,
	}, log), nil
}

func newS3ImageStorage(client s3API, bucket, folder, publicURL string, t ImageTransform, log *logger.Logger) *S3ImageStorage {
	return &S3ImageStorage{
		client:    client,
		bucket:    bucket,
		folder:    strings.Trim(folder, "/"),
		publicURL: strings.TrimRight(publicURL, "/"),
		transform: t,
		log:       log.Named("storage"),
	}
}

// EnsureBucket crea el bucket si no existe. Llamar al arrancar.
func (s *S3ImageStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("%w: comprobar bucket: %v", domain.ErrUpstream, err)
	}

	s.log.Info().Str("bucket", s.bucket).Msg("creando bucket de imágenes")
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("%w: crear bucket: %v", domain.ErrUpstream, err)
	}
	return nil
}

// UploadImage transforma la imagen, la sube como image/jpeg y devuelve su URL pública.
func (s *S3ImageStorage) UploadImage(ctx context.Context, key string, data []byte) (string, error) {
	jpeg, err := s.transform.Apply(data)
	if err != nil {
		return "", err
	}
	objectKey := path.Join(s.folder, key)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(objectKey),
		Body:         bytes.NewReader(jpeg),
		ContentType:  aws.String("image/jpeg"),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("%w: subir %s: %v", domain.ErrUpstream, objectKey, err)
	}
	s.log.Debug().Str("key", objectKey).Int("bytes_in", len(data)).Int("bytes_out", len(jpeg)).Msg("imagen subida")
	return s.publicURL + "/" + objectKey, nil
}

package release

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"panda-menu/internal/config"
)

// S3Publisher uploads artifacts to an S3-compatible bucket.
type S3Publisher struct {
	client *s3.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewS3Publisher builds a publisher from static configuration. Empty keys mean
// anonymous requests.
func NewS3Publisher(cfg config.S3Config, logger *zap.Logger) *S3Publisher {
	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.UsePathStyle,
		// S3-compatible stores do not all accept the newer default checksums.
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKey != "" {
		accessKey, secretKey := cfg.AccessKey, cfg.SecretKey
		opts.Credentials = aws.NewCredentialsCache(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     accessKey,
					SecretAccessKey: secretKey,
					Source:          "panda-menu config",
				}, nil
			}))
	} else {
		opts.Credentials = aws.AnonymousCredentials{}
	}

	return &S3Publisher{
		client: s3.New(opts),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		logger: logger.Named("S3Publisher"),
	}
}

// Key returns the object key for an artifact name.
func (p *S3Publisher) Key(name string) string {
	return path.Join(p.prefix, name)
}

// Publish uploads one artifact.
func (p *S3Publisher) Publish(ctx context.Context, name, contentType string, body []byte) error {
	key := p.Key(name)
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 upload of %s failed: %w", key, err)
	}
	p.logger.Debug("Uploaded object", zap.String("bucket", p.bucket), zap.String("key", key))
	return nil
}

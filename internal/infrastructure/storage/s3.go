package storage

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/championship-organizer/internal/platform/logging"
)

type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

// S3LogoStorage uploads team and championship logos to an S3 compatible
// bucket (AWS, R2, MinIO) and serves them from PublicBaseURL.
type S3LogoStorage struct {
	client        *s3.Client
	bucket        string
	publicBaseURL *url.URL
	logger        *logging.Logger
}

func NewS3LogoStorage(ctx context.Context, cfg S3Config, logger *logging.Logger) (*S3LogoStorage, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Endpoint == "" || cfg.Bucket == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.PublicBaseURL == "" {
		return nil, crerr.New("invalid logo storage configuration: endpoint, bucket, credentials and public base url are required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.PublicBaseURL, "/") + "/")
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, crerr.Newf("invalid logo public base url %q", cfg.PublicBaseURL)
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	sdkCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "load s3 config")
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	return &S3LogoStorage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: base,
		logger:        logger,
	}, nil
}

// Upload buffers the body so the request can be signed, then stores it
// under key. Callers bound size before calling.
func (s *S3LogoStorage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", crerr.New("logo key is required")
	}

	buf := bytes.NewBuffer(make([]byte, 0, max(size, 0)))
	if _, err := io.Copy(buf, body); err != nil {
		return "", crerr.Wrap(err, "read logo body")
	}

	out, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(int64(buf.Len())),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=86400"),
	})
	if err != nil {
		return "", crerr.Wrapf(err, "put logo object %s", key)
	}

	etag := ""
	if out.ETag != nil {
		etag = strings.Trim(*out.ETag, `"`)
	}
	s.logger.InfoContext(ctx, "logo uploaded", "key", key, "bytes", buf.Len(), "etag", etag)

	return s.PublicURL(key), nil
}

func (s *S3LogoStorage) PublicURL(key string) string {
	ref := &url.URL{Path: strings.TrimLeft(key, "/")}
	return s.publicBaseURL.ResolveReference(ref).String()
}

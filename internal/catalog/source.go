package catalog

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// Source retrieves the raw catalog text. Any failure is a *NetworkError.
type Source interface {
	FetchText(ctx context.Context) (string, error)
	Name() string
}

// TextGetter is the part of the HTTP client the HTTP source needs
type TextGetter interface {
	GetText(ctx context.Context, path string) (string, error)
}

// HTTPSource fetches the catalog from a URL
type HTTPSource struct {
	client TextGetter
	path   string
}

func NewHTTPSource(client TextGetter, path string) *HTTPSource {
	return &HTTPSource{client: client, path: path}
}

func (s *HTTPSource) Name() string {
	return s.path
}

func (s *HTTPSource) FetchText(ctx context.Context) (string, error) {
	text, err := s.client.GetText(ctx, s.path)
	if err != nil {
		return "", NewNetworkError(s.Name(), err)
	}
	return text, nil
}

// S3Client defines the S3 operations the catalog needs
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// NewS3Client creates an S3 client from the default AWS configuration
func NewS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// S3Source reads the catalog object from a bucket
type S3Source struct {
	client S3Client
	bucket string
	key    string
}

func NewS3Source(client S3Client, bucket, key string) *S3Source {
	return &S3Source{client: client, bucket: bucket, key: key}
}

func (s *S3Source) Name() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

func (s *S3Source) FetchText(ctx context.Context) (string, error) {
	if s.bucket == "" {
		return "", NewNetworkError(s.Name(), fmt.Errorf("empty bucket name"))
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return "", NewNetworkError(s.Name(), err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing S3 object body")
		}
	}(result.Body)

	body, err := io.ReadAll(result.Body)
	if err != nil {
		return "", NewNetworkError(s.Name(), fmt.Errorf("reading object body: %w", err))
	}
	return string(body), nil
}

// FileSource reads the catalog from a local file
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return "file://" + s.path
}

func (s *FileSource) FetchText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", NewNetworkError(s.Name(), err)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", NewNetworkError(s.Name(), err)
	}
	return string(data), nil
}

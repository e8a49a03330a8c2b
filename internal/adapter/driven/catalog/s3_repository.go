package catalog

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
	"github.com/diillson/kitchen-cost-engine/internal/domain/repository"
)

// S3GetObjectAPI is the part of the S3 client used to fetch catalogs.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3RepositoryImpl reads a catalog document stored in an S3 bucket.
type S3RepositoryImpl struct {
	bucket  string
	key     string
	profile string
	region  string

	client S3GetObjectAPI
	mu     sync.Mutex
}

// NewS3Repository returns a repository for the object s3://bucket/key.
// The client is created lazily from the shared AWS configuration.
func NewS3Repository(uri, profile, region string) (repository.CatalogRepository, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}
	return &S3RepositoryImpl{bucket: bucket, key: key, profile: profile, region: region}, nil
}

// NewS3RepositoryWithClient uses the given client instead of loading AWS configuration.
func NewS3RepositoryWithClient(client S3GetObjectAPI, bucket, key string) *S3RepositoryImpl {
	return &S3RepositoryImpl{bucket: bucket, key: key, client: client}
}

// ParseS3URI splits s3://bucket/key into its parts.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", eris.Errorf("catalog: %q is not an s3:// URI", uri)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", eris.Errorf("catalog: %q must name both bucket and key", uri)
	}
	return bucket, key, nil
}

func (r *S3RepositoryImpl) getClient(ctx context.Context) (S3GetObjectAPI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client != nil {
		return r.client, nil
	}

	var opts []func(*config.LoadOptions) error
	if r.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(r.profile))
	}
	if r.region != "" {
		opts = append(opts, config.WithRegion(r.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to load AWS config for profile %s", r.profile)
	}

	r.client = s3.NewFromConfig(cfg)
	return r.client, nil
}

// LoadCatalog downloads the object and decodes it by the key's extension.
func (r *S3RepositoryImpl) LoadCatalog(ctx context.Context) (*entity.Catalog, error) {
	client, err := r.getClient(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: get s3://%s/%s", r.bucket, r.key)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: read s3 object")
	}

	c, err := DecodeCatalog(data, r.key)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("catalog loaded from s3",
		zap.String("bucket", r.bucket),
		zap.String("key", r.key),
		zap.Int("bytes", len(data)),
	)
	return c, nil
}

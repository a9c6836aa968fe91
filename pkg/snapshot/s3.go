package snapshot

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/vango-dev/reconcile/internal/errors"
)

// S3API is the subset of *s3.Client used by S3Store.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Store stores snapshots as objects in an S3 bucket.
//
// Example usage:
//
//	client := snapshot.NewS3Client("eu-west-1", "")
//	store := snapshot.NewS3Store(client, "my-bucket", "snapshots/")
type S3Store struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Store creates a new S3 snapshot store. Object keys are prefix+key+".html".
func NewS3Store(client S3API, bucket, prefix string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// NewS3Client builds a client from the standard AWS_* environment
// credentials. A non-empty endpoint selects path-style addressing against
// an S3-compatible server.
func NewS3Client(region, endpoint string) *s3.Client {
	opts := s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials)),
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func envCredentials(context.Context) (aws.Credentials, error) {
	id := os.Getenv("AWS_ACCESS_KEY_ID")
	secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.Credentials{}, stderrors.New("snapshot: AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return aws.Credentials{
		AccessKeyID:     id,
		SecretAccessKey: secret,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "environment",
	}, nil
}

func (s *S3Store) objectKey(key string) string {
	return s.prefix + key + Extension
}

// Put uploads the snapshot.
func (s *S3Store) Put(ctx context.Context, key string, html []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(html),
		ContentType: aws.String("text/html; charset=utf-8"),
	})
	if err != nil {
		return errors.New("S150").Wrap(err).WithDetail("s3://" + s.bucket + "/" + s.objectKey(key))
	}
	return nil
}

// Get downloads the snapshot.
func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if stderrors.As(err, &missing) {
			return nil, errors.New("S152").WithDetail("No snapshot " + key + " in s3://" + s.bucket)
		}
		return nil, errors.New("S151").Wrap(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.New("S151").Wrap(err)
	}
	return data, nil
}

// List pages through the bucket listing below the store prefix.
func (s *S3Store) List(ctx context.Context, prefix string) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix + prefix),
	})

	var keys []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.New("S151").Wrap(err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil || !strings.HasSuffix(*obj.Key, Extension) {
				continue
			}
			keys = append(keys, strings.TrimSuffix(strings.TrimPrefix(*obj.Key, s.prefix), Extension))
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Delete removes the object.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return errors.New("S150").Wrap(err)
	}
	return nil
}

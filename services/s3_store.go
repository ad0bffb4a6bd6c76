package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "github.com/mara-ellison/maras-boutique-api/config"
	"github.com/mara-ellison/maras-boutique-api/utils"
)

// assetFolder is the key prefix product images are stored under.
const assetFolder = "products"

// S3AssetStore keeps uploaded images in an S3 bucket and issues
// absolute virtual-hosted URLs.
type S3AssetStore struct {
	client *s3.Client
	bucket string
	region string
}

// NewS3AssetStore builds an S3-backed asset store from the AWS settings
// in the application configuration.
func NewS3AssetStore(cfg *appConfig.Config) (*S3AssetStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3AssetStore{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.AWSS3Bucket,
		region: cfg.AWSRegion,
	}, nil
}

// Store uploads the file content under {folder}/{generated-name} and
// returns the public URL. The object key carries no extension; the
// content type is set from the original filename instead.
func (s *S3AssetStore) Store(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("warning: failed to close file: %v", closeErr)
		}
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	name := utils.UniqueAssetName(fileHeader.Filename)
	key := fmt.Sprintf("%s/%s", assetFolder, strings.TrimSuffix(name, path.Ext(name)))

	_, err = s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(utils.ContentTypeForFilename(fileHeader.Filename)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// Delete removes the object behind a URL previously issued by Store. A
// missing object is not an error (S3 delete is idempotent).
func (s *S3AssetStore) Delete(rawURL string) error {
	key, err := AssetIDFromURL(rawURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete asset from S3: %w", err)
	}
	return nil
}

// AssetIDFromURL derives the provider identifier from a hosted-asset
// URL: the last two path segments form {folder}/{filename}, with any
// extension stripped from the filename.
func AssetIDFromURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid asset url %q: %w", rawURL, err)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 {
		return "", fmt.Errorf("asset url %q has no folder/filename segments", rawURL)
	}

	folder := segments[len(segments)-2]
	filename := segments[len(segments)-1]
	filename = strings.TrimSuffix(filename, path.Ext(filename))
	if folder == "" || filename == "" {
		return "", fmt.Errorf("asset url %q has empty folder or filename segment", rawURL)
	}

	return fmt.Sprintf("%s/%s", folder, filename), nil
}

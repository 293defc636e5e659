// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package filestore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectAPI is the subset of the S3 client the store uses.
type ObjectAPI interface {
	PutObject(context context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(context context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Options configures an S3-compatible bucket (AWS, R2, MinIO).
type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// S3 stores files as objects in a single bucket.
type S3 struct {
	client  ObjectAPI
	bucket  string
	baseURL string
}

// NewS3Client builds an S3 client. A custom endpoint switches to path-style
// addressing, which most S3-compatible providers require.
func NewS3Client(context context.Context, options S3Options) (*s3.Client, error) {
	loaders := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(options.Region),
	}

	if options.AccessKey != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(options.AccessKey, options.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context, loaders...)
	if err != nil {
		return nil, fmt.Errorf("filestore: failed to load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if options.Endpoint != "" {
			o.BaseEndpoint = aws.String(options.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// NewS3 wraps client for bucket. URLs are baseURL + "/" + key.
func NewS3(client ObjectAPI, bucket, baseURL string) *S3 {
	return &S3{client: client, bucket: bucket, baseURL: baseURL}
}

// Save uploads data as a single PutObject call.
func (store *S3) Save(context context.Context, key string, data []byte, contentType string) (Object, error) {
	if !validKey(key) {
		return Object{}, ErrInvalidKey
	}

	_, err := store.client.PutObject(context, &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return Object{}, fmt.Errorf("filestore: failed to put %s: %w", key, err)
	}

	return Object{Key: key, URL: joinURL(store.baseURL, key)}, nil
}

// Delete removes the object under key.
func (store *S3) Delete(context context.Context, key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}

	_, err := store.client.DeleteObject(context, &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("filestore: failed to delete %s: %w", key, err)
	}
	return nil
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"
	"io"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/colpick/internal/log"
)

// Scheme prefixes dataset sources stored in S3.
const Scheme = "s3://"

// ObjectGetter is the part of *s3.Client needed to read an object.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// ParseURI splits s3://bucket/key. ok is false when uri is not an S3 URI.
func ParseURI(uri string) (bucket, key string, ok bool, err error) {
	if !strings.HasPrefix(uri, Scheme) {
		return "", "", false, nil
	}
	bucket, key, _ = strings.Cut(strings.TrimPrefix(uri, Scheme), "/")
	if bucket == "" || key == "" {
		return "", "", true, fmt.Errorf("invalid S3 URI %q: want s3://bucket/key", uri)
	}
	return bucket, key, true, nil
}

// ReadObject returns the body of bucket/key.
func ReadObject(ctx context.Context, svc ObjectGetter, bucket, key string) ([]byte, error) {
	result, err := svc.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get S3 object s3://%s/%s: %w", bucket, key, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}
	log.Debugf("s3 object read: bucket=%s key=%s bytes=%d", bucket, key, len(data))
	return data, nil
}

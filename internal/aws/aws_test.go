// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	var opts options
	WithProfile("test-profile")(&opts)
	WithRegion("ap-southeast-1")(&opts)
	WithRetryer(func() awsv2.Retryer { return retry.NewStandard() })(&opts)

	assert.Equal(t, "test-profile", opts.profile)
	assert.Equal(t, "ap-southeast-1", opts.region)
	require.NotNil(t, opts.retryer)
	assert.NotNil(t, opts.retryer())
}

// TestLoadAWSConfig_WithRegion verifies that later options override earlier
// ones.
func TestLoadAWSConfig_WithRegion(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-east-1"), WithRegion("eu-west-1"))
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.Region)
}

func TestNewS3WithEndpoint(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-east-1"))
	require.NoError(t, err)

	client := NewS3(cfg, WithEndpoint("http://localhost:9000"))
	require.NotNil(t, client)
	assert.Equal(t, "http://localhost:9000", awsv2.ToString(client.Options().BaseEndpoint))
	assert.True(t, client.Options().UsePathStyle)
}

func TestParseURI(t *testing.T) {
	tests := []struct {
		uri        string
		wantBucket string
		wantKey    string
		wantOk     bool
		wantErr    bool
	}{
		{uri: "s3://data/rows.json", wantBucket: "data", wantKey: "rows.json", wantOk: true},
		{uri: "s3://data/2026/10/rows.json", wantBucket: "data", wantKey: "2026/10/rows.json", wantOk: true},
		{uri: "s3://data", wantOk: true, wantErr: true},
		{uri: "s3:///rows.json", wantOk: true, wantErr: true},
		{uri: "rows.json"},
		{uri: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, key, ok, err := ParseURI(tt.uri)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

// fakeGetter serves a single object.
type fakeGetter struct {
	bucket, key, body string
}

func (f *fakeGetter) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	if awsv2.ToString(in.Bucket) != f.bucket || awsv2.ToString(in.Key) != f.key {
		return nil, errors.New("NoSuchKey")
	}
	return &s3v2.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestReadObject(t *testing.T) {
	svc := &fakeGetter{bucket: "data", key: "rows.json", body: `[{"name":"web"}]`}

	got, err := ReadObject(context.Background(), svc, "data", "rows.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"web"}]`, string(got))

	_, err = ReadObject(context.Background(), svc, "data", "missing.json")
	assert.ErrorContains(t, err, "s3://data/missing.json")
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package awsx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/fabianopinto/smoker-sub003/internal/config"
)

// ParameterFetcher dereferences ssm:// configuration references through
// Parameter Store.
type ParameterFetcher struct {
	api SSMAPI
}

// NewParameterFetcher constructs a ParameterFetcher over api.
func NewParameterFetcher(api SSMAPI) *ParameterFetcher {
	return &ParameterFetcher{api: api}
}

// FetchParameter implements config.ParameterFetcher. SecureString
// parameters are decrypted transparently.
func (f *ParameterFetcher) FetchParameter(ctx context.Context, path string) (string, error) {
	out, err := f.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(path),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("get parameter %q: %w", path, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parameter %q has no value", path)
	}
	return *out.Parameter.Value, nil
}

// DocumentFetcher dereferences s3://bucket/key.json configuration
// references.
type DocumentFetcher struct {
	api S3API
}

// NewDocumentFetcher constructs a DocumentFetcher over api.
func NewDocumentFetcher(api S3API) *DocumentFetcher {
	return &DocumentFetcher{api: api}
}

// FetchJSONDocument implements config.DocumentFetcher. url is the full
// s3://bucket/key reference string.
func (f *DocumentFetcher) FetchJSONDocument(ctx context.Context, url string) (any, error) {
	bucket, key, err := SplitObjectURL(url)
	if err != nil {
		return nil, err
	}

	out, err := f.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", url, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %q: %w", url, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse object %q as JSON: %w", url, err)
	}
	return doc, nil
}

// SplitObjectURL splits an s3://bucket/key URL into bucket and key.
func SplitObjectURL(url string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(url, config.DocumentPrefix)
	if !ok {
		return "", "", fmt.Errorf("not an s3 object URL: %q", url)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("malformed s3 object URL: %q", url)
	}
	return bucket, key, nil
}

// Interface satisfaction, checked at compile time.
var (
	_ config.ParameterFetcher = (*ParameterFetcher)(nil)
	_ config.DocumentFetcher  = (*DocumentFetcher)(nil)
)

package compliance

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3svc "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/gaurav-cloudops/cloud-comply/internal/audit"
)

// BucketLister lists all S3 buckets in the account. S3 is a global service;
// the lister is registered once per run, not per region.
func BucketLister(client S3API) audit.Lister {
	return func(ctx context.Context) ([]string, error) {
		out, err := client.ListBuckets(ctx, &s3svc.ListBucketsInput{})
		if err != nil {
			return nil, fmt.Errorf("list S3 buckets: %w", err)
		}
		names := make([]string, 0, len(out.Buckets))
		for _, b := range out.Buckets {
			names = append(names, aws.ToString(b.Name))
		}
		return names, nil
	}
}

// BucketNotPublic reports whether the bucket's policy does not grant public
// access. Buckets without a bucket policy return NoSuchBucketPolicy, which is
// treated as not public.
func BucketNotPublic(client S3API) audit.Predicate {
	return func(ctx context.Context, bucket string) (bool, error) {
		out, err := client.GetBucketPolicyStatus(ctx, &s3svc.GetBucketPolicyStatusInput{
			Bucket: aws.String(bucket),
		})
		if err != nil {
			if isAPIError(err, "NoSuchBucketPolicy") {
				return true, nil
			}
			return false, fmt.Errorf("get policy status for bucket %s: %w", bucket, err)
		}
		if out.PolicyStatus == nil {
			return true, nil
		}
		return !aws.ToBool(out.PolicyStatus.IsPublic), nil
	}
}

// BucketHasDefaultEncryption reports whether the bucket has a default
// server-side encryption configuration. A missing configuration surfaces as
// ServerSideEncryptionConfigurationNotFoundError.
func BucketHasDefaultEncryption(client S3API) audit.Predicate {
	return func(ctx context.Context, bucket string) (bool, error) {
		_, err := client.GetBucketEncryption(ctx, &s3svc.GetBucketEncryptionInput{
			Bucket: aws.String(bucket),
		})
		if err != nil {
			if isAPIError(err, "ServerSideEncryptionConfigurationNotFoundError") {
				return false, nil
			}
			return false, fmt.Errorf("get encryption for bucket %s: %w", bucket, err)
		}
		return true, nil
	}
}

// isAPIError reports whether err is an AWS API error with the given code.
func isAPIError(err error, code string) bool {
	var ae smithy.APIError
	return errors.As(err, &ae) && ae.ErrorCode() == code
}

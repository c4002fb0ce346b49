package compliance

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3svc "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

type fakeS3 struct {
	listOut       *s3svc.ListBucketsOutput
	listErr       error
	policyOut     *s3svc.GetBucketPolicyStatusOutput
	policyErr     error
	encryptionOut *s3svc.GetBucketEncryptionOutput
	encryptionErr error
}

func (f *fakeS3) ListBuckets(_ context.Context, _ *s3svc.ListBucketsInput, _ ...func(*s3svc.Options)) (*s3svc.ListBucketsOutput, error) {
	return f.listOut, f.listErr
}

func (f *fakeS3) GetBucketPolicyStatus(_ context.Context, _ *s3svc.GetBucketPolicyStatusInput, _ ...func(*s3svc.Options)) (*s3svc.GetBucketPolicyStatusOutput, error) {
	return f.policyOut, f.policyErr
}

func (f *fakeS3) GetBucketEncryption(_ context.Context, _ *s3svc.GetBucketEncryptionInput, _ ...func(*s3svc.Options)) (*s3svc.GetBucketEncryptionOutput, error) {
	return f.encryptionOut, f.encryptionErr
}

func TestBucketLister(t *testing.T) {
	fake := &fakeS3{listOut: &s3svc.ListBucketsOutput{
		Buckets: []s3types.Bucket{
			{Name: aws.String("logs")},
			{Name: aws.String("assets")},
		},
	}}

	names, err := BucketLister(fake)(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "logs" || names[1] != "assets" {
		t.Errorf("names: got %v", names)
	}
}

func TestBucketNotPublic(t *testing.T) {
	policyOut := func(public bool) *s3svc.GetBucketPolicyStatusOutput {
		return &s3svc.GetBucketPolicyStatusOutput{
			PolicyStatus: &s3types.PolicyStatus{IsPublic: aws.Bool(public)},
		}
	}

	ok, err := BucketNotPublic(&fakeS3{policyOut: policyOut(false)})(context.Background(), "logs")
	if err != nil || !ok {
		t.Errorf("private policy: got ok=%v err=%v", ok, err)
	}

	ok, err = BucketNotPublic(&fakeS3{policyOut: policyOut(true)})(context.Background(), "logs")
	if err != nil || ok {
		t.Errorf("public policy: got ok=%v err=%v", ok, err)
	}
}

func TestBucketNotPublic_NoPolicyMeansPrivate(t *testing.T) {
	fake := &fakeS3{policyErr: &smithy.GenericAPIError{Code: "NoSuchBucketPolicy"}}

	ok, err := BucketNotPublic(fake)(context.Background(), "logs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("bucket without a policy should be treated as private")
	}
}

func TestBucketNotPublic_PropagatesOtherErrors(t *testing.T) {
	fake := &fakeS3{policyErr: errors.New("access denied")}

	if _, err := BucketNotPublic(fake)(context.Background(), "logs"); err == nil {
		t.Error("want error")
	}
}

func TestBucketHasDefaultEncryption(t *testing.T) {
	fake := &fakeS3{encryptionOut: &s3svc.GetBucketEncryptionOutput{}}
	ok, err := BucketHasDefaultEncryption(fake)(context.Background(), "logs")
	if err != nil || !ok {
		t.Errorf("encrypted bucket: got ok=%v err=%v", ok, err)
	}

	fake = &fakeS3{encryptionErr: &smithy.GenericAPIError{Code: "ServerSideEncryptionConfigurationNotFoundError"}}
	ok, err = BucketHasDefaultEncryption(fake)(context.Background(), "logs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("bucket without encryption config should be non-compliant")
	}
}

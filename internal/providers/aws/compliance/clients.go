// Package compliance implements the cloud collaborator for the audit runner:
// resource listers and compliance predicates backed by the AWS SDK v2.
//
// Every function here decodes typed SDK response fields; no text matching.
// Errors are returned wrapped so the runner can surface them as
// CollaboratorError findings without aborting the run.
package compliance

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	cloudtrailsvc "github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	configsvc "github.com/aws/aws-sdk-go-v2/service/configservice"
	ec2svc "github.com/aws/aws-sdk-go-v2/service/ec2"
	elbv2svc "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	guardduty "github.com/aws/aws-sdk-go-v2/service/guardduty"
	iamsvc "github.com/aws/aws-sdk-go-v2/service/iam"
	kmssvc "github.com/aws/aws-sdk-go-v2/service/kms"
	rdssvc "github.com/aws/aws-sdk-go-v2/service/rds"
	s3svc "github.com/aws/aws-sdk-go-v2/service/s3"
)

// EC2API is the narrow EC2 interface used by the compliance checks. The
// embedded SDK interfaces let the DescribeInstances and DescribeVolumes
// paginators be used directly.
type EC2API interface {
	ec2svc.DescribeInstancesAPIClient
	ec2svc.DescribeVolumesAPIClient
	DescribeSecurityGroups(ctx context.Context, params *ec2svc.DescribeSecurityGroupsInput, optFns ...func(*ec2svc.Options)) (*ec2svc.DescribeSecurityGroupsOutput, error)
	DescribeImages(ctx context.Context, params *ec2svc.DescribeImagesInput, optFns ...func(*ec2svc.Options)) (*ec2svc.DescribeImagesOutput, error)
}

// KMSAPI is the narrow KMS interface for classifying encryption keys.
type KMSAPI interface {
	DescribeKey(ctx context.Context, params *kmssvc.DescribeKeyInput, optFns ...func(*kmssvc.Options)) (*kmssvc.DescribeKeyOutput, error)
}

// S3API is the narrow S3 interface used for bucket posture checks.
type S3API interface {
	ListBuckets(ctx context.Context, params *s3svc.ListBucketsInput, optFns ...func(*s3svc.Options)) (*s3svc.ListBucketsOutput, error)
	GetBucketPolicyStatus(ctx context.Context, params *s3svc.GetBucketPolicyStatusInput, optFns ...func(*s3svc.Options)) (*s3svc.GetBucketPolicyStatusOutput, error)
	GetBucketEncryption(ctx context.Context, params *s3svc.GetBucketEncryptionInput, optFns ...func(*s3svc.Options)) (*s3svc.GetBucketEncryptionOutput, error)
}

// IAMAPI is the narrow IAM interface for user and account-level checks.
// It embeds ListUsersAPIClient so the SDK paginator can be used directly.
type IAMAPI interface {
	iamsvc.ListUsersAPIClient
	ListMFADevices(ctx context.Context, params *iamsvc.ListMFADevicesInput, optFns ...func(*iamsvc.Options)) (*iamsvc.ListMFADevicesOutput, error)
	GetLoginProfile(ctx context.Context, params *iamsvc.GetLoginProfileInput, optFns ...func(*iamsvc.Options)) (*iamsvc.GetLoginProfileOutput, error)
	GetAccountSummary(ctx context.Context, params *iamsvc.GetAccountSummaryInput, optFns ...func(*iamsvc.Options)) (*iamsvc.GetAccountSummaryOutput, error)
}

// CloudTrailAPI is the narrow CloudTrail interface for trail configuration.
type CloudTrailAPI interface {
	DescribeTrails(ctx context.Context, params *cloudtrailsvc.DescribeTrailsInput, optFns ...func(*cloudtrailsvc.Options)) (*cloudtrailsvc.DescribeTrailsOutput, error)
}

// GuardDutyAPI is the narrow GuardDuty interface for detector status.
type GuardDutyAPI interface {
	ListDetectors(ctx context.Context, params *guardduty.ListDetectorsInput, optFns ...func(*guardduty.Options)) (*guardduty.ListDetectorsOutput, error)
	GetDetector(ctx context.Context, params *guardduty.GetDetectorInput, optFns ...func(*guardduty.Options)) (*guardduty.GetDetectorOutput, error)
}

// ConfigServiceAPI is the narrow AWS Config interface for recorder status.
type ConfigServiceAPI interface {
	DescribeConfigurationRecorderStatus(ctx context.Context, params *configsvc.DescribeConfigurationRecorderStatusInput, optFns ...func(*configsvc.Options)) (*configsvc.DescribeConfigurationRecorderStatusOutput, error)
}

// RDSAPI is the narrow RDS interface for database storage checks.
type RDSAPI interface {
	rdssvc.DescribeDBInstancesAPIClient
}

// ELBV2API is the narrow Elastic Load Balancing v2 interface for listener
// protocol checks.
type ELBV2API interface {
	elbv2svc.DescribeLoadBalancersAPIClient
	DescribeListeners(ctx context.Context, params *elbv2svc.DescribeListenersInput, optFns ...func(*elbv2svc.Options)) (*elbv2svc.DescribeListenersOutput, error)
}

// Clients bundles all AWS service clients used by the compliance checks for
// one region (or the global scope).
type Clients struct {
	EC2        EC2API
	KMS        KMSAPI
	S3         S3API
	IAM        IAMAPI
	CloudTrail CloudTrailAPI
	GuardDuty  GuardDutyAPI
	Config     ConfigServiceAPI
	RDS        RDSAPI
	ELBv2      ELBV2API
}

// ClientFactory creates Clients from an AWS config.
// Injection point: tests replace this with a function returning fake clients.
type ClientFactory func(cfg aws.Config) *Clients

// NewClients is the production ClientFactory. It constructs real AWS SDK
// clients from the given config.
func NewClients(cfg aws.Config) *Clients {
	return &Clients{
		EC2:        ec2svc.NewFromConfig(cfg),
		KMS:        kmssvc.NewFromConfig(cfg),
		S3:         s3svc.NewFromConfig(cfg),
		IAM:        iamsvc.NewFromConfig(cfg),
		CloudTrail: cloudtrailsvc.NewFromConfig(cfg),
		GuardDuty:  guardduty.NewFromConfig(cfg),
		Config:     configsvc.NewFromConfig(cfg),
		RDS:        rdssvc.NewFromConfig(cfg),
		ELBv2:      elbv2svc.NewFromConfig(cfg),
	}
}

// Package storage provides the data-at-rest rule pack: EBS encryption, KMS
// customer-managed key usage, RDS storage encryption, and S3 bucket posture.
package storage

import (
	"fmt"

	"github.com/gaurav-cloudops/cloud-comply/internal/audit"
	"github.com/gaurav-cloudops/cloud-comply/internal/models"
	"github.com/gaurav-cloudops/cloud-comply/internal/providers/aws/compliance"
)

// New returns the regional storage rules for region, in checklist order.
func New(c *compliance.Clients, region string) []audit.RuleSpec {
	return []audit.RuleSpec{
		{
			ID:           "EBS_UNENCRYPTED",
			Name:         "EBS Volume Without Encryption",
			ResourceType: models.ResourceEBSVolume,
			Region:       region,
			Severity:     models.SeverityHigh,
			Empty:        audit.EmptyMeansNoop,
			List:         compliance.VolumeLister(c.EC2),
			Check:        compliance.VolumeEncrypted(c.EC2),
			PassMessage: func(id string) string {
				return fmt.Sprintf("Volume %s is encrypted at rest", id)
			},
			WarnMessage: func(id string) string {
				return fmt.Sprintf("Volume %s is not encrypted at rest", id)
			},
			Remediation: func(id string) string {
				return fmt.Sprintf("aws ec2 create-snapshot --volume-id %s # then copy the snapshot with --encrypted and recreate the volume", id)
			},
		},
		{
			ID:           "EBS_KMS_NOT_CMK",
			Name:         "EBS Volume Without Customer-Managed Key",
			ResourceType: models.ResourceEBSVolume,
			Region:       region,
			Severity:     models.SeverityLow,
			Empty:        audit.EmptyMeansNoop,
			List:         compliance.EncryptedVolumeLister(c.EC2),
			Check:        compliance.VolumeUsesCustomerManagedKey(c.EC2, c.KMS),
			PassMessage: func(id string) string {
				return fmt.Sprintf("Volume %s is encrypted with a customer-managed KMS key", id)
			},
			WarnMessage: func(id string) string {
				return fmt.Sprintf("Volume %s is encrypted with the AWS-managed default key", id)
			},
			Remediation: func(id string) string {
				return fmt.Sprintf("aws ec2 create-snapshot --volume-id %s # then copy the snapshot with --kms-key-id <cmk-id> and recreate the volume", id)
			},
		},
		{
			ID:           "RDS_UNENCRYPTED",
			Name:         "RDS Instance Without Storage Encryption",
			ResourceType: models.ResourceRDSInstance,
			Region:       region,
			Severity:     models.SeverityHigh,
			Empty:        audit.EmptyMeansNoop,
			List:         compliance.DBInstanceLister(c.RDS),
			Check:        compliance.DBInstanceStorageEncrypted(c.RDS),
			PassMessage: func(id string) string {
				return fmt.Sprintf("RDS instance %s has storage encryption enabled", id)
			},
			WarnMessage: func(id string) string {
				return fmt.Sprintf("RDS instance %s does not have storage encryption enabled", id)
			},
			Remediation: func(id string) string {
				return fmt.Sprintf("aws rds create-db-snapshot --db-instance-identifier %s # then copy the snapshot with --kms-key-id and restore", id)
			},
		},
	}
}

// NewGlobal returns the account-level S3 rules. S3 is a global service, so
// these rules are registered once per run.
func NewGlobal(c *compliance.Clients) []audit.RuleSpec {
	return []audit.RuleSpec{
		{
			ID:           "S3_PUBLIC_BUCKET",
			Name:         "S3 Bucket With Public Policy",
			ResourceType: models.ResourceS3Bucket,
			Severity:     models.SeverityHigh,
			Empty:        audit.EmptyMeansNoop,
			List:         compliance.BucketLister(c.S3),
			Check:        compliance.BucketNotPublic(c.S3),
			PassMessage: func(id string) string {
				return fmt.Sprintf("Bucket %s is not publicly accessible", id)
			},
			WarnMessage: func(id string) string {
				return fmt.Sprintf("Bucket %s has a policy that grants public access", id)
			},
			Remediation: func(id string) string {
				return fmt.Sprintf("aws s3api put-public-access-block --bucket %s --public-access-block-configuration BlockPublicAcls=true,IgnorePublicAcls=true,BlockPublicPolicy=true,RestrictPublicBuckets=true", id)
			},
		},
		{
			ID:           "S3_NO_DEFAULT_ENCRYPTION",
			Name:         "S3 Bucket Without Default Encryption",
			ResourceType: models.ResourceS3Bucket,
			Severity:     models.SeverityMedium,
			Empty:        audit.EmptyMeansNoop,
			List:         compliance.BucketLister(c.S3),
			Check:        compliance.BucketHasDefaultEncryption(c.S3),
			PassMessage: func(id string) string {
				return fmt.Sprintf("Bucket %s has default encryption configured", id)
			},
			WarnMessage: func(id string) string {
				return fmt.Sprintf("Bucket %s has no default server-side encryption", id)
			},
			Remediation: func(id string) string {
				return fmt.Sprintf("aws s3api put-bucket-encryption --bucket %s --server-side-encryption-configuration '{\"Rules\":[{\"ApplyServerSideEncryptionByDefault\":{\"SSEAlgorithm\":\"aws:kms\"}}]}'", id)
			},
		},
	}
}

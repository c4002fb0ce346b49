// Package account provides the account and regional service posture rule
// pack: CloudTrail, GuardDuty, and AWS Config.
package account

import (
	"fmt"

	"github.com/gaurav-cloudops/cloud-comply/internal/audit"
	"github.com/gaurav-cloudops/cloud-comply/internal/models"
	"github.com/gaurav-cloudops/cloud-comply/internal/providers/aws/compliance"
)

// NewGlobal returns the account-level posture rules.
func NewGlobal(c *compliance.Clients, accountID string) []audit.RuleSpec {
	return []audit.RuleSpec{
		{
			ID:           "CLOUDTRAIL_NOT_MULTI_REGION",
			Name:         "No Multi-Region CloudTrail Trail",
			ResourceType: models.ResourceAccount,
			Severity:     models.SeverityHigh,
			Empty:        audit.EmptyMeansNoop,
			List:         compliance.SingletonLister(accountID),
			Check:        compliance.AccountHasMultiRegionTrail(c.CloudTrail),
			PassMessage: func(string) string {
				return "A multi-region CloudTrail trail is recording API activity"
			},
			WarnMessage: func(string) string {
				return "No CloudTrail trail records events across all regions"
			},
			Remediation: func(string) string {
				return "aws cloudtrail create-trail --name org-trail --s3-bucket-name <bucket> --is-multi-region-trail"
			},
		},
	}
}

// New returns the regional posture rules for region.
func New(c *compliance.Clients, region string) []audit.RuleSpec {
	return []audit.RuleSpec{
		{
			ID:           "GUARDDUTY_DISABLED",
			Name:         "GuardDuty Not Enabled",
			ResourceType: models.ResourceRegion,
			Region:       region,
			Severity:     models.SeverityHigh,
			Empty:        audit.EmptyMeansNoop,
			List:         compliance.SingletonLister(region),
			Check:        compliance.GuardDutyEnabled(c.GuardDuty),
			PassMessage: func(id string) string {
				return fmt.Sprintf("GuardDuty is enabled in %s", id)
			},
			WarnMessage: func(id string) string {
				return fmt.Sprintf("GuardDuty is not enabled in %s", id)
			},
			Remediation: func(id string) string {
				return fmt.Sprintf("aws guardduty create-detector --enable --region %s", id)
			},
		},
		{
			ID:           "CONFIG_RECORDER_DISABLED",
			Name:         "AWS Config Not Recording",
			ResourceType: models.ResourceRegion,
			Region:       region,
			Severity:     models.SeverityMedium,
			Empty:        audit.EmptyMeansNoop,
			List:         compliance.SingletonLister(region),
			Check:        compliance.ConfigRecorderEnabled(c.Config),
			PassMessage: func(id string) string {
				return fmt.Sprintf("AWS Config is recording in %s", id)
			},
			WarnMessage: func(id string) string {
				return fmt.Sprintf("AWS Config has no active configuration recorder in %s", id)
			},
			Remediation: func(id string) string {
				return fmt.Sprintf("aws configservice start-configuration-recorder --configuration-recorder-name default --region %s", id)
			},
		},
	}
}

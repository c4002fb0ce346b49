// Package identity provides the IAM and root account rule pack.
package identity

import (
	"fmt"

	"github.com/gaurav-cloudops/cloud-comply/internal/audit"
	"github.com/gaurav-cloudops/cloud-comply/internal/models"
	"github.com/gaurav-cloudops/cloud-comply/internal/providers/aws/compliance"
)

// New returns the account-level identity rules, in checklist order.
func New(c *compliance.Clients) []audit.RuleSpec {
	return []audit.RuleSpec{
		{
			ID:           "ROOT_ACCESS_KEYS",
			Name:         "Root Account Access Keys Present",
			ResourceType: models.ResourceRootAccount,
			Severity:     models.SeverityCritical,
			Empty:        audit.EmptyMeansNoop,
			List:         compliance.SingletonLister("root"),
			Check:        compliance.RootHasNoAccessKeys(c.IAM),
			PassMessage: func(string) string {
				return "Root account has no access keys"
			},
			WarnMessage: func(string) string {
				return "Root account has active access keys"
			},
			Remediation: func(string) string {
				return "Delete root access keys in the IAM console (My Security Credentials); use IAM roles instead"
			},
		},
		{
			ID:           "ROOT_NO_MFA",
			Name:         "Root Account Without MFA",
			ResourceType: models.ResourceRootAccount,
			Severity:     models.SeverityCritical,
			Empty:        audit.EmptyMeansNoop,
			List:         compliance.SingletonLister("root"),
			Check:        compliance.RootHasMFA(c.IAM),
			PassMessage: func(string) string {
				return "Root account has MFA enabled"
			},
			WarnMessage: func(string) string {
				return "Root account does not have MFA enabled"
			},
			Remediation: func(string) string {
				return "Enable a hardware or virtual MFA device for the root account in the IAM console"
			},
		},
		{
			ID:           "IAM_USER_NO_MFA",
			Name:         "Console User Without MFA",
			ResourceType: models.ResourceIAMUser,
			Severity:     models.SeverityMedium,
			Empty:        audit.EmptyMeansNoop,
			List:         compliance.ConsoleUserLister(c.IAM),
			Check:        compliance.UserHasMFA(c.IAM),
			PassMessage: func(id string) string {
				return fmt.Sprintf("IAM user %s has an MFA device", id)
			},
			WarnMessage: func(id string) string {
				return fmt.Sprintf("IAM user %s can sign in to the console without MFA", id)
			},
			Remediation: func(id string) string {
				return fmt.Sprintf("aws iam enable-mfa-device --user-name %s --serial-number <mfa-arn> --authentication-code1 <code1> --authentication-code2 <code2>", id)
			},
		},
	}
}

// Package ec2baseline provides the EC2 and network baseline rule pack:
// default security group usage, IAM instance profile presence, public AMI
// sharing, internet-exposed SSH, and plaintext load balancer listeners.
//
// Convention: every rule pack lives in internal/rulepacks/<domain>/pack.go
// and exposes New() functions returning []audit.RuleSpec. Packs are wired
// into a Registry by the engine before the runner is invoked.
package ec2baseline

import (
	"fmt"

	"github.com/gaurav-cloudops/cloud-comply/internal/audit"
	"github.com/gaurav-cloudops/cloud-comply/internal/models"
	"github.com/gaurav-cloudops/cloud-comply/internal/providers/aws/compliance"
)

// New returns the regional EC2 baseline rules for region, in checklist order.
func New(c *compliance.Clients, region string) []audit.RuleSpec {
	return []audit.RuleSpec{
		{
			ID:           "DEFAULT_SG_IN_USE",
			Name:         "Instances Using Default Security Group",
			ResourceType: models.ResourceEC2Instance,
			Region:       region,
			Severity:     models.SeverityMedium,
			Empty:        audit.EmptyMeansPass,
			EmptyMessage: fmt.Sprintf("No instances are using the default security group in %s", region),
			ScopeID:      "default-sg",
			List:         compliance.DefaultSGInstanceLister(c.EC2),
			Check:        compliance.InstanceNotUsingDefaultSG(c.EC2),
			PassMessage: func(id string) string {
				return fmt.Sprintf("Instance %s is not using the default security group", id)
			},
			WarnMessage: func(id string) string {
				return fmt.Sprintf("Instance %s is using the default security group", id)
			},
			Remediation: func(id string) string {
				return fmt.Sprintf("aws ec2 modify-instance-attribute --instance-id %s --groups <purpose-built-sg-id>", id)
			},
		},
		{
			ID:           "INSTANCE_PROFILE_MISSING",
			Name:         "Instance Without IAM Instance Profile",
			ResourceType: models.ResourceEC2Instance,
			Region:       region,
			Severity:     models.SeverityMedium,
			Empty:        audit.EmptyMeansNoop,
			List:         compliance.InstanceLister(c.EC2),
			Check:        compliance.InstanceHasIAMProfile(c.EC2),
			PassMessage: func(id string) string {
				return fmt.Sprintf("Instance %s has an IAM instance profile attached", id)
			},
			WarnMessage: func(id string) string {
				return fmt.Sprintf("Instance %s has no IAM instance profile", id)
			},
			Remediation: func(id string) string {
				return fmt.Sprintf("aws ec2 associate-iam-instance-profile --instance-id %s --iam-instance-profile Name=<profile-name>", id)
			},
		},
		{
			ID:           "AMI_PUBLIC",
			Name:         "Publicly Shared AMI",
			ResourceType: models.ResourceAMI,
			Region:       region,
			Severity:     models.SeverityHigh,
			Empty:        audit.EmptyMeansNoop,
			List:         compliance.OwnedImageLister(c.EC2),
			Check:        compliance.ImageNotPublic(c.EC2),
			PassMessage: func(id string) string {
				return fmt.Sprintf("AMI %s is private", id)
			},
			WarnMessage: func(id string) string {
				return fmt.Sprintf("AMI %s is publicly launchable by any AWS account", id)
			},
			Remediation: func(id string) string {
				return fmt.Sprintf("aws ec2 modify-image-attribute --image-id %s --launch-permission \"Remove=[{Group=all}]\"", id)
			},
		},
		{
			ID:           "SG_OPEN_SSH",
			Name:         "Security Group Exposes SSH to Internet",
			ResourceType: models.ResourceSecurityGroup,
			Region:       region,
			Severity:     models.SeverityHigh,
			Empty:        audit.EmptyMeansNoop,
			List:         compliance.SecurityGroupLister(c.EC2),
			Check:        compliance.SecurityGroupNoOpenSSH(c.EC2),
			PassMessage: func(id string) string {
				return fmt.Sprintf("Security group %s does not expose SSH to the internet", id)
			},
			WarnMessage: func(id string) string {
				return fmt.Sprintf("Security group %s allows SSH (port 22) from anywhere", id)
			},
			Remediation: func(id string) string {
				return fmt.Sprintf("aws ec2 revoke-security-group-ingress --group-id %s --protocol tcp --port 22 --cidr 0.0.0.0/0", id)
			},
		},
		{
			ID:           "ELB_PLAINTEXT_LISTENER",
			Name:         "Internet-Facing Load Balancer Without TLS",
			ResourceType: models.ResourceLoadBalancer,
			Region:       region,
			Severity:     models.SeverityMedium,
			Empty:        audit.EmptyMeansNoop,
			List:         compliance.LoadBalancerLister(c.ELBv2),
			Check:        compliance.LoadBalancerTLSOnly(c.ELBv2),
			PassMessage: func(id string) string {
				return fmt.Sprintf("Load balancer %s terminates TLS on every listener", id)
			},
			WarnMessage: func(id string) string {
				return fmt.Sprintf("Load balancer %s has a plaintext listener exposed to the internet", id)
			},
			Remediation: func(id string) string {
				return fmt.Sprintf("aws elbv2 modify-listener --listener-arn <listener-arn> --protocol HTTPS --certificates CertificateArn=<acm-cert-arn> # on %s", id)
			},
		},
	}
}

package compliance

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2svc "github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/gaurav-cloudops/cloud-comply/internal/audit"
)

// defaultSecurityGroupName is the name of the security group AWS creates in
// every VPC. Workloads should run in purpose-built groups instead.
const defaultSecurityGroupName = "default"

// DefaultSGInstanceLister lists instances whose security groups include the
// VPC default group. An empty result means no instance uses the default
// group, which is the compliant outcome for the DEFAULT_SG_IN_USE rule.
func DefaultSGInstanceLister(client EC2API) audit.Lister {
	return func(ctx context.Context) ([]string, error) {
		input := &ec2svc.DescribeInstancesInput{
			Filters: []ec2types.Filter{
				{
					Name:   aws.String("instance.group-name"),
					Values: []string{defaultSecurityGroupName},
				},
				runningInstanceFilter(),
			},
		}
		return listInstanceIDs(ctx, client, input)
	}
}

// InstanceNotUsingDefaultSG reports whether the instance's security groups
// exclude the VPC default group.
func InstanceNotUsingDefaultSG(client EC2API) audit.Predicate {
	return func(ctx context.Context, instanceID string) (bool, error) {
		inst, err := describeInstance(ctx, client, instanceID)
		if err != nil {
			return false, err
		}
		for _, sg := range inst.SecurityGroups {
			if aws.ToString(sg.GroupName) == defaultSecurityGroupName {
				return false, nil
			}
		}
		return true, nil
	}
}

// InstanceLister lists all non-terminated instances in the region.
func InstanceLister(client EC2API) audit.Lister {
	return func(ctx context.Context) ([]string, error) {
		input := &ec2svc.DescribeInstancesInput{
			Filters: []ec2types.Filter{runningInstanceFilter()},
		}
		return listInstanceIDs(ctx, client, input)
	}
}

// InstanceHasIAMProfile reports whether the instance has an IAM instance
// profile association. Instances without one typically end up with long-lived
// credentials baked into the workload.
func InstanceHasIAMProfile(client EC2API) audit.Predicate {
	return func(ctx context.Context, instanceID string) (bool, error) {
		inst, err := describeInstance(ctx, client, instanceID)
		if err != nil {
			return false, err
		}
		return inst.IamInstanceProfile != nil && inst.IamInstanceProfile.Arn != nil, nil
	}
}

// SecurityGroupLister lists all security group ids in the region.
func SecurityGroupLister(client EC2API) audit.Lister {
	return func(ctx context.Context) ([]string, error) {
		out, err := client.DescribeSecurityGroups(ctx, &ec2svc.DescribeSecurityGroupsInput{})
		if err != nil {
			return nil, fmt.Errorf("describe security groups: %w", err)
		}
		ids := make([]string, 0, len(out.SecurityGroups))
		for _, sg := range out.SecurityGroups {
			ids = append(ids, aws.ToString(sg.GroupId))
		}
		return ids, nil
	}
}

// SecurityGroupNoOpenSSH reports whether the security group does NOT expose
// port 22 to the whole internet (0.0.0.0/0 or ::/0).
func SecurityGroupNoOpenSSH(client EC2API) audit.Predicate {
	return func(ctx context.Context, groupID string) (bool, error) {
		out, err := client.DescribeSecurityGroups(ctx, &ec2svc.DescribeSecurityGroupsInput{
			GroupIds: []string{groupID},
		})
		if err != nil {
			return false, fmt.Errorf("describe security group %s: %w", groupID, err)
		}
		for _, sg := range out.SecurityGroups {
			for _, perm := range sg.IpPermissions {
				if !portRangeCoversSSH(perm) {
					continue
				}
				for _, r := range perm.IpRanges {
					if aws.ToString(r.CidrIp) == "0.0.0.0/0" {
						return false, nil
					}
				}
				for _, r := range perm.Ipv6Ranges {
					if aws.ToString(r.CidrIpv6) == "::/0" {
						return false, nil
					}
				}
			}
		}
		return true, nil
	}
}

// portRangeCoversSSH reports whether the permission's port range includes 22.
// A nil FromPort/ToPort pair means "all ports" (e.g. protocol -1).
func portRangeCoversSSH(perm ec2types.IpPermission) bool {
	if perm.FromPort == nil && perm.ToPort == nil {
		return true
	}
	from := aws.ToInt32(perm.FromPort)
	to := aws.ToInt32(perm.ToPort)
	return from <= 22 && to >= 22
}

// runningInstanceFilter excludes terminated and shutting-down instances from
// inventory listings.
func runningInstanceFilter() ec2types.Filter {
	return ec2types.Filter{
		Name:   aws.String("instance-state-name"),
		Values: []string{"pending", "running", "stopping", "stopped"},
	}
}

// listInstanceIDs pages through DescribeInstances with input and collects the
// instance ids in API order.
func listInstanceIDs(ctx context.Context, client EC2API, input *ec2svc.DescribeInstancesInput) ([]string, error) {
	paginator := ec2svc.NewDescribeInstancesPaginator(client, input)

	var ids []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("DescribeInstances page: %w", err)
		}
		for _, res := range page.Reservations {
			for _, inst := range res.Instances {
				ids = append(ids, aws.ToString(inst.InstanceId))
			}
		}
	}
	return ids, nil
}

// describeInstance fetches a single instance by id.
func describeInstance(ctx context.Context, client EC2API, instanceID string) (*ec2types.Instance, error) {
	out, err := client.DescribeInstances(ctx, &ec2svc.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return nil, fmt.Errorf("describe instance %s: %w", instanceID, err)
	}
	for _, res := range out.Reservations {
		for i := range res.Instances {
			if aws.ToString(res.Instances[i].InstanceId) == instanceID {
				return &res.Instances[i], nil
			}
		}
	}
	return nil, fmt.Errorf("instance %s not found", instanceID)
}

package compliance

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2svc "github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	kmssvc "github.com/aws/aws-sdk-go-v2/service/kms"
	kmstypes "github.com/aws/aws-sdk-go-v2/service/kms/types"

	"github.com/gaurav-cloudops/cloud-comply/internal/audit"
)

// VolumeLister lists all non-deleted EBS volumes in the region.
func VolumeLister(client EC2API) audit.Lister {
	return func(ctx context.Context) ([]string, error) {
		return listVolumeIDs(ctx, client, &ec2svc.DescribeVolumesInput{})
	}
}

// EncryptedVolumeLister lists only encrypted EBS volumes. Candidates for the
// customer-managed-key check; unencrypted volumes are already flagged by the
// encryption rule.
func EncryptedVolumeLister(client EC2API) audit.Lister {
	return func(ctx context.Context) ([]string, error) {
		return listVolumeIDs(ctx, client, &ec2svc.DescribeVolumesInput{
			Filters: []ec2types.Filter{
				{
					Name:   aws.String("encrypted"),
					Values: []string{"true"},
				},
			},
		})
	}
}

// VolumeEncrypted reports whether the volume has encryption at rest enabled.
func VolumeEncrypted(client EC2API) audit.Predicate {
	return func(ctx context.Context, volumeID string) (bool, error) {
		vol, err := describeVolume(ctx, client, volumeID)
		if err != nil {
			return false, err
		}
		return aws.ToBool(vol.Encrypted), nil
	}
}

// VolumeUsesCustomerManagedKey reports whether the volume's KMS key is a
// customer-managed key rather than the AWS-managed default. The key id is
// always resolved from the volume under evaluation.
func VolumeUsesCustomerManagedKey(ec2Client EC2API, kmsClient KMSAPI) audit.Predicate {
	return func(ctx context.Context, volumeID string) (bool, error) {
		vol, err := describeVolume(ctx, ec2Client, volumeID)
		if err != nil {
			return false, err
		}

		keyID := aws.ToString(vol.KmsKeyId)
		if keyID == "" {
			// Unencrypted volume; no key to classify.
			return false, nil
		}

		out, err := kmsClient.DescribeKey(ctx, &kmssvc.DescribeKeyInput{
			KeyId: aws.String(keyID),
		})
		if err != nil {
			return false, fmt.Errorf("describe KMS key for volume %s: %w", volumeID, err)
		}
		if out.KeyMetadata == nil {
			return false, fmt.Errorf("DescribeKey returned nil metadata for volume %s", volumeID)
		}
		return out.KeyMetadata.KeyManager == kmstypes.KeyManagerTypeCustomer, nil
	}
}

// listVolumeIDs pages through DescribeVolumes with input and collects the
// volume ids in API order.
func listVolumeIDs(ctx context.Context, client EC2API, input *ec2svc.DescribeVolumesInput) ([]string, error) {
	paginator := ec2svc.NewDescribeVolumesPaginator(client, input)

	var ids []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("DescribeVolumes page: %w", err)
		}
		for _, v := range page.Volumes {
			ids = append(ids, aws.ToString(v.VolumeId))
		}
	}
	return ids, nil
}

// describeVolume fetches a single volume by id.
func describeVolume(ctx context.Context, client EC2API, volumeID string) (*ec2types.Volume, error) {
	out, err := client.DescribeVolumes(ctx, &ec2svc.DescribeVolumesInput{
		VolumeIds: []string{volumeID},
	})
	if err != nil {
		return nil, fmt.Errorf("describe volume %s: %w", volumeID, err)
	}
	if len(out.Volumes) == 0 {
		return nil, fmt.Errorf("volume %s not found", volumeID)
	}
	return &out.Volumes[0], nil
}

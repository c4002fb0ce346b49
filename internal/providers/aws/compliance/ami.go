package compliance

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2svc "github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/gaurav-cloudops/cloud-comply/internal/audit"
)

// OwnedImageLister lists all AMIs owned by the calling account in the region.
func OwnedImageLister(client EC2API) audit.Lister {
	return func(ctx context.Context) ([]string, error) {
		out, err := client.DescribeImages(ctx, &ec2svc.DescribeImagesInput{
			Owners: []string{"self"},
		})
		if err != nil {
			return nil, fmt.Errorf("describe owned images: %w", err)
		}
		ids := make([]string, 0, len(out.Images))
		for _, img := range out.Images {
			ids = append(ids, aws.ToString(img.ImageId))
		}
		return ids, nil
	}
}

// ImageNotPublic reports whether the AMI is not publicly launchable.
// A public image shares whatever is baked into it (credentials, source,
// internal tooling) with every AWS account.
func ImageNotPublic(client EC2API) audit.Predicate {
	return func(ctx context.Context, imageID string) (bool, error) {
		out, err := client.DescribeImages(ctx, &ec2svc.DescribeImagesInput{
			ImageIds: []string{imageID},
		})
		if err != nil {
			return false, fmt.Errorf("describe image %s: %w", imageID, err)
		}
		if len(out.Images) == 0 {
			return false, fmt.Errorf("image %s not found", imageID)
		}
		return !aws.ToBool(out.Images[0].Public), nil
	}
}

package compliance

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	cloudtrailsvc "github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	configsvc "github.com/aws/aws-sdk-go-v2/service/configservice"
	guardduty "github.com/aws/aws-sdk-go-v2/service/guardduty"
	gdtypes "github.com/aws/aws-sdk-go-v2/service/guardduty/types"

	"github.com/gaurav-cloudops/cloud-comply/internal/audit"
)

// SingletonLister returns a lister yielding exactly one pseudo-resource id.
// Account- and region-level rules (root account, CloudTrail, GuardDuty, AWS
// Config) evaluate a single scope rather than an inventory.
func SingletonLister(id string) audit.Lister {
	return func(context.Context) ([]string, error) {
		return []string{id}, nil
	}
}

// AccountHasMultiRegionTrail reports whether at least one CloudTrail trail
// records events across all regions.
func AccountHasMultiRegionTrail(client CloudTrailAPI) audit.Predicate {
	return func(ctx context.Context, _ string) (bool, error) {
		out, err := client.DescribeTrails(ctx, &cloudtrailsvc.DescribeTrailsInput{})
		if err != nil {
			return false, fmt.Errorf("describe CloudTrail trails: %w", err)
		}
		for _, trail := range out.TrailList {
			if aws.ToBool(trail.IsMultiRegionTrail) {
				return true, nil
			}
		}
		return false, nil
	}
}

// GuardDutyEnabled reports whether the region has at least one GuardDuty
// detector in ENABLED state.
func GuardDutyEnabled(client GuardDutyAPI) audit.Predicate {
	return func(ctx context.Context, region string) (bool, error) {
		list, err := client.ListDetectors(ctx, &guardduty.ListDetectorsInput{})
		if err != nil {
			return false, fmt.Errorf("list GuardDuty detectors in %s: %w", region, err)
		}
		for _, id := range list.DetectorIds {
			det, err := client.GetDetector(ctx, &guardduty.GetDetectorInput{
				DetectorId: aws.String(id),
			})
			if err != nil {
				return false, fmt.Errorf("get GuardDuty detector %s in %s: %w", id, region, err)
			}
			if det.Status == gdtypes.DetectorStatusEnabled {
				return true, nil
			}
		}
		return false, nil
	}
}

// ConfigRecorderEnabled reports whether the region has at least one AWS
// Config configuration recorder that is actively recording.
func ConfigRecorderEnabled(client ConfigServiceAPI) audit.Predicate {
	return func(ctx context.Context, region string) (bool, error) {
		out, err := client.DescribeConfigurationRecorderStatus(ctx, &configsvc.DescribeConfigurationRecorderStatusInput{})
		if err != nil {
			return false, fmt.Errorf("describe Config recorder status in %s: %w", region, err)
		}
		for _, status := range out.ConfigurationRecordersStatus {
			if status.Recording {
				return true, nil
			}
		}
		return false, nil
	}
}

package compliance

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	cloudtrailsvc "github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	cttypes "github.com/aws/aws-sdk-go-v2/service/cloudtrail/types"
	configsvc "github.com/aws/aws-sdk-go-v2/service/configservice"
	configtypes "github.com/aws/aws-sdk-go-v2/service/configservice/types"
	guardduty "github.com/aws/aws-sdk-go-v2/service/guardduty"
	gdtypes "github.com/aws/aws-sdk-go-v2/service/guardduty/types"
)

type fakeCloudTrail struct {
	trails []cttypes.Trail
}

func (f *fakeCloudTrail) DescribeTrails(_ context.Context, _ *cloudtrailsvc.DescribeTrailsInput, _ ...func(*cloudtrailsvc.Options)) (*cloudtrailsvc.DescribeTrailsOutput, error) {
	return &cloudtrailsvc.DescribeTrailsOutput{TrailList: f.trails}, nil
}

type fakeGuardDuty struct {
	detectors map[string]gdtypes.DetectorStatus
}

func (f *fakeGuardDuty) ListDetectors(_ context.Context, _ *guardduty.ListDetectorsInput, _ ...func(*guardduty.Options)) (*guardduty.ListDetectorsOutput, error) {
	ids := make([]string, 0, len(f.detectors))
	for id := range f.detectors {
		ids = append(ids, id)
	}
	return &guardduty.ListDetectorsOutput{DetectorIds: ids}, nil
}

func (f *fakeGuardDuty) GetDetector(_ context.Context, in *guardduty.GetDetectorInput, _ ...func(*guardduty.Options)) (*guardduty.GetDetectorOutput, error) {
	return &guardduty.GetDetectorOutput{Status: f.detectors[aws.ToString(in.DetectorId)]}, nil
}

type fakeConfigService struct {
	recording   bool
	noRecorders bool
}

func (f *fakeConfigService) DescribeConfigurationRecorderStatus(_ context.Context, _ *configsvc.DescribeConfigurationRecorderStatusInput, _ ...func(*configsvc.Options)) (*configsvc.DescribeConfigurationRecorderStatusOutput, error) {
	if f.noRecorders {
		return &configsvc.DescribeConfigurationRecorderStatusOutput{}, nil
	}
	return &configsvc.DescribeConfigurationRecorderStatusOutput{
		ConfigurationRecordersStatus: []configtypes.ConfigurationRecorderStatus{
			{Recording: f.recording},
		},
	}, nil
}

func TestSingletonLister(t *testing.T) {
	ids, err := SingletonLister("us-east-1")(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 || ids[0] != "us-east-1" {
		t.Errorf("ids: got %v", ids)
	}
}

func TestAccountHasMultiRegionTrail(t *testing.T) {
	multi := &fakeCloudTrail{trails: []cttypes.Trail{
		{Name: aws.String("regional"), IsMultiRegionTrail: aws.Bool(false)},
		{Name: aws.String("org-trail"), IsMultiRegionTrail: aws.Bool(true)},
	}}
	regionalOnly := &fakeCloudTrail{trails: []cttypes.Trail{
		{Name: aws.String("regional"), IsMultiRegionTrail: aws.Bool(false)},
	}}
	none := &fakeCloudTrail{}

	if ok, err := AccountHasMultiRegionTrail(multi)(context.Background(), "111122223333"); err != nil || !ok {
		t.Errorf("multi-region trail present: got ok=%v err=%v", ok, err)
	}
	if ok, err := AccountHasMultiRegionTrail(regionalOnly)(context.Background(), "111122223333"); err != nil || ok {
		t.Errorf("regional trails only: got ok=%v err=%v", ok, err)
	}
	if ok, err := AccountHasMultiRegionTrail(none)(context.Background(), "111122223333"); err != nil || ok {
		t.Errorf("no trails: got ok=%v err=%v", ok, err)
	}
}

func TestGuardDutyEnabled(t *testing.T) {
	enabled := &fakeGuardDuty{detectors: map[string]gdtypes.DetectorStatus{
		"det-1": gdtypes.DetectorStatusEnabled,
	}}
	disabled := &fakeGuardDuty{detectors: map[string]gdtypes.DetectorStatus{
		"det-1": gdtypes.DetectorStatusDisabled,
	}}
	none := &fakeGuardDuty{}

	if ok, err := GuardDutyEnabled(enabled)(context.Background(), "us-east-1"); err != nil || !ok {
		t.Errorf("enabled detector: got ok=%v err=%v", ok, err)
	}
	if ok, err := GuardDutyEnabled(disabled)(context.Background(), "us-east-1"); err != nil || ok {
		t.Errorf("disabled detector: got ok=%v err=%v", ok, err)
	}
	if ok, err := GuardDutyEnabled(none)(context.Background(), "us-east-1"); err != nil || ok {
		t.Errorf("no detectors: got ok=%v err=%v", ok, err)
	}
}

func TestConfigRecorderEnabled(t *testing.T) {
	if ok, err := ConfigRecorderEnabled(&fakeConfigService{recording: true})(context.Background(), "us-east-1"); err != nil || !ok {
		t.Errorf("recording: got ok=%v err=%v", ok, err)
	}
	if ok, err := ConfigRecorderEnabled(&fakeConfigService{recording: false})(context.Background(), "us-east-1"); err != nil || ok {
		t.Errorf("stopped recorder: got ok=%v err=%v", ok, err)
	}
	if ok, err := ConfigRecorderEnabled(&fakeConfigService{noRecorders: true})(context.Background(), "us-east-1"); err != nil || ok {
		t.Errorf("no recorders: got ok=%v err=%v", ok, err)
	}
}

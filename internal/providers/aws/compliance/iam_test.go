package compliance

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	iamsvc "github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/smithy-go"
)

type fakeIAM struct {
	users        []string
	consoleUsers map[string]bool
	mfaDevices   map[string]int
	summary      map[string]int32
}

func (f *fakeIAM) ListUsers(_ context.Context, _ *iamsvc.ListUsersInput, _ ...func(*iamsvc.Options)) (*iamsvc.ListUsersOutput, error) {
	users := make([]iamtypes.User, 0, len(f.users))
	for _, name := range f.users {
		users = append(users, iamtypes.User{UserName: aws.String(name)})
	}
	return &iamsvc.ListUsersOutput{Users: users}, nil
}

func (f *fakeIAM) GetLoginProfile(_ context.Context, in *iamsvc.GetLoginProfileInput, _ ...func(*iamsvc.Options)) (*iamsvc.GetLoginProfileOutput, error) {
	if !f.consoleUsers[aws.ToString(in.UserName)] {
		return nil, &smithy.GenericAPIError{Code: "NoSuchEntity"}
	}
	return &iamsvc.GetLoginProfileOutput{}, nil
}

func (f *fakeIAM) ListMFADevices(_ context.Context, in *iamsvc.ListMFADevicesInput, _ ...func(*iamsvc.Options)) (*iamsvc.ListMFADevicesOutput, error) {
	n := f.mfaDevices[aws.ToString(in.UserName)]
	devices := make([]iamtypes.MFADevice, n)
	return &iamsvc.ListMFADevicesOutput{MFADevices: devices}, nil
}

func (f *fakeIAM) GetAccountSummary(_ context.Context, _ *iamsvc.GetAccountSummaryInput, _ ...func(*iamsvc.Options)) (*iamsvc.GetAccountSummaryOutput, error) {
	return &iamsvc.GetAccountSummaryOutput{SummaryMap: f.summary}, nil
}

func TestConsoleUserLister_SkipsAPIOnlyUsers(t *testing.T) {
	fake := &fakeIAM{
		users:        []string{"alice", "ci-bot", "bob"},
		consoleUsers: map[string]bool{"alice": true, "bob": true},
	}

	users, err := ConsoleUserLister(fake)(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 || users[0] != "alice" || users[1] != "bob" {
		t.Errorf("users: got %v", users)
	}
}

func TestUserHasMFA(t *testing.T) {
	fake := &fakeIAM{mfaDevices: map[string]int{"alice": 1}}

	ok, err := UserHasMFA(fake)(context.Background(), "alice")
	if err != nil || !ok {
		t.Errorf("alice: got ok=%v err=%v", ok, err)
	}

	ok, err = UserHasMFA(fake)(context.Background(), "bob")
	if err != nil || ok {
		t.Errorf("bob: got ok=%v err=%v", ok, err)
	}
}

func TestRootAccountChecks(t *testing.T) {
	hardened := &fakeIAM{summary: map[string]int32{
		"AccountAccessKeysPresent": 0,
		"AccountMFAEnabled":        1,
	}}
	exposed := &fakeIAM{summary: map[string]int32{
		"AccountAccessKeysPresent": 1,
		"AccountMFAEnabled":        0,
	}}

	if ok, err := RootHasNoAccessKeys(hardened)(context.Background(), "root"); err != nil || !ok {
		t.Errorf("hardened root keys: got ok=%v err=%v", ok, err)
	}
	if ok, err := RootHasNoAccessKeys(exposed)(context.Background(), "root"); err != nil || ok {
		t.Errorf("exposed root keys: got ok=%v err=%v", ok, err)
	}
	if ok, err := RootHasMFA(hardened)(context.Background(), "root"); err != nil || !ok {
		t.Errorf("hardened root mfa: got ok=%v err=%v", ok, err)
	}
	if ok, err := RootHasMFA(exposed)(context.Background(), "root"); err != nil || ok {
		t.Errorf("exposed root mfa: got ok=%v err=%v", ok, err)
	}
}

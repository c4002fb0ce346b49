package compliance

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	iamsvc "github.com/aws/aws-sdk-go-v2/service/iam"

	"github.com/gaurav-cloudops/cloud-comply/internal/audit"
)

// IAM account summary keys; see GetAccountSummary documentation.
const (
	summaryKeyRootAccessKeys = "AccountAccessKeysPresent"
	summaryKeyRootMFA        = "AccountMFAEnabled"
)

// ConsoleUserLister lists IAM users that have a console password (login
// profile). API-only users are excluded: a user that cannot sign in to the
// console gains nothing from a virtual MFA device.
func ConsoleUserLister(client IAMAPI) audit.Lister {
	return func(ctx context.Context) ([]string, error) {
		paginator := iamsvc.NewListUsersPaginator(client, &iamsvc.ListUsersInput{})

		var users []string
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, fmt.Errorf("ListUsers page: %w", err)
			}
			for _, u := range page.Users {
				name := aws.ToString(u.UserName)
				hasConsole, err := userHasLoginProfile(ctx, client, name)
				if err != nil {
					return nil, err
				}
				if hasConsole {
					users = append(users, name)
				}
			}
		}
		return users, nil
	}
}

// UserHasMFA reports whether the IAM user has at least one MFA device.
func UserHasMFA(client IAMAPI) audit.Predicate {
	return func(ctx context.Context, userName string) (bool, error) {
		out, err := client.ListMFADevices(ctx, &iamsvc.ListMFADevicesInput{
			UserName: aws.String(userName),
		})
		if err != nil {
			return false, fmt.Errorf("list MFA devices for %s: %w", userName, err)
		}
		return len(out.MFADevices) > 0, nil
	}
}

// RootHasNoAccessKeys reports whether the root account has no access keys.
// Root access keys grant unrestricted, unauditable account access.
func RootHasNoAccessKeys(client IAMAPI) audit.Predicate {
	return func(ctx context.Context, _ string) (bool, error) {
		summary, err := accountSummary(ctx, client)
		if err != nil {
			return false, err
		}
		return summary[summaryKeyRootAccessKeys] == 0, nil
	}
}

// RootHasMFA reports whether the root account has MFA enabled.
func RootHasMFA(client IAMAPI) audit.Predicate {
	return func(ctx context.Context, _ string) (bool, error) {
		summary, err := accountSummary(ctx, client)
		if err != nil {
			return false, err
		}
		return summary[summaryKeyRootMFA] == 1, nil
	}
}

// userHasLoginProfile reports whether the user has a console password.
// GetLoginProfile returns NoSuchEntity for API-only users.
func userHasLoginProfile(ctx context.Context, client IAMAPI, userName string) (bool, error) {
	_, err := client.GetLoginProfile(ctx, &iamsvc.GetLoginProfileInput{
		UserName: aws.String(userName),
	})
	if err != nil {
		if isAPIError(err, "NoSuchEntity") {
			return false, nil
		}
		return false, fmt.Errorf("get login profile for %s: %w", userName, err)
	}
	return true, nil
}

// accountSummary fetches the IAM account summary map.
func accountSummary(ctx context.Context, client IAMAPI) (map[string]int32, error) {
	out, err := client.GetAccountSummary(ctx, &iamsvc.GetAccountSummaryInput{})
	if err != nil {
		return nil, fmt.Errorf("IAM GetAccountSummary: %w", err)
	}
	return out.SummaryMap, nil
}

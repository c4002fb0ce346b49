package compliance

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	rdssvc "github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/gaurav-cloudops/cloud-comply/internal/audit"
)

// DBInstanceLister lists all RDS database instances in the region.
func DBInstanceLister(client RDSAPI) audit.Lister {
	return func(ctx context.Context) ([]string, error) {
		paginator := rdssvc.NewDescribeDBInstancesPaginator(client, &rdssvc.DescribeDBInstancesInput{})

		var ids []string
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, fmt.Errorf("DescribeDBInstances page: %w", err)
			}
			for _, db := range page.DBInstances {
				ids = append(ids, aws.ToString(db.DBInstanceIdentifier))
			}
		}
		return ids, nil
	}
}

// DBInstanceStorageEncrypted reports whether the database instance has
// storage encryption enabled.
func DBInstanceStorageEncrypted(client RDSAPI) audit.Predicate {
	return func(ctx context.Context, dbID string) (bool, error) {
		out, err := client.DescribeDBInstances(ctx, &rdssvc.DescribeDBInstancesInput{
			DBInstanceIdentifier: aws.String(dbID),
		})
		if err != nil {
			return false, fmt.Errorf("describe DB instance %s: %w", dbID, err)
		}
		if len(out.DBInstances) == 0 {
			return false, fmt.Errorf("DB instance %s not found", dbID)
		}
		return aws.ToBool(out.DBInstances[0].StorageEncrypted), nil
	}
}

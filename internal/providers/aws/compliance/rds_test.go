package compliance

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	rdssvc "github.com/aws/aws-sdk-go-v2/service/rds"
	rdstypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
)

type fakeRDS struct {
	instances []rdstypes.DBInstance
}

func (f *fakeRDS) DescribeDBInstances(_ context.Context, _ *rdssvc.DescribeDBInstancesInput, _ ...func(*rdssvc.Options)) (*rdssvc.DescribeDBInstancesOutput, error) {
	return &rdssvc.DescribeDBInstancesOutput{DBInstances: f.instances}, nil
}

func TestDBInstanceLister(t *testing.T) {
	fake := &fakeRDS{instances: []rdstypes.DBInstance{
		{DBInstanceIdentifier: aws.String("orders-db")},
		{DBInstanceIdentifier: aws.String("reports-db")},
	}}

	ids, err := DBInstanceLister(fake)(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "orders-db" {
		t.Errorf("ids: got %v", ids)
	}
}

func TestDBInstanceStorageEncrypted(t *testing.T) {
	encrypted := &fakeRDS{instances: []rdstypes.DBInstance{{
		DBInstanceIdentifier: aws.String("orders-db"),
		StorageEncrypted:     aws.Bool(true),
	}}}
	plain := &fakeRDS{instances: []rdstypes.DBInstance{{
		DBInstanceIdentifier: aws.String("orders-db"),
		StorageEncrypted:     aws.Bool(false),
	}}}

	if ok, err := DBInstanceStorageEncrypted(encrypted)(context.Background(), "orders-db"); err != nil || !ok {
		t.Errorf("encrypted: got ok=%v err=%v", ok, err)
	}
	if ok, err := DBInstanceStorageEncrypted(plain)(context.Background(), "orders-db"); err != nil || ok {
		t.Errorf("plain: got ok=%v err=%v", ok, err)
	}
}

func TestDBInstanceStorageEncrypted_NotFound(t *testing.T) {
	if _, err := DBInstanceStorageEncrypted(&fakeRDS{})(context.Background(), "ghost-db"); err == nil {
		t.Error("want error for missing DB instance")
	}
}

package resolver

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	rdstypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
)

// ResolveDBEndpoint returns the endpoint address of the named RDS instance.
func (r *Resolver) ResolveDBEndpoint(ctx context.Context, region, instanceName string) (string, error) {
	const op = "resolve db endpoint"

	instance, err := r.describeDBInstance(ctx, op, region, instanceName)
	if err != nil {
		return "", err
	}
	if instance.Endpoint == nil {
		return "", resolutionErr(op, "db instance %s in %s has no endpoint", instanceName, region)
	}
	return aws.ToString(instance.Endpoint.Address), nil
}

// ResolveDBHostedZoneID returns the hosted zone id of the named RDS
// instance's endpoint, for DNS alias records.
func (r *Resolver) ResolveDBHostedZoneID(ctx context.Context, region, instanceName string) (string, error) {
	const op = "resolve db hosted zone id"

	instance, err := r.describeDBInstance(ctx, op, region, instanceName)
	if err != nil {
		return "", err
	}
	if instance.Endpoint == nil {
		return "", resolutionErr(op, "db instance %s in %s has no endpoint", instanceName, region)
	}
	return aws.ToString(instance.Endpoint.HostedZoneId), nil
}

func (r *Resolver) describeDBInstance(ctx context.Context, op, region, instanceName string) (*rdstypes.DBInstance, error) {
	if region == "" {
		return nil, resolutionErr(op, "region is required")
	}
	if instanceName == "" {
		return nil, resolutionErr(op, "db instance name is required")
	}

	client := r.clients.RDS(region)
	output, err := client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{
		DBInstanceIdentifier: aws.String(instanceName),
	})
	if err != nil {
		return nil, wrapErr(op, "describe db instances", err)
	}

	if len(output.DBInstances) != 1 {
		return nil, resolutionErr(op, "%d db instances matched %s in %s, expected exactly one", len(output.DBInstances), instanceName, region)
	}
	return &output.DBInstances[0], nil
}

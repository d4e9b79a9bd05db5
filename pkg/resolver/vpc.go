package resolver

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// ResolveVPCIDByName returns the id of the VPC whose Name tag equals name.
// Zero matches is an error; with several matches the first one listed wins,
// as the inventory API imposes no ordering.
func (r *Resolver) ResolveVPCIDByName(ctx context.Context, region, name string) (string, error) {
	const op = "resolve vpc id by name"

	if region == "" {
		return "", resolutionErr(op, "region is required")
	}
	if name == "" {
		return "", resolutionErr(op, "vpc name is required")
	}

	client := r.clients.EC2(region)
	output, err := client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		Filters: []ec2types.Filter{{
			Name:   aws.String("tag:Name"),
			Values: []string{name},
		}},
	})
	if err != nil {
		return "", wrapErr(op, "describe vpcs", err)
	}

	if len(output.Vpcs) == 0 {
		return "", resolutionErr(op, "no vpc named %q in %s", name, region)
	}
	return aws.ToString(output.Vpcs[0].VpcId), nil
}

// ResolveZones returns the availability zone names of a region, sorted.
func (r *Resolver) ResolveZones(ctx context.Context, region string) ([]string, error) {
	const op = "resolve availability zones"

	if region == "" {
		return nil, resolutionErr(op, "region is required")
	}

	client := r.clients.EC2(region)
	output, err := client.DescribeAvailabilityZones(ctx, &ec2.DescribeAvailabilityZonesInput{})
	if err != nil {
		return nil, wrapErr(op, "describe availability zones", err)
	}

	zones := make([]string, 0, len(output.AvailabilityZones))
	for _, zone := range output.AvailabilityZones {
		zones = append(zones, aws.ToString(zone.ZoneName))
	}
	sort.Strings(zones)
	return zones, nil
}

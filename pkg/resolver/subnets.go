package resolver

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// SubnetQuery selects subnets by tag within one VPC.
type SubnetQuery struct {
	Region string
	VPCID  string
	Tags   map[string]string
}

// ResolveSubnetIDsByTags returns the ids of subnets in the VPC whose tag set
// is a superset of the query tags, in API return order. An empty result is
// not an error.
func (r *Resolver) ResolveSubnetIDsByTags(ctx context.Context, q SubnetQuery) ([]string, error) {
	const op = "resolve subnet ids by tags"

	if err := validateTagQuery(op, q.Region, q.Tags); err != nil {
		return nil, err
	}
	if q.VPCID == "" {
		return nil, resolutionErr(op, "vpc id is required")
	}

	filters := append([]ec2types.Filter{{
		Name:   aws.String("vpc-id"),
		Values: []string{q.VPCID},
	}}, tagFilters(q.Tags)...)

	client := r.clients.EC2(q.Region)

	var ids []string
	var nextToken *string
	for {
		output, err := client.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
			Filters:   filters,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, wrapErr(op, "describe subnets", err)
		}

		for _, subnet := range output.Subnets {
			ids = append(ids, aws.ToString(subnet.SubnetId))
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return ids, nil
}

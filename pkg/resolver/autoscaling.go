package resolver

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	asgtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
)

// ResolveAutoScalingGroupNamesByTags returns the names of auto scaling
// groups whose tag set is a superset of the query tags, in API return order.
// An empty result is not an error.
func (r *Resolver) ResolveAutoScalingGroupNamesByTags(ctx context.Context, region string, tags map[string]string) ([]string, error) {
	const op = "resolve auto scaling group names by tags"

	if err := validateTagQuery(op, region, tags); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	filters := make([]asgtypes.Filter, 0, len(keys))
	for _, k := range keys {
		filters = append(filters, asgtypes.Filter{
			Name:   aws.String("tag:" + k),
			Values: []string{tags[k]},
		})
	}

	client := r.clients.AutoScaling(region)

	var names []string
	var nextToken *string
	for {
		output, err := client.DescribeAutoScalingGroups(ctx, &autoscaling.DescribeAutoScalingGroupsInput{
			Filters:   filters,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, wrapErr(op, "describe auto scaling groups", err)
		}

		for _, group := range output.AutoScalingGroups {
			names = append(names, aws.ToString(group.AutoScalingGroupName))
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return names, nil
}

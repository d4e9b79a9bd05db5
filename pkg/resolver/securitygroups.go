package resolver

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// Field selectors for security group projection.
const (
	FieldGroupID   = "group_id"
	FieldGroupName = "group_name"
)

// SecurityGroupQuery selects security groups by tag.
type SecurityGroupQuery struct {
	Region string
	Tags   map[string]string
	// Field names the projected attribute. Defaults to the group id.
	Field string
}

// ResolveSecurityGroupIDsByTags returns one projected field per security
// group whose tag set is a superset of the query tags. Unlike instance and
// subnet lookups, zero matches is an error: security group references are
// always required by their callers.
func (r *Resolver) ResolveSecurityGroupIDsByTags(ctx context.Context, q SecurityGroupQuery) ([]string, error) {
	const op = "resolve security groups by tags"

	if err := validateTagQuery(op, q.Region, q.Tags); err != nil {
		return nil, err
	}

	groups, err := r.describeSecurityGroups(ctx, op, q.Region, tagFilters(q.Tags))
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, resolutionErr(op, "no security group matched tags %v in %s", q.Tags, q.Region)
	}

	values := make([]string, 0, len(groups))
	for _, group := range groups {
		value, err := groupField(op, group, q.Field)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

// ResolveSecurityGroupIDsByNames returns the ids of the named security groups
// within a VPC. Zero matches is an error.
func (r *Resolver) ResolveSecurityGroupIDsByNames(ctx context.Context, region, vpcID string, names []string) ([]string, error) {
	const op = "resolve security groups by names"

	if region == "" {
		return nil, resolutionErr(op, "region is required")
	}
	if vpcID == "" {
		return nil, resolutionErr(op, "vpc id is required")
	}
	if len(names) == 0 {
		return nil, resolutionErr(op, "at least one group name is required")
	}

	filters := []ec2types.Filter{
		{Name: aws.String("vpc-id"), Values: []string{vpcID}},
		{Name: aws.String("group-name"), Values: names},
	}

	groups, err := r.describeSecurityGroups(ctx, op, region, filters)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, resolutionErr(op, "no security group named %v in %s", names, vpcID)
	}

	ids := make([]string, 0, len(groups))
	for _, group := range groups {
		ids = append(ids, aws.ToString(group.GroupId))
	}
	return ids, nil
}

func (r *Resolver) describeSecurityGroups(ctx context.Context, op, region string, filters []ec2types.Filter) ([]ec2types.SecurityGroup, error) {
	client := r.clients.EC2(region)

	var groups []ec2types.SecurityGroup
	var nextToken *string
	for {
		output, err := client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{
			Filters:   filters,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, wrapErr(op, "describe security groups", err)
		}

		groups = append(groups, output.SecurityGroups...)

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return groups, nil
}

func groupField(op string, group ec2types.SecurityGroup, field string) (string, error) {
	switch field {
	case "", FieldGroupID:
		return aws.ToString(group.GroupId), nil
	case FieldGroupName:
		return aws.ToString(group.GroupName), nil
	default:
		return "", resolutionErr(op, "unknown field selector %q", field)
	}
}

package resolver

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// Field selectors for instance projection.
const (
	FieldInstanceID = "instance_id"
	FieldPrivateIP  = "private_ip"
	FieldPublicIP   = "public_ip"
	FieldPrivateDNS = "private_dns"
	FieldPublicDNS  = "public_dns"
	FieldName       = "name"
)

// InstanceQuery selects EC2 instances by tag.
type InstanceQuery struct {
	Region string
	// Tags must all match (logical AND). At least one is required.
	Tags map[string]string
	// State restricts results to a lifecycle state, e.g. "running". Optional.
	State string
	// Field names the attribute projected from each match. Defaults to the
	// instance id.
	Field string
}

// ResolveInstancesByTags returns one projected field per instance whose tag
// set is a superset of the query tags. Results keep the order the inventory
// API returned them; an empty result is not an error.
func (r *Resolver) ResolveInstancesByTags(ctx context.Context, q InstanceQuery) ([]string, error) {
	const op = "resolve instances by tags"

	if err := validateTagQuery(op, q.Region, q.Tags); err != nil {
		return nil, err
	}

	filters := tagFilters(q.Tags)
	if q.State != "" {
		filters = append(filters, ec2types.Filter{
			Name:   aws.String("instance-state-name"),
			Values: []string{q.State},
		})
	}

	client := r.clients.EC2(q.Region)

	var values []string
	var nextToken *string
	for {
		output, err := client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
			Filters:   filters,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, wrapErr(op, "describe instances", err)
		}

		for _, reservation := range output.Reservations {
			for _, instance := range reservation.Instances {
				value, err := instanceField(op, instance, q.Field)
				if err != nil {
					return nil, err
				}
				values = append(values, value)
			}
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return values, nil
}

// ResolveInstanceByTags is the single-value variant: it fails unless exactly
// one instance matches.
func (r *Resolver) ResolveInstanceByTags(ctx context.Context, q InstanceQuery) (string, error) {
	const op = "resolve instance by tags"

	values, err := r.ResolveInstancesByTags(ctx, q)
	if err != nil {
		return "", err
	}

	switch len(values) {
	case 1:
		return values[0], nil
	case 0:
		return "", resolutionErr(op, "no instance matched tags %v in %s", q.Tags, q.Region)
	default:
		return "", resolutionErr(op, "%d instances matched tags %v in %s, expected exactly one", len(values), q.Tags, q.Region)
	}
}

func instanceField(op string, instance ec2types.Instance, field string) (string, error) {
	switch field {
	case "", FieldInstanceID:
		return aws.ToString(instance.InstanceId), nil
	case FieldPrivateIP:
		return aws.ToString(instance.PrivateIpAddress), nil
	case FieldPublicIP:
		return aws.ToString(instance.PublicIpAddress), nil
	case FieldPrivateDNS:
		return aws.ToString(instance.PrivateDnsName), nil
	case FieldPublicDNS:
		return aws.ToString(instance.PublicDnsName), nil
	case FieldName:
		return nameTag(instance.Tags), nil
	default:
		return "", resolutionErr(op, "unknown field selector %q", field)
	}
}

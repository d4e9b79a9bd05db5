// Package filters exposes the resolver operations under the fixed names an
// automation template invokes them by. The registry is built once and is
// read-only afterwards; all kwarg validation happens here, before a query
// reaches the resolver.
package filters

import (
	"context"
	"sort"

	"github.com/yairfalse/hakija/pkg/resolver"
)

// DefaultImageOwner is the account consulted for machine images when no owner
// kwarg is given. It is Canonical's publishing account.
const DefaultImageOwner = "099720109477"

// Func evaluates one filter. The subject is the piped value from the
// template; kwargs carry everything after the filter name.
type Func func(ctx context.Context, subject string, kw Kwargs) (any, error)

// Registry maps filter names to their implementations.
type Registry struct {
	filters map[string]Func
}

// New builds the lookup table over a shared Resolver. The table never changes
// after construction, so a Registry is safe for concurrent use.
func New(r *resolver.Resolver) *Registry {
	return &Registry{filters: map[string]Func{
		"get_instances_by_tags": func(ctx context.Context, region string, kw Kwargs) (any, error) {
			q, err := instanceQuery("get_instances_by_tags", region, kw)
			if err != nil {
				return nil, err
			}
			return r.ResolveInstancesByTags(ctx, q)
		},
		"get_instance_by_tags": func(ctx context.Context, region string, kw Kwargs) (any, error) {
			q, err := instanceQuery("get_instance_by_tags", region, kw)
			if err != nil {
				return nil, err
			}
			return r.ResolveInstanceByTags(ctx, q)
		},
		"get_subnet_ids_by_tags": func(ctx context.Context, region string, kw Kwargs) (any, error) {
			const name = "get_subnet_ids_by_tags"
			vpcID, err := requireString(name, kw, keyVPCID)
			if err != nil {
				return nil, err
			}
			tags, err := tagConstraints(name, kw, keyRegion, keyVPCID)
			if err != nil {
				return nil, err
			}
			return r.ResolveSubnetIDsByTags(ctx, resolver.SubnetQuery{
				Region: region,
				VPCID:  vpcID,
				Tags:   tags,
			})
		},
		"latest_ami_id": func(ctx context.Context, namePattern string, kw Kwargs) (any, error) {
			q, err := imageQuery("latest_ami_id", namePattern, kw)
			if err != nil {
				return nil, err
			}
			return r.ResolveLatestImageID(ctx, q)
		},
		"get_ami_image_id": func(ctx context.Context, namePattern string, kw Kwargs) (any, error) {
			q, err := imageQuery("get_ami_image_id", namePattern, kw)
			if err != nil {
				return nil, err
			}
			return r.ResolveImageID(ctx, q)
		},
		"get_sgs_by_tags": func(ctx context.Context, region string, kw Kwargs) (any, error) {
			const name = "get_sgs_by_tags"
			returnKey, err := optionalString(name, kw, keyReturnKey, "")
			if err != nil {
				return nil, err
			}
			field, err := groupField(name, returnKey)
			if err != nil {
				return nil, err
			}
			tags, err := tagConstraints(name, kw, keyRegion, keyReturnKey)
			if err != nil {
				return nil, err
			}
			return r.ResolveSecurityGroupIDsByTags(ctx, resolver.SecurityGroupQuery{
				Region: region,
				Tags:   tags,
				Field:  field,
			})
		},
		"get_sg_ids_by_names": func(ctx context.Context, region string, kw Kwargs) (any, error) {
			const name = "get_sg_ids_by_names"
			if err := rejectUnknown(name, kw, keyRegion, keyVPCID, keyNames); err != nil {
				return nil, err
			}
			vpcID, err := requireString(name, kw, keyVPCID)
			if err != nil {
				return nil, err
			}
			names, err := stringsKwarg(name, kw, keyNames)
			if err != nil {
				return nil, err
			}
			return r.ResolveSecurityGroupIDsByNames(ctx, region, vpcID, names)
		},
		"get_vpc_id_by_name": func(ctx context.Context, vpcName string, kw Kwargs) (any, error) {
			const name = "get_vpc_id_by_name"
			if err := rejectUnknown(name, kw, keyRegion); err != nil {
				return nil, err
			}
			region, err := requireString(name, kw, keyRegion)
			if err != nil {
				return nil, err
			}
			return r.ResolveVPCIDByName(ctx, region, vpcName)
		},
		"zones": func(ctx context.Context, region string, kw Kwargs) (any, error) {
			if err := rejectUnknown("zones", kw, keyRegion); err != nil {
				return nil, err
			}
			return r.ResolveZones(ctx, region)
		},
		"get_rds_endpoint": func(ctx context.Context, region string, kw Kwargs) (any, error) {
			const name = "get_rds_endpoint"
			if err := rejectUnknown(name, kw, keyRegion, keyName); err != nil {
				return nil, err
			}
			instanceName, err := requireString(name, kw, keyName)
			if err != nil {
				return nil, err
			}
			return r.ResolveDBEndpoint(ctx, region, instanceName)
		},
		"get_rds_hosted_zone_id": func(ctx context.Context, region string, kw Kwargs) (any, error) {
			const name = "get_rds_hosted_zone_id"
			if err := rejectUnknown(name, kw, keyRegion, keyName); err != nil {
				return nil, err
			}
			instanceName, err := requireString(name, kw, keyName)
			if err != nil {
				return nil, err
			}
			return r.ResolveDBHostedZoneID(ctx, region, instanceName)
		},
		"get_sqs": func(ctx context.Context, queueName string, kw Kwargs) (any, error) {
			const name = "get_sqs"
			if err := rejectUnknown(name, kw, keyRegion, keyKey); err != nil {
				return nil, err
			}
			region, err := requireString(name, kw, keyRegion)
			if err != nil {
				return nil, err
			}
			key, err := optionalString(name, kw, keyKey, "arn")
			if err != nil {
				return nil, err
			}
			switch key {
			case "arn":
				return r.ResolveQueueARN(ctx, region, queueName)
			case "url":
				return r.ResolveQueueURL(ctx, region, queueName)
			default:
				return nil, boundaryErr(name, "kwarg %q must be %q or %q, got %q", keyKey, "arn", "url", key)
			}
		},
		"get_dynamodb_base_arn": func(ctx context.Context, region string, kw Kwargs) (any, error) {
			if err := rejectUnknown("get_dynamodb_base_arn", kw, keyRegion); err != nil {
				return nil, err
			}
			return r.ResolveDynamoDBBaseARN(ctx, region)
		},
		"get_instance_profile": func(ctx context.Context, profileName string, kw Kwargs) (any, error) {
			const name = "get_instance_profile"
			if err := rejectUnknown(name, kw, keyRegion); err != nil {
				return nil, err
			}
			region, err := requireString(name, kw, keyRegion)
			if err != nil {
				return nil, err
			}
			return r.ResolveInstanceProfileARN(ctx, region, profileName)
		},
		"get_target_group_arn": func(ctx context.Context, region string, kw Kwargs) (any, error) {
			const name = "get_target_group_arn"
			if err := rejectUnknown(name, kw, keyRegion, keyName); err != nil {
				return nil, err
			}
			groupName, err := requireString(name, kw, keyName)
			if err != nil {
				return nil, err
			}
			return r.ResolveTargetGroupARN(ctx, region, groupName)
		},
		"get_asg_names_by_tags": func(ctx context.Context, region string, kw Kwargs) (any, error) {
			tags, err := tagConstraints("get_asg_names_by_tags", kw, keyRegion)
			if err != nil {
				return nil, err
			}
			return r.ResolveAutoScalingGroupNamesByTags(ctx, region, tags)
		},
	}}
}

// Eval runs the named filter. An unknown name is a boundary error, not a
// panic: templates supply the name at run time.
func (reg *Registry) Eval(ctx context.Context, name, subject string, kw Kwargs) (any, error) {
	fn, ok := reg.filters[name]
	if !ok {
		return nil, boundaryErr(name, "unknown filter")
	}
	return fn(ctx, subject, kw)
}

// Names returns the registered filter names, sorted.
func (reg *Registry) Names() []string {
	names := make([]string, 0, len(reg.filters))
	for name := range reg.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Filters returns a copy of the lookup table for embedding hosts that want
// to install the callables directly.
func (reg *Registry) Filters() map[string]Func {
	table := make(map[string]Func, len(reg.filters))
	for name, fn := range reg.filters {
		table[name] = fn
	}
	return table
}

func instanceQuery(filter, region string, kw Kwargs) (resolver.InstanceQuery, error) {
	state, err := optionalString(filter, kw, keyState, "")
	if err != nil {
		return resolver.InstanceQuery{}, err
	}
	returnKey, err := optionalString(filter, kw, keyReturnKey, "")
	if err != nil {
		return resolver.InstanceQuery{}, err
	}
	field, err := instanceField(filter, returnKey)
	if err != nil {
		return resolver.InstanceQuery{}, err
	}
	tags, err := tagConstraints(filter, kw, keyRegion, keyState, keyReturnKey)
	if err != nil {
		return resolver.InstanceQuery{}, err
	}
	return resolver.InstanceQuery{
		Region: region,
		Tags:   tags,
		State:  state,
		Field:  field,
	}, nil
}

func imageQuery(filter, namePattern string, kw Kwargs) (resolver.ImageQuery, error) {
	if err := rejectUnknown(filter, kw, keyRegion, keyOwner); err != nil {
		return resolver.ImageQuery{}, err
	}
	region, err := requireString(filter, kw, keyRegion)
	if err != nil {
		return resolver.ImageQuery{}, err
	}
	owner, err := optionalString(filter, kw, keyOwner, DefaultImageOwner)
	if err != nil {
		return resolver.ImageQuery{}, err
	}
	return resolver.ImageQuery{
		Region:      region,
		NamePattern: namePattern,
		OwnerID:     owner,
	}, nil
}

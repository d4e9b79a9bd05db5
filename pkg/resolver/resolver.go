// Package resolver turns tag and name queries into concrete AWS resource
// identifiers. Every operation is a single stateless read-query-project call:
// no retries, no caching, no writes.
package resolver

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// Options configures resolver construction.
type Options struct {
	// Profile names an AWS shared config profile. Empty uses the default chain.
	Profile string
}

// Resolver answers lookup queries against the AWS inventory APIs.
// Construct once per process and reuse; it is safe for concurrent use.
type Resolver struct {
	clients ClientFactory
}

// New loads AWS configuration and returns a ready Resolver.
func New(ctx context.Context, opts Options) (*Resolver, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Resolver{clients: newSDKFactory(cfg)}, nil
}

// NewWithClients returns a Resolver backed by the given factory.
// Tests use this to inject mock clients.
func NewWithClients(clients ClientFactory) *Resolver {
	return &Resolver{clients: clients}
}

// validateTagQuery rejects queries without a region or without at least one
// tag constraint. An unconstrained tag query would match the whole inventory.
func validateTagQuery(op, region string, tags map[string]string) error {
	if region == "" {
		return resolutionErr(op, "region is required")
	}
	if len(tags) == 0 {
		return resolutionErr(op, "at least one tag constraint is required")
	}
	return nil
}

// tagFilters converts tag constraints to EC2 API filters.
// Keys are sorted so the same query always produces the same request.
func tagFilters(tags map[string]string) []ec2types.Filter {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	filters := make([]ec2types.Filter, 0, len(keys))
	for _, k := range keys {
		filters = append(filters, ec2types.Filter{
			Name:   aws.String("tag:" + k),
			Values: []string{tags[k]},
		})
	}
	return filters
}

// nameTag returns the value of the Name tag, if any.
func nameTag(tags []ec2types.Tag) string {
	for _, tag := range tags {
		if aws.ToString(tag.Key) == "Name" {
			return aws.ToString(tag.Value)
		}
	}
	return ""
}

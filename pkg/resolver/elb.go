package resolver

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
)

// ResolveTargetGroupARN returns the ARN of the named ELBv2 target group,
// the handle needed to attach resolved instances to a load balancer.
func (r *Resolver) ResolveTargetGroupARN(ctx context.Context, region, name string) (string, error) {
	const op = "resolve target group arn"

	if region == "" {
		return "", resolutionErr(op, "region is required")
	}
	if name == "" {
		return "", resolutionErr(op, "target group name is required")
	}

	client := r.clients.ELB(region)
	output, err := client.DescribeTargetGroups(ctx, &elasticloadbalancingv2.DescribeTargetGroupsInput{
		Names: []string{name},
	})
	if err != nil {
		return "", wrapErr(op, "describe target groups", err)
	}

	switch len(output.TargetGroups) {
	case 1:
		return aws.ToString(output.TargetGroups[0].TargetGroupArn), nil
	case 0:
		return "", resolutionErr(op, "no target group named %q in %s", name, region)
	default:
		return "", resolutionErr(op, "%d target groups named %q in %s, expected exactly one", len(output.TargetGroups), name, region)
	}
}

package resolver

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTargetGroupARN(t *testing.T) {
	mock := &mockELBClient{
		describeTargetGroupsFunc: func(_ context.Context, params *elasticloadbalancingv2.DescribeTargetGroupsInput, _ ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeTargetGroupsOutput, error) {
			assert.Equal(t, []string{"webapp-tg"}, params.Names)
			return &elasticloadbalancingv2.DescribeTargetGroupsOutput{
				TargetGroups: []elbtypes.TargetGroup{{
					TargetGroupArn: aws.String("arn:aws:elasticloadbalancing:us-west-2:123456789012:targetgroup/webapp-tg/abc123"),
				}},
			}, nil
		},
	}

	r := NewWithClients(&mockClients{elb: mock})
	arn, err := r.ResolveTargetGroupARN(context.Background(), "us-west-2", "webapp-tg")

	require.NoError(t, err)
	assert.Equal(t, "arn:aws:elasticloadbalancing:us-west-2:123456789012:targetgroup/webapp-tg/abc123", arn)
}

func TestResolveTargetGroupARN_NoMatchFails(t *testing.T) {
	mock := &mockELBClient{
		describeTargetGroupsFunc: func(_ context.Context, _ *elasticloadbalancingv2.DescribeTargetGroupsInput, _ ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeTargetGroupsOutput, error) {
			return &elasticloadbalancingv2.DescribeTargetGroupsOutput{}, nil
		},
	}

	r := NewWithClients(&mockClients{elb: mock})
	_, err := r.ResolveTargetGroupARN(context.Background(), "us-west-2", "ghost")

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Contains(t, err.Error(), `no target group named "ghost"`)
}

func TestResolveTargetGroupARN_ManyFails(t *testing.T) {
	mock := &mockELBClient{
		describeTargetGroupsFunc: func(_ context.Context, _ *elasticloadbalancingv2.DescribeTargetGroupsInput, _ ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeTargetGroupsOutput, error) {
			return &elasticloadbalancingv2.DescribeTargetGroupsOutput{
				TargetGroups: []elbtypes.TargetGroup{
					{TargetGroupArn: aws.String("arn-1")},
					{TargetGroupArn: aws.String("arn-2")},
				},
			}, nil
		},
	}

	r := NewWithClients(&mockClients{elb: mock})
	_, err := r.ResolveTargetGroupARN(context.Background(), "us-west-2", "webapp-tg")

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Contains(t, err.Error(), "expected exactly one")
}

package resolver

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveVPCIDByName(t *testing.T) {
	var gotFilters []ec2types.Filter
	mock := &mockEC2Client{
		describeVpcsFunc: func(_ context.Context, params *ec2.DescribeVpcsInput, _ ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error) {
			gotFilters = params.Filters
			return &ec2.DescribeVpcsOutput{
				Vpcs: []ec2types.Vpc{{VpcId: aws.String("vpc-1234567")}},
			}, nil
		},
	}

	r := NewWithClients(&mockClients{ec2: mock})
	id, err := r.ResolveVPCIDByName(context.Background(), "us-west-2", "test")

	require.NoError(t, err)
	assert.Equal(t, "vpc-1234567", id)
	assert.Equal(t, []string{"test"}, filterValues(gotFilters, "tag:Name"))
}

func TestResolveVPCIDByName_NoMatchFails(t *testing.T) {
	r := NewWithClients(&mockClients{ec2: &mockEC2Client{}})

	_, err := r.ResolveVPCIDByName(context.Background(), "us-west-2", "ghost")

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Contains(t, err.Error(), `no vpc named "ghost"`)
}

func TestResolveZones_Sorted(t *testing.T) {
	mock := &mockEC2Client{
		describeZonesFunc: func(_ context.Context, _ *ec2.DescribeAvailabilityZonesInput, _ ...func(*ec2.Options)) (*ec2.DescribeAvailabilityZonesOutput, error) {
			return &ec2.DescribeAvailabilityZonesOutput{
				AvailabilityZones: []ec2types.AvailabilityZone{
					{ZoneName: aws.String("us-west-2c")},
					{ZoneName: aws.String("us-west-2a")},
					{ZoneName: aws.String("us-west-2b")},
				},
			}, nil
		},
	}

	r := NewWithClients(&mockClients{ec2: mock})
	zones, err := r.ResolveZones(context.Background(), "us-west-2")

	require.NoError(t, err)
	assert.Equal(t, []string{"us-west-2a", "us-west-2b", "us-west-2c"}, zones)
}

func TestResolveZones_RegionRequired(t *testing.T) {
	r := NewWithClients(&mockClients{ec2: &mockEC2Client{}})

	_, err := r.ResolveZones(context.Background(), "")

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
}

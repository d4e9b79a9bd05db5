package resolver

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
)

// ResolveInstanceProfileARN returns the ARN of the named instance profile.
// IAM is a global service; region only selects the client endpoint.
func (r *Resolver) ResolveInstanceProfileARN(ctx context.Context, region, profileName string) (string, error) {
	const op = "resolve instance profile arn"

	if region == "" {
		return "", resolutionErr(op, "region is required")
	}
	if profileName == "" {
		return "", resolutionErr(op, "instance profile name is required")
	}

	client := r.clients.IAM(region)
	output, err := client.GetInstanceProfile(ctx, &iam.GetInstanceProfileInput{
		InstanceProfileName: aws.String(profileName),
	})
	if err != nil {
		return "", wrapErr(op, "get instance profile", err)
	}

	return aws.ToString(output.InstanceProfile.Arn), nil
}

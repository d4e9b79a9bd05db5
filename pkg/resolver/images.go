package resolver

import (
	"context"
	"time"

	wildcard "github.com/IGLOU-EU/go-wildcard/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// ImageQuery selects machine images by owner and name pattern.
type ImageQuery struct {
	Region string
	// NamePattern is a wildcard pattern matched against image names,
	// e.g. "ubuntu/images/hvm-ssd/ubuntu-trusty-14.04-amd64-server-*".
	NamePattern string
	// OwnerID is the account that published the image.
	OwnerID string
}

// ResolveLatestImageID returns the id of the most recently created image
// matching the query. Zero matches is an error: a caller that needs an image
// id cannot proceed with none. Creation-time ties go to whichever image the
// API listed first.
func (r *Resolver) ResolveLatestImageID(ctx context.Context, q ImageQuery) (string, error) {
	const op = "resolve latest image id"

	images, err := r.describeImages(ctx, op, q)
	if err != nil {
		return "", err
	}

	var latestID string
	var latestAt time.Time
	for _, image := range images {
		createdAt, err := time.Parse(time.RFC3339, aws.ToString(image.CreationDate))
		if err != nil {
			return "", wrapErr(op, "parse creation date of "+aws.ToString(image.ImageId), err)
		}
		if latestID == "" || createdAt.After(latestAt) {
			latestID = aws.ToString(image.ImageId)
			latestAt = createdAt
		}
	}

	if latestID == "" {
		return "", resolutionErr(op, "no image matched name %q owned by %s in %s", q.NamePattern, q.OwnerID, q.Region)
	}
	return latestID, nil
}

// ResolveImageID returns the id of the single image matching the query,
// failing when the pattern matches zero or several images.
func (r *Resolver) ResolveImageID(ctx context.Context, q ImageQuery) (string, error) {
	const op = "resolve image id"

	images, err := r.describeImages(ctx, op, q)
	if err != nil {
		return "", err
	}

	switch len(images) {
	case 1:
		return aws.ToString(images[0].ImageId), nil
	case 0:
		return "", resolutionErr(op, "no image matched name %q owned by %s in %s", q.NamePattern, q.OwnerID, q.Region)
	default:
		return "", resolutionErr(op, "%d images matched name %q owned by %s in %s, expected exactly one", len(images), q.NamePattern, q.OwnerID, q.Region)
	}
}

func (r *Resolver) describeImages(ctx context.Context, op string, q ImageQuery) ([]ec2types.Image, error) {
	if q.Region == "" {
		return nil, resolutionErr(op, "region is required")
	}
	if q.NamePattern == "" {
		return nil, resolutionErr(op, "name pattern is required")
	}
	if q.OwnerID == "" {
		return nil, resolutionErr(op, "owner id is required")
	}

	client := r.clients.EC2(q.Region)

	var images []ec2types.Image
	var nextToken *string
	for {
		output, err := client.DescribeImages(ctx, &ec2.DescribeImagesInput{
			Owners: []string{q.OwnerID},
			Filters: []ec2types.Filter{{
				Name:   aws.String("name"),
				Values: []string{q.NamePattern},
			}},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, wrapErr(op, "describe images", err)
		}

		for _, image := range output.Images {
			if !wildcard.Match(q.NamePattern, aws.ToString(image.Name)) {
				continue
			}
			images = append(images, image)
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return images, nil
}

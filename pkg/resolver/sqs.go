package resolver

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// ResolveQueueURL returns the URL of the named SQS queue.
func (r *Resolver) ResolveQueueURL(ctx context.Context, region, queueName string) (string, error) {
	const op = "resolve queue url"
	return r.queueURL(ctx, op, region, queueName)
}

// ResolveQueueARN returns the ARN of the named SQS queue.
func (r *Resolver) ResolveQueueARN(ctx context.Context, region, queueName string) (string, error) {
	const op = "resolve queue arn"

	url, err := r.queueURL(ctx, op, region, queueName)
	if err != nil {
		return "", err
	}

	client := r.clients.SQS(region)
	output, err := client.GetQueueAttributes(ctx, &sqs.GetQueueAttributesInput{
		QueueUrl:       aws.String(url),
		AttributeNames: []sqstypes.QueueAttributeName{sqstypes.QueueAttributeNameQueueArn},
	})
	if err != nil {
		return "", wrapErr(op, "get queue attributes", err)
	}

	arn, ok := output.Attributes[string(sqstypes.QueueAttributeNameQueueArn)]
	if !ok {
		return "", resolutionErr(op, "queue %s in %s reported no arn", queueName, region)
	}
	return arn, nil
}

func (r *Resolver) queueURL(ctx context.Context, op, region, queueName string) (string, error) {
	if region == "" {
		return "", resolutionErr(op, "region is required")
	}
	if queueName == "" {
		return "", resolutionErr(op, "queue name is required")
	}

	client := r.clients.SQS(region)
	output, err := client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(queueName),
	})
	if err != nil {
		return "", wrapErr(op, "get queue url", err)
	}
	return aws.ToString(output.QueueUrl), nil
}

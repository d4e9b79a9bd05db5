package resolver

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ResolveDynamoDBBaseARN returns the account's base table ARN for a region,
// i.e. "arn:aws:dynamodb:<region>:<account>:table". It is derived from any
// existing table, so an account with no tables is an error.
func (r *Resolver) ResolveDynamoDBBaseARN(ctx context.Context, region string) (string, error) {
	const op = "resolve dynamodb base arn"

	if region == "" {
		return "", resolutionErr(op, "region is required")
	}

	client := r.clients.DynamoDB(region)

	tables, err := client.ListTables(ctx, &dynamodb.ListTablesInput{Limit: aws.Int32(1)})
	if err != nil {
		return "", wrapErr(op, "list tables", err)
	}
	if len(tables.TableNames) == 0 {
		return "", resolutionErr(op, "no dynamodb table exists in %s to derive the base arn from", region)
	}

	output, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tables.TableNames[0]),
	})
	if err != nil {
		return "", wrapErr(op, "describe table", err)
	}

	arn := aws.ToString(output.Table.TableArn)
	idx := strings.LastIndex(arn, "/")
	if idx < 0 {
		return "", resolutionErr(op, "unexpected table arn %q", arn)
	}
	return arn[:idx], nil
}

package resolver

import (
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// ClientFactory hands out per-region service clients.
type ClientFactory interface {
	EC2(region string) EC2API
	RDS(region string) RDSAPI
	SQS(region string) SQSAPI
	DynamoDB(region string) DynamoDBAPI
	IAM(region string) IAMAPI
	ELB(region string) ELBAPI
	AutoScaling(region string) AutoScalingAPI
}

// sdkFactory builds real SDK clients from one loaded aws.Config,
// memoized per region for the life of the process.
type sdkFactory struct {
	cfg aws.Config

	mu   sync.Mutex
	ec2  map[string]*ec2.Client
	rds  map[string]*rds.Client
	sqs  map[string]*sqs.Client
	ddb  map[string]*dynamodb.Client
	iam  map[string]*iam.Client
	elb  map[string]*elasticloadbalancingv2.Client
	asg  map[string]*autoscaling.Client
}

func newSDKFactory(cfg aws.Config) *sdkFactory {
	return &sdkFactory{
		cfg: cfg,
		ec2: make(map[string]*ec2.Client),
		rds: make(map[string]*rds.Client),
		sqs: make(map[string]*sqs.Client),
		ddb: make(map[string]*dynamodb.Client),
		iam: make(map[string]*iam.Client),
		elb: make(map[string]*elasticloadbalancingv2.Client),
		asg: make(map[string]*autoscaling.Client),
	}
}

func (f *sdkFactory) EC2(region string) EC2API {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.ec2[region]; ok {
		return c
	}
	c := ec2.NewFromConfig(f.cfg, func(o *ec2.Options) { o.Region = region })
	f.ec2[region] = c
	return c
}

func (f *sdkFactory) RDS(region string) RDSAPI {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.rds[region]; ok {
		return c
	}
	c := rds.NewFromConfig(f.cfg, func(o *rds.Options) { o.Region = region })
	f.rds[region] = c
	return c
}

func (f *sdkFactory) SQS(region string) SQSAPI {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.sqs[region]; ok {
		return c
	}
	c := sqs.NewFromConfig(f.cfg, func(o *sqs.Options) { o.Region = region })
	f.sqs[region] = c
	return c
}

func (f *sdkFactory) DynamoDB(region string) DynamoDBAPI {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.ddb[region]; ok {
		return c
	}
	c := dynamodb.NewFromConfig(f.cfg, func(o *dynamodb.Options) { o.Region = region })
	f.ddb[region] = c
	return c
}

func (f *sdkFactory) IAM(region string) IAMAPI {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.iam[region]; ok {
		return c
	}
	c := iam.NewFromConfig(f.cfg, func(o *iam.Options) { o.Region = region })
	f.iam[region] = c
	return c
}

func (f *sdkFactory) ELB(region string) ELBAPI {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.elb[region]; ok {
		return c
	}
	c := elasticloadbalancingv2.NewFromConfig(f.cfg, func(o *elasticloadbalancingv2.Options) { o.Region = region })
	f.elb[region] = c
	return c
}

func (f *sdkFactory) AutoScaling(region string) AutoScalingAPI {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.asg[region]; ok {
		return c
	}
	c := autoscaling.NewFromConfig(f.cfg, func(o *autoscaling.Options) { o.Region = region })
	f.asg[region] = c
	return c
}

var _ ClientFactory = (*sdkFactory)(nil)

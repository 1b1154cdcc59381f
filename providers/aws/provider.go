// Package aws implements resource discovery, existence verification and
// deletion against the AWS APIs. Each service file contributes the
// verify/delete handler pairs for the resource types that service owns.
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/elasticache"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/opensearch"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/infrahouse/tagsweep/internal/registry"
)

// Provider bundles one client per service, all built from a single session
// region. The tag index is regional, so every regional ARN it returns lives
// in that region; IAM, S3 and Route53 are global.
type Provider struct {
	region string

	ec2Client            *ec2.Client
	rdsClient            *rds.Client
	elbv2Client          *elasticloadbalancingv2.Client
	lambdaClient         *lambda.Client
	dynamodbClient       *dynamodb.Client
	s3Client             *s3.Client
	secretsmanagerClient *secretsmanager.Client
	iamClient            *iam.Client
	logsClient           *cloudwatchlogs.Client
	eventbridgeClient    *eventbridge.Client
	snsClient            *sns.Client
	sqsClient            *sqs.Client
	autoscalingClient    *autoscaling.Client
	route53Client        *route53.Client
	kmsClient            *kms.Client
	elasticacheClient    *elasticache.Client
	opensearchClient     *opensearch.Client
	taggingClient        *resourcegroupstaggingapi.Client

	// confirm gates destructive bulk operations (non-empty bucket purge).
	// A nil confirm declines everything.
	confirm func(prompt string) bool
}

// New loads the default AWS configuration and builds all service clients.
// An empty region keeps the SDK's default resolution chain.
func New(ctx context.Context, region string, confirm func(prompt string) bool) (*Provider, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &Provider{
		region:               cfg.Region,
		ec2Client:            ec2.NewFromConfig(cfg),
		rdsClient:            rds.NewFromConfig(cfg),
		elbv2Client:          elasticloadbalancingv2.NewFromConfig(cfg),
		lambdaClient:         lambda.NewFromConfig(cfg),
		dynamodbClient:       dynamodb.NewFromConfig(cfg),
		s3Client:             s3.NewFromConfig(cfg),
		secretsmanagerClient: secretsmanager.NewFromConfig(cfg),
		iamClient:            iam.NewFromConfig(cfg),
		logsClient:           cloudwatchlogs.NewFromConfig(cfg),
		eventbridgeClient:    eventbridge.NewFromConfig(cfg),
		snsClient:            sns.NewFromConfig(cfg),
		sqsClient:            sqs.NewFromConfig(cfg),
		autoscalingClient:    autoscaling.NewFromConfig(cfg),
		route53Client:        route53.NewFromConfig(cfg),
		kmsClient:            kms.NewFromConfig(cfg),
		elasticacheClient:    elasticache.NewFromConfig(cfg),
		opensearchClient:     opensearch.NewFromConfig(cfg),
		taggingClient:        resourcegroupstaggingapi.NewFromConfig(cfg),
		confirm:              confirm,
	}, nil
}

// Region returns the resolved session region.
func (p *Provider) Region() string {
	return p.region
}

// Directory returns the two-source resource directory.
func (p *Provider) Directory() *Directory {
	return &Directory{iam: p.iamClient, tagging: p.taggingClient}
}

// Registry builds the full resource type taxonomy.
func (p *Provider) Registry() *registry.Registry {
	r := registry.New(IsNotFound)
	(&ec2Handlers{api: p.ec2Client}).register(r)
	(&vpcHandlers{api: p.ec2Client}).register(r)
	(&rdsHandlers{api: p.rdsClient}).register(r)
	(&elbHandlers{api: p.elbv2Client}).register(r)
	(&lambdaHandlers{api: p.lambdaClient}).register(r)
	(&dynamodbHandlers{api: p.dynamodbClient}).register(r)
	(&s3Handlers{api: p.s3Client, confirm: p.confirm}).register(r)
	(&secretsHandlers{api: p.secretsmanagerClient}).register(r)
	(&iamHandlers{api: p.iamClient}).register(r)
	(&logsHandlers{api: p.logsClient}).register(r)
	(&eventbridgeHandlers{api: p.eventbridgeClient}).register(r)
	(&snsHandlers{api: p.snsClient}).register(r)
	(&sqsHandlers{api: p.sqsClient}).register(r)
	(&autoscalingHandlers{api: p.autoscalingClient}).register(r)
	(&route53Handlers{api: p.route53Client}).register(r)
	(&kmsHandlers{api: p.kmsClient}).register(r)
	(&elasticacheHandlers{api: p.elasticacheClient}).register(r)
	(&opensearchHandlers{api: p.opensearchClient}).register(r)
	return r
}

package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/registry"
)

type snsAPI interface {
	GetTopicAttributes(ctx context.Context, in *sns.GetTopicAttributesInput, opts ...func(*sns.Options)) (*sns.GetTopicAttributesOutput, error)
	DeleteTopic(ctx context.Context, in *sns.DeleteTopicInput, opts ...func(*sns.Options)) (*sns.DeleteTopicOutput, error)
}

// snsHandlers: topic ARNs carry no resource type, and the API takes the
// full ARN.
type snsHandlers struct {
	api snsAPI
}

func (h *snsHandlers) register(r *registry.Registry) {
	r.RegisterFuncs("sns", "", h.verifyTopic, h.deleteTopic)
}

func (h *snsHandlers) verifyTopic(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.GetTopicAttributes(ctx, &sns.GetTopicAttributesInput{TopicArn: &id.Raw})
	return err == nil, err
}

func (h *snsHandlers) deleteTopic(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteTopic(ctx, &sns.DeleteTopicInput{TopicArn: &id.Raw})
	if err != nil {
		return "", err
	}
	return "SNS topic deleted", nil
}

type sqsAPI interface {
	GetQueueAttributes(ctx context.Context, in *sqs.GetQueueAttributesInput, opts ...func(*sqs.Options)) (*sqs.GetQueueAttributesOutput, error)
	DeleteQueue(ctx context.Context, in *sqs.DeleteQueueInput, opts ...func(*sqs.Options)) (*sqs.DeleteQueueOutput, error)
}

// sqsHandlers: the SQS API is addressed by queue URL, which is fully
// determined by the ARN's region, account and queue name.
type sqsHandlers struct {
	api sqsAPI
}

func (h *sqsHandlers) register(r *registry.Registry) {
	r.RegisterFuncs("sqs", "", h.verifyQueue, h.deleteQueue)
}

func queueURL(id *arn.Identity) string {
	return fmt.Sprintf("https://sqs.%s.amazonaws.com/%s/%s", id.Region, id.Account, id.ID)
}

func (h *sqsHandlers) verifyQueue(ctx context.Context, id *arn.Identity) (bool, error) {
	url := queueURL(id)
	_, err := h.api.GetQueueAttributes(ctx, &sqs.GetQueueAttributesInput{
		QueueUrl:       &url,
		AttributeNames: []sqstypes.QueueAttributeName{sqstypes.QueueAttributeNameAll},
	})
	return err == nil, err
}

func (h *sqsHandlers) deleteQueue(ctx context.Context, id *arn.Identity) (string, error) {
	url := queueURL(id)
	_, err := h.api.DeleteQueue(ctx, &sqs.DeleteQueueInput{QueueUrl: &url})
	if err != nil {
		return "", err
	}
	return "SQS queue deleted", nil
}

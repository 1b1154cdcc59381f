package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/registry"
)

type dynamodbAPI interface {
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, opts ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	DeleteTable(ctx context.Context, in *dynamodb.DeleteTableInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteTableOutput, error)
}

type dynamodbHandlers struct {
	api dynamodbAPI
}

func (h *dynamodbHandlers) register(r *registry.Registry) {
	r.RegisterFuncs("dynamodb", "table", h.verifyTable, h.deleteTable)
}

func (h *dynamodbHandlers) verifyTable(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: &id.ID})
	return err == nil, err
}

func (h *dynamodbHandlers) deleteTable(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteTable(ctx, &dynamodb.DeleteTableInput{TableName: &id.ID})
	if err != nil {
		return "", err
	}
	return "DynamoDB table deleted", nil
}

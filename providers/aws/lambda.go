package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/registry"
)

type lambdaAPI interface {
	GetFunction(ctx context.Context, in *lambda.GetFunctionInput, opts ...func(*lambda.Options)) (*lambda.GetFunctionOutput, error)
	DeleteFunction(ctx context.Context, in *lambda.DeleteFunctionInput, opts ...func(*lambda.Options)) (*lambda.DeleteFunctionOutput, error)
}

type lambdaHandlers struct {
	api lambdaAPI
}

func (h *lambdaHandlers) register(r *registry.Registry) {
	r.RegisterFuncs("lambda", "function", h.verifyFunction, h.deleteFunction)
}

func (h *lambdaHandlers) verifyFunction(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.GetFunction(ctx, &lambda.GetFunctionInput{FunctionName: &id.ID})
	return err == nil, err
}

func (h *lambdaHandlers) deleteFunction(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteFunction(ctx, &lambda.DeleteFunctionInput{FunctionName: &id.ID})
	if err != nil {
		return "", err
	}
	return "Lambda function deleted", nil
}

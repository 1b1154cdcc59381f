package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/registry"
)

type secretsAPI interface {
	DescribeSecret(ctx context.Context, in *secretsmanager.DescribeSecretInput, opts ...func(*secretsmanager.Options)) (*secretsmanager.DescribeSecretOutput, error)
	DeleteSecret(ctx context.Context, in *secretsmanager.DeleteSecretInput, opts ...func(*secretsmanager.Options)) (*secretsmanager.DeleteSecretOutput, error)
}

// secretsHandlers addresses secrets by full ARN: the short id carries a
// random suffix that is part of the name, so the ARN is the reliable key.
type secretsHandlers struct {
	api secretsAPI
}

func (h *secretsHandlers) register(r *registry.Registry) {
	r.RegisterFuncs("secretsmanager", "secret", h.verifySecret, h.deleteSecret)
}

func (h *secretsHandlers) verifySecret(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeSecret(ctx, &secretsmanager.DescribeSecretInput{SecretId: &id.Raw})
	return err == nil, err
}

func (h *secretsHandlers) deleteSecret(ctx context.Context, id *arn.Identity) (string, error) {
	force := true
	_, err := h.api.DeleteSecret(ctx, &secretsmanager.DeleteSecretInput{
		SecretId:                   &id.Raw,
		ForceDeleteWithoutRecovery: &force,
	})
	if err != nil {
		return "", err
	}
	return "secret deleted", nil
}

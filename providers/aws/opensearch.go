package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/opensearch"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/registry"
)

type opensearchAPI interface {
	DescribeDomain(ctx context.Context, in *opensearch.DescribeDomainInput, opts ...func(*opensearch.Options)) (*opensearch.DescribeDomainOutput, error)
	DeleteDomain(ctx context.Context, in *opensearch.DeleteDomainInput, opts ...func(*opensearch.Options)) (*opensearch.DeleteDomainOutput, error)
}

// opensearchHandlers covers both ARN spellings: legacy Elasticsearch
// domains use the "es" service prefix, newer ones "opensearch".
type opensearchHandlers struct {
	api opensearchAPI
}

func (h *opensearchHandlers) register(r *registry.Registry) {
	r.RegisterFuncs("es", "domain", h.verifyDomain, h.deleteDomain)
	r.RegisterFuncs("opensearch", "domain", h.verifyDomain, h.deleteDomain)
}

func (h *opensearchHandlers) verifyDomain(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeDomain(ctx, &opensearch.DescribeDomainInput{DomainName: &id.ID})
	return err == nil, err
}

func (h *opensearchHandlers) deleteDomain(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteDomain(ctx, &opensearch.DeleteDomainInput{DomainName: &id.ID})
	if err != nil {
		return "", err
	}
	return "OpenSearch domain deletion initiated", nil
}

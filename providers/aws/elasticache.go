package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/elasticache"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/registry"
)

type elasticacheAPI interface {
	DescribeCacheClusters(ctx context.Context, in *elasticache.DescribeCacheClustersInput, opts ...func(*elasticache.Options)) (*elasticache.DescribeCacheClustersOutput, error)
	DeleteCacheCluster(ctx context.Context, in *elasticache.DeleteCacheClusterInput, opts ...func(*elasticache.Options)) (*elasticache.DeleteCacheClusterOutput, error)
	DescribeCacheSubnetGroups(ctx context.Context, in *elasticache.DescribeCacheSubnetGroupsInput, opts ...func(*elasticache.Options)) (*elasticache.DescribeCacheSubnetGroupsOutput, error)
	DeleteCacheSubnetGroup(ctx context.Context, in *elasticache.DeleteCacheSubnetGroupInput, opts ...func(*elasticache.Options)) (*elasticache.DeleteCacheSubnetGroupOutput, error)
}

type elasticacheHandlers struct {
	api elasticacheAPI
}

func (h *elasticacheHandlers) register(r *registry.Registry) {
	r.RegisterFuncs("elasticache", "cluster", h.verifyCluster, h.deleteCluster)
	r.RegisterFuncs("elasticache", "subnetgroup", h.verifySubnetGroup, h.deleteSubnetGroup)
}

func (h *elasticacheHandlers) verifyCluster(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeCacheClusters(ctx, &elasticache.DescribeCacheClustersInput{
		CacheClusterId: &id.ID,
	})
	return err == nil, err
}

func (h *elasticacheHandlers) deleteCluster(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteCacheCluster(ctx, &elasticache.DeleteCacheClusterInput{
		CacheClusterId: &id.ID,
	})
	if err != nil {
		return "", err
	}
	return "ElastiCache cluster deletion initiated", nil
}

func (h *elasticacheHandlers) verifySubnetGroup(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeCacheSubnetGroups(ctx, &elasticache.DescribeCacheSubnetGroupsInput{
		CacheSubnetGroupName: &id.ID,
	})
	return err == nil, err
}

func (h *elasticacheHandlers) deleteSubnetGroup(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteCacheSubnetGroup(ctx, &elasticache.DeleteCacheSubnetGroupInput{
		CacheSubnetGroupName: &id.ID,
	})
	if err != nil {
		return "", err
	}
	return "ElastiCache subnet group deleted", nil
}

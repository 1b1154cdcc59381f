package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/registry"
)

type rdsAPI interface {
	DescribeDBInstances(ctx context.Context, in *rds.DescribeDBInstancesInput, opts ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
	DeleteDBInstance(ctx context.Context, in *rds.DeleteDBInstanceInput, opts ...func(*rds.Options)) (*rds.DeleteDBInstanceOutput, error)
	DescribeDBClusters(ctx context.Context, in *rds.DescribeDBClustersInput, opts ...func(*rds.Options)) (*rds.DescribeDBClustersOutput, error)
	DeleteDBCluster(ctx context.Context, in *rds.DeleteDBClusterInput, opts ...func(*rds.Options)) (*rds.DeleteDBClusterOutput, error)
	DescribeDBSubnetGroups(ctx context.Context, in *rds.DescribeDBSubnetGroupsInput, opts ...func(*rds.Options)) (*rds.DescribeDBSubnetGroupsOutput, error)
	DeleteDBSubnetGroup(ctx context.Context, in *rds.DeleteDBSubnetGroupInput, opts ...func(*rds.Options)) (*rds.DeleteDBSubnetGroupOutput, error)
	DescribeDBParameterGroups(ctx context.Context, in *rds.DescribeDBParameterGroupsInput, opts ...func(*rds.Options)) (*rds.DescribeDBParameterGroupsOutput, error)
	DeleteDBParameterGroup(ctx context.Context, in *rds.DeleteDBParameterGroupInput, opts ...func(*rds.Options)) (*rds.DeleteDBParameterGroupOutput, error)
}

type rdsHandlers struct {
	api rdsAPI
}

func (h *rdsHandlers) register(r *registry.Registry) {
	r.RegisterFuncs("rds", "db", h.verifyInstance, h.deleteInstance)
	r.RegisterFuncs("rds", "cluster", h.verifyCluster, h.deleteCluster)
	r.RegisterFuncs("rds", "subgrp", h.verifySubnetGroup, h.deleteSubnetGroup)
	r.RegisterFuncs("rds", "pg", h.verifyParameterGroup, h.deleteParameterGroup)
}

func (h *rdsHandlers) verifyInstance(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{DBInstanceIdentifier: &id.ID})
	return err == nil, err
}

func (h *rdsHandlers) deleteInstance(ctx context.Context, id *arn.Identity) (string, error) {
	skip := true
	deleteBackups := true
	_, err := h.api.DeleteDBInstance(ctx, &rds.DeleteDBInstanceInput{
		DBInstanceIdentifier:   &id.ID,
		SkipFinalSnapshot:      &skip,
		DeleteAutomatedBackups: &deleteBackups,
	})
	if err != nil {
		return "", err
	}
	return "RDS instance deletion initiated", nil
}

func (h *rdsHandlers) verifyCluster(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeDBClusters(ctx, &rds.DescribeDBClustersInput{DBClusterIdentifier: &id.ID})
	return err == nil, err
}

func (h *rdsHandlers) deleteCluster(ctx context.Context, id *arn.Identity) (string, error) {
	skip := true
	_, err := h.api.DeleteDBCluster(ctx, &rds.DeleteDBClusterInput{
		DBClusterIdentifier: &id.ID,
		SkipFinalSnapshot:   &skip,
	})
	if err != nil {
		return "", err
	}
	return "RDS cluster deletion initiated", nil
}

func (h *rdsHandlers) verifySubnetGroup(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeDBSubnetGroups(ctx, &rds.DescribeDBSubnetGroupsInput{DBSubnetGroupName: &id.ID})
	return err == nil, err
}

func (h *rdsHandlers) deleteSubnetGroup(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteDBSubnetGroup(ctx, &rds.DeleteDBSubnetGroupInput{DBSubnetGroupName: &id.ID})
	if err != nil {
		return "", err
	}
	return "DB subnet group deleted", nil
}

func (h *rdsHandlers) verifyParameterGroup(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeDBParameterGroups(ctx, &rds.DescribeDBParameterGroupsInput{DBParameterGroupName: &id.ID})
	return err == nil, err
}

func (h *rdsHandlers) deleteParameterGroup(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteDBParameterGroup(ctx, &rds.DeleteDBParameterGroupInput{DBParameterGroupName: &id.ID})
	if err != nil {
		return "", err
	}
	return "DB parameter group deleted", nil
}

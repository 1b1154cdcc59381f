package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/registry"
)

type logsAPI interface {
	DescribeLogGroups(ctx context.Context, in *cloudwatchlogs.DescribeLogGroupsInput, opts ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error)
	DeleteLogGroup(ctx context.Context, in *cloudwatchlogs.DeleteLogGroupInput, opts ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DeleteLogGroupOutput, error)
}

type logsHandlers struct {
	api logsAPI
}

func (h *logsHandlers) register(r *registry.Registry) {
	r.RegisterFuncs("logs", "log-group", h.verifyLogGroup, h.deleteLogGroup)
}

// verifyLogGroup lists by prefix and requires an exact name match: the
// prefix query also returns longer names that happen to share the prefix.
func (h *logsHandlers) verifyLogGroup(ctx context.Context, id *arn.Identity) (bool, error) {
	out, err := h.api.DescribeLogGroups(ctx, &cloudwatchlogs.DescribeLogGroupsInput{LogGroupNamePrefix: &id.ID})
	if err != nil {
		return false, err
	}
	for _, lg := range out.LogGroups {
		if lg.LogGroupName != nil && *lg.LogGroupName == id.ID {
			return true, nil
		}
	}
	return false, nil
}

func (h *logsHandlers) deleteLogGroup(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteLogGroup(ctx, &cloudwatchlogs.DeleteLogGroupInput{LogGroupName: &id.ID})
	if err != nil {
		return "", err
	}
	return "log group deleted", nil
}

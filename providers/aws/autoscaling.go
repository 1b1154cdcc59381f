package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/autoscaling"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/registry"
)

type autoscalingAPI interface {
	DescribeAutoScalingGroups(ctx context.Context, in *autoscaling.DescribeAutoScalingGroupsInput, opts ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingGroupsOutput, error)
	DeleteAutoScalingGroup(ctx context.Context, in *autoscaling.DeleteAutoScalingGroupInput, opts ...func(*autoscaling.Options)) (*autoscaling.DeleteAutoScalingGroupOutput, error)
	DescribeLaunchConfigurations(ctx context.Context, in *autoscaling.DescribeLaunchConfigurationsInput, opts ...func(*autoscaling.Options)) (*autoscaling.DescribeLaunchConfigurationsOutput, error)
	DeleteLaunchConfiguration(ctx context.Context, in *autoscaling.DeleteLaunchConfigurationInput, opts ...func(*autoscaling.Options)) (*autoscaling.DeleteLaunchConfigurationOutput, error)
}

type autoscalingHandlers struct {
	api autoscalingAPI
}

func (h *autoscalingHandlers) register(r *registry.Registry) {
	r.RegisterFuncs("autoscaling", "autoScalingGroup", h.verifyGroup, h.deleteGroup)
	r.RegisterFuncs("autoscaling", "launchConfiguration", h.verifyLaunchConfiguration, h.deleteLaunchConfiguration)
}

// Describing an unknown group name returns an empty list, not an error.
func (h *autoscalingHandlers) verifyGroup(ctx context.Context, id *arn.Identity) (bool, error) {
	out, err := h.api.DescribeAutoScalingGroups(ctx, &autoscaling.DescribeAutoScalingGroupsInput{
		AutoScalingGroupNames: []string{groupName(id)},
	})
	if err != nil {
		return false, err
	}
	return len(out.AutoScalingGroups) > 0, nil
}

func (h *autoscalingHandlers) deleteGroup(ctx context.Context, id *arn.Identity) (string, error) {
	name := groupName(id)
	force := true
	_, err := h.api.DeleteAutoScalingGroup(ctx, &autoscaling.DeleteAutoScalingGroupInput{
		AutoScalingGroupName: &name,
		ForceDelete:          &force,
	})
	if err != nil {
		return "", err
	}
	return "Auto Scaling group deletion initiated", nil
}

// groupName strips the uuid:autoScalingGroupName/name prefix the ASG ARN
// carries in its resource id.
func groupName(id *arn.Identity) string {
	for i := len(id.ID) - 1; i >= 0; i-- {
		if id.ID[i] == '/' {
			return id.ID[i+1:]
		}
	}
	return id.ID
}

func (h *autoscalingHandlers) verifyLaunchConfiguration(ctx context.Context, id *arn.Identity) (bool, error) {
	out, err := h.api.DescribeLaunchConfigurations(ctx, &autoscaling.DescribeLaunchConfigurationsInput{
		LaunchConfigurationNames: []string{groupName(id)},
	})
	if err != nil {
		return false, err
	}
	return len(out.LaunchConfigurations) > 0, nil
}

func (h *autoscalingHandlers) deleteLaunchConfiguration(ctx context.Context, id *arn.Identity) (string, error) {
	name := groupName(id)
	_, err := h.api.DeleteLaunchConfiguration(ctx, &autoscaling.DeleteLaunchConfigurationInput{
		LaunchConfigurationName: &name,
	})
	if err != nil {
		return "", err
	}
	return "launch configuration deleted", nil
}

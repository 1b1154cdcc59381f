package aws

import (
	"context"

	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/registry"
)

type elbAPI interface {
	DescribeLoadBalancers(ctx context.Context, in *elbv2.DescribeLoadBalancersInput, opts ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error)
	DeleteLoadBalancer(ctx context.Context, in *elbv2.DeleteLoadBalancerInput, opts ...func(*elbv2.Options)) (*elbv2.DeleteLoadBalancerOutput, error)
	DescribeTargetGroups(ctx context.Context, in *elbv2.DescribeTargetGroupsInput, opts ...func(*elbv2.Options)) (*elbv2.DescribeTargetGroupsOutput, error)
	DeleteTargetGroup(ctx context.Context, in *elbv2.DeleteTargetGroupInput, opts ...func(*elbv2.Options)) (*elbv2.DeleteTargetGroupOutput, error)
	DescribeListeners(ctx context.Context, in *elbv2.DescribeListenersInput, opts ...func(*elbv2.Options)) (*elbv2.DescribeListenersOutput, error)
	DeleteListener(ctx context.Context, in *elbv2.DeleteListenerInput, opts ...func(*elbv2.Options)) (*elbv2.DeleteListenerOutput, error)
}

// elbHandlers addresses everything by full ARN; the ELBv2 APIs take ARNs,
// not short ids.
type elbHandlers struct {
	api elbAPI
}

func (h *elbHandlers) register(r *registry.Registry) {
	r.RegisterFuncs("elasticloadbalancing", "loadbalancer", h.verifyLoadBalancer, h.deleteLoadBalancer)
	r.RegisterFuncs("elasticloadbalancing", "targetgroup", h.verifyTargetGroup, h.deleteTargetGroup)
	r.RegisterFuncs("elasticloadbalancing", "listener", h.verifyListener, h.deleteListener)
}

func (h *elbHandlers) verifyLoadBalancer(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeLoadBalancers(ctx, &elbv2.DescribeLoadBalancersInput{LoadBalancerArns: []string{id.Raw}})
	return err == nil, err
}

func (h *elbHandlers) deleteLoadBalancer(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteLoadBalancer(ctx, &elbv2.DeleteLoadBalancerInput{LoadBalancerArn: &id.Raw})
	if err != nil {
		return "", err
	}
	return "load balancer deleted", nil
}

func (h *elbHandlers) verifyTargetGroup(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeTargetGroups(ctx, &elbv2.DescribeTargetGroupsInput{TargetGroupArns: []string{id.Raw}})
	return err == nil, err
}

func (h *elbHandlers) deleteTargetGroup(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteTargetGroup(ctx, &elbv2.DeleteTargetGroupInput{TargetGroupArn: &id.Raw})
	if err != nil {
		return "", err
	}
	return "target group deleted", nil
}

func (h *elbHandlers) verifyListener(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeListeners(ctx, &elbv2.DescribeListenersInput{ListenerArns: []string{id.Raw}})
	return err == nil, err
}

func (h *elbHandlers) deleteListener(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteListener(ctx, &elbv2.DeleteListenerInput{ListenerArn: &id.Raw})
	if err != nil {
		return "", err
	}
	return "listener deleted", nil
}

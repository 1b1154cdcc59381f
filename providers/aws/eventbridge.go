package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/eventbridge"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/logging"
	"github.com/infrahouse/tagsweep/internal/registry"
)

type eventbridgeAPI interface {
	DescribeRule(ctx context.Context, in *eventbridge.DescribeRuleInput, opts ...func(*eventbridge.Options)) (*eventbridge.DescribeRuleOutput, error)
	ListTargetsByRule(ctx context.Context, in *eventbridge.ListTargetsByRuleInput, opts ...func(*eventbridge.Options)) (*eventbridge.ListTargetsByRuleOutput, error)
	RemoveTargets(ctx context.Context, in *eventbridge.RemoveTargetsInput, opts ...func(*eventbridge.Options)) (*eventbridge.RemoveTargetsOutput, error)
	DeleteRule(ctx context.Context, in *eventbridge.DeleteRuleInput, opts ...func(*eventbridge.Options)) (*eventbridge.DeleteRuleOutput, error)
}

type eventbridgeHandlers struct {
	api eventbridgeAPI
}

func (h *eventbridgeHandlers) register(r *registry.Registry) {
	r.RegisterFuncs("events", "rule", h.verifyRule, h.deleteRule)
}

func (h *eventbridgeHandlers) verifyRule(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeRule(ctx, &eventbridge.DescribeRuleInput{Name: &id.ID})
	return err == nil, err
}

// deleteRule removes all registered targets first; a rule with targets
// cannot be deleted. A failure listing or removing targets is tolerated
// and the rule delete is attempted anyway.
func (h *eventbridgeHandlers) deleteRule(ctx context.Context, id *arn.Identity) (string, error) {
	removed := 0
	var next *string
	for {
		out, err := h.api.ListTargetsByRule(ctx, &eventbridge.ListTargetsByRuleInput{Rule: &id.ID, NextToken: next})
		if err != nil {
			logging.Warn("cannot list rule targets", "rule", id.ID, "error", err)
			break
		}
		var ids []string
		for _, t := range out.Targets {
			ids = append(ids, *t.Id)
		}
		if len(ids) > 0 {
			_, err = h.api.RemoveTargets(ctx, &eventbridge.RemoveTargetsInput{Rule: &id.ID, Ids: ids})
			if err != nil {
				logging.Warn("failed to remove rule targets", "rule", id.ID, "error", err)
			} else {
				removed += len(ids)
			}
		}
		if out.NextToken == nil {
			break
		}
		next = out.NextToken
	}

	if _, err := h.api.DeleteRule(ctx, &eventbridge.DeleteRuleInput{Name: &id.ID}); err != nil {
		return "", err
	}
	return fmt.Sprintf("EventBridge rule deleted (removed %d targets)", removed), nil
}

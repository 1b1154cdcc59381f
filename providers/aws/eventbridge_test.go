package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventbridgeStub struct {
	eventbridgeAPI
	targets []types.Target
	listErr error

	removed     []string
	ruleDeleted bool
}

func (s *eventbridgeStub) ListTargetsByRule(ctx context.Context, in *eventbridge.ListTargetsByRuleInput, opts ...func(*eventbridge.Options)) (*eventbridge.ListTargetsByRuleOutput, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return &eventbridge.ListTargetsByRuleOutput{Targets: s.targets}, nil
}

func (s *eventbridgeStub) RemoveTargets(ctx context.Context, in *eventbridge.RemoveTargetsInput, opts ...func(*eventbridge.Options)) (*eventbridge.RemoveTargetsOutput, error) {
	s.removed = append(s.removed, in.Ids...)
	return &eventbridge.RemoveTargetsOutput{}, nil
}

func (s *eventbridgeStub) DeleteRule(ctx context.Context, in *eventbridge.DeleteRuleInput, opts ...func(*eventbridge.Options)) (*eventbridge.DeleteRuleOutput, error) {
	s.ruleDeleted = true
	return &eventbridge.DeleteRuleOutput{}, nil
}

func TestDeleteRuleRemovesTargetsFirst(t *testing.T) {
	t1, t2 := "target-1", "target-2"
	stub := &eventbridgeStub{targets: []types.Target{{Id: &t1}, {Id: &t2}}}
	h := &eventbridgeHandlers{api: stub}

	detail, err := h.deleteRule(context.Background(), mustIdentity(t, "arn:aws:events:us-west-2:123456789012:rule/nightly"))
	require.NoError(t, err)
	assert.Equal(t, "EventBridge rule deleted (removed 2 targets)", detail)
	assert.Equal(t, []string{"target-1", "target-2"}, stub.removed)
	assert.True(t, stub.ruleDeleted)
}

func TestDeleteRuleToleratesTargetListFailure(t *testing.T) {
	stub := &eventbridgeStub{listErr: errors.New("AccessDenied")}
	h := &eventbridgeHandlers{api: stub}

	detail, err := h.deleteRule(context.Background(), mustIdentity(t, "arn:aws:events:us-west-2:123456789012:rule/nightly"))
	require.NoError(t, err)
	assert.Equal(t, "EventBridge rule deleted (removed 0 targets)", detail)
	assert.True(t, stub.ruleDeleted)
}

package aws

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/kms/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kmsStub struct {
	kmsAPI
	state types.KeyState

	scheduledDays int32
}

func (s *kmsStub) DescribeKey(ctx context.Context, in *kms.DescribeKeyInput, opts ...func(*kms.Options)) (*kms.DescribeKeyOutput, error) {
	return &kms.DescribeKeyOutput{KeyMetadata: &types.KeyMetadata{KeyState: s.state}}, nil
}

func (s *kmsStub) ScheduleKeyDeletion(ctx context.Context, in *kms.ScheduleKeyDeletionInput, opts ...func(*kms.Options)) (*kms.ScheduleKeyDeletionOutput, error) {
	s.scheduledDays = *in.PendingWindowInDays
	return &kms.ScheduleKeyDeletionOutput{}, nil
}

func TestVerifyKeyStates(t *testing.T) {
	id := mustIdentity(t, "arn:aws:kms:us-west-2:123456789012:key/1234-abcd")

	tests := []struct {
		name     string
		state    types.KeyState
		expected bool
	}{
		{"enabled exists", types.KeyStateEnabled, true},
		{"disabled is absent", types.KeyStateDisabled, false},
		{"pending deletion is absent", types.KeyStatePendingDeletion, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &kmsHandlers{api: &kmsStub{state: tt.state}}
			exists, err := h.verifyKey(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, exists)
		})
	}
}

func TestDeleteKeySchedulesSevenDayWindow(t *testing.T) {
	stub := &kmsStub{}
	h := &kmsHandlers{api: stub}

	detail, err := h.deleteKey(context.Background(), mustIdentity(t, "arn:aws:kms:us-west-2:123456789012:key/1234-abcd"))
	require.NoError(t, err)
	assert.Equal(t, "KMS key scheduled for deletion (7 days)", detail)
	assert.Equal(t, int32(7), stub.scheduledDays)
}

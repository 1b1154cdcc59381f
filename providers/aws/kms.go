package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/kms/types"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/registry"
)

type kmsAPI interface {
	DescribeKey(ctx context.Context, in *kms.DescribeKeyInput, opts ...func(*kms.Options)) (*kms.DescribeKeyOutput, error)
	ScheduleKeyDeletion(ctx context.Context, in *kms.ScheduleKeyDeletionInput, opts ...func(*kms.Options)) (*kms.ScheduleKeyDeletionOutput, error)
}

type kmsHandlers struct {
	api kmsAPI
}

func (h *kmsHandlers) register(r *registry.Registry) {
	r.RegisterFuncs("kms", "key", h.verifyKey, h.deleteKey)
}

// verifyKey treats pending-deletion and disabled keys as absent: the key
// record stays readable for the whole deletion window.
func (h *kmsHandlers) verifyKey(ctx context.Context, id *arn.Identity) (bool, error) {
	out, err := h.api.DescribeKey(ctx, &kms.DescribeKeyInput{KeyId: &id.ID})
	if err != nil {
		return false, err
	}
	state := out.KeyMetadata.KeyState
	return state != types.KeyStatePendingDeletion && state != types.KeyStateDisabled, nil
}

// KMS keys cannot be deleted immediately; the shortest allowed window is
// seven days.
func (h *kmsHandlers) deleteKey(ctx context.Context, id *arn.Identity) (string, error) {
	days := int32(7)
	_, err := h.api.ScheduleKeyDeletion(ctx, &kms.ScheduleKeyDeletionInput{
		KeyId:               &id.ID,
		PendingWindowInDays: &days,
	})
	if err != nil {
		return "", err
	}
	return "KMS key scheduled for deletion (7 days)", nil
}

package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infrahouse/tagsweep/internal/arn"
)

var errGone = errors.New("resource gone")

func newTestRegistry() *Registry {
	return New(func(err error) bool { return errors.Is(err, errGone) })
}

func mustParse(t *testing.T, raw string) *arn.Identity {
	t.Helper()
	id, ok := arn.Parse(raw)
	require.True(t, ok)
	return id
}

func noDelete(ctx context.Context, id *arn.Identity) (string, error) {
	return "", errors.New("delete should not be called")
}

func TestVerifyFailOpen(t *testing.T) {
	instance := "arn:aws:ec2:us-west-2:123456789012:instance/i-1"

	tests := []struct {
		name     string
		id       *arn.Identity
		verify   VerifyFunc
		expected bool
	}{
		{
			name:     "nil identity exists",
			id:       nil,
			expected: true,
		},
		{
			name:     "unknown type exists",
			id:       mustParse(t, "arn:aws:ec2:us-west-2:123456789012:widget/w-1"),
			expected: true,
		},
		{
			name: "handler reports alive",
			id:   mustParse(t, instance),
			verify: func(ctx context.Context, id *arn.Identity) (bool, error) {
				return true, nil
			},
			expected: true,
		},
		{
			name: "terminal state is absent",
			id:   mustParse(t, instance),
			verify: func(ctx context.Context, id *arn.Identity) (bool, error) {
				return false, nil
			},
			expected: false,
		},
		{
			name: "not-found error is absent",
			id:   mustParse(t, instance),
			verify: func(ctx context.Context, id *arn.Identity) (bool, error) {
				return false, errGone
			},
			expected: false,
		},
		{
			name: "other error exists",
			id:   mustParse(t, instance),
			verify: func(ctx context.Context, id *arn.Identity) (bool, error) {
				return false, errors.New("throttled")
			},
			expected: true,
		},
		{
			name: "panicking handler exists",
			id:   mustParse(t, instance),
			verify: func(ctx context.Context, id *arn.Identity) (bool, error) {
				panic("nil dereference")
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry()
			if tt.verify != nil {
				r.RegisterFuncs("ec2", "instance", tt.verify, noDelete)
			}
			assert.Equal(t, tt.expected, r.Verify(context.Background(), tt.id))
		})
	}
}

func TestVerifyReceivesFullIdentity(t *testing.T) {
	r := newTestRegistry()
	var got *arn.Identity
	r.RegisterFuncs("ec2", "instance", func(ctx context.Context, id *arn.Identity) (bool, error) {
		got = id
		return true, nil
	}, noDelete)

	id := mustParse(t, "arn:aws:ec2:us-west-2:123456789012:instance/i-1")
	r.Verify(context.Background(), id)
	assert.Equal(t, id, got)
}

func TestDeleteOutcomes(t *testing.T) {
	instance := mustParse(t, "arn:aws:ec2:us-west-2:123456789012:instance/i-1")

	t.Run("nil identity refused", func(t *testing.T) {
		r := newTestRegistry()
		out := r.Delete(context.Background(), nil)
		assert.False(t, out.Succeeded)
		assert.Equal(t, "cannot parse ARN", out.Detail)
	})

	t.Run("unknown service refused", func(t *testing.T) {
		r := newTestRegistry()
		id := mustParse(t, "arn:aws:athena:us-west-2:123456789012:workgroup-primary")
		out := r.Delete(context.Background(), id)
		assert.False(t, out.Succeeded)
		assert.Equal(t, "unknown service: athena", out.Detail)
	})

	t.Run("unknown resource type refused", func(t *testing.T) {
		r := newTestRegistry()
		id := mustParse(t, "arn:aws:ec2:us-west-2:123456789012:widget/w-1")
		out := r.Delete(context.Background(), id)
		assert.False(t, out.Succeeded)
		assert.Equal(t, "unknown resource type: ec2/widget", out.Detail)
	})

	t.Run("handler error is a failed outcome", func(t *testing.T) {
		r := newTestRegistry()
		r.RegisterFuncs("ec2", "instance", nil, func(ctx context.Context, id *arn.Identity) (string, error) {
			return "", errors.New("DependencyViolation")
		})
		out := r.Delete(context.Background(), instance)
		assert.False(t, out.Succeeded)
		assert.Equal(t, "DependencyViolation", out.Detail)
	})

	t.Run("handler panic is a failed outcome", func(t *testing.T) {
		r := newTestRegistry()
		r.RegisterFuncs("ec2", "instance", nil, func(ctx context.Context, id *arn.Identity) (string, error) {
			panic("boom")
		})
		out := r.Delete(context.Background(), instance)
		assert.False(t, out.Succeeded)
		assert.Equal(t, "error: boom", out.Detail)
	})

	t.Run("success carries the action detail", func(t *testing.T) {
		r := newTestRegistry()
		r.RegisterFuncs("ec2", "instance", nil, func(ctx context.Context, id *arn.Identity) (string, error) {
			return "instance termination initiated", nil
		})
		out := r.Delete(context.Background(), instance)
		assert.True(t, out.Succeeded)
		assert.Equal(t, "instance termination initiated", out.Detail)
	})
}

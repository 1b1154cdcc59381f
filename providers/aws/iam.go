package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/iam"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/logging"
	"github.com/infrahouse/tagsweep/internal/registry"
)

type iamAPI interface {
	GetRole(ctx context.Context, in *iam.GetRoleInput, opts ...func(*iam.Options)) (*iam.GetRoleOutput, error)
	DeleteRole(ctx context.Context, in *iam.DeleteRoleInput, opts ...func(*iam.Options)) (*iam.DeleteRoleOutput, error)
	ListAttachedRolePolicies(ctx context.Context, in *iam.ListAttachedRolePoliciesInput, opts ...func(*iam.Options)) (*iam.ListAttachedRolePoliciesOutput, error)
	DetachRolePolicy(ctx context.Context, in *iam.DetachRolePolicyInput, opts ...func(*iam.Options)) (*iam.DetachRolePolicyOutput, error)
	ListRolePolicies(ctx context.Context, in *iam.ListRolePoliciesInput, opts ...func(*iam.Options)) (*iam.ListRolePoliciesOutput, error)
	DeleteRolePolicy(ctx context.Context, in *iam.DeleteRolePolicyInput, opts ...func(*iam.Options)) (*iam.DeleteRolePolicyOutput, error)
	ListInstanceProfilesForRole(ctx context.Context, in *iam.ListInstanceProfilesForRoleInput, opts ...func(*iam.Options)) (*iam.ListInstanceProfilesForRoleOutput, error)
	RemoveRoleFromInstanceProfile(ctx context.Context, in *iam.RemoveRoleFromInstanceProfileInput, opts ...func(*iam.Options)) (*iam.RemoveRoleFromInstanceProfileOutput, error)
	GetPolicy(ctx context.Context, in *iam.GetPolicyInput, opts ...func(*iam.Options)) (*iam.GetPolicyOutput, error)
	DeletePolicy(ctx context.Context, in *iam.DeletePolicyInput, opts ...func(*iam.Options)) (*iam.DeletePolicyOutput, error)
	GetInstanceProfile(ctx context.Context, in *iam.GetInstanceProfileInput, opts ...func(*iam.Options)) (*iam.GetInstanceProfileOutput, error)
	DeleteInstanceProfile(ctx context.Context, in *iam.DeleteInstanceProfileInput, opts ...func(*iam.Options)) (*iam.DeleteInstanceProfileOutput, error)
	GetUser(ctx context.Context, in *iam.GetUserInput, opts ...func(*iam.Options)) (*iam.GetUserOutput, error)
}

type iamHandlers struct {
	api iamAPI
}

func (h *iamHandlers) register(r *registry.Registry) {
	r.RegisterFuncs("iam", "role", h.verifyRole, h.deleteRole)
	r.RegisterFuncs("iam", "policy", h.verifyPolicy, h.deletePolicy)
	r.RegisterFuncs("iam", "instance-profile", h.verifyInstanceProfile, h.deleteInstanceProfile)
	r.RegisterFuncs("iam", "user", h.verifyUser, h.refuseUser)
}

func (h *iamHandlers) verifyRole(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.GetRole(ctx, &iam.GetRoleInput{RoleName: &id.ID})
	return err == nil, err
}

// deleteRole unwinds everything that blocks a role deletion: attached
// managed policies, inline policies, and instance profile memberships.
// Each sub-step is best-effort; a failed detach does not stop the rest,
// and the final DeleteRole is attempted regardless.
func (h *iamHandlers) deleteRole(ctx context.Context, id *arn.Identity) (string, error) {
	role := id.ID

	detached := 0
	attachedPager := iam.NewListAttachedRolePoliciesPaginator(h.api, &iam.ListAttachedRolePoliciesInput{RoleName: &role})
	for attachedPager.HasMorePages() {
		page, err := attachedPager.NextPage(ctx)
		if err != nil {
			logging.Warn("cannot list attached policies", "role", role, "error", err)
			break
		}
		for _, policy := range page.AttachedPolicies {
			_, err := h.api.DetachRolePolicy(ctx, &iam.DetachRolePolicyInput{
				RoleName:  &role,
				PolicyArn: policy.PolicyArn,
			})
			if err != nil {
				logging.Warn("failed to detach policy", "role", role, "policy", *policy.PolicyArn, "error", err)
				continue
			}
			detached++
		}
	}

	inline := 0
	inlinePager := iam.NewListRolePoliciesPaginator(h.api, &iam.ListRolePoliciesInput{RoleName: &role})
	for inlinePager.HasMorePages() {
		page, err := inlinePager.NextPage(ctx)
		if err != nil {
			logging.Warn("cannot list inline policies", "role", role, "error", err)
			break
		}
		for _, name := range page.PolicyNames {
			_, err := h.api.DeleteRolePolicy(ctx, &iam.DeleteRolePolicyInput{
				RoleName:   &role,
				PolicyName: &name,
			})
			if err != nil {
				logging.Warn("failed to delete inline policy", "role", role, "policy", name, "error", err)
				continue
			}
			inline++
		}
	}

	removed := 0
	profilePager := iam.NewListInstanceProfilesForRolePaginator(h.api, &iam.ListInstanceProfilesForRoleInput{RoleName: &role})
	for profilePager.HasMorePages() {
		page, err := profilePager.NextPage(ctx)
		if err != nil {
			logging.Warn("cannot list instance profiles", "role", role, "error", err)
			break
		}
		for _, profile := range page.InstanceProfiles {
			_, err := h.api.RemoveRoleFromInstanceProfile(ctx, &iam.RemoveRoleFromInstanceProfileInput{
				InstanceProfileName: profile.InstanceProfileName,
				RoleName:            &role,
			})
			if err != nil {
				logging.Warn("failed to remove role from instance profile", "role", role, "profile", *profile.InstanceProfileName, "error", err)
				continue
			}
			removed++
		}
	}

	if _, err := h.api.DeleteRole(ctx, &iam.DeleteRoleInput{RoleName: &role}); err != nil {
		return "", err
	}
	return fmt.Sprintf("IAM role deleted (detached %d policies, deleted %d inline policies, removed from %d instance profiles)",
		detached, inline, removed), nil
}

func (h *iamHandlers) verifyPolicy(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.GetPolicy(ctx, &iam.GetPolicyInput{PolicyArn: &id.Raw})
	return err == nil, err
}

func (h *iamHandlers) deletePolicy(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeletePolicy(ctx, &iam.DeletePolicyInput{PolicyArn: &id.Raw})
	if err != nil {
		return "", err
	}
	return "IAM policy deleted", nil
}

func (h *iamHandlers) verifyInstanceProfile(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.GetInstanceProfile(ctx, &iam.GetInstanceProfileInput{InstanceProfileName: &id.ID})
	return err == nil, err
}

// deleteInstanceProfile removes attached roles first. A failed read of the
// current roles is treated as "no roles": the profile delete itself will
// surface the real problem if there is one.
func (h *iamHandlers) deleteInstanceProfile(ctx context.Context, id *arn.Identity) (string, error) {
	removed := 0
	out, err := h.api.GetInstanceProfile(ctx, &iam.GetInstanceProfileInput{InstanceProfileName: &id.ID})
	if err == nil && out.InstanceProfile != nil {
		for _, role := range out.InstanceProfile.Roles {
			_, err := h.api.RemoveRoleFromInstanceProfile(ctx, &iam.RemoveRoleFromInstanceProfileInput{
				InstanceProfileName: &id.ID,
				RoleName:            role.RoleName,
			})
			if err != nil {
				logging.Warn("failed to remove role from instance profile", "profile", id.ID, "role", *role.RoleName, "error", err)
				continue
			}
			removed++
		}
	}

	if _, err := h.api.DeleteInstanceProfile(ctx, &iam.DeleteInstanceProfileInput{InstanceProfileName: &id.ID}); err != nil {
		return "", err
	}
	return fmt.Sprintf("instance profile deleted (removed %d roles)", removed), nil
}

func (h *iamHandlers) verifyUser(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.GetUser(ctx, &iam.GetUserInput{UserName: &id.ID})
	return err == nil, err
}

// Users routinely own access keys, MFA devices and login profiles that a
// tag sweep has no business tearing down.
func (h *iamHandlers) refuseUser(ctx context.Context, id *arn.Identity) (string, error) {
	return "", errors.New("IAM user deletion is not supported")
}

package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi"
	taggingtypes "github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi/types"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/logging"
	"github.com/infrahouse/tagsweep/internal/resource"
)

type directoryIAMAPI interface {
	ListRoles(ctx context.Context, in *iam.ListRolesInput, opts ...func(*iam.Options)) (*iam.ListRolesOutput, error)
	ListRoleTags(ctx context.Context, in *iam.ListRoleTagsInput, opts ...func(*iam.Options)) (*iam.ListRoleTagsOutput, error)
}

type taggingAPI interface {
	GetResources(ctx context.Context, in *resourcegroupstaggingapi.GetResourcesInput, opts ...func(*resourcegroupstaggingapi.Options)) (*resourcegroupstaggingapi.GetResourcesOutput, error)
}

// Directory builds the candidate set of tagged resources from two sources.
// The Resource Groups Tagging API misses IAM roles often enough that roles
// are enumerated directly; emitting them first also lets an interactive
// deletion walk handle roles before the policies attached to them.
type Directory struct {
	iam     directoryIAMAPI
	tagging taggingAPI
}

// RolesByTag lists every IAM role and keeps those whose tags carry the
// exact key=value pair. Roles whose tags cannot be read are skipped, not
// fatal. Roles found this way were just listed by the owning API, so they
// are marked existing at discovery time.
func (d *Directory) RolesByTag(ctx context.Context, key, value string) ([]*resource.Tagged, error) {
	var found []*resource.Tagged

	p := iam.NewListRolesPaginator(d.iam, &iam.ListRolesInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list roles: %w", err)
		}
		for _, role := range page.Roles {
			tagsOut, err := d.iam.ListRoleTags(ctx, &iam.ListRoleTagsInput{RoleName: role.RoleName})
			if err != nil {
				logging.Debug("skipping role, cannot read tags", "role", *role.RoleName, "error", err)
				continue
			}
			tags := make(map[string]string, len(tagsOut.Tags))
			for _, t := range tagsOut.Tags {
				tags[*t.Key] = *t.Value
			}
			if tags[key] != value {
				continue
			}
			raw := *role.Arn
			id, _ := arn.Parse(raw)
			found = append(found, &resource.Tagged{
				Identity:  id,
				Raw:       raw,
				Tags:      tags,
				Existence: resource.Exists,
			})
		}
	}
	return found, nil
}

// ResourcesByTag queries the Resource Groups Tagging API for everything
// carrying the key=value pair. Results come back with existence Unknown;
// classification is the verifier's job.
func (d *Directory) ResourcesByTag(ctx context.Context, key, value string) ([]*resource.Tagged, error) {
	var found []*resource.Tagged

	in := &resourcegroupstaggingapi.GetResourcesInput{
		TagFilters: []taggingtypes.TagFilter{
			{Key: &key, Values: []string{value}},
		},
	}
	p := resourcegroupstaggingapi.NewGetResourcesPaginator(d.tagging, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("tag search failed: %w", err)
		}
		for _, mapping := range page.ResourceTagMappingList {
			raw := *mapping.ResourceARN
			tags := make(map[string]string, len(mapping.Tags))
			for _, t := range mapping.Tags {
				tags[*t.Key] = *t.Value
			}
			id, _ := arn.Parse(raw)
			found = append(found, &resource.Tagged{
				Identity:  id,
				Raw:       raw,
				Tags:      tags,
				Existence: resource.Unknown,
			})
		}
	}
	return found, nil
}

package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi"
	taggingtypes "github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infrahouse/tagsweep/internal/resource"
)

type directoryIAMStub struct {
	roles   []iamtypes.Role
	tags    map[string][]iamtypes.Tag
	tagsErr map[string]error
}

func (s *directoryIAMStub) ListRoles(ctx context.Context, in *iam.ListRolesInput, opts ...func(*iam.Options)) (*iam.ListRolesOutput, error) {
	return &iam.ListRolesOutput{Roles: s.roles}, nil
}

func (s *directoryIAMStub) ListRoleTags(ctx context.Context, in *iam.ListRoleTagsInput, opts ...func(*iam.Options)) (*iam.ListRoleTagsOutput, error) {
	if err := s.tagsErr[*in.RoleName]; err != nil {
		return nil, err
	}
	return &iam.ListRoleTagsOutput{Tags: s.tags[*in.RoleName]}, nil
}

type taggingStub struct {
	mappings []taggingtypes.ResourceTagMapping
}

func (s *taggingStub) GetResources(ctx context.Context, in *resourcegroupstaggingapi.GetResourcesInput, opts ...func(*resourcegroupstaggingapi.Options)) (*resourcegroupstaggingapi.GetResourcesOutput, error) {
	return &resourcegroupstaggingapi.GetResourcesOutput{ResourceTagMappingList: s.mappings}, nil
}

func role(name, arn string) iamtypes.Role {
	return iamtypes.Role{RoleName: &name, Arn: &arn}
}

func tag(k, v string) iamtypes.Tag {
	return iamtypes.Tag{Key: &k, Value: &v}
}

func TestRolesByTag(t *testing.T) {
	appArn := "arn:aws:iam::123456789012:role/app-role"
	otherArn := "arn:aws:iam::123456789012:role/other-role"
	brokenArn := "arn:aws:iam::123456789012:role/broken-role"
	d := &Directory{iam: &directoryIAMStub{
		roles: []iamtypes.Role{role("app-role", appArn), role("other-role", otherArn), role("broken-role", brokenArn)},
		tags: map[string][]iamtypes.Tag{
			"app-role":   {tag("env", "staging"), tag("team", "infra")},
			"other-role": {tag("env", "prod")},
		},
		tagsErr: map[string]error{"broken-role": errors.New("AccessDenied")},
	}}

	found, err := d.RolesByTag(context.Background(), "env", "staging")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, appArn, found[0].Raw)
	assert.Equal(t, map[string]string{"env": "staging", "team": "infra"}, found[0].Tags)
	assert.Equal(t, resource.Exists, found[0].Existence)
	require.NotNil(t, found[0].Identity)
	assert.Equal(t, "role", found[0].Identity.Type)
}

func TestResourcesByTag(t *testing.T) {
	bucketArn := "arn:aws:s3:::staging-artifacts"
	envKey, envVal := "env", "staging"
	d := &Directory{tagging: &taggingStub{
		mappings: []taggingtypes.ResourceTagMapping{
			{ResourceARN: &bucketArn, Tags: []taggingtypes.Tag{{Key: &envKey, Value: &envVal}}},
		},
	}}

	found, err := d.ResourcesByTag(context.Background(), "env", "staging")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, bucketArn, found[0].Raw)
	assert.Equal(t, map[string]string{"env": "staging"}, found[0].Tags)
	assert.Equal(t, resource.Unknown, found[0].Existence)
	require.NotNil(t, found[0].Identity)
	assert.Equal(t, "s3", found[0].Identity.Service)
}

package aws

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logsStub struct {
	logsAPI
	groups []string
}

func (s *logsStub) DescribeLogGroups(ctx context.Context, in *cloudwatchlogs.DescribeLogGroupsInput, opts ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error) {
	out := &cloudwatchlogs.DescribeLogGroupsOutput{}
	for i := range s.groups {
		out.LogGroups = append(out.LogGroups, types.LogGroup{LogGroupName: &s.groups[i]})
	}
	return out, nil
}

func TestVerifyLogGroupExactMatch(t *testing.T) {
	id := mustIdentity(t, "arn:aws:logs:us-west-2:123456789012:log-group:/aws/lambda/foo")

	tests := []struct {
		name     string
		groups   []string
		expected bool
	}{
		{"exact match", []string{"/aws/lambda/foo"}, true},
		{"prefix-only match is absent", []string{"/aws/lambda/foo-staging"}, false},
		{"match among prefix siblings", []string{"/aws/lambda/foo-staging", "/aws/lambda/foo"}, true},
		{"no groups", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &logsHandlers{api: &logsStub{groups: tt.groups}}
			exists, err := h.verifyLogGroup(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, exists)
		})
	}
}

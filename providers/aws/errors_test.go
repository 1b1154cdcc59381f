package aws

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infrahouse/tagsweep/internal/arn"
)

func mustIdentity(t *testing.T, raw string) *arn.Identity {
	t.Helper()
	id, ok := arn.Parse(raw)
	require.True(t, ok)
	return id
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"ec2 vpc code", &smithy.GenericAPIError{Code: "InvalidVpcID.NotFound"}, true},
		{"rds fault code", &smithy.GenericAPIError{Code: "DBInstanceNotFound"}, true},
		{"s3 head bucket", &smithy.GenericAPIError{Code: "NotFound"}, true},
		{"iam entity", &smithy.GenericAPIError{Code: "NoSuchEntity"}, true},
		{"wrapped api error", fmt.Errorf("describe failed: %w", &smithy.GenericAPIError{Code: "NoSuchBucket"}), true},
		{"access denied fails open", &smithy.GenericAPIError{Code: "AccessDenied"}, false},
		{"throttling fails open", &smithy.GenericAPIError{Code: "Throttling"}, false},
		{"plain error fails open", errors.New("dial tcp: i/o timeout"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFound(tt.err))
		})
	}
}

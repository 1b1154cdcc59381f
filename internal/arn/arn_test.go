package arn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Identity
	}{
		{
			name: "slash separated",
			raw:  "arn:aws:ec2:us-west-2:123456789012:instance/i-0123456789abcdef0",
			expected: Identity{
				Partition: "aws",
				Service:   "ec2",
				Region:    "us-west-2",
				Account:   "123456789012",
				Type:      "instance",
				ID:        "i-0123456789abcdef0",
			},
		},
		{
			name: "colon before slash wins",
			raw:  "arn:aws:logs:us-west-2:123456789012:log-group:/aws/lambda/foo",
			expected: Identity{
				Partition: "aws",
				Service:   "logs",
				Region:    "us-west-2",
				Account:   "123456789012",
				Type:      "log-group",
				ID:        "/aws/lambda/foo",
			},
		},
		{
			name: "no delimiter means no type",
			raw:  "arn:aws:s3:::my-bucket-name",
			expected: Identity{
				Partition: "aws",
				Service:   "s3",
				Type:      "",
				ID:        "my-bucket-name",
			},
		},
		{
			name: "global service with account",
			raw:  "arn:aws:iam::123456789012:role/app/my-role",
			expected: Identity{
				Partition: "aws",
				Service:   "iam",
				Account:   "123456789012",
				Type:      "role",
				ID:        "app/my-role",
			},
		},
		{
			name: "colon separated id",
			raw:  "arn:aws:secretsmanager:us-east-1:123456789012:secret:my-secret-AbCdEf",
			expected: Identity{
				Partition: "aws",
				Service:   "secretsmanager",
				Region:    "us-east-1",
				Account:   "123456789012",
				Type:      "secret",
				ID:        "my-secret-AbCdEf",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := Parse(tt.raw)
			require.True(t, ok)
			tt.expected.Raw = tt.raw
			assert.Equal(t, tt.expected, *id)
		})
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty string", ""},
		{"not an arn", "i-0123456789abcdef0"},
		{"wrong prefix", "urn:aws:ec2:us-west-2:123456789012:instance/i-1"},
		{"too few fields", "arn:aws:ec2:us-west-2"},
		{"empty service", "arn:aws::us-west-2:123456789012:instance/i-1"},
		{"empty resource", "arn:aws:ec2:us-west-2:123456789012:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := Parse(tt.raw)
			assert.False(t, ok)
			assert.Nil(t, id)
		})
	}
}

func TestParseDeterministic(t *testing.T) {
	raw := "arn:aws:logs:us-west-2:123456789012:log-group:/aws/lambda/foo"
	first, ok := Parse(raw)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, ok := Parse(raw)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}

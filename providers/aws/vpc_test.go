package aws

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vpcStub struct {
	vpcAPI
	natGateways []types.NatGateway
}

func (s *vpcStub) DescribeNatGateways(ctx context.Context, in *ec2.DescribeNatGatewaysInput, opts ...func(*ec2.Options)) (*ec2.DescribeNatGatewaysOutput, error) {
	return &ec2.DescribeNatGatewaysOutput{NatGateways: s.natGateways}, nil
}

func TestVerifyNatGatewayStates(t *testing.T) {
	id := mustIdentity(t, "arn:aws:ec2:us-west-2:123456789012:natgateway/nat-0abc")

	tests := []struct {
		name     string
		gateways []types.NatGateway
		expected bool
	}{
		{"available exists", []types.NatGateway{{State: types.NatGatewayStateAvailable}}, true},
		{"deleting is absent", []types.NatGateway{{State: types.NatGatewayStateDeleting}}, false},
		{"deleted is absent", []types.NatGateway{{State: types.NatGatewayStateDeleted}}, false},
		{"not listed is absent", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &vpcHandlers{api: &vpcStub{natGateways: tt.gateways}}
			exists, err := h.verifyNatGateway(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, exists)
		})
	}
}

// The refusal handlers must not touch the API at all: the stub embeds a nil
// interface and would panic on any call.
func TestInternetGatewayRefused(t *testing.T) {
	h := &vpcHandlers{api: &vpcStub{}}
	detail, err := h.refuseInternetGateway(context.Background(), mustIdentity(t, "arn:aws:ec2:us-west-2:123456789012:internet-gateway/igw-0abc"))
	assert.Empty(t, detail)
	assert.EqualError(t, err, "internet gateway must be detached from its VPC first")
}

func TestSecurityGroupRuleRefused(t *testing.T) {
	h := &vpcHandlers{api: &vpcStub{}}
	detail, err := h.refuseSecurityGroupRule(context.Background(), mustIdentity(t, "arn:aws:ec2:us-west-2:123456789012:security-group-rule/sgr-0abc"))
	assert.Empty(t, detail)
	assert.EqualError(t, err, "security group rules must be deleted via their security group")
}

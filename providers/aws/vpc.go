package aws

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/registry"
)

type vpcAPI interface {
	DescribeVpcs(ctx context.Context, in *ec2.DescribeVpcsInput, opts ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error)
	DeleteVpc(ctx context.Context, in *ec2.DeleteVpcInput, opts ...func(*ec2.Options)) (*ec2.DeleteVpcOutput, error)
	DescribeSubnets(ctx context.Context, in *ec2.DescribeSubnetsInput, opts ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error)
	DeleteSubnet(ctx context.Context, in *ec2.DeleteSubnetInput, opts ...func(*ec2.Options)) (*ec2.DeleteSubnetOutput, error)
	DescribeSecurityGroups(ctx context.Context, in *ec2.DescribeSecurityGroupsInput, opts ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error)
	DeleteSecurityGroup(ctx context.Context, in *ec2.DeleteSecurityGroupInput, opts ...func(*ec2.Options)) (*ec2.DeleteSecurityGroupOutput, error)
	DescribeSecurityGroupRules(ctx context.Context, in *ec2.DescribeSecurityGroupRulesInput, opts ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupRulesOutput, error)
	DescribeInternetGateways(ctx context.Context, in *ec2.DescribeInternetGatewaysInput, opts ...func(*ec2.Options)) (*ec2.DescribeInternetGatewaysOutput, error)
	DescribeRouteTables(ctx context.Context, in *ec2.DescribeRouteTablesInput, opts ...func(*ec2.Options)) (*ec2.DescribeRouteTablesOutput, error)
	DeleteRouteTable(ctx context.Context, in *ec2.DeleteRouteTableInput, opts ...func(*ec2.Options)) (*ec2.DeleteRouteTableOutput, error)
	DescribeNetworkAcls(ctx context.Context, in *ec2.DescribeNetworkAclsInput, opts ...func(*ec2.Options)) (*ec2.DescribeNetworkAclsOutput, error)
	DeleteNetworkAcl(ctx context.Context, in *ec2.DeleteNetworkAclInput, opts ...func(*ec2.Options)) (*ec2.DeleteNetworkAclOutput, error)
	DescribeNatGateways(ctx context.Context, in *ec2.DescribeNatGatewaysInput, opts ...func(*ec2.Options)) (*ec2.DescribeNatGatewaysOutput, error)
	DeleteNatGateway(ctx context.Context, in *ec2.DeleteNatGatewayInput, opts ...func(*ec2.Options)) (*ec2.DeleteNatGatewayOutput, error)
	DescribeVpcEndpoints(ctx context.Context, in *ec2.DescribeVpcEndpointsInput, opts ...func(*ec2.Options)) (*ec2.DescribeVpcEndpointsOutput, error)
	DeleteVpcEndpoints(ctx context.Context, in *ec2.DeleteVpcEndpointsInput, opts ...func(*ec2.Options)) (*ec2.DeleteVpcEndpointsOutput, error)
}

type vpcHandlers struct {
	api vpcAPI
}

func (h *vpcHandlers) register(r *registry.Registry) {
	r.RegisterFuncs("ec2", "vpc", h.verifyVpc, h.deleteVpc)
	r.RegisterFuncs("ec2", "subnet", h.verifySubnet, h.deleteSubnet)
	r.RegisterFuncs("ec2", "security-group", h.verifySecurityGroup, h.deleteSecurityGroup)
	r.RegisterFuncs("ec2", "security-group-rule", h.verifySecurityGroupRule, h.refuseSecurityGroupRule)
	r.RegisterFuncs("ec2", "internet-gateway", h.verifyInternetGateway, h.refuseInternetGateway)
	r.RegisterFuncs("ec2", "route-table", h.verifyRouteTable, h.deleteRouteTable)
	r.RegisterFuncs("ec2", "network-acl", h.verifyNetworkAcl, h.deleteNetworkAcl)
	r.RegisterFuncs("ec2", "natgateway", h.verifyNatGateway, h.deleteNatGateway)
	r.RegisterFuncs("ec2", "vpc-endpoint", h.verifyVpcEndpoint, h.deleteVpcEndpoint)
}

func (h *vpcHandlers) verifyVpc(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{VpcIds: []string{id.ID}})
	return err == nil, err
}

func (h *vpcHandlers) deleteVpc(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteVpc(ctx, &ec2.DeleteVpcInput{VpcId: &id.ID})
	if err != nil {
		return "", err
	}
	return "VPC deleted", nil
}

func (h *vpcHandlers) verifySubnet(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{SubnetIds: []string{id.ID}})
	return err == nil, err
}

func (h *vpcHandlers) deleteSubnet(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteSubnet(ctx, &ec2.DeleteSubnetInput{SubnetId: &id.ID})
	if err != nil {
		return "", err
	}
	return "subnet deleted", nil
}

func (h *vpcHandlers) verifySecurityGroup(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{GroupIds: []string{id.ID}})
	return err == nil, err
}

func (h *vpcHandlers) deleteSecurityGroup(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteSecurityGroup(ctx, &ec2.DeleteSecurityGroupInput{GroupId: &id.ID})
	if err != nil {
		return "", err
	}
	return "security group deleted", nil
}

func (h *vpcHandlers) verifySecurityGroupRule(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeSecurityGroupRules(ctx, &ec2.DescribeSecurityGroupRulesInput{SecurityGroupRuleIds: []string{id.ID}})
	return err == nil, err
}

// A rule has no standalone deletion primitive; revoking it requires the
// owning group and the full rule specification.
func (h *vpcHandlers) refuseSecurityGroupRule(ctx context.Context, id *arn.Identity) (string, error) {
	return "", errors.New("security group rules must be deleted via their security group")
}

func (h *vpcHandlers) verifyInternetGateway(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeInternetGateways(ctx, &ec2.DescribeInternetGatewaysInput{InternetGatewayIds: []string{id.ID}})
	return err == nil, err
}

// The attached VPC is not derivable from the ARN, so the required detach
// cannot be done safely here.
func (h *vpcHandlers) refuseInternetGateway(ctx context.Context, id *arn.Identity) (string, error) {
	return "", errors.New("internet gateway must be detached from its VPC first")
}

func (h *vpcHandlers) verifyRouteTable(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeRouteTables(ctx, &ec2.DescribeRouteTablesInput{RouteTableIds: []string{id.ID}})
	return err == nil, err
}

func (h *vpcHandlers) deleteRouteTable(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteRouteTable(ctx, &ec2.DeleteRouteTableInput{RouteTableId: &id.ID})
	if err != nil {
		return "", err
	}
	return "route table deleted", nil
}

func (h *vpcHandlers) verifyNetworkAcl(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeNetworkAcls(ctx, &ec2.DescribeNetworkAclsInput{NetworkAclIds: []string{id.ID}})
	return err == nil, err
}

func (h *vpcHandlers) deleteNetworkAcl(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteNetworkAcl(ctx, &ec2.DeleteNetworkAclInput{NetworkAclId: &id.ID})
	if err != nil {
		return "", err
	}
	return "network ACL deleted", nil
}

// verifyNatGateway treats deleted and deleting gateways as absent; the API
// keeps returning them for hours after teardown.
func (h *vpcHandlers) verifyNatGateway(ctx context.Context, id *arn.Identity) (bool, error) {
	out, err := h.api.DescribeNatGateways(ctx, &ec2.DescribeNatGatewaysInput{NatGatewayIds: []string{id.ID}})
	if err != nil {
		return false, err
	}
	if len(out.NatGateways) == 0 {
		return false, nil
	}
	state := out.NatGateways[0].State
	return state != types.NatGatewayStateDeleted && state != types.NatGatewayStateDeleting, nil
}

func (h *vpcHandlers) deleteNatGateway(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteNatGateway(ctx, &ec2.DeleteNatGatewayInput{NatGatewayId: &id.ID})
	if err != nil {
		return "", err
	}
	return "NAT gateway deletion initiated", nil
}

func (h *vpcHandlers) verifyVpcEndpoint(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeVpcEndpoints(ctx, &ec2.DescribeVpcEndpointsInput{VpcEndpointIds: []string{id.ID}})
	return err == nil, err
}

func (h *vpcHandlers) deleteVpcEndpoint(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteVpcEndpoints(ctx, &ec2.DeleteVpcEndpointsInput{VpcEndpointIds: []string{id.ID}})
	if err != nil {
		return "", err
	}
	return "VPC endpoint deleted", nil
}

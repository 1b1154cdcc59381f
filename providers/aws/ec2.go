package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/registry"
)

type ec2API interface {
	DescribeInstances(ctx context.Context, in *ec2.DescribeInstancesInput, opts ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	TerminateInstances(ctx context.Context, in *ec2.TerminateInstancesInput, opts ...func(*ec2.Options)) (*ec2.TerminateInstancesOutput, error)
	DescribeKeyPairs(ctx context.Context, in *ec2.DescribeKeyPairsInput, opts ...func(*ec2.Options)) (*ec2.DescribeKeyPairsOutput, error)
	DeleteKeyPair(ctx context.Context, in *ec2.DeleteKeyPairInput, opts ...func(*ec2.Options)) (*ec2.DeleteKeyPairOutput, error)
	DescribeVolumes(ctx context.Context, in *ec2.DescribeVolumesInput, opts ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
	DeleteVolume(ctx context.Context, in *ec2.DeleteVolumeInput, opts ...func(*ec2.Options)) (*ec2.DeleteVolumeOutput, error)
	DescribeSnapshots(ctx context.Context, in *ec2.DescribeSnapshotsInput, opts ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error)
	DeleteSnapshot(ctx context.Context, in *ec2.DeleteSnapshotInput, opts ...func(*ec2.Options)) (*ec2.DeleteSnapshotOutput, error)
	DescribeImages(ctx context.Context, in *ec2.DescribeImagesInput, opts ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error)
	DeregisterImage(ctx context.Context, in *ec2.DeregisterImageInput, opts ...func(*ec2.Options)) (*ec2.DeregisterImageOutput, error)
	DescribeAddresses(ctx context.Context, in *ec2.DescribeAddressesInput, opts ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error)
	ReleaseAddress(ctx context.Context, in *ec2.ReleaseAddressInput, opts ...func(*ec2.Options)) (*ec2.ReleaseAddressOutput, error)
	DescribeNetworkInterfaces(ctx context.Context, in *ec2.DescribeNetworkInterfacesInput, opts ...func(*ec2.Options)) (*ec2.DescribeNetworkInterfacesOutput, error)
	DeleteNetworkInterface(ctx context.Context, in *ec2.DeleteNetworkInterfaceInput, opts ...func(*ec2.Options)) (*ec2.DeleteNetworkInterfaceOutput, error)
	DescribeFlowLogs(ctx context.Context, in *ec2.DescribeFlowLogsInput, opts ...func(*ec2.Options)) (*ec2.DescribeFlowLogsOutput, error)
	DeleteFlowLogs(ctx context.Context, in *ec2.DeleteFlowLogsInput, opts ...func(*ec2.Options)) (*ec2.DeleteFlowLogsOutput, error)
}

// ec2Handlers covers the compute-side EC2 resource types; the network-side
// ones live in vpcHandlers.
type ec2Handlers struct {
	api ec2API
}

func (h *ec2Handlers) register(r *registry.Registry) {
	r.RegisterFuncs("ec2", "instance", h.verifyInstance, h.deleteInstance)
	r.RegisterFuncs("ec2", "key-pair", h.verifyKeyPair, h.deleteKeyPair)
	r.RegisterFuncs("ec2", "volume", h.verifyVolume, h.deleteVolume)
	r.RegisterFuncs("ec2", "snapshot", h.verifySnapshot, h.deleteSnapshot)
	r.RegisterFuncs("ec2", "image", h.verifyImage, h.deleteImage)
	// Two ARN conventions exist for the same allocation.
	r.RegisterFuncs("ec2", "elastic-ip", h.verifyAddress, h.deleteAddress)
	r.RegisterFuncs("ec2", "eip-allocation", h.verifyAddress, h.deleteAddress)
	r.RegisterFuncs("ec2", "network-interface", h.verifyNetworkInterface, h.deleteNetworkInterface)
	r.RegisterFuncs("ec2", "vpc-flow-log", h.verifyFlowLog, h.deleteFlowLog)
}

// verifyInstance refines existence beyond the describe call succeeding: a
// terminated or shutting-down instance stays in the API for a while but is
// gone for every practical purpose.
func (h *ec2Handlers) verifyInstance(ctx context.Context, id *arn.Identity) (bool, error) {
	out, err := h.api.DescribeInstances(ctx, &ec2.DescribeInstancesInput{InstanceIds: []string{id.ID}})
	if err != nil {
		return false, err
	}
	if len(out.Reservations) == 0 || len(out.Reservations[0].Instances) == 0 {
		return false, nil
	}
	state := out.Reservations[0].Instances[0].State.Name
	return state != types.InstanceStateNameTerminated && state != types.InstanceStateNameShuttingDown, nil
}

func (h *ec2Handlers) deleteInstance(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.TerminateInstances(ctx, &ec2.TerminateInstancesInput{InstanceIds: []string{id.ID}})
	if err != nil {
		return "", err
	}
	return "instance termination initiated", nil
}

func (h *ec2Handlers) verifyKeyPair(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeKeyPairs(ctx, &ec2.DescribeKeyPairsInput{KeyPairIds: []string{id.ID}})
	return err == nil, err
}

func (h *ec2Handlers) deleteKeyPair(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteKeyPair(ctx, &ec2.DeleteKeyPairInput{KeyPairId: &id.ID})
	if err != nil {
		return "", err
	}
	return "key pair deleted", nil
}

func (h *ec2Handlers) verifyVolume(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{VolumeIds: []string{id.ID}})
	return err == nil, err
}

func (h *ec2Handlers) deleteVolume(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteVolume(ctx, &ec2.DeleteVolumeInput{VolumeId: &id.ID})
	if err != nil {
		return "", err
	}
	return "volume deleted", nil
}

func (h *ec2Handlers) verifySnapshot(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeSnapshots(ctx, &ec2.DescribeSnapshotsInput{SnapshotIds: []string{id.ID}})
	return err == nil, err
}

func (h *ec2Handlers) deleteSnapshot(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteSnapshot(ctx, &ec2.DeleteSnapshotInput{SnapshotId: &id.ID})
	if err != nil {
		return "", err
	}
	return "snapshot deleted", nil
}

func (h *ec2Handlers) verifyImage(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeImages(ctx, &ec2.DescribeImagesInput{ImageIds: []string{id.ID}})
	return err == nil, err
}

func (h *ec2Handlers) deleteImage(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeregisterImage(ctx, &ec2.DeregisterImageInput{ImageId: &id.ID})
	if err != nil {
		return "", err
	}
	return "AMI deregistered", nil
}

func (h *ec2Handlers) verifyAddress(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{AllocationIds: []string{id.ID}})
	return err == nil, err
}

func (h *ec2Handlers) deleteAddress(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.ReleaseAddress(ctx, &ec2.ReleaseAddressInput{AllocationId: &id.ID})
	if err != nil {
		return "", err
	}
	return "Elastic IP released", nil
}

func (h *ec2Handlers) verifyNetworkInterface(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.DescribeNetworkInterfaces(ctx, &ec2.DescribeNetworkInterfacesInput{NetworkInterfaceIds: []string{id.ID}})
	return err == nil, err
}

func (h *ec2Handlers) deleteNetworkInterface(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteNetworkInterface(ctx, &ec2.DeleteNetworkInterfaceInput{NetworkInterfaceId: &id.ID})
	if err != nil {
		return "", err
	}
	return "network interface deleted", nil
}

// verifyFlowLog uses a list call: describing an unknown flow log id returns
// an empty list, not an error.
func (h *ec2Handlers) verifyFlowLog(ctx context.Context, id *arn.Identity) (bool, error) {
	out, err := h.api.DescribeFlowLogs(ctx, &ec2.DescribeFlowLogsInput{FlowLogIds: []string{id.ID}})
	if err != nil {
		return false, err
	}
	return len(out.FlowLogs) > 0, nil
}

func (h *ec2Handlers) deleteFlowLog(ctx context.Context, id *arn.Identity) (string, error) {
	_, err := h.api.DeleteFlowLogs(ctx, &ec2.DeleteFlowLogsInput{FlowLogIds: []string{id.ID}})
	if err != nil {
		return "", err
	}
	return "VPC flow log deleted", nil
}

package aws

import (
	"errors"

	"github.com/aws/smithy-go"
)

// notFoundCodes is the closed set of provider error codes that mean a
// resource is confirmed gone. Anything outside this set fails open: the
// resource is assumed to still exist.
var notFoundCodes = map[string]struct{}{
	"ResourceNotFoundException":           {},
	"NotFoundException":                   {},
	"NotFound":                            {},
	"NoSuchEntity":                        {},
	"InvalidParameterValue":               {},
	"DBInstanceNotFound":                  {},
	"DBClusterNotFoundFault":              {},
	"DBSubnetGroupNotFoundFault":          {},
	"DBParameterGroupNotFound":            {},
	"LoadBalancerNotFound":                {},
	"TargetGroupNotFound":                 {},
	"ListenerNotFound":                    {},
	"InvalidGroup.NotFound":               {},
	"InvalidSecurityGroupRuleId.NotFound": {},
	"InvalidVpcID.NotFound":               {},
	"InvalidSubnetID.NotFound":            {},
	"InvalidInternetGatewayID.NotFound":   {},
	"InvalidRouteTableID.NotFound":        {},
	"InvalidNetworkAclID.NotFound":        {},
	"InvalidKeyPair.NotFound":             {},
	"InvalidVolume.NotFound":              {},
	"InvalidSnapshot.NotFound":            {},
	"InvalidAMIID.NotFound":               {},
	"InvalidAllocationID.NotFound":        {},
	"NatGatewayNotFound":                  {},
	"InvalidNetworkInterfaceID.NotFound":  {},
	"InvalidVpcEndpointId.NotFound":       {},
	"NoSuchBucket":                        {},
	"NoSuchHostedZone":                    {},
	"CacheClusterNotFound":                {},
	"CacheSubnetGroupNotFoundFault":       {},
	"ResourceNotFoundFault":               {},
	"QueueDoesNotExist":                   {},
}

// IsNotFound reports whether err is a provider error from the closed
// not-found set.
func IsNotFound(err error) bool {
	var ae smithy.APIError
	if !errors.As(err, &ae) {
		return false
	}
	_, ok := notFoundCodes[ae.ErrorCode()]
	return ok
}

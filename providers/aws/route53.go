package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/route53/types"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/registry"
)

type route53API interface {
	GetHostedZone(ctx context.Context, in *route53.GetHostedZoneInput, opts ...func(*route53.Options)) (*route53.GetHostedZoneOutput, error)
	ListResourceRecordSets(ctx context.Context, in *route53.ListResourceRecordSetsInput, opts ...func(*route53.Options)) (*route53.ListResourceRecordSetsOutput, error)
	ChangeResourceRecordSets(ctx context.Context, in *route53.ChangeResourceRecordSetsInput, opts ...func(*route53.Options)) (*route53.ChangeResourceRecordSetsOutput, error)
	DeleteHostedZone(ctx context.Context, in *route53.DeleteHostedZoneInput, opts ...func(*route53.Options)) (*route53.DeleteHostedZoneOutput, error)
}

type route53Handlers struct {
	api route53API
}

func (h *route53Handlers) register(r *registry.Registry) {
	r.RegisterFuncs("route53", "hostedzone", h.verifyZone, h.deleteZone)
}

func (h *route53Handlers) verifyZone(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.GetHostedZone(ctx, &route53.GetHostedZoneInput{Id: &id.ID})
	return err == nil, err
}

// deleteZone purges every record set except NS and SOA, which the provider
// manages and refuses to remove, then deletes the zone itself. Record set
// listing is not token-paginated; it resumes from the last returned name,
// type and identifier.
func (h *route53Handlers) deleteZone(ctx context.Context, id *arn.Identity) (string, error) {
	deleted := 0
	in := &route53.ListResourceRecordSetsInput{HostedZoneId: &id.ID}
	for {
		out, err := h.api.ListResourceRecordSets(ctx, in)
		if err != nil {
			return "", err
		}

		var changes []types.Change
		for _, rrs := range out.ResourceRecordSets {
			if rrs.Type == types.RRTypeNs || rrs.Type == types.RRTypeSoa {
				continue
			}
			changes = append(changes, types.Change{
				Action:            types.ChangeActionDelete,
				ResourceRecordSet: &rrs,
			})
		}
		if len(changes) > 0 {
			_, err = h.api.ChangeResourceRecordSets(ctx, &route53.ChangeResourceRecordSetsInput{
				HostedZoneId: &id.ID,
				ChangeBatch:  &types.ChangeBatch{Changes: changes},
			})
			if err != nil {
				return "", err
			}
			deleted += len(changes)
		}

		if !out.IsTruncated {
			break
		}
		in.StartRecordName = out.NextRecordName
		in.StartRecordType = out.NextRecordType
		in.StartRecordIdentifier = out.NextRecordIdentifier
	}

	if _, err := h.api.DeleteHostedZone(ctx, &route53.DeleteHostedZoneInput{Id: &id.ID}); err != nil {
		return "", err
	}
	return fmt.Sprintf("hosted zone deleted (removed %d records)", deleted), nil
}

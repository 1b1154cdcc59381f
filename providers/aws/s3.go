package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/registry"
)

type s3API interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	ListObjectVersions(ctx context.Context, in *s3.ListObjectVersionsInput, opts ...func(*s3.Options)) (*s3.ListObjectVersionsOutput, error)
	DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, opts ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
	DeleteBucket(ctx context.Context, in *s3.DeleteBucketInput, opts ...func(*s3.Options)) (*s3.DeleteBucketOutput, error)
}

// s3Handlers owns the one composite deletion that is interactive: purging a
// non-empty bucket is a destructive bulk operation and requires its own
// confirmation before any object is touched.
type s3Handlers struct {
	api     s3API
	confirm func(prompt string) bool
}

func (h *s3Handlers) register(r *registry.Registry) {
	// Bucket ARNs carry no resource type; the resource part is the name.
	r.RegisterFuncs("s3", "", h.verifyBucket, h.deleteBucket)
}

func (h *s3Handlers) verifyBucket(ctx context.Context, id *arn.Identity) (bool, error) {
	_, err := h.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: &id.ID})
	return err == nil, err
}

func (h *s3Handlers) deleteBucket(ctx context.Context, id *arn.Identity) (string, error) {
	bucket := id.ID

	// Count object versions and delete markers before touching anything.
	count := 0
	p := s3.NewListObjectVersionsPaginator(h.api, &s3.ListObjectVersionsInput{Bucket: &bucket})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return "", err
		}
		count += len(page.Versions) + len(page.DeleteMarkers)
	}

	if count > 0 {
		if h.confirm == nil || !h.confirm(fmt.Sprintf("Bucket contains %d objects/versions. Empty and delete?", count)) {
			return "", errors.New("bucket deletion cancelled by user")
		}

		p = s3.NewListObjectVersionsPaginator(h.api, &s3.ListObjectVersionsInput{Bucket: &bucket})
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				return "", err
			}
			var objects []s3types.ObjectIdentifier
			for _, v := range page.Versions {
				objects = append(objects, s3types.ObjectIdentifier{Key: v.Key, VersionId: v.VersionId})
			}
			for _, m := range page.DeleteMarkers {
				objects = append(objects, s3types.ObjectIdentifier{Key: m.Key, VersionId: m.VersionId})
			}
			if len(objects) == 0 {
				continue
			}
			_, err = h.api.DeleteObjects(ctx, &s3.DeleteObjectsInput{
				Bucket: &bucket,
				Delete: &s3types.Delete{Objects: objects},
			})
			if err != nil {
				return "", err
			}
		}
	}

	_, err := h.api.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: &bucket})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("bucket deleted (removed %d objects/versions)", count), nil
}

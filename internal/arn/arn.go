// Package arn decomposes Amazon Resource Names into their components.
//
// The resource part of an ARN has no single delimiter convention: some
// services separate type from id with a colon (log-group:/aws/lambda/foo),
// some with a slash (instance/i-12345), and some carry no type at all
// (S3 bucket names). The split happens at whichever delimiter appears
// first in the resource part.
package arn

import "strings"

// Identity is the decomposed form of an ARN. It is derived once from the
// raw string and never mutated. Two identities are equal iff their Raw
// strings are equal.
type Identity struct {
	Partition string
	Service   string
	Region    string // empty for global services
	Account   string // empty for some global services
	Type      string // empty when the resource part carries no type
	ID        string
	Raw       string
}

// Parse decomposes raw into an Identity. It returns false when the string
// does not match the expected arn:partition:service:region:account:resource
// shape. Parse never fails hard; callers that cannot parse an identity are
// expected to fall back to treating the resource as existing.
func Parse(raw string) (*Identity, bool) {
	parts := strings.SplitN(raw, ":", 6)
	if len(parts) != 6 || parts[0] != "arn" {
		return nil, false
	}
	// Partition, service and resource part are required; region and
	// account may be empty (IAM, S3, Route53).
	if parts[1] == "" || parts[2] == "" || parts[5] == "" {
		return nil, false
	}

	id := &Identity{
		Partition: parts[1],
		Service:   parts[2],
		Region:    parts[3],
		Account:   parts[4],
		Raw:       raw,
	}

	res := parts[5]
	colon := strings.Index(res, ":")
	slash := strings.Index(res, "/")
	switch {
	case colon != -1 && (slash == -1 || colon < slash):
		id.Type = res[:colon]
		id.ID = res[colon+1:]
	case slash != -1:
		id.Type = res[:slash]
		id.ID = res[slash+1:]
	default:
		id.ID = res
	}
	return id, true
}

// Package sweep drives a full run: discover tagged resources, classify
// their existence, report them and, on request, walk them interactively
// for deletion.
package sweep

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/resource"
)

// Directory is the two-source discovery surface: direct IAM role
// enumeration followed by the tag index.
type Directory interface {
	RolesByTag(ctx context.Context, key, value string) ([]*resource.Tagged, error)
	ResourcesByTag(ctx context.Context, key, value string) ([]*resource.Tagged, error)
}

// Verifier classifies one identity as existing or absent. It never
// returns an error; the fail-open policy lives behind this interface.
type Verifier interface {
	Verify(ctx context.Context, id *arn.Identity) bool
}

// Deleter tears one identity down and reports the outcome.
type Deleter interface {
	Delete(ctx context.Context, id *arn.Identity) resource.Outcome
}

// Options are the knobs of one run.
type Options struct {
	TagKey      string
	TagValue    string
	Verify      bool
	ShowDeleted bool
	Delete      bool
}

// Sweeper ties discovery, verification, deletion and reporting together.
// The whole run is sequential: one network call at a time, one identity
// at a time.
type Sweeper struct {
	dir      Directory
	verifier Verifier
	deleter  Deleter
	prompt   Prompter
	out      io.Writer
}

func New(dir Directory, verifier Verifier, deleter Deleter, prompt Prompter, out io.Writer) *Sweeper {
	return &Sweeper{dir: dir, verifier: verifier, deleter: deleter, prompt: prompt, out: out}
}

// Discover builds the candidate set. Roles come first so the deletion walk
// reaches them before the policies attached to them; the seen set keeps
// the tag index from re-adding a role the direct enumeration already
// found. With verification off every identity is treated as existing.
func (s *Sweeper) Discover(ctx context.Context, opts Options) ([]*resource.Tagged, error) {
	seen := make(map[string]struct{})

	fmt.Fprintln(s.out, "Searching IAM roles directly...")
	roles, err := s.dir.RolesByTag(ctx, opts.TagKey, opts.TagValue)
	if err != nil {
		return nil, err
	}
	found := make([]*resource.Tagged, 0, len(roles))
	for _, r := range roles {
		found = append(found, r)
		seen[r.Raw] = struct{}{}
	}

	fmt.Fprintln(s.out, "Searching via Resource Groups Tagging API...")
	rest, err := s.dir.ResourcesByTag(ctx, opts.TagKey, opts.TagValue)
	if err != nil {
		return nil, err
	}
	for _, r := range rest {
		if _, ok := seen[r.Raw]; ok {
			continue
		}
		seen[r.Raw] = struct{}{}
		if opts.Verify {
			if s.verifier.Verify(ctx, r.Identity) {
				r.Existence = resource.Exists
			} else {
				r.Existence = resource.Absent
			}
		} else {
			r.Existence = resource.Exists
		}
		found = append(found, r)
	}
	return found, nil
}

// Run executes one full sweep against the options.
func (s *Sweeper) Run(ctx context.Context, opts Options) error {
	resources, err := s.Discover(ctx, opts)
	if err != nil {
		return err
	}

	if len(resources) == 0 {
		fmt.Fprintln(s.out, "No resources found.")
		return nil
	}

	var existing, stale []*resource.Tagged
	for _, r := range resources {
		if r.Existence == resource.Absent {
			stale = append(stale, r)
		} else {
			existing = append(existing, r)
		}
	}

	fmt.Fprintf(s.out, "Found %d existing resource(s)\n", len(existing))
	if len(stale) > 0 {
		fmt.Fprintf(s.out, "Found %d stale/deleted resource(s) in cache\n", len(stale))
	}
	fmt.Fprintln(s.out)

	if len(existing) > 0 {
		if opts.Delete {
			s.deleteWalk(ctx, existing)
		} else {
			s.printExisting(existing)
		}
	}
	if opts.ShowDeleted && len(stale) > 0 {
		s.printStale(stale)
	}
	return nil
}

// deleteWalk prompts for every existing resource in turn. A quit answer
// leaves already-deleted resources as they are and abandons the rest.
func (s *Sweeper) deleteWalk(ctx context.Context, existing []*resource.Tagged) {
	fmt.Fprintf(s.out, "=== INTERACTIVE DELETION MODE ===\n\n")
	for i, r := range existing {
		fmt.Fprintf(s.out, "[%d/%d] Resource:\n", i+1, len(existing))
		fmt.Fprintf(s.out, "  ARN: %s\n", r.Raw)
		fmt.Fprintln(s.out, "  Tags:")
		for _, k := range sortedKeys(r.Tags) {
			fmt.Fprintf(s.out, "    %s: %s\n", k, r.Tags[k])
		}
		fmt.Fprintln(s.out)

		switch s.prompt.Ask("Delete this resource? [y/n/q] (y=yes, n=no, q=quit): ") {
		case AnswerYes:
			fmt.Fprintln(s.out, "  Deleting...")
			outcome := s.deleter.Delete(ctx, r.Identity)
			if outcome.Succeeded {
				fmt.Fprintf(s.out, "  %s: %s\n", color.GreenString("SUCCESS"), outcome.Detail)
			} else {
				fmt.Fprintf(s.out, "  %s: %s\n", color.RedString("FAILED"), outcome.Detail)
			}
			fmt.Fprintln(s.out)
		case AnswerNo:
			fmt.Fprintln(s.out, "  Skipped.")
			fmt.Fprintln(s.out)
		case AnswerQuit:
			fmt.Fprintln(s.out, "  Quitting deletion mode.")
			return
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

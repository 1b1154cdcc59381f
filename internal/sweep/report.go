package sweep

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/infrahouse/tagsweep/internal/resource"
)

// printExisting lists every existing resource with its tags, then a
// compact summary table of the taxonomy breakdown.
func (s *Sweeper) printExisting(existing []*resource.Tagged) {
	fmt.Fprintf(s.out, "=== EXISTING RESOURCES ===\n\n")
	for _, r := range existing {
		fmt.Fprintf(s.out, "ARN: %s\n", r.Raw)
		fmt.Fprintln(s.out, "Tags:")
		for _, k := range sortedKeys(r.Tags) {
			fmt.Fprintf(s.out, "  %s: %s\n", k, r.Tags[k])
		}
		fmt.Fprintln(s.out)
	}
	s.printSummary(existing)
}

func (s *Sweeper) printStale(stale []*resource.Tagged) {
	fmt.Fprintf(s.out, "=== STALE/DELETED RESOURCES (cached) ===\n\n")
	for _, r := range stale {
		fmt.Fprintf(s.out, "ARN: %s %s\n", r.Raw, color.RedString("[DELETED]"))
		fmt.Fprintln(s.out)
	}
}

func (s *Sweeper) printSummary(resources []*resource.Tagged) {
	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"Service", "Type", "Resource", "Status"})
	table.SetRowLine(false)

	var rows [][]string
	for _, r := range resources {
		service, resourceType, id := "-", "-", r.Raw
		if r.Identity != nil {
			service = r.Identity.Service
			if r.Identity.Type != "" {
				resourceType = r.Identity.Type
			}
			id = r.Identity.ID
		}
		status := color.GreenString(r.Existence.String())
		if r.Existence == resource.Absent {
			status = color.RedString(r.Existence.String())
		}
		rows = append(rows, []string{service, resourceType, id, status})
	}
	table.AppendBulk(rows)
	table.Render()
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/infrahouse/tagsweep/internal/logging"
	"github.com/infrahouse/tagsweep/internal/sweep"
	awsprovider "github.com/infrahouse/tagsweep/providers/aws"
)

var (
	tagKey      string
	tagValue    string
	region      string
	noVerify    bool
	showDeleted bool
	doDelete    bool
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "tagsweep",
	Short: "Find and delete AWS resources by tag",
	Long: `Tagsweep inventories AWS resources carrying a tag key/value pair and can
interactively delete them.

Discovery combines direct IAM role enumeration with the Resource Groups
Tagging API, verifies that each listed resource still exists (the tag
index is eventually consistent), and in delete mode walks the existing
resources one at a time, asking before every deletion.`,
	SilenceUsage: true,
	RunE:         runSweep,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVarP(&tagKey, "tag-key", "k", "", "Tag key to search for")
	rootCmd.Flags().StringVarP(&tagValue, "tag-value", "v", "", "Tag value to match")
	rootCmd.Flags().StringVarP(&region, "region", "r", "", "AWS region (uses default if not specified)")
	rootCmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip verification of resource existence (faster but may show stale results)")
	rootCmd.Flags().BoolVar(&showDeleted, "show-deleted", false, "Also show resources that no longer exist (cached/stale entries)")
	rootCmd.Flags().BoolVar(&doDelete, "delete", false, "Interactively prompt to delete each existing resource")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.MarkFlagRequired("tag-key")
	rootCmd.MarkFlagRequired("tag-value")
	rootCmd.AddCommand(versionCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	logging.Init(logLevel)
	ctx := cmd.Context()

	prompter := sweep.NewStdinPrompter()
	provider, err := awsprovider.New(ctx, region, prompter.Confirm)
	if err != nil {
		return err
	}

	fmt.Printf("Searching for resources with tag %s=%s\n", tagKey, tagValue)
	if region != "" {
		fmt.Printf("Region: %s\n", region)
	}
	if !noVerify {
		fmt.Println("Verifying resource existence...")
	}
	fmt.Println()

	reg := provider.Registry()
	s := sweep.New(provider.Directory(), reg, reg, prompter, os.Stdout)
	return s.Run(ctx, sweep.Options{
		TagKey:      tagKey,
		TagValue:    tagValue,
		Verify:      !noVerify,
		ShowDeleted: showDeleted,
		Delete:      doDelete,
	})
}

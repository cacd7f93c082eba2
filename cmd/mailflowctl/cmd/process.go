package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var processAll bool

var processCmd = &cobra.Command{
	Use:   "process [email-id]",
	Short: "Categorize emails and extract their action items",
	Long: `Process one email by id, or every unprocessed email with --all.
Processing an already processed email replaces its category and action items.`,
	Args: func(cmd *cobra.Command, args []string) error {
		_, err := parseProcessArgs(processAll, args)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := parseProcessArgs(processAll, args)

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if processAll {
			n, err := a.Batch.ProcessAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Processed %d emails\n", n)
			return nil
		}

		email, err := a.Processor.Process(cmd.Context(), id)
		if err != nil {
			return err
		}
		category := ""
		if email.Category != nil {
			category = *email.Category
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Email %d processed: %s\n", email.ID, category)
		return nil
	},
}

func init() {
	processCmd.Flags().BoolVar(&processAll, "all", false, "process every unprocessed email")
}

// parseProcessArgs requires exactly one of --all or a positive email id.
func parseProcessArgs(all bool, args []string) (int64, error) {
	switch {
	case all && len(args) > 0:
		return 0, fmt.Errorf("--all does not take an email id")
	case all:
		return 0, nil
	case len(args) != 1:
		return 0, fmt.Errorf("expected one email id or --all")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid email id %q", args[0])
	}
	return id, nil
}

package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "actionsmith",
		Short:         "Actionsmith converts, validates and generates GitHub configuration files",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	persistent := cmd.PersistentFlags()
	persistent.StringArray("only", nil, "include only files matching the pattern (repeatable)")
	persistent.StringArray("skip", nil, "exclude files matching the pattern (repeatable)")
	persistent.StringArray("job", nil, "job filter for validation (repeatable)")
	persistent.String("format", "pretty", "output format (pretty|json)")
	persistent.String("out", "", "directory to write emitted output into")
	persistent.Bool("strict", false, "treat suggestions as failures")
	persistent.Bool("skip-validation", false, "skip the schema validation phase")
	persistent.Bool("fail-fast", false, "stop the batch at the first failing file")
	persistent.Bool("dry-run", false, "print generated output instead of writing it")
	persistent.BoolP("verbose", "v", false, "log pipeline phases to stderr")

	cmd.AddCommand(newProcessCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newNewCmd())

	return cmd
}

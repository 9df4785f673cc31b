package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/CodingWithCalvin/starkup.cli/src/internal/doctor"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/ui"
)

var errChecksFailed = errors.New("some checks failed")

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check prerequisites for install",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadEnvironment()
		if err != nil {
			return err
		}

		ui.Header("Checking prerequisites...")
		checks := doctor.Run(cfg)
		for _, c := range checks {
			if c.OK {
				ui.Success("%s: %s", c.Name, c.Detail)
			} else {
				ui.Error("%s: %s", c.Name, c.Detail)
			}
		}

		if doctor.Failed(checks) {
			return errChecksFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

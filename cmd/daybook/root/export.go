package root

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/persist"
)

type exportDocument struct {
	model.State
	Preferences model.Preferences `json:"preferences"`
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the stored tasks, notes, habits and preferences as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			kv, closeKV, err := openStorage(cfg)
			if err != nil {
				return err
			}
			defer closeKV()

			state, prefs := persist.Load(cmd.Context(), kv, newLogger(os.Stderr, cfg.Log.Level))
			payload, err := json.MarshalIndent(exportDocument{State: state, Preferences: prefs}, "", "  ")
			if err != nil {
				return fmt.Errorf("encode export: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return nil
		},
	}
}

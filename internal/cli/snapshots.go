package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/MedusaOnMe/PlyOpt/pkg/utils"
)

// addSnapshotCommands adds chain snapshot commands.
func addSnapshotCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Inspect saved chain snapshots",
	}
	cmd.AddCommand(newSnapshotsListCmd(app))
	cmd.AddCommand(newSnapshotsShowCmd(app))
	rootCmd.AddCommand(cmd)
}

func newSnapshotsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved snapshots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			limit, _ := cmd.Flags().GetInt("limit")

			snapStore, err := app.openStore()
			if err != nil {
				return err
			}
			defer snapStore.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			infos, err := snapStore.ListSnapshots(ctx, limit)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(infos)
			}

			if len(infos) == 0 {
				output.Println("No snapshots saved. Use 'plyopt chain --save'.")
				return nil
			}

			output.Printf("%5s  %-20s %8s  %-12s %5s %6s\n", "ID", "CREATED", "SPOT", "EXPIRY", "DAYS", "CELLS")
			for _, info := range infos {
				output.Printf("%5d  %-20s %8s  %-12s %5d %6d\n",
					info.ID, info.CreatedAt.Format("2006-01-02 15:04:05"),
					utils.FormatCents(info.Spot), info.ExpiryDate, info.DaysToExpiry, info.Cells)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "maximum snapshots to list")
	return cmd
}

func newSnapshotsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}

			snapStore, err := app.openStore()
			if err != nil {
				return err
			}
			defer snapStore.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			snapshot, err := snapStore.GetSnapshot(ctx, id)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(snapshot)
			}
			renderChain(output, snapshot)
			return nil
		},
	}
}

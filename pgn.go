package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Oliverans/GooseEngine/internal/logging"
	"github.com/Oliverans/GooseEngine/internal/session"
)

var pgnCmd = &cobra.Command{
	Use:   "pgn FILE",
	Short: "Replay a PGN game and report its moves and final position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		export, _ := cmd.Flags().GetBool("export")

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		ctl, err := session.New(session.Config{
			Options: session.Options{Hash: session.HashOption.Min, Threads: 1},
		}, logging.Nop())
		if err != nil {
			return err
		}
		if err := ctl.LoadPGN(f); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if export {
			return ctl.SavePGN(out)
		}
		san, err := ctl.MovesSAN()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "moves: %s\n", strings.Join(san, " "))
		fmt.Fprintf(out, "fen: %s\n", ctl.FEN())
		fmt.Fprintf(out, "status: %s\n", ctl.Status())
		return nil
	},
}

func init() {
	pgnCmd.Flags().Bool("export", false, "write the game back out as PGN")
	rootCmd.AddCommand(pgnCmd)
}

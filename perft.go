package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Oliverans/GooseEngine/internal/board"
	"github.com/Oliverans/GooseEngine/internal/timeutil"
)

var perftCmd = &cobra.Command{
	Use:   "perft",
	Short: "Count the legal move tree of a position",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fen, _ := cmd.Flags().GetString("fen")
		depth, _ := cmd.Flags().GetInt("depth")
		divide, _ := cmd.Flags().GetBool("divide")
		if depth <= 0 {
			return fmt.Errorf("--depth must be > 0, got %d", depth)
		}

		b, err := board.ParseFEN(fen)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if divide {
			var sum uint64
			for _, e := range board.Divide(&b, depth) {
				fmt.Fprintf(out, "%s: %d\n", e.Move, e.Nodes)
				sum += e.Nodes
			}
			fmt.Fprintf(out, "Total: %d\n", sum)
			return nil
		}

		start := time.Now()
		nodes := board.Perft(&b, depth)
		elapsed := time.Since(start)
		fmt.Fprintf(out, "perft(%d) = %d in %v (%d nps)\n", depth, nodes, elapsed.Round(time.Millisecond),
			timeutil.NodesPerSecond(nodes, elapsed))
		return nil
	},
}

func init() {
	perftCmd.Flags().String("fen", board.Startpos, "FEN string (defaults to initial position)")
	perftCmd.Flags().Int("depth", 0, "perft depth (required)")
	perftCmd.Flags().Bool("divide", false, "print per-move node counts at root")
	rootCmd.AddCommand(perftCmd)
}

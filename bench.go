package main

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/Oliverans/GooseEngine/internal/input"
	"github.com/Oliverans/GooseEngine/internal/logging"
	"github.com/Oliverans/GooseEngine/internal/timeutil"
)

var benchPositions = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
}

// benchWriter picks the node counts out of the UCI output of a bench run.
type benchWriter struct {
	mu        sync.Mutex
	lastNodes uint64
	total     uint64
	searches  int
}

func (w *benchWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, line := range strings.Split(string(p), "\n") {
		fields := strings.Fields(line)
		switch {
		case len(fields) == 0:
		case fields[0] == "info":
			for i := 1; i+1 < len(fields); i++ {
				if fields[i] == "nodes" {
					if n, err := strconv.ParseUint(fields[i+1], 10, 64); err == nil {
						w.lastNodes = n
					}
				}
			}
		case fields[0] == "bestmove":
			w.total += w.lastNodes
			w.lastNodes = 0
			w.searches++
		}
	}
	return len(p), nil
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Search a fixed set of positions and report the node count",
	RunE: func(cmd *cobra.Command, _ []string) error {
		depth, _ := cmd.Flags().GetInt("depth")
		if depth <= 0 {
			return fmt.Errorf("--depth must be > 0, got %d", depth)
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg.Protocol.Dialect = "uci"
		log := logging.New(cfg.Log.Level, cmd.ErrOrStderr())

		ctl, err := newController(cfg, log)
		if err != nil {
			return err
		}

		lines := []string{"uci", "isready"}
		for _, fen := range benchPositions {
			lines = append(lines, "ucinewgame", "position fen "+fen, "go depth "+strconv.Itoa(depth))
		}
		lines = append(lines, "quit")

		w := &benchWriter{}
		m := newManager(cfg, ctl, input.NewScript(lines...), w, log)

		start := time.Now()
		if err := m.Run(contextOrBackground(cmd)); err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(cmd.OutOrStdout(), "%d positions, %d nodes in %v (%d nps)\n",
			w.searches, w.total, elapsed.Round(time.Millisecond), timeutil.NodesPerSecond(w.total, elapsed))
		return nil
	},
}

func init() {
	benchCmd.Flags().Int("depth", 6, "search depth per position")
	rootCmd.AddCommand(benchCmd)
}

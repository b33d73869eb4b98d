package bench

import (
	"fmt"
	"testing"
	"time"

	"rookwood/board"
	"rookwood/engine"
)

// TestSearchDepthBenchmark measures search performance at different depths.
// Run with: go test ./bench -run TestSearchDepthBenchmark -v
func TestSearchDepthBenchmark(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping depth benchmark in short mode")
	}
	pos := mustFEN(t, board.InitialPositionFEN)

	fmt.Println("\n=== Search Depth Benchmark ===")
	fmt.Println("Position: Initial")
	fmt.Printf("%-7s %-10s %-12s %-15s\n", "Depth", "Move", "Nodes", "Time")
	fmt.Println("----------------------------------------------")

	s := engine.NewSession(64)
	for depth := 1; depth <= 8; depth++ {
		start := time.Now()
		result := s.Search(pos, depth, 10*time.Second)
		elapsed := time.Since(start)

		fmt.Printf("%-7d %-10s %-12d %-15v\n",
			depth, result.Move.ToUCI(), result.Nodes, elapsed)

		if elapsed > 10*time.Second {
			fmt.Println("Stopping - exceeded 10s threshold")
			break
		}
	}
}

// TestSearchTacticalBenchmark measures search on a tactical position.
func TestSearchTacticalBenchmark(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping tactical benchmark in short mode")
	}
	// Kiwipete position - lots of tactics.
	pos := mustFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	fmt.Println("\n=== Tactical Position Benchmark ===")
	fmt.Println("Position: Kiwipete")
	fmt.Printf("%-7s %-10s %-12s %-15s\n", "Depth", "Move", "Nodes", "Time")
	fmt.Println("----------------------------------------------")

	s := engine.NewSession(64)
	for depth := 1; depth <= 6; depth++ {
		start := time.Now()
		result := s.Search(pos, depth, 10*time.Second)
		elapsed := time.Since(start)

		fmt.Printf("%-7d %-10s %-12d %-15v\n",
			depth, result.Move.ToUCI(), result.Nodes, elapsed)

		if elapsed > 10*time.Second {
			fmt.Println("Stopping - exceeded 10s threshold")
			break
		}
	}
}

// Package uci implements the line-oriented UCI protocol dispatcher that
// sits between the search kernel and an external controller (spec §6).
package uci

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"rookwood/board"
	"rookwood/engine"
	"rookwood/generator"
)

const (
	engineName   = "Rookwood"
	engineAuthor = "Rookwood contributors"

	defaultHashMB = 64
	defaultDepth  = 64
)

// Dispatcher owns the one position and one search Session that persist
// across UCI commands for the lifetime of a game (spec §3's Session scope).
type Dispatcher struct {
	session *engine.Session
	pos     *board.Position
	out     io.Writer
}

// NewDispatcher builds a dispatcher with a fresh session and the standard
// starting position.
func NewDispatcher(out io.Writer) *Dispatcher {
	pos, _ := board.ParseFEN(board.InitialPositionFEN)
	return &Dispatcher{
		session: engine.NewSession(defaultHashMB),
		pos:     pos,
		out:     out,
	}
}

// SetDebugLogger attaches the optional offline move logger (SPEC_FULL §12),
// off by default and never touching the protocol's stdout stream.
func (d *Dispatcher) SetDebugLogger(l *engine.Logger) {
	d.session.SetDebugLogger(l)
}

// Run reads UCI commands from r, one per line, until `quit` or EOF. Parse
// errors are logged to stderr and the offending line is skipped; nothing
// here ever panics (spec §7).
func (d *Dispatcher) Run(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if d.dispatch(line) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "uci: reading standard input:", err)
	}
}

// dispatch handles one command line. It returns true when the engine should
// exit (the `quit` command).
func (d *Dispatcher) dispatch(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "uci":
		d.respond("id name %s", engineName)
		d.respond("id author %s", engineAuthor)
		d.respond("uciok")
	case "isready":
		d.respond("readyok")
	case "ucinewgame":
		d.session.Clear()
		pos, err := board.ParseFEN(board.InitialPositionFEN)
		if err != nil {
			fmt.Fprintln(os.Stderr, "uci: resetting start position:", err)
			return false
		}
		d.pos = pos
		d.session.LogGameStart(fmt.Sprintf("hash=%dMB", defaultHashMB))
	case "position":
		if err := d.handlePosition(fields[1:]); err != nil {
			fmt.Fprintln(os.Stderr, "uci: position:", err)
		}
	case "setoption":
		d.handleSetOption(fields[1:])
	case "go":
		d.handleGo(fields[1:])
	case "stop":
		// No search runs concurrently with command dispatch in this
		// implementation (spec §1 excludes pondering); nothing to stop.
	case "quit":
		return true
	default:
		fmt.Fprintln(os.Stderr, "uci: unrecognized command:", line)
	}
	return false
}

func (d *Dispatcher) respond(format string, args ...any) {
	fmt.Fprintf(d.out, format+"\n", args...)
}

// handlePosition implements `position startpos [moves ...]` and
// `position fen <FEN> [moves ...]` (spec §6).
func (d *Dispatcher) handlePosition(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing position argument")
	}

	var pos *board.Position
	var rest []string

	switch args[0] {
	case "startpos":
		p, err := board.ParseFEN(board.InitialPositionFEN)
		if err != nil {
			return err
		}
		pos = p
		rest = args[1:]
	case "fen":
		if len(args) < 7 {
			return fmt.Errorf("truncated fen")
		}
		fen := strings.Join(args[1:7], " ")
		p, err := board.ParseFEN(fen)
		if err != nil {
			return err
		}
		pos = p
		rest = args[7:]
	default:
		return fmt.Errorf("unknown position subcommand %q", args[0])
	}

	if len(rest) > 0 && rest[0] == "moves" {
		rest = rest[1:]
	}

	for _, uciMove := range rest {
		legal := generator.GenerateLegalMoves(pos)
		move := findMove(legal, uciMove)
		if move.IsNone() {
			// Illegal move in the move list: leave the position at the last
			// successfully applied move, per spec §7's undefined-behavior note.
			fmt.Fprintf(os.Stderr, "uci: illegal move %q in position command, stopping\n", uciMove)
			break
		}
		pos.MakeMove(move)
		pos.PushHistory()
	}

	d.pos = pos
	return nil
}

func findMove(moves []board.Move, uci string) board.Move {
	for _, m := range moves {
		if m.ToUCI() == uci {
			return m
		}
	}
	return board.NoMove
}

// handleSetOption implements `setoption name Hash value <MB>` (SPEC_FULL §12).
func (d *Dispatcher) handleSetOption(args []string) {
	joined := strings.Join(args, " ")
	const prefix = "name Hash value "
	idx := strings.Index(joined, prefix)
	if idx == -1 {
		return
	}
	mb, err := strconv.Atoi(strings.TrimSpace(joined[idx+len(prefix):]))
	if err != nil || mb <= 0 {
		fmt.Fprintln(os.Stderr, "uci: setoption: invalid Hash value:", joined)
		return
	}
	d.session.ResizeTT(mb)
}

// handleGo implements `go [depth D] [wtime T] [btime T] [winc I] [binc I]
// [movetime M]` (spec §6): allocates the time budget, runs the search, and
// emits `bestmove`.
func (d *Dispatcher) handleGo(args []string) {
	opts := parseGoOptions(args)

	isWhite := d.pos.SideToMove == board.White
	budget := engine.AllocateTime(opts.wtime, opts.btime, opts.winc, opts.binc, opts.movetime, isWhite)

	depth := opts.depth
	if depth <= 0 {
		depth = defaultDepth
	}

	d.session.SetGoParams(opts.String())
	result := d.session.Search(d.pos, depth, budget)

	if result.Move.IsNone() {
		d.respond("bestmove 0000")
		return
	}
	d.respond("bestmove %s", result.Move.ToUCI())
}

type goOptions struct {
	depth                    int
	wtime, btime, winc, binc int
	movetime                 int
}

// String renders the parsed options as the diagnostic log's GoParams field
// (e.g. "wtime:180000 btime:178000"), omitting fields that were not sent.
func (o goOptions) String() string {
	var parts []string
	add := func(name string, v int) {
		if v != 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", name, v))
		}
	}
	add("depth", o.depth)
	add("wtime", o.wtime)
	add("btime", o.btime)
	add("winc", o.winc)
	add("binc", o.binc)
	add("movetime", o.movetime)
	return strings.Join(parts, " ")
}

func parseGoOptions(args []string) goOptions {
	var opts goOptions
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			i++
			opts.depth = atoiOr(args, i, 0)
		case "wtime":
			i++
			opts.wtime = atoiOr(args, i, 0)
		case "btime":
			i++
			opts.btime = atoiOr(args, i, 0)
		case "winc":
			i++
			opts.winc = atoiOr(args, i, 0)
		case "binc":
			i++
			opts.binc = atoiOr(args, i, 0)
		case "movetime":
			i++
			opts.movetime = atoiOr(args, i, 0)
		}
	}
	return opts
}

func atoiOr(args []string, i, fallback int) int {
	if i < 0 || i >= len(args) {
		return fallback
	}
	v, err := strconv.Atoi(args[i])
	if err != nil {
		return fallback
	}
	return v
}

// Start wires stdin/stdout to a fresh Dispatcher; kept for parity with the
// teacher's package-level entry point. cmd/rookwood-uci does not call it: it
// builds its own Dispatcher so it can attach the -log logger.
func Start() {
	d := NewDispatcher(os.Stdout)
	d.Run(os.Stdin)
}

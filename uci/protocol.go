// Package uci implements a minimal Universal Chess Interface front-end
// around the search engine: a stdin command loop, running search cancelled
// by "stop", and a handful of debug helpers useful outside a GUI.
package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vantage-chess/vantage/board"
	"github.com/vantage-chess/vantage/search"
)

const defaultMovesToGo = 40

// Protocol drives one UCI session: it owns the current game position (plus
// any moves played on top of it) and the search context, and multiplexes
// stdin commands against a running search's progress channel so "stop" and
// "isready" stay responsive while a search is in flight.
type Protocol struct {
	name   string
	author string
	ctx    *search.Context
	pos    board.Position
	prevPV []board.Move
	logger *log.Logger

	thinking bool
	cancel   context.CancelFunc
	progress chan search.Result
}

// New builds a Protocol at the initial position with a fresh search context
// sized to megabytes of transposition table.
func New(name, author string, megabytes int, logger *log.Logger) *Protocol {
	var pos, err = board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		panic(err)
	}
	return &Protocol{
		name:   name,
		author: author,
		ctx:    search.NewContext(megabytes),
		pos:    pos,
		logger: logger,
	}
}

// Run reads commands from stdin until "quit" or EOF, dispatching each line
// through handle, while multiplexing a running search's progress channel
// into the same select loop so "info"/"bestmove" lines interleave correctly
// with "stop"/"isready" handling instead of racing against them. The stdin
// reader runs in an errgroup, whose Wait returns its scanner error; the (at
// most one) search goroutine started by "go" runs outside the group, and
// Run cancels it and drains its progress channel before returning.
func (p *Protocol) Run() error {
	var commands = make(chan string)
	var group, ctx = errgroup.WithContext(context.Background())

	group.Go(func() error {
		defer close(commands)
		var scanner = bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			var line = scanner.Text()
			if line == "quit" {
				return nil
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			select {
			case commands <- line:
			case <-ctx.Done():
				return nil
			}
		}
		return scanner.Err()
	})

loop:
	for {
		select {
		case result, ok := <-p.progress:
			if !ok {
				p.progress = nil
				p.thinking = false
				p.cancel = nil
				if len(p.prevPV) != 0 {
					fmt.Printf("bestmove %s\n", p.prevPV[0].String())
				} else {
					fmt.Println("bestmove 0000")
				}
				continue
			}
			p.reportResult(result)
		case line, ok := <-commands:
			if !ok {
				break loop
			}
			if err := p.handle(line); err != nil {
				p.logger.Println(err)
			}
		}
	}

	if p.cancel != nil {
		p.cancel()
	}
	for p.progress != nil {
		if _, ok := <-p.progress; !ok {
			p.progress = nil
		}
	}
	return group.Wait()
}

// reportResult prints one iteration's "info" line and remembers its PV;
// Run prints the "bestmove" line from that PV once the search goroutine
// closes progress. A Result with Depth 0 is ignored.
func (p *Protocol) reportResult(result search.Result) {
	if result.Depth == 0 {
		return
	}
	fmt.Println(formatInfo(result))
	p.prevPV = result.PV
}

func (p *Protocol) handle(line string) error {
	var fields = strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	var name, args = fields[0], fields[1:]

	if p.thinking && name != "stop" && name != "isready" && name != "quit" {
		return errors.New("search still running")
	}

	switch name {
	case "uci":
		return p.uciCommand()
	case "isready":
		fmt.Println("readyok")
		return nil
	case "ucinewgame":
		p.ctx.Reset()
		p.prevPV = nil
		return nil
	case "position":
		return p.positionCommand(args)
	case "go":
		return p.goCommand(args)
	case "stop":
		if p.cancel != nil {
			p.cancel()
		}
		return nil
	case "perft":
		return p.perftCommand(args)
	case "print":
		fmt.Println(p.pos.String())
		return nil
	case "ischeck":
		fmt.Println(p.pos.IsCheck())
		return nil
	case "showallmoves":
		return p.showAllMovesCommand()
	default:
		return fmt.Errorf("command not found: %s", name)
	}
}

func (p *Protocol) uciCommand() error {
	fmt.Printf("id name %s\n", p.name)
	fmt.Printf("id author %s\n", p.author)
	fmt.Println("uciok")
	return nil
}

func (p *Protocol) positionCommand(args []string) error {
	if len(args) == 0 {
		return errors.New("position: missing token")
	}
	var movesIndex = indexOf(args, "moves")
	var fen string
	switch args[0] {
	case "startpos":
		fen = board.InitialPositionFen
	case "fen":
		if movesIndex == -1 {
			fen = strings.Join(args[1:], " ")
		} else {
			fen = strings.Join(args[1:movesIndex], " ")
		}
	default:
		return errors.New("position: unknown token")
	}

	var pos, err = board.NewPositionFromFEN(fen)
	if err != nil {
		return fmt.Errorf("position: %w", err)
	}

	if movesIndex >= 0 {
		for _, lan := range args[movesIndex+1:] {
			var next, ok = pos.MakeMoveLAN(lan)
			if !ok {
				return fmt.Errorf("position: illegal move %s", lan)
			}
			pos = next
		}
	}

	p.pos = pos
	p.prevPV = nil
	return nil
}

// goCommand launches one root search in its own goroutine, reporting each
// completed iteration on p.progress and closing the channel once the
// iteration loop stops, so Run's select loop can print the "bestmove" line
// at the right moment.
func (p *Protocol) goCommand(args []string) error {
	var lim = parseLimits(args)
	var maxDepth = lim.depth
	if maxDepth == 0 {
		maxDepth = 64
	}
	var maxNodes = int64(lim.nodes)
	var budgetMs = p.timeBudgetMs(lim)

	var goCtx, cancel = context.WithCancel(context.Background())
	p.cancel = cancel
	p.thinking = true
	p.progress = make(chan search.Result, 1)

	go func() {
		defer close(p.progress)
		var pos = p.pos
		var prevPV = p.prevPV
		var deadline time.Time
		if budgetMs > 0 {
			deadline = time.Now().Add(msToDuration(budgetMs))
		}
		p.ctx.Reset()
		p.ctx.SetLimits(maxNodes, msToDuration(budgetMs))

		for depth := 1; depth <= maxDepth; depth++ {
			select {
			case <-goCtx.Done():
				return
			default:
			}
			var result = p.ctx.SearchDeeper(&pos, prevPV)
			if depth > 1 && p.ctx.Aborted() {
				return
			}
			prevPV = result.PV
			p.progress <- result
			if p.ctx.Aborted() || search.IsMateScore(result.Score) {
				return
			}
			if !deadline.IsZero() && time.Now().After(deadline) {
				return
			}
		}
	}()

	return nil
}

func (p *Protocol) perftCommand(args []string) error {
	if len(args) != 1 {
		return errors.New("perft: expected a depth argument")
	}
	var depth, err = strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("perft: %w", err)
	}
	var start = time.Now()
	var nodes = board.Perft(&p.pos, depth)
	var elapsed = time.Since(start)
	fmt.Printf("nodes %d time %v\n", nodes, elapsed)
	return nil
}

func (p *Protocol) showAllMovesCommand() error {
	for _, move := range p.pos.GenerateLegalMoves(false) {
		fmt.Println(move.String())
	}
	return nil
}

type limits struct {
	whiteTimeMs, blackTimeMs int
	whiteIncMs, blackIncMs   int
	movesToGo                int
	depth, nodes, moveTimeMs int
	infinite                 bool
}

func parseLimits(args []string) limits {
	var l limits
	for i := 0; i < len(args); i++ {
		var next = func() int {
			if i+1 < len(args) {
				var v, _ = strconv.Atoi(args[i+1])
				i++
				return v
			}
			return 0
		}
		switch args[i] {
		case "wtime":
			l.whiteTimeMs = next()
		case "btime":
			l.blackTimeMs = next()
		case "winc":
			l.whiteIncMs = next()
		case "binc":
			l.blackIncMs = next()
		case "movestogo":
			l.movesToGo = next()
		case "depth":
			l.depth = next()
		case "nodes":
			l.nodes = next()
		case "movetime":
			l.moveTimeMs = next()
		case "infinite":
			l.infinite = true
		}
	}
	return l
}

// timeBudgetMs applies the max(1, timeForSide/(3*movesToGo)) formula, or a
// generous fixed wall-clock budget when the GUI gave no clock information
// at all and no depth/node cap was given either (a bare "go").
func (p *Protocol) timeBudgetMs(l limits) int64 {
	if l.infinite {
		return 0
	}
	if l.moveTimeMs > 0 {
		return int64(l.moveTimeMs)
	}
	var timeForSide = l.whiteTimeMs
	if !p.pos.WhiteMove {
		timeForSide = l.blackTimeMs
	}
	if timeForSide <= 0 {
		if l.depth > 0 || l.nodes > 0 {
			return 0
		}
		return 5000
	}
	var movesToGo = l.movesToGo
	if movesToGo <= 0 {
		movesToGo = defaultMovesToGo
	}
	var budget = timeForSide / (3 * movesToGo)
	if budget < 1 {
		budget = 1
	}
	return int64(budget)
}

func msToDuration(ms int64) time.Duration {
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

func formatInfo(r search.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "info depth %d seldepth %d", r.Depth, r.AchievedDepth)
	if search.IsMateScore(r.Score) {
		fmt.Fprintf(&sb, " score mate %d", mateDistance(r.Score))
	} else {
		fmt.Fprintf(&sb, " score cp %d", r.Score)
	}
	fmt.Fprintf(&sb, " nodes %d time %d", r.Nodes, r.Elapsed.Milliseconds())
	if len(r.PV) != 0 {
		sb.WriteString(" pv")
		for _, move := range r.PV {
			sb.WriteString(" ")
			sb.WriteString(move.String())
		}
	}
	return sb.String()
}

func mateDistance(score int) int {
	var plies = search.MateScore - abs(score)
	var moves = (plies + 1) / 2
	if score < 0 {
		return -moves
	}
	return moves
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func indexOf(fields []string, value string) int {
	for i, f := range fields {
		if f == value {
			return i
		}
	}
	return -1
}

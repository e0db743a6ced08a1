// Command vchess is a thin line-oriented shell around the engine package:
// it reads one command per line from stdin and writes one response per line
// to stdout, so a UI shell or test harness can drive it as a subprocess
// without linking the Go module directly.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fkopp/vchess/engine"
	"github.com/fkopp/vchess/internal/config"
	"github.com/fkopp/vchess/internal/logging"
)

const (
	exitSuccess     = 0
	exitFenError    = 1
	exitIllegalMove = 2
	exitInternal    = 3
)

var log = logging.GetLog("main")

func main() {
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	variantName := flag.String("variant", "standard", "variant preset to start in (see internal/variant.Presets)")
	fen := flag.String("fen", "", "FEN to load at startup instead of the variant's start position")
	threads := flag.Int("threads", 1, "number of Lazy SMP search threads")
	flag.Parse()

	config.ConfFile = *configFile
	config.Setup()

	eng, err := engine.New(*variantName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "vchess:", err)
		os.Exit(exitInternal)
	}
	eng.SetNumThreads(*threads)

	if *fen != "" {
		if err := eng.LoadFEN(*fen); err != nil {
			fmt.Fprintln(os.Stderr, "vchess:", err)
			os.Exit(exitFenError)
		}
	}

	os.Exit(run(eng, os.Stdin, os.Stdout))
}

// run executes commands read from r, writing responses to w, until EOF or a
// "quit" command. It returns the process exit code: the last command's
// error code if the stream ends on an error, exitSuccess otherwise.
func run(eng *engine.Engine, r *os.File, w *os.File) int {
	scanner := bufio.NewScanner(r)
	lastExit := exitSuccess
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		if cmd == "quit" {
			break
		}

		code := dispatch(eng, cmd, args, w)
		lastExit = code
	}
	return lastExit
}

func dispatch(eng *engine.Engine, cmd string, args []string, w *os.File) int {
	switch cmd {
	case "fen":
		return cmdFen(eng, args, w)
	case "tofen":
		fmt.Fprintln(w, eng.ToFEN())
		return exitSuccess
	case "moves":
		return cmdMoves(eng, w)
	case "move":
		return cmdMove(eng, args, w)
	case "undo":
		if err := eng.Undo(); err != nil {
			fmt.Fprintln(w, "error:", err)
			return exitInternal
		}
		fmt.Fprintln(w, "ok")
		return exitSuccess
	case "go":
		return cmdGo(eng, args, w)
	case "state":
		d := eng.StateDiff()
		fmt.Fprintf(w, "fen=%s incheck=%v tomove=%s\n", d.FEN, d.InCheck, d.PlayerToMove)
		return exitSuccess
	default:
		fmt.Fprintln(w, "error: unknown command", cmd)
		return exitInternal
	}
}

func cmdFen(eng *engine.Engine, args []string, w *os.File) int {
	if len(args) == 0 {
		fmt.Fprintln(w, "error: fen requires an argument")
		return exitFenError
	}
	if err := eng.LoadFEN(strings.Join(args, " ")); err != nil {
		fmt.Fprintln(w, "error:", err)
		return exitFenError
	}
	fmt.Fprintln(w, "ok")
	return exitSuccess
}

func cmdMoves(eng *engine.Engine, w *os.File) int {
	moves := eng.LegalMoves()
	strs := make([]string, 0, len(moves))
	for _, m := range moves {
		strs = append(strs, moveInfoString(m))
	}
	fmt.Fprintln(w, strings.Join(strs, " "))
	return exitSuccess
}

func moveInfoString(m engine.MoveInfo) string {
	s := fmt.Sprintf("%c%d%c%d", 'a'+m.FromFile, m.FromRank+1, 'a'+m.ToFile, m.ToRank+1)
	if m.Promotion != 0 {
		s += string(m.Promotion)
	}
	return s
}

func cmdMove(eng *engine.Engine, args []string, w *os.File) int {
	if len(args) != 1 {
		fmt.Fprintln(w, "error: move requires exactly one argument")
		return exitIllegalMove
	}
	result, err := eng.MakeMoveStr(args[0])
	if err != nil {
		fmt.Fprintln(w, "error:", err)
		if errors.Is(err, engine.ErrIllegalMove) {
			return exitIllegalMove
		}
		return exitInternal
	}
	fmt.Fprintf(w, "ok flag=%d winner=%d exploded=%d\n", result.Flag, result.Winner, len(result.Exploded))
	return exitSuccess
}

func cmdGo(eng *engine.Engine, args []string, w *os.File) int {
	depth := 6
	var timeout time.Duration
	for i := 0; i < len(args)-1; i++ {
		switch args[i] {
		case "depth":
			if n, err := strconv.Atoi(args[i+1]); err == nil {
				depth = n
			}
		case "movetime":
			if ms, err := strconv.Atoi(args[i+1]); err == nil {
				timeout = time.Duration(ms) * time.Millisecond
			}
		}
	}

	var result engine.SearchResult
	var err error
	if timeout > 0 {
		result, err = eng.GetBestMoveTimeout(timeout)
	} else {
		result, err = eng.GetBestMove(depth)
	}
	if err != nil {
		log.Error("search failed:", err)
		fmt.Fprintln(w, "error:", err)
		return exitInternal
	}
	fmt.Fprintf(w, "bestmove %s score=%d depth=%d\n", moveInfoString(result.Move), result.Score, result.Depth)
	return exitSuccess
}

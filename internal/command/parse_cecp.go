package command

import (
	"strconv"
	"strings"
)

// Commands a CECP engine must accept but has nothing to do with.
var cecpIgnored = map[string]bool{
	"accepted": true, "rejected": true, "random": true, "computer": true,
	"name": true, "rating": true, "draw": true, "hint": true, "bk": true,
	"hard": true, "easy": true, "white": true, "black": true, "edit": true,
	"ics": true, "variant": true, "nps": true,
}

func parseCECP(line string, tokens []string) Command {
	cmd := tokens[0]
	if cecpIgnored[cmd] {
		return nil
	}

	switch cmd {
	case "xboard":
		return XBoard{}
	case "uci":
		return UCI{}
	case "protover":
		v, ok := intArg(tokens)
		if !ok {
			return nil
		}
		return Protover{Version: v}
	case "new":
		return NewGame{}
	case "quit":
		return Quit{}
	case "force":
		return Force{}
	case "go":
		return Go{}
	case "playother":
		return PlayOther{}
	case "?":
		return MoveNow{}
	case ".":
		return Status{}
	case "analyze":
		return Analyze{}
	case "exit":
		return ExitAnalyze{}
	case "post":
		return Post{On: true}
	case "nopost":
		return Post{On: false}
	case "undo":
		return Undo{Count: 1}
	case "remove":
		return Undo{Count: 2}
	case "d":
		return Print{}
	case "ping":
		v, ok := intArg(tokens)
		if !ok {
			return nil
		}
		return Ping{N: v}
	case "sd":
		v, ok := intArg(tokens)
		if !ok || v < 0 {
			return nil
		}
		return SetDepth{Depth: v}
	case "st":
		v, ok := intArg(tokens)
		if !ok || v < 0 {
			return nil
		}
		return SetTimePerMove{Seconds: v}
	case "time":
		v, ok := intArg(tokens)
		if !ok {
			return nil
		}
		return SetTime{Centis: v}
	case "otim":
		v, ok := intArg(tokens)
		if !ok {
			return nil
		}
		return OppTime{Centis: v}
	case "memory":
		v, ok := intArg(tokens)
		if !ok {
			return nil
		}
		return SetMemory{MB: v}
	case "cores":
		v, ok := intArg(tokens)
		if !ok {
			return nil
		}
		return SetCores{N: v}
	case "level":
		return parseLevel(tokens[1:])
	case "usermove":
		if len(tokens) != 2 || !IsMoveText(tokens[1]) {
			return nil
		}
		return MakeMove{Move: tokens[1]}
	case "setboard":
		fen := restOf(line, "setboard")
		if fen == "" {
			return nil
		}
		return SetBoard{FEN: fen}
	case "result":
		return Result{Text: restOf(line, "result")}
	case "option":
		name, value, ok := strings.Cut(restOf(line, "option"), "=")
		if !ok {
			return nil
		}
		return optionCommand(name, value)
	}

	if len(tokens) == 1 && IsMoveText(cmd) {
		return MakeMove{Move: cmd}
	}
	return nil
}

// parseLevel reads "level MPS BASE INC" where BASE is minutes or
// minutes:seconds and INC is seconds, possibly fractional.
func parseLevel(args []string) Command {
	if len(args) != 3 {
		return nil
	}
	mps, ok := atoi(args[0])
	if !ok || mps < 0 {
		return nil
	}

	var baseMs int
	minutes, seconds, hasSeconds := strings.Cut(args[1], ":")
	m, ok := atoi(minutes)
	if !ok || m < 0 {
		return nil
	}
	baseMs = m * 60 * 1000
	if hasSeconds {
		s, ok := atoi(seconds)
		if !ok || s < 0 || s >= 60 {
			return nil
		}
		baseMs += s * 1000
	}

	inc, err := strconv.ParseFloat(args[2], 64)
	if err != nil || inc < 0 {
		return nil
	}
	return TimeControl{
		MovesPerControl: mps,
		Base:            Duration(baseMs),
		Increment:       Duration(inc * 1000),
	}
}

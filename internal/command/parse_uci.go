package command

import (
	"strconv"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

func parseUCI(line string, tokens []string) Command {
	switch strings.ToLower(tokens[0]) {
	case "uci":
		return UCI{}
	case "xboard":
		return XBoard{}
	case "isready":
		return IsReady{}
	case "ucinewgame":
		return NewGame{}
	case "quit":
		return Quit{}
	case "stop":
		return Stop{}
	case "position":
		return parsePosition(tokens[1:])
	case "go":
		return parseGo(tokens[1:])
	case "setoption":
		return parseSetOption(tokens[1:])
	case "d":
		return Print{}
	}
	return nil
}

func parsePosition(args []string) Command {
	if len(args) == 0 {
		return nil
	}

	var fenFields []string
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		fenFields = []string{dragontoothmg.Startpos}
	case "fen":
		for len(rest) > 0 && !strings.EqualFold(rest[0], "moves") {
			fenFields = append(fenFields, rest[0])
			rest = rest[1:]
		}
		if len(fenFields) == 0 {
			return nil
		}
	default:
		return nil
	}

	pos := Position{FEN: strings.Join(fenFields, " ")}
	if len(rest) > 0 {
		if !strings.EqualFold(rest[0], "moves") {
			return nil
		}
		for _, mv := range rest[1:] {
			pos.Moves = append(pos.Moves, strings.ToLower(mv))
		}
	}
	return pos
}

func parseGo(args []string) Command {
	var lim Limits
	for i := 0; i < len(args); i++ {
		key := strings.ToLower(args[i])
		var dst *int
		switch key {
		case "infinite":
			lim.Infinite = true
			continue
		case "depth":
			dst = &lim.Depth
		case "wtime":
			dst = &lim.WTime
		case "btime":
			dst = &lim.BTime
		case "winc":
			dst = &lim.WInc
		case "binc":
			dst = &lim.BInc
		case "movestogo":
			dst = &lim.MovesToGo
		case "movetime":
			dst = &lim.MoveTime
		case "nodes":
			if i+1 >= len(args) {
				return nil
			}
			n, err := strconv.ParseUint(args[i+1], 10, 64)
			if err != nil {
				return nil
			}
			lim.Nodes = n
			i++
			continue
		default:
			// ponder, searchmoves, mate and friends are not supported; their
			// arguments are skipped with them.
			continue
		}
		if i+1 >= len(args) {
			return nil
		}
		v, ok := atoi(args[i+1])
		if !ok {
			return nil
		}
		*dst = v
		i++
	}
	return Go{Limits: lim}
}

// parseSetOption handles "name <words...> value <words...>"; option names
// may contain spaces.
func parseSetOption(args []string) Command {
	if len(args) < 2 || !strings.EqualFold(args[0], "name") {
		return nil
	}
	var name, value []string
	inValue := false
	for _, tok := range args[1:] {
		if !inValue && strings.EqualFold(tok, "value") {
			inValue = true
			continue
		}
		if inValue {
			value = append(value, tok)
		} else {
			name = append(name, tok)
		}
	}
	if !inValue {
		return nil
	}
	return optionCommand(strings.Join(name, " "), strings.Join(value, " "))
}

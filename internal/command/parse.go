package command

import (
	"regexp"
	"strconv"
	"strings"
)

// Dialect selects the command grammar.
type Dialect int

const (
	CECP Dialect = iota
	UCIDialect
)

func (d Dialect) String() string {
	if d == UCIDialect {
		return "uci"
	}
	return "xboard"
}

// ParseDialect maps a configuration value to a Dialect; anything that is
// not "uci" means CECP.
func ParseDialect(s string) Dialect {
	if strings.EqualFold(strings.TrimSpace(s), "uci") {
		return UCIDialect
	}
	return CECP
}

// Parse turns one raw line into a Command under dialect d. Unknown or
// malformed lines give the absent command (nil). Parse is pure: the same
// line and dialect always give the same result.
func Parse(line string, d Dialect) Command {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}
	if d == UCIDialect {
		return parseUCI(line, tokens)
	}
	return parseCECP(line, tokens)
}

var (
	coordMoveRe = regexp.MustCompile(`^[a-h][1-8][a-h][1-8][nbrqNBRQ]?$`)
	sanMoveRe   = regexp.MustCompile(`^([KQRBN]?[a-h]?[1-8]?x?[a-h][1-8](=?[QRBNqrbn])?|O-O(-O)?|0-0(-0)?)[+#]?[!?]*$`)
)

// IsMoveText reports whether tok looks like a move in coordinate or
// standard algebraic notation.
func IsMoveText(tok string) bool {
	return coordMoveRe.MatchString(tok) || sanMoveRe.MatchString(tok)
}

func atoi(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// intArg parses the single integer argument of commands such as "sd 5".
func intArg(tokens []string) (int, bool) {
	if len(tokens) < 2 {
		return 0, false
	}
	return atoi(tokens[1])
}

// restOf returns the raw text after the first token, keeping the inner
// spacing of FEN strings and option names intact.
func restOf(line, first string) string {
	idx := strings.Index(line, first)
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(line[idx+len(first):])
}

// optionCommand builds the command for a named option assignment. OwnBook
// is the only boolean option, everything else must be an integer.
func optionCommand(name, value string) Command {
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if name == "" {
		return nil
	}
	if strings.EqualFold(name, "OwnBook") {
		switch strings.ToLower(value) {
		case "true", "1", "on":
			return Book{On: true}
		case "false", "0", "off":
			return Book{On: false}
		}
		return nil
	}
	v, ok := atoi(value)
	if !ok {
		return nil
	}
	return SetOption{Values: map[string]int{name: v}}
}

// Package command models the directives a GUI can send, in either
// protocol dialect, and turns raw input lines into them.
//
// Every directive is its own type carrying only the fields it needs. The
// absent command is a nil Command.
package command

import "fmt"

// Kind is the discriminant of a Command.
type Kind int

const (
	None Kind = iota
	KindQuit
	KindNewGame
	KindSetBoard
	KindPosition
	KindMakeMove
	KindGo
	KindStop
	KindMoveNow
	KindSetOption
	KindStatus
	KindTimeControl
	KindSetTimePerMove
	KindSetTime
	KindOppTime
	KindPing
	KindUndo
	KindSetDepth
	KindSetMemory
	KindSetCores
	KindAnalyze
	KindExitAnalyze
	KindForce
	KindPlayOther
	KindPost
	KindUCI
	KindXBoard
	KindProtover
	KindIsReady
	KindResult
	KindBook
	KindPrint
)

var kindNames = [...]string{
	None:               "none",
	KindQuit:           "quit",
	KindNewGame:        "new",
	KindSetBoard:       "setboard",
	KindPosition:       "position",
	KindMakeMove:       "usermove",
	KindGo:             "go",
	KindStop:           "stop",
	KindMoveNow:        "movenow",
	KindSetOption:      "setoption",
	KindStatus:         "status",
	KindTimeControl:    "level",
	KindSetTimePerMove: "st",
	KindSetTime:        "time",
	KindOppTime:        "otim",
	KindPing:           "ping",
	KindUndo:           "undo",
	KindSetDepth:       "sd",
	KindSetMemory:      "memory",
	KindSetCores:       "cores",
	KindAnalyze:        "analyze",
	KindExitAnalyze:    "exit",
	KindForce:          "force",
	KindPlayOther:      "playother",
	KindPost:           "post",
	KindUCI:            "uci",
	KindXBoard:         "xboard",
	KindProtover:       "protover",
	KindIsReady:        "isready",
	KindResult:         "result",
	KindBook:           "book",
	KindPrint:          "print",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Command is one parsed directive.
type Command interface {
	Kind() Kind
	isCommand()
}

// KindOf reports the discriminant of c, None for the absent command.
func KindOf(c Command) Kind {
	if c == nil {
		return None
	}
	return c.Kind()
}

type (
	Quit    struct{}
	NewGame struct{}

	// SetBoard installs a CECP position.
	SetBoard struct{ FEN string }

	// Position is the UCI position command. FEN is already expanded for
	// "startpos".
	Position struct {
		FEN   string
		Moves []string
	}

	MakeMove struct{ Move string }

	// Go starts a search. The CECP go carries no limits.
	Go struct{ Limits Limits }

	Stop    struct{}
	MoveNow struct{}

	// SetOption carries option name to value. Boolean options are not part
	// of this map, see Book.
	SetOption struct{ Values map[string]int }

	Status struct{}

	// TimeControl is the CECP level command. Base is the clock for the
	// whole control period.
	TimeControl struct {
		MovesPerControl int
		Base            Duration
		Increment       Duration
	}

	SetTimePerMove struct{ Seconds int }
	SetTime        struct{ Centis int }
	OppTime        struct{ Centis int }
	Ping           struct{ N int }

	// Undo takes back Count plies: 1 for undo, 2 for remove.
	Undo struct{ Count int }

	SetDepth    struct{ Depth int }
	SetMemory   struct{ MB int }
	SetCores    struct{ N int }
	Analyze     struct{}
	ExitAnalyze struct{}
	Force       struct{}
	PlayOther   struct{}
	Post        struct{ On bool }
	UCI         struct{}
	XBoard      struct{}
	Protover    struct{ Version int }
	IsReady     struct{}
	Result      struct{ Text string }
	Book        struct{ On bool }
	Print       struct{}
)

// Limits are the search constraints of a UCI go. Times are milliseconds.
type Limits struct {
	Depth     int
	WTime     int
	BTime     int
	WInc      int
	BInc      int
	MovesToGo int
	MoveTime  int
	Nodes     uint64
	Infinite  bool
}

// Duration is a CECP time value in milliseconds.
type Duration int

func (Quit) Kind() Kind           { return KindQuit }
func (NewGame) Kind() Kind        { return KindNewGame }
func (SetBoard) Kind() Kind       { return KindSetBoard }
func (Position) Kind() Kind       { return KindPosition }
func (MakeMove) Kind() Kind       { return KindMakeMove }
func (Go) Kind() Kind             { return KindGo }
func (Stop) Kind() Kind           { return KindStop }
func (MoveNow) Kind() Kind        { return KindMoveNow }
func (SetOption) Kind() Kind      { return KindSetOption }
func (Status) Kind() Kind         { return KindStatus }
func (TimeControl) Kind() Kind    { return KindTimeControl }
func (SetTimePerMove) Kind() Kind { return KindSetTimePerMove }
func (SetTime) Kind() Kind        { return KindSetTime }
func (OppTime) Kind() Kind        { return KindOppTime }
func (Ping) Kind() Kind           { return KindPing }
func (Undo) Kind() Kind           { return KindUndo }
func (SetDepth) Kind() Kind       { return KindSetDepth }
func (SetMemory) Kind() Kind      { return KindSetMemory }
func (SetCores) Kind() Kind       { return KindSetCores }
func (Analyze) Kind() Kind        { return KindAnalyze }
func (ExitAnalyze) Kind() Kind    { return KindExitAnalyze }
func (Force) Kind() Kind          { return KindForce }
func (PlayOther) Kind() Kind      { return KindPlayOther }
func (Post) Kind() Kind           { return KindPost }
func (UCI) Kind() Kind            { return KindUCI }
func (XBoard) Kind() Kind         { return KindXBoard }
func (Protover) Kind() Kind       { return KindProtover }
func (IsReady) Kind() Kind        { return KindIsReady }
func (Result) Kind() Kind         { return KindResult }
func (Book) Kind() Kind           { return KindBook }
func (Print) Kind() Kind          { return KindPrint }

func (Quit) isCommand()           {}
func (NewGame) isCommand()        {}
func (SetBoard) isCommand()       {}
func (Position) isCommand()       {}
func (MakeMove) isCommand()       {}
func (Go) isCommand()             {}
func (Stop) isCommand()           {}
func (MoveNow) isCommand()        {}
func (SetOption) isCommand()      {}
func (Status) isCommand()         {}
func (TimeControl) isCommand()    {}
func (SetTimePerMove) isCommand() {}
func (SetTime) isCommand()        {}
func (OppTime) isCommand()        {}
func (Ping) isCommand()           {}
func (Undo) isCommand()           {}
func (SetDepth) isCommand()       {}
func (SetMemory) isCommand()      {}
func (SetCores) isCommand()       {}
func (Analyze) isCommand()        {}
func (ExitAnalyze) isCommand()    {}
func (Force) isCommand()          {}
func (PlayOther) isCommand()      {}
func (Post) isCommand()           {}
func (UCI) isCommand()            {}
func (XBoard) isCommand()         {}
func (Protover) isCommand()       {}
func (IsReady) isCommand()        {}
func (Result) isCommand()         {}
func (Book) isCommand()           {}
func (Print) isCommand()          {}

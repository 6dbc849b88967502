package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

var (
	ErrInvalidFEN    = errors.New("invalid position")
	ErrIllegalMove   = errors.New("illegal move")
	ErrNoHistory     = errors.New("no move to undo")
	ErrOptionRange   = errors.New("option value out of range")
	ErrUnknownOption = errors.New("unknown option")
	ErrGameOver      = errors.New("game is over")
	ErrBusy          = errors.New("search in progress")
)

// Options are the tunables a GUI can change.
type Options struct {
	Hash    int `mapstructure:"Hash"`
	Threads int `mapstructure:"Threads"`
}

// OptionSpec describes one option for protocol auto-discovery.
type OptionSpec struct {
	Name    string
	Type    string
	Default int
	Min     int
	Max     int
}

var (
	HashOption    = OptionSpec{Name: "Hash", Type: "spin", Default: 256, Min: 1, Max: 1024}
	ThreadsOption = OptionSpec{Name: "Threads", Type: "spin", Default: 1, Min: 1, Max: 8}

	OptionSpecs = []OptionSpec{HashOption, ThreadsOption}
)

func DefaultOptions() Options {
	return Options{Hash: HashOption.Default, Threads: ThreadsOption.Default}
}

func (o OptionSpec) check(v int) error {
	if v < o.Min || v > o.Max {
		return fmt.Errorf("%w: %s=%d, want %d..%d", ErrOptionRange, o.Name, v, o.Min, o.Max)
	}
	return nil
}

// Validate range-checks every option.
func (o Options) Validate() error {
	if err := HashOption.check(o.Hash); err != nil {
		return err
	}
	return ThreadsOption.check(o.Threads)
}

// decodeOptions overlays values on top of base. Keys match option names
// case-insensitively; a key that names no option is an error.
func decodeOptions(base Options, values map[string]int) (Options, error) {
	out := base
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &out,
		MatchName:   strings.EqualFold,
	})
	if err != nil {
		return base, err
	}
	if err := dec.Decode(values); err != nil {
		return base, fmt.Errorf("%w: %v", ErrUnknownOption, err)
	}
	return out, nil
}

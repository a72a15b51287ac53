package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/segments/internal/faction"
	"github.com/dshills/segments/internal/segment"
	"github.com/dshills/segments/internal/split"
)

// Names of the global functions a script defines.
const (
	SplitFunc        = "split"
	FactionalizeFunc = "factionalize"
)

// Splitter returns a split.Splitter that calls the script's
// split(text, offset) function. text is the start of the remainder and offset
// its position in the backing; the function returns the length of the next
// piece.
func (s *State) Splitter() (split.Splitter[rune], error) {
	if !s.HasFunc(SplitFunc) {
		return nil, fmt.Errorf("%w: %s", ErrNoFunction, SplitFunc)
	}
	return func(rest segment.Segment[rune]) (int, error) {
		text, err := s.text(rest)
		if err != nil {
			return 0, err
		}
		ret, err := s.Call(SplitFunc, lua.LString(text), lua.LNumber(rest.Offset()))
		if err != nil {
			return 0, err
		}
		if len(ret) == 0 {
			return 0, fmt.Errorf("%w: %s returned nothing", ErrBadReturn, SplitFunc)
		}
		n, ok := ret[0].(lua.LNumber)
		if !ok {
			return 0, fmt.Errorf("%w: %s returned %s, want number", ErrBadReturn, SplitFunc, ret[0].Type())
		}
		return int(n), nil
	}, nil
}

// Factionalizer returns a faction.Factionalizer that calls the script's
// factionalize(text, offset) function. The function returns a faction name and
// either a length to take or nil to consume one element and merge it with a
// preceding run of the same faction.
func (s *State) Factionalizer() (faction.Factionalizer[rune, string], error) {
	if !s.HasFunc(FactionalizeFunc) {
		return nil, fmt.Errorf("%w: %s", ErrNoFunction, FactionalizeFunc)
	}
	return func(rest segment.Segment[rune]) (string, faction.Consumption, error) {
		text, err := s.text(rest)
		if err != nil {
			return "", faction.Consumption{}, err
		}
		ret, err := s.Call(FactionalizeFunc, lua.LString(text), lua.LNumber(rest.Offset()))
		if err != nil {
			return "", faction.Consumption{}, err
		}
		if len(ret) == 0 {
			return "", faction.Consumption{}, fmt.Errorf("%w: %s returned nothing", ErrBadReturn, FactionalizeFunc)
		}
		name, ok := ret[0].(lua.LString)
		if !ok {
			return "", faction.Consumption{}, fmt.Errorf("%w: %s returned faction of type %s",
				ErrBadReturn, FactionalizeFunc, ret[0].Type())
		}
		if len(ret) < 2 || ret[1] == lua.LNil {
			return string(name), faction.Merge(), nil
		}
		n, ok := ret[1].(lua.LNumber)
		if !ok {
			return "", faction.Consumption{}, fmt.Errorf("%w: %s returned length of type %s",
				ErrBadReturn, FactionalizeFunc, ret[1].Type())
		}
		return string(name), faction.Take(int(n)), nil
	}, nil
}

// text renders at most s.window runes of rest as a string.
func (s *State) text(rest segment.Segment[rune]) (string, error) {
	if s.window > 0 {
		rest = rest.Truncate(s.window)
	}
	runes, err := rest.Items()
	if err != nil {
		return "", err
	}
	return string(runes), nil
}

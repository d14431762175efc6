package game

import "fmt"

type Mode int

const (
	Competitive Mode = iota
	Cooperative
)

func (m Mode) String() string {
	switch m {
	case Competitive:
		return "competitive"
	case Cooperative:
		return "cooperative"
	default:
		return "unknown"
	}
}

// ParseMode maps the wire name of a game mode. An empty name selects
// Competitive.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "competitive":
		return Competitive, nil
	case "cooperative":
		return Cooperative, nil
	default:
		return Competitive, fmt.Errorf("unknown game mode %q", s)
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

type Status int

const (
	Waiting Status = iota
	Playing
	Finished
)

func (s Status) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "waiting":
		*s = Waiting
	case "playing":
		*s = Playing
	case "finished":
		*s = Finished
	default:
		return fmt.Errorf("unknown room status %q", b)
	}
	return nil
}

// coopState carries the fields that only exist for cooperative rooms.
type coopState struct {
	goal           Page
	totalTurnsLeft int
	maxTotalTurns  int
}

// Package daemon wraps the simulation core behind a mutex so a single
// long-lived process can serialize tick calls, broadcast their events to
// subscribers, and expose an HTTP API for status, metrics, and ship
// commands.
package daemon

import (
	"sort"
	"sync"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/autopolicy"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/engine"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	inframetrics "github.com/VioletSpaceCadet/space-simulation-sub001/internal/infra/metrics"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/metrics"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simrng"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

// SharedSim is one GameState shared across the tick loop and the HTTP
// handlers. Every access goes through mu, matching the original's rule
// that tick calls are serialized and their events broadcast only after
// the call returns.
type SharedSim struct {
	mu      sync.Mutex
	state   simstate.GameState
	content *content.GameContent
	rng     simrng.Rng
	policy  autopolicy.CommandSource
	pending []events.CommandEnvelope

	subsMu sync.Mutex
	subs   map[chan []events.Envelope]struct{}
}

// NewSharedSim builds a fresh initial state from c and seed, with
// autopolicy.Basic driving idle ships.
func NewSharedSim(c *content.GameContent, seed uint64) *SharedSim {
	rng := simrng.New(seed)
	state := engine.BuildInitialState(c, seed, rng)
	return &SharedSim{
		state:   state,
		content: c,
		rng:     rng,
		policy:  autopolicy.Basic{HomeStation: homeStationID(&state)},
		subs:    make(map[chan []events.Envelope]struct{}),
	}
}

func homeStationID(state *simstate.GameState) simid.StationID {
	var ids []simid.StationID
	for id := range state.Stations {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// Tick advances the simulation by one tick, applying any commands queued
// through Enqueue whose ExecuteAtTick has arrived plus whatever the
// autopolicy decides for still-idle ships, then broadcasts the resulting
// events to subscribers.
func (s *SharedSim) Tick() []events.Envelope {
	s.mu.Lock()
	out := s.tickLocked()
	s.mu.Unlock()

	s.broadcast(out)
	return out
}

func (s *SharedSim) tickLocked() []events.Envelope {
	tick := s.state.Meta.Tick

	var due []events.CommandEnvelope
	var remaining []events.CommandEnvelope
	for _, cmd := range s.pending {
		if cmd.ExecuteAtTick <= tick {
			cmd.ExecuteAtTick = tick
			due = append(due, cmd)
		} else {
			remaining = append(remaining, cmd)
		}
	}
	s.pending = remaining

	if s.policy != nil {
		due = append(due, s.policy.Decide(&s.state, s.content, s.rng)...)
	}

	return engine.Tick(&s.state, due, s.content, s.rng, events.LevelNormal)
}

// Enqueue schedules cmd for application at its ExecuteAtTick (immediately
// if it has already passed, at the next Tick call).
func (s *SharedSim) Enqueue(cmd events.CommandEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Ships[cmd.Command.ShipID]; !ok {
		return errUnknownShip(cmd.Command.ShipID)
	}
	s.pending = append(s.pending, cmd)
	return nil
}

// Snapshot computes a metrics snapshot over the current state.
func (s *SharedSim) Snapshot() metrics.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return metrics.Compute(&s.state, s.content)
}

// StatusView is the small, stable summary returned by GET /status.
type StatusView struct {
	Tick      uint64 `json:"tick"`
	ShipCount int    `json:"ship_count"`
	StationCount int `json:"station_count"`
}

// Status returns the current tick and fleet size.
func (s *SharedSim) Status() StatusView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatusView{
		Tick:         s.state.Meta.Tick,
		ShipCount:    len(s.state.Ships),
		StationCount: len(s.state.Stations),
	}
}

// Subscribe registers ch to receive every future Tick's events. The
// caller must call Unsubscribe when done.
func (s *SharedSim) Subscribe(ch chan []events.Envelope) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	s.subs[ch] = struct{}{}
	inframetrics.Subscribers.Set(float64(len(s.subs)))
}

// Unsubscribe removes ch from the broadcast set.
func (s *SharedSim) Unsubscribe(ch chan []events.Envelope) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	delete(s.subs, ch)
	inframetrics.Subscribers.Set(float64(len(s.subs)))
}

// broadcast fans out to every subscriber without blocking the tick loop
// on a slow reader.
func (s *SharedSim) broadcast(out []events.Envelope) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- out:
		default:
		}
	}
}

type errUnknownShip simid.ShipID

func (e errUnknownShip) Error() string {
	return "unknown ship: " + string(e)
}

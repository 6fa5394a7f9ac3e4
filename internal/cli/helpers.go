package cli

import (
	"sort"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

// homeStationID returns the lexically-first station id in state, the
// deposit target autopolicy.Basic hauls ore back to.
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

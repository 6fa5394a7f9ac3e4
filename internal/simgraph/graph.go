// Package simgraph implements shortest-hop-count pathfinding over the
// solar system's undirected node graph.
package simgraph

import (
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
)

// ShortestHopCount returns the number of hops on the shortest undirected
// path between from and to, or ok=false if no path exists. Returns (0,
// true) when from == to.
func ShortestHopCount(from, to simid.NodeID, solarSystem *content.SolarSystemDef) (uint64, bool) {
	if from == to {
		return 0, true
	}

	type frame struct {
		node simid.NodeID
		dist uint64
	}

	visited := map[simid.NodeID]bool{from: true}
	queue := []frame{{node: from, dist: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, edge := range solarSystem.Edges {
			var neighbor simid.NodeID
			var has bool
			if edge[0] == cur.node {
				neighbor, has = edge[1], true
			} else if edge[1] == cur.node {
				neighbor, has = edge[0], true
			}
			if !has {
				continue
			}
			if neighbor == to {
				return cur.dist + 1, true
			}
			if !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, frame{node: neighbor, dist: cur.dist + 1})
			}
		}
	}
	return 0, false
}

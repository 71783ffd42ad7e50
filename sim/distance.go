package sim

type bfsEntry struct {
	id  string
	hop int
}

// HopDistances performs a forward BFS from sourceID and returns the shortest hop
// count to every reachable component. The source maps to 0; unreachable ids are absent.
func HopDistances(g *Graph, sourceID string) map[string]int {
	distances := make(map[string]int)
	if _, ok := g.Component(sourceID); !ok {
		return distances
	}
	distances[sourceID] = 0
	queue := []bfsEntry{{id: sourceID, hop: 0}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, e := range g.Downstream(current.id) {
			if _, seen := distances[e.To]; seen {
				continue
			}
			distances[e.To] = current.hop + 1
			queue = append(queue, bfsEntry{id: e.To, hop: current.hop + 1})
		}
	}
	return distances
}

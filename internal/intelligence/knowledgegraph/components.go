package knowledgegraph

import (
	"sort"
)

// ConnectedComponents returns the node ids of each connected component,
// largest first (ties by smallest member id). Members are sorted. Traversal
// uses an explicit stack, so depth is bounded by heap, not call stack.
func ConnectedComponents(g *Graph) [][]string {
	adj := g.adjacency()
	visited := make(map[string]bool, len(g.Nodes))
	var comps [][]string

	for _, n := range g.Nodes {
		if visited[n.ID] {
			continue
		}
		var comp []string
		stack := []string{n.ID}
		visited[n.ID] = true
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, id)
			for _, next := range adj[id] {
				if !visited[next] {
					visited[next] = true
					stack = append(stack, next)
				}
			}
		}
		sort.Strings(comp)
		comps = append(comps, comp)
	}

	sort.SliceStable(comps, func(i, j int) bool {
		if len(comps[i]) != len(comps[j]) {
			return len(comps[i]) > len(comps[j])
		}
		return comps[i][0] < comps[j][0]
	})
	return comps
}

//Personal.AI order the ending

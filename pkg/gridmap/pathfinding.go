// pkg/gridmap/pathfinding.go
package gridmap

import (
	"container/heap"
)

// AStar finds the shortest walkable route from start to goal, inclusive of
// both endpoints. All edges cost 1 and the heuristic is Manhattan distance.
// Returns nil when no route exists.
func AStar(start, goal Cell, g *Grid) []Cell {
	pq := &priorityQueue{}
	heap.Init(pq)
	pq.push(&node{cell: start, priority: start.ManhattanDistance(goal)})
	costSoFar := map[Cell]int{start: 0}
	for pq.Len() > 0 {
		current := heap.Pop(pq).(*node)
		if current.cell == goal {
			return reconstructPath(current)
		}
		for _, neighbor := range current.cell.Neighbors() {
			if !g.IsWalkable(neighbor.X, neighbor.Y) {
				continue
			}
			newCost := costSoFar[current.cell] + 1
			if old, exists := costSoFar[neighbor]; !exists || newCost < old {
				costSoFar[neighbor] = newCost
				pq.push(&node{
					cell:     neighbor,
					priority: newCost + neighbor.ManhattanDistance(goal),
					parent:   current,
				})
			}
		}
	}
	return nil // no route
}

// RouteToObjective computes a route from start to every objective gate and
// returns the shortest one. Returns nil when no gate is reachable.
func RouteToObjective(start Cell, g *Grid) []Cell {
	var best []Cell
	for _, gate := range g.ObjectiveGates {
		path := AStar(start, gate, g)
		if path == nil {
			continue
		}
		if best == nil || len(path) < len(best) {
			best = path
		}
	}
	return best
}

type node struct {
	cell     Cell
	priority int
	seq      int // insertion order; keeps equal-priority pops first-found
	parent   *node
}

type priorityQueue struct {
	nodes   []*node
	nextSeq int
}

func (pq *priorityQueue) push(n *node) {
	n.seq = pq.nextSeq
	pq.nextSeq++
	heap.Push(pq, n)
}

func (pq priorityQueue) Len() int { return len(pq.nodes) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq.nodes[i].priority != pq.nodes[j].priority {
		return pq.nodes[i].priority < pq.nodes[j].priority
	}
	return pq.nodes[i].seq < pq.nodes[j].seq
}
func (pq priorityQueue) Swap(i, j int) { pq.nodes[i], pq.nodes[j] = pq.nodes[j], pq.nodes[i] }
func (pq *priorityQueue) Push(x interface{}) {
	pq.nodes = append(pq.nodes, x.(*node))
}
func (pq *priorityQueue) Pop() interface{} {
	old := pq.nodes
	n := len(old)
	item := old[n-1]
	pq.nodes = old[0 : n-1]
	return item
}

func reconstructPath(n *node) []Cell {
	path := []Cell{}
	for n != nil {
		path = append([]Cell{n.cell}, path...)
		n = n.parent
	}
	return path
}

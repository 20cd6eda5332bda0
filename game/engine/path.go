package engine

import "fmt"

// pathState keys the memo of failed search states.
type pathState struct {
	pos       Position
	remaining int
}

// ExactPath reconstructs one concrete walk of exactly steps orthogonal unit
// moves from from to to, for execution and animation. The returned sequence
// has length steps, starts after from, and never repeats a cell.
//
// Constraints mirror the reachability solver's blocking rule: burned cells
// are never enterable and occupied cells are never enterable, except that
// the walk may pass back through its own start cell, conceptually vacated
// when the mover departs. The start joins the no-revisit set once entered,
// so it appears at most once in the returned sequence. The final cell must
// be the unoccupied destination.
//
// Failed (position, remaining) states are memoized to bound branching on
// larger grids, but only when the failure did not depend on the current
// path's visited set; a subtree pruned by its own path may succeed on
// another path, and caching that failure would break the guarantee that a
// solver-reported destination is always reconstructable.
func (gs *GameState) ExactPath(from, to Position, steps int) ([]Position, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: non-positive step count %d", ErrNoPathFound, steps)
	}
	if !gs.InBounds(from) || !gs.InBounds(to) {
		return nil, fmt.Errorf("%w: endpoints off board", ErrNoPathFound)
	}
	if from == to {
		return nil, fmt.Errorf("%w: destination equals start", ErrNoPathFound)
	}

	visited := make(map[Position]bool)
	failed := make(map[pathState]bool)
	path := make([]Position, 0, steps)

	var dfs func(pos Position, remaining int) (found, pathPruned bool)
	dfs = func(pos Position, remaining int) (bool, bool) {
		if remaining == 0 {
			return pos == to, false
		}
		pruned := false
		var buf []Position
		for _, nb := range gs.neighbors(pos, buf) {
			if nb == from {
				// The start cell is occupied by the mover but vacated
				// for the duration of the walk.
				if gs.Board[nb.Row][nb.Col].Invalid {
					continue
				}
			} else if !gs.traversable(nb) {
				continue
			}
			if visited[nb] {
				pruned = true
				continue
			}
			if failed[pathState{nb, remaining - 1}] {
				continue
			}
			visited[nb] = true
			path = append(path, nb)
			found, childPruned := dfs(nb, remaining-1)
			if found {
				return true, false
			}
			delete(visited, nb)
			path = path[:len(path)-1]
			if childPruned {
				pruned = true
			} else {
				failed[pathState{nb, remaining - 1}] = true
			}
		}
		return false, pruned
	}

	if found, _ := dfs(from, steps); !found {
		return nil, fmt.Errorf("%w: no %d-step walk from (%d,%d) to (%d,%d)",
			ErrNoPathFound, steps, from.Row, from.Col, to.Row, to.Col)
	}

	result := make([]Position, len(path))
	copy(result, path)
	return result, nil
}

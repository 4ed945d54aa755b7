package soundstage

// group is a named tag with a set of parent groups; a sound/sequence/
// sub-track is "in" group G iff G is in its own group set or G is an
// ancestor (transitively) of any group in that set (§3).
type group struct {
	id      GroupID
	parents map[GroupID]struct{}
}

// groupRegistry is the audio-thread registry of groups, fixed capacity,
// reject-on-full.
type groupRegistry struct {
	entries *vecMap[GroupID, *group]
}

func newGroupRegistry(capacity int) *groupRegistry {
	return &groupRegistry{entries: newVecMap[GroupID, *group](capacity)}
}

func (r *groupRegistry) add(id GroupID, parents []GroupID) bool {
	parentSet := make(map[GroupID]struct{}, len(parents))
	for _, p := range parents {
		parentSet[p] = struct{}{}
	}
	return r.entries.Insert(id, &group{id: id, parents: parentSet})
}

func (r *groupRegistry) remove(id GroupID) bool {
	_, ok := r.entries.Remove(id)
	return ok
}

// isAncestor reports whether target is an ancestor of start, transitively,
// walking start's parent sets. A cycle in the parent graph cannot make
// this loop forever: each group is visited at most once.
func (r *groupRegistry) isAncestor(target, start GroupID) bool {
	visited := map[GroupID]struct{}{start: {}}
	frontier := []GroupID{start}
	for len(frontier) > 0 {
		g, ok := r.entries.Get(frontier[0])
		frontier = frontier[1:]
		if !ok {
			continue
		}
		for parent := range g.parents {
			if parent == target {
				return true
			}
			if _, seen := visited[parent]; seen {
				continue
			}
			visited[parent] = struct{}{}
			frontier = append(frontier, parent)
		}
	}
	return false
}

package repair

// RemoveUnconnected drops every facet whose connectivity degree is
// still 0 after both matchers: such a facet cannot participate in any
// surface and is treated as noise. The facet array is compacted and the
// neighbor table invalidated, so adjacency must be rebuilt before any
// later pass reads it. Returns the number of facets removed.
func (s *Service) RemoveUnconnected() (int, error) {
	if err := s.store.Fault(); err != nil {
		return 0, err
	}
	st := s.store

	keep := make([]bool, len(st.Facets))
	removed := 0
	for i := range st.Neighbors {
		keep[i] = st.Neighbors[i].Degree() > 0
		if !keep[i] {
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}

	st.Compact(keep)
	st.ComputeStats()
	return removed, nil
}

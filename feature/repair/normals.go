package repair

// normalTolerance bounds how far a stored normal may deviate per axis
// before it counts as fixed rather than merely re-normalized.
const normalTolerance = 1e-3

// FixNormalValues recomputes every facet's normal from its vertex order
// and overwrites the stored value. Normals that deviated beyond the
// tolerance are counted as fixed.
func (s *Service) FixNormalValues() error {
	if err := s.store.Fault(); err != nil {
		return err
	}
	st := s.store

	fixed := 0
	for i := range st.Facets {
		want := st.Facets[i].ComputedNormal()
		if !st.Facets[i].Normal.NearlyEqual(want, normalTolerance) {
			fixed++
		}
		st.Facets[i].Normal = want
	}
	st.Stats.NormalsFixed += fixed
	return nil
}

package store

// Networks returns a copy of all configured networks
func (s *Session) Networks() ([]Network, error) {
	if err := s.ensureUnlocked(); err != nil {
		return nil, err
	}
	out := make([]Network, len(s.doc.Networks))
	copy(out, s.doc.Networks)
	return out, nil
}

// AddNetwork appends a new network. Ids are immutable and must be
// unique.
func (s *Session) AddNetwork(n Network) error {
	if err := s.ensureUnlocked(); err != nil {
		return err
	}
	if s.doc.Network(n.ID) != nil {
		return ErrNetworkAlreadyExists
	}
	s.doc.Networks = append(s.doc.Networks, n)
	return s.save()
}

// RemoveNetwork deletes a network by id. The two built-in networks
// cannot be deleted. Removing the active network resets the pointer to
// the primary built-in. Removing an unknown id is a silent no-op.
func (s *Session) RemoveNetwork(id string) error {
	if err := s.ensureUnlocked(); err != nil {
		return err
	}
	if isBuiltinNetwork(id) {
		return ErrCannotDeleteDefaultNetwork
	}

	for i := range s.doc.Networks {
		if s.doc.Networks[i].ID == id {
			s.doc.Networks = append(s.doc.Networks[:i], s.doc.Networks[i+1:]...)
			s.doc.repairActive()
			return s.save()
		}
	}
	return nil
}

package store

import "strings"

// AddToken starts tracking a token. The (address, chainId) pair is
// unique, with the address compared case-insensitively.
func (s *Session) AddToken(t Token) error {
	if err := s.ensureUnlocked(); err != nil {
		return err
	}
	if s.doc.findToken(t.Address, t.ChainID) != nil {
		return ErrTokenAlreadyExists
	}
	s.doc.Tokens = append(s.doc.Tokens, t)
	return s.save()
}

// RemoveToken stops tracking a token. Removing a token that was never
// tracked is a silent no-op.
func (s *Session) RemoveToken(address string, chainID uint64) error {
	if err := s.ensureUnlocked(); err != nil {
		return err
	}
	for i := range s.doc.Tokens {
		if s.doc.Tokens[i].ChainID == chainID &&
			strings.EqualFold(s.doc.Tokens[i].Address, address) {
			s.doc.Tokens = append(s.doc.Tokens[:i], s.doc.Tokens[i+1:]...)
			return s.save()
		}
	}
	return nil
}

// TokensForChain returns the tracked tokens for one chain
func (s *Session) TokensForChain(chainID uint64) ([]Token, error) {
	if err := s.ensureUnlocked(); err != nil {
		return nil, err
	}
	out := make([]Token, 0)
	for _, t := range s.doc.Tokens {
		if t.ChainID == chainID {
			out = append(out, t)
		}
	}
	return out, nil
}

package core

// Transformer derives a new snapshot from s. Implementations must not modify s.
type Transformer interface {
	Transform(s *Snapshot) (*Snapshot, error)
}

// Chain applies transformers in order, stopping at the first error.
func Chain(s *Snapshot, transformers ...Transformer) (*Snapshot, error) {
	for _, tr := range transformers {
		next, err := tr.Transform(s)
		if err != nil {
			return nil, err
		}
		s = next
	}
	return s, nil
}

package agui

// Verify wraps s so that each event is field-validated and then checked by v
// before it is returned. The first failure ends the stream: Next returns the
// error and never forwards the offending event.
func Verify(s Stream, v *SequenceValidator) Stream {
	return &verifyStream{src: s, v: v}
}

// Check normalizes s and verifies the result with a fresh SequenceValidator.
func Check(s Stream) Stream {
	return Verify(Normalize(s), NewSequenceValidator())
}

type verifyStream struct {
	src Stream
	v   *SequenceValidator
	err error
}

func (s *verifyStream) Next() (Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	e, err := s.src.Next()
	if err != nil {
		s.err = err
		return nil, err
	}
	if err := e.Validate(); err != nil {
		s.err = err
		return nil, err
	}
	if err := s.v.Validate(e); err != nil {
		s.err = err
		return nil, err
	}
	return e, nil
}

func (s *verifyStream) Close() error {
	if s.err == nil {
		s.err = ErrStreamClosed
	}
	return s.src.Close()
}

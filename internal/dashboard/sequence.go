package dashboard

import "context"

type fallbackSequence struct {
	primary  Sequence
	fallback MemorySequence
	onErr    func(error)
}

// WithFallback wraps primary so that a failing primary never blocks a load;
// a process-local counter is used instead and onErr is told why.
func WithFallback(primary Sequence, onErr func(error)) Sequence {
	return &fallbackSequence{primary: primary, onErr: onErr}
}

func (f *fallbackSequence) Next(ctx context.Context) (uint64, error) {
	gen, err := f.primary.Next(ctx)
	if err == nil {
		return gen, nil
	}
	if f.onErr != nil {
		f.onErr(err)
	}
	return f.fallback.Next(ctx)
}

package settings

import "context"

type runKey struct{}

// IntoContext returns a copy of ctx carrying r.
func IntoContext(ctx context.Context, r *Run) context.Context {
	return context.WithValue(ctx, runKey{}, r)
}

// FromContext returns the Run stored by IntoContext. A nil *Run counts as
// missing.
func FromContext(ctx context.Context) (*Run, bool) {
	r, ok := ctx.Value(runKey{}).(*Run)
	return r, ok && r != nil
}

// RunFromContext is FromContext with NewCliParams as the fallback.
func RunFromContext(ctx context.Context) *Run {
	if r, ok := FromContext(ctx); ok {
		return r
	}
	return NewCliParams()
}

package estimator

type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidProfile is returned by Finalize when the household size cannot
// serve as a per-capita divisor.
var ErrInvalidProfile = constError("invalid profile")

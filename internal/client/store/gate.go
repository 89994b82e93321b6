package store

type Gate int

const (
	GateAllow Gate = iota
	GateRedirectLogin
)

// CanEnter decides access to authenticated-only views from the mirrored
// auth state alone. While the user is still loading, the view is allowed.
func CanEnter(a AuthState) Gate {
	if !a.IsAuthenticated && !a.Loading {
		return GateRedirectLogin
	}
	return GateAllow
}

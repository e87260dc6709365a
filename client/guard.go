package client

// SessionState is what the guard needs to know about the current
// session.
type SessionState struct {
	Loading       bool
	Authenticated bool
}

// Decision is the outcome of a navigation check.
type Decision struct {
	Pending    bool
	Allow      bool
	RedirectTo string
}

// Guard decides once per navigation whether a protected view renders.
// While the session is still resolving the decision is pending;
// unauthenticated sessions redirect to the login route.
func Guard(s SessionState) Decision {
	if s.Loading {
		return Decision{Pending: true}
	}
	if s.Authenticated {
		return Decision{Allow: true}
	}
	return Decision{RedirectTo: "/login"}
}

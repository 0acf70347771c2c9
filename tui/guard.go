package tui

import "github.com/amirsalarabedini/LinguaTask/session"

type guardDecision int

const (
	// guardAllow renders the requested view.
	guardAllow guardDecision = iota
	// guardWait renders a neutral placeholder until the session resolves.
	guardWait
	// guardRedirect sends the user to the login view.
	guardRedirect
)

// protected reports whether a route requires a session.
func protected(r route) bool {
	return r != routeLogin && r != routeRegister
}

// guardRoute decides whether a route may render for the given session
// snapshot. It is a pure function of its inputs and never reveals
// protected content while the session is still resolving.
func guardRoute(r route, snap session.Snapshot) guardDecision {
	if !protected(r) {
		return guardAllow
	}
	if snap.Loading {
		return guardWait
	}
	if !snap.LoggedIn() {
		return guardRedirect
	}
	return guardAllow
}

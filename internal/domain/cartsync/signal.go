package cartsync

import "github.com/google/uuid"

// Signal is the auth session as observed on one request.
type Signal struct {
	LoggedIn bool
	UserID   uuid.UUID
}

func Anonymous() Signal {
	return Signal{}
}

func LoggedIn(userID uuid.UUID) Signal {
	if userID == uuid.Nil {
		return Signal{}
	}
	return Signal{LoggedIn: true, UserID: userID}
}

type Edge int

const (
	EdgeNone Edge = iota
	EdgeLogin
	EdgeLogout
	// EdgeSwitch is a different user logging in without an observed logout.
	EdgeSwitch
)

func DetectEdge(prev, next Signal) Edge {
	switch {
	case !prev.LoggedIn && next.LoggedIn:
		return EdgeLogin
	case prev.LoggedIn && !next.LoggedIn:
		return EdgeLogout
	case prev.LoggedIn && next.LoggedIn && prev.UserID != next.UserID:
		return EdgeSwitch
	}
	return EdgeNone
}

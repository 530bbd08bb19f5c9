// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package sessions

import (
	"context"

	"github.com/rvales/mediary/internal/search"
)

// # Session Data Access

// Repository defines the data access contract for sessions.
type Repository interface {

	/*
		Create persists an authentication attempt.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, session *Session) error

	/*
		FindActive returns the session only if it belongs to the user,
		was successful, and has not expired or been ended.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - sessionID: string

		Returns:
		  - *Session: Hydrated active session
		  - error: dberr.ErrNotFound when no active row matches
	*/
	FindActive(context context.Context, userID, sessionID string) (*Session, error)

	/*
		NextNumber returns the next per-user attempt sequence number,
		starting at 1 for a user with no prior attempts.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - int: Next sequence number
		  - error: Database retrieval failures
	*/
	NextNumber(context context.Context, userID string) (int, error)

	/*
		EndSessions clears the expiry of active sessions, revoking them.
		A nil sessionID ends every active session of the user.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - sessionID: *string

		Returns:
		  - []string: IDs of the sessions that were ended
		  - error: Persistence failures
	*/
	EndSessions(context context.Context, userID string, sessionID *string) ([]string, error)

	// Listing capability for the admin surface.
	search.Repository[Session]
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import "github.com/danielhkuo/pollhall/models"

// AuthorizeOwner gates poll mutation and deletion to the poll's creator.
// In ownerless deployments the check is bypassed entirely and any caller may
// mutate. Never mutates state itself.
func AuthorizeOwner(poll models.Poll, actor models.Identity, ownerless bool) error {
	if ownerless {
		return nil
	}
	if !actor.Authenticated() || poll.OwnerID == "" || poll.OwnerID != actor.UserID {
		return ErrNotPollOwner
	}
	return nil
}

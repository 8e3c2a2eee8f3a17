// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements the vote submission engine and the poll ownership
guard.

# Vote Submission

Engine.SubmitVote validates a submission, consults the vote ledger, and
applies the counter delta - all inside one database transaction:

	engine := voting.NewEngine(db, cfg.VotePolicy)
	err := engine.SubmitVote(pollID, optionIndex, voter)

A submission either fully commits (ledger entry plus counter delta) or
leaves no trace. The ledger is authoritative for "who voted for what now";
the per-option counters are a materialized aggregate kept in lockstep so
poll reads never pay an aggregation cost.

# Identity Policies

Two mutually exclusive policies, chosen at startup:

  - PolicyDualKey (default): a vote is rejected if the user id OR the
    network key has already voted on the poll. No vote-changing.
  - PolicyUserKey: votes are keyed by user id only. Re-submitting the same
    option is a no-op; a different option moves the vote (old option -1,
    new option +1, ledger entry updated). Anonymous voters are rejected:
    allowing changes keyed by a shared network address would let one voter
    overwrite another's vote.

# Ownership Guard

AuthorizeOwner gates poll update and deletion to the creator:

	if err := voting.AuthorizeOwner(poll, actor, cfg.Ownerless); err != nil {
		// ErrNotPollOwner
	}

Ownerless deployments bypass the check via configuration, not a code fork.

# Errors

  - ErrInvalidOptionIndex: option index outside [0, len(options))
  - ErrNotPollOwner: actor is not the poll's creator
  - ErrVoterRequired: no usable voter identity for the active policy

Duplicate votes surface as store.ErrDuplicateVote, a lost race between two
changes by the same voter as store.ErrVoteConflict, poll absence as
store.ErrPollNotFound.
*/
package voting

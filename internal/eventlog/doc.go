// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

/*
Package eventlog persists recommender interactions in an append-only
BadgerDB log.

The interaction matrix lives in memory; at startup the server replays the
log to rebuild it. Keys are

	interaction:<zero-padded unix nanos>:<uuid>

so a prefix scan returns events in the order they were appended. Values are
the JSON-encoded recommend.Interaction.

	log, err := eventlog.Open(eventlog.Config{Path: "/data/events"})
	if err != nil {
	    return err
	}
	defer log.Close()

	var events []recommend.Interaction
	err = log.Replay(ctx, func(in recommend.Interaction) error {
	    events = append(events, in)
	    return nil
	})
	recommender.Rebuild(events)

InMemory mode keeps the database in RAM and is used by tests.
*/
package eventlog

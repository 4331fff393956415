// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

/*
Package feed carries interaction events from the API to the recommender over
Watermill.

The bus is an in-process GoChannel pub/sub. Publisher encodes a
recommend.Interaction as JSON and publishes it with the interaction ID as the
message UUID. Consumer subscribes to the topic and, for every message:

  - acks and drops payloads that do not decode or fail validation,
  - acks message IDs it already processed within the dedupe window,
  - appends the interaction to the event log (when configured) and records
    it in the recommender, acking on success,
  - nacks after a short delay when the append fails, so the bus redelivers,
    and acks with an error log once MaxAttempts is reached.

Consumer.Serve blocks until its context ends or the bus closes, so it runs
as a supervised service.
*/
package feed

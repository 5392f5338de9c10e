/*
Package parley is an intent resolution and session state engine for
voice-driven conversational tools. It turns free-form utterances into
deterministic state transitions over two concrete surfaces: a game master
walking a branching narrative world, and a shopping assistant managing a
catalog, cart and order lifecycle.

# Concept

Every response is speakable text built for a voice channel: short lines,
explicit options, and a fixed closing prompt so the conversation never
stalls. Resolution is a cascade of heuristics ordered strongest-first; an
utterance either advances the session, bounces back with a corrective
re-listing, or (at a narrative dead end) soft-resets to the start.

The engines are stateless. All mutable state lives in the Session, owned by
the session.Manager, which serializes concurrent access per session and
persists through a pluggable store (in-memory or Redis).

# Usage

	package main

	import (
		"fmt"
		"log"

		"parley"
		"parley/pkg/domain"
	)

	func main() {
		app, err := parley.New()
		if err != nil {
			log.Fatal(err)
		}

		sess := domain.NewSession(app.GameMaster.World().Start())
		fmt.Println(app.GameMaster.Start(sess, "Mira"))

		out := app.GameMaster.Apply(sess, "inspect the box")
		fmt.Println(out.Text)
	}

Hosts that need a transport instead of an embedded library can serve the
same engines over JSON HTTP or as MCP tools; see cmd/parley.
*/
package parley

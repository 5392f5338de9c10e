package domain

// OutcomeKind tags how an utterance was absorbed by the engine.
type OutcomeKind string

const (
	// OutcomeAdvanced means an action matched and the state moved forward.
	OutcomeAdvanced OutcomeKind = "advanced"
	// OutcomeUnresolved means no legal action matched; position is
	// unchanged and the same legal actions were re-presented.
	OutcomeUnresolved OutcomeKind = "unresolved"
	// OutcomeReset means a dead end forced the position back to the start
	// scene (a soft reset, not an error).
	OutcomeReset OutcomeKind = "reset"
)

// Outcome is the rendered result of applying one utterance: the kind of
// transition that happened and the single speakable text block to say.
type Outcome struct {
	Kind OutcomeKind `json:"kind"`
	Text string      `json:"text"`
}

package command

import "encoding/json"

// Envelope is the wire shape the agent translation service emits: the
// detected command plus its payload fields flattened alongside it, and the
// localized responses for the chat transcript.
type Envelope struct {
	Command    Kind
	Payload    map[string]any
	ResponseEN string
	ResponseVI string
}

// UnmarshalJSON splits the agent's flat object into command, responses and
// the remaining keys as payload.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["command"].(string); ok {
		e.Command = Kind(v)
	}
	if v, ok := raw["response_en"].(string); ok {
		e.ResponseEN = v
	}
	if v, ok := raw["response_vi"].(string); ok {
		e.ResponseVI = v
	}
	delete(raw, "command")
	delete(raw, "response_en")
	delete(raw, "response_vi")
	e.Payload = raw
	return nil
}

// MarshalJSON re-flattens the envelope for transport.
func (e Envelope) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Payload)+3)
	for k, v := range e.Payload {
		out[k] = v
	}
	out["command"] = string(e.Command)
	if e.ResponseEN != "" {
		out["response_en"] = e.ResponseEN
	}
	if e.ResponseVI != "" {
		out["response_vi"] = e.ResponseVI
	}
	return json.Marshal(out)
}

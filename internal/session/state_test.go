package session

import "testing"

func TestStateRoundTrip(t *testing.T) {
	for _, state := range States() {
		parsed, err := ParseState(state.String())
		if err != nil {
			t.Fatalf("ParseState(%q) returned error: %v", state, err)
		}
		if parsed != state {
			t.Errorf("round trip for %q produced %q", state, parsed)
		}
	}
}

func TestParseStateUnknown(t *testing.T) {
	for _, raw := range []string{"", "ACTIVE", "closed", "idle"} {
		if _, err := ParseState(raw); err == nil {
			t.Errorf("ParseState(%q) expected error, got nil", raw)
		}
	}
}

func TestStatesComplete(t *testing.T) {
	want := map[ConversationState]bool{
		StateActive:      false,
		StateInterrupted: false,
		StatePaused:      false,
		StateEnded:       false,
	}
	for _, s := range States() {
		seen, ok := want[s]
		if !ok {
			t.Fatalf("States() returned unexpected state %q", s)
		}
		if seen {
			t.Fatalf("States() returned %q twice", s)
		}
		want[s] = true
	}
	for s, seen := range want {
		if !seen {
			t.Errorf("States() missing %q", s)
		}
	}
}

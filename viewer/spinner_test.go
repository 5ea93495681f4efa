package viewer

import "testing"

func TestSpinnerGetFrameWraps(t *testing.T) {
	s := SpinnerLine
	if s.GetFrame(0) != s.GetFrame(s.FrameCount()) {
		t.Fatal("expected frame lookup to wrap around")
	}
	if (Spinner{}).GetFrame(3) != "" {
		t.Fatal("expected empty frame from an empty spinner")
	}
}

func TestRebuildSpinnerLifecycle(t *testing.T) {
	rs := NewRebuildSpinner(SpinnerDots)
	if rs.Active() || rs.View() != "" {
		t.Fatal("expected the spinner inactive and invisible initially")
	}

	if rs.Start() == nil {
		t.Fatal("expected Start to return the first tick command")
	}
	if !rs.Active() || rs.View() == "" {
		t.Fatal("expected the spinner visible after Start")
	}

	before := rs.View()
	_, cmd := rs.Update(spinnerTickMsg{})
	if cmd == nil {
		t.Fatal("expected the tick to reschedule itself while active")
	}
	if rs.View() == before {
		t.Fatal("expected the frame to advance on a tick")
	}

	rs.Stop()
	if rs.Active() || rs.View() != "" {
		t.Fatal("expected the spinner invisible after Stop")
	}
	if _, cmd := rs.Update(spinnerTickMsg{}); cmd != nil {
		t.Fatal("expected no reschedule while stopped")
	}
}

package system

import "testing"

func TestWorkersOverride(t *testing.T) {
	if got := Workers(3); got != 3 {
		t.Errorf("expected override of 3, got %d", got)
	}
}

func TestWorkersAutoAtLeastOne(t *testing.T) {
	if got := Workers(0); got < 1 {
		t.Errorf("expected at least one worker, got %d", got)
	}
}

// This file is part of dgncore.
//
// dgncore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dgncore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with dgncore.  If not, see <https://www.gnu.org/licenses/>.

package emulation_test

import (
	"testing"
	"time"

	"github.com/dgn32/dgncore/emulation"
	"github.com/dgn32/dgncore/test"
)

func TestNewGovernorStartsStopped(t *testing.T) {
	g := emulation.NewGovernor()
	test.ExpectEquality(t, g.State(), emulation.StateStopped)
}

func TestWaitBlocksUntilRunOrStep(t *testing.T) {
	g := emulation.NewGovernor()
	done := make(chan emulation.State, 1)
	go func() { done <- g.Wait() }()

	select {
	case <-done:
		t.Fatalf("Wait returned before any state change")
	case <-time.After(20 * time.Millisecond):
	}

	g.SetState(emulation.StateRunning)
	select {
	case s := <-done:
		test.ExpectEquality(t, s, emulation.StateRunning)
	case <-time.After(time.Second):
		t.Fatalf("Wait did not unblock after SetState(StateRunning)")
	}
}

// TestSingleStepIsConsumedByWait confirms a single-step request is a
// one-shot: after Wait observes it, the state reverts to StateStopped
// so the next instruction boundary blocks again.
func TestSingleStepIsConsumedByWait(t *testing.T) {
	g := emulation.NewGovernor()
	g.SetState(emulation.StateSingleStep)

	s := g.Wait()
	test.ExpectEquality(t, s, emulation.StateSingleStep)
	test.ExpectEquality(t, g.State(), emulation.StateStopped)

	done := make(chan emulation.State, 1)
	go func() { done <- g.Wait() }()
	select {
	case <-done:
		t.Fatalf("Wait returned again without a further SetState")
	case <-time.After(20 * time.Millisecond):
	}
	g.SetState(emulation.StateRunning)
	<-done
}

func TestRunningStateIsNotConsumed(t *testing.T) {
	g := emulation.NewGovernor()
	g.SetState(emulation.StateRunning)

	test.ExpectEquality(t, g.Wait(), emulation.StateRunning)
	test.ExpectEquality(t, g.State(), emulation.StateRunning)
	test.ExpectEquality(t, g.Wait(), emulation.StateRunning)
}

func TestStateStringer(t *testing.T) {
	test.ExpectEquality(t, emulation.StateStopped.String(), "stopped")
	test.ExpectEquality(t, emulation.StateSingleStep.String(), "single_step")
	test.ExpectEquality(t, emulation.StateRunning.String(), "running")
	test.ExpectEquality(t, emulation.State(99).String(), "unknown")
}

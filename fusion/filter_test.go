package fusion

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/skellen-games/gravwing/config"
)

func init() {
	config.MustInit("")
}

func TestGainFoldsSampleIn(t *testing.T) {
	f := NewFilter()
	f.Offer(Sample{Alpha: 10, Beta: -20, Gamma: 5})

	got := f.Update(0.016)
	k := f.q / (f.q + f.r)
	want := mgl32.Vec3{10, -20, 5}.Mul(k)
	for i := 0; i < 3; i++ {
		if math.Abs(float64(got.Pos[i]-want[i])) > 1e-5 {
			t.Errorf("axis %d: pos = %f, want %f", i, got.Pos[i], want[i])
		}
	}
}

func TestEstimateConvergesToHeldOrientation(t *testing.T) {
	f := NewFilter()
	for i := 0; i < 2000; i++ {
		f.Offer(Sample{Alpha: 30})
		f.Update(0.016)
	}
	if pos := f.State().Pos.X(); math.Abs(float64(pos)-30) > 0.5 {
		t.Errorf("estimate = %f, want ~30 after sustained samples", pos)
	}
}

func TestPendingSampleIsLastWriteWins(t *testing.T) {
	f := NewFilter()
	f.Offer(Sample{Alpha: 100})
	f.Offer(Sample{Alpha: 2}) // overwrites, the 100 is dropped

	f.Update(0.016)
	k := f.q / (f.q + f.r)
	if got := f.State().Pos.X(); math.Abs(float64(got-2*k)) > 1e-5 {
		t.Errorf("pos = %f, want %f from the latest sample only", got, 2*k)
	}
}

func TestSampleConsumedOnce(t *testing.T) {
	f := NewFilter()
	f.Offer(Sample{Alpha: 10})
	after := f.Update(0.016)

	// Velocity is zero, so with no new sample the estimate must hold.
	if next := f.Update(0.016); next.Pos != after.Pos {
		t.Errorf("consumed sample re-applied: %v -> %v", after.Pos, next.Pos)
	}
}

func TestNoSamplesLeavesEstimateFrozen(t *testing.T) {
	f := NewFilter()
	for i := 0; i < 100; i++ {
		f.Update(0.016)
	}
	if s := f.State(); s.Pos != (mgl32.Vec3{}) || s.Vel != (mgl32.Vec3{}) {
		t.Errorf("estimate drifted with no input: %+v", s)
	}
}

func TestVelocityIsNeverCorrected(t *testing.T) {
	f := NewFilter()
	for i := 0; i < 50; i++ {
		f.Offer(Sample{Alpha: 90, Beta: 45})
		f.Update(0.016)
	}
	if v := f.State().Vel; v != (mgl32.Vec3{}) {
		t.Errorf("correction leaked into the rate estimate: %v", v)
	}
}

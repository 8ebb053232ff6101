package circuit

import (
	"math"
	"testing"
)

func clickEnergy(c *Click, n int) (energy, peak float64) {
	for range n {
		v := c.ProcessSample()
		energy += v * v
		peak = math.Max(peak, math.Abs(v))
	}
	return energy, peak
}

func TestClickOnlyOnRetrigger(t *testing.T) {
	c, err := NewClick(44100)
	if err != nil {
		t.Fatalf("NewClick() error = %v", err)
	}

	c.Trigger(false, 0.8, 0.01)
	if c.Active() {
		t.Fatal("fresh note must not click")
	}
	if e, _ := clickEnergy(c, 64); e != 0 {
		t.Fatalf("fresh note click energy = %v, want 0", e)
	}

	c.Trigger(true, 0.8, 0.01)
	if !c.Active() {
		t.Fatal("retrigger must arm a click")
	}
	if e, _ := clickEnergy(c, 64); e == 0 {
		t.Fatal("retrigger produced no click")
	}
}

func TestClickScalesWithReleaseLevel(t *testing.T) {
	loud, _ := NewClick(44100)
	soft, _ := NewClick(44100)
	loud.Trigger(true, 0.9, 0.01)
	soft.Trigger(true, 0.2, 0.01)

	el, pl := clickEnergy(loud, 128)
	es, ps := clickEnergy(soft, 128)
	if el <= es || pl <= ps {
		t.Fatalf("loud click (%v, %v) should exceed soft click (%v, %v)", el, pl, es, ps)
	}
}

func TestClickQuietRetriggerAttenuated(t *testing.T) {
	c, _ := NewClick(44100)
	c.Trigger(true, 0.005, 0.01)
	// 0.005 * 0.5 * 0.3 = 0.00075 before filtering.
	if _, peak := clickEnergy(c, 64); peak > 0.00075 {
		t.Fatalf("quiet click peak = %v, want <= 0.00075", peak)
	}
}

func TestClickShortAndFinite(t *testing.T) {
	c, _ := NewClick(44100)
	c.Trigger(true, 1, 0.001)

	n := int(math.Ceil(ClickMaxDuration*44100)) + 2
	for range n {
		v := c.ProcessSample()
		if !isFinite(v) {
			t.Fatal("non-finite click sample")
		}
	}
	if c.Active() {
		t.Fatal("click still active after its maximum duration")
	}

	// Only the shaping filter tail remains, and it dies out.
	tail, _ := clickEnergy(c, 4410)
	if tail > 1e-3 {
		t.Fatalf("tail energy = %v", tail)
	}
	if v := c.ProcessSample(); v != 0 {
		t.Fatalf("click did not settle to exact zero: %v", v)
	}
}

func TestClickAmountZeroSilences(t *testing.T) {
	c, _ := NewClick(44100)
	c.SetAmount(0)
	c.Trigger(true, 1, 0.01)
	if e, _ := clickEnergy(c, 64); e != 0 {
		t.Fatalf("energy = %v, want 0", e)
	}
}

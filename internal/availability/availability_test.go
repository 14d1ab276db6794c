package availability

import (
	"math"
	"testing"
	"time"

	"github.com/julianstephens/meditracker/internal/models"
)

const cooldown = 6 * time.Hour

var t0 = time.UnixMilli(1718000000000)

func ptr(v int64) *int64 { return &v }

func TestStatusOfNeverTaken(t *testing.T) {
	for _, now := range []time.Time{time.UnixMilli(0), t0, t0.Add(100 * time.Hour)} {
		got := StatusOf(nil, now, cooldown)
		if !got.IsAvailable() || got.Remaining != 0 {
			t.Errorf("StatusOf(nil, %v) = %+v, want Available", now, got)
		}
	}
}

func TestStatusOf(t *testing.T) {
	last := ptr(t0.UnixMilli())

	tests := []struct {
		name          string
		elapsed       time.Duration
		wantStatus    models.Status
		wantRemaining time.Duration
	}{
		{"just taken", 0, models.StatusWaiting, cooldown},
		{"one second later", time.Second, models.StatusWaiting, cooldown - time.Second},
		{"five hours fifty-nine", 5*time.Hour + 59*time.Minute, models.StatusWaiting, time.Minute},
		{"one millisecond short", cooldown - time.Millisecond, models.StatusWaiting, time.Millisecond},
		{"exactly cooldown", cooldown, models.StatusAvailable, 0},
		{"long after", 30 * time.Hour, models.StatusAvailable, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusOf(last, t0.Add(tt.elapsed), cooldown)
			if got.Status != tt.wantStatus || got.Remaining != tt.wantRemaining {
				t.Errorf("StatusOf() = %+v, want {%s %v}", got, tt.wantStatus, tt.wantRemaining)
			}
		})
	}
}

func TestStatusOfIsMonotone(t *testing.T) {
	last := ptr(t0.UnixMilli())
	prev := StatusOf(last, t0, cooldown)
	flipped := false

	for step := time.Duration(0); step <= 8*time.Hour; step += 7 * time.Second {
		got := StatusOf(last, t0.Add(step), cooldown)
		if flipped && !got.IsAvailable() {
			t.Fatalf("status flapped back to waiting at +%v", step)
		}
		if got.IsAvailable() {
			flipped = true
			continue
		}
		if step > 0 && got.Remaining >= prev.Remaining {
			t.Fatalf("remaining did not decrease at +%v: %v -> %v", step, prev.Remaining, got.Remaining)
		}
		prev = got
	}
	if !flipped {
		t.Error("status never became available")
	}
}

func TestStatusOfFutureDose(t *testing.T) {
	last := ptr(t0.Add(time.Hour).UnixMilli())

	got := StatusOf(last, t0, cooldown)
	if got.Status != models.StatusWaiting || got.Remaining != cooldown+time.Hour {
		t.Fatalf("StatusOf() with a future dose = %+v, want waiting with %v", got, cooldown+time.Hour)
	}

	later := StatusOf(last, t0.Add(30*time.Minute), cooldown)
	if later.Remaining >= got.Remaining {
		t.Errorf("remaining did not decrease while now increased: %v -> %v", got.Remaining, later.Remaining)
	}
	if later.Remaining != cooldown+30*time.Minute {
		t.Errorf("Remaining = %v, want %v", later.Remaining, cooldown+30*time.Minute)
	}
}

func TestStatusOfExtremeTimestamps(t *testing.T) {
	tests := []struct {
		name          string
		last          int64
		wantStatus    models.Status
		wantRemaining time.Duration
	}{
		{"far past", -9000000000000000, models.StatusAvailable, 0},
		{"further past", -10000000000000000, models.StatusAvailable, 0},
		{"min int64", math.MinInt64, models.StatusAvailable, 0},
		{"far future saturates", math.MaxInt64, models.StatusWaiting, time.Duration(math.MaxInt64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusOf(ptr(tt.last), t0, cooldown)
			if got.Status != tt.wantStatus || got.Remaining != tt.wantRemaining {
				t.Errorf("StatusOf(%d) = %+v, want {%s %v}", tt.last, got, tt.wantStatus, tt.wantRemaining)
			}
		})
	}
}

func TestStatusOfCustomCooldown(t *testing.T) {
	last := ptr(t0.UnixMilli())
	got := StatusOf(last, t0.Add(30*time.Minute), time.Hour)
	if got.Status != models.StatusWaiting || got.Remaining != 30*time.Minute {
		t.Errorf("StatusOf() = %+v", got)
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0h 00m 00s"},
		{-5 * time.Second, "0h 00m 00s"},
		{999 * time.Millisecond, "0h 00m 00s"},
		{1999 * time.Millisecond, "0h 00m 01s"},
		{3661000 * time.Millisecond, "1h 01m 01s"},
		{6 * time.Hour, "6h 00m 00s"},
		{cooldown - time.Millisecond, "5h 59m 59s"},
		{time.Minute, "0h 01m 00s"},
		{27 * time.Hour, "27h 00m 00s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := FormatRemaining(tt.d)
			if got != tt.want {
				t.Errorf("FormatRemaining(%v) = %q, want %q", tt.d, got, tt.want)
			}
			if again := FormatRemaining(tt.d); again != got {
				t.Errorf("FormatRemaining(%v) is not stable: %q then %q", tt.d, got, again)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	l := models.RecordDose(models.NewLedger(), models.Doliprane, t0)

	entries := Evaluate(l, t0.Add(5*time.Hour+59*time.Minute), cooldown)
	if len(entries) != 2 {
		t.Fatalf("Evaluate() returned %d entries, want 2", len(entries))
	}

	dol, ibu := entries[0], entries[1]
	if dol.Medication != models.Doliprane || dol.Availability.Status != models.StatusWaiting || dol.Text != "0h 01m 00s" {
		t.Errorf("doliprane entry = %+v", dol)
	}
	if ibu.Medication != models.Ibuprofene || !ibu.Availability.IsAvailable() || ibu.Text != "0h 00m 00s" {
		t.Errorf("ibuprofene entry = %+v", ibu)
	}

	entries = Evaluate(l, t0.Add(6*time.Hour), cooldown)
	if !entries[0].Availability.IsAvailable() {
		t.Errorf("doliprane at t0+6h = %+v, want available", entries[0])
	}
}

func TestEvaluateAfterReset(t *testing.T) {
	l := models.RecordDose(models.NewLedger(), models.Ibuprofene, t0)
	l = models.ResetDose(l, models.Ibuprofene)

	for _, e := range Evaluate(l, t0.Add(time.Second), cooldown) {
		if !e.Availability.IsAvailable() {
			t.Errorf("%s = %+v after reset, want available", e.Medication, e.Availability)
		}
	}
}

package weather

import "sort"

// flashStep sets the overlay opacity (as a fraction of the strike intensity)
// at a fixed offset from the trigger.
type flashStep struct {
	at      float64 // seconds after trigger
	opacity float64
}

// flashPattern is 0.8 for 50ms, 0.3 for 100ms, 0.6 for 50ms, then dark.
var flashPattern = [...]flashStep{
	{at: 0, opacity: 0.8},
	{at: 0.05, opacity: 0.3},
	{at: 0.15, opacity: 0.6},
	{at: 0.2, opacity: 0},
}

// stepSlack absorbs float drift from summing frame times.
const stepSlack = 1e-9

type flash struct {
	intensity float64
	elapsed   float64
	next      int  // index of the next step to apply
	fresh     bool // triggered since the last Update
}

// Lightning drives a full-screen flash overlay. Each trigger runs the flash
// pattern to completion; overlapping triggers interleave their steps in time
// order rather than resetting each other.
type Lightning struct {
	opacity float64
	flashes []flash
	due     []dueStep
}

type dueStep struct {
	age     float64 // how long ago the step fell due
	opacity float64
}

func NewLightning() *Lightning {
	return &Lightning{}
}

// Trigger starts a flash. The first step applies immediately. The next
// Update does not age the flash: a trigger lands during the frame whose
// Update follows it.
func (l *Lightning) Trigger(intensity float64) {
	intensity = clampF(intensity, 0, 1)
	l.flashes = append(l.flashes, flash{intensity: intensity, next: 1, fresh: true})
	l.opacity = flashPattern[0].opacity * intensity
}

// Update advances every running flash by dt and applies due steps oldest first.
func (l *Lightning) Update(dt float64) {
	if dt <= 0 || len(l.flashes) == 0 {
		return
	}
	l.due = l.due[:0]
	live := l.flashes[:0]
	for _, f := range l.flashes {
		if f.fresh {
			f.fresh = false
			live = append(live, f)
			continue
		}
		f.elapsed += dt
		for f.next < len(flashPattern) && flashPattern[f.next].at <= f.elapsed+stepSlack {
			st := flashPattern[f.next]
			l.due = append(l.due, dueStep{age: f.elapsed - st.at, opacity: st.opacity * f.intensity})
			f.next++
		}
		if f.next < len(flashPattern) {
			live = append(live, f)
		}
	}
	l.flashes = live

	sort.SliceStable(l.due, func(i, j int) bool { return l.due[i].age > l.due[j].age })
	for _, d := range l.due {
		l.opacity = d.opacity
	}
}

// Opacity is the current overlay opacity in [0,1].
func (l *Lightning) Opacity() float64 { return l.opacity }

// Active reports whether any flash is still running.
func (l *Lightning) Active() bool { return len(l.flashes) > 0 }

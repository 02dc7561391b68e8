package state

import "time"

// PlaybackState drives step-by-step animation of a core.Plan. Unlike the
// teacher's continuous-time robot motion, a Plan is a discrete timestep
// sequence (path[t].Time == t), so playback advances in whole steps rather
// than interpolating a fractional position.
type PlaybackState struct {
	CurrentStep   int     // Current timestep, in [0, MaxStep]
	MaxStep       int     // Plan makespan
	StepsPerSec   float64 // Playback speed, in steps/second
	Playing       bool
	accum         float64 // fractional step accumulated since lastUpdate
	lastUpdate    time.Time
}

// NewPlaybackState creates a playback state spanning [0, maxStep].
func NewPlaybackState(maxStep int) *PlaybackState {
	return &PlaybackState{
		MaxStep:     maxStep,
		StepsPerSec: 2.0,
		lastUpdate:  time.Now(),
	}
}

// TogglePlay toggles playback, restarting from 0 if already at the end.
func (p *PlaybackState) TogglePlay() {
	p.Playing = !p.Playing
	if p.Playing {
		p.lastUpdate = time.Now()
		p.accum = 0
		if p.CurrentStep >= p.MaxStep {
			p.CurrentStep = 0
		}
	}
}

// Pause stops playback.
func (p *PlaybackState) Pause() { p.Playing = false }

// Reset rewinds to step 0 and stops.
func (p *PlaybackState) Reset() {
	p.CurrentStep = 0
	p.Playing = false
	p.accum = 0
}

// Advance accrues elapsed wall-clock time into whole-step advances. Called
// once per frame while Playing.
func (p *PlaybackState) Advance() {
	if !p.Playing {
		return
	}
	now := time.Now()
	elapsed := now.Sub(p.lastUpdate).Seconds()
	p.lastUpdate = now

	p.accum += elapsed * p.StepsPerSec
	for p.accum >= 1 {
		p.accum--
		p.CurrentStep++
		if p.CurrentStep >= p.MaxStep {
			p.CurrentStep = p.MaxStep
			p.Playing = false
			p.accum = 0
			break
		}
	}
}

// SetStep clamps and sets the current step directly (e.g. from a timeline
// scrub).
func (p *PlaybackState) SetStep(step int) {
	if step < 0 {
		step = 0
	}
	if step > p.MaxStep {
		step = p.MaxStep
	}
	p.CurrentStep = step
}

// StepForward pauses and advances one timestep.
func (p *PlaybackState) StepForward() {
	p.Pause()
	p.SetStep(p.CurrentStep + 1)
}

// StepBack pauses and rewinds one timestep.
func (p *PlaybackState) StepBack() {
	p.Pause()
	p.SetStep(p.CurrentStep - 1)
}

// SetSpeed sets the playback rate in steps/second, clamped to a sane range.
func (p *PlaybackState) SetSpeed(stepsPerSec float64) {
	if stepsPerSec < 0.25 {
		stepsPerSec = 0.25
	}
	if stepsPerSec > 20 {
		stepsPerSec = 20
	}
	p.StepsPerSec = stepsPerSec
}

// Progress returns playback position as a fraction in [0, 1].
func (p *PlaybackState) Progress() float64 {
	if p.MaxStep <= 0 {
		return 0
	}
	return float64(p.CurrentStep) / float64(p.MaxStep)
}

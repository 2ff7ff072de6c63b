package pinball

// Sound names emitted in StepResult.Sounds.
const (
	SoundChime      = "tmpchime"
	SoundFlipperOn  = "flipper_on"
	SoundFlipperOff = "flipper_off"
	SoundLaunch     = "launch"
	SoundTear       = "tear"
	SoundClick      = "click"
	SoundBuzz       = "buzz"
)

// Sounds collects fire-and-forget sound events until the platform drains
// them.
type Sounds struct {
	queue []string
}

// Play records a sound event.
func (s *Sounds) Play(name string) {
	s.queue = append(s.queue, name)
}

// Drain returns and clears the pending events.
func (s *Sounds) Drain() []string {
	out := s.queue
	s.queue = nil
	return out
}

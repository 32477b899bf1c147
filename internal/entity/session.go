package entity

// ChallengeSteps is the fixed per-word step cycle of a challenge.
var ChallengeSteps = [...]string{"definition-match", "choose-sentence", "form-match"}

// SessionState is the transient state of one quiz session. It is created once
// per process and threaded through the selector and the mastery engine.
type SessionState struct {
	CurrentUser      string
	ChallengeStarted bool
	StepIndex        int
	WordIndex        int
	CurrentWord      *VocabEntry
}

// ClampStep keeps StepIndex inside the step cycle.
func (s *SessionState) ClampStep() {
	if s.StepIndex < 0 || s.StepIndex >= len(ChallengeSteps) {
		s.StepIndex = 0
	}
}

// Reset clears everything but the active user.
func (s *SessionState) Reset() {
	s.ChallengeStarted = false
	s.StepIndex = 0
	s.WordIndex = 0
	s.CurrentWord = nil
}

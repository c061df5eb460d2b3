// Package avatar derives the presenter state from the orchestrator phase and
// provides the terminal presenter.
package avatar

import "github.com/room4-2/frontdesk/domain"

// StateFor maps a phase to the avatar state. tag is the intent being
// answered and only matters while Responding.
func StateFor(phase domain.Phase, tag domain.IntentTag) domain.AvatarState {
	switch phase {
	case domain.PhaseListening:
		return domain.AvatarListening
	case domain.PhaseClassifying:
		return domain.AvatarThinking
	case domain.PhaseEnforcingPolicy, domain.PhaseDispatching:
		return domain.AvatarProcessing
	case domain.PhaseResponding:
		if tag == domain.IntentGreeting {
			return domain.AvatarHappy
		}
		return domain.AvatarSpeaking
	default:
		return domain.AvatarIdle
	}
}

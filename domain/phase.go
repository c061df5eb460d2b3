package domain

// Phase is a state of the session lifecycle.
type Phase string

const (
	PhaseWaitingWake     Phase = "waiting-wake"
	PhaseIdentifying     Phase = "identifying"
	PhaseGreeting        Phase = "greeting"
	PhaseListening       Phase = "listening"
	PhaseClassifying     Phase = "classifying"
	PhaseEnforcingPolicy Phase = "enforcing-policy"
	PhaseDispatching     Phase = "dispatching"
	PhaseResponding      Phase = "responding"
	PhaseExiting         Phase = "exiting"
)

// AvatarState is the presentation-facing indicator derived from Phase.
type AvatarState string

const (
	AvatarIdle       AvatarState = "idle"
	AvatarListening  AvatarState = "listening"
	AvatarThinking   AvatarState = "thinking"
	AvatarProcessing AvatarState = "processing"
	AvatarSpeaking   AvatarState = "speaking"
	AvatarHappy      AvatarState = "happy"
)

package domain

import "errors"

var (
	// ErrInputTimeout is returned by VoiceInput when nothing was captured in time.
	ErrInputTimeout = errors.New("voice input timed out")
	// ErrRecognitionFailure is returned when the capture was garbled or low confidence.
	ErrRecognitionFailure = errors.New("speech not recognised")
	// ErrDirectoryUnavailable is returned when no directory source could be reached.
	ErrDirectoryUnavailable = errors.New("employee directory unavailable")
	// ErrKnowledgeUnavailable is returned when the knowledge backend cannot answer.
	ErrKnowledgeUnavailable = errors.New("knowledge service unavailable")
	// ErrNoContact is returned when a notification target has no usable contact.
	ErrNoContact = errors.New("no contact number for target")
	// ErrResourceUnavailable is fatal: a camera or microphone could not be acquired.
	ErrResourceUnavailable = errors.New("device unavailable")
	// ErrSessionActive is returned when a second session is started.
	ErrSessionActive = errors.New("a session is already active")
)

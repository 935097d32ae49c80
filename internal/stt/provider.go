// Package stt provides speech-to-text transcription for voice notes.
package stt

import "context"

// Transcriber converts an audio file to text.
type Transcriber interface {
	// Transcribe converts an audio file (OGG/Opus as delivered by
	// Telegram) to text.
	Transcribe(ctx context.Context, filePath string) (string, error)

	// Name returns the provider name (e.g., "openai")
	Name() string
}

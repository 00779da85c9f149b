package service

import "time"

type HealthReport struct {
	Status               string   `json:"status"`
	Message              string   `json:"message"`
	Timestamp            string   `json:"timestamp"`
	TranscriptionService string   `json:"transcription_service"`
	AnalysisService      string   `json:"analysis_service"`
	Platform             string   `json:"platform"`
	CredentialConfigured bool     `json:"credential_configured"`
	Features             []string `json:"features"`
}

// Health reports static capabilities. It never contacts the provider.
func (r *Relay) Health(now time.Time) HealthReport {
	return HealthReport{
		Status:               "OK",
		Message:              "Reflect AI Backend with Whisper is running",
		Timestamp:            now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		TranscriptionService: TranscriptionService,
		AnalysisService:      AnalysisService,
		Platform:             r.cfg.Platform,
		CredentialConfigured: r.HasCredential(),
		Features: []string{
			"Hebrew speaker recognition",
			"Multilingual support",
			"Real-time transcription",
			"AI-powered analysis",
		},
	}
}

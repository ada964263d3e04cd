package models

import "time"

type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

type TestConnectionResponse struct {
	Message            string    `json:"message"`
	Backend            string    `json:"backend"`
	Timestamp          time.Time `json:"timestamp"`
	Version            string    `json:"version"`
	AvailableEndpoints []string  `json:"available_endpoints"`
	CORSOrigins        []string  `json:"cors_origins"`
}

type SummarizeResponse struct {
	Summary  string `json:"summary"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Filename string `json:"filename"`
	Model    string `json:"model"`
}

type CompareResponse struct {
	ID       string       `json:"id"`
	Stats    KeywordStats `json:"stats"`
	Analysis GapAnalysis  `json:"analysis"`
	Report   *Report      `json:"report"`
	Text     string       `json:"report_text"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

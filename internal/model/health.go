package model

type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

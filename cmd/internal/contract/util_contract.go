package contract

const ServiceName = "cloud-notes-api"

type HealthResponse struct {
	Ok      bool   `json:"ok"`
	Service string `json:"service"`
}

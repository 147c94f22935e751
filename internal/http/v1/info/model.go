package info

// Data describes the running service.
type Data struct {
	Service   string   `json:"service"   doc:"Service name"        example:"Pathlet API"`
	Status    string   `json:"status"    doc:"Service status"      example:"running"`
	Version   string   `json:"version"   doc:"Build version"       example:"1.2.3"`
	Narrative string   `json:"narrative" doc:"Narrative provider"  example:"huggingface"`
	Endpoints []string `json:"endpoints" doc:"Public API endpoints"`
}

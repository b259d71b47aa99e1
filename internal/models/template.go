package models

// ApplicationTemplate is a catalog entry describing the minimum device
// resources a packaged workload needs. The engine only reads it for
// compatibility checks; catalog management owns its lifecycle.
type ApplicationTemplate struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Version     string `json:"version"`

	MinCpuCores  int  `json:"min_cpu_cores"`
	MinRamGb     int  `json:"min_ram_gb"`
	MinStorageGb int  `json:"min_storage_gb"`
	RequiredGpu  bool `json:"required_gpu"`

	Ports []int `json:"ports,omitempty"`
}

func (t *ApplicationTemplate) Clone() *ApplicationTemplate {
	out := *t
	out.Ports = append([]int(nil), t.Ports...)
	return &out
}

type AddTemplateReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Version     string `json:"version"`

	MinCpuCores  int  `json:"min_cpu_cores"`
	MinRamGb     int  `json:"min_ram_gb"`
	MinStorageGb int  `json:"min_storage_gb"`
	RequiredGpu  bool `json:"required_gpu"`

	Ports []int `json:"ports,omitempty"`
}

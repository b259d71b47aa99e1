package models

type HostInfo struct {
	ProviderVersion string `json:"provider_version"`
	OperatingSystem string `json:"operating_system"`
	Architecture    string `json:"architecture"`
	CPUCores        int    `json:"cpu_cores"`
}

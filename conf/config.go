package conf

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

var config *MarketNode

// MarketNode is a rental market node config
type MarketNode struct {
	API     API
	STORE   STORE
	PRICING PRICING
}

type API struct {
	Port          int
	RedisUrl      string
	RedisPassword string
	NodeName      string
}

type STORE struct {
	DatastorePath string
}

// PRICING holds the advisory price bands, per unit-hour. Listing outside
// the band is a warning to the owner, never an error.
type PRICING struct {
	CpuCoreHourMin float64
	CpuCoreHourMax float64
	GpuHourMin     float64
	GpuHourMax     float64
}

func InitConfig(repoPath string) error {
	configFile := filepath.Join(repoPath, "config.toml")

	if metaData, err := toml.DecodeFile(configFile, &config); err != nil {
		return fmt.Errorf("failed load config file, path: %s, error: %w", configFile, err)
	} else {
		if !requiredFieldsAreGiven(metaData) {
			log.Fatal("Required fields not given")
		}
	}
	if config.STORE.DatastorePath == "" {
		config.STORE.DatastorePath = filepath.Join(repoPath, "datastore")
	}
	return nil
}

func GetConfig() *MarketNode {
	return config
}

func requiredFieldsAreGiven(metaData toml.MetaData) bool {
	requiredFields := [][]string{
		{"API"},
		{"STORE"},
		{"PRICING"},

		{"API", "Port"},
		{"API", "RedisUrl"},

		{"PRICING", "CpuCoreHourMin"},
		{"PRICING", "CpuCoreHourMax"},
		{"PRICING", "GpuHourMin"},
		{"PRICING", "GpuHourMax"},
	}

	for _, v := range requiredFields {
		if !metaData.IsDefined(v...) {
			log.Fatal("Required fields ", v)
		}
	}

	return true
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMustLoad(t *testing.T) {
	Path = "."
	defer func() {
		Path = "infra/config"
	}()

	var cfg struct {
		Port    int `json:"port"`
		Storage struct {
			Type string `json:"type"`
		} `json:"storage"`
	}
	b := MustLoad("kmeans", &cfg)
	assert.NotEmpty(t, b)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "memory", cfg.Storage.Type)
}

func TestMustLoad_Missing(t *testing.T) {
	Path = "."
	defer func() {
		Path = "infra/config"
	}()

	var cfg map[string]interface{}
	assert.Panics(t, func() {
		MustLoad("missing", &cfg)
	})
}

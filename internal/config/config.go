// Package config resolves application configuration from viper.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	DatabasePath        string
	ModelDir            string
	ConfidenceThreshold float64
	MaxAmount           float64
	RetrainThreshold    int
	MaxFeatures         int
	MinDocFreq          int
	AutoRetrain         bool
}

// SetDefaults registers the default values on the global viper instance.
func SetDefaults() {
	viper.SetDefault("database.path", "~/.local/share/smspend/smspend.db")
	viper.SetDefault("model.dir", "~/.local/share/smspend/model")
	viper.SetDefault("classification.confidence_threshold", 0.70)
	viper.SetDefault("extraction.max_amount", 200000)
	viper.SetDefault("retrain.threshold", 5)
	viper.SetDefault("retrain.auto", false)
	viper.SetDefault("training.max_features", 5000)
	viper.SetDefault("training.min_doc_freq", 1)
}

// FromViper reads the resolved configuration.
func FromViper() Config {
	return Config{
		DatabasePath:        ExpandPath(viper.GetString("database.path")),
		ModelDir:            ExpandPath(viper.GetString("model.dir")),
		ConfidenceThreshold: viper.GetFloat64("classification.confidence_threshold"),
		MaxAmount:           viper.GetFloat64("extraction.max_amount"),
		RetrainThreshold:    viper.GetInt("retrain.threshold"),
		AutoRetrain:         viper.GetBool("retrain.auto"),
		MaxFeatures:         viper.GetInt("training.max_features"),
		MinDocFreq:          viper.GetInt("training.min_doc_freq"),
	}
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}

	return os.ExpandEnv(path)
}

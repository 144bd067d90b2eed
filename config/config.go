package config

import (
	"fmt"
	"os"

	"github.com/Aashish23092/ocr-invoice-extraction/utils"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	MaxFileSize       int64
	Tuning            utils.Tuning
}

// LoadConfig reads server settings from the environment and, when
// EXTRACTOR_CONFIG points at a TOML file, overlays the engine tuning with it.
// Tuning values are validated before use so a bad file fails at startup, not
// mid-extraction.
func LoadConfig() (*Config, error) {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/5/tessdata"
	}

	tuning := utils.DefaultTuning()
	if path := os.Getenv("EXTRACTOR_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read extractor config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &tuning); err != nil {
			return nil, fmt.Errorf("failed to parse extractor config %s: %w", path, err)
		}
	}

	if err := validator.New().Struct(tuning); err != nil {
		return nil, fmt.Errorf("invalid extractor tuning: %w", err)
	}

	return &Config{
		ServerPort:        serverPort,
		TesseractDataPath: tesseractDataPath,
		MaxFileSize:       10 * 1024 * 1024, // 10 MB
		Tuning:            tuning,
	}, nil
}

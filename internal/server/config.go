package server

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Addr      string
	MongoURI  string
	MongoDB   string
	Secret    string
	APIURL    string
	UploadDir string
	TokenTTL  time.Duration
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.MongoDB == "" {
		c.MongoDB = "eshop"
	}
	if c.APIURL == "" {
		c.APIURL = "/api/v1"
	}
	if c.UploadDir == "" {
		c.UploadDir = "public/uploads"
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = 24 * time.Hour
	}
}

// FromEnv builds a Config from the environment. Keys match the original
// deployment: CONNECTION_STRING, SECRET, API_URL, plus PORT, MONGO_DB and
// UPLOAD_DIR.
func FromEnv() Config {
	cfg := Config{
		MongoURI:  strings.TrimSpace(os.Getenv("CONNECTION_STRING")),
		MongoDB:   strings.TrimSpace(os.Getenv("MONGO_DB")),
		Secret:    os.Getenv("SECRET"),
		APIURL:    strings.TrimSpace(os.Getenv("API_URL")),
		UploadDir: strings.TrimSpace(os.Getenv("UPLOAD_DIR")),
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Addr = ":" + port
	}
	cfg.setDefaults()
	return cfg
}

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port string
}

type StoreConfig struct {
	// Path to the bbolt file holding the inventory and bill snapshots.
	Path string
}

type ExportConfig struct {
	// Directory the spreadsheet writer saves workbooks into.
	Dir string
}

// LoadDotEnv reads a .env file if one is present. Missing files are fine;
// real environment variables always win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

func LoadStoreConfig() StoreConfig {
	return StoreConfig{Path: GetEnv("BILLING_STORE_PATH", "spicevault.db")}
}

func LoadExportConfig() ExportConfig {
	return ExportConfig{Dir: GetEnv("BILLING_EXPORT_DIR", ".")}
}

func LoadServerConfig(defaultPort string) ServerConfig {
	port := defaultPort
	if envPort := os.Getenv("SERVER_PORT"); envPort != "" {
		port = envPort
	}
	return ServerConfig{Port: ":" + port}
}

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func GetEnvAsInt(key string, fallback int) int {
	strValue := GetEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

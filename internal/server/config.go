package server

import (
	"os"
	"path"

	"github.com/joho/godotenv"

	"github.com/df07/go-whitted-raytracer/internal/upload"
)

// Config holds the render service settings
type Config struct {
	Address  string
	SceneDir string
	PostKey  string
	S3       upload.Config
}

// getEnv reads an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// LoadConfig reads the service configuration from the environment, merging
// a .env file from the service root when one exists
func LoadConfig() Config {
	rootDir := getEnv("WHITTED_ROOT_DIR", ".")
	_ = godotenv.Load(path.Join(rootDir, ".env"))

	return Config{
		Address:  getEnv("WHITTED_ADDRESS", ":8080"),
		SceneDir: getEnv("WHITTED_SCENE_DIR", "scenes"),
		PostKey:  os.Getenv("WHITTED_POST_KEY"),
		S3: upload.Config{
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			Region:    os.Getenv("S3_REGION"),
			Bucket:    os.Getenv("S3_BUCKET"),
			CDNURL:    os.Getenv("CDN_URL"),
		},
	}
}

package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	Database   Database   `yaml:"database"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Uploader   Uploader   `yaml:"uploader"`
	Mailer     Mailer     `yaml:"mailer"`
	Events     Events     `yaml:"events"`
}

// Database.URI is deliberately optional here: an empty URI is reported by
// the connection manager on first use.
type Database struct {
	URI             string        `yaml:"uri" env:"DATABASE_URI"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env-default:"10s"`
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"10"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"30m"`
}

type HTTPServer struct {
	Address        string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout        time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env-default:"60s"`
	RequestTimeout time.Duration `yaml:"request_timeout" env-default:"30s"`
	MaxUploadSize  int64         `yaml:"max_upload_size" env-default:"10485760"`
}

type Uploader struct {
	Provider  string      `yaml:"provider" env:"UPLOADER_PROVIDER" env-default:"local"`
	Folder    string      `yaml:"folder" env-default:"DevEvents"`
	MaxWidth  int         `yaml:"max_width" env-default:"1600"`
	MaxHeight int         `yaml:"max_height" env-default:"1600"`
	MaxPixels int         `yaml:"max_pixels" env-default:"40000000"`
	Local     LocalUpload `yaml:"local"`
	S3        S3Upload    `yaml:"s3"`
	OSS       OSSUpload   `yaml:"oss"`
}

type LocalUpload struct {
	Dir     string `yaml:"dir" env-default:"./static/uploads"`
	BaseURL string `yaml:"base_url" env-default:"/static/uploads"`
}

type S3Upload struct {
	Region          string `yaml:"region" env:"AWS_REGION"`
	Bucket          string `yaml:"bucket" env:"S3_BUCKET"`
	Endpoint        string `yaml:"endpoint" env:"S3_ENDPOINT"`
	AccessKeyID     string `yaml:"access_key_id" env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"AWS_SECRET_ACCESS_KEY"`
	PublicBaseURL   string `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
}

type OSSUpload struct {
	Endpoint        string `yaml:"endpoint" env:"ALI_OSS_ENDPOINT"`
	Bucket          string `yaml:"bucket" env:"ALI_OSS_BUCKET"`
	AccessKeyID     string `yaml:"access_key_id" env:"ALI_OSS_ACCESS_KEY"`
	AccessKeySecret string `yaml:"access_key_secret" env:"ALI_OSS_SECRET_KEY"`
}

type Mailer struct {
	Provider    string    `yaml:"provider" env:"MAILER_PROVIDER" env-default:"noop"`
	FromAddress string    `yaml:"from_address" env:"MAILER_FROM_ADDRESS"`
	FromName    string    `yaml:"from_name" env-default:"DevEvents"`
	SES         SESConfig `yaml:"ses"`
}

type SESConfig struct {
	Region          string `yaml:"region" env:"SES_REGION"`
	AccessKeyID     string `yaml:"access_key_id" env:"SES_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"SES_SECRET_ACCESS_KEY"`
}

type Events struct {
	SimilarLimit int `yaml:"similar_limit" env-default:"3"`
}

func MustLoad() *Config {
	// .env is optional, real environment wins
	_ = godotenv.Load()

	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := LoadPath(configPath)
	if err != nil {
		panic(err)
	}

	return cfg
}

func LoadPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, &os.PathError{Op: "config", Path: configPath, Err: os.ErrNotExist}
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// fetchConfigPath fetches config path from command line flag or environment variable.
// Priority: flag > env > default.
// Default value is empty string.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}

package config

import (
	"os"

	"github.com/ctcarper/cloudinary-search/internal/shared/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Upload     UploadConfig     `mapstructure:"upload"`
	Auth       AuthConfig       `mapstructure:"auth"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type CloudinaryConfig struct {
	CloudName    string `mapstructure:"cloud_name"`
	APIKey       string `mapstructure:"api_key"`
	APISecret    string `mapstructure:"api_secret"`
	UploadFolder string `mapstructure:"upload_folder"`
	QPS          int    `mapstructure:"qps"` // 每秒请求数限制，默认10
}

type CacheConfig struct {
	FolderTTLHours int `mapstructure:"folder_ttl_hours"` // 文件夹列表缓存有效期，默认24小时
}

type UploadConfig struct {
	MaxFileSizeMB int64    `mapstructure:"max_file_size_mb"`
	AllowedExts   []string `mapstructure:"allowed_extensions"`
}

type AuthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type TelegramConfig struct {
	Enabled  bool    `mapstructure:"enabled"`
	BotToken string  `mapstructure:"bot_token"`
	ChatIDs  []int64 `mapstructure:"chat_ids"`
}

type SchedulerConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	WarmupCron string `mapstructure:"warmup_cron"` // cron表达式，如 "0 6 * * *" 每天早上6点预热缓存
}

type LogConfig struct {
	Level     string `mapstructure:"level"`
	Output    string `mapstructure:"output"`
	Format    string `mapstructure:"format"`
	FilePath  string `mapstructure:"file_path"`
	Colorize  bool   `mapstructure:"colorize"`
	AddSource bool   `mapstructure:"add_source"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("cloudinary.upload_folder", "")
	viper.SetDefault("cloudinary.qps", 10)
	viper.SetDefault("cache.folder_ttl_hours", 24)
	viper.SetDefault("auth.enabled", false)
	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("telegram.enabled", false)
	viper.SetDefault("scheduler.enabled", false)
	viper.SetDefault("scheduler.warmup_cron", "0 6 * * *")

	// 上传配置默认值
	viper.SetDefault("upload.max_file_size_mb", 20)
	viper.SetDefault("upload.allowed_extensions", []string{
		"jpg", "jpeg", "png", "gif", "webp", "bmp", "tiff", "pdf",
	})

	// 日志配置默认值
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "console")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("log.file_path", "logs/app.log")
	viper.SetDefault("log.colorize", true)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// 支持从环境变量读取Cloudinary凭证
	if envName := os.Getenv("CLOUDINARY_CLOUD_NAME"); envName != "" {
		config.Cloudinary.CloudName = envName
	}
	if envKey := os.Getenv("CLOUDINARY_API_KEY"); envKey != "" {
		config.Cloudinary.APIKey = envKey
	}
	if envSecret := os.Getenv("CLOUDINARY_API_SECRET"); envSecret != "" {
		config.Cloudinary.APISecret = envSecret
	}
	if envToken := os.Getenv("API_AUTH_TOKEN"); envToken != "" {
		config.Auth.Token = envToken
		config.Auth.Enabled = true
	}

	return &config, nil
}

// Validate 验证Cloudinary凭证是否齐全，缺失时返回配置错误并指明缺失项
func (c *CloudinaryConfig) Validate() error {
	if c.CloudName == "" {
		return errors.NewConfigError("cloudinary cloud_name is required")
	}
	if c.APIKey == "" {
		return errors.NewConfigError("cloudinary api_key is required")
	}
	if c.APISecret == "" {
		return errors.NewConfigError("cloudinary api_secret is required")
	}
	return nil
}

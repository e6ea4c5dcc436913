package utils

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Booking  BookingConfig
	Hub      HubConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

type BookingConfig struct {
	// AutoConfirm makes new bookings enter the lifecycle at "confirmed".
	// When false they enter at "pending" and wait for manual approval.
	AutoConfirm bool
	// PendingBlocks controls whether a pending booking occupies its
	// (expert, date, slot) key against other clients.
	PendingBlocks bool
	// Slots is the fixed set of bookable time-of-day labels.
	Slots []string
}

type HubConfig struct {
	BufferSize int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("BOOKING_AUTO_CONFIRM", true)
	viper.SetDefault("BOOKING_PENDING_BLOCKS", true)
	viper.SetDefault("BOOKING_SLOTS", "09:00,10:00,11:00,12:00,13:00,14:00,15:00,16:00,17:00")
	viper.SetDefault("HUB_BUFFER_SIZE", 16)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Booking: BookingConfig{
			AutoConfirm:   viper.GetBool("BOOKING_AUTO_CONFIRM"),
			PendingBlocks: viper.GetBool("BOOKING_PENDING_BLOCKS"),
			Slots:         splitSlots(viper.GetString("BOOKING_SLOTS")),
		},
		Hub: HubConfig{
			BufferSize: viper.GetInt("HUB_BUFFER_SIZE"),
		},
	}

	return config, nil
}

func splitSlots(raw string) []string {
	parts := strings.Split(raw, ",")
	slots := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			slots = append(slots, trimmed)
		}
	}
	return slots
}

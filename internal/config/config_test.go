package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testConfig = `
[server]
http_port = 9090
environment = "production"

[database]
host = "db.internal"
port = 5432
user = "barberbook"
password = "secret"
dbname = "barberbook"
sslmode = "disable"

[redis]
addr = "redis.internal:6379"

[[auth.admins]]
username = "admin"
password_hash = "$2b$10$z50YUrfRhihyb/D/Lk9hMu68dKC9SZcjxfl5g8IYFp99.i71Xi1Ja"

[booking]
slots = ["09:00", "9:30"]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.HTTPPort)
	require.True(t, cfg.Server.IsProduction())
	require.Equal(t, "host=db.internal port=5432 user=barberbook password=secret dbname=barberbook sslmode=disable",
		cfg.Database.DSN())

	// Значения по умолчанию
	require.Equal(t, 24, cfg.Auth.SessionTTLHours)
	require.Equal(t, "Europe/Berlin", cfg.Booking.Timezone)
	require.Equal(t, 30, cfg.Booking.SameDayBufferMin)
	require.Equal(t, 5, cfg.Verification.CodeTTLMinutes)
	require.Equal(t, 3, cfg.Verification.MaxAttempts)
	require.Equal(t, "/metrics", cfg.Metrics.Path)

	// Слоты нормализуются к формату HH:MM
	template, err := cfg.Booking.SlotTemplate()
	require.NoError(t, err)
	require.Len(t, template, 2)
	require.Equal(t, "09:30", template[1].String())
}

func TestLoadDefaultSlotTemplate(t *testing.T) {
	body := `
[database]
host = "localhost"
dbname = "barberbook"

[[auth.admins]]
username = "admin"
password_hash = "hash"
`
	cfg, err := Load(writeConfig(t, body))
	require.NoError(t, err)

	template, err := cfg.Booking.SlotTemplate()
	require.NoError(t, err)
	require.Len(t, template, 13)
	require.Equal(t, "09:00", template[0].String())
	require.Equal(t, "17:00", template[len(template)-1].String())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("REDIS_ADDR", "other:6379")

	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.Database.Password)
	require.Equal(t, "other:6379", cfg.Redis.Addr)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing database", `
[[auth.admins]]
username = "admin"
password_hash = "hash"
`},
		{"missing admins", `
[database]
host = "localhost"
dbname = "barberbook"
`},
		{"bad slot", `
[database]
host = "localhost"
dbname = "barberbook"

[[auth.admins]]
username = "admin"
password_hash = "hash"

[booking]
slots = ["25:99"]
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[database]
host = "localhost"
dbname = "salon"
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(minimalConfig)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10, cfg.Inventory.OpenHour)
	assert.Equal(t, 19, cfg.Inventory.CloseHour)
	assert.Equal(t, 30, cfg.Inventory.HorizonDays)
	assert.Equal(t, 24*time.Hour, cfg.Reminder.Lead())
	assert.Equal(t, 3, cfg.Reminder.MaxAttempts)
	assert.Contains(t, cfg.Reminder.Text, "{service}")
	assert.Equal(t, "Europe/Moscow", cfg.Salon.Timezone)
}

func TestParse_Full(t *testing.T) {
	data := `
[server]
http_port = 9090

[database]
host = "db"
port = 6432
user = "salon"
password = "secret"
dbname = "salon"

[salon]
name = "Лотос"
timezone = "Asia/Yekaterinburg"
admin_ids = [111, 222]

[inventory]
open_hour = 9
close_hour = 18
horizon_days = 14

[reminder]
lead_hours = 12
retry_delay_seconds = 60
max_attempts = 5
text = "До встречи: {service} в {time}"
`
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "host=db port=6432 user=salon password=secret dbname=salon sslmode=disable", cfg.Database.DSN())
	assert.True(t, cfg.Salon.IsAdmin(222))
	assert.False(t, cfg.Salon.IsAdmin(333))
	assert.Equal(t, 9, cfg.Inventory.OpenHour)
	assert.Equal(t, 12*time.Hour, cfg.Reminder.Lead())
	assert.Equal(t, time.Minute, cfg.Reminder.RetryDelay())

	loc, err := cfg.Salon.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Yekaterinburg", loc.String())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing database", `[server]
http_port = 1`},
		{"bad timezone", minimalConfig + `
[salon]
timezone = "Mars/Olympus"`},
		{"inverted window", minimalConfig + `
[inventory]
open_hour = 20
close_hour = 10`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("SALON_DB_PASSWORD", "from-env")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(minimalConfig+`password = "${SALON_DB_PASSWORD}"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
}

package config

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.CORSAllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessExpiration)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, "postgres://postgres:@localhost:5432/attendance?sslmode=disable", cfg.DatabaseURL())

	policy := cfg.Attendance.Policy()
	assert.Equal(t, attendance.DefaultCutoff, policy.Cutoff)
	assert.False(t, policy.ClampFuture)
	assert.True(t, policy.WorkingDays.Contains(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)))
}

func TestLoad_AttendanceRules(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("ATTENDANCE_CUTOFF", "08:30")
	t.Setenv("ATTENDANCE_TIMEZONE", "Asia/Jakarta")
	t.Setenv("ATTENDANCE_WORKING_DAYS", "weekdays")
	t.Setenv("ATTENDANCE_HOLIDAYS", "2024-03-11, 2024-03-29")
	t.Setenv("ATTENDANCE_CLAMP_FUTURE", "true")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")

	cfg, err := Load()
	require.NoError(t, err)

	policy := cfg.Attendance.Policy()
	assert.Equal(t, attendance.TimeOfDay{Hour: 8, Minute: 30}, policy.Cutoff)
	assert.Equal(t, "Asia/Jakarta", policy.Location.String())
	assert.True(t, policy.ClampFuture)
	assert.False(t, policy.WorkingDays.Contains(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)))
	assert.False(t, policy.WorkingDays.Contains(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)))
	assert.True(t, policy.WorkingDays.Contains(time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DatabaseURL())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{}},
		{name: "bad cutoff", env: map[string]string{"JWT_SECRET_KEY": "s", "ATTENDANCE_CUTOFF": "9am"}},
		{name: "bad timezone", env: map[string]string{"JWT_SECRET_KEY": "s", "ATTENDANCE_TIMEZONE": "Mars/Base"}},
		{name: "bad holiday", env: map[string]string{"JWT_SECRET_KEY": "s", "ATTENDANCE_HOLIDAYS": "2024-13-01"}},
		{name: "bad clamp flag", env: map[string]string{"JWT_SECRET_KEY": "s", "ATTENDANCE_CLAMP_FUTURE": "maybe"}},
		{name: "bad port", env: map[string]string{"JWT_SECRET_KEY": "s", "APP_PORT": "http"}},
		{name: "pool bounds", env: map[string]string{"JWT_SECRET_KEY": "s", "DB_MIN_CONNS": "30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("JWT_SECRET_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

package service

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"reconagent/internal/api/models"
)

func newTestGateway(maxRows int) *GatewayService {
	return NewGatewayService(zerolog.Nop(), GatewayConfig{
		Host:         "localhost",
		Port:         "1433",
		User:         "sa",
		Password:     "password",
		DatabaseName: "recon",
		Timeout:      time.Minute,
		MaxRows:      maxRows,
	})
}

func TestCheckSize_WithinLimit(t *testing.T) {
	gw := newTestGateway(10000)

	check := gw.CheckSize(&models.TabularResult{RowCount: 10000})
	assert.False(t, check.TooLarge)
	assert.Equal(t, "Result size is acceptable.", check.Message)
}

func TestCheckSize_OverLimit(t *testing.T) {
	gw := newTestGateway(10000)

	check := gw.CheckSize(&models.TabularResult{RowCount: 10001})
	assert.True(t, check.TooLarge)
	assert.Equal(t, "Too many records found for the prompt (exceeds 10000 records). Please refine your query.", check.Message)
}

func TestCheckSize_NilResult(t *testing.T) {
	gw := newTestGateway(10)

	check := gw.CheckSize(nil)
	assert.False(t, check.TooLarge)
}

func TestCoerceValue(t *testing.T) {
	assert.Nil(t, coerceValue(nil))
	assert.Equal(t, int64(42), coerceValue(int64(42)))
	assert.Equal(t, 3.14, coerceValue(3.14))
	assert.Equal(t, true, coerceValue(true))
	assert.Equal(t, "Settled", coerceValue("Settled"))
	assert.Equal(t, "PSP123", coerceValue([]byte("PSP123")))

	ts := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-15 09:30:00", coerceValue(ts))

	assert.Equal(t, "[1 2]", coerceValue([]int{1, 2}))
}

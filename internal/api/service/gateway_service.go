package service

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/denisenkom/go-mssqldb"
	"github.com/rs/zerolog"

	"reconagent/internal/api/models"
	"reconagent/pkg"
)

// GatewayService executes one read-only statement per call against the
// reconciliation database. It opens a fresh connection each time and closes it
// on every path; the synthesizer is trusted to have produced read-only SQL.
type GatewayService struct {
	logger     zerolog.Logger
	connString string
	timeout    time.Duration
	maxRows    int
}

type GatewayConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	DatabaseName string
	Timeout      time.Duration
	MaxRows      int
}

func NewGatewayService(logger zerolog.Logger, cfg GatewayConfig) *GatewayService {
	u := url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		RawQuery: url.Values{"database": {cfg.DatabaseName}}.Encode(),
	}
	return &GatewayService{
		logger:     logger,
		connString: u.String(),
		timeout:    cfg.Timeout,
		maxRows:    cfg.MaxRows,
	}
}

// Execute runs the statement and returns the full result set with every value
// coerced to a JSON-friendly scalar.
func (slf *GatewayService) Execute(ctx context.Context, sqlText string) (*models.TabularResult, error) {
	cleaned := pkg.CleanSQL(sqlText)

	ctx, cancel := context.WithTimeout(ctx, slf.timeout)
	defer cancel()

	db, err := sql.Open("sqlserver", slf.connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(30 * time.Second)

	rows, err := db.QueryContext(ctx, cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	result := &models.TabularResult{Columns: columns, Rows: []map[string]any{}}

	values := make([]any, len(columns))
	scanTargets := make([]any, len(columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = coerceValue(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	result.RowCount = len(result.Rows)
	return result, nil
}

// CheckSize flags result sets too large to answer or export from.
func (slf *GatewayService) CheckSize(result *models.TabularResult) models.SizeCheck {
	if result != nil && result.RowCount > slf.maxRows {
		return models.SizeCheck{
			TooLarge: true,
			Message:  fmt.Sprintf("Too many records found for the prompt (exceeds %d records). Please refine your query.", slf.maxRows),
		}
	}
	return models.SizeCheck{Message: "Result size is acceptable."}
}

// coerceValue maps driver values onto nil, bool, number, or string. Anything
// else is stringified; the serialization is deliberately lossy for exotic
// database types.
func coerceValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case bool, string, int, int32, int64, float32, float64:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", val)
	}
}

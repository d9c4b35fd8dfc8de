package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"reconagent/internal/api/models"
)

// BlobUploader is the slice of pkg.BlobStore the export writer needs.
type BlobUploader interface {
	Upload(ctx context.Context, blobName string, body io.Reader) (string, error)
}

// ExportService materializes a result set as a CSV in the OS temp dir, uploads
// it, and removes the local file whether or not the upload worked. A nil
// uploader disables exports without failing requests.
type ExportService struct {
	logger  zerolog.Logger
	store   BlobUploader
	timeout time.Duration
}

func NewExportService(logger zerolog.Logger, store BlobUploader, timeout time.Duration) *ExportService {
	return &ExportService{logger: logger, store: store, timeout: timeout}
}

// Export returns (nil, nil) for empty or missing results; callers treat a nil
// artifact as "no export available", never as a fatal condition.
func (slf *ExportService) Export(ctx context.Context, result *models.TabularResult) (*models.ExportArtifact, error) {
	if result == nil || result.RowCount == 0 || len(result.Columns) == 0 {
		return nil, nil
	}
	if slf.store == nil {
		slf.logger.Warn().Msg("blob storage not configured, skipping export")
		return nil, nil
	}

	fileName := exportFileName(time.Now())
	path := filepath.Join(os.TempDir(), fileName)

	if err := writeCSV(path, result); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			slf.logger.Warn().Err(err).Str("path", path).Msg("failed to remove temporary export file")
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen csv: %w", err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, slf.timeout)
	defer cancel()

	blobName := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), fileName)
	address, err := slf.store.Upload(ctx, blobName, f)
	if err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	slf.logger.Info().Str("url", address).Int("rows", result.RowCount).Msg("export uploaded")
	return &models.ExportArtifact{URL: address, RowCount: result.RowCount}, nil
}

// exportFileName qualifies the file with a timestamp plus a short random
// suffix so two exports in the same second still get distinct addresses.
func exportFileName(now time.Time) string {
	return fmt.Sprintf("query_results_%s_%s.csv", now.Format("20060102_150405"), uuid.NewString()[:8])
}

// writeCSV emits a header row of column names followed by one record per row,
// values stringified in column order.
func writeCSV(path string, result *models.TabularResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(result.Columns); err != nil {
		return err
	}

	record := make([]string, len(result.Columns))
	for _, row := range result.Rows {
		for i, col := range result.Columns {
			record[i] = valueString(row[col])
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func valueString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

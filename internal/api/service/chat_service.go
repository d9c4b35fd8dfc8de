package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"reconagent/internal/api/models"
	"reconagent/pkg"
)

// Stage contracts the orchestrator sequences. Satisfied by the concrete
// services above; tests substitute stubs per stage.
type (
	Classifier interface {
		Classify(ctx context.Context, question string, history models.ChatHistory, requesterName string) models.Classification
	}
	QueryGenerator interface {
		GenerateQuery(ctx context.Context, question string, history models.ChatHistory) models.GeneratedQuery
		GenerateListQuery(ctx context.Context, question string, history models.ChatHistory) models.GeneratedQuery
	}
	Gateway interface {
		Execute(ctx context.Context, sqlText string) (*models.TabularResult, error)
		CheckSize(result *models.TabularResult) models.SizeCheck
	}
	Exporter interface {
		Export(ctx context.Context, result *models.TabularResult) (*models.ExportArtifact, error)
	}
	Composer interface {
		Compose(ctx context.Context, question string, result *models.TabularResult, sqlText string, history models.ChatHistory, exportURL string) string
		ComposeDatabaseError(err error) string
	}
)

// exportKeywords trigger an export on the query branch regardless of size.
var exportKeywords = []string{"list", "all transactions", "download", "csv", "excel", "export"}

// ChatService runs one request through classify → synthesize → execute →
// export → compose. Every stage failure is absorbed into that stage's
// documented default; Ask always produces an answer.
type ChatService struct {
	logger             zerolog.Logger
	classifier         Classifier
	generator          QueryGenerator
	gateway            Gateway
	exporter           Exporter
	composer           Composer
	exportRowThreshold int
}

func NewChatService(logger zerolog.Logger, classifier Classifier, generator QueryGenerator, gateway Gateway, exporter Exporter, composer Composer, exportRowThreshold int) *ChatService {
	return &ChatService{
		logger:             logger,
		classifier:         classifier,
		generator:          generator,
		gateway:            gateway,
		exporter:           exporter,
		composer:           composer,
		exportRowThreshold: exportRowThreshold,
	}
}

func (slf *ChatService) Ask(ctx context.Context, req models.ChatRequest) models.Envelope {
	classification := slf.classifier.Classify(ctx, req.Question, req.History, req.RequesterName)
	if classification.FallbackReason != "" {
		slf.logger.Warn().Str("reason", classification.FallbackReason).Msg("classification defaulted")
	}

	if !classification.Relevant {
		answer := classification.Greeting
		if answer == "" {
			answer = GenericGreeting
		}
		return models.Envelope{Answer: answer}
	}

	if classification.ListRequest {
		return slf.runListBranch(ctx, req)
	}
	return slf.runQueryBranch(ctx, req)
}

// runListBranch always attempts an export; itemized rows are the point of a
// list request.
func (slf *ChatService) runListBranch(ctx context.Context, req models.ChatRequest) models.Envelope {
	query := slf.generator.GenerateListQuery(ctx, req.Question, req.History)

	result, err := slf.gateway.Execute(ctx, query.SQL)
	if err != nil {
		slf.logger.Error().Err(err).Msg("list query execution failed")
		return models.Envelope{Answer: slf.composer.ComposeDatabaseError(err)}
	}

	if size := slf.gateway.CheckSize(result); size.TooLarge {
		return models.Envelope{Answer: size.Message}
	}

	exportURL, exportPtr := slf.export(ctx, result)
	answer := slf.composer.Compose(ctx, req.Question, result, query.SQL, req.History, exportURL)
	return models.Envelope{Answer: answer, ExportURL: exportPtr}
}

func (slf *ChatService) runQueryBranch(ctx context.Context, req models.ChatRequest) models.Envelope {
	query := slf.generator.GenerateQuery(ctx, req.Question, req.History)

	result, err := slf.gateway.Execute(ctx, query.SQL)
	if err != nil {
		slf.logger.Error().Err(err).Msg("query execution failed")
		return models.Envelope{Answer: slf.composer.ComposeDatabaseError(err)}
	}

	if size := slf.gateway.CheckSize(result); size.TooLarge {
		return models.Envelope{Answer: size.Message}
	}

	var exportURL string
	var exportPtr *string
	if slf.shouldExport(req.Question, result.RowCount) {
		exportURL, exportPtr = slf.export(ctx, result)
	}

	answer := slf.composer.Compose(ctx, req.Question, result, query.SQL, req.History, exportURL)
	return models.Envelope{Answer: answer, ExportURL: exportPtr}
}

// export absorbs export failures: a failed upload means "no export", never a
// failed request.
func (slf *ChatService) export(ctx context.Context, result *models.TabularResult) (string, *string) {
	artifact, err := slf.exporter.Export(ctx, result)
	if err != nil {
		slf.logger.Error().Err(err).Msg("export failed, answering without download link")
		return "", nil
	}
	if artifact == nil {
		return "", nil
	}
	return artifact.URL, pkg.ToPtr(artifact.URL)
}

func (slf *ChatService) shouldExport(question string, rowCount int) bool {
	if rowCount > slf.exportRowThreshold {
		return true
	}
	lowered := strings.ToLower(question)
	for _, keyword := range exportKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

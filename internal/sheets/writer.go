package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/patrio-app/patrio/internal/common"
	"github.com/patrio-app/patrio/internal/model"
)

// Exporter writes a closed period to an external report.
type Exporter interface {
	Export(ctx context.Context, summary model.CloseSummary) error
}

// Writer exports month-close summaries to a Google spreadsheet, one tab
// per period.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a Google Sheets exporter.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Export writes one period's summary to a tab named after the period.
// An existing tab for the same period is overwritten.
func (w *Writer) Export(ctx context.Context, summary model.CloseSummary) error {
	w.logger.Info("exporting close summary",
		"period", summary.Period,
		"categories", len(summary.ByCategory))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if err := w.ensureSheet(ctx, spreadsheetID, summary.Period); err != nil {
		return fmt.Errorf("failed to prepare sheet for %s: %w", summary.Period, err)
	}

	values := prepareCloseData(summary)

	retryOpts := common.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	err = common.WithRetry(ctx, func() error {
		return w.writeData(ctx, spreadsheetID, summary.Period, values)
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to write close summary: %w", err)
	}

	w.logger.Info("close summary exported",
		"spreadsheet_id", spreadsheetID,
		"period", summary.Period,
		"rows_written", len(values))

	return nil
}

// createSheetsService builds the API client from whichever auth method
// the config carries.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	switch {
	case config.ServiceAccountPath != "":
		jsonKey, err := os.ReadFile(config.ServiceAccountPath) // #nosec G304
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}
		tokenSource = jwtConfig.TokenSource(ctx)

	case config.RefreshToken != "":
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}
		tokenSource = oauthConfig.TokenSource(ctx, &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		})

	default:
		token, err := GetOrCreateToken(ctx, OAuth2Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			TokenFile:    config.TokenFile,
		})
		if err != nil {
			return nil, err
		}
		tokenSource = oauth2.StaticTokenSource(token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return srv, nil
}

// getOrCreateSpreadsheet verifies the configured spreadsheet or creates
// a new one.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	created, err := w.service.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

// ensureSheet creates the period tab if missing and clears it otherwise.
func (w *Writer) ensureSheet(ctx context.Context, spreadsheetID, period string) error {
	spreadsheet, err := w.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return err
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == period {
			_, err := w.service.Spreadsheets.Values.
				Clear(spreadsheetID, fmt.Sprintf("'%s'!A:Z", period), &sheets.ClearValuesRequest{}).
				Context(ctx).Do()
			return err
		}
	}

	_, err = w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: period},
			},
		}},
	}).Context(ctx).Do()
	return err
}

// prepareCloseData lays out a period summary as spreadsheet rows.
func prepareCloseData(summary model.CloseSummary) [][]any {
	values := make([][]any, 0, 8+len(summary.ByCategory))

	values = append(values,
		[]any{"Cierre", summary.Period},
		[]any{},
		[]any{"Ingresos", summary.TotalIncome},
		[]any{"Gastos", summary.TotalExpenses},
		[]any{"Neto", summary.Net},
		[]any{},
		[]any{"Categoría", "Importe"},
	)

	// Largest categories first.
	categories := make([]string, 0, len(summary.ByCategory))
	for category := range summary.ByCategory {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if summary.ByCategory[categories[i]] != summary.ByCategory[categories[j]] {
			return summary.ByCategory[categories[i]] > summary.ByCategory[categories[j]]
		}
		return categories[i] < categories[j]
	})

	for _, category := range categories {
		values = append(values, []any{category, summary.ByCategory[category]})
	}

	return values
}

// writeData writes the rows into the period tab.
func (w *Writer) writeData(ctx context.Context, spreadsheetID, period string, values [][]any) error {
	_, err := w.service.Spreadsheets.Values.
		Update(spreadsheetID, fmt.Sprintf("'%s'!A1", period), &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write rows for %s: %w", period, err)
	}
	return nil
}

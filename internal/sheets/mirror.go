// Package sheets mirrors the expense collection into a Google spreadsheet.
// The worker appends one row per expense and removes rows when expenses
// are deleted, so the sheet stays a readable copy of the store.
package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"gastos/internal/config"
)

// Row layout: A=id, B=title, C=amount, D=category, E=date.
const idColumn = "A"

type Mirror struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewFromConfig builds a Mirror using the OAuth client and token from cfg.
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Mirror, error) {
	if cfg.GoogleSpreadsheetID == "" {
		return nil, errors.New("missing Google spreadsheet id")
	}
	sheetName := cfg.GoogleSheetName
	if sheetName == "" {
		sheetName = "Expenses"
	}

	clientJSON, err := loadJSON(cfg.GoogleOAuthClientJSON, cfg.GoogleOAuthClientFile)
	if err != nil {
		return nil, fmt.Errorf("load oauth client: %w", err)
	}
	tokenJSON, err := loadJSON(cfg.GoogleOAuthTokenJSON, cfg.GoogleOAuthTokenFile)
	if err != nil {
		return nil, fmt.Errorf("load oauth token: %w", err)
	}

	oauthCfg, err := google.ConfigFromJSON(clientJSON, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("oauth config: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenJSON, &token); err != nil {
		return nil, fmt.Errorf("decode oauth token: %w", err)
	}

	svc, err := gsheet.NewService(ctx, goption.WithHTTPClient(oauthCfg.Client(ctx, &token)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Mirror{
		svc:           svc,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func loadJSON(inline, file string) ([]byte, error) {
	switch {
	case strings.TrimSpace(inline) != "":
		return []byte(inline), nil
	case file != "":
		return os.ReadFile(file)
	default:
		return nil, errors.New("neither inline JSON nor file path provided")
	}
}

// Append writes one expense row at the bottom of the sheet.
func (m *Mirror) Append(ctx context.Context, id, title string, cents int64, category, date string) error {
	rng := fmt.Sprintf("%s!A:E", m.sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{{
		id, title, float64(cents) / 100.0, category, date,
	}}}

	_, err := m.svc.Spreadsheets.Values.Append(m.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append row to %s: %w", m.sheetName, err)
	}
	return nil
}

// Delete removes the row whose id column matches id. A missing row is
// not an error, the mirror may simply have never seen the expense.
func (m *Mirror) Delete(ctx context.Context, id string) error {
	rowIndex, err := m.findRow(ctx, id)
	if err != nil {
		return err
	}
	if rowIndex < 0 {
		return nil
	}

	sheetID, err := m.sheetID(ctx)
	if err != nil {
		return err
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			DeleteDimension: &gsheet.DeleteDimensionRequest{
				Range: &gsheet.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowIndex),
					EndIndex:   int64(rowIndex + 1),
				},
			},
		}},
	}
	_, err = m.svc.Spreadsheets.BatchUpdate(m.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("delete row %d: %w", rowIndex, err)
	}
	return nil
}

// Replace removes any existing row for id and appends the new values.
func (m *Mirror) Replace(ctx context.Context, id, title string, cents int64, category, date string) error {
	if err := m.Delete(ctx, id); err != nil {
		return err
	}
	return m.Append(ctx, id, title, cents, category, date)
}

// findRow returns the zero-based row index of id, or -1 when absent.
func (m *Mirror) findRow(ctx context.Context, id string) (int, error) {
	rng := fmt.Sprintf("%s!%s:%s", m.sheetName, idColumn, idColumn)
	resp, err := m.svc.Spreadsheets.Values.Get(m.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read id column: %w", err)
	}
	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if cell, ok := row[0].(string); ok && cell == id {
			return i, nil
		}
	}
	return -1, nil
}

func (m *Mirror) sheetID(ctx context.Context) (int64, error) {
	meta, err := m.svc.Spreadsheets.Get(m.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read spreadsheet metadata: %w", err)
	}
	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == m.sheetName {
			return sheet.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found in spreadsheet", m.sheetName)
}

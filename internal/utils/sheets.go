package utils

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// NewSheetsService builds the Google Sheets client from a service-account
// credentials file. A missing file is an error the caller treats as fatal.
func NewSheetsService(ctx context.Context, credentialsFile string) (*sheets.Service, error) {
	if _, err := os.Stat(credentialsFile); err != nil {
		return nil, fmt.Errorf("service account credentials file %q: %w", credentialsFile, err)
	}

	srv, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}
	return srv, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fieldsync/internal/logging"
	"github.com/goliatone/go-fieldsync/pkg/autofill"
	"github.com/goliatone/go-fieldsync/pkg/config"
)

func newLookupServerCommand(ctx *commandContext) *cobra.Command {
	var (
		recordsPath string
		addr        string
		route       string
		param       string
	)

	cmd := &cobra.Command{
		Use:   "lookup-server",
		Short: "Serve the metadata lookup contract from a YAML or JSON record file",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loadRecords(recordsPath)
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr(), config.Logging{})
			if err != nil {
				return err
			}
			mux := http.NewServeMux()
			mux.Handle(route, autofill.Handler(records, param))
			server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

			go func() {
				<-cmd.Context().Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = server.Shutdown(shutdownCtx)
			}()

			logger.Info("lookup server listening",
				slog.String(logging.FieldComponent, "lookup-server"),
				slog.String("addr", addr),
				slog.String("route", route),
				slog.Int("records", len(records)),
			)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&recordsPath, "records", "", "Record file mapping identifiers to fields")
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Listen address")
	cmd.Flags().StringVar(&route, "route", autofill.DefaultEndpoint, "Route serving lookups")
	cmd.Flags().StringVar(&param, "param", autofill.DefaultParam, "JSON key carrying the identifier")
	_ = cmd.MarkFlagRequired("records")
	return cmd
}

// loadRecords reads identifier → fields records. YAML is a superset of JSON,
// so one decoder covers both.
func loadRecords(path string) (autofill.Records, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	var records autofill.Records
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse records %s: %w", path, err)
	}
	return records, nil
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"nexora_backend/internal/app/di"
	"nexora_backend/internal/feature/reports/export"
	"nexora_backend/internal/feature/reports/usecase"
	"nexora_backend/internal/platform/config"
	"nexora_backend/internal/platform/logger"
	"nexora_backend/internal/shared/rowfilter"
)

// reportSource はCLIが必要とするストア操作です。
type reportSource interface {
	Rows(ctx context.Context, view usecase.View) (usecase.Report, error)
	Import(ctx context.Context, docs [][]byte) error
	Close(ctx context.Context) error
}

// opener は設定からreportSourceを開きます。テストで差し替えられます。
type opener interface {
	Open(ctx context.Context) (reportSource, error)
}

type exportOptions struct {
	format  string
	search  string
	filters []string
	bands   []string
}

func newRootCmd(o opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "nexora",
		Short:         "Export Nexora report views",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newViewsCmd(), newExportCmd(o), newImportCmd(o))
	return root
}

func newViewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List report views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, v := range usecase.Views() {
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			return nil
		},
	}
}

func newExportCmd(o opener) *cobra.Command {
	opts := exportOptions{}
	cmd := &cobra.Command{
		Use:   "export <view>",
		Short: "Render a report view as a table, CSV or JSON",
		Long: "Render a report view as a table, CSV or JSON.\n\n" +
			"Bands: " + strings.Join(rowfilter.GroupNames(), ", ") + " (e.g. --band stockPerformance=High)",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := usecase.ParseView(args[0])
			if err != nil {
				return err
			}
			pred, err := opts.predicate()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			src, err := o.Open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = src.Close(ctx) }()

			return runExport(ctx, src, cmd.OutOrStdout(), view, opts.format, pred)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", export.FormatTable, "output format: "+strings.Join(export.Formats, "|"))
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "case-insensitive search over every column")
	cmd.Flags().StringArrayVar(&opts.filters, "filter", nil, "exact match filter field=value (repeatable)")
	cmd.Flags().StringArrayVar(&opts.bands, "band", nil, "band filter group=Name (repeatable)")
	return cmd
}

func newImportCmd(o opener) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Load a JSON array (or a single object) of company documents into the relational store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			docs, err := splitDocuments(data)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			ctx := cmd.Context()
			src, err := o.Open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = src.Close(ctx) }()

			if err := src.Import(ctx, docs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d documents\n", len(docs))
			return nil
		},
	}
}

func runExport(ctx context.Context, src reportSource, w io.Writer, view usecase.View, format string, pred rowfilter.Predicate) error {
	report, err := src.Rows(ctx, view)
	if err != nil {
		return err
	}
	tbl, err := export.FromRows(report.Rows)
	if err != nil {
		return err
	}
	return tbl.Filter(pred).Render(w, format)
}

func (o exportOptions) predicate() (rowfilter.Predicate, error) {
	preds := []rowfilter.Predicate{rowfilter.Search(o.search)}
	for _, f := range o.filters {
		field, value, ok := strings.Cut(f, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid --filter %q (want field=value)", f)
		}
		preds = append(preds, rowfilter.Equals(field, value))
	}
	for _, b := range o.bands {
		group, band, ok := strings.Cut(b, "=")
		if !ok || group == "" {
			return nil, fmt.Errorf("invalid --band %q (want group=Name)", b)
		}
		p, err := rowfilter.InBand(group, band)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return rowfilter.All(preds...), nil
}

// splitDocuments はJSON配列を要素ごとのドキュメントに分けます。単一のオブジェクトは1件として扱います。
func splitDocuments(data []byte) ([][]byte, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		if !json.Valid(data) {
			return nil, errors.New("input is not valid JSON")
		}
		return [][]byte{data}, nil
	}
	if len(data) == 0 || data[0] != '[' {
		return nil, errors.New("input must be a JSON array or object of company documents")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	docs := make([][]byte, 0, len(items))
	for _, it := range items {
		docs = append(docs, []byte(it))
	}
	return docs, nil
}

// storeOpener は設定ファイルと環境変数からストアを組み立てます。
type storeOpener struct{}

func (storeOpener) Open(ctx context.Context) (reportSource, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if _, err := logger.Setup(os.Stderr, cfg.Log.Level); err != nil {
		return nil, err
	}
	r, err := di.NewReports(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &diSource{r: r}, nil
}

type diSource struct {
	r *di.Reports
}

func (s *diSource) Rows(ctx context.Context, view usecase.View) (usecase.Report, error) {
	return s.r.Usecase.Rows(ctx, view)
}

func (s *diSource) Import(ctx context.Context, docs [][]byte) error {
	if s.r.Writer == nil {
		return errors.New("import requires store.driver postgres or sqlite")
	}
	if err := s.r.Writer.SaveDocuments(ctx, docs); err != nil {
		return err
	}
	if s.r.Cache != nil {
		if err := s.r.Cache.Invalidate(ctx); err != nil {
			slog.Warn("cache invalidation failed", "error", err)
		}
	}
	return nil
}

func (s *diSource) Close(ctx context.Context) error { return s.r.Close(ctx) }

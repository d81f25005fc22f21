package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"alfredoptarigan/resume-ranker/internal/config"
	"alfredoptarigan/resume-ranker/internal/logger"
	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var rankCmd = &cobra.Command{
	Use:   "rank --job <file|text> <resume>...",
	Short: "Rank resume files against a job description",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().String("job", "", "job description, either a file (.pdf, .docx, .txt) or literal text")
	rankCmd.Flags().StringP("out", "o", "", "directory for the PDF report (default is REPORT_PATH)")
	rankCmd.Flags().StringP("format", "f", formatTable, "output format: table, json or yaml")
	rankCmd.Flags().String("xlsx", "", "also export the ranking to this spreadsheet file")
	_ = rankCmd.MarkFlagRequired("job")
}

// rankEntry is the printable form of a ScoreResult.
type rankEntry struct {
	Rank     int     `json:"rank" yaml:"rank"`
	Filename string  `json:"filename" yaml:"filename"`
	Score    float64 `json:"score" yaml:"score"`
	Feedback string  `json:"feedback,omitempty" yaml:"feedback,omitempty"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty"`
}

func runRank(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	flags := cmd.Flags()

	format, _ := flags.GetString("format")
	switch format {
	case formatTable, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	zl, err := logger.New(viper.GetBool("json") || cfg.Log.JSON, viper.GetBool("debug") || cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	reportDir, _ := flags.GetString("out")
	if reportDir == "" {
		reportDir = cfg.Storage.ReportPath
	}
	storageService := services.NewStorageService(cfg.Storage.UploadPath, reportDir)
	if err := storageService.EnsureDirs(); err != nil {
		return err
	}

	extractor := services.NewTextExtractor()
	jobArg, _ := flags.GetString("job")
	jobDescription, err := resolveJobDescription(extractor, jobArg)
	if err != nil {
		return err
	}

	generator, err := config.InitTextGenerator(ctx, cfg, zl)
	if err != nil {
		return err
	}

	sessions, err := config.InitSessionStore(cfg, zl)
	if err != nil {
		return err
	}

	pipeline := services.NewPipelineOrchestrator(
		extractor,
		services.NewResumeScorer(generator, cfg.Scoring.Timeout, zl),
		services.NewPDFReportGenerator(),
		sessions,
		nil,
		services.PipelineConfig{Pace: cfg.Scoring.Pace, ReportDir: reportDir},
		zl,
	)

	run := pipeline.Start(ctx, services.Batch{
		JobDescription: jobDescription,
		Files:          localFiles(args),
	})

	stderr := cmd.ErrOrStderr()
	for event := range run.Events() {
		switch event.Type {
		case models.EventProgress:
			fmt.Fprintf(stderr, "[%d/%d] %s\n", event.Processed+1, event.Total, event.CurrentFile)
		case models.EventError:
			fmt.Fprintln(stderr, event.Message)
		}
	}

	session, err := run.Wait()
	if err != nil {
		return err
	}
	zl.Debug("ranking stored", zap.String("session_id", session.ID.String()))

	if err := printRanking(cmd.OutOrStdout(), format, session.Results); err != nil {
		return err
	}

	if xlsxPath, _ := flags.GetString("xlsx"); xlsxPath != "" {
		if err := writeSpreadsheet(xlsxPath, session.Results); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Spreadsheet: %s\n", xlsxPath)
	}

	fmt.Fprintf(stderr, "Report: %s\n", filepath.Join(reportDir, filepath.Base(session.ReportLink)))
	return nil
}

// resolveJobDescription reads arg as a document when it names a file and
// uses it verbatim otherwise.
func resolveJobDescription(extractor services.TextExtractor, arg string) (string, error) {
	info, err := os.Stat(arg)
	if err != nil || info.IsDir() {
		if arg == "" {
			return "", errors.New("job description is empty")
		}
		return arg, nil
	}

	doc, err := extractor.Extract(arg)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	if doc.Text == "" {
		return "", fmt.Errorf("job description file %s has no text", arg)
	}
	return doc.Text, nil
}

func localFiles(paths []string) []models.UploadedFile {
	files := make([]models.UploadedFile, 0, len(paths))
	for _, p := range paths {
		files = append(files, models.UploadedFile{Name: filepath.Base(p), Path: p})
	}
	return files
}

func printRanking(w io.Writer, format string, results []models.ScoreResult) error {
	entries := make([]rankEntry, 0, len(results))
	for i, r := range results {
		entries = append(entries, rankEntry{
			Rank:     i + 1,
			Filename: r.Filename,
			Score:    r.Score,
			Feedback: r.Feedback,
			Error:    r.Error,
		})
	}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "RANK\tFILE\tSCORE\tNOTE")
		for _, e := range entries {
			fmt.Fprintf(tw, "%d\t%s\t%.1f\t%s\n", e.Rank, e.Filename, e.Score, e.Error)
		}
		return tw.Flush()
	}
}

func writeSpreadsheet(path string, results []models.ScoreResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create spreadsheet: %w", err)
	}
	if err := services.ExportRanking(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

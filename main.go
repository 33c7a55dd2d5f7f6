package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/statement-sheet-importer/internal/api"
	"github.com/insightdelivered/statement-sheet-importer/internal/fallback"
	"github.com/insightdelivered/statement-sheet-importer/internal/importer"
	"github.com/insightdelivered/statement-sheet-importer/internal/logger"
	"github.com/insightdelivered/statement-sheet-importer/internal/models"
	"github.com/insightdelivered/statement-sheet-importer/internal/writer"
)

const version = "1.0.0"

func main() {
	// CLI flags
	ownerFlag := flag.String("owner", "", "Comma-separated owner account numbers/IBANs for counterparty resolution")
	currencyFlag := flag.String("currency", models.SupportedCurrency, "Currency of the target ledger (must be EUR)")
	outputFlag := flag.String("output", "", "Output file path (defaults to input filename with new extension)")
	formatFlag := flag.String("format", "json", "Output format: json or csv")
	headerFlag := flag.Bool("header", true, "Include statement metadata header rows in CSV output")
	serveFlag := flag.Bool("serve", false, "Run the HTTP import API instead of converting files")
	addrFlag := flag.String("addr", ":8080", "Listen address for --serve")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Bank Statement Sheet Importer
by Insight Delivered

Converts bank transaction spreadsheet exports (.xls, .xlsx) into normalized
statement envelopes for ledger reconciliation. Unrecognized files fall back
to a best-effort PDF text importer.

Usage:
  statement-sheet-importer [flags] <input.xlsx> [input2.xls ...]
  statement-sheet-importer --serve [--addr :8080]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert a spreadsheet export to a JSON statement envelope
  statement-sheet-importer export.xlsx

  # Resolve counterparty names against the ledger's own IBAN
  statement-sheet-importer --owner=AT611904300234573201 export.xlsx

  # Audit CSV output
  statement-sheet-importer --format=csv --output=statement.csv export.xls

  # Run the HTTP import API
  statement-sheet-importer --serve --addr :8080
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-sheet-importer v%s\n", version)
		os.Exit(0)
	}

	if *serveFlag {
		serve(*addrFlag)
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	if *formatFlag != "json" && *formatFlag != "csv" {
		fatalf("Unknown output format %q. Supported: json, csv\n", *formatFlag)
	}

	owners := models.NewOwnerAccounts(strings.Split(*ownerFlag, ",")...)

	for _, inputPath := range flag.Args() {
		if err := processFile(inputPath, owners, *currencyFlag, *outputFlag, *formatFlag, *headerFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(inputPath string, owners models.OwnerAccounts, currency, outputPath, format string, includeHeader bool) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("input file could not be read: %w", err)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	log := logger.New()
	imp := importer.New(owners, currency, log)

	stmt, err := imp.Import(data)
	if errors.Is(err, models.ErrUnrecognizedFormat) {
		fmt.Println("  Not a spreadsheet container, trying PDF fallback")
		stmt, err = fallback.Import(data, log)
	}
	if err != nil {
		return err
	}

	fmt.Printf("  Statement: %s\n", stmt.Name)
	fmt.Printf("  Found %d transaction(s)\n", len(stmt.Transactions))

	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outPath = base + "." + format
	}

	switch format {
	case "csv":
		w := &writer.CSVWriter{IncludeHeader: includeHeader}
		if err := w.WriteToFile(outPath, stmt); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
	default:
		encoded, err := json.MarshalIndent(stmt, "", "  ")
		if err != nil {
			return fmt.Errorf("JSON encoding failed: %w", err)
		}
		if err := os.WriteFile(outPath, append(encoded, '\n'), 0o644); err != nil {
			return fmt.Errorf("JSON write failed: %w", err)
		}
	}

	fmt.Printf("  Output: %s\n", outPath)
	fmt.Println("  Done.")
	return nil
}

func serve(addr string) {
	log := logger.New()

	app := fiber.New(fiber.Config{
		AppName:   "statement-sheet-importer v" + version,
		BodyLimit: 32 << 20,
	})
	api.NewHandler(log).RegisterRoutes(app)

	log.Info().Str("addr", addr).Msg("import API listening")
	if err := app.Listen(addr); err != nil {
		fatalf("server failed: %v\n", err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

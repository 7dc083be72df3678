package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/payment-clauses/internal/conciliacao"
	"github.com/iwvelando/payment-clauses/internal/config"
	"github.com/iwvelando/payment-clauses/internal/engine"
	"github.com/iwvelando/payment-clauses/internal/export"
	"github.com/iwvelando/payment-clauses/pkg/constants"
	"github.com/iwvelando/payment-clauses/pkg/output"
	"github.com/iwvelando/payment-clauses/pkg/validation"
	"go.uber.org/zap"
)

// writeFile creates path and hands it to write, closing it afterwards.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to contract document")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, pdf, xlsx, yaml")
	outputPath := flag.String("out", "", "output file for pdf and xlsx (default clausula.pdf or cronograma.xlsx)")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	adjust := flag.Float64("adjust", 0, "percentage applied to every unsettled condition before rendering")
	dimension := flag.String("dimension", string(conciliacao.DimensionValor), "field scaled by -adjust: valor or area")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := config.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Normalise codes and check the data-model invariants.
	err = conf.Prepare()
	if err != nil {
		logger.Fatal("failed to prepare contract document",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	eng := engine.New(logger, nil)

	if *adjust != 0 {
		dim, err := conciliacao.ParseDimension(*dimension)
		if err != nil {
			logger.Fatal("invalid adjustment dimension",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}

		adjustment, err := eng.ApplyAdjustment(conf.Contrato, *adjust, dim)
		if err != nil {
			logger.Fatal("failed to apply adjustment",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		conf.Contrato = adjustment.Contrato
		logger.Info("adjustment applied",
			zap.String("op", "main"),
			zap.Float64("percentual", *adjust),
			zap.Int("ignoradas", adjustment.SkippedCount),
		)
	}

	if len(conf.Fechamento) > 0 {
		closing, err := eng.CloseBalance(conf.Contrato, conf.Fechamento)
		if err != nil {
			logger.Fatal("failed to close balance",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		conf.Contrato = closing.Contrato
		for _, summary := range closing.Resumos {
			fields := []zap.Field{
				zap.String("op", "main"),
				zap.String("alvo", summary.TargetName),
				zap.String("campo", summary.Field),
				zap.String("original", summary.OriginalDisplay),
				zap.String("valor", summary.ValueDisplay),
				zap.Bool("convergiu", summary.Converged),
			}
			if len(summary.Notes) > 0 {
				fields = append(fields, zap.Strings("notas", summary.Notes))
			}
			logger.Info("closing directive applied", fields...)
		}
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	report, err := eng.Generate(conf.Contrato)
	if err != nil {
		logger.Fatal("failed to generate clause",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	path := *outputPath
	if path == "" && validation.IsBinaryFormat(outputFormat) {
		path = "clausula.pdf"
		if outputFormat == constants.OutputFormatXLSX {
			path = "cronograma.xlsx"
		}
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, report.Clausula, report.Conciliacao, report.Avisos)
	case constants.OutputFormatCSV:
		output.CsvFormat(os.Stdout, report.Cronograma)
	case constants.OutputFormatYAML:
		conf.Contrato = report.Contrato
		err = config.WriteDocument(os.Stdout, *conf)
	case constants.OutputFormatPDF:
		err = writeFile(path, func(w io.Writer) error {
			return export.WriteClausePDF(w, report.Contrato.Titulo, report.Clausula)
		})
	case constants.OutputFormatXLSX:
		err = writeFile(path, func(w io.Writer) error {
			return export.WriteScheduleXLSX(w, report.Cronograma, report.Conciliacao)
		})
	}
	if err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.String("format", outputFormat),
			zap.Error(err),
		)
	}
}

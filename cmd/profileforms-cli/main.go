package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-profileforms/pkg/audit"
	"github.com/goliatone/go-profileforms/pkg/completion"
	"github.com/goliatone/go-profileforms/pkg/gateway"
	"github.com/goliatone/go-profileforms/pkg/record"
	"github.com/goliatone/go-profileforms/pkg/schema"
	"github.com/goliatone/go-profileforms/pkg/tui"
	"github.com/goliatone/go-profileforms/pkg/wizard"
)

func main() {
	entity := flag.String("entity", schema.KindStudentProfile, "entity kind to edit")
	schemaFile := flag.String("schema", "", "optional YAML entity schema overriding the built-in kind")
	recordFile := flag.String("record", "", "JSON record file to seed from")
	endpoint := flag.String("endpoint", "", "gateway base URL (in-memory gateway if empty)")
	report := flag.Bool("report", false, "print completion and audit report instead of running the wizard")
	flag.Parse()

	es, ok := schema.Get(*entity)
	if *schemaFile != "" {
		loaded, err := schema.LoadYAMLFile(*schemaFile)
		if err != nil {
			log.Fatalf("Failed to load schema: %v", err)
		}
		es, ok = loaded, true
	}
	if !ok {
		log.Fatalf("Unknown entity kind %q (known: %s)", *entity, strings.Join(schema.Default().Kinds(), ", "))
	}

	rec := record.New()
	if *recordFile != "" {
		raw, err := os.ReadFile(*recordFile)
		if err != nil {
			log.Fatalf("Failed to read record: %v", err)
		}
		if err := json.Unmarshal(raw, &rec); err != nil {
			log.Fatalf("Failed to parse record: %v", err)
		}
	}

	if *report {
		printReport(es, rec)
		return
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	gw, err := buildGateway(*endpoint, logger)
	if err != nil {
		log.Fatalf("Failed to build gateway: %v", err)
	}

	mode := wizard.ModeCreate
	if len(rec) > 0 {
		mode = wizard.ModeEdit
	}
	ctrl := wizard.New(es, gw,
		wizard.WithMode(mode),
		wizard.WithInitialData(rec),
		wizard.WithLogger(logger),
	)

	runner := tui.NewRunner(es, ctrl, tui.NewSurveyDriver())
	if err := runner.Run(context.Background()); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Println("Aborted.")
			return
		}
		log.Fatalf("Wizard failed: %v", err)
	}
}

func buildGateway(endpoint string, logger *zap.Logger) (gateway.Gateway, error) {
	if strings.TrimSpace(endpoint) == "" {
		return gateway.NewMemory(nil), nil
	}
	return gateway.NewClient(endpoint, gateway.WithLogger(logger))
}

func printReport(es schema.EntitySchema, rec record.Record) {
	fieldLevel := completion.FieldLevel(es, rec)
	sectionLevel := completion.SectionLevel(es, rec)

	fmt.Printf("Completion (fields):   %d%%\n", fieldLevel.Percentage)
	fmt.Printf("Completion (sections): %d%% (%d/%d complete)\n",
		sectionLevel.Percentage, sectionLevel.CompletedSections, sectionLevel.TotalSections)
	for _, section := range es.Sections {
		status := "incomplete"
		if fieldLevel.PerSection[section.ID] {
			status = "complete"
		}
		fmt.Printf("  %-28s %s\n", section.Label, status)
	}
	if len(fieldLevel.MissingFields) > 0 {
		fmt.Printf("Missing: %s\n", strings.Join(fieldLevel.MissingFields, ", "))
	}

	if es.Kind != schema.KindStudentProfile {
		return
	}
	findings := audit.Run(rec)
	if len(findings) == 0 {
		fmt.Println("No data-quality findings.")
		return
	}
	fmt.Println("Data-quality findings:")
	for _, finding := range findings {
		fmt.Printf("  [%s] %s: %s", finding.Severity, finding.Field, finding.Issue)
		if finding.ObservedValue != "" {
			fmt.Printf(" (got %q)", finding.ObservedValue)
		}
		fmt.Println()
		if finding.Recommendation != "" {
			fmt.Printf("      %s\n", finding.Recommendation)
		}
	}
}

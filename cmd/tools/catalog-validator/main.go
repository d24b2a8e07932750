// cmd/tools/catalog-validator/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"pitchdeck-pipeline/internal/catalog"
	"pitchdeck-pipeline/pkg/registry"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validatePath := validateCmd.String("path", "configs/catalog.json", "Path to catalog override file")

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportPath := exportCmd.String("out", "configs/catalog.json", "Where to write the built-in catalog")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		cat, err := registry.LoadCatalog(*validatePath)
		if err != nil {
			fmt.Printf("Catalog is invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Catalog is valid: %d topics, %d templates, %d required sections\n",
			len(cat.Topics()), len(cat.Templates()), len(cat.RequiredSections()))

	case "export":
		exportCmd.Parse(os.Args[2:])
		if err := exportBuiltin(*exportPath); err != nil {
			fmt.Printf("Error exporting catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Built-in catalog written to %s\n", *exportPath)

	default:
		help()
		os.Exit(1)
	}
}

// exportBuiltin writes the built-in catalog as an override file, the usual
// starting point for a customized interview.
func exportBuiltin(path string) error {
	cat := catalog.New()

	file := registry.CatalogFile{
		Version:          "1.0.0",
		LastUpdated:      time.Now().UTC().Format(time.RFC3339),
		RequiredSections: cat.RequiredSections(),
	}
	for _, t := range cat.Topics() {
		file.Topics = append(file.Topics, registry.TopicEntry{
			ID:                 t.ID,
			Position:           t.Position,
			Question:           t.Question,
			SatisfactionPrompt: t.SatisfactionPrompt,
			Keywords:           t.Keywords,
			Phrases:            t.Phrases,
		})
	}
	for _, t := range cat.Templates() {
		file.Templates = append(file.Templates, registry.TemplateEntry{
			ID:           t.ID,
			Template:     t.Template,
			Position:     t.Position,
			Title:        t.Title,
			ContentKey:   t.ContentKey,
			Keywords:     t.Keywords,
			MinKeywords:  t.MinKeywords,
			Required:     t.Required,
			TableHeaders: t.TableHeaders,
		})
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func help() {
	fmt.Println("Usage: catalog-validator <command> [flags]")
	fmt.Println("Commands:")
	fmt.Println("  validate -path <file>   Validate a catalog override file")
	fmt.Println("  export   -out  <file>   Export the built-in catalog as an override template")
}

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vaibhaw-/RecordR/internal/recordr/assembler"
	"github.com/vaibhaw-/RecordR/internal/recordr/config"
	"github.com/vaibhaw-/RecordR/internal/recordr/sqlmode"
)

var mappingFile string
var mappingFormat string
var mappingParser string

var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Inspect and validate field mapping files",
}

var mappingValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a field mapping and report its SQL parsing mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		if mappingParser != "" {
			cfg.Parser.Format = mappingParser
		}

		m, err := config.LoadMappingFile(mappingFile, mappingFormat)
		if err != nil {
			return err
		}

		res := sqlmode.Validate(m)
		fmt.Fprintf(os.Stdout, "%s: %s\n", mappingFile, res)
		if !res.Valid() {
			return fmt.Errorf("mapping validation failed: %s", res.Reason)
		}

		// also vet the extraction keys against the payload parser
		p, err := buildParser(cfg)
		if err != nil {
			return err
		}
		if _, err := assembler.New(m, p); err != nil {
			return fmt.Errorf("mapping validation failed: %w", err)
		}

		fields := make([]string, 0, len(m))
		for f := range m {
			if config.KnownField(f) {
				fields = append(fields, f)
			}
		}
		sort.Strings(fields)
		fmt.Fprintf(os.Stdout, "parser: %s, fields: %d %v\n", cfg.Parser.Format, len(fields), fields)
		return nil
	},
}

var mappingSniffersCmd = &cobra.Command{
	Use:   "sniffers",
	Short: "List supported sniffer parser names",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range sqlmode.KnownSniffers() {
			serverType, _ := sqlmode.ServerType(name)
			fmt.Fprintf(os.Stdout, "%-10s %s\n", name, serverType)
		}
	},
}

func init() {
	mappingCmd.AddCommand(mappingValidateCmd)
	mappingCmd.AddCommand(mappingSniffersCmd)

	mappingValidateCmd.Flags().StringVar(&mappingFile, "mapping", "", "Path to field mapping file")
	mappingValidateCmd.Flags().StringVar(&mappingFormat, "mapping-format", "auto", "Mapping file format: auto|json|yaml")
	mappingValidateCmd.Flags().StringVar(&mappingParser, "format", "", "Payload format the mapping keys target: json|regex|csv")

	_ = mappingValidateCmd.MarkFlagRequired("mapping")
}

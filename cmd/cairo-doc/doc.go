package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/enitrat/cairo-doc/internal/driver"
)

var docCmd = &cobra.Command{
	Use:   "doc [flags] <path> [path...]",
	Short: "Generate documentation comments for cairo files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDoc,
}

func init() {
	docCmd.Flags().StringP("directory", "d", "", "directory to write output files to")
	docCmd.Flags().StringP("output", "o", "", "output file name without extension (single input only)")
	docCmd.Flags().String("prefix", "", "prefix for derived output names (default doc_)")
	docCmd.Flags().Bool("in-place", false, "rewrite input files instead of deriving new ones")
	docCmd.Flags().Bool("stdout", false, "print documented source to stdout instead of writing files")
	docCmd.Flags().Bool("check", false, "report files whose documentation would change, write nothing")
	docCmd.Flags().String("format", "text", "output format (text|json)")
	docCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
	docCmd.Flags().Bool("no-cache", false, "disable the on-disk result cache")
	docCmd.Flags().Bool("clear-cache", false, "drop the on-disk result cache before running")
	docCmd.Flags().Int("jobs", 0, "number of files processed in parallel (0 = NumCPU)")
}

func runDoc(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	opts, outputFormat, uiValue, err := readDocFlags(cmd)
	if err != nil {
		return err
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	// Флаги перекрывают манифест; манифест ищется от рабочей директории.
	if manifest, found, err := loadProjectManifest(""); err != nil {
		return err
	} else if found {
		applyManifest(&opts, manifest)
	}

	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	useTUI := shouldUseTUI(mode) && !opts.Stdout && outputFormat == "text"

	var results []driver.DocResult
	if useTUI {
		results, err = runDocWithUI(cmd.Context(), args, opts)
	} else {
		results, err = driver.DocPaths(cmd.Context(), args, opts)
	}
	if err != nil {
		return err
	}

	var hasErrors, hasChanges bool
	switch outputFormat {
	case "text":
		renderDocText(results, opts, quiet, &hasErrors, &hasChanges)
	case "json":
		if err := renderDocJSON(results, opts.Check, &hasErrors, &hasChanges); err != nil {
			return err
		}
	default:
		return fmt.Errorf("doc: unsupported output format %q", outputFormat)
	}

	if hasErrors {
		return fmt.Errorf("doc: failed to document some files")
	}
	if opts.Check && hasChanges {
		return fmt.Errorf("doc: documentation changes required")
	}
	return nil
}

func readDocFlags(cmd *cobra.Command) (driver.DocOptions, string, string, error) {
	var opts driver.DocOptions
	var err error

	if opts.OutputDir, err = cmd.Flags().GetString("directory"); err != nil {
		return opts, "", "", err
	}
	if opts.OutputName, err = cmd.Flags().GetString("output"); err != nil {
		return opts, "", "", err
	}
	if opts.Prefix, err = cmd.Flags().GetString("prefix"); err != nil {
		return opts, "", "", err
	}
	if opts.InPlace, err = cmd.Flags().GetBool("in-place"); err != nil {
		return opts, "", "", err
	}
	if opts.Stdout, err = cmd.Flags().GetBool("stdout"); err != nil {
		return opts, "", "", err
	}
	if opts.Check, err = cmd.Flags().GetBool("check"); err != nil {
		return opts, "", "", err
	}
	if opts.Workers, err = cmd.Flags().GetInt("jobs"); err != nil {
		return opts, "", "", err
	}
	if opts.MaxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return opts, "", "", err
	}

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return opts, "", "", err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return opts, "", "", err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return opts, "", "", err
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return opts, "", "", err
	}

	if opts.Stdout && opts.Check {
		return opts, "", "", fmt.Errorf("doc: --stdout cannot be used with --check")
	}
	if opts.InPlace && (opts.OutputDir != "" || opts.OutputName != "") {
		return opts, "", "", fmt.Errorf("doc: --in-place cannot be combined with --directory or --output")
	}

	if !noCache || clearCache {
		// Недоступный кэш не мешает генерации.
		if cache, cacheErr := driver.OpenDiskCache("cairo-doc"); cacheErr == nil {
			if clearCache {
				if err := cache.DropAll(); err != nil {
					return opts, "", "", fmt.Errorf("doc: clear cache: %w", err)
				}
			}
			if !noCache {
				opts.Cache = cache
			}
		}
	}

	return opts, outputFormat, uiValue, nil
}

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
)

func renderDocText(results []driver.DocResult, opts driver.DocOptions, quiet bool, hasErrors, hasChanges *bool) {
	for _, res := range results {
		for _, line := range res.Diags {
			fmt.Fprintln(os.Stderr, line)
		}

		if res.Err != nil {
			*hasErrors = true
			errColor.Fprintf(os.Stderr, "doc: %s: %v\n", res.Path, res.Err)
			continue
		}

		if opts.Stdout {
			_, _ = os.Stdout.Write(res.Output)
			continue
		}

		if opts.Check {
			if res.Changed {
				*hasChanges = true
				if !quiet {
					warnColor.Fprintln(os.Stdout, res.Path)
				}
			}
			continue
		}

		if res.Changed && !quiet {
			okColor.Fprintf(os.Stdout, "documented %s -> %s\n", res.Path, res.OutPath)
		}
	}
}

func renderDocJSON(results []driver.DocResult, check bool, hasErrors, hasChanges *bool) error {
	type jsonResult struct {
		Path        string   `json:"path"`
		OutPath     string   `json:"out_path,omitempty"`
		Changed     bool     `json:"changed"`
		Cached      bool     `json:"cached"`
		CheckRun    bool     `json:"check"`
		Diagnostics []string `json:"diagnostics,omitempty"`
		Error       string   `json:"error,omitempty"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{
			Path:        res.Path,
			OutPath:     res.OutPath,
			Changed:     res.Changed,
			Cached:      res.Cached,
			CheckRun:    check,
			Diagnostics: res.Diags,
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
			*hasErrors = true
		}
		if res.Changed {
			*hasChanges = true
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

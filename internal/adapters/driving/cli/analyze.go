package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
	"github.com/custodia-labs/fanout-cli/internal/render"
)

// analyzeOptions holds the flags of the analyze command.
type analyzeOptions struct {
	depth       string
	focusArea   string
	keyword     string
	fanOutTypes []string
	fanOutOnly  bool
	intent      string
	specificity string
	currentDate string
	season      string
	json        bool
}

var analyzeOpts analyzeOptions

var analyzeCmd = &cobra.Command{
	Use:   "analyze [url]",
	Short: "Analyze the query coverage of a page",
	Long: `Fetches a page and reports which user queries it covers.

The page is decomposed into prerequisite, core and follow-up queries
(5, 15 or 30 depending on --depth). With --keyword the seed keyword is
also expanded into fan-out variants. Every query is then judged as
covered, partial or a gap, and the page receives a 0-100 coverage score.

Examples:
  fanout analyze https://example.com/guide
  fanout analyze https://example.com/guide --depth comprehensive --focus "dosage"
  fanout analyze https://example.com/whey --keyword "whey protein" --types equivalent,comparison
  fanout analyze https://example.com/whey --keyword "whey protein" --fan-out-only --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeOpts.depth, "depth", "d", "standard", "analysis depth: quick, standard or comprehensive")
	f.StringVar(&analyzeOpts.focusArea, "focus", "", "topic to focus the decomposition on")
	f.StringVarP(&analyzeOpts.keyword, "keyword", "k", "", "target keyword to expand into fan-out variants")
	f.StringSliceVar(&analyzeOpts.fanOutTypes, "types", nil,
		"fan-out variant types (default equivalent,specification,followUp,comparison,clarification)")
	f.BoolVar(&analyzeOpts.fanOutOnly, "fan-out-only", false, "skip decomposition and evaluate fan-out variants only")
	f.StringVar(&analyzeOpts.intent, "intent", "", "fan-out intent: shopping, research, navigation or entertainment")
	f.StringVar(&analyzeOpts.specificity, "specificity", "", "fan-out specificity: broad, specific or balanced")
	f.StringVar(&analyzeOpts.currentDate, "date", "", "current date for temporal variants (YYYY-MM-DD)")
	f.StringVar(&analyzeOpts.season, "season", "", "season for temporal variants")
	f.BoolVar(&analyzeOpts.json, "json", false, "output the report as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

// request builds the analysis request for url from the options.
func (o analyzeOptions) request(url string) domain.AnalysisRequest {
	req := domain.AnalysisRequest{
		URL:           url,
		Depth:         domain.Depth(o.depth),
		FocusArea:     o.focusArea,
		TargetKeyword: o.keyword,
		FanOutOnly:    o.fanOutOnly,
	}
	for _, t := range o.fanOutTypes {
		req.FanOutTypes = append(req.FanOutTypes, domain.VariantType(t))
	}

	if o.intent != "" || o.specificity != "" || o.currentDate != "" || o.season != "" {
		req.Context = &domain.AnalysisContext{
			Intent:                domain.Intent(o.intent),
			SpecificityPreference: domain.Specificity(o.specificity),
		}
		if o.currentDate != "" || o.season != "" {
			req.Context.Temporal = &domain.TemporalContext{
				CurrentDate: o.currentDate,
				Season:      o.season,
			}
		}
	}
	return req
}

// runAnalyze writes the report to stdout so it can be piped; logs stay on stderr.
func runAnalyze(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	req := analyzeOpts.request(args[0])
	if err := req.Validate(); err != nil {
		return err
	}
	if settingsService != nil {
		if err := settingsService.Validate(); err != nil {
			return err
		}
	}

	report, err := analysisService.Analyze(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("content gap analysis failed: %w", err)
	}

	if analyzeOpts.json {
		return outputReportJSON(cmd, report)
	}
	fmt.Fprint(cmd.OutOrStdout(), render.Markdown(report))
	return render.Summary(cmd.ErrOrStderr(), report)
}

func outputReportJSON(cmd *cobra.Command, report *domain.AnalysisReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

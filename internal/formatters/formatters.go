package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"atsbuddy/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ATSCheckResponse", &CheckTextFormatter{})
	registry.RegisterFormatter("markdown", "ATSCheckResponse", &CheckMarkdownFormatter{})
	registry.RegisterFormatter("text", "OptimizeResponse", &OptimizeTextFormatter{})
	registry.RegisterFormatter("markdown", "OptimizeResponse", &OptimizeMarkdownFormatter{})
	registry.RegisterFormatter("text", "KeywordGapResponse", &KeywordGapTextFormatter{})
	registry.RegisterFormatter("markdown", "KeywordGapResponse", &KeywordGapMarkdownFormatter{})
	registry.RegisterFormatter("text", "ExtractResponse", &ExtractTextFormatter{})
	registry.RegisterFormatter("markdown", "ExtractResponse", &ExtractMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ATSCheckResponse:
		return "ATSCheckResponse"
	case types.OptimizeResponse:
		return "OptimizeResponse"
	case types.KeywordGapResponse:
		return "KeywordGapResponse"
	case types.ExtractResponse:
		return "ExtractResponse"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

func writeList(output *strings.Builder, items []string, bullet string) {
	for _, item := range items {
		output.WriteString(bullet)
		output.WriteString(item)
		output.WriteString("\n")
	}
}

// CheckTextFormatter handles text formatting for ATS check results
type CheckTextFormatter struct{}

func (ctf *CheckTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ATSCheckResponse)
	if !ok {
		return "", fmt.Errorf("expected ATSCheckResponse, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS CHECK ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score: %.2f/100\n\n", result.OverallScore))

	output.WriteString("=== BREAKDOWN ===\n")
	output.WriteString(fmt.Sprintf("Keyword Match:        %.2f\n", result.Breakdown.KeywordMatch))
	output.WriteString(fmt.Sprintf("Section Completeness: %.2f\n", result.Breakdown.SectionCompleteness))
	output.WriteString(fmt.Sprintf("Readability:          %.2f\n", result.Breakdown.Readability))
	output.WriteString(fmt.Sprintf("UAE Market Fit:       %.2f\n\n", result.Breakdown.UAEMarketFit))

	if len(result.MatchedKeywords) > 0 {
		output.WriteString("Matched Keywords:\n")
		writeList(&output, result.MatchedKeywords, "- ")
		output.WriteString("\n")
	}
	if len(result.MissingKeywords) > 0 {
		output.WriteString("Missing Keywords:\n")
		writeList(&output, result.MissingKeywords, "- ")
		output.WriteString("\n")
	}
	if len(result.SectionGaps) > 0 {
		output.WriteString("Section Gaps:\n")
		writeList(&output, result.SectionGaps, "- ")
		output.WriteString("\n")
	}

	if len(result.Recommendations) > 0 {
		output.WriteString("=== RECOMMENDATIONS ===\n")
		for i, recommendation := range result.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, recommendation))
		}
	}

	return output.String(), nil
}

func (ctf *CheckTextFormatter) SupportedType() string {
	return "ATSCheckResponse"
}

// CheckMarkdownFormatter handles markdown formatting for ATS check results
type CheckMarkdownFormatter struct{}

func (cmf *CheckMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ATSCheckResponse)
	if !ok {
		return "", fmt.Errorf("expected ATSCheckResponse, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Check\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %.2f/100\n\n", result.OverallScore))

	output.WriteString("## Breakdown\n\n")
	output.WriteString(fmt.Sprintf("- Keyword match: %.2f\n", result.Breakdown.KeywordMatch))
	output.WriteString(fmt.Sprintf("- Section completeness: %.2f\n", result.Breakdown.SectionCompleteness))
	output.WriteString(fmt.Sprintf("- Readability: %.2f\n", result.Breakdown.Readability))
	output.WriteString(fmt.Sprintf("- UAE market fit: %.2f\n\n", result.Breakdown.UAEMarketFit))

	if len(result.MatchedKeywords) > 0 {
		output.WriteString("## Matched Keywords\n\n")
		writeList(&output, result.MatchedKeywords, "- ")
		output.WriteString("\n")
	}
	if len(result.MissingKeywords) > 0 {
		output.WriteString("## Missing Keywords\n\n")
		writeList(&output, result.MissingKeywords, "- ")
		output.WriteString("\n")
	}
	if len(result.SectionGaps) > 0 {
		output.WriteString("## Section Gaps\n\n")
		writeList(&output, result.SectionGaps, "- ")
		output.WriteString("\n")
	}

	if len(result.Recommendations) > 0 {
		output.WriteString("## Recommendations\n\n")
		for i, recommendation := range result.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, recommendation))
		}
	}

	return output.String(), nil
}

func (cmf *CheckMarkdownFormatter) SupportedType() string {
	return "ATSCheckResponse"
}

// OptimizeTextFormatter handles text formatting for optimization results
type OptimizeTextFormatter struct{}

func (otf *OptimizeTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.OptimizeResponse)
	if !ok {
		return "", fmt.Errorf("expected OptimizeResponse, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== OPTIMIZED SUMMARY ===\n\n")
	output.WriteString(result.OptimizedSummary)
	output.WriteString("\n\n")

	if len(result.RewrittenBullets) > 0 {
		output.WriteString("=== REWRITTEN BULLETS ===\n")
		writeList(&output, result.RewrittenBullets, "- ")
		output.WriteString("\n")
	}
	if len(result.SkillsToAdd) > 0 {
		output.WriteString("=== SKILLS TO ADD ===\n")
		writeList(&output, result.SkillsToAdd, "- ")
		output.WriteString("\n")
	}
	if len(result.UAELocalizationTips) > 0 {
		output.WriteString("=== UAE LOCALIZATION TIPS ===\n")
		for i, tip := range result.UAELocalizationTips {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, tip))
		}
	}

	return output.String(), nil
}

func (otf *OptimizeTextFormatter) SupportedType() string {
	return "OptimizeResponse"
}

// OptimizeMarkdownFormatter handles markdown formatting for optimization results
type OptimizeMarkdownFormatter struct{}

func (omf *OptimizeMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.OptimizeResponse)
	if !ok {
		return "", fmt.Errorf("expected OptimizeResponse, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Optimized Summary\n\n")
	output.WriteString(result.OptimizedSummary)
	output.WriteString("\n\n")

	if len(result.RewrittenBullets) > 0 {
		output.WriteString("## Rewritten Bullets\n\n")
		writeList(&output, result.RewrittenBullets, "- ")
		output.WriteString("\n")
	}
	if len(result.SkillsToAdd) > 0 {
		output.WriteString("## Skills to Add\n\n")
		writeList(&output, result.SkillsToAdd, "- ")
		output.WriteString("\n")
	}
	if len(result.UAELocalizationTips) > 0 {
		output.WriteString("## UAE Localization Tips\n\n")
		for i, tip := range result.UAELocalizationTips {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, tip))
		}
	}

	return output.String(), nil
}

func (omf *OptimizeMarkdownFormatter) SupportedType() string {
	return "OptimizeResponse"
}

// KeywordGapTextFormatter handles text formatting for keyword-gap results
type KeywordGapTextFormatter struct{}

func (ktf *KeywordGapTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.KeywordGapResponse)
	if !ok {
		return "", fmt.Errorf("expected KeywordGapResponse, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== KEYWORD GAP ===\n\n")
	output.WriteString(fmt.Sprintf("Coverage: %.2f%%\n\n", result.CoveragePercentage))

	if len(result.HighPriorityKeywords) > 0 {
		output.WriteString("High Priority Keywords:\n")
		writeList(&output, result.HighPriorityKeywords, "- ")
		output.WriteString("\n")
	}
	if len(result.MissingKeywords) > 0 {
		output.WriteString("Missing Keywords:\n")
		writeList(&output, result.MissingKeywords, "- ")
	} else {
		output.WriteString("No missing keywords found.\n")
	}

	return output.String(), nil
}

func (ktf *KeywordGapTextFormatter) SupportedType() string {
	return "KeywordGapResponse"
}

// KeywordGapMarkdownFormatter handles markdown formatting for keyword-gap results
type KeywordGapMarkdownFormatter struct{}

func (kmf *KeywordGapMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.KeywordGapResponse)
	if !ok {
		return "", fmt.Errorf("expected KeywordGapResponse, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Keyword Gap\n\n")
	output.WriteString(fmt.Sprintf("**Coverage:** %.2f%%\n\n", result.CoveragePercentage))

	if len(result.HighPriorityKeywords) > 0 {
		output.WriteString("## High Priority Keywords\n\n")
		writeList(&output, result.HighPriorityKeywords, "- ")
		output.WriteString("\n")
	}
	if len(result.MissingKeywords) > 0 {
		output.WriteString("## Missing Keywords\n\n")
		writeList(&output, result.MissingKeywords, "- ")
	} else {
		output.WriteString("## No Missing Keywords\n\nThe resume already covers the job description vocabulary.\n")
	}

	return output.String(), nil
}

func (kmf *KeywordGapMarkdownFormatter) SupportedType() string {
	return "KeywordGapResponse"
}

// ExtractTextFormatter handles text formatting for extraction results
type ExtractTextFormatter struct{}

func (etf *ExtractTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ExtractResponse)
	if !ok {
		return "", fmt.Errorf("expected ExtractResponse, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("=== EXTRACTED TEXT (%s, %d characters) ===\n\n",
		result.FileName, result.CharacterCount))
	output.WriteString(result.ExtractedText)
	output.WriteString("\n")

	return output.String(), nil
}

func (etf *ExtractTextFormatter) SupportedType() string {
	return "ExtractResponse"
}

// ExtractMarkdownFormatter handles markdown formatting for extraction results
type ExtractMarkdownFormatter struct{}

func (emf *ExtractMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ExtractResponse)
	if !ok {
		return "", fmt.Errorf("expected ExtractResponse, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("# Extracted Text\n\n**File:** %s (%s, %d characters)\n\n",
		result.FileName, result.FileType, result.CharacterCount))
	output.WriteString(result.ExtractedText)
	output.WriteString("\n")

	return output.String(), nil
}

func (emf *ExtractMarkdownFormatter) SupportedType() string {
	return "ExtractResponse"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()

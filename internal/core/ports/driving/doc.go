// Package driving holds the ports the CLI and the MCP server call into:
// content gap analysis and settings management.
//
// AnalysisService and SettingsService are implemented in internal/core/services.
package driving

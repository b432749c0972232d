// Package export renders the follow-up findings log as a CSV download.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/waichung/safetyhub"
	"github.com/waichung/safetyhub/internal/i18n"
)

// bom makes Excel recognize the file as UTF-8; without it the Chinese
// labels render as mojibake.
const bom = "\uFEFF"

// CSVContentType is the Content-Type for the generated download.
const CSVContentType = "text/csv; charset=utf-8"

// Filename returns the dated download filename, e.g.
// "Safety_FollowUp_2023-10-23.csv".
func Filename(now time.Time) string {
	return fmt.Sprintf("Safety_FollowUp_%s.csv", now.Format("2006-01-02"))
}

// FollowUpCSV renders the flattened At-Risk findings as CSV with localized
// headers and labels. Every data field is quoted with embedded quotes
// doubled, because observations routinely contain commas and newlines.
// encoding/csv is not used here: it only quotes when forced to, and the
// spreadsheet consumers of this file expect uniformly quoted fields.
func FollowUpCSV(entries []safetyhub.FindingEntry, lang safetyhub.Language) []byte {
	var sb strings.Builder
	sb.WriteString(bom)
	sb.WriteString(strings.Join(i18n.CSVHeaders(lang), ","))

	for _, entry := range entries {
		sb.WriteString("\n")
		sb.WriteString(joinQuoted(rowFields(entry, lang)))
	}

	return []byte(sb.String())
}

// rowFields maps one finding entry onto the export's column order.
func rowFields(entry safetyhub.FindingEntry, lang safetyhub.Language) []string {
	var riskLabel string
	if entry.Risk != nil {
		riskLabel = i18n.RiskLevelLabel(entry.Risk.Level, lang)
	}

	status := safetyhub.ActionPending
	var targetDate string
	if entry.Remediation != nil {
		status = entry.Remediation.Status
		if entry.Remediation.TargetDate != nil {
			targetDate = entry.Remediation.TargetDate.Format("2006-01-02")
		}
	}

	photo := entry.PhotoURL
	if photo == "" && entry.PhotoData != "" {
		photo = i18n.EmbeddedPhotoLabel(lang)
	}

	return []string{
		entry.InspectionDate.Format("2006-01-02"),
		entry.Location,
		entry.Category,
		entry.Observation,
		riskLabel,
		entry.RemedialAction,
		targetDate,
		i18n.ActionStatusLabel(status, lang),
		entry.InspectorName,
		photo,
	}
}

func joinQuoted(fields []string) string {
	quoted := make([]string, len(fields))
	for i, field := range fields {
		quoted[i] = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

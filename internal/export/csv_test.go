package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waichung/safetyhub"
)

func TestFollowUpCSV(t *testing.T) {
	targetDate := time.Date(2023, 10, 30, 0, 0, 0, 0, time.UTC)

	entries := []safetyhub.FindingEntry{
		{
			Finding: safetyhub.Finding{
				ID:             "1698051600000",
				Category:       "Machine Guarding",
				Status:         safetyhub.ComplianceAtRisk,
				Observation:    `Guard removed from press, operator said "it slows me down"`,
				RemedialAction: "Refit guard before next shift",
				PhotoURL:       "https://photos.example.com/guard.jpg",
				Risk: &safetyhub.FindingRisk{
					Likelihood: safetyhub.LikelihoodLikely,
					Severity:   safetyhub.SeverityMajor,
					Level:      safetyhub.RiskLevelExtreme,
				},
				Remediation: &safetyhub.FindingRemediation{
					Status:     safetyhub.ActionFollowUp,
					TargetDate: &targetDate,
				},
			},
			InspectionID:   "INS-1698051600000",
			InspectionDate: time.Date(2023, 10, 23, 0, 0, 0, 0, time.UTC),
			Location:       "Workshop A",
			InspectorName:  "Chan Tai Man",
		},
		{
			Finding: safetyhub.Finding{
				ID:          "1698138000000",
				Category:    "Housekeeping",
				Status:      safetyhub.ComplianceAtRisk,
				Observation: "Oil spill near walkway",
				PhotoData:   "data:image/jpeg;base64,AAAA",
				Risk: &safetyhub.FindingRisk{
					Likelihood: safetyhub.LikelihoodPossible,
					Severity:   safetyhub.SeverityMinor,
					Level:      safetyhub.RiskLevelMedium,
				},
				Remediation: &safetyhub.FindingRemediation{
					Status: safetyhub.ActionPending,
				},
			},
			InspectionID:   "INS-1698138000000",
			InspectionDate: time.Date(2023, 10, 24, 0, 0, 0, 0, time.UTC),
			Location:       "Warehouse",
			InspectorName:  "Wong Siu Ming",
		},
	}

	t.Run("English", func(t *testing.T) {
		out := string(FollowUpCSV(entries, safetyhub.LangEnglish))

		require.True(t, strings.HasPrefix(out, "\uFEFF"), "output must start with a UTF-8 BOM")

		lines := strings.Split(strings.TrimPrefix(out, "\uFEFF"), "\n")
		require.Len(t, lines, 3)

		assert.Equal(t, "Date,Location,Category,Observation,Risk Level,Remedial Action,Target Date,Status,Inspector,Photo URL", lines[0])

		// Embedded quotes are doubled and every field is quoted.
		assert.Equal(t, `"2023-10-23","Workshop A","Machine Guarding","Guard removed from press, operator said ""it slows me down""","Extreme","Refit guard before next shift","2023-10-30","Follow-up","Chan Tai Man","https://photos.example.com/guard.jpg"`, lines[1])

		// Embedded photo data becomes a placeholder, never the raw payload.
		assert.Equal(t, `"2023-10-24","Warehouse","Housekeeping","Oil spill near walkway","Medium","","","Pending","Wong Siu Ming","[Image Data Uploaded]"`, lines[2])
	})

	t.Run("Chinese", func(t *testing.T) {
		out := string(FollowUpCSV(entries, safetyhub.LangChinese))

		lines := strings.Split(strings.TrimPrefix(out, "\uFEFF"), "\n")
		require.Len(t, lines, 3)

		assert.Equal(t, "日期,地點,類別,發現事項,風險等級,補救措施,目標完成日期,狀態,巡查員,照片連結", lines[0])
		assert.Contains(t, lines[1], `"極高"`)
		assert.Contains(t, lines[1], `"跟進中"`)
		assert.Contains(t, lines[2], `"待處理"`)
		assert.Contains(t, lines[2], `"[已上傳照片數據]"`)
	})

	t.Run("NoEntries", func(t *testing.T) {
		out := string(FollowUpCSV(nil, safetyhub.LangEnglish))

		lines := strings.Split(strings.TrimPrefix(out, "\uFEFF"), "\n")
		require.Len(t, lines, 1, "header only")
	})
}

func TestFilename(t *testing.T) {
	now := time.Date(2023, 10, 23, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "Safety_FollowUp_2023-10-23.csv", Filename(now))
}

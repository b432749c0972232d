package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waichung/safetyhub"
	"github.com/waichung/safetyhub/mock"
)

type serverFixture struct {
	server      *Server
	inspections *mock.InspectionService
	reports     *mock.WeeklyReportService
	settings    *mock.SettingsService
	narrative   *mock.NarrativeService
	email       *mock.EmailService
	storage     *mock.FileStorage
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	f := &serverFixture{
		inspections: &mock.InspectionService{},
		reports:     &mock.WeeklyReportService{},
		settings:    &mock.SettingsService{},
		narrative:   &mock.NarrativeService{},
		email:       &mock.EmailService{},
		storage:     &mock.FileStorage{},
	}
	f.server = NewServer(Config{
		Addr:              "127.0.0.1:0",
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		ReportRecipients:  []string{"manager@example.com"},
		ReportBaseURL:     "https://safetyhub.example.com",
		InspectionService: f.inspections,
		ReportService:     f.reports,
		SettingsService:   f.settings,
		NarrativeService:  f.narrative,
		FileStorage:       f.storage,
		EmailService:      f.email,
	})
	t.Cleanup(func() { f.server.rateLimiter.Shutdown() })
	return f
}

func (f *serverFixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echoHeaderContentType, "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	f.server.echo.ServeHTTP(rec, req)
	return rec
}

const echoHeaderContentType = "Content-Type"

func TestServer_SubmitInspection(t *testing.T) {
	f := newServerFixture(t)

	var got safetyhub.SubmitInspectionParams
	f.inspections.SubmitInspectionFn = func(ctx context.Context, params safetyhub.SubmitInspectionParams) (*safetyhub.InspectionRecord, error) {
		got = params
		return &safetyhub.InspectionRecord{
			ID:        "INS-1",
			Date:      params.Date,
			Location:  params.Location,
			Status:    safetyhub.InspectionCompleted,
			Items:     params.Items,
			RiskLevel: safetyhub.RiskLevelLow,
		}, nil
	}

	body := `{
		"date": "2023-10-23",
		"location": "生產線 A",
		"inspectorName": "陳大文",
		"items": [{"id": "1", "category": "消防安全", "status": "Safe", "observation": "Clear exits"}]
	}`
	rec := f.do(http.MethodPost, "/api/inspections?lang=zh", body)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "生產線 A", got.Location)
	assert.Equal(t, safetyhub.LangChinese, got.Language, "lang query parameter reaches the service")
	assert.True(t, got.Date.Equal(time.Date(2023, 10, 23, 0, 0, 0, 0, time.UTC)))
}

func TestServer_SubmitInspectionValidation(t *testing.T) {
	f := newServerFixture(t)

	// No findings at all.
	rec := f.do(http.MethodPost, "/api/inspections", `{"date":"2023-10-23","location":"A","inspectorName":"B","items":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, safetyhub.EINVALID, resp.Error)
}

func TestServer_PatchFinding(t *testing.T) {
	t.Run("ActionStatus", func(t *testing.T) {
		f := newServerFixture(t)

		var gotPatch safetyhub.FindingPatch
		f.inspections.PatchFindingFn = func(ctx context.Context, recordID, findingID string, patch safetyhub.FindingPatch) (*safetyhub.InspectionRecord, error) {
			gotPatch = patch
			return &safetyhub.InspectionRecord{ID: recordID}, nil
		}

		rec := f.do(http.MethodPatch, "/api/inspections/INS-1/findings/f1", `{"actionStatus":"Completed"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		patch, ok := gotPatch.(safetyhub.ActionStatusPatch)
		require.True(t, ok)
		assert.Equal(t, safetyhub.ActionCompleted, patch.Status)
	})

	t.Run("TargetDate", func(t *testing.T) {
		f := newServerFixture(t)

		var gotPatch safetyhub.FindingPatch
		f.inspections.PatchFindingFn = func(ctx context.Context, recordID, findingID string, patch safetyhub.FindingPatch) (*safetyhub.InspectionRecord, error) {
			gotPatch = patch
			return &safetyhub.InspectionRecord{ID: recordID}, nil
		}

		rec := f.do(http.MethodPatch, "/api/inspections/INS-1/findings/f1", `{"targetDate":"2023-11-06"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		patch, ok := gotPatch.(safetyhub.TargetDatePatch)
		require.True(t, ok)
		require.NotNil(t, patch.Date)
		assert.True(t, patch.Date.Equal(time.Date(2023, 11, 6, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("TargetDateNullClears", func(t *testing.T) {
		f := newServerFixture(t)

		var gotPatch safetyhub.FindingPatch
		f.inspections.PatchFindingFn = func(ctx context.Context, recordID, findingID string, patch safetyhub.FindingPatch) (*safetyhub.InspectionRecord, error) {
			gotPatch = patch
			return &safetyhub.InspectionRecord{ID: recordID}, nil
		}

		rec := f.do(http.MethodPatch, "/api/inspections/INS-1/findings/f1", `{"targetDate":null}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		patch, ok := gotPatch.(safetyhub.TargetDatePatch)
		require.True(t, ok)
		assert.Nil(t, patch.Date)
	})

	t.Run("EmptyPatchRejected", func(t *testing.T) {
		f := newServerFixture(t)

		rec := f.do(http.MethodPatch, "/api/inspections/INS-1/findings/f1", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("NotFoundMapsTo404", func(t *testing.T) {
		f := newServerFixture(t)

		rec := f.do(http.MethodPatch, "/api/inspections/INS-9/findings/f1", `{"actionStatus":"Completed"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_ExportFindings(t *testing.T) {
	f := newServerFixture(t)

	f.inspections.FindInspectionsFn = func(ctx context.Context) ([]*safetyhub.InspectionRecord, error) {
		return []*safetyhub.InspectionRecord{
			{
				ID:            "INS-1",
				Date:          time.Date(2023, 10, 23, 0, 0, 0, 0, time.UTC),
				Location:      "Workshop A",
				InspectorName: "Chan",
				Items: []safetyhub.Finding{
					{
						ID:          "f1",
						Category:    "Housekeeping",
						Status:      safetyhub.ComplianceAtRisk,
						Observation: "Oil spill",
						Risk: &safetyhub.FindingRisk{
							Likelihood: safetyhub.LikelihoodPossible,
							Severity:   safetyhub.SeverityMinor,
							Level:      safetyhub.RiskLevelMedium,
						},
						Remediation: &safetyhub.FindingRemediation{Status: safetyhub.ActionPending},
					},
				},
			},
		}, nil
	}

	rec := f.do(http.MethodGet, "/api/findings/export.csv?lang=en", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Safety_FollowUp_")

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "\uFEFF"), "UTF-8 BOM leads the payload")
	assert.Contains(t, body, `"Oil spill"`)
}

func TestServer_ListFindingsFilters(t *testing.T) {
	f := newServerFixture(t)

	f.inspections.FindInspectionsFn = func(ctx context.Context) ([]*safetyhub.InspectionRecord, error) {
		return []*safetyhub.InspectionRecord{
			{
				ID:       "INS-1",
				Date:     time.Date(2023, 10, 23, 0, 0, 0, 0, time.UTC),
				Location: "Workshop A",
				Items: []safetyhub.Finding{
					{
						ID:          "f1",
						Category:    "Housekeeping",
						Status:      safetyhub.ComplianceAtRisk,
						Observation: "Oil spill near press",
						Risk:        &safetyhub.FindingRisk{Likelihood: safetyhub.LikelihoodPossible, Severity: safetyhub.SeverityMinor, Level: safetyhub.RiskLevelMedium},
						Remediation: &safetyhub.FindingRemediation{Status: safetyhub.ActionCompleted},
					},
					{
						ID:          "f2",
						Category:    "Electrical",
						Status:      safetyhub.ComplianceAtRisk,
						Observation: "Exposed wiring",
						Risk:        &safetyhub.FindingRisk{Likelihood: safetyhub.LikelihoodLikely, Severity: safetyhub.SeverityMajor, Level: safetyhub.RiskLevelExtreme},
						Remediation: &safetyhub.FindingRemediation{Status: safetyhub.ActionPending},
					},
				},
			},
		}, nil
	}

	decode := func(rec *httptest.ResponseRecorder) []safetyhub.FindingEntry {
		var entries []safetyhub.FindingEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
		return entries
	}

	t.Run("All", func(t *testing.T) {
		entries := decode(f.do(http.MethodGet, "/api/findings", ""))
		assert.Len(t, entries, 2)
	})

	t.Run("OpenOnly", func(t *testing.T) {
		entries := decode(f.do(http.MethodGet, "/api/findings?status=open", ""))
		require.Len(t, entries, 1)
		assert.Equal(t, "f2", entries[0].ID)
	})

	t.Run("ExactStatus", func(t *testing.T) {
		entries := decode(f.do(http.MethodGet, "/api/findings?status=Completed", ""))
		require.Len(t, entries, 1)
		assert.Equal(t, "f1", entries[0].ID)
	})

	t.Run("Search", func(t *testing.T) {
		entries := decode(f.do(http.MethodGet, "/api/findings?q=wiring", ""))
		require.Len(t, entries, 1)
		assert.Equal(t, "f2", entries[0].ID)
	})
}

func TestServer_AssistRiskFallsBack(t *testing.T) {
	f := newServerFixture(t)

	f.narrative.GenerateRiskAssessmentFn = func(ctx context.Context, observation, category string, lang safetyhub.Language) (*safetyhub.RiskAssessment, error) {
		return nil, safetyhub.Unavailable("model API down", nil)
	}

	rec := f.do(http.MethodPost, "/api/assist/risk?lang=en", `{"observation":"Missing guard","category":"Machinery"}`)
	require.Equal(t, http.StatusOK, rec.Code, "assist failures never surface as HTTP errors")

	var resp AssistRiskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Fallback)
	assert.Equal(t, "Error generating assessment", resp.RiskNote)
	assert.Equal(t, "Please enter manually", resp.Action)
}

func TestServer_ReportSubmissionSendsEmail(t *testing.T) {
	f := newServerFixture(t)

	var sentTo []string
	var sentURL string
	f.email.SendReportSubmittedFn = func(ctx context.Context, to []string, report *safetyhub.WeeklyReport, reportURL string) error {
		sentTo = to
		sentURL = reportURL
		return nil
	}

	body := `{
		"weekStart": "2023-10-23",
		"weekEnd": "2023-10-28",
		"preparedBy": "陳大文",
		"status": "Submitted"
	}`
	rec := f.do(http.MethodPost, "/api/reports", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, []string{"manager@example.com"}, sentTo)
	assert.Equal(t, "https://safetyhub.example.com/reports/WR-20231023", sentURL)
}

func TestServer_ReportDraftSkipsEmail(t *testing.T) {
	f := newServerFixture(t)

	sent := false
	f.email.SendReportSubmittedFn = func(ctx context.Context, to []string, report *safetyhub.WeeklyReport, reportURL string) error {
		sent = true
		return nil
	}

	body := `{"weekStart":"2023-10-23","weekEnd":"2023-10-28","preparedBy":"陳大文","status":"Draft"}`
	rec := f.do(http.MethodPost, "/api/reports", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, sent)
}

func TestServer_GetOptionList(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodGet, "/api/settings/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp OptionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, safetyhub.ListCategories, resp.Kind)
	assert.Equal(t, safetyhub.DefaultList(safetyhub.ListCategories), resp.Items)
}

func TestServer_HealthCheck(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"skillsift/internal/delivery/http/dto"
	"skillsift/internal/delivery/http/middleware"
	domanalysis "skillsift/internal/domain/analysis"
	domind "skillsift/internal/domain/industry"
	"skillsift/internal/domain/market"
	"skillsift/internal/domain/matching"
	"skillsift/internal/domain/recommendation"
	"skillsift/internal/domain/skill"
	"skillsift/internal/infrastructure/document"
	"skillsift/internal/pkg/jwt"
	analysisuc "skillsift/internal/usecase/analysis"
	industryuc "skillsift/internal/usecase/industry"
	marketuc "skillsift/internal/usecase/market"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(register func(r fiber.Router)) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware().Middleware())
	register(app.Group("/api/v1"))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, headers ...string) (*http.Response, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

type fakeAnalysis struct {
	lastAnalyze analysisuc.AnalyzeInput
	lastUpload  []byte
	lastRank    analysisuc.RankInput
	err         error
	checkErr    error
	stored      map[uuid.UUID]domanalysis.Analysis
	lastExport  analysisuc.ExportFilter
	lastPurge   time.Duration
}

func (f *fakeAnalysis) Analyze(_ context.Context, in analysisuc.AnalyzeInput) (domanalysis.Analysis, error) {
	f.lastAnalyze = in
	if f.err != nil {
		return domanalysis.Analysis{}, f.err
	}
	return domanalysis.Analysis{ID: uuid.New(), Kind: domanalysis.KindText, Compatibility: matching.Result{OverallScore: 70}}, nil
}

func (f *fakeAnalysis) AnalyzeUpload(_ context.Context, filename string, body io.Reader, in analysisuc.AnalyzeInput) (domanalysis.Analysis, error) {
	f.lastAnalyze = in
	data, err := io.ReadAll(body)
	if err != nil {
		return domanalysis.Analysis{}, err
	}
	f.lastUpload = data
	if f.err != nil {
		return domanalysis.Analysis{}, f.err
	}
	return domanalysis.Analysis{ID: uuid.New(), Kind: domanalysis.KindUpload, ResumeFilename: filename}, nil
}

func (f *fakeAnalysis) CheckUpload(string, int64) error { return f.checkErr }

func (f *fakeAnalysis) Rank(_ context.Context, in analysisuc.RankInput) (analysisuc.RankResult, error) {
	f.lastRank = in
	return analysisuc.RankResult{Results: []analysisuc.Ranked{}}, f.err
}

func (f *fakeAnalysis) Get(_ context.Context, id uuid.UUID) (domanalysis.Analysis, error) {
	a, ok := f.stored[id]
	if !ok {
		return domanalysis.Analysis{}, analysisuc.ErrNotFound
	}
	return a, nil
}

func (f *fakeAnalysis) Export(_ context.Context, ef analysisuc.ExportFilter) ([]domanalysis.Analysis, error) {
	f.lastExport = ef
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domanalysis.Analysis, 0, len(f.stored))
	for _, a := range f.stored {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAnalysis) Report(ctx context.Context, id uuid.UUID) ([]byte, error) {
	a, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := domanalysis.RenderReport(&buf, a); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *fakeAnalysis) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.stored[id]; !ok {
		return analysisuc.ErrNotFound
	}
	delete(f.stored, id)
	return nil
}

func (f *fakeAnalysis) Purge(_ context.Context, olderThan time.Duration) (analysisuc.PurgeResult, error) {
	f.lastPurge = olderThan
	return analysisuc.PurgeResult{Deleted: int64(len(f.stored))}, f.err
}

func publicAnalysisRoutes(h *AnalysisHandler) func(fiber.Router) {
	return func(r fiber.Router) { h.RegisterRoutes(r, nil) }
}

func TestAnalysisHandler_Analyze(t *testing.T) {
	uc := &fakeAnalysis{}
	app := newTestApp(publicAnalysisRoutes(NewAnalysisHandler(uc)))

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/resumes/analyze", `{
		"resume_text": "Go and Docker",
		"experience": [{"title": "Engineer", "duration": "3 years"}],
		"education": [{"degree": "BSc Computer Science"}],
		"job": {"description": "Go developer", "required_years": 2, "industry": "Technology"}
	}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, http.StatusCreated, env.Status)

	assert.Equal(t, "Go and Docker", uc.lastAnalyze.Resume.Text)
	assert.Len(t, uc.lastAnalyze.Resume.Experience.Entries(), 1)
	require.Len(t, uc.lastAnalyze.Resume.Education, 1)
	assert.Equal(t, "BSc Computer Science", uc.lastAnalyze.Resume.Education[0].Degree)
	assert.Equal(t, 2.0, uc.lastAnalyze.Job.RequiredYears)
	assert.Equal(t, "Technology", uc.lastAnalyze.Job.Industry)
}

func TestAnalysisHandler_AnalyzeValidation(t *testing.T) {
	app := newTestApp(publicAnalysisRoutes(NewAnalysisHandler(&fakeAnalysis{})))

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/resumes/analyze", `{"job": {"url": "not a url", "required_years": -1}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", env.Message)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	assert.Equal(t, "required", fields["resume_text"])
	assert.Equal(t, "url", fields["job.url"])
	assert.Equal(t, "gte", fields["job.required_years"])
}

func TestAnalysisHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "invalid", err: analysisuc.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "extraction", err: &skill.ExtractionError{Message: "bad text"}, status: http.StatusUnprocessableEntity},
		{name: "scoring", err: &matching.ScoringError{Stage: "experience"}, status: http.StatusUnprocessableEntity},
		{name: "fetch", err: analysisuc.ErrJobFetch, status: http.StatusBadGateway},
		{name: "internal", err: errors.New("boom"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(publicAnalysisRoutes(NewAnalysisHandler(&fakeAnalysis{err: tt.err})))
			resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/resumes/analyze", `{"resume_text":"go","job":{"description":"go"}}`)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func uploadRequest(t *testing.T, filename, content string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("resume", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/analyze/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestAnalysisHandler_Upload(t *testing.T) {
	uc := &fakeAnalysis{}
	app := newTestApp(publicAnalysisRoutes(NewAnalysisHandler(uc)))

	resp, err := app.Test(uploadRequest(t, "cv.txt", "Python developer", map[string]string{
		"job_description":     "Python and Django",
		"required_skills":     "python, django ,",
		"required_years":      "3",
		"years_of_experience": "4.5",
		"degree":              "Master of Science",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	assert.Equal(t, "Python developer", string(uc.lastUpload))
	assert.Equal(t, []string{"python", "django"}, uc.lastAnalyze.Job.RequiredSkills)
	assert.Equal(t, 3.0, uc.lastAnalyze.Job.RequiredYears)
	years, err := uc.lastAnalyze.Resume.Experience.TotalYears()
	require.NoError(t, err)
	assert.Equal(t, 4.5, years)
	assert.Equal(t, "Master of Science", uc.lastAnalyze.Resume.Education[0].Degree)
}

func TestAnalysisHandler_UploadRejected(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "type", err: document.ErrUnsupportedFileType, status: http.StatusUnsupportedMediaType},
		{name: "size", err: document.ErrFileTooLarge, status: http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(publicAnalysisRoutes(NewAnalysisHandler(&fakeAnalysis{checkErr: tt.err})))
			resp, err := app.Test(uploadRequest(t, "cv.exe", "x", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}

	app := newTestApp(publicAnalysisRoutes(NewAnalysisHandler(&fakeAnalysis{})))
	resp, err := app.Test(uploadRequest(t, "cv.txt", "x", map[string]string{"required_years": "lots"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalysisHandler_Rank(t *testing.T) {
	uc := &fakeAnalysis{}
	app := newTestApp(publicAnalysisRoutes(NewAnalysisHandler(uc)))

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/resumes/rank", `{
		"resume_text": "Go",
		"jobs": [{"description": "Go"}, {"required_skills": ["rust"]}],
		"min_score": 40
	}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, uc.lastRank.Jobs, 2)
	assert.Equal(t, 40, uc.lastRank.MinScore)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/resumes/rank", `{"resume_text": "Go", "jobs": []}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalysisHandler_Get(t *testing.T) {
	id := uuid.New()
	uc := &fakeAnalysis{stored: map[uuid.UUID]domanalysis.Analysis{id: {ID: id, JobTitle: "SRE"}}}
	app := newTestApp(publicAnalysisRoutes(NewAnalysisHandler(uc)))

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/analyses/"+id.String(), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got domanalysis.Analysis
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "SRE", got.JobTitle)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/analyses/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/analyses/nope", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalysisHandler_Report(t *testing.T) {
	id := uuid.New()
	uc := &fakeAnalysis{stored: map[uuid.UUID]domanalysis.Analysis{id: {ID: id, JobTitle: "SRE"}}}
	app := newTestApp(publicAnalysisRoutes(NewAnalysisHandler(uc)))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+id.String()+"/report?download=true", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domanalysis.ReportContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "analysis-"+id.String()+".md")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "- Job title: SRE")

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/analyses/"+uuid.NewString()+"/report", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAnalysisHandler_AdminRoutes(t *testing.T) {
	id := uuid.New()
	uc := &fakeAnalysis{stored: map[uuid.UUID]domanalysis.Analysis{id: {ID: id}}}
	app, tok := adminApp(t, NewAnalysisHandler(uc).RegisterRoutes)
	auth := []string{"Authorization", "Bearer " + tok}

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/analyses/export", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/analyses/export?since=2026-01-01&until=2026-02-01T00:00:00Z&industry=tech&limit=10", "", auth...)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var exported dto.AnalysisExportResponse
	require.NoError(t, json.Unmarshal(env.Data, &exported))
	assert.Equal(t, 1, exported.Count)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), uc.lastExport.Since)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), uc.lastExport.Until)
	assert.Equal(t, "tech", uc.lastExport.Industry)
	assert.Equal(t, 10, uc.lastExport.Limit)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/analyses/export?since=yesterday", "", auth...)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/analyses?older_than=720h", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/analyses?older_than=soon", "", auth...)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, env = doJSON(t, app, http.MethodDelete, "/api/v1/analyses?older_than=720h", "", auth...)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 720*time.Hour, uc.lastPurge)
	var purged analysisuc.PurgeResult
	require.NoError(t, json.Unmarshal(env.Data, &purged))
	assert.Equal(t, int64(1), purged.Deleted)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/analyses/"+id.String(), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/analyses/"+id.String(), "", auth...)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, uc.stored, id)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/analyses/"+id.String(), "", auth...)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAnalysisHandler_AdminRoutesNeedAdmin(t *testing.T) {
	app := newTestApp(publicAnalysisRoutes(NewAnalysisHandler(&fakeAnalysis{})))

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/analyses/"+uuid.NewString(), nil))
	require.NoError(t, err)
	assert.Contains(t, []int{http.StatusNotFound, http.StatusMethodNotAllowed}, resp.StatusCode)
}

type fakeCore struct{}

func (fakeCore) ExtractSkills(text string, _ int) (skill.Extraction, error) {
	if text == "bad" {
		return skill.Extraction{}, &skill.ExtractionError{Message: "not text"}
	}
	s := skill.ExtractedSkill{Skill: "go", Proficiency: skill.ProficiencyExpert, Category: "programming"}
	return skill.Extraction{
		Skills:            []skill.ExtractedSkill{s},
		CategorizedSkills: map[string][]skill.ExtractedSkill{"programming": {s}},
	}, nil
}

func (fakeCore) ExtractRequirements(string, int) ([]string, error) {
	return []string{"go", "sql"}, nil
}

func (fakeCore) Score(_ context.Context, _ matching.Candidate, j matching.Job) (matching.Result, error) {
	if j.RequiredYears < 0 {
		return matching.Result{}, analysisuc.ErrInvalidInput
	}
	return matching.Result{OverallScore: 80, Recommendations: []string{matching.WellMatchedMessage}}, nil
}

func (fakeCore) Recommend(in recommendation.Input) map[string][]string {
	return recommendation.NewEngine().Generate(in)
}

func TestCoreHandler(t *testing.T) {
	app := newTestApp(NewCoreHandler(fakeCore{}).RegisterRoutes)

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/skills/extract", `{"text":"expert in go"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var ext struct {
		Names             []string                    `json:"names"`
		CategorizedSkills map[string][]map[string]any `json:"categorized_skills"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &ext))
	assert.Equal(t, []string{"go"}, ext.Names)
	assert.Len(t, ext.CategorizedSkills["programming"], 1)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/skills/extract", `{"text":"bad"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, env = doJSON(t, app, http.MethodPost, "/api/v1/jobs/requirements", `{"description":"go and sql"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"required_skills":["go","sql"]}`, string(env.Data))

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/compatibility/score", `{"candidate":{"skills":["go"],"experience":3},"job":{"required_skills":["go"]}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/compatibility/score", `{"candidate":{"experience":"lots"},"job":{}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, env = doJSON(t, app, http.MethodPost, "/api/v1/recommendations", `{"skill_gaps":["kubernetes"],"job_description":"lead and build"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var recs map[string][]string
	require.NoError(t, json.Unmarshal(env.Data, &recs))
	assert.Equal(t, []string{"Consider developing proficiency in kubernetes"}, recs[recommendation.CategorySkillDevelopment])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/recommendations", `{"experience_score": 2}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

type fakeIndustry struct {
	items map[string]domind.SkillSet
}

func (f *fakeIndustry) List(context.Context) ([]domind.SkillSet, error) {
	out := make([]domind.SkillSet, 0, len(f.items))
	for _, it := range f.items {
		out = append(out, it)
	}
	return out, nil
}

func (f *fakeIndustry) Get(_ context.Context, name string) (domind.SkillSet, error) {
	it, ok := f.items[domind.NormalizeName(name)]
	if !ok {
		return domind.SkillSet{}, industryuc.ErrNotFound
	}
	return it, nil
}

func (f *fakeIndustry) Create(_ context.Context, name string, skills []string) (domind.SkillSet, error) {
	it := domind.SkillSet{IndustryName: domind.NormalizeName(name), Skills: domind.NormalizeSkills(skills)}
	f.items[it.IndustryName] = it
	return it, nil
}

func (f *fakeIndustry) Update(ctx context.Context, name string, skills []string) (domind.SkillSet, error) {
	if _, err := f.Get(ctx, name); err != nil {
		return domind.SkillSet{}, err
	}
	return f.Create(ctx, name, skills)
}

func (f *fakeIndustry) Delete(ctx context.Context, name string) error {
	if _, err := f.Get(ctx, name); err != nil {
		return err
	}
	delete(f.items, domind.NormalizeName(name))
	return nil
}

func adminApp(t *testing.T, register func(r fiber.Router, admin fiber.Handler)) (*fiber.App, string) {
	t.Helper()
	svc := jwt.NewHMACService("secret", time.Hour)
	tok, err := svc.GenerateAdminToken("ops")
	require.NoError(t, err)
	admin := middleware.NewAdminMiddleware(svc).Middleware()
	return newTestApp(func(r fiber.Router) { register(r, admin) }), tok
}

func TestIndustryHandler(t *testing.T) {
	uc := &fakeIndustry{items: map[string]domind.SkillSet{}}
	app, tok := adminApp(t, NewIndustryHandler(uc).RegisterRoutes)
	auth := []string{"Authorization", "Bearer " + tok}

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/industries", `{"industry_name":"Technology","skills":["Go"]}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/industries", `{"industry_name":"Technology","skills":["Go","SQL"]}`, auth...)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/industries", `{"industry_name":"Technology","skills":[]}`, auth...)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/industries/technology", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got domind.SkillSet
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, []string{"go", "sql"}, got.Skills)

	resp, _ = doJSON(t, app, http.MethodPut, "/api/v1/industries/finance", `{"skills":["excel"]}`, auth...)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/industries/technology", "", auth...)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/industries/technology", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

type fakeMarket struct {
	MarketUsecase
	lastLimit int
}

func (f *fakeMarket) ListTrends(_ context.Context, industryName string, limit int) ([]market.Trend, error) {
	f.lastLimit = limit
	if industryName == "unknown" {
		return nil, marketuc.ErrNotFound
	}
	return []market.Trend{{IndustryName: industryName, TrendName: "AI"}}, nil
}

func (f *fakeMarket) CreateSalaryRange(_ context.Context, in market.SalaryRange) (market.SalaryRange, error) {
	return in, nil
}

func (f *fakeMarket) Analyze(_ context.Context, in marketuc.AnalyzeInput) (market.Competitiveness, error) {
	return market.Compete(market.Inputs{CandidateSkills: in.CandidateSkills}), nil
}

func TestMarketHandler(t *testing.T) {
	uc := &fakeMarket{}
	app, tok := adminApp(t, NewMarketHandler(uc).RegisterRoutes)
	auth := []string{"Authorization", "Bearer " + tok}

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/market/trends/Technology?limit=2", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, uc.lastLimit)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/market/trends/unknown", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/market/trends/Technology?limit=x", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/market/salaries",
		`{"job_title":"SRE","industry_name":"Technology","min_salary":200,"max_salary":100}`, auth...)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/market/salaries",
		`{"job_title":"SRE","industry_name":"Technology","min_salary":100,"max_salary":200,"currency":"eur","experience_level":"mid"}`, auth...)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var sr market.SalaryRange
	require.NoError(t, json.Unmarshal(env.Data, &sr))
	assert.Equal(t, "EUR", sr.Currency)
	assert.Equal(t, market.LevelMid, sr.ExperienceLevel)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/market/analyze", `{"job_title":"SRE","industry_name":"Technology","candidate_skills":["go"]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/market/analyze", `{"industry_name":"Technology"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminMiddleware_NotConfigured(t *testing.T) {
	admin := middleware.NewAdminMiddleware(jwt.NewHMACService("", time.Hour)).Middleware()
	app := newTestApp(func(r fiber.Router) {
		NewIndustryHandler(&fakeIndustry{items: map[string]domind.SkillSet{}}).RegisterRoutes(r, admin)
	})

	resp, env := doJSON(t, app, http.MethodDelete, "/api/v1/industries/tech", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "service unavailable", env.Message)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler(map[string]Pinger{
		"database": stubPinger{},
		"redis":    stubPinger{err: errors.New("down")},
		"broker":   nil,
	})
	app := fiber.New()
	h.RegisterRoutes(app)

	resp, env := doJSON(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"degraded","components":{"database":"up","redis":"down","broker":"disabled"}}`, string(env.Data))
}

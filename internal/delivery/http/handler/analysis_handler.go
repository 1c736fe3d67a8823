package handler

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"skillsift/internal/delivery/http/dto"
	"skillsift/internal/delivery/http/middleware"
	domanalysis "skillsift/internal/domain/analysis"
	"skillsift/internal/domain/matching"
	"skillsift/internal/domain/skill"
	"skillsift/internal/infrastructure/document"
	"skillsift/internal/pkg/response"
	analysisuc "skillsift/internal/usecase/analysis"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const resumeFormField = "resume"

type AnalysisUsecase interface {
	Analyze(ctx context.Context, in analysisuc.AnalyzeInput) (domanalysis.Analysis, error)
	AnalyzeUpload(ctx context.Context, filename string, body io.Reader, in analysisuc.AnalyzeInput) (domanalysis.Analysis, error)
	CheckUpload(filename string, size int64) error
	Rank(ctx context.Context, in analysisuc.RankInput) (analysisuc.RankResult, error)
	Get(ctx context.Context, id uuid.UUID) (domanalysis.Analysis, error)
	Export(ctx context.Context, f analysisuc.ExportFilter) ([]domanalysis.Analysis, error)
	Report(ctx context.Context, id uuid.UUID) ([]byte, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Purge(ctx context.Context, olderThan time.Duration) (analysisuc.PurgeResult, error)
}

type AnalysisHandler struct {
	uc AnalysisUsecase
}

func NewAnalysisHandler(uc AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

// RegisterRoutes mounts analysis endpoints. Bulk export and deletion of
// stored analyses sit behind admin and are skipped when admin is nil.
func (h *AnalysisHandler) RegisterRoutes(r fiber.Router, admin fiber.Handler) {
	if r == nil {
		return
	}

	resumes := r.Group("/resumes")
	resumes.Post("/analyze", h.Analyze)
	resumes.Post("/analyze/upload", h.AnalyzeUpload)
	resumes.Post("/rank", h.Rank)

	analyses := r.Group("/analyses")
	if admin != nil {
		analyses.Get("/export", admin, h.Export)
		analyses.Delete("", admin, h.Purge)
		analyses.Delete("/:id", admin, h.Delete)
	}
	analyses.Get("/:id/report", h.Report)
	analyses.Get("/:id", h.Get)
}

func (h *AnalysisHandler) Analyze(c fiber.Ctx) error {
	middleware.SetAnalysisKind(c, string(domanalysis.KindText))
	var req dto.AnalyzeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	res, err := h.uc.Analyze(c.Context(), analysisuc.AnalyzeInput{
		Resume: resumeInput(req.ResumeText, req.Experience, req.Education),
		Job:    jobInput(req.Job),
	})
	if err != nil {
		return mapAnalysisUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, res)
}

func (h *AnalysisHandler) AnalyzeUpload(c fiber.Ctx) error {
	middleware.SetAnalysisKind(c, string(domanalysis.KindUpload))
	fh, err := c.FormFile(resumeFormField)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume file is required", nil, err)
	}
	if err := h.uc.CheckUpload(fh.Filename, fh.Size); err != nil {
		return mapAnalysisUsecaseError(err)
	}

	form, err := uploadForm(c)
	if err != nil {
		return err
	}
	if err := validateStruct(&form); err != nil {
		return err
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume file could not be read", nil, err)
	}
	defer f.Close()

	in := analysisuc.AnalyzeInput{
		Job: analysisuc.JobInput{
			Description:    form.JobDescription,
			URL:            form.JobURL,
			RequiredSkills: splitSkills(form.RequiredSkills),
			RequiredYears:  form.RequiredYears,
			EducationLevel: form.EducationLevel,
			Title:          form.JobTitle,
			Industry:       form.Industry,
		},
	}
	if form.YearsOfExp != nil {
		in.Resume.Experience = matching.YearsOfExperience(*form.YearsOfExp)
	}
	if strings.TrimSpace(form.Degree) != "" {
		in.Resume.Education = []matching.Education{{Degree: form.Degree}}
	}

	res, err := h.uc.AnalyzeUpload(c.Context(), fh.Filename, f, in)
	if err != nil {
		return mapAnalysisUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, res)
}

func (h *AnalysisHandler) Rank(c fiber.Ctx) error {
	middleware.SetAnalysisKind(c, string(domanalysis.KindRank))
	var req dto.RankRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	jobs := make([]analysisuc.JobInput, 0, len(req.Jobs))
	for _, j := range req.Jobs {
		jobs = append(jobs, jobInput(j))
	}

	res, err := h.uc.Rank(c.Context(), analysisuc.RankInput{
		Resume:   resumeInput(req.ResumeText, req.Experience, req.Education),
		Jobs:     jobs,
		MinScore: req.MinScore,
	})
	if err != nil {
		return mapAnalysisUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *AnalysisHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid analysis id", nil, err)
	}

	res, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapAnalysisUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *AnalysisHandler) Export(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	since, err := queryTime(c, "since")
	if err != nil {
		return err
	}
	until, err := queryTime(c, "until")
	if err != nil {
		return err
	}

	items, err := h.uc.Export(c.Context(), analysisuc.ExportFilter{
		Since:    since,
		Until:    until,
		Industry: c.Query("industry"),
		Limit:    limit,
	})
	if err != nil {
		return mapAnalysisUsecaseError(err)
	}

	now := time.Now().UTC()
	if c.Query("download") == "true" {
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="analyses-`+now.Format("20060102-150405")+`.json"`)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AnalysisExportResponse{
		Count:      len(items),
		ExportedAt: now,
		Analyses:   items,
	})
}

func (h *AnalysisHandler) Report(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid analysis id", nil, err)
	}

	body, err := h.uc.Report(c.Context(), id)
	if err != nil {
		return mapAnalysisUsecaseError(err)
	}
	c.Set(fiber.HeaderContentType, domanalysis.ReportContentType)
	if c.Query("download") == "true" {
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="analysis-`+id.String()+`.md"`)
	}
	return c.Status(fiber.StatusOK).Send(body)
}

func (h *AnalysisHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid analysis id", nil, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapAnalysisUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"id": id})
}

func (h *AnalysisHandler) Purge(c fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("older_than"))
	if raw == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", map[string]string{"older_than": "required"}, nil)
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", map[string]string{"older_than": "duration"}, err)
	}

	res, err := h.uc.Purge(c.Context(), d)
	if err != nil {
		return mapAnalysisUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

// queryTime accepts RFC 3339 timestamps or plain dates.
func queryTime(c fiber.Ctx, key string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", map[string]string{key: "RFC 3339 time or YYYY-MM-DD date"}, err)
	}
	return t, nil
}

func uploadForm(c fiber.Ctx) (dto.UploadForm, error) {
	form := dto.UploadForm{
		JobDescription: c.FormValue("job_description"),
		JobURL:         strings.TrimSpace(c.FormValue("job_url")),
		RequiredSkills: c.FormValue("required_skills"),
		EducationLevel: c.FormValue("education_level"),
		JobTitle:       c.FormValue("job_title"),
		Industry:       c.FormValue("industry"),
		Degree:         c.FormValue("degree"),
	}

	if raw := strings.TrimSpace(c.FormValue("required_years")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return dto.UploadForm{}, middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", map[string]string{"required_years": "number"}, err)
		}
		form.RequiredYears = v
	}
	if raw := strings.TrimSpace(c.FormValue("years_of_experience")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return dto.UploadForm{}, middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", map[string]string{"years_of_experience": "number"}, err)
		}
		form.YearsOfExp = &v
	}
	return form, nil
}

func splitSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	out := make([]string, 0, 8)
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func resumeInput(text string, exp matching.Experience, edu []dto.EducationRequest) analysisuc.ResumeInput {
	out := analysisuc.ResumeInput{Text: text, Experience: exp}
	for _, e := range edu {
		out.Education = append(out.Education, matching.Education{
			Degree:      e.Degree,
			Field:       e.Field,
			Institution: e.Institution,
		})
	}
	return out
}

func jobInput(j dto.JobRequest) analysisuc.JobInput {
	return analysisuc.JobInput{
		Description:    j.Description,
		URL:            strings.TrimSpace(j.URL),
		RequiredSkills: j.RequiredSkills,
		RequiredYears:  j.RequiredYears,
		EducationLevel: j.EducationLevel,
		Title:          j.Title,
		Industry:       j.Industry,
	}
}

func mapAnalysisUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, analysisuc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, analysisuc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Analysis not found", nil, err)
	case errors.Is(err, analysisuc.ErrUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Analysis storage unavailable", nil, err)
	case errors.Is(err, analysisuc.ErrJobFetch):
		return middleware.NewAppError(fiber.StatusBadGateway, "Job posting could not be fetched", nil, err)
	case errors.Is(err, document.ErrUnsupportedFileType):
		return middleware.NewAppError(fiber.StatusUnsupportedMediaType, "Unsupported file type", nil, err)
	case errors.Is(err, document.ErrFileTooLarge):
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "File too large", nil, err)
	case errors.Is(err, document.ErrEmptyDocument), errors.Is(err, document.ErrUnreadableDocument):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Resume text could not be extracted", nil, err)
	case errors.Is(err, skill.ErrSkillExtraction):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Skill extraction failed", nil, err)
	case errors.Is(err, matching.ErrCompatibilityScoring):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Compatibility scoring failed", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"skillsift/internal/app"
	"skillsift/internal/config"
	"skillsift/internal/domain/matching"
	analysisuc "skillsift/internal/usecase/analysis"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume file against a job description",
	Long: "Analyze extracts skills from a resume (.pdf, .docx or .txt), derives the job requirements " +
		"and prints the compatibility analysis as JSON. Nothing is persisted.",
	RunE: runAnalyze,
}

var (
	analyzeResume         string
	analyzeJobFile        string
	analyzeJobURL         string
	analyzeSkills         []string
	analyzeRequiredYears  float64
	analyzeEducationLevel string
	analyzeTitle          string
	analyzeIndustry       string
	analyzeYears          float64
	analyzeDegree         string
)

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeResume, "resume", "r", "", "Path to the resume file (required)")
	f.StringVarP(&analyzeJobFile, "job", "j", "", "Path to a plain text job description")
	f.StringVar(&analyzeJobURL, "job-url", "", "Fetch the job description from this URL")
	f.StringSliceVar(&analyzeSkills, "skills", nil, "Required skills, overrides extraction from the description")
	f.Float64Var(&analyzeRequiredYears, "required-years", 0, "Years of experience the job asks for")
	f.StringVar(&analyzeEducationLevel, "education-level", "", "Education the job asks for, e.g. bachelor")
	f.StringVar(&analyzeTitle, "title", "", "Job title, enables market enrichment")
	f.StringVar(&analyzeIndustry, "industry", "", "Industry name, enables industry bonus")
	f.Float64Var(&analyzeYears, "experience-years", 0, "Candidate's total years of experience")
	f.StringVar(&analyzeDegree, "degree", "", "Candidate's highest degree")
	_ = analyzeCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(analyzeCmd)
}

// offline strips every external backend so analysis runs on the local
// catalogue only.
func offline(cfg config.Config) config.Config {
	cfg.Database = config.DatabaseConfig{}
	cfg.Redis.Host = ""
	cfg.RabbitMQ.URL = ""
	return cfg
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if analyzeJobFile == "" && analyzeJobURL == "" && len(analyzeSkills) == 0 {
		return errors.New("one of --job, --job-url or --skills is required")
	}

	in := analysisuc.AnalyzeInput{
		Job: analysisuc.JobInput{
			URL:            analyzeJobURL,
			RequiredSkills: analyzeSkills,
			RequiredYears:  analyzeRequiredYears,
			EducationLevel: analyzeEducationLevel,
			Title:          analyzeTitle,
			Industry:       analyzeIndustry,
		},
	}
	if analyzeJobFile != "" {
		b, err := os.ReadFile(analyzeJobFile)
		if err != nil {
			return fmt.Errorf("read job description: %w", err)
		}
		in.Job.Description = string(b)
	}
	if cmd.Flags().Changed("experience-years") {
		in.Resume.Experience = matching.YearsOfExperience(analyzeYears)
	}
	if analyzeDegree != "" {
		in.Resume.Education = []matching.Education{{Degree: analyzeDegree}}
	}

	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	c, err := app.NewContainer(cmd.Context(), offline(loadConfig()), logger)
	if err != nil {
		return err
	}
	defer c.Close()

	st, err := os.Stat(analyzeResume)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	name := filepath.Base(analyzeResume)
	if err := c.Analysis.CheckUpload(name, st.Size()); err != nil {
		return err
	}
	f, err := os.Open(analyzeResume)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	defer f.Close()

	res, err := c.Analysis.AnalyzeUpload(cmd.Context(), name, f, in)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

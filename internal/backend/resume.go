package backend

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const uploadField = "file"

// ProcessedResume is the backend's extraction result for one uploaded file.
type ProcessedResume struct {
	Success           bool              `json:"success"`
	Filename          string            `json:"filename"`
	RawText           string            `json:"raw_text"`
	ProcessedData     map[string]any    `json:"processed_data"`
	ExtractionSummary ExtractionSummary `json:"extraction_summary"`
	DatabaseInfo      DatabaseInfo      `json:"database_info"`
}

type ExtractionSummary struct {
	PersonalInfoExtracted bool    `json:"personal_info_extracted"`
	EmailFound            bool    `json:"email_found"`
	PhoneFound            bool    `json:"phone_found"`
	EducationCount        int     `json:"education_count"`
	ExperienceCount       int     `json:"experience_count"`
	SkillsCount           int     `json:"skills_count"`
	ATSScore              float64 `json:"ats_score"`
	CareerLevel           string  `json:"career_level"`
	YearsExperience       float64 `json:"years_experience"`
}

type DatabaseInfo struct {
	SavedToDB     bool   `json:"saved_to_db"`
	ResumeID      string `json:"resume_id"`
	AlreadyExists bool   `json:"already_exists"`
}

// ProcessResume uploads one resume file for extraction.
func (c *Client) ProcessResume(ctx context.Context, path string) (*ProcessedResume, error) {
	var resume ProcessedResume
	if err := c.postFile(ctx, processPath, uploadField, path, &resume); err != nil {
		return nil, fmt.Errorf("processing %q: %w", path, err)
	}

	if resume.ProcessedData == nil {
		resume.ProcessedData = map[string]any{}
	}

	c.logger.Info("resume processed",
		zap.String("file", path),
		zap.String("resume_id", resume.DatabaseInfo.ResumeID),
		zap.Bool("already_exists", resume.DatabaseInfo.AlreadyExists),
	)

	return &resume, nil
}

// ProcessResumes uploads files with at most limit requests in flight. The
// result keeps the order of paths; the first failure cancels the rest.
func (c *Client) ProcessResumes(ctx context.Context, paths []string, limit int) ([]*ProcessedResume, error) {
	results := make([]*ProcessedResume, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, path := range paths {
		g.Go(func() error {
			resume, err := c.ProcessResume(ctx, path)
			if err != nil {
				return err
			}
			results[i] = resume
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

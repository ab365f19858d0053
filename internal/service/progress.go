package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/saadjs/fitcoach-cli/internal/model"
)

// ProgressForm holds the raw text of the add-progress form. Blank optional
// fields are sent as JSON nulls. Unit applies to weight and muscle mass.
type ProgressForm struct {
	Weight            string
	BodyFatPercentage string
	MuscleMass        string
	Notes             string
	Unit              string
}

func BuildProgressInput(f ProgressForm) (model.ProgressInput, error) {
	weight, err := parseOptionalFloat("weight", f.Weight)
	if err != nil {
		return model.ProgressInput{}, err
	}
	if weight == nil {
		return model.ProgressInput{}, fmt.Errorf("weight is required")
	}
	if *weight <= 0 {
		return model.ProgressInput{}, fmt.Errorf("weight must be > 0")
	}
	bodyFat, err := parseOptionalFloat("body fat percentage", f.BodyFatPercentage)
	if err != nil {
		return model.ProgressInput{}, err
	}
	if bodyFat != nil && (*bodyFat < 0 || *bodyFat > 100) {
		return model.ProgressInput{}, fmt.Errorf("body fat percentage must be between 0 and 100")
	}
	muscle, err := parseOptionalFloat("muscle mass", f.MuscleMass)
	if err != nil {
		return model.ProgressInput{}, err
	}
	if muscle != nil && *muscle < 0 {
		return model.ProgressInput{}, fmt.Errorf("muscle mass must be >= 0")
	}
	w, err := ConvertWeight(*weight, f.Unit, APIWeightUnit)
	if err != nil {
		return model.ProgressInput{}, err
	}
	if muscle != nil {
		m, err := ConvertWeight(*muscle, f.Unit, APIWeightUnit)
		if err != nil {
			return model.ProgressInput{}, err
		}
		muscle = &m
	}
	in := model.ProgressInput{
		Weight:            w,
		BodyFatPercentage: bodyFat,
		MuscleMass:        muscle,
	}
	if notes := strings.TrimSpace(f.Notes); notes != "" {
		in.Notes = &notes
	}
	return in, nil
}

func parseOptionalFloat(name, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !isFinite(v) {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &v, nil
}

func (c *Coach) AddProgress(ctx context.Context, f ProgressForm) (*model.ProgressEntry, error) {
	in, err := BuildProgressInput(f)
	if err != nil {
		return nil, err
	}
	id, err := c.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	entry, err := c.Remote.CreateProgressEntry(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("add progress entry: %w", err)
	}
	return entry, nil
}

// ListProgress returns entries in the order the server sent them.
func (c *Coach) ListProgress(ctx context.Context) ([]model.ProgressEntry, error) {
	id, err := c.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := c.Remote.GetProgressEntries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list progress entries: %w", err)
	}
	return entries, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

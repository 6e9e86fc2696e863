package recipe

import (
	"time"

	"github.com/vovakirdan/kitchen-defense/internal/core"
	"github.com/vovakirdan/kitchen-defense/internal/grid"
)

// Job is a recipe cooking on an appliance.
type Job struct {
	Recipe    Recipe
	By        core.PlayerID
	Remaining time.Duration
}

// Site is a placed appliance. Sites are created at level load and never removed.
type Site struct {
	ID   int
	Kind string
	Cell grid.Point

	job *Job
}

// NewSite creates an idle appliance.
func NewSite(id int, kind string, cell grid.Point) *Site {
	return &Site{ID: id, Kind: kind, Cell: cell}
}

// Busy reports whether the appliance is cooking.
func (s *Site) Busy() bool {
	return s.job != nil
}

// Job returns the current job, or nil.
func (s *Site) Job() *Job {
	return s.job
}

// Progress returns how far the current job is, in [0, 1]. Idle sites report 0.
func (s *Site) Progress() float64 {
	if s.job == nil || s.job.Recipe.Cooking <= 0 {
		return 0
	}
	done := s.job.Recipe.Cooking - s.job.Remaining
	return core.ClampF(float64(done)/float64(s.job.Recipe.Cooking), 0, 1)
}

func (s *Site) start(r Recipe, by core.PlayerID) {
	s.job = &Job{Recipe: r, By: by, Remaining: r.Cooking}
}

// advance cooks for dt and returns the finished job, if any.
func (s *Site) advance(dt time.Duration) *Job {
	if s.job == nil {
		return nil
	}
	s.job.Remaining -= dt
	if s.job.Remaining > 0 {
		return nil
	}
	done := s.job
	s.job = nil
	return done
}

package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"examprep/internal/modules/plan/domain"
	planout "examprep/internal/modules/plan/port/out"
	apperrors "examprep/internal/platform/errors"
)

type YAMLScheduleStore struct {
	path string
}

func NewYAMLScheduleStore(path string) *YAMLScheduleStore {
	return &YAMLScheduleStore{path: path}
}

var (
	_ planout.ScheduleSource = (*YAMLScheduleStore)(nil)
	_ planout.ScheduleSink   = (*YAMLScheduleStore)(nil)
)

type planDoc struct {
	Phase string   `yaml:"phase"`
	Focus string   `yaml:"focus"`
	Tasks []string `yaml:"tasks"`
}

type rangeDoc struct {
	Start string   `yaml:"start"`
	End   string   `yaml:"end"`
	Kind  string   `yaml:"kind,omitempty"`
	Phase string   `yaml:"phase"`
	Focus string   `yaml:"focus"`
	Tasks []string `yaml:"tasks"`
}

type scheduleDoc struct {
	PreStart planDoc    `yaml:"pre_start"`
	PostExam planDoc    `yaml:"post_exam"`
	Ranges   []rangeDoc `yaml:"ranges"`
}

func (s *YAMLScheduleStore) Load(_ context.Context) (domain.Schedule, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Schedule{}, apperrors.ErrNotFound
		}
		return domain.Schedule{}, fmt.Errorf("read schedule: %w", err)
	}
	doc := scheduleDoc{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return domain.Schedule{}, fmt.Errorf("%w: decode %s: %v", apperrors.ErrInvalidSchedule, s.path, err)
	}
	schedule := domain.Schedule{
		PreStart: toPlan(doc.PreStart),
		PostExam: toPlan(doc.PostExam),
		Ranges:   make([]domain.Range, 0, len(doc.Ranges)),
	}
	for i, r := range doc.Ranges {
		start, err := domain.ParseValue(r.Start)
		if err != nil {
			return domain.Schedule{}, fmt.Errorf("%w: range %d start: %v", apperrors.ErrInvalidSchedule, i+1, err)
		}
		end, err := domain.ParseValue(r.End)
		if err != nil {
			return domain.Schedule{}, fmt.Errorf("%w: range %d end: %v", apperrors.ErrInvalidSchedule, i+1, err)
		}
		kind := domain.Kind(r.Kind)
		if kind == "" {
			kind = domain.KindPhase
		}
		schedule.Ranges = append(schedule.Ranges, domain.Range{
			Start: start,
			End:   end,
			Kind:  kind,
			Plan:  domain.StudyPlan{Phase: r.Phase, Focus: r.Focus, Tasks: r.Tasks},
		})
	}
	return schedule, nil
}

// Save writes schedule in the same shape Load reads, used to seed an
// editable override.
func (s *YAMLScheduleStore) Save(_ context.Context, schedule domain.Schedule) error {
	doc := scheduleDoc{
		PreStart: fromPlan(schedule.PreStart),
		PostExam: fromPlan(schedule.PostExam),
		Ranges:   make([]rangeDoc, 0, len(schedule.Ranges)),
	}
	for _, r := range schedule.Ranges {
		doc.Ranges = append(doc.Ranges, rangeDoc{
			Start: domain.FormatValue(r.Start),
			End:   domain.FormatValue(r.End),
			Kind:  string(r.Kind),
			Phase: r.Plan.Phase,
			Focus: r.Plan.Focus,
			Tasks: r.Plan.Tasks,
		})
	}
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create schedule dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write schedule: %w", err)
	}
	return nil
}

func toPlan(doc planDoc) domain.StudyPlan {
	return domain.StudyPlan{Phase: doc.Phase, Focus: doc.Focus, Tasks: doc.Tasks}
}

func fromPlan(plan domain.StudyPlan) planDoc {
	return planDoc{Phase: plan.Phase, Focus: plan.Focus, Tasks: plan.Tasks}
}

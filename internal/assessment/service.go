package assessment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/abhisek/tradepath/internal/logger"
	"github.com/abhisek/tradepath/internal/store"
)

// Options configures a Service. KV is required; everything else has a default.
type Options struct {
	Rubric  *Rubric
	KV      store.KV
	Journal store.JournalRepo
	Logger  *logger.Logger
	Profile string
}

// Service owns the learner's answers and persists them after every mutation.
type Service struct {
	rubric  *Rubric
	kv      store.KV
	journal store.JournalRepo
	log     *logger.Logger
	profile string

	answers Answers
	extra   Unrecognized
}

// NewService creates an assessment service, loading persisted answers.
// Unreadable or malformed state is logged and replaced by an empty state.
func NewService(ctx context.Context, opts Options) *Service {
	s := &Service{
		rubric:  opts.Rubric,
		kv:      opts.KV,
		journal: opts.Journal,
		log:     logger.OrNop(opts.Logger).With("component", "assessment"),
		profile: opts.Profile,
		answers: Answers{},
	}
	if s.rubric == nil {
		s.rubric = DefaultRubric()
	}
	if s.kv == nil {
		s.kv = store.NewMemory()
	}
	s.load(ctx)
	return s
}

func (s *Service) load(ctx context.Context) {
	blob, err := s.kv.Load(ctx, store.KeyAssessmentAnswers)
	if err != nil {
		s.log.Warn("read assessment state failed, starting empty", "error", err)
		return
	}
	answers, extra, err := DecodeAnswersWith(blob, s.rubric)
	if err != nil {
		s.log.Warn("discarding malformed assessment state", "error", err)
	}
	if !extra.Empty() {
		s.log.Debug("keeping unrecognized assessment keys")
	}
	s.answers, s.extra = answers, extra
}

// Rubric returns the rubric the service scores against.
func (s *Service) Rubric() *Rubric {
	return s.rubric
}

// Answers returns a copy of the current answers.
func (s *Service) Answers() Answers {
	return s.answers.Clone()
}

// HasAnswers reports whether any answer has been recorded since the last reset.
func (s *Service) HasAnswers() bool {
	return !s.answers.Empty()
}

// Scoreboard scores the current answers.
func (s *Service) Scoreboard() Scoreboard {
	return Score(s.rubric, s.answers)
}

// SetCriterion records one answer and persists the new state. Setting the
// same value twice yields the same state.
func (s *Service) SetCriterion(ctx context.Context, category CategoryKey, criterion string, value bool) (Answers, error) {
	if _, err := s.rubric.Criterion(category, criterion); err != nil {
		return nil, err
	}

	next := s.answers.with(category, criterion, value)
	if err := s.save(ctx, next, s.extra); err != nil {
		return nil, err
	}
	s.answers = next

	s.log.Debug("criterion set", "category", category, "criterion", criterion, "value", value)
	s.record(ctx, store.KindCriterionSet, string(category)+"/"+criterion, strconv.FormatBool(value))
	return next.Clone(), nil
}

// Reset clears every answer, including unrecognized ones, and persists
// the empty state.
func (s *Service) Reset(ctx context.Context) (Answers, error) {
	if err := s.save(ctx, Answers{}, Unrecognized{}); err != nil {
		return nil, err
	}
	s.answers = Answers{}
	s.extra = Unrecognized{}

	s.log.Debug("assessment reset")
	s.record(ctx, store.KindAssessReset, "assessment", "")
	return Answers{}, nil
}

func (s *Service) save(ctx context.Context, a Answers, extra Unrecognized) error {
	blob, err := EncodeAnswersWith(a, extra)
	if err != nil {
		return fmt.Errorf("encode assessment state: %w", err)
	}
	if err := s.kv.Save(ctx, store.KeyAssessmentAnswers, blob); err != nil {
		return fmt.Errorf("persist assessment state: %w", err)
	}
	return nil
}

// record appends a journal entry. A failed append never fails the mutation.
func (s *Service) record(ctx context.Context, kind, subject, value string) {
	if s.journal == nil {
		return
	}
	_, err := s.journal.Append(ctx, store.JournalEntry{
		Profile: s.profile,
		Kind:    kind,
		Subject: subject,
		Value:   value,
	})
	if err != nil {
		s.log.Warn("journal append failed", "kind", kind, "error", err)
	}
}

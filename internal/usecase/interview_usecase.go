package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/prepwise/interview-api/internal/model"
	"github.com/prepwise/interview-api/internal/repository"
	"github.com/prepwise/interview-api/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	maxDomainLength = 100

	generateTemperature = 0.7
	generateMaxTokens   = 500
	evaluateTemperature = 0.5
	evaluateMaxTokens   = 1000

	topicContextSize = 3
)

var validDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

type InterviewUsecase struct {
	interviewRepo *repository.InterviewRepository
	topicRepo     *repository.TopicRepository
	provider      service.Provider
	embedder      service.Embedder
	retry         *service.RetryPolicy
	log           *zap.Logger
}

// NewInterviewUsecase wires the evaluation pipeline. topicRepo and embedder
// are optional; without them question generation simply runs without
// reference-question context.
func NewInterviewUsecase(
	interviewRepo *repository.InterviewRepository,
	topicRepo *repository.TopicRepository,
	provider service.Provider,
	embedder service.Embedder,
	retry *service.RetryPolicy,
	log *zap.Logger,
) *InterviewUsecase {
	return &InterviewUsecase{
		interviewRepo: interviewRepo,
		topicRepo:     topicRepo,
		provider:      provider,
		embedder:      embedder,
		retry:         retry,
		log:           log,
	}
}

// GenerateQuestions asks the provider for exactly five questions for the
// domain and difficulty, retrying transient failures, and validates the
// response before anything is persisted.
func (uc *InterviewUsecase) GenerateQuestions(ctx context.Context, domain, difficulty string) ([]string, error) {
	references := uc.topicContext(ctx, domain, difficulty)
	prompt := service.BuildGenerationPrompt(domain, difficulty, references)

	raw, err := uc.retry.Execute(ctx, func() (string, error) {
		return uc.provider.Generate(ctx, service.GenerationSystemPrompt, prompt, generateTemperature, generateMaxTokens)
	})
	if err != nil {
		uc.log.Error("question generation failed", zap.String("domain", domain), zap.Error(err))
		return nil, mapProviderError(err, errGenerationFailed)
	}

	questions, err := service.ParseQuestions(raw)
	if err != nil {
		uc.log.Error("question generation returned malformed response",
			zap.String("domain", domain),
			zap.String("raw", raw),
			zap.Error(err),
		)
		return nil, mapProviderError(err, errGenerationFailed)
	}
	return questions, nil
}

// EvaluateAnswers scores one interview's answers via the provider. The
// response is schema-validated and every score clamped to [0,100] before it
// is returned.
func (uc *InterviewUsecase) EvaluateAnswers(ctx context.Context, questions, answers []string) (*service.Evaluation, error) {
	prompt := service.BuildEvaluationPrompt(questions, answers)

	raw, err := uc.retry.Execute(ctx, func() (string, error) {
		return uc.provider.Generate(ctx, service.EvaluationSystemPrompt, prompt, evaluateTemperature, evaluateMaxTokens)
	})
	if err != nil {
		uc.log.Error("answer evaluation failed", zap.Error(err))
		return nil, mapProviderError(err, errEvaluationFailed)
	}

	evaluation, err := service.ParseEvaluation(raw, len(questions))
	if err != nil {
		uc.log.Error("answer evaluation returned malformed response",
			zap.String("raw", raw),
			zap.Error(err),
		)
		return nil, mapProviderError(err, errEvaluationFailed)
	}
	return evaluation, nil
}

// Start validates the request, generates questions and creates the interview
// record. A generation failure creates no record at all.
func (uc *InterviewUsecase) Start(ctx context.Context, ownerID, domain, difficulty string) (*model.Interview, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}
	domain = strings.TrimSpace(domain)
	if domain == "" || utf8.RuneCountInString(domain) > maxDomainLength {
		return nil, fmt.Errorf("%w: domain must be between 1 and %d characters", ErrInvalidInput, maxDomainLength)
	}
	difficulty = strings.ToLower(strings.TrimSpace(difficulty))
	if !validDifficulties[difficulty] {
		return nil, fmt.Errorf("%w: difficulty must be easy, medium, or hard", ErrInvalidInput)
	}

	questions, err := uc.GenerateQuestions(ctx, domain, difficulty)
	if err != nil {
		return nil, err
	}

	interview := &model.Interview{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Domain:     domain,
		Difficulty: difficulty,
		Status:     model.StatusInProgress,
		Questions:  questions,
		Answers:    []string{},
		Scores:     []float64{},
		CreatedAt:  time.Now(),
	}
	if err := uc.interviewRepo.Create(interview); err != nil {
		return nil, fmt.Errorf("create interview: %w", err)
	}

	uc.log.Info("interview started",
		zap.String("interview_id", interview.ID.String()),
		zap.String("domain", domain),
		zap.String("difficulty", difficulty),
	)
	return interview, nil
}

// Submit evaluates the answers and completes the interview exactly once.
// Any pipeline failure leaves the record in-progress and resubmittable.
func (uc *InterviewUsecase) Submit(ctx context.Context, interviewID, requesterID string, answers []string) (*model.Interview, error) {
	interview, err := uc.interviewRepo.FindByID(interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load interview: %w", err)
	}

	if interview.OwnerID != requesterID {
		return nil, ErrForbidden
	}
	if interview.Status == model.StatusCompleted {
		return nil, ErrConflict
	}
	if len(answers) != len(interview.Questions) {
		return nil, fmt.Errorf("%w: expected %d answers, received %d", ErrInvalidInput, len(interview.Questions), len(answers))
	}

	evaluation, err := uc.EvaluateAnswers(ctx, interview.Questions, answers)
	if err != nil {
		return nil, err
	}

	interview.Answers = answers
	interview.Scores = evaluation.Scores
	interview.OverallScore = evaluation.OverallScore
	interview.Feedback = evaluation.Feedback

	completed, err := uc.interviewRepo.Complete(interview)
	if err != nil {
		return nil, fmt.Errorf("complete interview: %w", err)
	}
	if !completed {
		// Lost the race against a concurrent submission.
		return nil, ErrConflict
	}

	uc.log.Info("interview completed",
		zap.String("interview_id", interview.ID.String()),
		zap.Float64("overall_score", interview.OverallScore),
	)
	return interview, nil
}

type HistoryStatistics struct {
	TotalInterviews int     `json:"totalInterviews"`
	AverageScore    float64 `json:"averageScore"`
}

type HistoryResult struct {
	Interviews []model.Interview
	Statistics HistoryStatistics
}

// History returns the owner's interviews, most recent first, with aggregate
// statistics. The average is rounded to one decimal place.
func (uc *InterviewUsecase) History(ctx context.Context, ownerID string) (*HistoryResult, error) {
	interviews, err := uc.interviewRepo.FindByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	var sum float64
	for _, interview := range interviews {
		sum += interview.OverallScore
	}
	average := 0.0
	if len(interviews) > 0 {
		average = math.Round(sum/float64(len(interviews))*10) / 10
	}

	return &HistoryResult{
		Interviews: interviews,
		Statistics: HistoryStatistics{
			TotalInterviews: len(interviews),
			AverageScore:    average,
		},
	}, nil
}

// SeedTopics loads the curated question bank into the topic store with
// embeddings. Requires an embedding provider. Seeding an already populated
// bank is rejected so repeated calls cannot duplicate topics or burn
// embedding quota.
func (uc *InterviewUsecase) SeedTopics(ctx context.Context) (int, error) {
	if uc.embedder == nil || uc.topicRepo == nil {
		return 0, fmt.Errorf("%w: embedding provider not configured", ErrInvalidInput)
	}

	existing, err := uc.topicRepo.Count()
	if err != nil {
		return 0, fmt.Errorf("count topics: %w", err)
	}
	if existing > 0 {
		return 0, fmt.Errorf("%w: topic bank already seeded", ErrConflict)
	}

	count := 0
	for domain, byDifficulty := range service.QuestionBank {
		for _, questions := range byDifficulty {
			for _, question := range questions {
				embedding, err := uc.embedder.Embed(ctx, question)
				if err != nil {
					return count, fmt.Errorf("embed topic: %w", err)
				}
				topic := &model.Topic{
					ID:        uuid.New(),
					Domain:    domain,
					Question:  question,
					Embedding: pgvector.NewVector(embedding),
					CreatedAt: time.Now(),
				}
				if err := uc.topicRepo.Create(topic); err != nil {
					return count, fmt.Errorf("store topic: %w", err)
				}
				count++
			}
		}
	}
	return count, nil
}

// topicContext retrieves nearby reference questions for the generation
// prompt. Best effort: any failure just means generation runs without
// context.
func (uc *InterviewUsecase) topicContext(ctx context.Context, domain, difficulty string) []string {
	if uc.embedder == nil || uc.topicRepo == nil {
		return nil
	}

	embedding, err := uc.embedder.Embed(ctx, domain+" "+difficulty+" interview questions")
	if err != nil {
		uc.log.Warn("topic embedding failed, generating without context", zap.Error(err))
		return nil
	}

	topics, err := uc.topicRepo.SearchTopics(pgvector.NewVector(embedding), topicContextSize)
	if err != nil {
		uc.log.Warn("topic search failed, generating without context", zap.Error(err))
		return nil
	}

	references := make([]string, 0, len(topics))
	for _, topic := range topics {
		references = append(references, topic.Question)
	}
	return references
}

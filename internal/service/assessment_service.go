package service

import (
	"career_advisor_backend/internal/model"
	"career_advisor_backend/internal/repository"
	"career_advisor_backend/internal/util"
	"career_advisor_backend/pkg/logger"
	"career_advisor_backend/pkg/messaging"
	"career_advisor_backend/pkg/monitoring"
	"career_advisor_backend/pkg/tracing"
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditPublisher 测评完成事件的投递端，未启用消息队列时为 nil
type AuditPublisher interface {
	Publish(routingKey string, payload any) error
}

// AssessmentSummary 测评概要
// swagger:model AssessmentSummary
type AssessmentSummary struct {
	TotalCareersAnalyzed int     `json:"total_careers_analyzed"`
	TopMatchScore        float64 `json:"top_match_score"`
	SkillsEvaluated      int     `json:"skills_evaluated"`
}

// AssessmentResponse 排名后的推荐与概要
// swagger:model AssessmentResponse
type AssessmentResponse struct {
	Recommendations   []MatchResult     `json:"recommendations"`
	AssessmentSummary AssessmentSummary `json:"assessment_summary"`
}

// AssessmentCompletedEvent 投递到 assessment.completed 的消息体
type AssessmentCompletedEvent struct {
	AssessmentID  string    `json:"assessment_id"`
	UserID        uint      `json:"user_id"`
	TopCareerIDs  []uint    `json:"top_career_ids"`
	TopMatchScore float64   `json:"top_match_score"`
	CompletedAt   time.Time `json:"completed_at"`
}

type AssessmentService struct {
	Repo        *repository.AssessmentRepository
	UserRepo    *repository.UserRepository
	CatalogRepo *repository.CatalogRepository
	Matcher     *CareerMatcher
	Publisher   AuditPublisher
}

func NewAssessmentService(
	repo *repository.AssessmentRepository,
	userRepo *repository.UserRepository,
	catalogRepo *repository.CatalogRepository,
	matcher *CareerMatcher,
	publisher AuditPublisher,
) *AssessmentService {
	return &AssessmentService{
		Repo:        repo,
		UserRepo:    userRepo,
		CatalogRepo: catalogRepo,
		Matcher:     matcher,
		Publisher:   publisher,
	}
}

// Assess 为档案匹配全部职业，返回前 top_n 条并记录审计。审计写入失败不影响返回
func (s *AssessmentService) Assess(ctx context.Context, userID uint) (*AssessmentResponse, error) {
	if userID == 0 {
		return nil, util.ErrUserIDRequired
	}

	ctx, span := tracing.Tracer.Start(ctx, "assessment.assess")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", int64(userID)))

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	careers, err := s.CatalogRepo.ListCareers()
	if err != nil {
		return nil, err
	}

	cfg := s.Matcher.Config()
	results := s.Matcher.Match(ctx, user, careers)
	ranked := RankResults(results, cfg.TopN)

	summary := AssessmentSummary{
		TotalCareersAnalyzed: len(careers),
		SkillsEvaluated:      len(user.CurrentSkills),
	}
	if len(ranked) > 0 {
		summary.TopMatchScore = ranked[0].MatchScore
	}

	monitoring.AssessmentCounter.Inc()

	assessmentID := s.record(ctx, user, ranked, cfg.PersistTop)
	if assessmentID != "" {
		s.publish(assessmentID, user.ID, ranked, summary.TopMatchScore)
	}

	logger.Log.Info("assessment completed",
		zap.Uint("user_id", user.ID),
		zap.Int("careers", len(careers)),
		zap.Float64("top_score", summary.TopMatchScore),
		zap.Bool("ai", s.Matcher.AIEnabled()),
	)

	return &AssessmentResponse{
		Recommendations:   ranked,
		AssessmentSummary: summary,
	}, nil
}

// record 写入快照与前 persistTop 条推荐，失败时返回空 id
func (s *AssessmentService) record(ctx context.Context, user *model.User, ranked []MatchResult, persistTop int) string {
	assessment, recs, err := buildAuditRows(user, ranked, persistTop)
	if err == nil {
		err = s.Repo.SaveResults(ctx, assessment, recs)
	}
	if err != nil {
		monitoring.AuditWriteFailures.WithLabelValues("database").Inc()
		logger.Log.Error("failed to record assessment",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return ""
	}
	return assessment.ID
}

func buildAuditRows(user *model.User, ranked []MatchResult, persistTop int) (*model.Assessment, []model.Recommendation, error) {
	skills := []string(user.CurrentSkills)
	if skills == nil {
		skills = []string{}
	}
	interests := []string(user.Interests)
	if interests == nil {
		interests = []string{}
	}

	results, err := json.Marshal(map[string][]string{
		"user_skills":    skills,
		"user_interests": interests,
	})
	if err != nil {
		return nil, nil, err
	}
	snapshot, err := json.Marshal(ranked)
	if err != nil {
		return nil, nil, err
	}

	assessment := &model.Assessment{
		UserID:          user.ID,
		AssessmentType:  model.AssessmentTypeCareerMatch,
		Results:         datatypes.JSON(results),
		Recommendations: datatypes.JSON(snapshot),
	}

	n := persistTop
	if n > len(ranked) {
		n = len(ranked)
	}
	recs := make([]model.Recommendation, 0, n)
	for _, r := range ranked[:n] {
		recs = append(recs, model.Recommendation{
			UserID:       user.ID,
			CareerPathID: r.CareerID,
			MatchScore:   r.MatchScore,
			Reasoning:    r.Reasoning,
			SkillGaps:    datatypes.NewJSONSlice(r.SkillGaps),
		})
	}
	return assessment, recs, nil
}

func (s *AssessmentService) publish(assessmentID string, userID uint, ranked []MatchResult, top float64) {
	if s.Publisher == nil {
		return
	}

	ids := make([]uint, 0, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.CareerID)
	}
	event := AssessmentCompletedEvent{
		AssessmentID:  assessmentID,
		UserID:        userID,
		TopCareerIDs:  ids,
		TopMatchScore: top,
		CompletedAt:   time.Now(),
	}
	if err := s.Publisher.Publish(messaging.RoutingAssessmentCompleted, event); err != nil {
		monitoring.AuditWriteFailures.WithLabelValues("broker").Inc()
		logger.Log.Warn("failed to publish assessment event",
			zap.String("assessment_id", assessmentID),
			zap.Error(err),
		)
	}
}

// History 用户已完成的测评次数
func (s *AssessmentService) History(userID uint) (int64, error) {
	if userID == 0 {
		return 0, util.ErrUserIDRequired
	}
	return s.Repo.CountByUser(userID)
}

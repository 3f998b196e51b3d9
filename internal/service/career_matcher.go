package service

import (
	"career_advisor_backend/internal/config"
	"career_advisor_backend/internal/model"
	"career_advisor_backend/pkg/logger"
	"career_advisor_backend/pkg/monitoring"
	"career_advisor_backend/pkg/tracing"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	maxSkillGaps = 3

	aiReasoning = "Based on your skills and interests, this career aligns well with your profile."
)

// MatchResult 单个职业的匹配结果
// swagger:model MatchResult
type MatchResult struct {
	CareerID      uint             `json:"career_id"`
	CareerTitle   string           `json:"career_title"`
	MatchScore    float64          `json:"match_score"`
	Reasoning     string           `json:"reasoning"`
	SkillGaps     []string         `json:"skill_gaps"`
	CareerDetails model.CareerPath `json:"career_details"`
}

// CareerMatcher 为一个档案逐一给目录中的全部职业打分
type CareerMatcher struct {
	generator TextGenerator

	mu  sync.RWMutex
	cfg config.MatchingConfig
}

func NewCareerMatcher(generator TextGenerator, cfg config.MatchingConfig) *CareerMatcher {
	return &CareerMatcher{generator: generator, cfg: cfg}
}

// UpdateConfig 配置热更新回调
func (m *CareerMatcher) UpdateConfig(cfg config.MatchingConfig) {
	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()
}

func (m *CareerMatcher) Config() config.MatchingConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

func (m *CareerMatcher) AIEnabled() bool {
	return m.generator != nil
}

// ScoreMatch overlap/required 换算成百分制，加上 bonus 后封顶 100。
// 规则路径 bonus 为 0，AI 路径使用 matching.ai_bonus
func ScoreMatch(overlap, required int, bonus float64) float64 {
	if required < 1 {
		required = 1
	}
	raw := float64(overlap) * 100 / float64(required)
	return math.Min(100, raw+bonus)
}

// SkillGaps 返回 required 中档案尚未掌握的技能，保持目录声明顺序
func SkillGaps(required []string, have map[string]struct{}) []string {
	gaps := make([]string, 0, len(required))
	for _, name := range required {
		if _, ok := have[name]; !ok {
			gaps = append(gaps, name)
		}
	}
	return gaps
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func overlapCount(required []string, have map[string]struct{}) int {
	n := 0
	for _, name := range required {
		if _, ok := have[name]; ok {
			n++
		}
	}
	return n
}

// Match 对每个职业返回一条结果，顺序与 careers 一致，不做过滤
func (m *CareerMatcher) Match(ctx context.Context, profile *model.User, careers []model.CareerPath) []MatchResult {
	cfg := m.Config()
	have := nameSet(profile.CurrentSkills)
	results := make([]MatchResult, len(careers))

	if m.generator == nil {
		for i := range careers {
			results[i] = heuristicResult(&careers[i], have)
		}
		return results
	}

	// 每个职业一次外部调用，有界并发；各 goroutine 只写自己的槽位
	limit := cfg.Concurrency
	if limit < 1 {
		limit = 1
	}
	var g errgroup.Group
	g.SetLimit(limit)
	for i := range careers {
		i := i
		g.Go(func() error {
			results[i] = m.matchWithAI(ctx, profile, have, &careers[i], cfg)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// uniqueNames 去重并保持顺序，required 按集合处理
func uniqueNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func heuristicResult(career *model.CareerPath, have map[string]struct{}) MatchResult {
	required := uniqueNames(career.RequiredSkills)
	overlap := overlapCount(required, have)
	return newMatchResult(career, required, ScoreMatch(overlap, len(required), 0),
		fmt.Sprintf("You have %d out of %d required skills.", overlap, len(required)), have)
}

func newMatchResult(career *model.CareerPath, required []string, score float64, reasoning string, have map[string]struct{}) MatchResult {
	gaps := SkillGaps(required, have)
	if len(gaps) > maxSkillGaps {
		gaps = gaps[:maxSkillGaps]
	}
	return MatchResult{
		CareerID:      career.ID,
		CareerTitle:   career.Title,
		MatchScore:    score,
		Reasoning:     reasoning,
		SkillGaps:     gaps,
		CareerDetails: *career,
	}
}

func (m *CareerMatcher) matchWithAI(ctx context.Context, profile *model.User, have map[string]struct{}, career *model.CareerPath, cfg config.MatchingConfig) MatchResult {
	ctx, span := tracing.Tracer.Start(ctx, "career_match.generate")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("career.id", int64(career.ID)),
		attribute.String("career.title", career.Title),
	)

	callCtx, cancel := context.WithTimeout(ctx, cfg.AITimeout)
	defer cancel()

	start := time.Now()
	text, err := m.generator.Generate(callCtx, buildMatchPrompt(profile, career))
	monitoring.AIGenerationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		monitoring.AIGenerationCounter.WithLabelValues("fallback").Inc()
		logger.Log.Warn("AI match failed, falling back to skill overlap",
			zap.Uint("career_id", career.ID),
			zap.Uint("user_id", profile.ID),
			zap.Error(err),
		)
		return heuristicResult(career, have)
	}
	monitoring.AIGenerationCounter.WithLabelValues("success").Inc()

	// 模型返回的分数和理由不参与结果，仅记录便于对比
	if a, ok := parseAIAnalysis(text); ok {
		logger.Log.Debug("AI match analysis discarded",
			zap.Uint("career_id", career.ID),
			zap.Float64("model_score", a.MatchScore),
			zap.Strings("model_gaps", a.SkillGaps),
		)
	}

	required := uniqueNames(career.RequiredSkills)
	overlap := overlapCount(required, have)
	return newMatchResult(career, required, ScoreMatch(overlap, len(required), cfg.AIBonus), aiReasoning, have)
}

type aiAnalysis struct {
	MatchScore float64  `json:"match_score"`
	Reasoning  string   `json:"reasoning"`
	SkillGaps  []string `json:"skill_gaps"`
}

func parseAIAnalysis(text string) (aiAnalysis, bool) {
	var a aiAnalysis
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return a, false
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &a); err != nil {
		return a, false
	}
	return a, true
}

func buildMatchPrompt(profile *model.User, career *model.CareerPath) string {
	age := "not provided"
	if profile.Age != nil {
		age = fmt.Sprintf("%d", *profile.Age)
	}

	var b strings.Builder
	b.WriteString("Evaluate how well this Indian student fits a career path.\n\n")
	b.WriteString("Student profile:\n")
	fmt.Fprintf(&b, "- Education level: %s\n", profile.EducationLevel)
	fmt.Fprintf(&b, "- Age: %s\n", age)
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(profile.Interests, ", "))
	fmt.Fprintf(&b, "- Current skills: %s\n\n", strings.Join(profile.CurrentSkills, ", "))
	b.WriteString("Career path:\n")
	fmt.Fprintf(&b, "- Title: %s\n", career.Title)
	fmt.Fprintf(&b, "- Required skills: %s\n", strings.Join(career.RequiredSkills, ", "))
	fmt.Fprintf(&b, "- Industry: %s\n\n", career.Industry)
	b.WriteString("Reply with a JSON object with keys match_score (0-100), reasoning (2-3 sentences) ")
	b.WriteString("and skill_gaps (the three most important missing skills).")
	return b.String()
}

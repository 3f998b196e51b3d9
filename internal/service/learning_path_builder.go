package service

import (
	"career_advisor_backend/internal/model"
	"career_advisor_backend/pkg/logger"
	"fmt"

	"go.uber.org/zap"
)

// SkillResources 某个待学技能的难度与学习资源
type SkillResources struct {
	Difficulty model.DifficultyLevel `json:"difficulty"`
	Resources  []string              `json:"resources"`
}

type LearningStep struct {
	Phase    string   `json:"phase"`
	Duration string   `json:"duration"`
	Skills   []string `json:"skills"`
	Focus    string   `json:"focus"`
}

// LearningPath 针对某个职业目标的三阶段学习计划，每次请求重新计算
// swagger:model LearningPath
type LearningPath struct {
	CareerGoal        string                    `json:"career_goal"`
	CurrentSkills     []string                  `json:"current_skills"`
	SkillsToLearn     []string                  `json:"skills_to_learn"`
	LearningResources map[string]SkillResources `json:"learning_resources"`
	EstimatedTimeline string                    `json:"estimated_timeline"`
	Steps             []LearningStep            `json:"steps"`
}

type learningPhase struct {
	name       string
	difficulty model.DifficultyLevel
	limit      int
	duration   string
	focus      string
}

// 阶段顺序固定
var learningPhases = []learningPhase{
	{name: "Foundation", difficulty: model.DifficultyBeginner, limit: 2, duration: "1-2 months", focus: "Build fundamental knowledge"},
	{name: "Core Skills", difficulty: model.DifficultyIntermediate, limit: 3, duration: "2-3 months", focus: "Develop job-ready skills"},
	{name: "Advanced", difficulty: model.DifficultyAdvanced, limit: 2, duration: "2-3 months", focus: "Master specialized skills"},
}

// IndexSkills 按名称建立技能索引
func IndexSkills(skills []model.Skill) map[string]model.Skill {
	idx := make(map[string]model.Skill, len(skills))
	for _, s := range skills {
		idx[s.Name] = s
	}
	return idx
}

// BuildLearningPath 输入需已解析有效。没有技能记录或难度无法识别的缺口只出现在 SkillsToLearn 中
func BuildLearningPath(career *model.CareerPath, currentSkills []string, skillIndex map[string]model.Skill) LearningPath {
	gaps := SkillGaps(uniqueNames(career.RequiredSkills), nameSet(currentSkills))

	resources := make(map[string]SkillResources, len(gaps))
	for _, name := range gaps {
		skill, ok := skillIndex[name]
		if !ok {
			logger.Log.Warn("skill gap has no catalog record",
				zap.Uint("career_id", career.ID),
				zap.String("skill", name),
			)
			continue
		}
		res := []string(skill.LearningResources)
		if res == nil {
			res = []string{}
		}
		resources[name] = SkillResources{
			Difficulty: skill.DifficultyLevel,
			Resources:  res,
		}
	}

	steps := make([]LearningStep, 0, len(learningPhases))
	for _, phase := range learningPhases {
		skills := make([]string, 0, phase.limit)
		for _, name := range gaps {
			if len(skills) == phase.limit {
				break
			}
			if r, ok := resources[name]; ok && r.Difficulty == phase.difficulty {
				skills = append(skills, name)
			}
		}
		steps = append(steps, LearningStep{
			Phase:    phase.name,
			Duration: phase.duration,
			Skills:   skills,
			Focus:    phase.focus,
		})
	}

	for name, r := range resources {
		switch r.Difficulty {
		case model.DifficultyBeginner, model.DifficultyIntermediate, model.DifficultyAdvanced:
		default:
			logger.Log.Warn("skill gap has unrecognized difficulty and is left out of every phase",
				zap.String("skill", name),
				zap.String("difficulty", string(r.Difficulty)),
			)
		}
	}

	current := currentSkills
	if current == nil {
		current = []string{}
	}

	return LearningPath{
		CareerGoal:        career.Title,
		CurrentSkills:     current,
		SkillsToLearn:     gaps,
		LearningResources: resources,
		EstimatedTimeline: fmt.Sprintf("%d - %d months", 2*len(gaps), 4*len(gaps)),
		Steps:             steps,
	}
}

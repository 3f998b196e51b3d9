// Package catalog loads the career / skill seed catalog and checks that
// every required skill resolves to a skill record by name.
package catalog

import (
	"career_advisor_backend/internal/model"
	"career_advisor_backend/internal/util"
	"career_advisor_backend/pkg/logger"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

type careerSeed struct {
	Title                 string   `yaml:"title"`
	Description           string   `yaml:"description"`
	Industry              string   `yaml:"industry"`
	SalaryMin             int      `yaml:"salary_min"`
	SalaryMax             int      `yaml:"salary_max"`
	SalaryRange           string   `yaml:"salary_range"`
	GrowthPotential       string   `yaml:"growth_potential"`
	RequiredSkills        []string `yaml:"required_skills"`
	EducationRequirements string   `yaml:"education_requirements"`
	JobOutlook            string   `yaml:"job_outlook"`
}

type skillSeed struct {
	Name              string   `yaml:"name"`
	Category          string   `yaml:"category"`
	DifficultyLevel   string   `yaml:"difficulty_level"`
	LearningResources []string `yaml:"learning_resources"`
}

type seedFile struct {
	Careers []careerSeed `yaml:"careers"`
	Skills  []skillSeed  `yaml:"skills"`
}

// Catalog is a parsed, validated seed ready to be written to the store.
type Catalog struct {
	Careers []model.CareerPath
	Skills  []model.Skill
}

// DanglingRef is a required skill that names no skill record.
type DanglingRef struct {
	Career string
	Skill  string
}

func (d DanglingRef) String() string {
	return fmt.Sprintf("%s -> %s", d.Career, d.Skill)
}

// Load reads the seed at path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	raw := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		raw = b
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Catalog, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	out := &Catalog{}
	skillNames := make(map[string]struct{}, len(f.Skills))
	for _, s := range f.Skills {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("catalog skill with empty name")
		}
		if _, dup := skillNames[name]; dup {
			return nil, fmt.Errorf("duplicate catalog skill %q", name)
		}
		skillNames[name] = struct{}{}

		level := model.DifficultyLevel(strings.TrimSpace(s.DifficultyLevel))
		switch level {
		case model.DifficultyBeginner, model.DifficultyIntermediate, model.DifficultyAdvanced:
		default:
			// 未识别的难度仍然入库，但不会进入任何学习阶段
			logger.Log.Warn("catalog skill has unrecognized difficulty",
				zap.String("skill", name), zap.String("difficulty", string(level)))
		}

		out.Skills = append(out.Skills, model.Skill{
			Name:              name,
			Category:          s.Category,
			DifficultyLevel:   level,
			LearningResources: datatypes.NewJSONSlice(nonNil(s.LearningResources)),
		})
	}

	titles := make(map[string]struct{}, len(f.Careers))
	for _, c := range f.Careers {
		title := strings.TrimSpace(c.Title)
		if title == "" {
			return nil, fmt.Errorf("catalog career with empty title")
		}
		if _, dup := titles[title]; dup {
			return nil, fmt.Errorf("duplicate catalog career %q", title)
		}
		titles[title] = struct{}{}

		growth := model.GrowthPotential(c.GrowthPotential)
		if !growth.Valid() {
			return nil, fmt.Errorf("career %q: invalid growth potential %q", title, c.GrowthPotential)
		}

		out.Careers = append(out.Careers, model.CareerPath{
			Title:                 title,
			Description:           c.Description,
			Industry:              c.Industry,
			AverageSalaryMin:      c.SalaryMin,
			AverageSalaryMax:      c.SalaryMax,
			AverageSalaryRange:    c.SalaryRange,
			GrowthPotential:       growth,
			RequiredSkills:        datatypes.NewJSONSlice(util.NormalizeNames(c.RequiredSkills)),
			EducationRequirements: c.EducationRequirements,
			JobOutlook:            c.JobOutlook,
		})
	}

	return out, nil
}

// Dangling lists required skills with no matching skill record, in
// career then declaration order.
func (c *Catalog) Dangling() []DanglingRef {
	known := make(map[string]struct{}, len(c.Skills))
	for _, s := range c.Skills {
		known[s.Name] = struct{}{}
	}
	var refs []DanglingRef
	for _, career := range c.Careers {
		for _, name := range career.RequiredSkills {
			if _, ok := known[name]; !ok {
				refs = append(refs, DanglingRef{Career: career.Title, Skill: name})
			}
		}
	}
	return refs
}

// Validate warns about dangling references, or fails on them when strict.
func (c *Catalog) Validate(strict bool) error {
	refs := c.Dangling()
	if len(refs) == 0 {
		return nil
	}
	if strict {
		return fmt.Errorf("%w: %d unresolved (first: %s)", util.ErrDanglingSkill, len(refs), refs[0])
	}
	for _, r := range refs {
		logger.Log.Warn("required skill has no catalog record",
			zap.String("career", r.Career), zap.String("skill", r.Skill))
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

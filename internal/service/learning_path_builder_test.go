package service

import (
	"career_advisor_backend/internal/model"
	"reflect"
	"testing"

	"gorm.io/datatypes"
)

func skill(name string, level model.DifficultyLevel, resources ...string) model.Skill {
	return model.Skill{
		Name:              name,
		Category:          "Technical",
		DifficultyLevel:   level,
		LearningResources: datatypes.NewJSONSlice(resources),
	}
}

func TestBuildLearningPathSingleAdvancedGap(t *testing.T) {
	c := career(2, "Data Scientist", "Python", "Machine Learning")
	idx := IndexSkills([]model.Skill{
		skill("Python", model.DifficultyBeginner, "Codecademy"),
		skill("Machine Learning", model.DifficultyAdvanced, "Coursera ML", "Fast.ai"),
	})

	path := BuildLearningPath(&c, []string{"Python"}, idx)

	if path.CareerGoal != "Data Scientist" {
		t.Fatalf("unexpected career goal %q", path.CareerGoal)
	}
	if path.EstimatedTimeline != "2 - 4 months" {
		t.Fatalf("unexpected timeline %q", path.EstimatedTimeline)
	}
	if !reflect.DeepEqual(path.SkillsToLearn, []string{"Machine Learning"}) {
		t.Fatalf("unexpected gaps %v", path.SkillsToLearn)
	}
	if len(path.Steps) != 3 {
		t.Fatalf("expected 3 phases, got %d", len(path.Steps))
	}
	if len(path.Steps[0].Skills) != 0 || len(path.Steps[1].Skills) != 0 {
		t.Fatalf("foundation and core phases should be empty: %+v", path.Steps)
	}
	if !reflect.DeepEqual(path.Steps[2].Skills, []string{"Machine Learning"}) {
		t.Fatalf("advanced phase should hold Machine Learning: %+v", path.Steps[2])
	}
	res := path.LearningResources["Machine Learning"]
	if res.Difficulty != model.DifficultyAdvanced || len(res.Resources) != 2 {
		t.Fatalf("unexpected resources %+v", res)
	}
}

func TestBuildLearningPathPhasesAndCaps(t *testing.T) {
	c := career(1, "Everything",
		"B1", "I1", "B2", "A1", "I2", "B3", "I3", "A2", "I4", "A3")
	idx := IndexSkills([]model.Skill{
		skill("B1", model.DifficultyBeginner), skill("B2", model.DifficultyBeginner), skill("B3", model.DifficultyBeginner),
		skill("I1", model.DifficultyIntermediate), skill("I2", model.DifficultyIntermediate),
		skill("I3", model.DifficultyIntermediate), skill("I4", model.DifficultyIntermediate),
		skill("A1", model.DifficultyAdvanced), skill("A2", model.DifficultyAdvanced), skill("A3", model.DifficultyAdvanced),
	})

	path := BuildLearningPath(&c, nil, idx)

	want := []struct {
		phase, duration, focus string
		skills                 []string
	}{
		{"Foundation", "1-2 months", "Build fundamental knowledge", []string{"B1", "B2"}},
		{"Core Skills", "2-3 months", "Develop job-ready skills", []string{"I1", "I2", "I3"}},
		{"Advanced", "2-3 months", "Master specialized skills", []string{"A1", "A2"}},
	}
	for i, w := range want {
		got := path.Steps[i]
		if got.Phase != w.phase || got.Duration != w.duration || got.Focus != w.focus {
			t.Fatalf("phase %d: unexpected header %+v", i, got)
		}
		if !reflect.DeepEqual(got.Skills, w.skills) {
			t.Fatalf("phase %s: expected %v, got %v", w.phase, w.skills, got.Skills)
		}
	}
	if path.EstimatedTimeline != "20 - 40 months" {
		t.Fatalf("unexpected timeline %q", path.EstimatedTimeline)
	}
	if path.CurrentSkills == nil {
		t.Fatalf("current skills should be an empty list, not nil")
	}
}

func TestBuildLearningPathMissingSkillRecord(t *testing.T) {
	c := career(6, "Chartered Accountant", "Accounting", "Tally/SAP")
	idx := IndexSkills([]model.Skill{skill("Accounting", model.DifficultyIntermediate, "ICAI")})

	path := BuildLearningPath(&c, nil, idx)

	if !reflect.DeepEqual(path.SkillsToLearn, []string{"Accounting", "Tally/SAP"}) {
		t.Fatalf("all gaps should be listed: %v", path.SkillsToLearn)
	}
	if _, ok := path.LearningResources["Tally/SAP"]; ok {
		t.Fatalf("skill without record should have no resources entry")
	}
	for _, step := range path.Steps {
		for _, s := range step.Skills {
			if s == "Tally/SAP" {
				t.Fatalf("skill without record should not be placed in a phase")
			}
		}
	}
	if path.EstimatedTimeline != "4 - 8 months" {
		t.Fatalf("timeline should count every gap, got %q", path.EstimatedTimeline)
	}
}

func TestBuildLearningPathUnknownDifficulty(t *testing.T) {
	c := career(7, "Quant Analyst", "A", "B")
	idx := IndexSkills([]model.Skill{
		skill("A", "Expert", "Book A"),
		skill("B", model.DifficultyBeginner, "Book B"),
	})

	path := BuildLearningPath(&c, nil, idx)

	if !reflect.DeepEqual(path.SkillsToLearn, []string{"A", "B"}) {
		t.Fatalf("all gaps should be listed: %v", path.SkillsToLearn)
	}
	res, ok := path.LearningResources["A"]
	if !ok || res.Difficulty != "Expert" || !reflect.DeepEqual(res.Resources, []string{"Book A"}) {
		t.Fatalf("skill with a record should keep its resources entry: %+v", path.LearningResources)
	}
	for _, step := range path.Steps {
		for _, s := range step.Skills {
			if s == "A" {
				t.Fatalf("skill with unknown difficulty placed in phase %q", step.Phase)
			}
		}
	}
	if !reflect.DeepEqual(path.Steps[0].Skills, []string{"B"}) {
		t.Fatalf("foundation phase should hold B: %+v", path.Steps[0])
	}
	if path.EstimatedTimeline != "4 - 8 months" {
		t.Fatalf("timeline should count every gap, got %q", path.EstimatedTimeline)
	}
}

func TestBuildLearningPathNoGaps(t *testing.T) {
	c := career(3, "Done", "Python")
	path := BuildLearningPath(&c, []string{"Python"}, IndexSkills(nil))
	if len(path.SkillsToLearn) != 0 || path.EstimatedTimeline != "0 - 0 months" {
		t.Fatalf("unexpected path %+v", path)
	}
	for _, step := range path.Steps {
		if step.Skills == nil {
			t.Fatalf("phase skills should be an empty list")
		}
	}
}

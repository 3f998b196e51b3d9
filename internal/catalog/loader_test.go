package catalog

import (
	"career_advisor_backend/internal/config"
	"career_advisor_backend/internal/repository"
	"career_advisor_backend/internal/util"
	"career_advisor_backend/pkg/database"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCatalog = `
skills:
  - name: Python
    category: Programming
    difficulty_level: Beginner
    learning_resources: [Codecademy, Coursera]
  - name: Machine Learning
    category: Data Science
    difficulty_level: Advanced
careers:
  - title: Data Scientist
    industry: Technology
    growth_potential: Very High
    required_skills: [Python, Machine Learning, " Python ", Statistics]
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(c.Careers) != 1 || len(c.Skills) != 2 {
		t.Fatalf("unexpected sizes %d careers, %d skills", len(c.Careers), len(c.Skills))
	}
	req := []string(c.Careers[0].RequiredSkills)
	if strings.Join(req, ",") != "Python,Machine Learning,Statistics" {
		t.Fatalf("required skills should be normalized in order: %v", req)
	}
	if c.Skills[1].LearningResources == nil {
		t.Fatalf("missing resources should become an empty list")
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"duplicate skill":  "skills:\n  - name: A\n  - name: A\n",
		"duplicate career": "careers:\n  - {title: X, growth_potential: High}\n  - {title: X, growth_potential: High}\n",
		"bad growth":       "careers:\n  - {title: X, growth_potential: Huge}\n",
		"empty title":      "careers:\n  - {title: \" \", growth_potential: High}\n",
		"bad yaml":         "careers: [",
	}
	for name, raw := range cases {
		if _, err := Parse([]byte(raw)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestDanglingAndStrict(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	refs := c.Dangling()
	if len(refs) != 1 || refs[0].Skill != "Statistics" || refs[0].Career != "Data Scientist" {
		t.Fatalf("unexpected dangling refs %v", refs)
	}
	if err := c.Validate(false); err != nil {
		t.Fatalf("lenient validation should only warn: %v", err)
	}
	if err := c.Validate(true); !errors.Is(err, util.ErrDanglingSkill) {
		t.Fatalf("strict validation should fail with ErrDanglingSkill, got %v", err)
	}
}

func TestDefaultCatalog(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load embedded catalog: %v", err)
	}
	if len(c.Careers) < 8 {
		t.Fatalf("expected at least 8 careers, got %d", len(c.Careers))
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db, err := database.InitDB(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   "file:catalog_seed?mode=memory&cache=shared",
	}, false)
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	repo := repository.NewCatalogRepository(db)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	if _, err := Seed(repo, path, true); err == nil {
		t.Fatalf("strict seed with dangling references should fail")
	}
	if _, err := Seed(repo, path, false); err != nil {
		t.Fatalf("seed: %v", err)
	}
	first, _ := repo.ListCareers()
	if _, err := Seed(repo, path, false); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	second, _ := repo.ListCareers()

	if len(first) != 1 || len(second) != 1 || first[0].ID != second[0].ID {
		t.Fatalf("reseeding should keep career ids stable: %v vs %v", first, second)
	}
	skills, _ := repo.ListSkills()
	if len(skills) != 2 {
		t.Fatalf("expected 2 skills, got %d", len(skills))
	}
}

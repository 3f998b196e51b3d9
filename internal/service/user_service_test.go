package service

import (
	"career_advisor_backend/internal/repository"
	"career_advisor_backend/internal/util"
	"errors"
	"reflect"
	"testing"
)

func TestUserServiceRegister(t *testing.T) {
	svc := NewUserService(repository.NewUserRepository(newTestDB(t)))
	age := 19

	user, err := svc.Register(RegisterRequest{
		Name:           " Asha ",
		Email:          "Asha@Example.com",
		Age:            &age,
		EducationLevel: "Undergraduate",
		Interests:      []string{"Technology", " ", "Technology"},
		CurrentSkills:  []string{"Python", " SQL ", "Python"},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == 0 || user.Email != "asha@example.com" || user.Name != "Asha" {
		t.Fatalf("unexpected user %+v", user)
	}
	if !reflect.DeepEqual([]string(user.CurrentSkills), []string{"Python", "SQL"}) {
		t.Fatalf("skills should be trimmed and deduplicated: %v", user.CurrentSkills)
	}

	_, err = svc.Register(RegisterRequest{Name: "Other", Email: "asha@example.com"})
	if !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered, got %v", err)
	}

	_, err = svc.Register(RegisterRequest{Name: "   ", Email: "blank@example.com"})
	if !errors.Is(err, util.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired for a blank name, got %v", err)
	}

	got, err := svc.GetProfile(user.ID)
	if err != nil || got.Age == nil || *got.Age != 19 {
		t.Fatalf("unexpected profile %+v (%v)", got, err)
	}
}

func TestUserServiceProfileErrors(t *testing.T) {
	svc := NewUserService(repository.NewUserRepository(newTestDB(t)))

	if _, err := svc.GetProfile(0); !errors.Is(err, util.ErrUserIDRequired) {
		t.Fatalf("expected ErrUserIDRequired, got %v", err)
	}
	if _, err := svc.GetProfile(42); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.UpdateSkills(42, []string{"Go"}); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if u, err := svc.FindByEmail("nobody@example.com"); u != nil || err != nil {
		t.Fatalf("expected nil, nil for unknown email, got %v, %v", u, err)
	}
}

func TestUserServiceUpdateSkills(t *testing.T) {
	svc := NewUserService(repository.NewUserRepository(newTestDB(t)))
	user, err := svc.Register(RegisterRequest{Name: "Ravi", Email: "ravi@example.com", CurrentSkills: []string{"Excel"}})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := svc.UpdateSkills(user.ID, []string{"Excel", "Python", "Excel"})
	if err != nil {
		t.Fatalf("update skills: %v", err)
	}
	if !reflect.DeepEqual([]string(updated.CurrentSkills), []string{"Excel", "Python"}) {
		t.Fatalf("unexpected skills %v", updated.CurrentSkills)
	}
}

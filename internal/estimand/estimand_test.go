package estimand

import (
	"strings"
	"testing"

	"github.com/ppiankov/claimguard/internal/model"
)

func TestService_IdentifiableWithConfounders(t *testing.T) {
	service := NewService()

	tpl := model.ScmTemplate{
		X: "coffee",
		Y: "sleep quality",
		Z: []string{"sleep", "age", "stress", "workload"},
	}

	result := service.Compute(tpl)

	if !result.Identifiable {
		t.Fatal("Expected identifiable with non-empty Z")
	}

	want := "Sum_{sleep, age, stress, workload} P(sleep quality|coffee, sleep, age, stress, workload) * P(sleep, age, stress, workload)"
	if result.Expression != want {
		t.Errorf("Expected expression '%s', got '%s'", want, result.Expression)
	}
	if result.Reason != "Back-door criterion satisfied using Z." {
		t.Errorf("Unexpected reason: '%s'", result.Reason)
	}
}

func TestService_NotIdentifiableWithoutConfounders(t *testing.T) {
	service := NewService()

	tpl := model.ScmTemplate{X: "exposure", Y: "outcome", Z: []string{}}

	result := service.Compute(tpl)

	if result.Identifiable {
		t.Fatal("Expected not identifiable with empty Z")
	}
	if result.Expression != "" {
		t.Errorf("Expected empty expression, got '%s'", result.Expression)
	}
	if !strings.Contains(result.Reason, "experiment or instrument") {
		t.Errorf("Expected refusal reason, got '%s'", result.Reason)
	}
}

func TestService_NilConfoundersSameAsEmpty(t *testing.T) {
	service := NewService()

	withNil := service.Compute(model.ScmTemplate{X: "x", Y: "y", Z: nil})
	withEmpty := service.Compute(model.ScmTemplate{X: "x", Y: "y", Z: []string{}})

	if withNil != withEmpty {
		t.Errorf("Expected identical results, got %+v and %+v", withNil, withEmpty)
	}
}

func TestService_ConfounderOrderPreserved(t *testing.T) {
	service := NewService()

	tpl := model.ScmTemplate{X: "x", Y: "y", Z: []string{"b", "a", "c"}}

	result := service.Compute(tpl)

	want := "Sum_{b, a, c} P(y|x, b, a, c) * P(b, a, c)"
	if result.Expression != want {
		t.Errorf("Expected template order preserved, got '%s'", result.Expression)
	}
}

func TestService_SingleConfounder(t *testing.T) {
	service := NewService()

	result := service.Compute(model.ScmTemplate{X: "x", Y: "y", Z: []string{"z"}})

	want := "Sum_{z} P(y|x, z) * P(z)"
	if result.Expression != want {
		t.Errorf("Expected '%s', got '%s'", want, result.Expression)
	}
}

package classify

import (
	"testing"

	"github.com/ppiankov/claimguard/internal/model"
)

func TestClassifier_CausalMarkers(t *testing.T) {
	classifier := NewClassifier()

	claims := []string{
		"Coffee causes poor sleep quality",
		"Smoking caused the decline",
		"Exercise affects anxiety levels",
		"Sugar impacts metabolism",
		"Screen time leads to poor focus",
		"The policy results in higher returns",
		"Meditation reduces stress",
		"Caffeine increases alertness",
		"Training improved endurance",
		"Isolation worsens mood",
		"Vaccination prevents infection",
		"Masks protect against transmission",
		"This is a causal relationship",
	}

	for _, claim := range claims {
		if rung := classifier.Classify(claim); rung != model.RungIntervention {
			t.Errorf("Expected L2 for '%s', got %s", claim, rung)
		}
	}
}

func TestClassifier_CounterfactualMarkers(t *testing.T) {
	classifier := NewClassifier()

	claims := []string{
		"What if she had taken the medication?",
		"If he had exercised, he would be healthier",
		"She hadn't slept before the exam",
		"She hadn’t slept before the exam",
		"Had the bank not intervened, markets would collapse",
		"The outcome would have been different",
		"They could have avoided the crash",
		"We should have hedged the position",
		"It might have ended differently",
		"This is a counterfactual question",
	}

	for _, claim := range claims {
		if rung := classifier.Classify(claim); rung != model.RungCounterfactual {
			t.Errorf("Expected L3 for '%s', got %s", claim, rung)
		}
	}
}

func TestClassifier_CounterfactualOutranksCausal(t *testing.T) {
	classifier := NewClassifier()

	// Both marker families present: the counterfactual reading wins
	claims := []string{
		"What if coffee causes poor sleep?",
		"The treatment would have improved outcomes",
		"If the Fed had cut rates, stocks would have increased",
	}

	for _, claim := range claims {
		if rung := classifier.Classify(claim); rung != model.RungCounterfactual {
			t.Errorf("Expected L3 for '%s', got %s", claim, rung)
		}
	}
}

func TestClassifier_DefaultAssociation(t *testing.T) {
	classifier := NewClassifier()

	claims := []string{
		"Coffee is linked to poor sleep",
		"Stock returns correlate with sentiment",
		"People who exercise report better moods",
		"",
		"   ",
	}

	for _, claim := range claims {
		if rung := classifier.Classify(claim); rung != model.RungAssociation {
			t.Errorf("Expected L1 for '%s', got %s", claim, rung)
		}
	}
}

func TestClassifier_CaseInsensitive(t *testing.T) {
	classifier := NewClassifier()

	if rung := classifier.Classify("COFFEE CAUSES ANXIETY"); rung != model.RungIntervention {
		t.Errorf("Expected L2 for upper-case claim, got %s", rung)
	}
	if rung := classifier.Classify("WHAT IF WE HAD WAITED?"); rung != model.RungCounterfactual {
		t.Errorf("Expected L3 for upper-case claim, got %s", rung)
	}
}

func TestClassifier_WordBoundaries(t *testing.T) {
	classifier := NewClassifier()

	// Marker substrings inside longer words must not match
	claims := []string{
		"The causeway floods at high tide",
		"Her affection was obvious",
	}

	for _, claim := range claims {
		if rung := classifier.Classify(claim); rung != model.RungAssociation {
			t.Errorf("Expected L1 for '%s', got %s", claim, rung)
		}
	}
}

func TestClassifier_Deterministic(t *testing.T) {
	classifier := NewClassifier()

	claim := "What if coffee causes poor sleep?"
	first := classifier.Classify(claim)
	for i := 0; i < 10; i++ {
		if rung := classifier.Classify(claim); rung != first {
			t.Fatalf("Expected stable classification, got %s then %s", first, rung)
		}
	}
}

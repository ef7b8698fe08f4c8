package taxonomy

import (
	"testing"

	"github.com/bharm16/prompt-builder-sub009/internal/model"
)

func TestDefaultRolesValid(t *testing.T) {
	s := Default()

	for _, role := range []string{
		"camera.lens", "camera.movement", "lighting.quality",
		"lighting.timeOfDay", "technical.frameRate", "action.movement",
	} {
		if !s.ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, want true", role)
		}
	}

	for _, role := range []string{
		"camera.frameRate", "lighting", "bogus.attr", "", "camera.",
	} {
		if s.ValidRole(role) {
			t.Errorf("ValidRole(%q) = true, want false", role)
		}
	}
}

func TestParentBranch(t *testing.T) {
	s := Default()

	cases := []struct {
		role string
		want string
	}{
		{"camera.lens", "camera"},
		{"lighting.quality", "lighting"},
		{"technical.aspectRatio", "technical"},
		{"nonexistent.attr", ""},
		{"noDot", ""},
	}
	for _, c := range cases {
		if got := s.ParentBranch(c.role); got != c.want {
			t.Errorf("ParentBranch(%q) = %q, want %q", c.role, got, c.want)
		}
	}
}

func TestNestedParentBranch(t *testing.T) {
	s, err := New([]model.TaxonomyCategory{
		{ID: "camera", Label: "Camera"},
		{ID: "camera.rig", Label: "Rig", ParentID: "camera", ValidAttributes: []string{"type"}},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if got := s.ParentBranch("camera.rig.type"); got != "camera" {
		t.Errorf("ParentBranch(camera.rig.type) = %q, want camera", got)
	}
	if !s.ValidRole("camera.rig.type") {
		t.Error("ValidRole(camera.rig.type) = false, want true")
	}
}

func TestSpecificity(t *testing.T) {
	if Specificity("camera.rig.type") != 3 {
		t.Errorf("Specificity(camera.rig.type) = %d, want 3", Specificity("camera.rig.type"))
	}
	if Specificity("camera.lens") != 2 {
		t.Errorf("Specificity(camera.lens) = %d, want 2", Specificity("camera.lens"))
	}
	if Specificity("") != 0 {
		t.Errorf("Specificity(empty) = %d, want 0", Specificity(""))
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New([]model.TaxonomyCategory{{ID: "a"}, {ID: "a"}}); err == nil {
		t.Error("duplicate id: expected error")
	}
	if _, err := New([]model.TaxonomyCategory{{ID: "a", ParentID: "missing"}}); err == nil {
		t.Error("missing parent: expected error")
	}
	if _, err := New([]model.TaxonomyCategory{
		{ID: "a", ParentID: "b"},
		{ID: "b", ParentID: "a"},
	}); err == nil {
		t.Error("parent cycle: expected error")
	}
}

func TestBranchLabelsSorted(t *testing.T) {
	labels := Default().BranchLabels()
	if len(labels) == 0 {
		t.Fatal("no branch labels")
	}
	for i := 1; i < len(labels); i++ {
		if labels[i-1] > labels[i] {
			t.Fatalf("labels not sorted: %v", labels)
		}
	}
}

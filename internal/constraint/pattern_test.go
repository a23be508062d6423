package constraint

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ppiankov/boundary/internal/model"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		envID  string
		action model.EnvAction
		want   string
	}{
		{
			name:  "single effect",
			envID: "lava_grid",
			action: model.EnvAction{
				Verb:    "step",
				Object:  "cell_3_4",
				Effects: []model.Param{{Key: "cell", Value: "lava"}},
			},
			want: "lava_grid/step:cell=lava",
		},
		{
			name:  "effects sorted",
			envID: "medication",
			action: model.EnvAction{
				Verb: "administer",
				Effects: []model.Param{
					{Key: "drug", Value: "warfarin"},
					{Key: "condition", Value: "bleeding_disorder"},
				},
			},
			want: "medication/administer:condition=bleeding_disorder|drug=warfarin",
		},
		{
			name:  "case folded",
			envID: "lava_grid",
			action: model.EnvAction{
				Verb:    "STEP",
				Effects: []model.Param{{Key: "Cell", Value: "LAVA"}},
			},
			want: "lava_grid/step:cell=lava",
		},
		{
			name:   "no effects falls back to object",
			envID:  "finance",
			action: model.EnvAction{Verb: "trade", Object: "XYZ"},
			want:   "finance/trade:object=xyz",
		},
		{
			name:   "empty action",
			envID:  "env",
			action: model.EnvAction{},
			want:   "env/:object=",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.envID, &tt.action); got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeIgnoresCoordinates(t *testing.T) {
	// The same hazard at different coordinates normalizes identically:
	// the object never enters the pattern once effects are declared.
	a := model.EnvAction{Verb: "step", Object: "cell_2_3", Effects: []model.Param{{Key: "cell", Value: "lava"}}}
	b := model.EnvAction{Verb: "step", Object: "cell_7_1", Effects: []model.Param{{Key: "cell", Value: "lava"}}}
	if Normalize("lava_grid", &a) != Normalize("lava_grid", &b) {
		t.Error("relocated hazard must normalize to the same pattern")
	}
}

func TestNormalizeEffectOrderIndependent(t *testing.T) {
	a := model.EnvAction{Verb: "v", Effects: []model.Param{{Key: "x", Value: "1"}, {Key: "y", Value: "2"}}}
	b := model.EnvAction{Verb: "v", Effects: []model.Param{{Key: "y", Value: "2"}, {Key: "x", Value: "1"}}}
	if Normalize("e", &a) != Normalize("e", &b) {
		t.Error("effect declaration order must not change the pattern")
	}
}

func FuzzNormalize(f *testing.F) {
	f.Add("lava_grid", "step", "cell_3_4", "cell", "lava")
	f.Add("", "", "", "", "")
	f.Add("env", "ADMINISTER", "patient", "drug", "warfarin")
	f.Add("e", "v", strings.Repeat("x", 1024), "k", strings.Repeat("v", 1024))

	f.Fuzz(func(t *testing.T, envID, verb, object, key, value string) {
		a := &model.EnvAction{Verb: verb, Object: object, Effects: []model.Param{{Key: key, Value: value}}}

		// Must not panic and must be deterministic.
		p1 := Normalize(envID, a)
		p2 := Normalize(envID, a)
		if p1 != p2 {
			t.Errorf("Normalize not deterministic for %+v", a)
		}
		if !strings.HasPrefix(p1, envID+"/") {
			t.Errorf("pattern %q lost its environment prefix", p1)
		}
	})
}

func BenchmarkNormalize(b *testing.B) {
	a := &model.EnvAction{
		Verb:   "administer",
		Object: "patient_7",
		Effects: []model.Param{
			{Key: "drug", Value: "warfarin"},
			{Key: "condition", Value: "bleeding_disorder"},
			{Key: "dose", Value: "high"},
		},
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Normalize("medication", a)
	}
}

func BenchmarkMatch_LargeMemory(b *testing.B) {
	m := NewMemory()
	for i := 0; i < 10000; i++ {
		m.Insert("env", fmt.Sprintf("env/act:n=%d", i), 0, "evt")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Match("env/act:n=5000")
	}
}

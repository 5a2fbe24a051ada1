package enrich

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		title string
		want  string
	}{
		{
			name:  "ownership deed by multiple keywords",
			text:  "سند ملكية عقار في بغداد",
			title: "",
			want:  "سند ملكية",
		},
		{
			name:  "lease contract",
			text:  "عقد إيجار بين المؤجر والمستأجر",
			title: "",
			want:  "عقد إيجار",
		},
		{
			name:  "title contributes to the score",
			text:  "",
			title: "Technical inspection report",
			want:  "تقرير فني",
		},
		{
			name:  "case normalized english keywords",
			text:  "OWNERSHIP PROPERTY papers",
			title: "",
			want:  "سند ملكية",
		},
		{
			name:  "no keyword yields fallback",
			text:  "نص عادي بدون دلالات",
			title: "ملف",
			want:  "أخرى",
		},
		{
			name:  "empty input yields fallback",
			text:  "",
			title: "",
			want:  "أخرى",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.text, tc.title); got != tc.want {
				t.Fatalf("Classify(%q, %q) = %q, want %q", tc.text, tc.title, got, tc.want)
			}
		})
	}
}

func TestClassifyTieKeepsFirstDeclaredCategory(t *testing.T) {
	// One keyword each for "خريطة مساحية" and "تقرير فني"; the earlier
	// table entry must win.
	got := Classify("خريطة مع تقرير", "")
	if got != "خريطة مساحية" {
		t.Fatalf("expected tie to resolve to first category, got %q", got)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	text := "طلب خدمة استمارة نموذج"
	first := Classify(text, "طلب")
	for i := 0; i < 10; i++ {
		if got := Classify(text, "طلب"); got != first {
			t.Fatalf("run %d returned %q, first run returned %q", i, got, first)
		}
	}
	if first != "طلب خدمة" {
		t.Fatalf("unexpected category %q", first)
	}
}

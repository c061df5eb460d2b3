package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/room4-2/frontdesk/intent"
)

func TestDefaultCoversEveryAlias(t *testing.T) {
	c := Default()
	for _, a := range intent.DepartmentAliases {
		d, ok := c.Department(a.Name)
		if !ok {
			t.Errorf("department %q missing from built-in catalog", a.Name)
			continue
		}
		if d.Location == "" || d.Representative.Name == "" {
			t.Errorf("department %q incomplete: %+v", a.Name, d)
		}
	}
	for _, a := range intent.FacilityAliases {
		if _, ok := c.Facility(a.Name); !ok {
			t.Errorf("facility %q missing from built-in catalog", a.Name)
		}
	}
}

func TestRestroomAnswer(t *testing.T) {
	f, ok := Default().Facility("Restroom")
	if !ok {
		t.Fatal("restroom missing")
	}
	if f.Answer != "The restroom is near the lift, just to your right." {
		t.Errorf("answer = %q", f.Answer)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	data := []byte(`
company: {name: Globex}
departments:
  - name: HR
    location: upstairs
    representative: {name: Sam, phone: "9800000000"}
facilities:
  - {name: wifi, answer: Ask Sam.}
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	d, ok := c.Department("hr")
	if !ok || d.Representative.Name != "Sam" {
		t.Errorf("department = %+v %v", d, ok)
	}
}

func TestParseRejectsDuplicates(t *testing.T) {
	_, err := Parse([]byte(`
company: {name: Globex}
departments:
  - {name: HR, location: a}
  - {name: hr, location: b}
`))
	if err == nil {
		t.Fatal("expected duplicate department error")
	}
}

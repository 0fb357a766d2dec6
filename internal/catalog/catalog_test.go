package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

const testClubs = `[
  {"id":"mun","slug":"mun","name":"Model United Nations","shortDescription":"Debate","tags":["Debate","Academics"],"isOpen":true,
   "meeting":{"day":"Tuesday","time":"15:45","location":"Room 403"},
   "contacts":{"leader":{"name":"P","email":"p@student.amnuaysilpa.ac.th"},"advisor":{"name":"A","email":"a@amnuaysilpa.ac.th"}}},
  {"id":"chess","slug":"chess","name":"Chess Club","shortDescription":"Chess","tags":["Games","Academics"],"isOpen":false,
   "meeting":{"day":"Friday","time":"12:30","location":"Library"},
   "contacts":{"leader":{"name":"J","email":"j@student.amnuaysilpa.ac.th"},"advisor":{"name":"W","email":"w@amnuaysilpa.ac.th"}}}
]`

const testStudents = `[
  {"studentId":"650123","fullName":"Suphansa Chareonsuk","email":"650123@student.amnuaysilpa.ac.th","grade":"M4"}
]`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	dir := t.TempDir()
	clubs := writeFixture(t, dir, "clubs.json", testClubs)
	students := writeFixture(t, dir, "students.json", testStudents)
	c, err := Load(clubs, students, "")
	if err != nil {
		t.Fatalf("Load err = %v", err)
	}
	return c
}

func TestLoadAndLookup(t *testing.T) {
	c := loadTestCatalog(t)

	if len(c.Clubs()) != 2 {
		t.Fatalf("Clubs() len = %d, want 2", len(c.Clubs()))
	}

	club, ok := c.ClubByID("mun")
	if !ok || club.Name != "Model United Nations" {
		t.Fatalf("ClubByID(mun) = %+v, %v", club, ok)
	}
	if _, ok := c.ClubBySlug("chess"); !ok {
		t.Fatal("ClubBySlug(chess) not found")
	}
	if _, ok := c.ClubByID("nope"); ok {
		t.Fatal("ClubByID(nope) found, want miss")
	}

	s, ok := c.StudentByEmail("650123@student.amnuaysilpa.ac.th")
	if !ok || s.FullName != "Suphansa Chareonsuk" {
		t.Fatalf("StudentByEmail = %+v, %v", s, ok)
	}
}

func TestLoadRejectsDuplicateSlug(t *testing.T) {
	dir := t.TempDir()
	dup := `[
	  {"id":"a","slug":"same","name":"A"},
	  {"id":"b","slug":"same","name":"B"}
	]`
	clubs := writeFixture(t, dir, "clubs.json", dup)
	students := writeFixture(t, dir, "students.json", testStudents)

	if _, err := Load(clubs, students, ""); err == nil {
		t.Fatal("Load with duplicate slug err = nil, want error")
	}
}

func TestTagsSortedUnique(t *testing.T) {
	c := loadTestCatalog(t)
	tags := c.Tags()
	want := []string{"Academics", "Debate", "Games"}
	if len(tags) != len(want) {
		t.Fatalf("Tags() = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("Tags() = %v, want %v", tags, want)
		}
	}
}

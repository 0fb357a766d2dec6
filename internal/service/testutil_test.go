package service

import (
	"os"
	"path/filepath"
	"testing"

	"ansxtra/internal/catalog"
	"ansxtra/internal/repository"
	"ansxtra/internal/store"
)

const testClubs = `[
  {"id":"mun","slug":"mun","name":"Model United Nations","shortDescription":"Debate global issues","tags":["Debate","Academics"],"isOpen":true,
   "meeting":{"day":"Tuesday","time":"15:45","location":"Room 403"},
   "contacts":{"leader":{"name":"P","email":"p@student.amnuaysilpa.ac.th"},"advisor":{"name":"A","email":"a@amnuaysilpa.ac.th"}}},
  {"id":"football","slug":"football","name":"Football Varsity","shortDescription":"League squad","tags":["Sports"],"isOpen":false,
   "meeting":{"day":"Monday","time":"16:00","location":"Main Field"},
   "contacts":{"leader":{"name":"K","email":"k@student.amnuaysilpa.ac.th"},"advisor":{"name":"S","email":"s@amnuaysilpa.ac.th"}}},
  {"id":"chess","slug":"chess","name":"Chess Club","shortDescription":"Tactics and a ranked ladder","tags":["Games","Academics"],"isOpen":true,
   "meeting":{"day":"Friday","time":"12:30","location":"Library"},
   "contacts":{"leader":{"name":"J","email":"j@student.amnuaysilpa.ac.th"},"advisor":{"name":"W","email":"w@amnuaysilpa.ac.th"}}}
]`

const testStudents = `[
  {"studentId":"650123","fullName":"Suphansa Chareonsuk","email":"650123@student.amnuaysilpa.ac.th","grade":"M4"},
  {"studentId":"000001","fullName":"Demo Student","email":"a@student.amnuaysilpa.ac.th","grade":"M4"}
]`

const testMemberships = `[
  {"clubId":"mun","email":"650123@student.amnuaysilpa.ac.th","role":"Member","joinedAt":"2025-06-09T08:00:00+07:00"},
  {"clubId":"chess","email":"650123@student.amnuaysilpa.ac.th","role":"Leader","joinedAt":"2024-06-03T08:00:00+07:00"}
]`

func loadTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}
	cat, err := catalog.Load(
		write("clubs.json", testClubs),
		write("students.json", testStudents),
		write("memberships.json", testMemberships),
	)
	if err != nil {
		t.Fatalf("catalog load err = %v", err)
	}
	return cat
}

type testEnv struct {
	kv      *store.Memory
	catalog *catalog.Catalog
	repo    *repository.ApplicationRepository
	auth    *AuthService
	apps    *ApplicationService
	clubs   *ClubService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	kv := store.NewMemory()
	cat := loadTestCatalog(t)
	repo := repository.NewApplicationRepository(kv)
	return &testEnv{
		kv:      kv,
		catalog: cat,
		repo:    repo,
		auth:    NewAuthService(repository.NewSessionRepository(kv), cat, true),
		apps:    NewApplicationService(repo, cat, nil, nil),
		clubs:   NewClubService(cat),
	}
}

package service

import (
	"errors"
	"testing"
)

func TestClubListFilters(t *testing.T) {
	env := newTestEnv(t)

	all := env.clubs.List(ClubFilter{Status: "all", Category: "all"})
	if len(all) != 3 {
		t.Fatalf("all clubs = %d, want 3", len(all))
	}

	open := env.clubs.List(ClubFilter{Status: "open"})
	if len(open) != 2 {
		t.Fatalf("open clubs = %d, want 2", len(open))
	}
	for _, c := range open {
		if !c.IsOpen {
			t.Errorf("club %q in open list but closed", c.ID)
		}
	}

	closed := env.clubs.List(ClubFilter{Status: "closed"})
	if len(closed) != 1 || closed[0].ID != "football" {
		t.Fatalf("closed clubs = %+v, want football only", closed)
	}

	academics := env.clubs.List(ClubFilter{Category: "Academics"})
	if len(academics) != 2 {
		t.Fatalf("Academics clubs = %d, want 2", len(academics))
	}

	// 搜索覆盖名称、简介和标签，不区分大小写
	byName := env.clubs.List(ClubFilter{Search: "united"})
	if len(byName) != 1 || byName[0].ID != "mun" {
		t.Fatalf("search united = %+v, want mun", byName)
	}
	byDesc := env.clubs.List(ClubFilter{Search: "ladder"})
	if len(byDesc) != 1 || byDesc[0].ID != "chess" {
		t.Fatalf("search ladder = %+v, want chess", byDesc)
	}
	byTag := env.clubs.List(ClubFilter{Search: "sports"})
	if len(byTag) != 1 || byTag[0].ID != "football" {
		t.Fatalf("search sports = %+v, want football", byTag)
	}

	// 组合过滤
	combined := env.clubs.List(ClubFilter{Status: "open", Category: "Academics", Search: "chess"})
	if len(combined) != 1 || combined[0].ID != "chess" {
		t.Fatalf("combined filter = %+v, want chess", combined)
	}
}

func TestClubBySlug(t *testing.T) {
	env := newTestEnv(t)

	club, err := env.clubs.BySlug("mun")
	if err != nil || club.Name != "Model United Nations" {
		t.Fatalf("BySlug(mun) = %+v, %v", club, err)
	}

	if _, err := env.clubs.BySlug("nope"); !errors.Is(err, ErrClubNotFound) {
		t.Fatalf("BySlug(nope) err = %v, want ErrClubNotFound", err)
	}
}

func TestClubTags(t *testing.T) {
	env := newTestEnv(t)
	tags := env.clubs.Tags()
	want := []string{"Academics", "Debate", "Games", "Sports"}
	if len(tags) != len(want) {
		t.Fatalf("Tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("Tags = %v, want %v", tags, want)
		}
	}
}

func TestMemberships(t *testing.T) {
	env := newTestEnv(t)

	ms := env.clubs.Memberships("650123@student.amnuaysilpa.ac.th")
	if len(ms) != 2 {
		t.Fatalf("Memberships = %d, want 2", len(ms))
	}

	if got := env.clubs.Memberships("a@student.amnuaysilpa.ac.th"); len(got) != 0 {
		t.Fatalf("Memberships for non-member = %+v, want empty", got)
	}
}

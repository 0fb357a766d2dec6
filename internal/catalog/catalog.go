package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"ansxtra/internal/model"
)

// Catalog 只读参考数据：社团目录、学生名册、成员关系
// 启动时读入一次，运行期间不修改
type Catalog struct {
	clubs       []model.Club
	students    []model.Student
	memberships []model.Membership

	clubByID       map[string]int
	clubBySlug     map[string]int
	studentByEmail map[string]int
}

func Load(clubsPath, studentsPath, membershipsPath string) (*Catalog, error) {
	c := &Catalog{
		clubByID:       make(map[string]int),
		clubBySlug:     make(map[string]int),
		studentByEmail: make(map[string]int),
	}

	if err := readJSON(clubsPath, &c.clubs); err != nil {
		return nil, fmt.Errorf("load clubs: %w", err)
	}
	for i, club := range c.clubs {
		if _, ok := c.clubByID[club.ID]; ok {
			return nil, fmt.Errorf("duplicate club id %q", club.ID)
		}
		if _, ok := c.clubBySlug[club.Slug]; ok {
			return nil, fmt.Errorf("duplicate club slug %q", club.Slug)
		}
		c.clubByID[club.ID] = i
		c.clubBySlug[club.Slug] = i
	}

	if err := readJSON(studentsPath, &c.students); err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}
	for i, s := range c.students {
		c.studentByEmail[s.Email] = i
	}

	// 成员关系是后加的 fixture，允许缺省
	if membershipsPath != "" {
		if err := readJSON(membershipsPath, &c.memberships); err != nil {
			return nil, fmt.Errorf("load memberships: %w", err)
		}
	}

	return c, nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (c *Catalog) Clubs() []model.Club {
	return c.clubs
}

func (c *Catalog) ClubByID(id string) (*model.Club, bool) {
	i, ok := c.clubByID[id]
	if !ok {
		return nil, false
	}
	return &c.clubs[i], true
}

func (c *Catalog) ClubBySlug(slug string) (*model.Club, bool) {
	i, ok := c.clubBySlug[slug]
	if !ok {
		return nil, false
	}
	return &c.clubs[i], true
}

func (c *Catalog) StudentByEmail(email string) (*model.Student, bool) {
	i, ok := c.studentByEmail[email]
	if !ok {
		return nil, false
	}
	return &c.students[i], true
}

func (c *Catalog) MembershipsByEmail(email string) []model.Membership {
	var out []model.Membership
	for _, m := range c.memberships {
		if m.Email == email {
			out = append(out, m)
		}
	}
	return out
}

// Tags 所有社团标签去重排序
func (c *Catalog) Tags() []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, club := range c.clubs {
		for _, tag := range club.Tags {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

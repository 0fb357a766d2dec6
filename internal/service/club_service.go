package service

import (
	"strings"

	"ansxtra/internal/catalog"
	"ansxtra/internal/model"
)

type ClubFilter struct {
	Search   string
	Status   string // all / open / closed
	Category string // 标签名或 all
}

// ClubService 社团目录的查询门面，目录本身只读
type ClubService struct {
	catalog *catalog.Catalog
}

func NewClubService(cat *catalog.Catalog) *ClubService {
	return &ClubService{catalog: cat}
}

func (s *ClubService) List(f ClubFilter) []model.Club {
	filtered := s.catalog.Clubs()

	switch f.Status {
	case "open":
		filtered = filterClubs(filtered, func(c model.Club) bool { return c.IsOpen })
	case "closed":
		filtered = filterClubs(filtered, func(c model.Club) bool { return !c.IsOpen })
	}

	if f.Category != "" && f.Category != "all" {
		filtered = filterClubs(filtered, func(c model.Club) bool {
			for _, tag := range c.Tags {
				if tag == f.Category {
					return true
				}
			}
			return false
		})
	}

	if f.Search != "" {
		query := strings.ToLower(f.Search)
		filtered = filterClubs(filtered, func(c model.Club) bool {
			if strings.Contains(strings.ToLower(c.Name), query) ||
				strings.Contains(strings.ToLower(c.ShortDescription), query) {
				return true
			}
			for _, tag := range c.Tags {
				if strings.Contains(strings.ToLower(tag), query) {
					return true
				}
			}
			return false
		})
	}

	return filtered
}

func filterClubs(clubs []model.Club, keep func(model.Club) bool) []model.Club {
	out := make([]model.Club, 0, len(clubs))
	for _, c := range clubs {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s *ClubService) BySlug(slug string) (*model.Club, error) {
	club, ok := s.catalog.ClubBySlug(slug)
	if !ok {
		return nil, ErrClubNotFound
	}
	return club, nil
}

func (s *ClubService) Tags() []string {
	return s.catalog.Tags()
}

// Memberships 当前只有 fixture 播种的数据，没有运行时写入路径
func (s *ClubService) Memberships(email string) []model.Membership {
	return s.catalog.MembershipsByEmail(email)
}

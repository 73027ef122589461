package service

import (
	"strings"

	"github.com/Cup-Trail/cup-trail-sub000/internal/app/model"
	"github.com/Cup-Trail/cup-trail-sub000/internal/app/repository"
	apperrors "github.com/Cup-Trail/cup-trail-sub000/internal/errors"
)

// categoryRule maps a category slug to the keywords that suggest it.
// Matching is case-insensitive substring containment on the drink name.
// Slugs must exist in the seeded category table.
type categoryRule struct {
	slug     string
	keywords []string
}

var categoryRules = []categoryRule{
	{"milk-tea", []string{"milk tea", "boba", "bubble", "pearl", "taro"}},
	{"fruit-tea", []string{"fruit tea", "passion", "lychee", "peach tea", "grapefruit", "mango green"}},
	{"coffee", []string{"coffee", "latte", "espresso", "americano", "mocha", "cappuccino", "cold brew"}},
	{"tea", []string{"tea", "chai", "oolong", "jasmine", "earl grey"}},
	{"matcha", []string{"matcha"}},
	{"smoothie", []string{"smoothie", "blended"}},
	{"juice", []string{"juice", "lemonade", "ade"}},
	{"slush", []string{"slush", "frozen"}},
}

type CategoryService interface {
	ListCategories() ([]model.Category, error)
	SuggestCategories(drinkName string) []string
	AssignCategories(shopDrinkID uint, slugs []string) error
	GetAssignedCategories(shopDrinkID uint) ([]model.Category, error)
}

type categoryService struct {
	categoryRepo  repository.CategoryRepository
	shopDrinkRepo repository.ShopDrinkRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, shopDrinkRepo repository.ShopDrinkRepository) CategoryService {
	return &categoryService{
		categoryRepo:  categoryRepo,
		shopDrinkRepo: shopDrinkRepo,
	}
}

func (s *categoryService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.ListAll()
}

// SuggestCategories matches the drink name against the keyword rule table.
// A name may hit zero, one, or several categories; duplicates collapse and
// rule order keeps the result stable.
func (s *categoryService) SuggestCategories(drinkName string) []string {
	name := strings.ToLower(drinkName)

	seen := make(map[string]bool)
	var slugs []string
	for _, rule := range categoryRules {
		if seen[rule.slug] {
			continue
		}
		for _, keyword := range rule.keywords {
			if strings.Contains(name, keyword) {
				seen[rule.slug] = true
				slugs = append(slugs, rule.slug)
				break
			}
		}
	}
	return slugs
}

// AssignCategories replaces the association's full tag set. An empty slug
// list clears every tag; callers wanting to add one tag must send the
// whole set.
func (s *categoryService) AssignCategories(shopDrinkID uint, slugs []string) error {
	shopDrink, err := s.shopDrinkRepo.FindByID(shopDrinkID)
	if err != nil {
		return err
	}
	if shopDrink == nil {
		return ErrShopDrinkNotFound
	}

	slugs = dedupeSlugs(slugs)

	var categoryIDs []uint
	if len(slugs) > 0 {
		categories, err := s.categoryRepo.FindBySlugs(slugs)
		if err != nil {
			return err
		}
		if len(categories) != len(slugs) {
			known := make(map[string]bool, len(categories))
			for _, c := range categories {
				known[c.Slug] = true
			}
			var unknown []string
			for _, slug := range slugs {
				if !known[slug] {
					unknown = append(unknown, slug)
				}
			}
			return apperrors.NewValidation("slugs", "unknown category slugs: "+strings.Join(unknown, ", "))
		}
		for _, c := range categories {
			categoryIDs = append(categoryIDs, c.ID)
		}
	}

	return s.categoryRepo.ReplaceForShopDrink(shopDrinkID, categoryIDs)
}

func (s *categoryService) GetAssignedCategories(shopDrinkID uint) ([]model.Category, error) {
	return s.categoryRepo.ListForShopDrink(shopDrinkID)
}

func dedupeSlugs(slugs []string) []string {
	seen := make(map[string]bool, len(slugs))
	var out []string
	for _, slug := range slugs {
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, slug)
	}
	return out
}

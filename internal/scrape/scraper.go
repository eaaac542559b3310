package scrape

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/kearth1516-lgtm/my-app/internal"
)

// Recipe is the raw result of scraping an external recipe page.
type Recipe struct {
	Name        string
	Ingredients []string
	Steps       []string
	CookingTime int // minutes
	Tags        []string
}

type Scraper interface {
	Scrape(ctx context.Context, url string) (*Recipe, error)
}

// HTTPScraper fetches a recipe page and extracts fields with per-site CSS
// selector sets. Single attempt, no retries.
type HTTPScraper struct {
	client *http.Client
	logger internal.Logger
}

func NewHTTPScraper(logger internal.Logger) *HTTPScraper {
	return &HTTPScraper{
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

var durationRe = regexp.MustCompile(`(\d+)`)

func (s *HTTPScraper) Scrape(ctx context.Context, url string) (*Recipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Errorf("scrape: request failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		s.logger.Errorf("scrape: %s returned %d", url, resp.StatusCode)
		return nil, errors.New("recipe page returned non-200")
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var recipe *Recipe
	switch {
	case strings.Contains(url, "cookpad.com"):
		recipe = parseCookpad(doc)
	case strings.Contains(url, "recipe.rakuten.co.jp"):
		recipe = parseRakuten(doc)
	default:
		recipe = parseGeneric(doc)
	}
	if recipe.Name == "" {
		return nil, errors.New("no recipe found on page")
	}
	return recipe, nil
}

func parseCookpad(doc *goquery.Document) *Recipe {
	r := &Recipe{Tags: []string{"cookpad"}}
	r.Name = strings.TrimSpace(doc.Find("h1.recipe-title").First().Text())

	doc.Find(".ingredient_row").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Find(".ingredient_name").Text())
		quantity := strings.TrimSpace(sel.Find(".ingredient_quantity").Text())
		if name != "" {
			r.Ingredients = append(r.Ingredients, strings.TrimSpace(name+" "+quantity))
		}
	})

	doc.Find(".step_text").Each(func(_ int, sel *goquery.Selection) {
		if step := strings.TrimSpace(sel.Text()); step != "" {
			r.Steps = append(r.Steps, step)
		}
	})

	r.CookingTime = parseMinutes(doc.Find(".cooking_time").First().Text())
	return r
}

func parseRakuten(doc *goquery.Document) *Recipe {
	r := &Recipe{Tags: []string{"rakuten"}}
	r.Name = strings.TrimSpace(doc.Find("h1.page_title__text").First().Text())

	doc.Find(".recipe_material__item").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Find(".recipe_material__item_name").Text())
		serving := strings.TrimSpace(sel.Find(".recipe_material__item_serving").Text())
		if name != "" {
			r.Ingredients = append(r.Ingredients, strings.TrimSpace(name+" "+serving))
		}
	})

	doc.Find(".recipe_howto__text").Each(func(_ int, sel *goquery.Selection) {
		if step := strings.TrimSpace(sel.Text()); step != "" {
			r.Steps = append(r.Steps, step)
		}
	})

	r.CookingTime = parseMinutes(doc.Find(".recipe_info__time").First().Text())
	return r
}

// parseGeneric tries schema.org microdata, then falls back to the page h1.
func parseGeneric(doc *goquery.Document) *Recipe {
	r := &Recipe{Tags: []string{}}
	r.Name = strings.TrimSpace(doc.Find("[itemprop=name]").First().Text())
	if r.Name == "" {
		r.Name = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	doc.Find("[itemprop=recipeIngredient], [itemprop=ingredients]").Each(func(_ int, sel *goquery.Selection) {
		if ing := strings.TrimSpace(sel.Text()); ing != "" {
			r.Ingredients = append(r.Ingredients, ing)
		}
	})

	doc.Find("[itemprop=recipeInstructions] li").Each(func(_ int, sel *goquery.Selection) {
		if step := strings.TrimSpace(sel.Text()); step != "" {
			r.Steps = append(r.Steps, step)
		}
	})
	if len(r.Steps) == 0 {
		doc.Find("[itemprop=recipeInstructions]").Each(func(_ int, sel *goquery.Selection) {
			if step := strings.TrimSpace(sel.Text()); step != "" {
				r.Steps = append(r.Steps, step)
			}
		})
	}

	r.CookingTime = parseMinutes(doc.Find("[itemprop=totalTime]").First().Text())
	return r
}

func parseMinutes(text string) int {
	m := durationRe.FindString(text)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

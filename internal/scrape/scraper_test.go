package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kearth1516-lgtm/my-app/internal"
)

const genericPage = `<html><body>
<h1 itemprop="name">Tomato Pasta</h1>
<span itemprop="totalTime">about 20 min</span>
<ul>
  <li itemprop="recipeIngredient">pasta 200g</li>
  <li itemprop="recipeIngredient">tomatoes 3</li>
</ul>
<ol itemprop="recipeInstructions">
  <li>Boil the pasta.</li>
  <li>Make the sauce.</li>
</ol>
</body></html>`

func TestScrapeGenericMicrodata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(genericPage))
	}))
	defer srv.Close()

	scraper := NewHTTPScraper(internal.NopLogger{})
	recipe, err := scraper.Scrape(context.Background(), srv.URL)
	assert.NoError(t, err)
	assert.Equal(t, "Tomato Pasta", recipe.Name)
	assert.Equal(t, []string{"pasta 200g", "tomatoes 3"}, recipe.Ingredients)
	assert.Equal(t, []string{"Boil the pasta.", "Make the sauce."}, recipe.Steps)
	assert.Equal(t, 20, recipe.CookingTime)
}

func TestScrapeMissingRecipe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>nothing here</p></body></html>`))
	}))
	defer srv.Close()

	scraper := NewHTTPScraper(internal.NopLogger{})
	_, err := scraper.Scrape(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestScrapeNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	scraper := NewHTTPScraper(internal.NopLogger{})
	_, err := scraper.Scrape(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestParseMinutes(t *testing.T) {
	assert.Equal(t, 30, parseMinutes("30分"))
	assert.Equal(t, 15, parseMinutes("approx. 15 minutes"))
	assert.Equal(t, 0, parseMinutes("quick"))
	assert.Equal(t, 0, parseMinutes(""))
}

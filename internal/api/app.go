package api

import (
	"github.com/kearth1516-lgtm/my-app/internal"
	"github.com/kearth1516-lgtm/my-app/internal/scrape"
	"github.com/kearth1516-lgtm/my-app/internal/service"
	"github.com/kearth1516-lgtm/my-app/internal/storage"
	"github.com/kearth1516-lgtm/my-app/internal/suggest"
	"github.com/kearth1516-lgtm/my-app/internal/weather"
)

// App is the dependency surface handlers close over. Tests provide their
// own instance with fake collaborators.
type App interface {
	Logger() internal.Logger
	Store() storage.Store
	Sessions() *service.ActiveSessions
	Scraper() scrape.Scraper
	Suggester() suggest.Suggester
	Weather() *weather.Client
}

type appImpl struct {
	logger    internal.Logger
	store     storage.Store
	sessions  *service.ActiveSessions
	scraper   scrape.Scraper
	suggester suggest.Suggester
	weather   *weather.Client
}

func NewApp(logger internal.Logger, store storage.Store, sessions *service.ActiveSessions, scraper scrape.Scraper, suggester suggest.Suggester, w *weather.Client) App {
	return &appImpl{
		logger:    logger,
		store:     store,
		sessions:  sessions,
		scraper:   scraper,
		suggester: suggester,
		weather:   w,
	}
}

func (a *appImpl) Logger() internal.Logger { return a.logger }
func (a *appImpl) Store() storage.Store { return a.store }
func (a *appImpl) Sessions() *service.ActiveSessions { return a.sessions }
func (a *appImpl) Scraper() scrape.Scraper { return a.scraper }
func (a *appImpl) Suggester() suggest.Suggester { return a.suggester }
func (a *appImpl) Weather() *weather.Client { return a.weather }

package handler

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/velocar/rental-portal/internal/core/domain"
	"github.com/velocar/rental-portal/internal/core/ports"
	"github.com/velocar/rental-portal/internal/infrastructure/apiclient"
)

// featuredCount is how many available cars the home page showcases.
const featuredCount = 6

// PageHandler serves the public marketing and catalog pages.
type PageHandler struct {
	cars ports.CarGateway
	log  zerolog.Logger
}

func NewPageHandler(cars ports.CarGateway, log zerolog.Logger) *PageHandler {
	return &PageHandler{cars: cars, log: log}
}

type homePage struct {
	basePage
	Featured []domain.Car
}

type carsPage struct {
	basePage
	Cars   []domain.Car
	Brands []string
	Brand  string
}

// Home renders the landing page with a handful of available cars. A catalog
// fetch failure banners the page; the hero still renders.
func (h *PageHandler) Home(c echo.Context) error {
	page := homePage{basePage: newBasePage(c)}

	cars, err := h.cars.ListCars(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("catalog fetch failed")
		page.SetError(apiclient.UserMessage(err))
		return c.Render(http.StatusOK, "home", page)
	}

	for _, car := range cars {
		if !car.Available {
			continue
		}
		page.Featured = append(page.Featured, car)
		if len(page.Featured) == featuredCount {
			break
		}
	}
	return c.Render(http.StatusOK, "home", page)
}

// Cars renders the catalog, optionally filtered by brand.
func (h *PageHandler) Cars(c echo.Context) error {
	page := carsPage{basePage: newBasePage(c), Brand: c.QueryParam("brand")}

	cars, err := h.cars.ListCars(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("catalog fetch failed")
		page.SetError(apiclient.UserMessage(err))
		return c.Render(http.StatusOK, "cars", page)
	}

	seen := make(map[string]bool)
	for _, car := range cars {
		if !seen[car.Brand] {
			seen[car.Brand] = true
			page.Brands = append(page.Brands, car.Brand)
		}
		if page.Brand == "" || car.Brand == page.Brand {
			page.Cars = append(page.Cars, car)
		}
	}
	sort.Strings(page.Brands)

	return c.Render(http.StatusOK, "cars", page)
}

// About renders the static about page.
func (h *PageHandler) About(c echo.Context) error {
	return c.Render(http.StatusOK, "about", struct{ basePage }{newBasePage(c)})
}

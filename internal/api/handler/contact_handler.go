package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/velocar/rental-portal/internal/core/ports"
	"github.com/velocar/rental-portal/internal/infrastructure/apiclient"
)

// ContactHandler serves the contact page and submits visitor messages.
type ContactHandler struct {
	messages ports.MessageGateway
	log      zerolog.Logger
}

func NewContactHandler(messages ports.MessageGateway, log zerolog.Logger) *ContactHandler {
	return &ContactHandler{messages: messages, log: log}
}

type contactForm struct {
	Name    string `form:"name"    validate:"required"`
	Email   string `form:"email"   validate:"required,email"`
	Phone   string `form:"phone"`
	Message string `form:"message" validate:"required"`
}

type contactPage struct {
	basePage
	Form contactForm
}

// Form renders the contact page.
func (h *ContactHandler) Form(c echo.Context) error {
	return c.Render(http.StatusOK, "contact", contactPage{basePage: newBasePage(c)})
}

// Submit creates a contact message. Open to any visitor, no session needed.
func (h *ContactHandler) Submit(c echo.Context) error {
	var form contactForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	page := contactPage{basePage: newBasePage(c), Form: form}
	if err := c.Validate(&form); err != nil {
		page.SetError(err.Error())
		return c.Render(http.StatusOK, "contact", page)
	}

	_, err := h.messages.CreateMessage(c.Request().Context(), ports.ContactInput{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Message: form.Message,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("contact message submit failed")
		page.SetError(apiclient.UserMessage(err))
		return c.Render(http.StatusOK, "contact", page)
	}

	setFlash(c, "success", "Message sent, we'll get back to you soon")
	return c.Redirect(http.StatusSeeOther, "/contact")
}

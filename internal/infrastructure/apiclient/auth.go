package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/velocar/rental-portal/internal/core/domain"
	"github.com/velocar/rental-portal/internal/core/ports"
)

type authResponse struct {
	Token string              `json:"token"`
	User  *domain.UserSummary `json:"user"`
}

// Login exchanges credentials for a bearer token and identity record.
func (c *Client) Login(ctx context.Context, email, password string) (string, *domain.UserSummary, error) {
	body := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := c.post(ctx, "/auth/login", "auth_login", body, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}

// Register creates an account; the API answers with the same token+user shape
// as login.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.UserSummary, error) {
	body := map[string]string{
		"firstName": in.FirstName,
		"lastName":  in.LastName,
		"email":     in.Email,
		"phone":     in.Phone,
		"password":  in.Password,
	}

	var resp authResponse
	if err := c.post(ctx, "/auth/register", "auth_register", body, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}

// UpdateProfile submits the editable profile fields as multipart form data,
// including the optional avatar upload.
func (c *Client) UpdateProfile(ctx context.Context, in ports.ProfileUpdateInput) (*domain.UserSummary, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"firstName": in.FirstName,
		"lastName":  in.LastName,
		"phone":     in.Phone,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("auth_update_profile: write field: %w", err)
		}
	}
	if len(in.ImageData) > 0 {
		part, err := w.CreateFormFile("profileImage", in.ImageFilename)
		if err != nil {
			return nil, fmt.Errorf("auth_update_profile: create file part: %w", err)
		}
		if _, err := part.Write(in.ImageData); err != nil {
			return nil, fmt.Errorf("auth_update_profile: write file part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("auth_update_profile: close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/auth/profile", &buf)
	if err != nil {
		return nil, fmt.Errorf("auth_update_profile: build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var resp struct {
		User *domain.UserSummary `json:"user"`
	}
	if err := c.send(req, "auth_update_profile", &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

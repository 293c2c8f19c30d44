// Package client is a typed HTTP client for the student records API.
// It keeps the session cookie issued by signin and replays it on every
// subsequent call.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/cookiejar"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mnadhif/student-records-api/internal/models"
	apperrors "github.com/mnadhif/student-records-api/pkg/errors"
)

// listTimeout bounds the roster fetch. It is the only deadline the
// client imposes; all other calls run without one.
const listTimeout = 15 * time.Second

type Client struct {
	client *resty.Client
}

func New(endpoint string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	client := resty.New().
		SetBaseURL(endpoint).
		SetCookieJar(jar).
		SetHeader("Content-Type", "application/json")

	return &Client{client: client}, nil
}

// Signup registers a new account. The server does not start a session.
func (c *Client) Signup(ctx context.Context, req models.SignupRequest) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/api/auth/signup")
	if err != nil {
		return err
	}
	return checkResponse(resp)
}

// Signin authenticates and stores the session cookie in the jar.
func (c *Client) Signin(ctx context.Context, req models.SigninRequest) (*models.UserInfo, error) {
	info := &models.UserInfo{}
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(info).
		Post("/api/auth/signin")
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return info, nil
}

func (c *Client) Signout(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Post("/api/auth/signout")
	if err != nil {
		return err
	}
	return checkResponse(resp)
}

func (c *Client) Me(ctx context.Context) (*models.UserInfo, error) {
	info := &models.UserInfo{}
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(info).
		Get("/api/auth/me")
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return info, nil
}

// List fetches the full roster, aborting after listTimeout.
func (c *Client) List(ctx context.Context) ([]models.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var students []models.Student
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&students).
		Get("/api/students")
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return students, nil
}

func (c *Client) Get(ctx context.Context, id string) (*models.Student, error) {
	student := &models.Student{}
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(student).
		SetPathParam("id", id).
		Get("/api/students/{id}")
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return student, nil
}

func (c *Client) Create(ctx context.Context, req models.Student) (*models.Student, error) {
	created := &models.Student{}
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(created).
		Post("/api/students")
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *Client) Update(ctx context.Context, id string, patch models.StudentPatch) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(patch).
		SetPathParam("id", id).
		Put("/api/students/{id}")
	if err != nil {
		return err
	}
	return checkResponse(resp)
}

func (c *Client) Delete(ctx context.Context, id string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete("/api/students/{id}")
	if err != nil {
		return err
	}
	return checkResponse(resp)
}

// checkResponse maps a non-2xx body back onto the service error type so
// callers see the same code and message the server produced.
func checkResponse(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil || body.Message == "" {
		return apperrors.New("HTTP_ERROR", resp.StatusCode(), fmt.Sprintf("unexpected status %d", resp.StatusCode()))
	}
	return apperrors.New(body.Code, resp.StatusCode(), body.Message)
}

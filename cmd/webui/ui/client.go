package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Session holds the authenticated operator connection to the update service.
type Session struct {
	BaseURL string
	Token   string
	Role    string
	http    *http.Client
}

func NewSession(baseURL string) *Session {
	return &Session{BaseURL: baseURL, http: &http.Client{Timeout: 30 * time.Second}}
}

type BuildRow struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	UploadedBy  string `json:"uploaded_by"`
	UploadTime  string `json:"upload_time"`
	PrinterType string `json:"printer_type"`
	SubType     string `json:"sub_type"`
	Size        string `json:"size"`
	Make        string `json:"make"`
}

// Login exchanges credentials for a bearer token.
func (s *Session) Login(username, password string) error {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := s.http.Post(s.BaseURL+"/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("login failed: %s", string(msg))
	}
	var out struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}
	s.Token = out.Token
	s.Role = out.Role
	return nil
}

func (s *Session) ListBuilds() ([]BuildRow, error) {
	req, err := http.NewRequest(http.MethodGet, s.BaseURL+"/builds", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.Token)
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list builds: server returned %s", resp.Status)
	}
	var builds []BuildRow
	if err := json.NewDecoder(resp.Body).Decode(&builds); err != nil {
		return nil, fmt.Errorf("decode builds: %w", err)
	}
	return builds, nil
}

func (s *Session) DeleteBuild(id uint) error {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/builds/%d", s.BaseURL, id), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.Token)
	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("delete build %d: %s", id, string(msg))
	}
	return nil
}

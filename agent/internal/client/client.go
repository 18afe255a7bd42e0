package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Build is the server's view of one published archive, as returned by
// /buildDetails.
type Build struct {
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

// Client talks to the update service over the device-gated endpoints.
type Client struct {
	baseURL    string
	headerName string
	authToken  string
	http       *http.Client
}

func New(baseURL, headerName, authToken string) *Client {
	return &Client{
		baseURL:    baseURL,
		headerName: headerName,
		authToken:  authToken,
		http:       &http.Client{Timeout: 10 * time.Minute},
	}
}

func (c *Client) post(path string, body any) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(c.headerName, c.authToken)
	return c.http.Do(req)
}

// BuildDetails asks the server what is available for this device profile.
func (c *Client) BuildDetails(printerType, subType, mke string) ([]Build, error) {
	payload := map[string]string{
		"printerDetails": fmt.Sprintf("%s %s %s", printerType, subType, mke),
	}
	resp, err := c.post("/buildDetails", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("buildDetails: server returned %s", resp.Status)
	}
	var builds []Build
	if err := json.NewDecoder(resp.Body).Decode(&builds); err != nil {
		return nil, fmt.Errorf("buildDetails: decode response: %w", err)
	}
	return builds, nil
}

// Download fetches the archive for the exact device-and-version key and
// streams it to destPath.
func (c *Client) Download(printerType, subType, mke, buildNumber, destPath string) error {
	payload := map[string]string{
		"printer_type": printerType,
		"sub_type":     subType,
		"make":         mke,
		"build_number": buildNumber,
	}
	resp, err := c.post("/download", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download: server returned %s", resp.Status)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", destPath, err)
	}
	_, err = io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(destPath)
		return fmt.Errorf("write %s: %w", destPath, err)
	}
	return nil
}

package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/adbench/adeval/internal/eval"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-1.5-pro-latest"

	maxGenerateAttempts = 2
)

// Client talks to the hosted Gemini API: it uploads the video through the
// Files API, polls until the file is usable, and requests the evaluation with
// the file attached.
type Client struct {
	APIKey       string
	BaseURL      string
	Model        string
	HTTPClient   *http.Client
	PollInterval time.Duration       // file-state polling cadence; 0 means 10s
	Sleep        func(time.Duration) // nil means time.Sleep
}

// File mirrors the Files API resource fields the client needs.
type File struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	URI         string `json:"uri"`
	State       string `json:"state"`
	MimeType    string `json:"mimeType"`
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		Model:   defaultModel,
		// Generation over a full video can legitimately take minutes.
		HTTPClient: &http.Client{Timeout: 600 * time.Second},
	}
}

// Evaluate runs the full hosted flow: upload, wait for the file to become
// ACTIVE, then generate with a bounded retry. Upload and file-processing
// failures are fatal and reported as errors; generation failures after the
// retry budget degrade to an error record so the caller still gets an
// artifact.
func (c *Client) Evaluate(ctx context.Context, videoPath, prompt string) (eval.Record, error) {
	fmt.Println("Uploading video file to the Gemini API...")
	file, err := c.UploadFile(ctx, videoPath)
	if err != nil {
		return nil, fmt.Errorf("file upload failed: %v", err)
	}

	file, err = c.WaitForFile(ctx, file.Name)
	if err != nil {
		return nil, err
	}

	fmt.Println("File is ready. Generating the evaluation...")
	var lastErr error
	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		text, err := c.generate(ctx, file, prompt)
		if err == nil {
			fmt.Println("--- RAW GEMINI RESPONSE ---")
			fmt.Println(text)
			fmt.Println("--- END RAW RESPONSE ---")
			return eval.Normalize(text), nil
		}
		lastErr = err
		log.Printf("Error during generation (attempt %d/%d): %v", attempt, maxGenerateAttempts, err)
		if attempt < maxGenerateAttempts {
			c.sleep(time.Duration(attempt) * 5 * time.Second)
		}
	}
	return eval.Record{
		"error":      fmt.Sprintf("failed after %d attempts", maxGenerateAttempts),
		"last_error": lastErr.Error(),
	}, nil
}

// UploadFile pushes the video bytes through the media upload endpoint.
func (c *Client) UploadFile(ctx context.Context, path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	url := fmt.Sprintf("%s/upload/v1beta/files?key=%s&uploadType=media", c.BaseURL, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, f)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "video/mp4")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upload returned status %d: %s", resp.StatusCode, body)
	}

	var result struct {
		File File `json:"file"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %v", err)
	}
	return &result.File, nil
}

// WaitForFile polls the file resource until it leaves the PROCESSING state.
// A file that lands in FAILED is an error; anything else is ready for use.
func (c *Client) WaitForFile(ctx context.Context, name string) (*File, error) {
	interval := c.PollInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}

	file, err := c.getFile(ctx, name)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Waiting for file '%s' to be processed...\n", file.DisplayName)
	for file.State == "PROCESSING" {
		c.sleep(interval)
		file, err = c.getFile(ctx, name)
		if err != nil {
			return nil, err
		}
	}
	if file.State == "FAILED" {
		return nil, fmt.Errorf("file processing failed for '%s'", file.DisplayName)
	}
	fmt.Printf("File '%s' is now ACTIVE.\n", file.DisplayName)
	return file, nil
}

func (c *Client) getFile(ctx context.Context, name string) (*File, error) {
	url := fmt.Sprintf("%s/v1beta/%s?key=%s", c.BaseURL, name, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file lookup returned status %d: %s", resp.StatusCode, body)
	}
	var file File
	if err := json.Unmarshal(body, &file); err != nil {
		return nil, fmt.Errorf("failed to decode file resource: %v", err)
	}
	return &file, nil
}

func (c *Client) generate(ctx context.Context, file *File, prompt string) (string, error) {
	mimeType := file.MimeType
	if mimeType == "" {
		mimeType = "video/mp4"
	}
	requestBody := map[string]any{
		"systemInstruction": map[string]any{
			"parts": []map[string]string{{"text": eval.SystemInstruction}},
		},
		"contents": []map[string]any{{
			"role": "user",
			"parts": []map[string]any{
				{"text": prompt},
				{"fileData": map[string]string{"mimeType": mimeType, "fileUri": file.URI}},
			},
		}},
		"generationConfig": map[string]any{
			"temperature":      0.6,
			"maxOutputTokens":  1024,
			"responseMimeType": "application/json",
		},
	}
	payload, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.BaseURL, c.Model, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generateContent returned status %d: %s", resp.StatusCode, body)
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode generateContent response: %v", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

func (c *Client) sleep(d time.Duration) {
	if c.Sleep != nil {
		c.Sleep(d)
		return
	}
	time.Sleep(d)
}

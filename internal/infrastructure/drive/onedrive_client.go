package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/inventoryhub/backend/internal/domain/shared"
	"github.com/inventoryhub/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// supportTicketFolder is the OneDrive folder tickets are uploaded into.
// Graph creates missing path segments on upload.
const supportTicketFolder = "SupportTickets"

// UploadResult describes the uploaded drive item
type UploadResult struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	WebURL string `json:"webUrl"`
}

// OneDriveClient uploads files to the signed-in user's OneDrive through
// Microsoft Graph
type OneDriveClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewOneDriveClient creates a Graph drive client
func NewOneDriveClient(cfg config.IntegrationsConfig, logger *zap.Logger) *OneDriveClient {
	return &OneDriveClient{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimRight(cfg.GraphBaseURL, "/"),
		logger:     logger,
	}
}

// Upload writes the content to /SupportTickets/{filename} in the user's
// drive, replacing any existing file of the same name
func (c *OneDriveClient) Upload(ctx context.Context, accessToken, filename string, content []byte) (*UploadResult, error) {
	uploadURL := fmt.Sprintf("%s/me/drive/root:/%s/%s:/content",
		c.baseURL, supportTicketFolder, url.PathEscape(filename))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("build graph upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warn("graph rejected access token", zap.String("filename", filename))
		return nil, shared.ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("graph upload failed",
			zap.String("filename", filename),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, shared.NewDomainError("UPSTREAM_ERROR", fmt.Sprintf("OneDrive upload failed: %s", resp.Status))
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode graph upload response: %w", err)
	}

	c.logger.Info("support ticket uploaded to onedrive",
		zap.String("filename", filename),
		zap.String("item_id", result.ID),
	)
	return &result, nil
}

package lib

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/antchfx/htmlquery"
	"github.com/carlmjohnson/requests"
	"github.com/google/uuid"
	"github.com/mkarpus/feedsignal/config"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// PreviewExtractor turns an entry's permalink into a downloaded
// preview image by reading the page's social-sharing metadata.
type PreviewExtractor struct {
	log       *zap.Logger
	transport http.RoundTripper
	client    *http.Client
	timeout   time.Duration
	tmpDir    string
}

func NewPreviewExtractor(cfg *config.Config, log *zap.Logger, transport http.RoundTripper) *PreviewExtractor {
	return &PreviewExtractor{
		log:       log,
		transport: transport,
		client:    &http.Client{Transport: transport},
		timeout:   cfg.FetchTimeout(),
		tmpDir:    os.TempDir(),
	}
}

// Extract fetches pageURL, locates its sharing-image reference,
// downloads the image to a uniquely named temporary file and returns
// its path. Every failure mode (network error, non-success status,
// timeout, no image tag) degrades to an empty path; the notification
// simply goes out without a picture. The caller owns the file.
func (p *PreviewExtractor) Extract(ctx context.Context, pageURL string) string {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var page string
	err := requests.URL(pageURL).
		Transport(p.transport).
		ToString(&page).
		Fetch(ctx)
	if err != nil {
		p.log.Sugar().Infow("No preview, page fetch failed", "url", pageURL, "err", err)
		return ""
	}

	doc, err := htmlquery.Parse(strings.NewReader(page))
	if err != nil {
		p.log.Sugar().Infow("No preview, page does not parse", "url", pageURL, "err", err)
		return ""
	}

	imgURL := extractImageURL(doc)
	if imgURL == "" {
		p.log.Sugar().Debugw("No preview, page has no sharing image", "url", pageURL)
		return ""
	}

	path, err := p.download(ctx, imgURL)
	if err != nil {
		p.log.Sugar().Infow("No preview, image download failed", "url", imgURL, "err", err)
		return ""
	}
	return path
}

func (p *PreviewExtractor) download(ctx context.Context, imgURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imgURL, nil)
	if err != nil {
		return "", err
	}

	res, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("want 200, got %d", res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	suffix := fileSuffix(res.Header.Get("Content-Type"), imgURL)
	path := filepath.Join(p.tmpDir, "preview-"+uuid.NewString()+suffix)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// fileSuffix maps the declared content type to an extension, falling
// back to the last four characters of the image URL when the type is
// unrecognized.
func fileSuffix(contentType, imgURL string) string {
	ct := strings.TrimSpace(strings.Split(contentType, ";")[0])
	if exts, err := mime.ExtensionsByType(ct); err == nil && len(exts) > 0 {
		return exts[0]
	}
	if len(imgURL) >= 4 {
		return imgURL[len(imgURL)-4:]
	}
	return imgURL
}

// extractImageURL prefers the canonical og:image reference and falls
// back to twitter:image.
func extractImageURL(n *html.Node) string {
	if url := metaContent(n, "//meta[@property = 'og:image']"); url != "" {
		return url
	}
	return metaContent(n, "//meta[@name = 'twitter:image']")
}

func metaContent(n *html.Node, xpath string) string {
	elem := htmlquery.FindOne(n, xpath)
	if elem == nil {
		return ""
	}
	for _, attr := range elem.Attr {
		if attr.Key == "content" {
			return attr.Val
		}
	}
	return ""
}

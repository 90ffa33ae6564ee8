// Package source reads dataset configuration text from a local file or an http(s) URL.
// Decoding is permissive: invalid UTF-8 is replaced with U+FFFD and a leading BOM
// (UTF-8 or UTF-16) selects the encoding.
package source

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"NamesConv/logger"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const DefaultTimeout = 10 * time.Second

type Reader struct {
	client *resty.Client
}

func NewReader(timeout time.Duration) *Reader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Reader{
		client: resty.New().SetTimeout(timeout),
	}
}

// IsURL reports whether loc should be fetched over HTTP rather than opened as a file.
func IsURL(loc string) bool {
	l := strings.ToLower(loc)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// ReadText returns the decoded content at loc.
func (r *Reader) ReadText(ctx context.Context, loc string) (string, error) {
	var (
		raw []byte
		err error
	)
	if IsURL(loc) {
		raw, err = r.fetch(ctx, loc)
	} else {
		raw, err = os.ReadFile(loc)
	}
	if err != nil {
		return "", err
	}
	return Decode(raw), nil
}

func (r *Reader) fetch(ctx context.Context, url string) ([]byte, error) {
	logger.Log().Debug("fetching config", zap.String("url", url))
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain, application/yaml, */*").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s: server returned %s", url, resp.Status())
	}
	return resp.Body(), nil
}

// Decode converts raw bytes to a string without ever failing.
func Decode(raw []byte) string {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "�")
	}
	return string(out)
}

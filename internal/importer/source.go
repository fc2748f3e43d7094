package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// MaxSourceSize caps how much of a remote or piped source is read.
const MaxSourceSize = 256 << 20

// Read loads raw GeoJSON from source: "" or "-" reads stdin, an http(s) URL
// is fetched with client, anything else is a local file path.
func Read(ctx context.Context, client *http.Client, source string, stdin io.Reader) ([]byte, error) {
	switch {
	case source == "" || source == "-":
		log.Debug().Msg("Reading GeoJSON from stdin")
		return readLimited(stdin)

	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return fetch(ctx, client, source)

	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("path", source).Int("bytes", len(data)).Msg("GeoJSON file loaded")
		return data, nil
	}
}

func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	log.Info().Str("url", url).Msg("Downloading GeoJSON")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed: status %d", resp.StatusCode)
	}

	return readLimited(resp.Body)
}

func readLimited(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("no input")
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxSourceSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxSourceSize {
		return nil, fmt.Errorf("input exceeds %d bytes", MaxSourceSize)
	}

	return data, nil
}

package pseudo

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/gzip"
)

// Manager resolves pseudopotential files against a local cache directory,
// downloading what is missing. A file that exists on disk is considered
// good; there is no freshness policy beyond that.
type Manager struct {
	// Dir is the cache root; files live under Dir/<functional>/.
	Dir string
	// BaseURL overrides the upstream server, mainly for tests.
	BaseURL string
	// Client overrides the HTTP client.
	Client *http.Client
	// Workers bounds the parallel downloads in FetchAll; default 4.
	Workers int
}

// NewManager returns a Manager over the given cache directory.
func NewManager(dir string) *Manager {
	return &Manager{
		Dir:     dir,
		BaseURL: BaseURL,
		Client:  &http.Client{Timeout: 2 * time.Minute},
		Workers: 4,
	}
}

// FetchResult reports the outcome of a single element's fetch.
type FetchResult struct {
	Functional string
	Element    string
	Path       string
	Cached     bool
	Err        error
}

// Path returns the cache location for an element's file without touching
// the network or the disk.
func (m *Manager) Path(functional, element string) (string, error) {
	entry, ok := Info(functional, element)
	if !ok {
		return "", fmt.Errorf("pseudo: %s not in %s database", element, functional)
	}
	return filepath.Join(m.Dir, functional, entry.Filename), nil
}

// Fetch ensures the pseudopotential for one element is on disk and
// returns its path. The second return reports a cache hit.
func (m *Manager) Fetch(ctx context.Context, functional, element string) (string, bool, error) {
	path, err := m.Path(functional, element)
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(path); err == nil {
		return path, true, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", false, err
	}

	entry, _ := Info(functional, element)
	url := m.BaseURL + entry.Filename
	if err := m.download(ctx, url, path); err != nil {
		return "", false, fmt.Errorf("pseudo: fetch %s/%s: %w", functional, element, err)
	}
	return path, false, nil
}

// download writes the body of url to path through a temp file, so a
// failed transfer never leaves a partial file the cache would trust.
// Gzip-compressed bodies are decompressed transparently.
func (m *Manager) download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := m.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	body, err := decompressed(resp.Body)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".download-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// decompressed sniffs the gzip magic bytes and wraps the reader in a
// gzip decoder when present. Some mirrors serve UPF files compressed
// without a matching Content-Encoding header.
func decompressed(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if bytes.Equal(magic, []byte{0x1f, 0x8b}) {
		return gzip.NewReader(br)
	}
	return br, nil
}

// FetchAll fetches every listed element over a bounded pool of workers.
// Downloads are independent and idempotent; each outcome is delivered to
// progress (if non-nil) as it lands and collected in the returned slice,
// ordered like elements.
func (m *Manager) FetchAll(ctx context.Context, functional string, elements []string, progress func(FetchResult)) []FetchResult {
	workers := m.Workers
	if workers <= 0 {
		workers = 4
	}

	results := make([]FetchResult, len(elements))
	jobs := make(chan int)
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				path, cached, err := m.Fetch(ctx, functional, elements[i])
				res := FetchResult{
					Functional: functional,
					Element:    elements[i],
					Path:       path,
					Cached:     cached,
					Err:        err,
				}
				results[i] = res
				if progress != nil {
					mu.Lock()
					progress(res)
					mu.Unlock()
				}
			}
		}()
	}

	for i := range elements {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}
